package openapi

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestBuildDescribesV1Operations(t *testing.T) {
	doc := Build(DefaultInfo(), "/api/v1")
	if doc.OpenAPI != "3.0.3" || doc.Info.Title != "ReportingService API" || doc.Info.Version != "v1" {
		t.Fatalf("unexpected header: %+v", doc.Info)
	}
	hello := doc.Paths.Value("/hello")
	if hello == nil || hello.Get == nil || hello.Get.OperationID != "HelloV1" {
		t.Fatalf("missing HelloV1 operation")
	}
	summary := doc.Paths.Value("/orders/summary")
	if summary == nil || summary.Get == nil || summary.Get.OperationID != "OrdersSummary" {
		t.Fatalf("missing OrdersSummary operation")
	}
	if summary.Get.Responses.Value("500") == nil {
		t.Fatalf("summary should document 500")
	}
	for _, name := range []string{"HelloResponse", "OrderSummary", "ErrorEnvelope"} {
		if doc.Components.Schemas[name] == nil {
			t.Fatalf("missing schema %s", name)
		}
	}
}

func TestBuildValidates(t *testing.T) {
	doc := Build(DefaultInfo(), "/api/v1")
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDocumentJSONAndYAML(t *testing.T) {
	doc := Build(DefaultInfo(), "/api/v1")

	raw, err := doc.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if parsed["openapi"] != "3.0.3" {
		t.Fatalf("openapi=%v", parsed["openapi"])
	}
	if !strings.Contains(string(raw), `"$ref": "#/components/schemas/OrderSummary"`) {
		t.Fatalf("array items should reference OrderSummary: %s", raw)
	}

	out, err := doc.YAML()
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	var y map[string]interface{}
	if err := yaml.Unmarshal(out, &y); err != nil {
		t.Fatalf("yaml decode: %v", err)
	}
	servers, _ := y["servers"].([]interface{})
	if len(servers) != 1 {
		t.Fatalf("servers=%v", y["servers"])
	}
	if !strings.Contains(string(out), "operationId: OrdersSummary") {
		t.Fatalf("yaml missing operation: %s", out)
	}
}

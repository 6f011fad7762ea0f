// Package openapi builds the OpenAPI 3 description of the public API.
package openapi

import (
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

type Info struct {
	Title       string
	Version     string
	Description string
}

// Document is the served API description.
type Document struct {
	*openapi3.T
}

func DefaultInfo() Info {
	return Info{
		Title:       "ReportingService API",
		Version:     "v1",
		Description: "Order reporting endpoints.",
	}
}

const schemaPrefix = "#/components/schemas/"

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(schema),
	}
}

func helloSchema() *openapi3.Schema {
	message := openapi3.NewStringSchema()
	message.Example = "Hello from v1!"
	s := openapi3.NewObjectSchema().WithProperty("message", message)
	s.Required = []string{"message"}
	return s
}

func orderSummarySchema() *openapi3.Schema {
	total := openapi3.NewFloat64Schema()
	total.Description = "Exact decimal sum of the region's amounts"
	s := openapi3.NewObjectSchema().
		WithProperty("region", openapi3.NewStringSchema()).
		WithProperty("totalAmount", total).
		WithProperty("count", openapi3.NewInt64Schema())
	s.Required = []string{"region", "totalAmount", "count"}
	return s
}

func errorEnvelopeSchema() *openapi3.Schema {
	inner := openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("code", openapi3.NewStringSchema())
	inner.Required = []string{"message", "code"}
	s := openapi3.NewObjectSchema().WithProperty("error", inner)
	s.Required = []string{"error"}
	return s
}

// Build returns the v1 document. serverURL is the base path the paths are
// relative to, normally "/api/v1".
func Build(info Info, serverURL string) *Document {
	schemas := openapi3.Schemas{
		"HelloResponse": openapi3.NewSchemaRef("", helloSchema()),
		"OrderSummary":  openapi3.NewSchemaRef("", orderSummarySchema()),
		"ErrorEnvelope": openapi3.NewSchemaRef("", errorEnvelopeSchema()),
	}
	// Refs carry their target value so the document validates without a loader.
	ref := func(name string) *openapi3.SchemaRef {
		return openapi3.NewSchemaRef(schemaPrefix+name, schemas[name].Value)
	}

	versionErr := jsonResponse("Unsupported, invalid or ambiguous API version", ref("ErrorEnvelope"))

	summaries := openapi3.NewArraySchema()
	summaries.Items = ref("OrderSummary")

	hello := &openapi3.Operation{
		OperationID: "HelloV1",
		Summary:     "Connectivity check",
		Tags:        []string{"meta"},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, jsonResponse("Greeting", ref("HelloResponse"))),
			openapi3.WithStatus(400, versionErr),
		),
	}
	summary := &openapi3.Operation{
		OperationID: "OrdersSummary",
		Summary:     "Order totals per region, ordered by region",
		Tags:        []string{"orders"},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, jsonResponse("One row per region", openapi3.NewSchemaRef("", summaries))),
			openapi3.WithStatus(400, versionErr),
			openapi3.WithStatus(500, jsonResponse("Data access failure", ref("ErrorEnvelope"))),
		),
	}

	return &Document{T: &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Servers: openapi3.Servers{{URL: serverURL}},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/hello", &openapi3.PathItem{Get: hello}),
			openapi3.WithPath("/orders/summary", &openapi3.PathItem{Get: summary}),
		),
		Components: &openapi3.Components{Schemas: schemas},
	}}
}

func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d.T, "", "  ")
}

// YAML renders the JSON form as YAML so both share the library's field rules.
func (d *Document) YAML() ([]byte, error) {
	raw, err := d.T.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var tree interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}

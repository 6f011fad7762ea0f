package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	t.Setenv("REPORTING_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("REPORTING_CONFIG_PATH", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REPORTING_DB_DSN", "file:"+filepath.Join(t.TempDir(), "reporting.db"))
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("METRICS_ENABLED", "true")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return cfg
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAppServesUntilCancelled(t *testing.T) {
	cfg := testConfig(t)
	a, err := NewWithConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	status, body := get(t, base+"/api/v1/hello")
	if status != http.StatusOK || body != `{"message":"Hello from v1!"}` {
		t.Fatalf("hello status=%d body=%s", status, body)
	}
	status, body = get(t, base+"/health")
	if status != http.StatusOK || !strings.Contains(body, `"database"`) {
		t.Fatalf("health status=%d body=%s", status, body)
	}
	status, _ = get(t, base+"/swagger")
	if status != http.StatusNotFound {
		t.Fatalf("swagger in production status=%d", status)
	}
	status, body = get(t, base+"/metrics")
	if status != http.StatusOK || !strings.Contains(body, "reporting_http_requests_total") {
		t.Fatalf("metrics status=%d", status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestNewRejectsBadOrdersTable(t *testing.T) {
	cfg := testConfig(t)
	cfg.OrdersTable = "orders; DROP TABLE orders"
	if _, err := NewWithConfig(context.Background(), cfg); err == nil {
		t.Fatalf("expected invalid table error")
	}
}

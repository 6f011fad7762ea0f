package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/platform/apierr"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

func boundaryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorBoundary(logger.Nop()))
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: password authentication failed for user \"reporting\""))
	})
	r.GET("/bad", func(c *gin.Context) {
		_ = c.Error(apierr.BadRequest("invalid_thing", errors.New("thing is invalid")))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestErrorBoundaryHidesInternalErrors(t *testing.T) {
	t.Parallel()
	r := boundaryRouter()

	for _, path := range []string{"/fail", "/panic"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: status=%d body=%s", path, rec.Code, rec.Body.String())
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"code":"internal_error"`) || !strings.Contains(body, "internal server error") {
			t.Fatalf("%s: unexpected body: %s", path, body)
		}
		if strings.Contains(body, "password") || strings.Contains(body, "boom") {
			t.Fatalf("%s: internal detail leaked: %s", path, body)
		}
	}

	// The engine keeps serving after a panic.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d after panic", rec.Code)
	}
}

func TestErrorBoundaryRendersClientErrors(t *testing.T) {
	t.Parallel()
	r := boundaryRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bad", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"code":"invalid_thing"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

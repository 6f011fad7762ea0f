package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// DefaultDevOrigins is the Vite dev server the web app runs on locally.
var DefaultDevOrigins = []string{"http://localhost:5173"}

// DevCORS allows the given origins with any header and any method. It is
// only installed in development.
func DevCORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = DefaultDevOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{headerRequestID, headerTraceID, headerSupportedVersions},
	})
}

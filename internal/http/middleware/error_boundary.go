package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/http/response"
	"github.com/yungbote/reporting-service/internal/platform/apierr"
	"github.com/yungbote/reporting-service/internal/platform/ctxutil"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

// ErrorBoundary turns errors attached with c.Error into responses once the
// chain returns, and turns panics into the same generic 500. Client errors
// (*apierr.Error below 500) are rendered as-is; everything else is logged
// and hidden behind "internal server error".
func ErrorBoundary(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			fields := append([]interface{}{
				"panic", fmt.Sprint(rec),
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			}, ctxutil.LogFields(c.Request.Context())...)
			log.Error("panic recovered", fields...)
			if !c.Writer.Written() {
				response.RespondInternal(c)
			}
			c.Abort()
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var ae *apierr.Error
		if errors.As(err, &ae) && ae.Status >= 400 && ae.Status < 500 {
			if !c.Writer.Written() {
				response.RespondError(c, ae.Status, ae.Code, ae)
			}
			return
		}

		fields := append([]interface{}{
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		}, ctxutil.LogFields(c.Request.Context())...)
		log.Error("unhandled request error", fields...)
		if !c.Writer.Written() {
			response.RespondInternal(c)
		}
	}
}

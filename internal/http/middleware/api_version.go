package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/apiversion"
	"github.com/yungbote/reporting-service/internal/platform/apierr"
)

const (
	headerSupportedVersions = "api-supported-versions"
	headerAPIVersion        = "X-Api-Version"
	headerAPIVersionAlt     = "api-version"
	queryAPIVersion         = "api-version"
)

var errNoRoute = errors.New("not found")

// APIVersion resolves the requested API version for every route in the
// group and rejects requests it cannot serve. Route param "version" is
// read when the route has one; a segment that is not a version at all
// means no route matched.
func APIVersion(set apiversion.Set) gin.HandlerFunc {
	supported := set.Header()
	return func(c *gin.Context) {
		if seg := c.Param("version"); seg != "" {
			if _, err := apiversion.Parse(seg); err != nil {
				_ = c.Error(apierr.NotFound("not_found", errNoRoute))
				c.Abort()
				return
			}
		}
		c.Header(headerSupportedVersions, supported)

		header := strings.TrimSpace(c.GetHeader(headerAPIVersion))
		if header == "" {
			header = strings.TrimSpace(c.GetHeader(headerAPIVersionAlt))
		}
		v, err := set.Resolve(apiversion.Sources{
			Path:   c.Param("version"),
			Query:  c.Query(queryAPIVersion),
			Header: header,
		})
		if err != nil {
			_ = c.Error(apierr.BadRequest(versionErrorCode(err), err))
			c.Abort()
			return
		}
		apiversion.WithVersion(c, v)
		c.Next()
	}
}

func versionErrorCode(err error) string {
	switch {
	case errors.Is(err, apiversion.ErrAmbiguous):
		return "ambiguous_api_version"
	case errors.Is(err, apiversion.ErrUnsupported):
		return "unsupported_api_version"
	default:
		return "invalid_api_version"
	}
}

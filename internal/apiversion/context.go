package apiversion

import "github.com/gin-gonic/gin"

const ginKey = "api_version"

// WithVersion records the resolved version on the request.
func WithVersion(c *gin.Context, v Version) {
	c.Set(ginKey, v)
}

func FromContext(c *gin.Context) (Version, bool) {
	if c == nil {
		return Version{}, false
	}
	raw, ok := c.Get(ginKey)
	if !ok {
		return Version{}, false
	}
	v, ok := raw.(Version)
	return v, ok
}

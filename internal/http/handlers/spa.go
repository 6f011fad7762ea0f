package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/http/response"
	"github.com/yungbote/reporting-service/internal/web"
)

// ReservedPrefixes never fall back to the SPA.
var ReservedPrefixes = []string{"/api", "/health", "/swagger"}

// IsReserved reports whether p is one of the reserved prefixes or below
// one. Matching is per path segment, so /apiary is not reserved.
func IsReserved(p string) bool {
	for _, prefix := range ReservedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

type SPAHandler struct {
	root fs.FS
	fsrv http.Handler
}

func NewSPAHandler(root fs.FS) *SPAHandler {
	if root == nil {
		root = web.Embedded()
	}
	return &SPAHandler{root: root, fsrv: http.FileServer(http.FS(root))}
}

// NoRoute handles every request no route matched.
func (h *SPAHandler) NoRoute(c *gin.Context) {
	p := path.Clean("/" + c.Request.URL.Path)
	if IsReserved(p) {
		response.RespondNotFound(c)
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		response.RespondNotFound(c)
		return
	}

	name, err := web.Lookup(h.root, p)
	switch {
	case err == nil && name != web.IndexFile:
		h.serveFile(c, name)
	case err == nil:
		h.serveIndex(c)
	case !errors.Is(err, fs.ErrNotExist):
		_ = c.Error(err)
	case path.Ext(p) != "":
		// Missing asset; an HTML page here would confuse the browser.
		response.RespondNotFound(c)
	default:
		h.serveIndex(c)
	}
}

func (h *SPAHandler) serveFile(c *gin.Context, name string) {
	req := c.Request.Clone(c.Request.Context())
	req.URL.Path = "/" + name
	h.fsrv.ServeHTTP(c.Writer, req)
}

func (h *SPAHandler) serveIndex(c *gin.Context) {
	raw, err := fs.ReadFile(h.root, web.IndexFile)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", raw)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/openapi"
)

const swaggerUIPage = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <title>ReportingService API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({ url: "/swagger/v1/swagger.json", dom_id: "#swagger-ui" });
    </script>
  </body>
</html>
`

// DocsHandler serves the OpenAPI document and a Swagger UI page. The
// document is rendered once at construction.
type DocsHandler struct {
	jsonDoc []byte
	yamlDoc []byte
}

func NewDocsHandler(doc *openapi.Document) (*DocsHandler, error) {
	j, err := doc.JSON()
	if err != nil {
		return nil, err
	}
	y, err := doc.YAML()
	if err != nil {
		return nil, err
	}
	return &DocsHandler{jsonDoc: j, yamlDoc: y}, nil
}

// GET /swagger
func (h *DocsHandler) Redirect(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
}

// GET /swagger/index.html
func (h *DocsHandler) UI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUIPage))
}

// GET /swagger/v1/swagger.json
func (h *DocsHandler) JSON(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", h.jsonDoc)
}

// GET /swagger/v1/swagger.yaml
func (h *DocsHandler) YAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", h.yamlDoc)
}

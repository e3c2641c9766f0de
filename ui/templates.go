package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html templates/fragments/*.html
var embeddedFiles embed.FS

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"num": func(f *float64) string {
			if f == nil {
				return ""
			}
			return strconv.FormatFloat(*f, 'f', -1, 64)
		},
		"step": func(f float64) string {
			if f == 0 {
				return "any"
			}
			return strconv.FormatFloat(f, 'f', -1, 64)
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
}

// renderMarkdown converts trusted-but-unescaped Markdown into sanitized HTML.
func renderMarkdown(md string, policy *bluemonday.Policy) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(md), p, r)
	return template.HTML(policy.SanitizeBytes(out))
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// First render to a buffer to catch any errors before writing to response
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template error for %s: %v (data %T)", templateName, err, data)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	if strings.HasSuffix(templateName, ".html") && !strings.Contains(buf.String(), "</html>") {
		s.logger.Warn("rendered template %s appears truncated: missing </html> tag", templateName)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("error writing template response: %v", err)
	}
}

// HTMX helpers
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func formatWeight(w float64) string {
	return fmt.Sprintf("%+.2f", w)
}

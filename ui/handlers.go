package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"termdeposit/domain/client"
)

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", newPage(client.DefaultRecord().Values(), nil, s.summary))
}

// handlePredict reads the submitted form, predicts and renders the verdict. On a
// full-page post the form keeps the submitted values.
func (s *Server) handlePredict(c *gin.Context) {
	values := make(map[string]string, len(client.FieldNames()))
	if err := c.Request.ParseForm(); err != nil {
		s.respond(c, values, errorResult(err))
		return
	}
	for _, name := range client.FieldNames() {
		values[name] = c.Request.PostForm.Get(name)
	}

	record, err := client.FromValues(values)
	if err != nil {
		s.respond(c, values, errorResult(err))
		return
	}
	v, err := s.predictor.Predict(c.Request.Context(), record)
	if err != nil {
		s.respond(c, values, errorResult(err))
		return
	}
	s.respond(c, values, verdictResult(v))
}

// handleSample ignores any submitted form and predicts the canonical sample.
func (s *Server) handleSample(c *gin.Context) {
	sample := client.LikelySample().Values()
	res, err := s.predictor.PredictSample(c.Request.Context())
	if err != nil {
		s.respond(c, sample, errorResult(err))
		return
	}

	view := verdictResult(res.Verdict)
	view.Rationale = s.rationale
	view.ModelDisagrees = !res.ModelAgrees
	s.respond(c, sample, view)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "artifacts": s.summary})
}

// respond renders only the result fragment for HTMX requests and the whole page otherwise.
func (s *Server) respond(c *gin.Context, values map[string]string, result *resultView) {
	if isHTMX(c) {
		s.renderTemplate(c, http.StatusOK, "result", result)
		return
	}
	s.renderTemplate(c, http.StatusOK, "index.html", newPage(values, result, s.summary))
}

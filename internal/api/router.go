package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"termdeposit/app"
	"termdeposit/domain/client"
	"termdeposit/domain/verdict"
	"termdeposit/internal"
	"termdeposit/internal/errors"
)

// maxBodyBytes bounds a predict request; a full record is well under 2 KiB.
const maxBodyBytes = 64 << 10

// Predictor is the inference surface the API needs.
type Predictor interface {
	Predict(ctx context.Context, record client.Record) (verdict.Verdict, error)
	PredictSample(ctx context.Context) (app.SampleResult, error)
}

// Handler serves the versioned JSON API.
type Handler struct {
	predictor Predictor
	logger    *internal.Logger
}

// NewRouter mounts the /api/v1 routes on a chi router.
func NewRouter(predictor Predictor, logger *internal.Logger) http.Handler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	h := &Handler{predictor: predictor, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/schema", h.handleSchema)
		r.Post("/predict", h.handlePredict)
		r.Get("/sample", h.handleSample)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.NotFound(r.URL.Path))
	})
	return r
}

type schemaResponse struct {
	Fields   []client.Field `json:"fields"`
	Sections []string       `json:"sections"`
	Labels   []string       `json:"labels"`
}

type sampleResponse struct {
	verdict.Verdict
	Record      client.Record `json:"record"`
	Rationale   []string      `json:"rationale"`
	ModelAgrees bool          `json:"model_agrees"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	sections := client.Sections()
	resp := schemaResponse{
		Fields:   client.Fields(),
		Sections: make([]string, len(sections)),
		Labels:   []string{string(verdict.LabelSubscribe), string(verdict.LabelNoSubscribe)},
	}
	for i, s := range sections {
		resp.Sections[i] = s.Title
	}
	writeJSON(w, http.StatusOK, resp)
}

// handlePredict accepts one record as a JSON object. Values may be JSON numbers or
// strings; they go through the same parsing as the HTML form.
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	values, err := decodeValues(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, errors.InvalidInput(fmt.Sprintf("invalid request body: %v", err)))
		return
	}
	record, err := client.FromValues(values)
	if err != nil {
		writeError(w, err)
		return
	}

	v, err := h.predictor.Predict(r.Context(), record)
	if err != nil {
		h.logger.Debug("api predict [%s]: %v", middleware.GetReqID(r.Context()), err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleSample(w http.ResponseWriter, r *http.Request) {
	res, err := h.predictor.PredictSample(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sampleResponse{
		Verdict:     res.Verdict,
		Record:      res.Record,
		Rationale:   res.Rationale,
		ModelAgrees: res.ModelAgrees,
	})
}

// decodeValues reads a flat JSON object into form-style string values.
func decodeValues(body io.Reader) (map[string]string, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after the JSON object")
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			values[k] = t
		case json.Number:
			values[k] = t.String()
		case nil:
		default:
			return nil, fmt.Errorf("field %q must be a string or a number", k)
		}
	}
	return values, nil
}

// statusFor maps an application error code onto an HTTP status.
func statusFor(code string) int {
	switch code {
	case errors.CodeInvalidInput, errors.CodeValidationError:
		return http.StatusBadRequest
	case errors.CodeInferenceFailed:
		return http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "UNKNOWN" {
		code = errors.CodeInternalError
	}
	writeJSON(w, statusFor(code), errorResponse{Error: strings.TrimSpace(err.Error()), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package app

import (
	"context"
	"fmt"
	"math"
	"sort"

	"termdeposit/domain/client"
	"termdeposit/domain/core"
	"termdeposit/domain/verdict"
	"termdeposit/internal"
	"termdeposit/internal/errors"
	"termdeposit/ports"
)

// DefaultTopContributions is how many model factors a verdict carries by default.
const DefaultTopContributions = 5

// InferenceService turns a client record into a verdict using the loaded artifacts.
// It holds no per-request state and is safe for concurrent use.
type InferenceService struct {
	preprocessor ports.Preprocessor
	classifier   ports.Classifier
	explainer    ports.Explainer
	namer        ports.FeatureNamer
	top          int
	logger       *internal.Logger
}

// InferenceOption customises an InferenceService.
type InferenceOption func(*InferenceService)

// WithTopContributions caps the number of contributions per verdict. Zero disables them.
func WithTopContributions(n int) InferenceOption {
	return func(s *InferenceService) {
		if n >= 0 {
			s.top = n
		}
	}
}

func WithLogger(logger *internal.Logger) InferenceOption {
	return func(s *InferenceService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewInferenceService wires a preprocessor and classifier. Contributions are produced
// only when the classifier is an Explainer and the preprocessor a FeatureNamer.
func NewInferenceService(preprocessor ports.Preprocessor, classifier ports.Classifier, opts ...InferenceOption) *InferenceService {
	s := &InferenceService{
		preprocessor: preprocessor,
		classifier:   classifier,
		top:          DefaultTopContributions,
		logger:       internal.DefaultLogger,
	}
	s.explainer, _ = classifier.(ports.Explainer)
	s.namer, _ = preprocessor.(ports.FeatureNamer)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict classifies one record. Every failure, including a panic inside the
// preprocessor or classifier, comes back as an INFERENCE_FAILED error.
func (s *InferenceService) Predict(ctx context.Context, record client.Record) (v verdict.Verdict, err error) {
	id := core.NewPredictionID()
	defer func() {
		if r := recover(); r != nil {
			err = errors.InferenceFailed(fmt.Errorf("%v", r))
		}
		if err != nil {
			v = verdict.Verdict{}
			s.logger.With("prediction_id", id.String()).Warn("prediction failed: %v", err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return verdict.Verdict{}, errors.InferenceFailed(err)
	}
	if err := record.Validate(); err != nil {
		return verdict.Verdict{}, errors.InferenceFailed(err)
	}

	x, err := s.preprocessor.Transform(record.Row())
	if err != nil {
		return verdict.Verdict{}, errors.InferenceFailed(err)
	}
	class, err := s.classifier.Predict(x)
	if err != nil {
		return verdict.Verdict{}, errors.InferenceFailed(err)
	}
	label, err := verdict.LabelForClass(class)
	if err != nil {
		return verdict.Verdict{}, errors.InferenceFailed(err)
	}
	proba, err := s.classifier.PredictProba(x)
	if err != nil {
		return verdict.Verdict{}, errors.InferenceFailed(err)
	}
	p, err := subscribeProbability(s.classifier.Classes(), proba)
	if err != nil {
		return verdict.Verdict{}, errors.InferenceFailed(err)
	}

	v = verdict.Verdict{
		ID:            id,
		Label:         label,
		Probability:   p,
		Contributions: s.explain(id, x),
	}
	s.logger.Debug("prediction %s: %s (p=%.4f)", id, label, p)
	return v, nil
}

// subscribeProbability picks the probability mass of class 1.
func subscribeProbability(classes []int, proba []float64) (float64, error) {
	if len(proba) != len(classes) {
		return 0, fmt.Errorf("classifier returned %d probabilities for %d classes", len(proba), len(classes))
	}
	for i, c := range classes {
		if c != 1 {
			continue
		}
		p := proba[i]
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
			return 0, fmt.Errorf("classifier returned invalid probability %v", p)
		}
		return p, nil
	}
	return 0, fmt.Errorf("classifier has no class 1 among %v", classes)
}

// explain returns the strongest per-feature contributions, largest magnitude first.
// A failure here only drops the contributions.
func (s *InferenceService) explain(id core.PredictionID, x []float64) (out []verdict.Contribution) {
	if s.top == 0 || s.explainer == nil || s.namer == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("prediction %s: contributions unavailable: %v", id, r)
			out = nil
		}
	}()

	weights, err := s.explainer.Contributions(x)
	if err != nil {
		s.logger.Debug("prediction %s: contributions unavailable: %v", id, err)
		return nil
	}
	names := s.namer.OutputNames()
	if len(names) != len(weights) {
		s.logger.Debug("prediction %s: %d feature names for %d contributions", id, len(names), len(weights))
		return nil
	}

	out = make([]verdict.Contribution, 0, len(weights))
	for j, w := range weights {
		if w == 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			continue
		}
		out = append(out, verdict.Contribution{Feature: names[j], Weight: w})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return math.Abs(out[a].Weight) > math.Abs(out[b].Weight)
	})
	if len(out) > s.top {
		out = out[:s.top]
	}
	return out
}

package app

import (
	"context"

	"termdeposit/domain/client"
	"termdeposit/domain/verdict"
)

// SampleResult is the outcome of predicting the canonical likely-subscriber.
type SampleResult struct {
	Record            client.Record   `json:"record"`
	Verdict           verdict.Verdict `json:"verdict"`
	RationaleMarkdown string          `json:"-"`
	Rationale         []string        `json:"rationale"`
	// ModelAgrees is false when the model does not predict subscribe for the sample,
	// in which case the static rationale no longer matches the verdict.
	ModelAgrees bool `json:"model_agrees"`
}

// PredictSample runs the canonical sample through Predict and attaches the
// illustrative rationale.
func (s *InferenceService) PredictSample(ctx context.Context) (SampleResult, error) {
	record := client.LikelySample()
	v, err := s.Predict(ctx, record)
	if err != nil {
		return SampleResult{}, err
	}
	return SampleResult{
		Record:            record,
		Verdict:           v,
		RationaleMarkdown: client.LikelyRationale,
		Rationale:         client.LikelyRationaleBullets(),
		ModelAgrees:       v.Label.Likely(),
	}, nil
}

package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/montanaflynn/stats"

	"termdeposit/domain/client"
	"termdeposit/domain/verdict"
)

// SweepCase is one record of the domain sweep.
type SweepCase struct {
	Name   string
	Record client.Record
}

// SweepFailure records a sweep case that could not be predicted.
type SweepFailure struct {
	Case  string `json:"case"`
	Error string `json:"error"`
}

// ProbabilitySummary describes the subscribe probabilities produced by a sweep.
type ProbabilitySummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P90    float64 `json:"p90"`
}

// SweepReport is the result of running every sweep case through Predict.
type SweepReport struct {
	Cases     int                 `json:"cases"`
	Subscribe int                 `json:"subscribe"`
	Failures  []SweepFailure      `json:"failures,omitempty"`
	Summary   *ProbabilitySummary `json:"summary,omitempty"`
}

func (r SweepReport) OK() bool { return len(r.Failures) == 0 }

// SweepCases builds the sample with every categorical option substituted in turn,
// plus the numeric domain boundaries.
func SweepCases() ([]SweepCase, error) {
	base := client.LikelySample()
	cases := []SweepCase{{Name: "sample", Record: base}}

	with := func(name, value string) error {
		values := base.Values()
		values[name] = value
		r, err := client.FromValues(values)
		if err != nil {
			return fmt.Errorf("sweep case %s=%s: %w", name, value, err)
		}
		cases = append(cases, SweepCase{Name: name + "=" + value, Record: r})
		return nil
	}

	for _, f := range client.Fields() {
		if f.Kind != client.KindSelect {
			continue
		}
		for _, opt := range f.Options {
			if opt == base.Values()[f.Name] {
				continue
			}
			if err := with(f.Name, opt); err != nil {
				return nil, err
			}
		}
	}

	boundaries := []struct {
		name  string
		value int
	}{
		{client.ColAge, client.MinAge},
		{client.ColAge, client.MaxAge},
		{client.ColPDays, client.MinPDays},
		{client.ColPDays, client.PDaysNeverContacted},
		{client.ColCampaign, client.MinCampaign},
		{client.ColPrevious, client.MinPrevious},
	}
	for _, b := range boundaries {
		if err := with(b.name, strconv.Itoa(b.value)); err != nil {
			return nil, err
		}
	}
	return cases, nil
}

// Sweep predicts every sweep case and summarises the probabilities. Prediction
// failures are collected in the report; only cancellation aborts the sweep.
func (s *InferenceService) Sweep(ctx context.Context) (SweepReport, error) {
	cases, err := SweepCases()
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Cases: len(cases)}
	probabilities := make(stats.Float64Data, 0, len(cases))
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		v, err := s.Predict(ctx, c.Record)
		if err != nil {
			report.Failures = append(report.Failures, SweepFailure{Case: c.Name, Error: err.Error()})
			continue
		}
		if v.Label == verdict.LabelSubscribe {
			report.Subscribe++
		}
		probabilities = append(probabilities, v.Probability)
	}

	if len(probabilities) > 0 {
		summary, err := summarize(probabilities)
		if err != nil {
			return report, err
		}
		report.Summary = summary
	}
	return report, nil
}

func summarize(data stats.Float64Data) (*ProbabilitySummary, error) {
	var (
		out ProbabilitySummary
		err error
	)
	if out.Mean, err = stats.Mean(data); err != nil {
		return nil, err
	}
	if out.Median, err = stats.Median(data); err != nil {
		return nil, err
	}
	if out.Min, err = stats.Min(data); err != nil {
		return nil, err
	}
	if out.Max, err = stats.Max(data); err != nil {
		return nil, err
	}
	if out.P90, err = stats.Percentile(data, 90); err != nil {
		return nil, err
	}
	return &out, nil
}

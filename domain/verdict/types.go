package verdict

import (
	"fmt"

	"termdeposit/domain/core"
)

// Label is the predicted outcome of a marketing contact.
type Label string

const (
	LabelSubscribe   Label = "subscribe"
	LabelNoSubscribe Label = "no_subscribe"
)

// DefaultThreshold is the probability at or above which a client is labelled subscribe.
const DefaultThreshold = 0.5

// LabelForClass maps a classifier class value onto a Label.
func LabelForClass(class int) (Label, error) {
	switch class {
	case 1:
		return LabelSubscribe, nil
	case 0:
		return LabelNoSubscribe, nil
	default:
		return "", fmt.Errorf("classifier returned unexpected class %d", class)
	}
}

// Likely reports whether the label is the positive outcome.
func (l Label) Likely() bool {
	return l == LabelSubscribe
}

// Contribution is the signed push of one encoded feature towards subscribe.
type Contribution struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Verdict is the normalized result of one prediction.
type Verdict struct {
	ID            core.PredictionID `json:"id"`
	Label         Label             `json:"label"`
	Probability   float64           `json:"probability"`
	Contributions []Contribution    `json:"contributions,omitempty"`
}

// Headline is the user-facing sentence for the verdict.
func (v Verdict) Headline() string {
	if v.Label.Likely() {
		return "The client is likely to subscribe to a term deposit."
	}
	return "The client is NOT likely to subscribe."
}

// Percent formats Probability for display, e.g. "73.2%".
func (v Verdict) Percent() string {
	return fmt.Sprintf("%.1f%%", v.Probability*100)
}

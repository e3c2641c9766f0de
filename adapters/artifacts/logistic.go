package artifacts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"termdeposit/ports"
)

const kindLogisticRegression = "logistic_regression"

type logisticDoc struct {
	Classes   []int     `json:"classes" yaml:"classes"`
	Coef      []float64 `json:"coef" yaml:"coef"`
	Intercept float64   `json:"intercept" yaml:"intercept"`
	Threshold float64   `json:"threshold" yaml:"threshold"`
}

// LogisticRegression is a fitted binary logistic model. coef weighs the class
// listed second in classes.
type LogisticRegression struct {
	binary
	coef      []float64
	intercept float64
}

func NewLogisticRegression(classes []int, coef []float64, intercept, threshold float64) (*LogisticRegression, error) {
	b, err := newBinary(classes, threshold)
	if err != nil {
		return nil, err
	}
	if len(coef) == 0 {
		return nil, fmt.Errorf("logistic_regression: coef is empty")
	}
	for j, w := range append([]float64{intercept}, coef...) {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("logistic_regression: non-finite weight at position %d", j)
		}
	}
	b.numFeatures = len(coef)
	return &LogisticRegression{binary: b, coef: append([]float64(nil), coef...), intercept: intercept}, nil
}

func decodeLogisticRegression(data []byte, unmarshal Unmarshaler) (ports.Classifier, error) {
	var doc logisticDoc
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode logistic_regression: %w", err)
	}
	return NewLogisticRegression(doc.Classes, doc.Coef, doc.Intercept, doc.Threshold)
}

func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	if err := m.checkWidth(x); err != nil {
		return nil, err
	}
	z := floats.Dot(m.coef, x) + m.intercept
	second := 1 / (1 + math.Exp(-z))
	return []float64{1 - second, second}, nil
}

func (m *LogisticRegression) Predict(x []float64) (int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return m.decide(proba), nil
}

// Contributions is coef_j * x_j, signed towards class 1.
func (m *LogisticRegression) Contributions(x []float64) ([]float64, error) {
	if err := m.checkWidth(x); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	floats.MulTo(out, m.coef, x)
	if m.pos == 0 {
		floats.Scale(-1, out)
	}
	return out, nil
}

package artifacts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"termdeposit/domain/verdict"
	"termdeposit/ports"
)

const kindGaussianNB = "gaussian_nb"

type gaussianNBDoc struct {
	Classes    []int       `json:"classes" yaml:"classes"`
	ClassPrior []float64   `json:"class_prior" yaml:"class_prior"`
	Theta      [][]float64 `json:"theta" yaml:"theta"`
	Var        [][]float64 `json:"var" yaml:"var"`
	Threshold  float64     `json:"threshold" yaml:"threshold"`
}

// GaussianNB is a fitted Gaussian naive Bayes classifier over two classes.
// theta and var hold the per-class feature means and (already smoothed) variances.
type GaussianNB struct {
	binary
	logPrior []float64
	dists    [][]distuv.Normal
}

// NewGaussianNB validates fitted parameters and builds the model.
func NewGaussianNB(classes []int, prior []float64, theta, variance [][]float64, threshold float64) (*GaussianNB, error) {
	b, err := newBinary(classes, threshold)
	if err != nil {
		return nil, err
	}
	if len(prior) != 2 || len(theta) != 2 || len(variance) != 2 {
		return nil, fmt.Errorf("gaussian_nb: expected parameters for 2 classes, got prior=%d theta=%d var=%d", len(prior), len(theta), len(variance))
	}
	b.numFeatures = len(theta[0])
	if b.numFeatures == 0 {
		return nil, fmt.Errorf("gaussian_nb: theta is empty")
	}

	m := &GaussianNB{binary: b, logPrior: make([]float64, 2), dists: make([][]distuv.Normal, 2)}
	for c := 0; c < 2; c++ {
		if prior[c] <= 0 || prior[c] > 1 {
			return nil, fmt.Errorf("gaussian_nb: class prior %v out of (0,1]", prior[c])
		}
		m.logPrior[c] = math.Log(prior[c])
		if len(theta[c]) != b.numFeatures || len(variance[c]) != b.numFeatures {
			return nil, fmt.Errorf("gaussian_nb: class %d has %d means and %d variances, want %d", classes[c], len(theta[c]), len(variance[c]), b.numFeatures)
		}
		m.dists[c] = make([]distuv.Normal, b.numFeatures)
		for j := range theta[c] {
			v := variance[c][j]
			if !(v > 0) || math.IsInf(v, 0) || math.IsNaN(theta[c][j]) || math.IsInf(theta[c][j], 0) {
				return nil, fmt.Errorf("gaussian_nb: invalid parameters for class %d feature %d", classes[c], j)
			}
			m.dists[c][j] = distuv.Normal{Mu: theta[c][j], Sigma: math.Sqrt(v)}
		}
	}
	return m, nil
}

func decodeGaussianNB(data []byte, unmarshal Unmarshaler) (ports.Classifier, error) {
	var doc gaussianNBDoc
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode gaussian_nb: %w", err)
	}
	return NewGaussianNB(doc.Classes, doc.ClassPrior, doc.Theta, doc.Var, doc.Threshold)
}

func (m *GaussianNB) jointLogLikelihood(x []float64) ([]float64, error) {
	if err := m.checkWidth(x); err != nil {
		return nil, err
	}
	jll := make([]float64, 2)
	for c := range jll {
		s := m.logPrior[c]
		for j, d := range m.dists[c] {
			s += d.LogProb(x[j])
		}
		jll[c] = s
	}
	return jll, nil
}

// PredictProba normalises the joint log-likelihoods with log-sum-exp.
func (m *GaussianNB) PredictProba(x []float64) ([]float64, error) {
	jll, err := m.jointLogLikelihood(x)
	if err != nil {
		return nil, err
	}
	if math.IsInf(floats.Max(jll), -1) {
		return m.farProba(x), nil
	}
	lse := floats.LogSumExp(jll)
	proba := make([]float64, len(jll))
	for c, v := range jll {
		proba[c] = math.Exp(v - lse)
	}
	return proba, nil
}

// farProba handles inputs so far from every mean that both joint log-likelihoods
// underflow to -Inf. The class whose summed squared z-distance is smaller, compared in
// log space, takes all the mass. Equal distances leave only the priors to decide.
func (m *GaussianNB) farProba(x []float64) []float64 {
	dist := make([]float64, 2)
	for c := range dist {
		terms := make([]float64, 0, len(x))
		for j, d := range m.dists[c] {
			if math.IsInf(x[j], 0) || math.IsNaN(x[j]) {
				continue
			}
			terms = append(terms, 2*(math.Log(math.Abs(x[j]-d.Mu))-math.Log(d.Sigma)))
		}
		dist[c] = logSumExp(terms)
	}

	proba := make([]float64, 2)
	switch {
	case dist[0] < dist[1]:
		proba[0] = 1
	case dist[1] < dist[0]:
		proba[1] = 1
	default:
		prior := []float64{math.Exp(m.logPrior[0]), math.Exp(m.logPrior[1])}
		sum := floats.Sum(prior)
		proba[0], proba[1] = prior[0]/sum, prior[1]/sum
	}
	return proba
}

// logSumExp is floats.LogSumExp with empty and infinite inputs mapped to their limits.
func logSumExp(v []float64) float64 {
	if len(v) == 0 {
		return math.Inf(-1)
	}
	if mx := floats.Max(v); math.IsInf(mx, 0) {
		return mx
	}
	return floats.LogSumExp(v)
}

func (m *GaussianNB) Predict(x []float64) (int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return m.decide(proba), nil
}

// Contributions is the per-feature log-likelihood ratio between the positive and
// negative class.
func (m *GaussianNB) Contributions(x []float64) ([]float64, error) {
	if err := m.checkWidth(x); err != nil {
		return nil, err
	}
	out := make([]float64, m.numFeatures)
	for j := range out {
		out[j] = m.dists[m.pos][j].LogProb(x[j]) - m.dists[1-m.pos][j].LogProb(x[j])
	}
	return out, nil
}

// binary holds what both model kinds share: class order, input width and threshold.
type binary struct {
	classes     []int
	pos         int
	numFeatures int
	threshold   float64
}

func newBinary(classes []int, threshold float64) (binary, error) {
	if len(classes) != 2 {
		return binary{}, fmt.Errorf("expected 2 classes, got %v", classes)
	}
	b := binary{classes: append([]int(nil), classes...), pos: -1, threshold: threshold}
	for i, c := range classes {
		switch c {
		case 1:
			b.pos = i
		case 0:
		default:
			return binary{}, fmt.Errorf("classes must be 0 and 1, got %v", classes)
		}
	}
	if b.pos < 0 || classes[0] == classes[1] {
		return binary{}, fmt.Errorf("classes must be 0 and 1, got %v", classes)
	}
	if b.threshold == 0 {
		b.threshold = verdict.DefaultThreshold
	}
	if b.threshold <= 0 || b.threshold >= 1 {
		return binary{}, fmt.Errorf("threshold %v out of (0,1)", threshold)
	}
	return b, nil
}

func (b *binary) Classes() []int { return append([]int(nil), b.classes...) }

func (b *binary) NumFeatures() int { return b.numFeatures }

func (b *binary) setThreshold(t float64) { b.threshold = t }

func (b *binary) checkWidth(x []float64) error {
	if len(x) != b.numFeatures {
		return fmt.Errorf("X has %d features, but the model is expecting %d features as input", len(x), b.numFeatures)
	}
	return nil
}

// decide returns class 1 when its probability reaches the threshold.
func (b *binary) decide(proba []float64) int {
	if proba[b.pos] >= b.threshold {
		return 1
	}
	return 0
}

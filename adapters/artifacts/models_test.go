package artifacts

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termdeposit/ports"
)

func TestGaussianNB_PredictProba(t *testing.T) {
	m, err := NewGaussianNB([]int{0, 1}, []float64{0.5, 0.5}, [][]float64{{0}, {2}}, [][]float64{{1}, {1}}, 0)
	require.NoError(t, err)

	tests := []struct {
		name      string
		x         float64
		wantProba float64
		wantClass int
	}{
		{"at the negative mean", 0, 1 / (1 + math.Exp(2)), 0},
		{"just past halfway", 1.1, 1 / (1 + math.Exp(-0.2)), 1},
		{"at the positive mean", 2, 1 / (1 + math.Exp(-2)), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proba, err := m.PredictProba([]float64{tt.x})
			require.NoError(t, err)
			require.Len(t, proba, 2)
			assert.InDelta(t, tt.wantProba, proba[1], 1e-12)
			assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-12)

			class, err := m.Predict([]float64{tt.x})
			require.NoError(t, err)
			assert.Equal(t, tt.wantClass, class)
		})
	}

	contrib, err := m.Contributions([]float64{2})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, contrib[0], 1e-12)
}

func TestGaussianNB_FarFromEveryMean(t *testing.T) {
	tests := []struct {
		name      string
		prior     []float64
		theta     [][]float64
		variance  [][]float64
		x         []float64
		wantProba []float64
	}{
		{
			name:      "wider class wins",
			prior:     []float64{0.5, 0.5},
			theta:     [][]float64{{0}, {0}},
			variance:  [][]float64{{1}, {4}},
			x:         []float64{1e200},
			wantProba: []float64{0, 1},
		},
		{
			name:      "closer class wins",
			prior:     []float64{0.5, 0.5},
			theta:     [][]float64{{0, 0}, {0, 1e190}},
			variance:  [][]float64{{1, 1}, {1, 1}},
			x:         []float64{1e-3, 1e200},
			wantProba: []float64{0, 1},
		},
		{
			name:      "identical distances fall back to priors",
			prior:     []float64{0.3, 0.7},
			theta:     [][]float64{{0}, {0}},
			variance:  [][]float64{{1}, {1}},
			x:         []float64{-1e200},
			wantProba: []float64{0.3, 0.7},
		},
		{
			name:      "infinite input is skipped",
			prior:     []float64{0.5, 0.5},
			theta:     [][]float64{{0, 0}, {0, 0}},
			variance:  [][]float64{{4, 1}, {1, 1}},
			x:         []float64{1e200, math.Inf(1)},
			wantProba: []float64{1, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewGaussianNB([]int{0, 1}, tt.prior, tt.theta, tt.variance, 0)
			require.NoError(t, err)

			jll, err := m.jointLogLikelihood(tt.x)
			require.NoError(t, err)
			require.True(t, math.IsInf(jll[0], -1) && math.IsInf(jll[1], -1), "joint log-likelihoods %v", jll)

			proba, err := m.PredictProba(tt.x)
			require.NoError(t, err)
			require.Len(t, proba, 2)
			assert.InDelta(t, tt.wantProba[0], proba[0], 1e-12)
			assert.InDelta(t, tt.wantProba[1], proba[1], 1e-12)

			_, err = m.Predict(tt.x)
			assert.NoError(t, err)
		})
	}
}

func TestGaussianNB_ReversedClassOrder(t *testing.T) {
	m, err := NewGaussianNB([]int{1, 0}, []float64{0.5, 0.5}, [][]float64{{2}, {0}}, [][]float64{{1}, {1}}, 0)
	require.NoError(t, err)

	proba, err := m.PredictProba([]float64{2})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-2)), proba[0], 1e-12)

	class, err := m.Predict([]float64{2})
	require.NoError(t, err)
	assert.Equal(t, 1, class)
	assert.Equal(t, []int{1, 0}, m.Classes())
}

func TestGaussianNB_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		classes  []int
		prior    []float64
		theta    [][]float64
		variance [][]float64
	}{
		{"three classes", []int{0, 1, 2}, []float64{0.3, 0.3, 0.4}, [][]float64{{0}, {0}, {0}}, [][]float64{{1}, {1}, {1}}},
		{"non binary labels", []int{0, 2}, []float64{0.5, 0.5}, [][]float64{{0}, {0}}, [][]float64{{1}, {1}}},
		{"repeated label", []int{1, 1}, []float64{0.5, 0.5}, [][]float64{{0}, {0}}, [][]float64{{1}, {1}}},
		{"zero prior", []int{0, 1}, []float64{0, 1}, [][]float64{{0}, {0}}, [][]float64{{1}, {1}}},
		{"ragged theta", []int{0, 1}, []float64{0.5, 0.5}, [][]float64{{0, 1}, {0}}, [][]float64{{1, 1}, {1}}},
		{"zero variance", []int{0, 1}, []float64{0.5, 0.5}, [][]float64{{0}, {0}}, [][]float64{{0}, {1}}},
		{"nan mean", []int{0, 1}, []float64{0.5, 0.5}, [][]float64{{math.NaN()}, {0}}, [][]float64{{1}, {1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGaussianNB(tt.classes, tt.prior, tt.theta, tt.variance, 0)
			assert.Error(t, err)
		})
	}
}

func TestLogisticRegression(t *testing.T) {
	m, err := NewLogisticRegression([]int{0, 1}, []float64{1, -1}, 0, 0)
	require.NoError(t, err)

	proba, err := m.PredictProba([]float64{2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-1)), proba[1], 1e-12)

	class, err := m.Predict([]float64{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, class)

	contrib, err := m.Contributions([]float64{2, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, -1}, contrib)

	t.Run("reversed class order weighs class 0", func(t *testing.T) {
		rev, err := NewLogisticRegression([]int{1, 0}, []float64{1, -1}, 0, 0)
		require.NoError(t, err)

		class, err := rev.Predict([]float64{2, 1})
		require.NoError(t, err)
		assert.Equal(t, 0, class)

		contrib, err := rev.Contributions([]float64{2, 1})
		require.NoError(t, err)
		assert.Equal(t, []float64{-2, 1}, contrib)
	})

	t.Run("custom threshold", func(t *testing.T) {
		strict, err := NewLogisticRegression([]int{0, 1}, []float64{1, -1}, 0, 0.9)
		require.NoError(t, err)
		class, err := strict.Predict([]float64{2, 1})
		require.NoError(t, err)
		assert.Equal(t, 0, class)
	})
}

func TestBinary_CheckWidth(t *testing.T) {
	m, err := NewLogisticRegression([]int{0, 1}, []float64{1, 1, 1}, 0, 0)
	require.NoError(t, err)

	_, err = m.PredictProba([]float64{1, 2})
	require.Error(t, err)
	assert.Equal(t, "X has 2 features, but the model is expecting 3 features as input", err.Error())

	_, err = m.Contributions(nil)
	assert.Error(t, err)
}

func TestNewBinary_Threshold(t *testing.T) {
	for _, threshold := range []float64{-0.1, 1, 1.5} {
		_, err := newBinary([]int{0, 1}, threshold)
		assert.Error(t, err, "threshold %v", threshold)
	}
	b, err := newBinary([]int{0, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, b.threshold)
}

func TestDecodeModel(t *testing.T) {
	t.Run("dispatches on kind", func(t *testing.T) {
		doc := []byte(`{"kind":"logistic_regression","version":"lr-7","classes":[0,1],"coef":[0.5],"intercept":-1}`)
		clf, h, err := decodeModel(doc, json.Unmarshal)
		require.NoError(t, err)
		assert.Equal(t, "lr-7", h.Version)
		assert.IsType(t, &LogisticRegression{}, clf)
		assert.Equal(t, 1, clf.NumFeatures())
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, _, err := decodeModel([]byte(`{"kind":"svm"}`), json.Unmarshal)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported model kind "svm"`)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, _, err := decodeModel([]byte(`{"kind":`), json.Unmarshal)
		assert.Error(t, err)
	})
}

func TestModelKinds(t *testing.T) {
	kinds := ModelKinds()
	assert.Contains(t, kinds, kindGaussianNB)
	assert.Contains(t, kinds, kindLogisticRegression)
}

func TestRegisterModel(t *testing.T) {
	const kind = "always_positive"
	RegisterModel(kind, func(data []byte, unmarshal Unmarshaler) (ports.Classifier, error) {
		return NewLogisticRegression([]int{0, 1}, []float64{0}, 10, 0)
	})
	t.Cleanup(func() {
		decodersMu.Lock()
		delete(modelDecoders, kind)
		decodersMu.Unlock()
	})

	assert.Contains(t, ModelKinds(), kind)
	clf, h, err := decodeModel([]byte(`{"kind":"always_positive","version":"v0"}`), json.Unmarshal)
	require.NoError(t, err)
	assert.Equal(t, "v0", h.Version)

	class, err := clf.Predict([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, 1, class)
}

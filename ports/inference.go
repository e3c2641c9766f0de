package ports

import (
	"termdeposit/domain/client"
)

// Preprocessor is a fitted, deterministic transformer from a client row to the
// numeric feature vector the classifier expects.
type Preprocessor interface {
	// Transform encodes one row. It fails on missing columns, wrong value types
	// and, depending on the fitted encoder, unknown categories.
	Transform(row client.Row) ([]float64, error)

	// InputColumns lists the columns Transform reads.
	InputColumns() []string

	// OutputDim is the length of every vector Transform returns.
	OutputDim() int
}

// FeatureNamer is implemented by preprocessors that can name each output feature,
// e.g. "age" or "job=management".
type FeatureNamer interface {
	OutputNames() []string
}

// Classifier is a fitted binary probabilistic model.
type Classifier interface {
	// Predict returns the predicted class value (0 or 1).
	Predict(features []float64) (int, error)

	// PredictProba returns the probability of each class, indexed like Classes.
	PredictProba(features []float64) ([]float64, error)

	// Classes lists the class values in probability order.
	Classes() []int

	// NumFeatures is the input width the model was fitted on.
	NumFeatures() int
}

// Explainer is implemented by classifiers that can attribute a prediction to
// individual input features. Positive weights push towards class 1.
type Explainer interface {
	Contributions(features []float64) ([]float64, error)
}

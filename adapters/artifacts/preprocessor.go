package artifacts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"termdeposit/domain/client"
)

const kindColumnTransformer = "column_transformer"

// Handling of categories that were not seen while fitting the encoder.
const (
	HandleUnknownError  = "error"
	HandleUnknownIgnore = "ignore"
)

type columnTransformerDoc struct {
	Kind    string `json:"kind" yaml:"kind"`
	Numeric struct {
		Columns []string  `json:"columns" yaml:"columns"`
		Mean    []float64 `json:"mean" yaml:"mean"`
		Scale   []float64 `json:"scale" yaml:"scale"`
	} `json:"numeric" yaml:"numeric"`
	Categorical struct {
		Columns       []string   `json:"columns" yaml:"columns"`
		Categories    [][]string `json:"categories" yaml:"categories"`
		HandleUnknown string     `json:"handle_unknown" yaml:"handle_unknown"`
	} `json:"categorical" yaml:"categorical"`
}

// ColumnTransformer standard-scales numeric columns and one-hot encodes categorical
// columns. The output is the numeric block followed by one block per categorical
// column, in declaration order.
type ColumnTransformer struct {
	numericCols   []string
	mean          []float64
	scale         []float64
	categoricCols []string
	categories    [][]string
	index         []map[string]int
	handleUnknown string
	outputDim     int
}

// NewColumnTransformer builds a transformer from fitted parameters.
// A zero scale is treated as 1, matching how scalers handle constant columns.
func NewColumnTransformer(numericCols []string, mean, scale []float64, categoricCols []string, categories [][]string, handleUnknown string) (*ColumnTransformer, error) {
	if len(mean) != len(numericCols) || len(scale) != len(numericCols) {
		return nil, fmt.Errorf("numeric block: %d columns but %d means and %d scales", len(numericCols), len(mean), len(scale))
	}
	if len(categories) != len(categoricCols) {
		return nil, fmt.Errorf("categorical block: %d columns but %d category lists", len(categoricCols), len(categories))
	}
	switch handleUnknown {
	case "":
		handleUnknown = HandleUnknownError
	case HandleUnknownError, HandleUnknownIgnore:
	default:
		return nil, fmt.Errorf("handle_unknown must be %q or %q, got %q", HandleUnknownError, HandleUnknownIgnore, handleUnknown)
	}

	seen := make(map[string]bool)
	for _, col := range append(append([]string(nil), numericCols...), categoricCols...) {
		if seen[col] {
			return nil, fmt.Errorf("column %q is declared twice", col)
		}
		seen[col] = true
	}

	ct := &ColumnTransformer{
		numericCols:   append([]string(nil), numericCols...),
		mean:          append([]float64(nil), mean...),
		scale:         make([]float64, len(scale)),
		categoricCols: append([]string(nil), categoricCols...),
		categories:    make([][]string, len(categories)),
		index:         make([]map[string]int, len(categories)),
		handleUnknown: handleUnknown,
		outputDim:     len(numericCols),
	}
	for i, s := range scale {
		if math.IsNaN(s) || math.IsInf(s, 0) || math.IsNaN(mean[i]) || math.IsInf(mean[i], 0) {
			return nil, fmt.Errorf("numeric column %q has non-finite scaling parameters", numericCols[i])
		}
		if s == 0 {
			s = 1
		}
		ct.scale[i] = s
	}
	for i, cats := range categories {
		if len(cats) == 0 {
			return nil, fmt.Errorf("categorical column %q has no categories", categoricCols[i])
		}
		ct.categories[i] = append([]string(nil), cats...)
		ct.index[i] = make(map[string]int, len(cats))
		for j, c := range cats {
			if _, dup := ct.index[i][c]; dup {
				return nil, fmt.Errorf("categorical column %q lists category %q twice", categoricCols[i], c)
			}
			ct.index[i][c] = j
		}
		ct.outputDim += len(cats)
	}
	return ct, nil
}

func decodeColumnTransformer(data []byte, unmarshal Unmarshaler) (*ColumnTransformer, error) {
	var doc columnTransformerDoc
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode preprocessor: %w", err)
	}
	if doc.Kind != kindColumnTransformer {
		return nil, fmt.Errorf("unsupported preprocessor kind %q", doc.Kind)
	}
	return NewColumnTransformer(
		doc.Numeric.Columns, doc.Numeric.Mean, doc.Numeric.Scale,
		doc.Categorical.Columns, doc.Categorical.Categories, doc.Categorical.HandleUnknown,
	)
}

// Transform encodes one row.
func (ct *ColumnTransformer) Transform(row client.Row) ([]float64, error) {
	out := make([]float64, ct.outputDim)

	numeric := out[:len(ct.numericCols)]
	for i, col := range ct.numericCols {
		v, ok := row[col]
		if !ok {
			return nil, fmt.Errorf("column %q is missing", col)
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("column %q: expected a number, got %T", col, v)
		}
		numeric[i] = f
	}
	floats.Sub(numeric, ct.mean)
	floats.Div(numeric, ct.scale)

	offset := len(ct.numericCols)
	for i, col := range ct.categoricCols {
		v, ok := row[col]
		if !ok {
			return nil, fmt.Errorf("column %q is missing", col)
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("column %q: expected a category, got %T", col, v)
		}
		j, known := ct.index[i][s]
		switch {
		case known:
			out[offset+j] = 1
		case ct.handleUnknown == HandleUnknownError:
			return nil, fmt.Errorf("found unknown category %q in column %q during transform", s, col)
		}
		offset += len(ct.categories[i])
	}
	return out, nil
}

// InputColumns lists the numeric columns then the categorical columns.
func (ct *ColumnTransformer) InputColumns() []string {
	cols := make([]string, 0, len(ct.numericCols)+len(ct.categoricCols))
	cols = append(cols, ct.numericCols...)
	return append(cols, ct.categoricCols...)
}

func (ct *ColumnTransformer) OutputDim() int { return ct.outputDim }

// OutputNames names each encoded feature: the column for numeric features and
// "column=category" for one-hot features.
func (ct *ColumnTransformer) OutputNames() []string {
	names := make([]string, 0, ct.outputDim)
	names = append(names, ct.numericCols...)
	for i, col := range ct.categoricCols {
		for _, c := range ct.categories[i] {
			names = append(names, col+"="+c)
		}
	}
	return names
}

package artifacts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termdeposit/domain/client"
)

func newTestTransformer(t *testing.T, handleUnknown string) *ColumnTransformer {
	t.Helper()
	ct, err := NewColumnTransformer(
		[]string{"age", "campaign"}, []float64{40, 2}, []float64{10, 0},
		[]string{"contact", "day_of_week"}, [][]string{{"cellular", "telephone"}, {"mon", "tue", "wed"}},
		handleUnknown,
	)
	require.NoError(t, err)
	return ct
}

func TestColumnTransformer_Transform(t *testing.T) {
	ct := newTestTransformer(t, HandleUnknownError)

	got, err := ct.Transform(client.Row{"age": 55.0, "campaign": 3.0, "contact": "telephone", "day_of_week": "wed"})
	require.NoError(t, err)

	want := []float64{1.5, 1, 0, 1, 0, 0, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Transform mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 7, ct.OutputDim())
	assert.Equal(t, []string{"age", "campaign", "contact", "day_of_week"}, ct.InputColumns())
	assert.Equal(t, []string{
		"age", "campaign",
		"contact=cellular", "contact=telephone",
		"day_of_week=mon", "day_of_week=tue", "day_of_week=wed",
	}, ct.OutputNames())
}

func TestColumnTransformer_TransformErrors(t *testing.T) {
	tests := []struct {
		name    string
		row     client.Row
		wantErr string
	}{
		{
			name:    "unknown category",
			row:     client.Row{"age": 30.0, "campaign": 1.0, "contact": "pigeon", "day_of_week": "mon"},
			wantErr: `found unknown category "pigeon" in column "contact" during transform`,
		},
		{
			name:    "missing numeric column",
			row:     client.Row{"campaign": 1.0, "contact": "cellular", "day_of_week": "mon"},
			wantErr: `column "age" is missing`,
		},
		{
			name:    "missing categorical column",
			row:     client.Row{"age": 30.0, "campaign": 1.0, "contact": "cellular"},
			wantErr: `column "day_of_week" is missing`,
		},
		{
			name:    "numeric column holds a string",
			row:     client.Row{"age": "thirty", "campaign": 1.0, "contact": "cellular", "day_of_week": "mon"},
			wantErr: `column "age": expected a number, got string`,
		},
		{
			name:    "categorical column holds a number",
			row:     client.Row{"age": 30.0, "campaign": 1.0, "contact": 2.0, "day_of_week": "mon"},
			wantErr: `column "contact": expected a category, got float64`,
		},
	}

	ct := newTestTransformer(t, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ct.Transform(tt.row)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestColumnTransformer_IgnoreUnknown(t *testing.T) {
	ct := newTestTransformer(t, HandleUnknownIgnore)

	got, err := ct.Transform(client.Row{"age": 40.0, "campaign": 2.0, "contact": "pigeon", "day_of_week": "tue"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 1, 0}, got)
}

func TestNewColumnTransformer_Rejects(t *testing.T) {
	tests := []struct {
		name          string
		numeric       []string
		mean, scale   []float64
		categoric     []string
		categories    [][]string
		handleUnknown string
	}{
		{"mean length", []string{"age"}, []float64{}, []float64{1}, nil, nil, ""},
		{"category list count", nil, nil, nil, []string{"job"}, nil, ""},
		{"bad handle_unknown", nil, nil, nil, nil, nil, "warn"},
		{"duplicate column", []string{"age"}, []float64{1}, []float64{1}, []string{"age"}, [][]string{{"x"}}, ""},
		{"empty categories", nil, nil, nil, []string{"job"}, [][]string{{}}, ""},
		{"duplicate category", nil, nil, nil, []string{"job"}, [][]string{{"admin.", "admin."}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewColumnTransformer(tt.numeric, tt.mean, tt.scale, tt.categoric, tt.categories, tt.handleUnknown)
			assert.Error(t, err)
		})
	}
}

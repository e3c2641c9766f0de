package client

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termdeposit/internal/errors"
)

func TestLikelySampleIsInDomain(t *testing.T) {
	require.NoError(t, LikelySample().Validate())
	require.NoError(t, DefaultRecord().Validate())
}

func TestValidateAgeBounds(t *testing.T) {
	tests := []struct {
		name    string
		age     int
		wantErr bool
	}{
		{"lower bound", MinAge, false},
		{"upper bound", MaxAge, false},
		{"below lower bound", MinAge - 1, true},
		{"above upper bound", MaxAge + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRecord()
			r.Age = tt.age
			err := r.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidatePDaysNeverContactedIsPlainValue(t *testing.T) {
	r := DefaultRecord()
	r.PDays = PDaysNeverContacted
	require.NoError(t, r.Validate())
	assert.Equal(t, float64(999), r.Row()[ColPDays])

	r.PDays = 0
	assert.NoError(t, r.Validate())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	r := LikelySample()
	r.Job = Job("astronaut")
	r.Campaign = 0
	r.Euribor3m = math.NaN()
	r.NrEmployed = math.Inf(1)

	err := r.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `job: unknown option "astronaut"`)
	assert.Contains(t, msg, "campaign: 0 is below 1")
	assert.Contains(t, msg, "euribor3m: must be a finite number")
	assert.Contains(t, msg, "nr.employed: must be a finite number")
}

func TestRowHasEveryColumn(t *testing.T) {
	row := LikelySample().Row()

	require.Len(t, row, len(FieldNames()))
	for _, name := range FieldNames() {
		assert.Contains(t, row, name)
	}
	assert.Equal(t, "management", row[ColJob])
	assert.Equal(t, 35.0, row[ColAge])
	assert.Equal(t, -30.0, row[ColConsConfIdx])
}

func TestFromValuesRoundTrip(t *testing.T) {
	want := LikelySample()

	got, err := FromValues(want.Values())
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestFromValuesAcceptsWholeFloatIntegers(t *testing.T) {
	values := DefaultRecord().Values()
	values[ColAge] = "42.0"

	got, err := FromValues(values)
	require.NoError(t, err)
	assert.Equal(t, 42, got.Age)
}

func TestFromValuesErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]string)
		wantCode string
		wantMsg  string
	}{
		{
			name:     "missing field",
			mutate:   func(v map[string]string) { delete(v, ColMonth) },
			wantCode: errors.CodeInvalidInput,
			wantMsg:  "month: value is required",
		},
		{
			name:     "not a number",
			mutate:   func(v map[string]string) { v[ColEuribor3m] = "high" },
			wantCode: errors.CodeInvalidInput,
			wantMsg:  `euribor3m: "high" is not a number`,
		},
		{
			name:     "fractional integer",
			mutate:   func(v map[string]string) { v[ColCampaign] = "1.5" },
			wantCode: errors.CodeInvalidInput,
			wantMsg:  `campaign: "1.5" is not a whole number`,
		},
		{
			name:     "huge whole float",
			mutate:   func(v map[string]string) { v[ColPDays] = "9.3e18" },
			wantCode: errors.CodeInvalidInput,
			wantMsg:  `pdays: "9.3e18" is out of range`,
		},
		{
			name:     "integer beyond int64",
			mutate:   func(v map[string]string) { v[ColPrevious] = "9223372036854775808" },
			wantCode: errors.CodeInvalidInput,
			wantMsg:  `previous: "9223372036854775808" is out of range`,
		},
		{
			name:     "infinite integer",
			mutate:   func(v map[string]string) { v[ColCampaign] = "-Inf" },
			wantCode: errors.CodeInvalidInput,
			wantMsg:  `campaign: "-Inf" is out of range`,
		},
		{
			name:     "nan integer",
			mutate:   func(v map[string]string) { v[ColAge] = "NaN" },
			wantCode: errors.CodeInvalidInput,
			wantMsg:  `age: "NaN" is not a whole number`,
		},
		{
			name:     "option outside closed set",
			mutate:   func(v map[string]string) { v[ColContact] = "pigeon" },
			wantCode: errors.CodeInvalidInput,
			wantMsg:  `contact: "pigeon" is not one of`,
		},
		{
			name:     "out of range",
			mutate:   func(v map[string]string) { v[ColAge] = "91" },
			wantCode: errors.CodeValidationError,
			wantMsg:  "age: 91 is outside [18, 90]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := DefaultRecord().Values()
			tt.mutate(values)

			_, err := FromValues(values)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

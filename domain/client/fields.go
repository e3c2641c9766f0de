package client

import "strings"

// FieldKind tells the form which widget renders a field.
type FieldKind string

const (
	KindNumber FieldKind = "number"
	KindSelect FieldKind = "select"
)

// Form sections, in display order.
const (
	SectionClient   = "Client Info"
	SectionContact  = "Contact Info"
	SectionCampaign = "Campaign & Economic Info"
)

// Field describes one input of the form and its domain.
type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Section string    `json:"section"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
	Integer bool      `json:"integer,omitempty"`
	Min     *float64  `json:"min,omitempty"`
	Max     *float64  `json:"max,omitempty"`
	Step    float64   `json:"step,omitempty"`
	Default string    `json:"default"`
}

func bound(v float64) *float64 { return &v }

func strs[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// Fields returns the ordered form definition. The order is the feature-column order.
func Fields() []Field {
	d := DefaultRecord().Values()
	sel := func(name, label, section string, options []string) Field {
		return Field{Name: name, Label: label, Section: section, Kind: KindSelect, Options: options, Default: d[name]}
	}
	integer := func(name, label, section string, lo, hi *float64) Field {
		return Field{Name: name, Label: label, Section: section, Kind: KindNumber, Integer: true, Min: lo, Max: hi, Step: 1, Default: d[name]}
	}
	float := func(name, label string) Field {
		return Field{Name: name, Label: label, Section: SectionCampaign, Kind: KindNumber, Step: 0.01, Default: d[name]}
	}

	return []Field{
		integer(ColAge, "Age", SectionClient, bound(MinAge), bound(MaxAge)),
		sel(ColJob, "Job", SectionClient, strs(Jobs())),
		sel(ColMarital, "Marital Status", SectionClient, strs(MaritalStatuses())),
		sel(ColEducation, "Education", SectionClient, strs(EducationLevels())),
		sel(ColDefault, "Has Credit in Default?", SectionClient, strs(YesNoUnknowns())),
		sel(ColHousing, "Housing Loan?", SectionClient, strs(YesNoUnknowns())),
		sel(ColLoan, "Personal Loan?", SectionClient, strs(YesNoUnknowns())),
		sel(ColContact, "Contact Type", SectionContact, strs(Contacts())),
		sel(ColMonth, "Last Contact Month", SectionContact, strs(Months())),
		sel(ColDayOfWeek, "Last Contact Day of Week", SectionContact, strs(DaysOfWeek())),
		integer(ColCampaign, "Number of Contacts (this campaign)", SectionCampaign, bound(MinCampaign), nil),
		integer(ColPDays, "Days Since Last Contact (999=never)", SectionCampaign, bound(MinPDays), nil),
		integer(ColPrevious, "Previous Contacts", SectionCampaign, bound(MinPrevious), nil),
		sel(ColPOutcome, "Previous Campaign Outcome", SectionCampaign, strs(PrevOutcomes())),
		float(ColEmpVarRate, "Employment Variation Rate"),
		float(ColConsPriceIdx, "Consumer Price Index"),
		float(ColConsConfIdx, "Consumer Confidence Index"),
		float(ColEuribor3m, "Euribor 3 Month Rate"),
		float(ColNrEmployed, "Number of Employees"),
	}
}

// FieldNames returns the 19 column names in feature-column order.
func FieldNames() []string {
	return []string{
		ColAge, ColJob, ColMarital, ColEducation, ColDefault, ColHousing, ColLoan,
		ColContact, ColMonth, ColDayOfWeek, ColCampaign, ColPDays, ColPrevious, ColPOutcome,
		ColEmpVarRate, ColConsPriceIdx, ColConsConfIdx, ColEuribor3m, ColNrEmployed,
	}
}

// Sections groups Fields by section, preserving order.
func Sections() []SectionFields {
	var out []SectionFields
	for _, f := range Fields() {
		if len(out) == 0 || out[len(out)-1].Title != f.Section {
			out = append(out, SectionFields{Title: f.Section})
		}
		out[len(out)-1].Fields = append(out[len(out)-1].Fields, f)
	}
	return out
}

// SectionFields is one titled group of form inputs.
type SectionFields struct {
	Title  string
	Fields []Field
}

// DefaultRecord is the state of a freshly rendered form.
func DefaultRecord() Record {
	return Record{
		Age:          30,
		Job:          JobAdmin,
		Marital:      MaritalDivorced,
		Education:    EducationBasic4y,
		Default:      No,
		Housing:      No,
		Loan:         No,
		Contact:      ContactCellular,
		Month:        January,
		DayOfWeek:    Monday,
		Campaign:     1,
		PDays:        PDaysNeverContacted,
		Previous:     0,
		POutcome:     OutcomeFailure,
		EmpVarRate:   0.5,
		ConsPriceIdx: 93.0,
		ConsConfIdx:  -35.0,
		Euribor3m:    2.0,
		NrEmployed:   5000.0,
	}
}

// LikelySample is the canonical profile of a client expected to subscribe.
func LikelySample() Record {
	return Record{
		Age:          35,
		Job:          JobManagement,
		Marital:      MaritalMarried,
		Education:    EducationUniversityDegree,
		Default:      No,
		Housing:      No,
		Loan:         No,
		Contact:      ContactCellular,
		Month:        May,
		DayOfWeek:    Monday,
		Campaign:     1,
		PDays:        PDaysNeverContacted,
		Previous:     0,
		POutcome:     OutcomeSuccess,
		EmpVarRate:   1.0,
		ConsPriceIdx: 93.5,
		ConsConfIdx:  -30,
		Euribor3m:    2.5,
		NrEmployed:   5100.0,
	}
}

// LikelyRationale is the illustrative explanation shown with LikelySample, as Markdown.
// It describes the profile, not the model's reasoning.
const LikelyRationale = `- **Job:** Management → higher income & stability
- **Education:** University degree → more financial literacy
- **No loans / default:** financially reliable
- **Previous campaign outcome:** Success
- **Economic indicators favorable:** High employment, positive euribor
- **Low campaign number & pdays=999:** first contact / fresh lead
`

// LikelyRationaleBullets returns LikelyRationale as plain bullet strings, Markdown emphasis removed.
func LikelyRationaleBullets() []string {
	var out []string
	for _, line := range strings.Split(LikelyRationale, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line == "" {
			continue
		}
		out = append(out, strings.ReplaceAll(line, "**", ""))
	}
	return out
}

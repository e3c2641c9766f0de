package client

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"termdeposit/internal/errors"
)

// Column names as expected by the fitted preprocessor.
const (
	ColAge          = "age"
	ColJob          = "job"
	ColMarital      = "marital"
	ColEducation    = "education"
	ColDefault      = "default"
	ColHousing      = "housing"
	ColLoan         = "loan"
	ColContact      = "contact"
	ColMonth        = "month"
	ColDayOfWeek    = "day_of_week"
	ColCampaign     = "campaign"
	ColPDays        = "pdays"
	ColPrevious     = "previous"
	ColPOutcome     = "poutcome"
	ColEmpVarRate   = "emp.var.rate"
	ColConsPriceIdx = "cons.price.idx"
	ColConsConfIdx  = "cons.conf.idx"
	ColEuribor3m    = "euribor3m"
	ColNrEmployed   = "nr.employed"
)

// Numeric bounds enforced by the form.
const (
	MinAge      = 18
	MaxAge      = 90
	MinCampaign = 1
	MinPDays    = 0
	MinPrevious = 0

	// PDaysNeverContacted is an ordinary pdays value meaning the client was not
	// contacted in a previous campaign.
	PDaysNeverContacted = 999
)

// Record is one client/campaign observation, the single input of a prediction.
type Record struct {
	Age          int          `json:"age"`
	Job          Job          `json:"job"`
	Marital      Marital      `json:"marital"`
	Education    Education    `json:"education"`
	Default      YesNoUnknown `json:"default"`
	Housing      YesNoUnknown `json:"housing"`
	Loan         YesNoUnknown `json:"loan"`
	Contact      Contact      `json:"contact"`
	Month        Month        `json:"month"`
	DayOfWeek    DayOfWeek    `json:"day_of_week"`
	Campaign     int          `json:"campaign"`
	PDays        int          `json:"pdays"`
	Previous     int          `json:"previous"`
	POutcome     PrevOutcome  `json:"poutcome"`
	EmpVarRate   float64      `json:"emp.var.rate"`
	ConsPriceIdx float64      `json:"cons.price.idx"`
	ConsConfIdx  float64      `json:"cons.conf.idx"`
	Euribor3m    float64      `json:"euribor3m"`
	NrEmployed   float64      `json:"nr.employed"`
}

// Row is the column-keyed view of a Record handed to the preprocessor.
// Numeric columns hold float64, categorical columns hold string.
type Row map[string]any

// Row flattens the record into its column-keyed form.
func (r Record) Row() Row {
	return Row{
		ColAge:          float64(r.Age),
		ColJob:          string(r.Job),
		ColMarital:      string(r.Marital),
		ColEducation:    string(r.Education),
		ColDefault:      string(r.Default),
		ColHousing:      string(r.Housing),
		ColLoan:         string(r.Loan),
		ColContact:      string(r.Contact),
		ColMonth:        string(r.Month),
		ColDayOfWeek:    string(r.DayOfWeek),
		ColCampaign:     float64(r.Campaign),
		ColPDays:        float64(r.PDays),
		ColPrevious:     float64(r.Previous),
		ColPOutcome:     string(r.POutcome),
		ColEmpVarRate:   r.EmpVarRate,
		ColConsPriceIdx: r.ConsPriceIdx,
		ColConsConfIdx:  r.ConsConfIdx,
		ColEuribor3m:    r.Euribor3m,
		ColNrEmployed:   r.NrEmployed,
	}
}

// Validate checks every field against its declared domain and reports all violations at once.
func (r Record) Validate() error {
	var problems []string
	bad := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if r.Age < MinAge || r.Age > MaxAge {
		bad("%s: %d is outside [%d, %d]", ColAge, r.Age, MinAge, MaxAge)
	}
	if !r.Job.Valid() {
		bad("%s: unknown option %q", ColJob, r.Job)
	}
	if !r.Marital.Valid() {
		bad("%s: unknown option %q", ColMarital, r.Marital)
	}
	if !r.Education.Valid() {
		bad("%s: unknown option %q", ColEducation, r.Education)
	}
	if !r.Default.Valid() {
		bad("%s: unknown option %q", ColDefault, r.Default)
	}
	if !r.Housing.Valid() {
		bad("%s: unknown option %q", ColHousing, r.Housing)
	}
	if !r.Loan.Valid() {
		bad("%s: unknown option %q", ColLoan, r.Loan)
	}
	if !r.Contact.Valid() {
		bad("%s: unknown option %q", ColContact, r.Contact)
	}
	if !r.Month.Valid() {
		bad("%s: unknown option %q", ColMonth, r.Month)
	}
	if !r.DayOfWeek.Valid() {
		bad("%s: unknown option %q", ColDayOfWeek, r.DayOfWeek)
	}
	if r.Campaign < MinCampaign {
		bad("%s: %d is below %d", ColCampaign, r.Campaign, MinCampaign)
	}
	if r.PDays < MinPDays {
		bad("%s: %d is below %d", ColPDays, r.PDays, MinPDays)
	}
	if r.Previous < MinPrevious {
		bad("%s: %d is below %d", ColPrevious, r.Previous, MinPrevious)
	}
	if !r.POutcome.Valid() {
		bad("%s: unknown option %q", ColPOutcome, r.POutcome)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{ColEmpVarRate, r.EmpVarRate},
		{ColConsPriceIdx, r.ConsPriceIdx},
		{ColConsConfIdx, r.ConsConfIdx},
		{ColEuribor3m, r.Euribor3m},
		{ColNrEmployed, r.NrEmployed},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			bad("%s: must be a finite number", f.name)
		}
	}

	if len(problems) > 0 {
		return errors.ValidationError("invalid client record: " + strings.Join(problems, "; "))
	}
	return nil
}

// FromValues builds a Record from raw string inputs keyed by column name, as submitted
// by an HTML form. Missing keys and unparsable values are reported together; the result
// is then validated against the form domains.
func FromValues(values map[string]string) (Record, error) {
	var (
		r        Record
		problems []string
	)
	get := func(name string) (string, bool) {
		v, ok := values[name]
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			problems = append(problems, fmt.Sprintf("%s: value is required", name))
			return "", false
		}
		return v, true
	}
	integer := func(name string, dst *int) {
		raw, ok := get(name)
		if !ok {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			// Number widgets may submit "35.0".
			f, ferr := strconv.ParseFloat(raw, 64)
			if ferr != nil || f != math.Trunc(f) {
				problems = append(problems, fmt.Sprintf("%s: %q is not a whole number", name, raw))
				return
			}
			if f < math.MinInt32 || f > math.MaxInt32 {
				problems = append(problems, fmt.Sprintf("%s: %q is out of range", name, raw))
				return
			}
			n = int(f)
		}
		*dst = n
	}
	float := func(name string, dst *float64) {
		raw, ok := get(name)
		if !ok {
			return
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %q is not a number", name, raw))
			return
		}
		*dst = f
	}
	option := func(name string, parse func(string) error) {
		raw, ok := get(name)
		if !ok {
			return
		}
		if err := parse(raw); err != nil {
			problems = append(problems, err.Error())
		}
	}

	integer(ColAge, &r.Age)
	option(ColJob, func(s string) (err error) { r.Job, err = ParseJob(s); return })
	option(ColMarital, func(s string) (err error) { r.Marital, err = ParseMarital(s); return })
	option(ColEducation, func(s string) (err error) { r.Education, err = ParseEducation(s); return })
	option(ColDefault, func(s string) (err error) { r.Default, err = ParseYesNoUnknown(ColDefault, s); return })
	option(ColHousing, func(s string) (err error) { r.Housing, err = ParseYesNoUnknown(ColHousing, s); return })
	option(ColLoan, func(s string) (err error) { r.Loan, err = ParseYesNoUnknown(ColLoan, s); return })
	option(ColContact, func(s string) (err error) { r.Contact, err = ParseContact(s); return })
	option(ColMonth, func(s string) (err error) { r.Month, err = ParseMonth(s); return })
	option(ColDayOfWeek, func(s string) (err error) { r.DayOfWeek, err = ParseDayOfWeek(s); return })
	integer(ColCampaign, &r.Campaign)
	integer(ColPDays, &r.PDays)
	integer(ColPrevious, &r.Previous)
	option(ColPOutcome, func(s string) (err error) { r.POutcome, err = ParsePrevOutcome(s); return })
	float(ColEmpVarRate, &r.EmpVarRate)
	float(ColConsPriceIdx, &r.ConsPriceIdx)
	float(ColConsConfIdx, &r.ConsConfIdx)
	float(ColEuribor3m, &r.Euribor3m)
	float(ColNrEmployed, &r.NrEmployed)

	if len(problems) > 0 {
		return r, errors.InvalidInput("invalid form input: " + strings.Join(problems, "; "))
	}
	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// Values is the inverse of FromValues, used to re-populate a form.
func (r Record) Values() map[string]string {
	ff := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	return map[string]string{
		ColAge:          strconv.Itoa(r.Age),
		ColJob:          string(r.Job),
		ColMarital:      string(r.Marital),
		ColEducation:    string(r.Education),
		ColDefault:      string(r.Default),
		ColHousing:      string(r.Housing),
		ColLoan:         string(r.Loan),
		ColContact:      string(r.Contact),
		ColMonth:        string(r.Month),
		ColDayOfWeek:    string(r.DayOfWeek),
		ColCampaign:     strconv.Itoa(r.Campaign),
		ColPDays:        strconv.Itoa(r.PDays),
		ColPrevious:     strconv.Itoa(r.Previous),
		ColPOutcome:     string(r.POutcome),
		ColEmpVarRate:   ff(r.EmpVarRate),
		ColConsPriceIdx: ff(r.ConsPriceIdx),
		ColConsConfIdx:  ff(r.ConsConfIdx),
		ColEuribor3m:    ff(r.Euribor3m),
		ColNrEmployed:   ff(r.NrEmployed),
	}
}

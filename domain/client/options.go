package client

import "fmt"

// Job is the client's occupation category.
type Job string

const (
	JobAdmin        Job = "admin."
	JobBlueCollar   Job = "blue-collar"
	JobEntrepreneur Job = "entrepreneur"
	JobHousemaid    Job = "housemaid"
	JobManagement   Job = "management"
	JobRetired      Job = "retired"
	JobSelfEmployed Job = "self-employed"
	JobServices     Job = "services"
	JobStudent      Job = "student"
	JobTechnician   Job = "technician"
	JobUnemployed   Job = "unemployed"
	JobUnknown      Job = "unknown"
)

// Marital is the client's marital status.
type Marital string

const (
	MaritalDivorced Marital = "divorced"
	MaritalMarried  Marital = "married"
	MaritalSingle   Marital = "single"
	MaritalUnknown  Marital = "unknown"
)

// Education is the client's highest education level.
type Education string

const (
	EducationBasic4y            Education = "basic.4y"
	EducationBasic6y            Education = "basic.6y"
	EducationBasic9y            Education = "basic.9y"
	EducationHighSchool         Education = "high.school"
	EducationIlliterate         Education = "illiterate"
	EducationProfessionalCourse Education = "professional.course"
	EducationUniversityDegree   Education = "university.degree"
	EducationUnknown            Education = "unknown"
)

// YesNoUnknown backs the default, housing and loan columns.
type YesNoUnknown string

const (
	No      YesNoUnknown = "no"
	Yes     YesNoUnknown = "yes"
	Unknown YesNoUnknown = "unknown"
)

// Contact is the communication type of the last contact.
type Contact string

const (
	ContactCellular  Contact = "cellular"
	ContactTelephone Contact = "telephone"
)

// Month is the month of the last contact.
type Month string

const (
	January   Month = "jan"
	February  Month = "feb"
	March     Month = "mar"
	April     Month = "apr"
	May       Month = "may"
	June      Month = "jun"
	July      Month = "jul"
	August    Month = "aug"
	September Month = "sep"
	October   Month = "oct"
	November  Month = "nov"
	December  Month = "dec"
)

// DayOfWeek is the weekday of the last contact.
type DayOfWeek string

const (
	Monday    DayOfWeek = "mon"
	Tuesday   DayOfWeek = "tue"
	Wednesday DayOfWeek = "wed"
	Thursday  DayOfWeek = "thu"
	Friday    DayOfWeek = "fri"
)

// PrevOutcome is the outcome of the previous marketing campaign (poutcome).
type PrevOutcome string

const (
	OutcomeFailure     PrevOutcome = "failure"
	OutcomeNonexistent PrevOutcome = "nonexistent"
	OutcomeSuccess     PrevOutcome = "success"
)

// Option lists are returned as fresh slices so callers cannot mutate the closed sets.

func Jobs() []Job {
	return []Job{
		JobAdmin, JobBlueCollar, JobEntrepreneur, JobHousemaid, JobManagement, JobRetired,
		JobSelfEmployed, JobServices, JobStudent, JobTechnician, JobUnemployed, JobUnknown,
	}
}

func MaritalStatuses() []Marital {
	return []Marital{MaritalDivorced, MaritalMarried, MaritalSingle, MaritalUnknown}
}

func EducationLevels() []Education {
	return []Education{
		EducationBasic4y, EducationBasic6y, EducationBasic9y, EducationHighSchool,
		EducationIlliterate, EducationProfessionalCourse, EducationUniversityDegree, EducationUnknown,
	}
}

func YesNoUnknowns() []YesNoUnknown {
	return []YesNoUnknown{No, Yes, Unknown}
}

func Contacts() []Contact {
	return []Contact{ContactCellular, ContactTelephone}
}

func Months() []Month {
	return []Month{
		January, February, March, April, May, June,
		July, August, September, October, November, December,
	}
}

func DaysOfWeek() []DayOfWeek {
	return []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday}
}

func PrevOutcomes() []PrevOutcome {
	return []PrevOutcome{OutcomeFailure, OutcomeNonexistent, OutcomeSuccess}
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (v Job) Valid() bool          { return contains(Jobs(), v) }
func (v Marital) Valid() bool      { return contains(MaritalStatuses(), v) }
func (v Education) Valid() bool    { return contains(EducationLevels(), v) }
func (v YesNoUnknown) Valid() bool { return contains(YesNoUnknowns(), v) }
func (v Contact) Valid() bool      { return contains(Contacts(), v) }
func (v Month) Valid() bool        { return contains(Months(), v) }
func (v DayOfWeek) Valid() bool    { return contains(DaysOfWeek(), v) }
func (v PrevOutcome) Valid() bool  { return contains(PrevOutcomes(), v) }

func parseOption[T ~string](column, raw string, set []T) (T, error) {
	v := T(raw)
	if !contains(set, v) {
		var zero T
		return zero, fmt.Errorf("%s: %q is not one of %v", column, raw, set)
	}
	return v, nil
}

func ParseJob(s string) (Job, error) { return parseOption(ColJob, s, Jobs()) }

func ParseMarital(s string) (Marital, error) {
	return parseOption(ColMarital, s, MaritalStatuses())
}

func ParseEducation(s string) (Education, error) {
	return parseOption(ColEducation, s, EducationLevels())
}

// ParseYesNoUnknown parses a value for the given yes/no/unknown column.
func ParseYesNoUnknown(column, s string) (YesNoUnknown, error) {
	return parseOption(column, s, YesNoUnknowns())
}

func ParseContact(s string) (Contact, error) { return parseOption(ColContact, s, Contacts()) }

func ParseMonth(s string) (Month, error) { return parseOption(ColMonth, s, Months()) }

func ParseDayOfWeek(s string) (DayOfWeek, error) {
	return parseOption(ColDayOfWeek, s, DaysOfWeek())
}

func ParsePrevOutcome(s string) (PrevOutcome, error) {
	return parseOption(ColPOutcome, s, PrevOutcomes())
}

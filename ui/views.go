package ui

import (
	"html/template"

	"termdeposit/adapters/artifacts"
	"termdeposit/domain/client"
	"termdeposit/domain/verdict"
	"termdeposit/internal/errors"
)

type fieldView struct {
	client.Field
	Value string
}

type sectionView struct {
	Title  string
	Fields []fieldView
}

type factorView struct {
	Feature string
	Weight  string
	Up      bool
}

// resultView is what the result fragment renders: either Error or a verdict.
type resultView struct {
	Error        string
	Likely       bool
	Headline     string
	Probability  string
	PredictionID string
	Factors      []factorView

	// Sample only.
	Rationale      template.HTML
	ModelDisagrees bool
}

type pageData struct {
	Sections []sectionView
	Result   *resultView
	Summary  artifacts.Summary
}

func newPage(values map[string]string, result *resultView, summary artifacts.Summary) pageData {
	sections := client.Sections()
	page := pageData{Sections: make([]sectionView, len(sections)), Result: result, Summary: summary}
	for i, sec := range sections {
		view := sectionView{Title: sec.Title, Fields: make([]fieldView, len(sec.Fields))}
		for j, f := range sec.Fields {
			v, ok := values[f.Name]
			if !ok {
				v = f.Default
			}
			view.Fields[j] = fieldView{Field: f, Value: v}
		}
		page.Sections[i] = view
	}
	return page
}

func verdictResult(v verdict.Verdict) *resultView {
	res := &resultView{
		Likely:       v.Label.Likely(),
		Headline:     v.Headline(),
		Probability:  v.Percent(),
		PredictionID: v.ID.String(),
	}
	for _, c := range v.Contributions {
		res.Factors = append(res.Factors, factorView{Feature: c.Feature, Weight: formatWeight(c.Weight), Up: c.Weight > 0})
	}
	return res
}

// errorResult shows the underlying cause of an inference failure, since the banner
// already says "Prediction error".
func errorResult(err error) *resultView {
	msg := err.Error()
	if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.CodeInferenceFailed && appErr.Cause != nil {
		msg = appErr.Cause.Error()
	}
	return &resultView{Error: msg}
}

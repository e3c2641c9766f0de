package artifacts

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"termdeposit/internal/errors"
	"termdeposit/ports"
)

// Artifact names used in errors and logs.
const (
	ArtifactPreprocessor = "preprocessor"
	ArtifactModel        = "model"
	ArtifactColumns      = "columns"
)

// Paths locates the three artifact files.
type Paths struct {
	Preprocessor string
	Model        string
	Columns      string
}

// PathsIn joins the three file names onto dir.
func PathsIn(dir, preprocessor, model, columns string) Paths {
	return Paths{
		Preprocessor: filepath.Join(dir, preprocessor),
		Model:        filepath.Join(dir, model),
		Columns:      filepath.Join(dir, columns),
	}
}

// Options tune how artifacts are loaded.
type Options struct {
	// Threshold overrides the decision threshold stored in the model document when > 0.
	Threshold float64
}

// Summary describes the loaded artifacts.
type Summary struct {
	ModelKind    string `json:"model_kind"`
	ModelVersion string `json:"model_version,omitempty"`
	Columns      int    `json:"columns"`
	Features     int    `json:"features"`
}

// Store holds the fitted preprocessor, classifier and expected column list.
// It is built once at startup and never mutated afterwards.
type Store struct {
	preprocessor ports.Preprocessor
	classifier   ports.Classifier
	columns      []string
	summary      Summary
}

// NewStore wraps already-built artifacts, e.g. fakes in tests.
func NewStore(preprocessor ports.Preprocessor, classifier ports.Classifier, columns []string) *Store {
	return &Store{
		preprocessor: preprocessor,
		classifier:   classifier,
		columns:      append([]string(nil), columns...),
		summary: Summary{
			ModelKind: fmt.Sprintf("%T", classifier),
			Columns:   len(columns),
			Features:  classifier.NumFeatures(),
		},
	}
}

type thresholdSetter interface {
	setThreshold(float64)
}

// Load reads and decodes the three artifacts concurrently. Any failure is an
// ARTIFACT_LOAD_FAILED error: the process cannot serve predictions without them.
func Load(ctx context.Context, paths Paths, opts Options) (*Store, error) {
	var (
		pre     *ColumnTransformer
		clf     ports.Classifier
		hdr     header
		columns []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, unmarshal, err := readDocument(paths.Preprocessor)
		if err != nil {
			return errors.ArtifactLoadFailed(ArtifactPreprocessor, err)
		}
		if pre, err = decodeColumnTransformer(data, unmarshal); err != nil {
			return errors.ArtifactLoadFailed(ArtifactPreprocessor, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, unmarshal, err := readDocument(paths.Model)
		if err != nil {
			return errors.ArtifactLoadFailed(ArtifactModel, err)
		}
		if clf, hdr, err = decodeModel(data, unmarshal); err != nil {
			return errors.ArtifactLoadFailed(ArtifactModel, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, unmarshal, err := readDocument(paths.Columns)
		if err != nil {
			return errors.ArtifactLoadFailed(ArtifactColumns, err)
		}
		if err := unmarshal(data, &columns); err != nil {
			return errors.ArtifactLoadFailed(ArtifactColumns, fmt.Errorf("decode columns: %w", err))
		}
		if len(columns) == 0 {
			return errors.ArtifactLoadFailed(ArtifactColumns, fmt.Errorf("column list is empty"))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ArtifactLoadFailed("all", err)
	}

	if opts.Threshold != 0 {
		ts, ok := clf.(thresholdSetter)
		if !ok {
			return nil, errors.ArtifactLoadFailed(ArtifactModel, fmt.Errorf("model kind %q does not support a custom threshold", hdr.Kind))
		}
		if opts.Threshold <= 0 || opts.Threshold >= 1 {
			return nil, errors.ConfigInvalid(fmt.Sprintf("decision threshold %v out of (0,1)", opts.Threshold))
		}
		ts.setThreshold(opts.Threshold)
	}

	return &Store{
		preprocessor: pre,
		classifier:   clf,
		columns:      columns,
		summary: Summary{
			ModelKind:    hdr.Kind,
			ModelVersion: hdr.Version,
			Columns:      len(columns),
			Features:     clf.NumFeatures(),
		},
	}, nil
}

func (s *Store) Preprocessor() ports.Preprocessor { return s.preprocessor }

func (s *Store) Classifier() ports.Classifier { return s.classifier }

// Columns returns a copy of the expected feature-column list.
func (s *Store) Columns() []string { return append([]string(nil), s.columns...) }

func (s *Store) Summary() Summary { return s.summary }

// CheckCompatibility verifies that the form fields, the column list, the
// preprocessor and the classifier agree. A mismatch is a configuration error.
func (s *Store) CheckCompatibility(fieldNames []string) error {
	var problems []string

	if dups := duplicates(s.columns); len(dups) > 0 {
		problems = append(problems, fmt.Sprintf("column list repeats %v", dups))
	}
	if missing, extra := setDiff(fieldNames, s.columns); len(missing)+len(extra) > 0 {
		problems = append(problems, fmt.Sprintf("form fields and column list differ: not in columns %v, not in form %v", missing, extra))
	}
	if missing, extra := setDiff(s.columns, s.preprocessor.InputColumns()); len(missing)+len(extra) > 0 {
		problems = append(problems, fmt.Sprintf("preprocessor inputs and column list differ: not encoded %v, unexpected %v", missing, extra))
	}
	if got, want := s.preprocessor.OutputDim(), s.classifier.NumFeatures(); got != want {
		problems = append(problems, fmt.Sprintf("preprocessor emits %d features but the classifier expects %d", got, want))
	}

	if len(problems) > 0 {
		return errors.ConfigInvalid("incompatible artifacts: " + strings.Join(problems, "; "))
	}
	return nil
}

// setDiff returns the members of want missing from got and the members of got not in want.
func setDiff(want, got []string) (missing, extra []string) {
	inGot := make(map[string]bool, len(got))
	for _, g := range got {
		inGot[g] = true
	}
	inWant := make(map[string]bool, len(want))
	for _, w := range want {
		inWant[w] = true
		if !inGot[w] {
			missing = append(missing, w)
		}
	}
	for _, g := range got {
		if !inWant[g] {
			extra = append(extra, g)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}

func duplicates(values []string) []string {
	seen := make(map[string]int, len(values))
	var dups []string
	for _, v := range values {
		seen[v]++
		if seen[v] == 2 {
			dups = append(dups, v)
		}
	}
	return dups
}

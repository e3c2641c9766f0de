package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"termdeposit/app"
	"termdeposit/internal"
	"termdeposit/internal/config"
	"termdeposit/internal/container"
	"termdeposit/internal/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dir     string
		asJSON  bool
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "artifactcheck",
		Short: "Verify that the fitted artifacts accept every input the form can produce",
		Long: `Loads the preprocessor, model and column list with the same configuration as the
server, checks that they agree with the form, then predicts the likely-subscriber
sample with every categorical option substituted and every numeric bound applied.

Exits non-zero if loading, the compatibility check or any sweep prediction fails.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("load %s: %w", envFile, err)
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.Artifacts.Dir = dir
			}
			return check(cmd.Context(), cmd.OutOrStdout(), cfg, asJSON)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "artifact directory (overrides ARTIFACT_DIR)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&envFile, "env-file", "", "optional .env file to load first")
	return cmd
}

type checkReport struct {
	ArtifactDir string `json:"artifact_dir"`
	Model       string `json:"model"`
	app.SweepReport
}

func check(ctx context.Context, out io.Writer, cfg *config.Config, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := internal.NewLogger(internal.LogLevelError)

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("FAIL [%s]: %w", errors.GetCode(err), err)
	}

	sweep, err := c.Inference.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("FAIL: sweep aborted: %w", err)
	}

	summary := c.Store.Summary()
	report := checkReport{
		ArtifactDir: cfg.Artifacts.Dir,
		Model:       strings.TrimSpace(summary.ModelKind + " " + summary.ModelVersion),
		SweepReport: sweep,
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(out, report)
	}

	if !sweep.OK() {
		return fmt.Errorf("FAIL: %d of %d sweep cases could not be predicted", len(sweep.Failures), sweep.Cases)
	}
	return nil
}

func printReport(out io.Writer, r checkReport) {
	fmt.Fprintf(out, "artifacts: %s\n", r.ArtifactDir)
	fmt.Fprintf(out, "model:     %s\n", r.Model)
	fmt.Fprintf(out, "cases:     %d (%d predicted subscribe)\n", r.Cases, r.Subscribe)
	if s := r.Summary; s != nil {
		fmt.Fprintf(out, "p(subscribe): mean=%.4f median=%.4f min=%.4f max=%.4f p90=%.4f\n", s.Mean, s.Median, s.Min, s.Max, s.P90)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(out, "  FAIL %s: %s\n", f.Case, f.Error)
	}
	if r.OK() {
		fmt.Fprintln(out, "PASS")
	}
}

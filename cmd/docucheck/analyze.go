// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docucheck/internal/audit"
	"github.com/pdiddy/docucheck/internal/ocr"
	"github.com/pdiddy/docucheck/internal/pipeline"
	"github.com/pdiddy/docucheck/internal/policy"
	"github.com/pdiddy/docucheck/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [images...]",
	Short: "Run the full verification pipeline on document images",
	Long: `Analyze runs OCR on the given document images, extracts identity
fields, cross-checks them against the applicant's declared data, and
evaluates visa eligibility. The structured report is written to stdout
as JSON; per-document progress goes to stderr.

Documents are given either as image paths or collected from a directory
with --intake-dir. The applicant's declared data comes from a YAML file
passed with --applicant.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	ctx := context.Background()

	applicantPath, _ := cmd.Flags().GetString("applicant")
	applicant, err := loadApplicant(applicantPath)
	if err != nil {
		return err
	}

	docs, err := collectDocuments(cmd, args)
	if err != nil {
		return err
	}

	if policyPath, _ := cmd.Flags().GetString("policy"); policyPath != "" {
		cfg.Policy.Path = policyPath
	}
	pol, sub := policy.LoadFile(cfg.Policy.Path)
	applyThresholdOverrides(&pol)
	in := pipeline.AnalysisInput{
		Applicant: applicant,
		Documents: docs,
		Policy:    pol,
	}
	if sub != nil {
		fmt.Fprintf(os.Stderr, "warning: using default policy: %s\n", sub.Reason)
		in.PolicyNote = sub.Reason
	}

	if !ocr.Available() {
		return fmt.Errorf("no usable Tesseract installation found (no language packs)")
	}
	engine, err := ocr.NewTesseractEngine(cfg.OCR)
	if err != nil {
		return err
	}
	defer engine.Close()

	analysis, err := pipeline.Analyze(ctx, engine, in, os.Stderr, nil)
	if errors.Is(err, pipeline.ErrNoDocuments) {
		return fmt.Errorf("no documents: pass image paths or --intake-dir")
	}
	if err != nil {
		return err
	}

	if noAudit, _ := cmd.Flags().GetBool("no-audit"); !noAudit && !cfg.Audit.Disabled {
		if err := saveToAudit(ctx, cfg.Audit.Dir, analysis.Report); err != nil {
			fmt.Fprintf(os.Stderr, "warning: audit save failed: %v\n", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysis.Report); err != nil {
		return err
	}

	if analysis.Summary.HasFailures() {
		fmt.Fprintf(os.Stderr, "%d of %d document(s) failed OCR\n",
			analysis.Summary.Failed, analysis.Summary.Total())
	}
	return nil
}

// applyThresholdOverrides lets the config file tighten or relax the
// decision bands without editing the policy file itself.
func applyThresholdOverrides(pol *types.Policy) {
	if viper.IsSet("policy.thresholds.eligible") {
		pol.Thresholds.Eligible = viper.GetInt("policy.thresholds.eligible")
	}
	if viper.IsSet("policy.thresholds.conditional") {
		pol.Thresholds.Conditional = viper.GetInt("policy.thresholds.conditional")
	}
}

// collectDocuments resolves the document list from positional image paths
// or, when none are given, from the intake directory.
func collectDocuments(cmd *cobra.Command, args []string) ([]pipeline.Document, error) {
	if len(args) > 0 {
		return pipeline.FromPaths(args), nil
	}
	intakeDir, _ := cmd.Flags().GetString("intake-dir")
	if intakeDir == "" {
		return nil, nil
	}
	return pipeline.Intake(intakeDir)
}

func loadApplicant(path string) (types.ApplicantProfile, error) {
	if path == "" {
		return types.ApplicantProfile{}, fmt.Errorf("--applicant is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ApplicantProfile{}, fmt.Errorf("reading applicant file: %w", err)
	}
	var applicant types.ApplicantProfile
	if err := yaml.Unmarshal(data, &applicant); err != nil {
		return types.ApplicantProfile{}, fmt.Errorf("parsing applicant file %s: %w", path, err)
	}
	return applicant, nil
}

func saveToAudit(ctx context.Context, dir string, rep *types.StructuredReport) error {
	store, err := audit.NewStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, rep)
}

func init() {
	analyzeCmd.Flags().String("applicant", "", "applicant declaration YAML file (required)")
	analyzeCmd.Flags().String("intake-dir", "", "directory to scan for document images")
	analyzeCmd.Flags().String("policy", "", "eligibility policy YAML file (overrides config)")
	analyzeCmd.Flags().Bool("no-audit", false, "skip persisting the report to the audit trail")

	rootCmd.AddCommand(analyzeCmd)
}

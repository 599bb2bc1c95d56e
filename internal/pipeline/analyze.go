// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/docucheck/internal/extract"
	"github.com/pdiddy/docucheck/internal/ocr"
	"github.com/pdiddy/docucheck/internal/policy"
	"github.com/pdiddy/docucheck/internal/reconcile"
	"github.com/pdiddy/docucheck/internal/report"
	"github.com/pdiddy/docucheck/pkg/types"
)

// ErrNoDocuments signals an analysis request carrying zero documents.
var ErrNoDocuments = errors.New("no documents to analyze")

// ErrAllDocumentsFailed signals a run in which no document survived OCR,
// so there is nothing to build a report from.
var ErrAllDocumentsFailed = errors.New("all documents failed OCR")

// AnalysisInput bundles everything one verification run needs.
type AnalysisInput struct {
	Applicant types.ApplicantProfile
	Documents []Document
	Policy    types.Policy

	// PolicyNote records a policy substitution, when one happened, so the
	// report can surface it.
	PolicyNote string
}

// Analysis is the outcome of one full verification run.
type Analysis struct {
	Report  *types.StructuredReport
	Results []Result
	Summary Summary
}

// Analyze drives one applicant's documents through the full pipeline and
// returns the structured report. Per-document OCR failures do not abort
// the run; the report is built from whatever documents survived. A run in
// which every document failed is a run-level failure and yields no report.
func Analyze(ctx context.Context, engine ocr.Engine, in AnalysisInput, w io.Writer, onTransition func(Transition)) (*Analysis, error) {
	if len(in.Documents) == 0 {
		return nil, ErrNoDocuments
	}

	results, summary := Run(ctx, engine, in.Documents, w, onTransition)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if summary.Done == 0 {
		return nil, fmt.Errorf("%w (%d attempted)", ErrAllDocumentsFailed, summary.Total())
	}

	extractions := make([]types.DocumentExtraction, 0, summary.Done)
	for _, res := range results {
		if res.State == StateDone {
			extractions = append(extractions, *res.Extraction)
		}
	}

	eligibility := policy.Evaluate(in.Applicant, extractions, in.Policy)

	var checks []types.ApplicantCheck
	if best, ok := extract.Best(extractions); ok {
		checks = reconcile.Checks(in.Applicant, best)
	}

	rep := report.Build(report.Params{
		RunID:       NewRunID(),
		GeneratedAt: time.Now().UTC(),
		Applicant:   in.Applicant,
		Extractions: extractions,
		Eligibility: eligibility,
		Checks:      checks,
		PolicyNote:  in.PolicyNote,
	})
	return &Analysis{Report: rep, Results: results, Summary: summary}, nil
}

// NewRunID returns a unique run identifier, time-prefixed so audit
// listings sort chronologically.
func NewRunID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return time.Now().UTC().Format("20060102T150405") + "-00000000"
	}
	return time.Now().UTC().Format("20060102T150405") + "-" + hex.EncodeToString(buf)
}

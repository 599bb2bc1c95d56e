// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences documents through OCR and field extraction
// and drives a full analysis run. Each document moves through a small
// lifecycle (pending → processing → done|error); transitions are emitted
// as values to an optional observer rather than by mutating caller-owned
// state. OCR runs strictly sequentially against the shared engine; every
// stage downstream of raw text is pure.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/docucheck/internal/extract"
	"github.com/pdiddy/docucheck/internal/ocr"
	"github.com/pdiddy/docucheck/pkg/types"
)

// State is a document's lifecycle state within one analysis attempt.
type State string

const (
	StatePending    State = "pending"
	StateProcessing State = "processing"
	StateDone       State = "done"
	StateError      State = "error"
)

// validTransitions encodes the lifecycle: done and error are terminal per
// attempt; re-queuing means a fresh pending entry created by the caller.
var validTransitions = map[State][]State{
	StatePending:    {StateProcessing},
	StateProcessing: {StateDone, StateError},
}

// ValidTransition reports whether from → to is a legal lifecycle step.
func ValidTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Document is one uploaded document awaiting analysis.
type Document struct {
	// ID identifies the document within the run.
	ID string

	// Path is the image file location handed to the OCR engine.
	Path string
}

// Transition is one observed lifecycle step of a document.
type Transition struct {
	DocumentID string
	From, To   State
}

// Result is a document's terminal outcome for one analysis attempt.
type Result struct {
	Document Document

	// State is done or error.
	State State

	// Extraction is set when State is done. Sparse extractions still
	// count as done; only an OCR engine failure produces error.
	Extraction *types.DocumentExtraction

	// Err describes the OCR failure when State is error.
	Err string
}

// Summary aggregates a run's document outcomes.
type Summary struct {
	Done   int
	Failed int
}

// Total returns the number of documents attempted.
func (s Summary) Total() int { return s.Done + s.Failed }

// HasFailures reports whether any document ended in the error state.
func (s Summary) HasFailures() bool { return s.Failed > 0 }

// Run processes documents sequentially through the OCR engine and the
// field extractor, writing per-document status lines to w. onTransition,
// when non-nil, observes every lifecycle step. A document whose OCR call
// fails ends in the error state; the run continues with the remaining
// documents, and already-done results stay valid.
func Run(ctx context.Context, engine ocr.Engine, docs []Document, w io.Writer, onTransition func(Transition)) ([]Result, Summary) {
	emit := func(id string, from, to State) {
		if onTransition != nil {
			onTransition(Transition{DocumentID: id, From: from, To: to})
		}
	}

	results := make([]Result, 0, len(docs))
	var summary Summary

	for _, doc := range docs {
		emit(doc.ID, StatePending, StateProcessing)

		raw, err := engine.Recognize(ctx, doc.Path)
		if err != nil {
			emit(doc.ID, StateProcessing, StateError)
			fmt.Fprintf(w, "failed:    %s (%v)\n", doc.ID, err)
			results = append(results, Result{Document: doc, State: StateError, Err: err.Error()})
			summary.Failed++
			continue
		}
		raw.DocumentID = doc.ID

		// Extraction never fails; unreadable text degrades confidence
		// instead.
		ext := extract.Extract(raw)
		emit(doc.ID, StateProcessing, StateDone)
		fmt.Fprintf(w, "processed: %s (confidence %d)\n", doc.ID, ext.Confidence)
		results = append(results, Result{Document: doc, State: StateDone, Extraction: &ext})
		summary.Done++
	}
	return results, summary
}

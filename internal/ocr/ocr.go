// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr defines the collaborator contract for optical character
// recognition and provides the Tesseract-backed engine. The engine is a
// scoped resource: created once per analysis run, reused sequentially
// across documents, and released with Close on every exit path. It is not
// safe for concurrent use.
package ocr

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docucheck/pkg/types"
)

// Engine recognizes text in a scanned document image. Implementations
// may fail per document with an engine-specific error; callers treat that
// as the document's terminal failure, never as a run abort.
type Engine interface {
	// Name returns the engine identifier (e.g. "tesseract").
	Name() string

	// Recognize runs OCR on the image at path and returns the raw text
	// with the engine's overall confidence estimate (0-100).
	Recognize(ctx context.Context, path string) (types.RawText, error)

	// Close releases engine resources. The engine is unusable afterwards.
	Close() error
}

// DocumentID derives the document identifier from an image path: the base
// file name without its extension.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

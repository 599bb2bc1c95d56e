// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/pdiddy/docucheck/pkg/types"
)

// TesseractEngine wraps a single gosseract client. The client is stateful,
// so recognition runs strictly sequentially on one engine instance.
type TesseractEngine struct {
	client *gosseract.Client
}

// NewTesseractEngine creates a Tesseract-backed engine configured for the
// given languages and DPI. The caller owns the engine and must Close it.
func NewTesseractEngine(cfg types.OCRConfig) (*TesseractEngine, error) {
	client := gosseract.NewClient()

	langs := cfg.Languages
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	if err := client.SetLanguage(langs...); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting OCR languages %v: %w", langs, err)
	}
	if cfg.DPI > 0 {
		if err := client.SetVariable("user_defined_dpi", fmt.Sprint(cfg.DPI)); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting OCR dpi: %w", err)
		}
	}
	return &TesseractEngine{client: client}, nil
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs OCR on one image. The overall confidence is the mean of
// the word-level confidences Tesseract reports.
func (e *TesseractEngine) Recognize(ctx context.Context, path string) (types.RawText, error) {
	select {
	case <-ctx.Done():
		return types.RawText{}, ctx.Err()
	default:
	}

	if err := e.client.SetImage(path); err != nil {
		return types.RawText{}, fmt.Errorf("loading image %s: %w", path, err)
	}
	text, err := e.client.Text()
	if err != nil {
		return types.RawText{}, fmt.Errorf("recognizing %s: %w", path, err)
	}

	return types.RawText{
		DocumentID: DocumentID(path),
		Text:       strings.TrimSpace(text),
		Confidence: e.meanWordConfidence(),
	}, nil
}

// meanWordConfidence averages the per-word confidences of the last
// recognition. Zero words (a blank page) scores zero.
func (e *TesseractEngine) meanWordConfidence() int {
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	return types.ClampConfidence(int(math.Round(sum / float64(len(boxes)))))
}

// Close releases the underlying Tesseract client.
func (e *TesseractEngine) Close() error {
	return e.client.Close()
}

// Available reports whether a usable Tesseract installation with at least
// one language pack is present.
func Available() bool {
	langs, err := gosseract.GetAvailableLanguages()
	return err == nil && len(langs) > 0
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/docucheck/internal/ocr"
)

// imageExtensions lists the scan formats Tesseract accepts directly.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// Intake scans dir for document images and returns them as pending
// documents in lexical order. Non-image files and subdirectories are
// skipped.
func Intake(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading intake directory %s: %w", dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		path := filepath.Join(dir, name)
		docs = append(docs, Document{ID: ocr.DocumentID(path), Path: path})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// FromPaths builds pending documents from explicit image paths, keeping
// the caller's order. Duplicate document IDs get a numeric suffix so each
// result stays addressable.
func FromPaths(paths []string) []Document {
	seen := make(map[string]int, len(paths))
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		id := ocr.DocumentID(path)
		if n := seen[id]; n > 0 {
			id = fmt.Sprintf("%s-%d", id, n+1)
		}
		seen[ocr.DocumentID(path)]++
		docs = append(docs, Document{ID: id, Path: path})
	}
	return docs
}

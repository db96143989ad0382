// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes a run's publications as a result document.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-fetch/pkg/types"
)

// DefaultPath is the destination used when none is configured.
const DefaultPath = "publications.json"

// Writer writes result documents. The zero value writes JSON stamped with
// the current local time.
type Writer struct {
	// Format forces json or yaml. Empty picks by path extension.
	Format types.OutputFormat

	// Now supplies the run timestamp; nil means time.Now.
	Now func() time.Time
}

// NewWriter returns a Writer for the configured format.
func NewWriter(cfg types.OutputConfig) *Writer {
	return &Writer{Format: cfg.Format}
}

// Document wraps pubs with a timestamp and count. A nil slice becomes an
// empty one so the document always carries a publications array.
func (w *Writer) Document(pubs []types.Publication) types.ResultDocument {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	if pubs == nil {
		pubs = []types.Publication{}
	}
	return types.ResultDocument{
		LastUpdated:       now().Format(types.TimestampLayout),
		TotalPublications: len(pubs),
		Publications:      pubs,
	}
}

// Write serializes pubs to path, replacing any existing file, and returns
// the path written.
func (w *Writer) Write(pubs []types.Publication, path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := Marshal(w.Document(pubs), formatFor(w.Format, path))
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Marshal encodes doc in the given format. JSON output is indented by two
// spaces and leaves non-ASCII and markup characters unescaped.
func Marshal(doc types.ResultDocument, format types.OutputFormat) ([]byte, error) {
	switch format {
	case types.FormatYAML:
		data, err := yaml.Marshal(&doc)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	case types.FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Read loads a result document written by Write.
func Read(path string) (types.ResultDocument, error) {
	var doc types.ResultDocument

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("reading %s: %w", path, err)
	}

	switch formatFor("", path) {
	case types.FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return doc, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// formatFor returns format, or the format implied by path when format is empty.
func formatFor(format types.OutputFormat, path string) types.OutputFormat {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return types.FormatYAML
	default:
		return types.FormatJSON
	}
}

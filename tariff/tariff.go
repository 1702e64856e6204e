// Package tariff extracts structured hotel tariff rows from OCR markdown.
//
// The input is the markdown-flavoured text an OCR service produces for a
// scanned tariff PDF: pipe-delimited tables with inconsistent headers,
// merged cells, season blocks, and abbreviated meal-plan codes. The output
// is a flat, denormalized row set mirroring the source document's grid.
//
// Extraction is an ordered list of strategies tried until one yields rows:
//
//   - strict_grid     — the vendor's canonical multi-season grid
//     ("Room Category" header plus a MAP data row)
//   - season_blocks   — season/date header lines, each followed by its own
//     tariff table
//   - narrative       — a language-model collaborator asked to emit the
//     table directly (when configured)
//   - generic_table   — the first markdown table found anywhere in the text
//
// All parsers are deterministic and network-free. OCR and narrative
// extraction are pluggable collaborators behind small interfaces, so the
// core stays testable without credentials.
package tariff

import (
	"context"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Document identifies one source document: raw bytes, a remote locator,
// or both. Name is used for the Hotel field and as the artifact key.
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Data []byte `json:"-"`
}

// BaseName returns the document name with directory and extension stripped.
func (d Document) BaseName() string {
	name := d.Name
	if name == "" {
		name = d.URL
	}
	name = path.Base(strings.TrimRight(name, "/"))
	name = filepath.Base(name)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// OCRProvider turns a document into OCR markdown text. An empty string
// means "no usable text", not an error.
type OCRProvider interface {
	ExtractText(ctx context.Context, doc Document) (string, error)
}

// NarrativeExtractor reconstructs a markdown tariff table from free text.
// The instructions string is the contract the collaborator must honour
// (column order, exclusions). An empty result or an error both count as a
// decline.
type NarrativeExtractor interface {
	ExtractTable(ctx context.Context, text, instructions string) (string, error)
}

// Recorder receives diagnostic artifacts produced during extraction. It is
// advisory: implementations must not fail the pipeline, and nothing written
// here is ever read back.
type Recorder interface {
	RecordOCRText(doc, text string)
	RecordNarrativeTable(doc, markdown string)
	RecordRun(doc, stage string, rows int, elapsed time.Duration)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls per-page text out of PDF documents. Backends
// (ledongthuc, pdfcpu, pdftotext) implement the Extractor interface; the batch
// driver only ever sees page strings.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/pdftext/internal/container"
	"github.com/pdiddy/pdftext/pkg/types"
)

// ErrUnknownBackend is returned by New for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown extraction backend")

// pageSeparator follows every non-empty page in the joined text.
const pageSeparator = "\n\n"

// Extractor returns the text of every page of a PDF, in page order. A page
// without extractable text yields "". Each call opens the document afresh.
type Extractor interface {
	// Name identifies the backend in log lines.
	Name() string

	// ExtractPages reads the PDF at path and returns one string per page.
	ExtractPages(path string) ([]string, error)
}

// JoinPages concatenates page texts, appending a blank line after each page
// that produced any text. Empty pages contribute nothing at all.
func JoinPages(pages []string) string {
	var b strings.Builder
	for _, p := range pages {
		if p == "" {
			continue
		}
		b.WriteString(p)
		b.WriteString(pageSeparator)
	}
	return b.String()
}

// New builds the extractor selected by cfg.Backend. The pdftotext backend
// needs a working container runtime with the configured image present;
// that check happens here so a missing image is a configuration error rather
// than a failure on every file.
func New(cfg types.ExtractionConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendLedongthuc, "":
		return NewLedongthucExtractor(), nil
	case types.BackendPdfcpu:
		return NewPdfcpuExtractor(), nil
	case types.BackendPdftotext:
		rt, err := container.Select(cfg.ContainerRuntime)
		if err != nil {
			return nil, err
		}
		return NewPdftotextExtractor(rt, cfg.ContainerImage)
	}
	return nil, fmt.Errorf("%w %q (want %s, %s, or %s)", ErrUnknownBackend, cfg.Backend,
		types.BackendLedongthuc, types.BackendPdfcpu, types.BackendPdftotext)
}

// recoverPanic turns a panic inside a PDF parser into an error on *err. Some
// parsers panic on malformed input instead of returning an error.
func recoverPanic(path string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("parsing %s: malformed PDF: %v", path, r)
	}
}

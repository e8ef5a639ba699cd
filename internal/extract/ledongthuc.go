// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// LedongthucExtractor reads the embedded text layer with the pure-Go
// github.com/ledongthuc/pdf parser. It is the default backend.
type LedongthucExtractor struct{}

// NewLedongthucExtractor creates the default pure-Go extractor.
func NewLedongthucExtractor() *LedongthucExtractor {
	return &LedongthucExtractor{}
}

// Name returns "ledongthuc".
func (e *LedongthucExtractor) Name() string { return "ledongthuc" }

// ExtractPages opens path and returns the plain text of each page. Pages
// whose object is missing from the page tree yield "". A text error on any
// page fails the whole document.
func (e *LedongthucExtractor) ExtractPages(path string) (pages []string, err error) {
	defer recoverPanic(path, &err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages = make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		// Font resource names are page-local; nil makes the library resolve
		// them against this page's own resources.
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives PDF-to-text conversion: for each document it
// extracts page text, joins the pages, normalizes the result and writes a
// sibling output file. Each document is isolated; a failure is reported and
// the batch moves on.
package convert

import (
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/pdftext/internal/discover"
	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/internal/normalize"
	"github.com/pdiddy/pdftext/pkg/types"
)

// DefaultOutputExt is the extension given to output files.
const DefaultOutputExt = ".md"

// Options controls how extracted text is cleaned and where it is written.
type Options struct {
	// OutputExt replaces the PDF extension on the output file.
	OutputExt string

	// Level is the cleanup applied before writing (default light).
	Level normalize.Level

	// Paragraphs is passed to the normalizer for normalize.LevelFull.
	Paragraphs normalize.ParagraphMode
}

func (o Options) outputExt() string {
	if o.OutputExt == "" {
		return DefaultOutputExt
	}
	return o.OutputExt
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int

	// FailedDocs lists the file names of documents that failed, in
	// processing order.
	FailedDocs []string
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Convert extracts, joins and cleans doc without writing anything.
func Convert(ex extract.Extractor, doc types.Document, opts Options) (art types.OutputArtifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting %s with %s: panic: %v", doc.Path, ex.Name(), r)
		}
	}()

	pages, err := ex.ExtractPages(doc.Path)
	if err != nil {
		return types.OutputArtifact{}, fmt.Errorf("extracting: %w", err)
	}

	return types.OutputArtifact{
		Path: types.OutputPath(doc.Path, opts.outputExt()),
		Text: normalize.Clean(extract.JoinPages(pages), opts.Level, opts.Paragraphs),
	}, nil
}

// Write stores art as UTF-8 text, replacing any existing file.
func Write(art types.OutputArtifact) error {
	if err := os.WriteFile(art.Path, []byte(art.Text), 0o644); err != nil {
		return fmt.Errorf("writing: %w", err)
	}
	return nil
}

// ConvertDocument converts a single PDF and writes the sibling output file,
// printing progress to w. Every error is caught here and reported; the
// caller only sees the status.
func ConvertDocument(ex extract.Extractor, doc types.Document, opts Options, w io.Writer) types.ConversionStatus {
	fmt.Fprintf(w, "Extracting: %s\n", doc.Path)

	art, err := Convert(ex, doc, opts)
	if err == nil {
		err = Write(art)
	}
	if err != nil {
		fmt.Fprintf(w, "Failed to extract %s: %v\n", doc.Name(), err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "Saved to: %s\n", art.Path)
	return types.ConversionDone
}

// ConvertBatch processes docs one after another, printing per-file status to
// w and returning a summary.
func ConvertBatch(ex extract.Extractor, docs []types.Document, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, doc := range docs {
		switch ConvertDocument(ex, doc, opts, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionFailed:
			result.Failed++
			result.FailedDocs = append(result.FailedDocs, doc.Name())
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}

// ConvertPaths wraps each path in a Document and delegates to ConvertBatch.
func ConvertPaths(ex extract.Extractor, paths []string, opts Options, w io.Writer) BatchResult {
	docs := make([]types.Document, len(paths))
	for i, p := range paths {
		docs[i] = types.Document{Path: p}
	}
	return ConvertBatch(ex, docs, opts, w)
}

// ConvertDir discovers the input files in dir and converts them. An error is
// returned only when dir itself cannot be used; per-document failures are
// reported in the BatchResult.
func ConvertDir(ex extract.Extractor, dir string, match discover.Options, opts Options, w io.Writer) (BatchResult, error) {
	paths, err := discover.Discover(dir, match)
	if err != nil {
		return BatchResult{}, err
	}

	suffix := match.Suffix
	if suffix == "" {
		suffix = discover.DefaultSuffix
	}
	fmt.Fprintf(w, "Found %d %s files in %s.\n", len(paths), suffix, dir)

	return ConvertPaths(ex, paths, opts, w), nil
}

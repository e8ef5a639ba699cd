// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the pdftext packages.
package types

import (
	"path/filepath"
	"strings"
)

// ConversionStatus indicates the outcome of processing one document.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Document is a PDF on disk, identified by its path. It is only ever read.
type Document struct {
	// Path is the filesystem path of the PDF.
	Path string `json:"path" yaml:"path"`
}

// Name returns the file name of the document without its directory.
func (d Document) Name() string {
	return filepath.Base(d.Path)
}

// OutputArtifact is the text produced for one Document and where it goes.
type OutputArtifact struct {
	// Path is the destination file, a sibling of the source PDF.
	Path string `json:"path" yaml:"path"`

	// Text is the normalized text written to Path.
	Text string `json:"-" yaml:"-"`
}

// OutputPath derives the artifact path for pdfPath: same directory, same base
// name with its final extension replaced by ext. "books/a.b.pdf" with ".md"
// gives "books/a.b.md". A leading dot does not start an extension, so
// ".pdf" gives ".pdf.md".
func OutputPath(pdfPath, ext string) string {
	dir, file := filepath.Split(pdfPath)
	base := strings.TrimSuffix(file, filepath.Ext(file))
	if base == "" {
		base = file
	}
	return filepath.Join(dir, base+ext)
}

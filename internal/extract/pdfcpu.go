// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PdfcpuExtractor reads the document with pdfcpu and scrapes the string
// operands of the text-showing operators out of each page content stream.
// It copes with files the ledongthuc parser rejects, but it does not apply
// font encodings: text in simple fonts comes out as Latin-1 and text in
// composite (CID) fonts comes out garbled.
type PdfcpuExtractor struct {
	conf *model.Configuration
}

// NewPdfcpuExtractor creates an extractor with relaxed validation and without
// touching the pdfcpu user configuration directory.
func NewPdfcpuExtractor() *PdfcpuExtractor {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PdfcpuExtractor{conf: conf}
}

// Name returns "pdfcpu".
func (e *PdfcpuExtractor) Name() string { return "pdfcpu" }

// ExtractPages reads and validates path, then decodes each page's content.
// A page whose content cannot be decoded yields "".
func (e *PdfcpuExtractor) ExtractPages(path string) (pages []string, err error) {
	defer recoverPanic(path, &err)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, e.conf)
	if err != nil {
		return nil, fmt.Errorf("reading PDF %s with pdfcpu: %w", path, err)
	}

	pages = make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pages = append(pages, pageContentText(ctx, pageNr))
	}
	return pages, nil
}

func pageContentText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return contentStreamText(data)
}

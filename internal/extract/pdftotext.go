// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/pdftext/internal/container"
)

// DefaultPdftotextImage is the container image used when none is configured.
// Any image whose PATH contains poppler's pdftotext works.
const DefaultPdftotextImage = "pdftotext:latest"

// pdftotextArgs makes pdftotext read the PDF from stdin and write UTF-8 text
// to stdout. pdftotext ends every page with a form feed.
var pdftotextArgs = []string{"pdftotext", "-enc", "UTF-8", "-", "-"}

// PdftotextExtractor pipes the PDF through poppler's pdftotext running in a
// container. It depends on a container.Runtime injected at construction.
type PdftotextExtractor struct {
	runtime container.Runtime
	image   string
}

// NewPdftotextExtractor creates an extractor that runs image (or
// DefaultPdftotextImage) with rt. It verifies the image exists locally.
func NewPdftotextExtractor(rt container.Runtime, image string) (*PdftotextExtractor, error) {
	if image == "" {
		image = DefaultPdftotextImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextExtractor{runtime: rt, image: image}, nil
}

// Name returns "pdftotext".
func (e *PdftotextExtractor) Name() string { return "pdftotext" }

// ExtractPages streams path into the container and splits the output on
// form feeds.
func (e *PdftotextExtractor) ExtractPages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := e.runtime.Run(e.image, pdftotextArgs, f, &out); err != nil {
		return nil, fmt.Errorf("extracting %s with pdftotext: %w", path, err)
	}
	return splitFormFeeds(out.String()), nil
}

// splitFormFeeds splits pdftotext output into pages. The form feed after the
// last page does not start another page.
func splitFormFeeds(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\f")
	return strings.Split(s, "\f")
}

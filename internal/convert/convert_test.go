// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdftext/internal/discover"
	"github.com/pdiddy/pdftext/internal/normalize"
	"github.com/pdiddy/pdftext/pkg/types"
)

// fakeExtractor implements extract.Extractor for testing. It returns canned
// pages or an error per file name, and panics for names in panics.
type fakeExtractor struct {
	pages  map[string][]string
	errs   map[string]error
	panics map[string]bool
	calls  []string
}

func (f *fakeExtractor) Name() string { return "fake" }

func (f *fakeExtractor) ExtractPages(path string) ([]string, error) {
	name := filepath.Base(path)
	f.calls = append(f.calls, name)
	if f.panics[name] {
		panic("index out of range")
	}
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	if pages, ok := f.pages[name]; ok {
		return pages, nil
	}
	return nil, errors.New("unexpected path: " + path)
}

// setupDir creates a temporary directory holding the named fake PDFs.
func setupDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.7"), 0o644))
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestConvertDocument(t *testing.T) {
	tests := []struct {
		name       string
		extractor  *fakeExtractor
		opts       Options
		wantStatus types.ConversionStatus
		wantLog    string
		wantText   string
	}{
		{
			name: "successful conversion with light cleanup",
			extractor: &fakeExtractor{pages: map[string][]string{
				"book.pdf": {"An exam-\nple\nline", "Next page"},
			}},
			wantStatus: types.ConversionDone,
			wantLog:    "Saved to:",
			wantText:   "An example\nline\n\nNext page\n\n",
		},
		{
			name: "full cleanup",
			extractor: &fakeExtractor{pages: map[string][]string{
				"book.pdf": {"An exam-\nple\nline", "Next page"},
			}},
			opts:       Options{Level: normalize.LevelFull, Paragraphs: normalize.ParagraphsCollapse},
			wantStatus: types.ConversionDone,
			wantLog:    "Saved to:",
			wantText:   "An example line Next page ",
		},
		{
			name: "full cleanup preserving paragraphs",
			extractor: &fakeExtractor{pages: map[string][]string{
				"book.pdf": {"An exam-\nple\nline", "Next page"},
			}},
			opts:       Options{Level: normalize.LevelFull, Paragraphs: normalize.ParagraphsPreserve},
			wantStatus: types.ConversionDone,
			wantLog:    "Saved to:",
			wantText:   "An example line\n\nNext page\n\n",
		},
		{
			name:       "extraction failure",
			extractor:  &fakeExtractor{errs: map[string]error{"book.pdf": errors.New("file has not been decrypted")}},
			wantStatus: types.ConversionFailed,
			wantLog:    "Failed to extract book.pdf: extracting: file has not been decrypted",
		},
		{
			name:       "extractor panic is contained",
			extractor:  &fakeExtractor{panics: map[string]bool{"book.pdf": true}},
			wantStatus: types.ConversionFailed,
			wantLog:    "Failed to extract book.pdf:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupDir(t, "book.pdf")
			doc := types.Document{Path: filepath.Join(dir, "book.pdf")}
			var log bytes.Buffer

			status := ConvertDocument(tt.extractor, doc, tt.opts, &log)

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, log.String(), "Extracting: "+doc.Path)
			assert.Contains(t, log.String(), tt.wantLog)

			mdPath := filepath.Join(dir, "book.md")
			if tt.wantStatus == types.ConversionDone {
				assert.Equal(t, tt.wantText, readFile(t, mdPath))
				assert.Contains(t, log.String(), "Saved to: "+mdPath)
			} else {
				assert.NoFileExists(t, mdPath)
			}
		})
	}
}

func TestConvertDocument_OverwritesExistingOutput(t *testing.T) {
	dir := setupDir(t, "book.pdf")
	mdPath := filepath.Join(dir, "book.md")
	require.NoError(t, os.WriteFile(mdPath, []byte("stale content that is much longer than the new text"), 0o644))

	ex := &fakeExtractor{pages: map[string][]string{"book.pdf": {"fresh"}}}
	var log bytes.Buffer
	status := ConvertDocument(ex, types.Document{Path: filepath.Join(dir, "book.pdf")}, Options{}, &log)

	require.Equal(t, types.ConversionDone, status)
	assert.Equal(t, "fresh\n\n", readFile(t, mdPath))
}

func TestConvertDocument_WriteFailure(t *testing.T) {
	dir := setupDir(t, "book.pdf")
	// A directory in place of the output file makes the write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "book.md"), 0o755))

	ex := &fakeExtractor{pages: map[string][]string{"book.pdf": {"text"}}}
	var log bytes.Buffer
	status := ConvertDocument(ex, types.Document{Path: filepath.Join(dir, "book.pdf")}, Options{}, &log)

	assert.Equal(t, types.ConversionFailed, status)
	assert.Contains(t, log.String(), "Failed to extract book.pdf: writing:")
}

func TestConvertDocument_SkipsEmptyPages(t *testing.T) {
	dir := setupDir(t, "book.pdf")
	ex := &fakeExtractor{pages: map[string][]string{"book.pdf": {"", "Hello", "", "World"}}}

	var log bytes.Buffer
	status := ConvertDocument(ex, types.Document{Path: filepath.Join(dir, "book.pdf")}, Options{}, &log)

	require.Equal(t, types.ConversionDone, status)
	assert.Equal(t, "Hello\n\nWorld\n\n", readFile(t, filepath.Join(dir, "book.md")))
}

func TestConvertBatch_IsolatesFailures(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf", "c.pdf")
	ex := &fakeExtractor{
		pages: map[string][]string{
			"a.pdf": {"Paper A"},
			"c.pdf": {"Paper C"},
		},
		errs: map[string]error{
			"b.pdf": errors.New("malformed PDF: invalid xref"),
		},
	}

	var log bytes.Buffer
	result := ConvertPaths(ex, []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "c.pdf"),
	}, Options{}, &log)

	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())
	assert.Equal(t, []string{"b.pdf"}, result.FailedDocs)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, ex.calls)

	assert.Equal(t, "Paper A\n\n", readFile(t, filepath.Join(dir, "a.md")))
	assert.Equal(t, "Paper C\n\n", readFile(t, filepath.Join(dir, "c.md")))
	assert.NoFileExists(t, filepath.Join(dir, "b.md"))

	output := log.String()
	assert.Contains(t, output, "Failed to extract b.pdf: extracting: malformed PDF: invalid xref")
	assert.Contains(t, output, "Batch summary: 2 converted, 1 failed (total: 3)")
}

func TestConvertDir(t *testing.T) {
	dir := setupDir(t, "b.pdf", "a.pdf", "upper.PDF", "notes.txt")
	ex := &fakeExtractor{pages: map[string][]string{
		"a.pdf":     {"first"},
		"b.pdf":     {"second"},
		"upper.PDF": {"third"},
	}}

	var log bytes.Buffer
	result, err := ConvertDir(ex, dir, discover.Options{}, Options{}, &log)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, ex.calls)
	assert.True(t, strings.HasPrefix(log.String(), "Found 2 .pdf files in "+dir+"."))
	assert.NoFileExists(t, filepath.Join(dir, "upper.md"))
}

func TestConvertDir_IgnoreCase(t *testing.T) {
	dir := setupDir(t, "a.pdf", "upper.PDF")
	ex := &fakeExtractor{pages: map[string][]string{
		"a.pdf":     {"first"},
		"upper.PDF": {"third"},
	}}

	var log bytes.Buffer
	result, err := ConvertDir(ex, dir, discover.Options{IgnoreCase: true}, Options{}, &log)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, "third\n\n", readFile(t, filepath.Join(dir, "upper.md")))
}

func TestConvertDir_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "books")
	ex := &fakeExtractor{}

	var log bytes.Buffer
	_, err := ConvertDir(ex, dir, discover.Options{}, Options{}, &log)

	require.ErrorIs(t, err, discover.ErrInputDir)
	assert.Empty(t, ex.calls)
	assert.Empty(t, log.String())
}

func TestConvertDir_Deterministic(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf")
	ex := &fakeExtractor{pages: map[string][]string{
		"a.pdf": {"Lorem ip-\nsum", "", "dolor\nsit"},
		"b.pdf": {"amet"},
	}}

	snapshot := func() map[string]string {
		out := map[string]string{}
		for _, name := range []string{"a.md", "b.md"} {
			out[name] = readFile(t, filepath.Join(dir, name))
		}
		return out
	}

	_, err := ConvertDir(ex, dir, discover.Options{}, Options{}, &bytes.Buffer{})
	require.NoError(t, err)
	first := snapshot()

	_, err = ConvertDir(ex, dir, discover.Options{}, Options{}, &bytes.Buffer{})
	require.NoError(t, err)
	second := snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, "Lorem ipsum\n\ndolor\nsit\n\n", first["a.md"])
}

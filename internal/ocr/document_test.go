package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	images []string
	err    error
}

func (s stubRenderer) RenderPages(_ context.Context, _, outDir string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.images) > 0 {
		// real renderer creates the dir before writing images
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, err
		}
	}
	return s.images, nil
}

// stubPageOCR completes pages in reverse submission order to prove that the
// join is index-aligned, not append-on-completion.
type stubPageOCR struct {
	texts map[string]string
	err   error
}

func (s stubPageOCR) RecognizePage(_ context.Context, imagePath string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	var idx int
	_, _ = fmt.Sscanf(filepath.Base(imagePath), "page-%d.png", &idx)
	time.Sleep(time.Duration(4-idx) * 10 * time.Millisecond)
	text, ok := s.texts[filepath.Base(imagePath)]
	return text, ok && text != "", nil
}

func newTestReader(t *testing.T, renderer PageRenderer, pages PageOCR) (*DocumentReader, string) {
	t.Helper()
	textDir := t.TempDir()
	cfg := Config{
		ImagesDir:       t.TempDir(),
		TextDir:         textDir,
		PageConcurrency: 4,
	}
	return NewDocumentReader(cfg, renderer, pages, nil), textDir
}

func TestReadDocumentPreservesPageOrder(t *testing.T) {
	images := []string{"page-1.png", "page-2.png", "page-3.png"}
	reader, textDir := newTestReader(t,
		stubRenderer{images: images},
		stubPageOCR{texts: map[string]string{
			"page-1.png": "first page",
			"page-2.png": "second page",
			"page-3.png": "third page",
		}},
	)

	got := reader.ReadDocument(context.Background(), "/docs/zawiadomienie.pdf")
	assert.Equal(t, "first page\nsecond page\nthird page", got)

	// sidecar persisted under the document's name
	b, err := os.ReadFile(filepath.Join(textDir, "zawiadomienie.txt"))
	require.NoError(t, err)
	assert.Equal(t, got, string(b))
}

func TestReadDocumentEmptyPageBecomesEmptySegment(t *testing.T) {
	images := []string{"page-1.png", "page-2.png", "page-3.png"}
	reader, _ := newTestReader(t,
		stubRenderer{images: images},
		stubPageOCR{texts: map[string]string{
			"page-1.png": "first",
			// page-2 yields no text
			"page-3.png": "third",
		}},
	)

	got := reader.ReadDocument(context.Background(), "/docs/doc.pdf")
	assert.Equal(t, "first\n\nthird", got)
}

func TestReadDocumentZeroImagesReturnsEmpty(t *testing.T) {
	reader, textDir := newTestReader(t, stubRenderer{}, stubPageOCR{})

	got := reader.ReadDocument(context.Background(), "/docs/empty.pdf")
	assert.Equal(t, "", got)

	// no sidecar for a document that produced nothing
	entries, err := os.ReadDir(textDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadDocumentRenderErrorIsSoft(t *testing.T) {
	reader, _ := newTestReader(t, stubRenderer{err: errors.New("pdftoppm exploded")}, stubPageOCR{})
	assert.Equal(t, "", reader.ReadDocument(context.Background(), "/docs/bad.pdf"))
}

func TestReadDocumentPageBackendFailureIsSoft(t *testing.T) {
	reader, _ := newTestReader(t,
		stubRenderer{images: []string{"page-1.png"}},
		stubPageOCR{err: errors.New("backend down")},
	)
	assert.Equal(t, "", reader.ReadDocument(context.Background(), "/docs/doc.pdf"))
}

func TestReadDocumentCleansUpImages(t *testing.T) {
	imagesRoot := t.TempDir()
	cfg := Config{
		ImagesDir:       imagesRoot,
		TextDir:         t.TempDir(),
		PageConcurrency: 2,
	}
	reader := NewDocumentReader(cfg,
		stubRenderer{images: []string{"page-1.png"}},
		stubPageOCR{texts: map[string]string{"page-1.png": "text"}},
		nil,
	)

	_ = reader.ReadDocument(context.Background(), "/docs/doc.pdf")

	entries, err := os.ReadDir(imagesRoot)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "doc"), "document image dir should be removed")
	}
}

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstream-pl/bailiff-extract/internal/common"
	"github.com/docstream-pl/bailiff-extract/internal/llm"
)

type stubReader struct {
	texts map[string]string
}

func (s stubReader) ReadDocument(_ context.Context, pdfPath string) string {
	return s.texts[pdfPath]
}

type stubExtractor struct {
	generalErr error
	costErr    error
	general    llm.GeneralInfo
	costs      llm.CostInfo
}

func (s stubExtractor) ExtractGeneralInfo(context.Context, string) (llm.GeneralInfo, []byte, error) {
	if s.generalErr != nil {
		return llm.GeneralInfo{}, nil, s.generalErr
	}
	return s.general, []byte("{}"), nil
}

func (s stubExtractor) ExtractCostInfo(context.Context, string) (llm.CostInfo, []byte, error) {
	if s.costErr != nil {
		return llm.CostInfo{}, nil, s.costErr
	}
	return s.costs, []byte("{}"), nil
}

func ptr(v float64) *float64 { return &v }

func okExtractor() stubExtractor {
	return stubExtractor{
		general: llm.GeneralInfo{
			PersonalInfo: llm.PersonalInfo{
				Distrainee: llm.Distrainee{Name: "Jan", LastName: "Kowalski"},
				Bailiff:    llm.Bailiff{Name: "Adam", LastName: "Nowak"},
			},
			CaseDetails: llm.CaseDetails{KMNumber: "1/24", CompanyIdentification: "Ever Sp. z o.o."},
		},
		costs: llm.CostInfo{Principal: ptr(100), TransferFee: ptr(5)},
	}
}

func TestProcessDocumentSuccess(t *testing.T) {
	jsonDir := t.TempDir()
	d := NewDriver(nil,
		stubReader{texts: map[string]string{"/docs/a.pdf": "ocr text"}},
		okExtractor(), nil, nil, jsonDir)

	rec, err := d.ProcessDocument(context.Background(), "/docs/a.pdf")
	require.NoError(t, err)
	assert.InDelta(t, 105.0, rec.Financials.SumOfAllCosts, 1e-9)

	_, err = os.Stat(filepath.Join(jsonDir, "a.json"))
	assert.NoError(t, err)
}

func TestProcessDocumentRefusalProducesNoRecord(t *testing.T) {
	jsonDir := t.TempDir()
	ext := okExtractor()
	ext.generalErr = common.NewAppError("LLM_REFUSED", "nope", common.ErrExtractionRefused)

	d := NewDriver(nil,
		stubReader{texts: map[string]string{"/docs/a.pdf": "ocr text"}},
		ext, nil, nil, jsonDir)

	_, err := d.ProcessDocument(context.Background(), "/docs/a.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtractionRefused)

	// no partial artifact
	entries, readErr := os.ReadDir(jsonDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestProcessDocumentEitherCallFailing(t *testing.T) {
	ext := okExtractor()
	ext.costErr = common.NewAppError("LLM_SCHEMA", "bad", common.ErrExtractionMalformed)

	d := NewDriver(nil,
		stubReader{texts: map[string]string{"/docs/a.pdf": "ocr text"}},
		ext, nil, nil, t.TempDir())

	_, err := d.ProcessDocument(context.Background(), "/docs/a.pdf")
	assert.ErrorIs(t, err, common.ErrExtractionMalformed)
}

func TestProcessDocumentEmptyOCR(t *testing.T) {
	d := NewDriver(nil, stubReader{}, okExtractor(), nil, nil, t.TempDir())

	_, err := d.ProcessDocument(context.Background(), "/docs/empty.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrOCRTextEmpty)
	// the orchestrator hides the cause, so the neutral label must not claim
	// a rendering failure
	assert.NotErrorIs(t, err, common.ErrRenderingEmpty)
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	d := NewDriver(nil,
		stubReader{texts: map[string]string{
			"/docs/good.pdf": "ocr text",
			// /docs/bad.pdf has no OCR text -> fails
		}},
		okExtractor(), nil, nil, t.TempDir())

	results := d.RunBatch(context.Background(), []string{"/docs/bad.pdf", "/docs/good.pdf"}, false, 0)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err, "one document's failure must not block the next")
}

func TestRunBatchConcurrent(t *testing.T) {
	texts := map[string]string{}
	var paths []string
	for _, name := range []string{"a", "b", "c", "d"} {
		p := "/docs/" + name + ".pdf"
		texts[p] = "ocr text"
		paths = append(paths, p)
	}
	d := NewDriver(nil, stubReader{texts: texts}, okExtractor(), nil, nil, t.TempDir())

	results := d.RunBatch(context.Background(), paths, true, 2)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
		assert.NoError(t, r.Err)
	}
}

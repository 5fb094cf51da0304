// Package pipeline drives one document through OCR, structured extraction,
// reconciliation and the output sinks. It is the single failure-isolation
// boundary: a document's failure is logged and never aborts the batch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/docstream-pl/bailiff-extract/constants"
	"github.com/docstream-pl/bailiff-extract/internal/common"
	"github.com/docstream-pl/bailiff-extract/internal/export"
	"github.com/docstream-pl/bailiff-extract/internal/joblog"
	"github.com/docstream-pl/bailiff-extract/internal/llm"
	"github.com/docstream-pl/bailiff-extract/internal/record"
)

// DocumentReader is the OCR orchestrator contract: empty text signals a soft
// failure, the driver decides how to react.
type DocumentReader interface {
	ReadDocument(ctx context.Context, pdfPath string) string
}

type Driver struct {
	logger    *slog.Logger
	reader    DocumentReader
	extractor llm.FieldExtractor
	sheet     *export.SheetAppender
	ledger    *joblog.Ledger // optional
	jsonDir   string
}

func NewDriver(
	logger *slog.Logger,
	reader DocumentReader,
	extractor llm.FieldExtractor,
	sheet *export.SheetAppender,
	ledger *joblog.Ledger,
	jsonDir string,
) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	if jsonDir == "" {
		jsonDir = "./json-data"
	}
	return &Driver{
		logger:    logger,
		reader:    reader,
		extractor: extractor,
		sheet:     sheet,
		ledger:    ledger,
		jsonDir:   jsonDir,
	}
}

// ProcessDocument runs the full pipeline for one document and returns the
// final record. Both extraction calls run independently; either failure
// fails the document without producing a partial record.
func (d *Driver) ProcessDocument(ctx context.Context, pdfPath string) (record.ExtractedRecord, error) {
	start := time.Now()
	docName := common.DocumentName(pdfPath)
	jobID := d.startJob(ctx, pdfPath)

	text := d.reader.ReadDocument(ctx, pdfPath)
	if text == "" {
		// The orchestrator collapses all failure causes (rendering, page OCR,
		// tooling) to empty text, so label the outcome, not a guessed cause.
		err := common.NewAppError("OCR_EMPTY", fmt.Sprintf("no OCR text for %s", docName), common.ErrOCRTextEmpty)
		d.finishJob(ctx, jobID, constants.JobStatusFailed, err)
		return record.ExtractedRecord{}, err
	}
	d.advanceJob(ctx, jobID, constants.JobStatusOCROK)

	var general llm.GeneralInfo
	var costs llm.CostInfo
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		general, _, err = d.extractor.ExtractGeneralInfo(gctx, text)
		return err
	})
	g.Go(func() error {
		var err error
		costs, _, err = d.extractor.ExtractCostInfo(gctx, text)
		return err
	})
	if err := g.Wait(); err != nil {
		d.finishJob(ctx, jobID, constants.JobStatusFailed, err)
		return record.ExtractedRecord{}, common.WrapError(err, "extract fields")
	}

	rec := record.Merge(general, costs)

	jsonPath, err := rec.WriteJSON(d.jsonDir, docName)
	if err != nil {
		d.finishJob(ctx, jobID, constants.JobStatusFailed, err)
		return record.ExtractedRecord{}, common.WrapError(err, "persist record")
	}

	if d.sheet != nil {
		if err := d.sheet.AppendRow(rec.Row(pdfPath)); err != nil {
			d.finishJob(ctx, jobID, constants.JobStatusFailed, err)
			return record.ExtractedRecord{}, common.WrapError(err, "append sheet row")
		}
	}

	d.finishJob(ctx, jobID, constants.JobStatusLLMOK, nil)
	d.logger.Info("pipeline.document.ok",
		"doc", docName,
		"json_path", jsonPath,
		"sum_of_all_costs", rec.Financials.SumOfAllCosts,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// BatchResult reports one document's outcome in a batch run.
type BatchResult struct {
	Path string
	Err  error
}

// RunBatch processes paths either strictly sequentially (row order matches
// document order) or concurrently with the given limit. Every document's
// failure is isolated and reported; the run always completes.
func (d *Driver) RunBatch(ctx context.Context, paths []string, concurrent bool, limit int) []BatchResult {
	results := make([]BatchResult, len(paths))

	if !concurrent {
		for i, path := range paths {
			_, err := d.ProcessDocument(ctx, path)
			results[i] = BatchResult{Path: path, Err: err}
			if err != nil {
				d.logger.Error("pipeline.document.failed", "doc", path, "error", err)
			}
		}
		d.logSummary(results)
		return results
	}

	if limit <= 0 {
		limit = len(paths)
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			_, err := d.ProcessDocument(ctx, path)
			results[i] = BatchResult{Path: path, Err: err}
			if err != nil {
				d.logger.Error("pipeline.document.failed", "doc", path, "error", err)
			}
			return nil // a document failure never aborts the batch
		})
	}
	_ = g.Wait()
	d.logSummary(results)
	return results
}

func (d *Driver) logSummary(results []BatchResult) {
	succeeded, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	d.logger.Info("pipeline.batch.done", "total", len(results), "succeeded", succeeded, "failed", failed)
}

func (d *Driver) startJob(ctx context.Context, pdfPath string) uuid.UUID {
	if d.ledger == nil {
		return uuid.Nil
	}
	id, err := d.ledger.Start(ctx, pdfPath)
	if err != nil {
		d.logger.Warn("pipeline.joblog.start_failed", "doc", pdfPath, "error", err)
		return uuid.Nil
	}
	return id
}

func (d *Driver) advanceJob(ctx context.Context, id uuid.UUID, status constants.JobStatus) {
	if d.ledger == nil || id == uuid.Nil {
		return
	}
	if err := d.ledger.Advance(ctx, id, status); err != nil {
		d.logger.Warn("pipeline.joblog.advance_failed", "job_id", id, "error", err)
	}
}

func (d *Driver) finishJob(ctx context.Context, id uuid.UUID, status constants.JobStatus, cause error) {
	if d.ledger == nil || id == uuid.Nil {
		return
	}
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if err := d.ledger.Finish(ctx, id, status, msg); err != nil {
		d.logger.Warn("pipeline.joblog.finish_failed", "job_id", id, "error", err)
	}
}

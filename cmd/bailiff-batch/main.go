package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/docstream-pl/bailiff-extract/internal/common"
	"github.com/docstream-pl/bailiff-extract/internal/export"
	"github.com/docstream-pl/bailiff-extract/internal/ingest"
	"github.com/docstream-pl/bailiff-extract/internal/joblog"
	"github.com/docstream-pl/bailiff-extract/internal/llm/openai"
	"github.com/docstream-pl/bailiff-extract/internal/ocr"
	"github.com/docstream-pl/bailiff-extract/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir        = flag.String("dir", "", "directory to process enforcement PDFs from (required)")
		out        = flag.String("out", "", "output XLSX workbook path (defaults to WORKBOOK_PATH)")
		concurrent = flag.Bool("concurrent", false, "process documents concurrently (sheet row order will not match document order)")
		limit      = flag.Int("limit", 4, "max concurrent documents when -concurrent is set")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *out != "" {
		cfg.Output.WorkbookPath = *out
	}
	if cfg.Output.WorkbookPath == "" {
		cfg.Output.WorkbookPath = filepath.Join(filepath.Dir(*dir), "enforcement.xlsx")
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	reader := ocr.NewDocumentReader(ocr.Config{
		Pdftoppm:        cfg.OCR.Pdftoppm,
		Tesseract:       cfg.OCR.Tesseract,
		Lang:            cfg.OCR.Lang,
		DPI:             cfg.OCR.DPI,
		MaxPages:        cfg.OCR.MaxPages,
		PageConcurrency: cfg.OCR.PageConcurrency,
		ImagesDir:       cfg.OCR.ImagesDir,
		TextDir:         cfg.OCR.TextDir,
		Timeout:         cfg.OCR.Timeout,
	}, nil, nil, logger)

	extractor := openai.NewClient(openai.Config{
		APIKey:       cfg.LLM.APIKey,
		BaseURL:      cfg.LLM.BaseURL,
		Model:        cfg.LLM.Model,
		Temperature:  cfg.LLM.Temperature,
		Timeout:      cfg.LLM.Timeout,
		AzureKeyAuth: cfg.LLM.AzureKeyAuth,
	}, logger)

	sheet := export.NewSheetAppender(cfg.Output.WorkbookPath, cfg.Output.SheetName, logger)

	var ledger *joblog.Ledger
	if cfg.Ledger.Path != "" {
		var err error
		ledger, err = joblog.Open(ctx, cfg.Ledger.Path, logger)
		if err != nil {
			logger.Error("failed to open job ledger", "path", cfg.Ledger.Path, "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := ledger.Close(); err != nil {
				logger.Warn("failed to close job ledger", "error", err)
			}
		}()
	}

	driver := pipeline.NewDriver(logger, reader, extractor, sheet, ledger, cfg.Output.JSONDir)

	paths, err := ingest.ListPDFs(*dir)
	if err != nil {
		logger.Error("failed to list documents", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Info("no files found to process", "dir", *dir)
		return
	}
	logger.Info("starting batch", "dir", *dir, "documents", len(paths), "concurrent", *concurrent)

	results := driver.RunBatch(ctx, paths, *concurrent, *limit)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == len(results) {
		printError("all %d documents failed\n", failed)
		os.Exit(1)
	}
}

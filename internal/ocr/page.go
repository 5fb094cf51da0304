package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// PageOCR recognizes the text of a single page image. The boolean result
// distinguishes "backend succeeded but found no text" (false, nil) from a
// backend failure (error).
type PageOCR interface {
	RecognizePage(ctx context.Context, imagePath string) (text string, found bool, err error)
}

// TesseractOCR runs the tesseract binary per page image.
type TesseractOCR struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewTesseractOCR(cfg Config, runner Runner, logger *slog.Logger) *TesseractOCR {
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = newExecRunner(logger)
	}
	return &TesseractOCR{cfg: cfg, runner: runner, logger: logger}
}

func (t *TesseractOCR) RecognizePage(ctx context.Context, imagePath string) (string, bool, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, imagePath, "stdout", "-l", t.cfg.Lang)
	if err != nil {
		return "", false, fmt.Errorf("tesseract: %w (stderr: %s)", err, truncate(string(errb), 512))
	}
	text := string(out)
	if strings.TrimSpace(text) == "" {
		t.logger.Warn("ocr.page.no_text", "image", imagePath)
		return "", false, nil
	}
	return text, true, nil
}

package ocr

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docstream-pl/bailiff-extract/internal/common"
)

// Config holds rendering and page-OCR settings.
type Config struct {
	Pdftoppm        string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract       string // binary name or absolute path; if empty -> "tesseract"
	Lang            string // default "pol"
	DPI             int    // rasterization DPI, default 300
	MaxPages        int    // 0 = no limit
	PageConcurrency int    // concurrent page OCR calls per document
	ImagesDir       string // working dir for intermediate page images
	TextDir         string // sidecar OCR text output
	Timeout         time.Duration
}

// DocumentReader turns one PDF into its concatenated OCR text. It never
// returns an error: any failure is logged and surfaces as an empty string,
// which callers treat as the soft-failure signal.
type DocumentReader struct {
	cfg      Config
	renderer PageRenderer
	pages    PageOCR
	logger   *slog.Logger
}

func NewDocumentReader(cfg Config, renderer PageRenderer, pages PageOCR, logger *slog.Logger) *DocumentReader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "pol"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.PageConcurrency <= 0 {
		cfg.PageConcurrency = 4
	}
	if cfg.ImagesDir == "" {
		cfg.ImagesDir = "./images"
	}
	if cfg.TextDir == "" {
		cfg.TextDir = "./output-text"
	}
	if renderer == nil {
		renderer = NewRenderer(cfg, nil, logger)
	}
	if pages == nil {
		pages = NewTesseractOCR(cfg, nil, logger)
	}
	return &DocumentReader{cfg: cfg, renderer: renderer, pages: pages, logger: logger}
}

// ReadDocument renders pdfPath, OCRs every page concurrently, joins the page
// texts with newlines in page order, persists the sidecar text file, and
// removes the intermediate images.
func (d *DocumentReader) ReadDocument(ctx context.Context, pdfPath string) string {
	start := time.Now()
	docName := common.DocumentName(pdfPath)

	if err := os.MkdirAll(d.cfg.TextDir, 0o755); err != nil {
		d.logger.Error("ocr.document.workdir_failed", "path", pdfPath, "error", err)
		return ""
	}
	// Document-scoped image dir so concurrent documents never collide.
	imagesDir := filepath.Join(d.cfg.ImagesDir, common.SafeFileName(docName))

	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	images, err := d.renderer.RenderPages(ctx, pdfPath, imagesDir)
	if err != nil {
		d.logger.Error("ocr.document.render_failed", "path", pdfPath, "error", err)
		d.cleanupImages(imagesDir)
		return ""
	}
	if len(images) == 0 {
		d.logger.Error("ocr.document.render_empty", "path", pdfPath, "error", common.ErrRenderingEmpty)
		d.cleanupImages(imagesDir)
		return ""
	}

	// Fan out page OCR; results are index-aligned so page order survives
	// whatever completion order the backend produces.
	texts := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.PageConcurrency)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			text, found, err := d.pages.RecognizePage(gctx, img)
			if err != nil {
				return err
			}
			if !found {
				// soft: an absent page contributes an empty segment
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		d.logger.Error("ocr.document.page_ocr_failed", "path", pdfPath, "error", err)
		d.cleanupImages(imagesDir)
		return ""
	}

	concatenated := strings.Join(texts, "\n")
	d.saveSidecar(docName, concatenated)
	d.cleanupImages(imagesDir)

	d.logger.Info("ocr.document.ok",
		"path", pdfPath,
		"pages", len(images),
		"text_bytes", len(concatenated),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return concatenated
}

// saveSidecar writes the concatenated text next to the other audit artifacts.
// A write failure is logged, not propagated; the text still flows downstream.
func (d *DocumentReader) saveSidecar(docName, text string) {
	path := filepath.Join(d.cfg.TextDir, common.SafeFileName(docName)+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		d.logger.Error("ocr.document.sidecar_failed", "path", path, "error", err)
		return
	}
	d.logger.Debug("ocr.document.sidecar_ok", "path", path)
}

func (d *DocumentReader) cleanupImages(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		d.logger.Warn("ocr.document.cleanup_failed", "dir", dir, "error", err)
	}
}

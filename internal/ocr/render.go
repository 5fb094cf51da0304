package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageRenderer converts a PDF into one image per page, in page order.
type PageRenderer interface {
	RenderPages(ctx context.Context, pdfPath, outDir string) ([]string, error)
}

// Renderer shells out to pdftoppm. A PDF with zero renderable pages yields an
// empty slice, not an error; callers treat that as a reportable condition.
type Renderer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRenderer(cfg Config, runner Runner, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = newExecRunner(logger)
	}
	return &Renderer{cfg: cfg, runner: runner, logger: logger}
}

func (r *Renderer) RenderPages(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}

	// Cheap zero-page check before shelling out. A parse failure is only a
	// warning; pdftoppm gets the final say on whether pages exist.
	if n, err := r.countPages(pdfPath); err != nil {
		r.logger.Warn("ocr.render.page_count_failed", "path", pdfPath, "error", err)
	} else if n == 0 {
		r.logger.Warn("ocr.render.zero_pages", "path", pdfPath)
		return nil, nil
	}

	prefix := filepath.Join(outDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <outDir/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm, "-r", strconv.Itoa(r.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (stderr: %s)", err, truncate(string(errb), 512))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sortPageImages(matches)
	if r.cfg.MaxPages > 0 && len(matches) > r.cfg.MaxPages {
		matches = matches[:r.cfg.MaxPages]
	}
	if len(matches) == 0 {
		r.logger.Warn("ocr.render.no_images", "path", pdfPath)
		return nil, nil
	}
	r.logger.Debug("ocr.render.ok", "path", pdfPath, "pages", len(matches))
	return matches, nil
}

func (r *Renderer) countPages(pdfPath string) (int, error) {
	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.Warn("ocr.render.close_failed", "path", pdfPath, "error", cerr)
		}
	}()
	return reader.NumPage(), nil
}

// sortPageImages orders pdftoppm output by page number. pdftoppm zero-pads
// page suffixes, but a numeric sort keeps ordering correct regardless.
func sortPageImages(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		ni, iok := pageNumber(paths[i])
		nj, jok := pageNumber(paths[j])
		if iok && jok {
			return ni < nj
		}
		return paths[i] < paths[j]
	})
}

func pageNumber(path string) (int, bool) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

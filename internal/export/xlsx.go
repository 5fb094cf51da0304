// Package export appends extracted records to an XLSX workbook. An append is
// read-last-row-then-write and is not safe under concurrent execution, so the
// sink serializes callers internally; extraction may still run concurrently.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/docstream-pl/bailiff-extract/constants"
)

type SheetAppender struct {
	path   string
	sheet  string
	mu     sync.Mutex
	logger *slog.Logger
}

func NewSheetAppender(path, sheet string, logger *slog.Logger) *SheetAppender {
	if sheet == "" {
		sheet = "Dane"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetAppender{path: path, sheet: sheet, logger: logger}
}

// AppendRow writes row directly after the last occupied row, draws borders
// around the written cells, and saves the workbook. The workbook and its
// header row are created on first use.
func (s *SheetAppender) AppendRow(row []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()

	f, created, err := s.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("export.xlsx.close_failed", "path", s.path, "error", cerr)
		}
	}()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return fmt.Errorf("read last row: %w", err)
	}
	next := len(rows) + 1

	for i, v := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, next)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.sheet, cell, v); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	if err := s.styleRow(f, next, len(row)); err != nil {
		return err
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	s.logger.Info("export.xlsx.row_appended",
		"path", s.path,
		"row", next,
		"created", created,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// open loads the workbook at path, creating it with a header row when absent.
func (s *SheetAppender) open() (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(s.path)
	if err == nil {
		if idx, _ := f.GetSheetIndex(s.sheet); idx == -1 {
			if _, err := f.NewSheet(s.sheet); err != nil {
				return nil, false, err
			}
		}
		return f, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("open workbook: %w", err)
	}

	f = excelize.NewFile()
	if _, err := f.NewSheet(s.sheet); err != nil {
		return nil, false, err
	}
	if idx, _ := f.GetSheetIndex(s.sheet); idx != -1 {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil && s.sheet != "Sheet1" {
		s.logger.Debug("export.xlsx.default_sheet_kept", "error", err)
	}

	for i, h := range constants.SheetColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, false, err
		}
		if err := f.SetCellValue(s.sheet, cell, h); err != nil {
			return nil, false, err
		}
	}
	// Widen the identity columns; the amount columns stay default.
	_ = f.SetColWidth(s.sheet, "A", "A", 48) // file link
	_ = f.SetColWidth(s.sheet, "B", "B", 30) // company
	_ = f.SetColWidth(s.sheet, "C", "C", 26) // distrainee
	_ = f.SetColWidth(s.sheet, "F", "F", 26) // bailiff
	_ = f.SetColWidth(s.sheet, "I", "I", 34) // bank account

	return f, true, nil
}

func (s *SheetAppender) styleRow(f *excelize.File, row, width int) error {
	border := []excelize.Border{
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
	}
	styleID, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(s.sheet, first, last, styleID)
}

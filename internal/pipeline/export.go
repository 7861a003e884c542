package pipeline

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"iactidy/internal"
	"iactidy/internal/util"
)

// maxSheetName is Excel's limit on sheet name length.
const maxSheetName = 31

// ExportCSV writes the table with a header row and no index column.
func ExportCSV(t *internal.Table, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header %s: %w", outputPath, err)
	}
	if err := w.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", outputPath, err)
	}

	slog.Info("table exported",
		slog.String("table", t.Name),
		slog.String("path", outputPath),
		slog.Int("rows", t.Len()))
	return nil
}

// ExportXLSX writes every table to its own sheet of one workbook. Numeric
// cells are stored as numbers.
func ExportXLSX(tables []*internal.Table, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := sheetName(t.Name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeSheet(f, sheet, t); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeSheet(f *excelize.File, sheet string, t *internal.Table) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for r, row := range t.Rows {
		values := make([]any, len(t.Columns))
		for i := range values {
			if i < len(row) {
				values[i] = cellValue(row[i])
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func cellValue(v *string) any {
	if v == nil {
		return nil
	}
	if n, ok := util.ParseNumber(*v); ok {
		return n
	}
	return *v
}

func sheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}

package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"iactidy/internal"
)

// Workbook is an opened spreadsheet file. Sheets are read on demand.
type Workbook struct {
	path string
	f    *excelize.File
}

func LoadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{path: path, f: f}, nil
}

func ReadWorkbook(name string, r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", name, err)
	}
	return &Workbook{path: name, f: f}, nil
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *Workbook) hasSheet(name string) bool {
	for _, s := range w.SheetNames() {
		if s == name {
			return true
		}
	}
	return false
}

// ReadSheet extracts one sheet. The header is the row at headerOffset; rows
// above it are discarded.
func (w *Workbook) ReadSheet(name string, headerOffset int) (*internal.Table, error) {
	if !w.hasSheet(name) {
		return nil, fmt.Errorf("%s: %q: %w", w.path, name, ErrSheetNotFound)
	}
	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) <= headerOffset {
		return internal.NewTable(name, nil), nil
	}

	table := internal.NewTable(name, headerNames(rows[headerOffset]))
	for _, row := range rows[headerOffset+1:] {
		if blankRow(row) {
			continue
		}
		cells := make([]*string, len(table.Columns))
		for i := 0; i < len(cells) && i < len(row); i++ {
			if row[i] != "" {
				v := row[i]
				cells[i] = &v
			}
		}
		table.Rows = append(table.Rows, cells)
	}

	slog.Debug("sheet loaded",
		slog.String("workbook", w.path),
		slog.String("sheet", name),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))
	return table, nil
}

// ConcatSheets stacks every sheet whose name starts with prefix, in workbook
// order, recording the origin sheet in tagColumn.
func (w *Workbook) ConcatSheets(prefix, tagColumn string) (*internal.Table, error) {
	var parts []*internal.Table
	for _, name := range w.SheetNames() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		t, err := w.ReadSheet(name, 0)
		if err != nil {
			return nil, err
		}
		parts = append(parts, tagged(t, tagColumn, name))
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%s: no sheet with prefix %q: %w", w.path, prefix, ErrSheetNotFound)
	}

	out := internal.Concat(prefix, parts...)
	slog.Info("sheets concatenated",
		slog.String("prefix", prefix),
		slog.Int("sheets", len(parts)),
		slog.Int("rows", out.Len()))
	return out, nil
}

func tagged(t *internal.Table, column, value string) *internal.Table {
	out := internal.NewTable(t.Name, append(append([]string{}, t.Columns...), column))
	for _, row := range t.Rows {
		cells := make([]*string, 0, len(row)+1)
		cells = append(cells, row...)
		v := value
		cells = append(cells, &v)
		out.Rows = append(out.Rows, cells)
	}
	return out
}

func headerNames(row []string) []string {
	out := make([]string, len(row))
	seen := map[string]int{}
	for i, h := range row {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if n, ok := seen[h]; ok {
			seen[h] = n + 1
			h = h + "." + strconv.Itoa(n+1)
		} else {
			seen[h] = 0
		}
		out[i] = h
	}
	return out
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

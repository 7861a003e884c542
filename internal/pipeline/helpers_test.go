package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"iactidy/internal"
)

type sheet struct {
	name string
	rows [][]any
}

func mkXLSX(t *testing.T, sheets ...sheet) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, f.SetCellValue(s.name, cell, v))
			}
		}
	}
	buf := bytes.NewBuffer(nil)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func writeXLSX(t *testing.T, path string, sheets ...sheet) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, mkXLSX(t, sheets...), 0o644))
}

func openXLSX(t *testing.T, sheets ...sheet) *Workbook {
	t.Helper()
	wb, err := ReadWorkbook("fixture.xlsx", bytes.NewReader(mkXLSX(t, sheets...)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

// mkTable builds a table; nil values become null cells.
func mkTable(name string, columns []string, rows ...[]any) *internal.Table {
	t := internal.NewTable(name, columns)
	for _, row := range rows {
		cells := make([]*string, len(columns))
		for i, v := range row {
			if v == nil {
				continue
			}
			s := fmt.Sprint(v)
			cells[i] = &s
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// cell reads a value by column name, "<nil>" for null.
func cell(t *internal.Table, row int, column string) string {
	v := t.Cell(row, t.Index(column))
	if v == nil {
		return "<nil>"
	}
	return *v
}

package pipeline

import (
	"strconv"
	"strings"

	"iactidy/internal"
	"iactidy/internal/util"
)

const (
	ColARC2 = "ARC2"

	arcDecimals    = 4
	ppiPlaceholder = "-"
)

// E1 was retired in FY95 when electricity was split into EC, ED and EF.
var legacySourceCodes = map[string]string{"E1": "EC"}

// CleanColumns rewrites the header with util.CleanName. Rows are shared.
func CleanColumns(in *internal.Table) *internal.Table {
	out := internal.NewTable(in.Name, util.CleanNames(in.Columns))
	out.Rows = in.Rows
	return out
}

// TrimStrings trims surrounding whitespace from every cell.
func TrimStrings(in *internal.Table) *internal.Table {
	out := internal.NewTable(in.Name, in.Columns)
	out.Rows = make([][]*string, 0, len(in.Rows))
	for _, row := range in.Rows {
		cells := make([]*string, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			if t := strings.TrimSpace(*v); t != *v {
				cells[i] = &t
			} else {
				cells[i] = v
			}
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// MapColumn replaces the cells of column through fn. A missing column is a no-op.
func MapColumn(in *internal.Table, column string, fn func(*string) *string) *internal.Table {
	idx := in.Index(column)
	if idx < 0 {
		return in
	}
	out := internal.NewTable(in.Name, in.Columns)
	out.Rows = make([][]*string, 0, len(in.Rows))
	for _, row := range in.Rows {
		cells := make([]*string, len(row))
		copy(cells, row)
		if idx < len(cells) {
			cells[idx] = fn(cells[idx])
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

func RenameColumn(in *internal.Table, from, to string) *internal.Table {
	out := internal.NewTable(in.Name, in.Columns)
	if idx := out.Index(from); idx >= 0 {
		out.Columns[idx] = to
	}
	out.Rows = in.Rows
	return out
}

func CleanAssessments(in *internal.Table) *internal.Table {
	return CleanColumns(TrimStrings(in))
}

func CleanRecommendations(in *internal.Table) *internal.Table {
	t := TrimStrings(in)
	t = MapColumn(t, ColSourcCode, func(v *string) *string {
		if v == nil {
			return nil
		}
		if repl, ok := legacySourceCodes[*v]; ok {
			return &repl
		}
		return v
	})
	return CleanColumns(t)
}

// CleanPPI renames ARC to ARC2, rounds it to four decimals and fills missing
// or placeholder price indices with fill.
func CleanPPI(in *internal.Table, fill float64) *internal.Table {
	t := TrimStrings(RenameColumn(in, ColARC, ColARC2))
	t = CleanColumns(t)
	t = MapColumn(t, util.CleanName(ColARC2), func(v *string) *string {
		if v == nil {
			return nil
		}
		if rounded, ok := util.RoundText(*v, arcDecimals); ok {
			return &rounded
		}
		return v
	})

	sentinel := strconv.FormatFloat(fill, 'f', -1, 64)
	return MapColumn(t, ColPPI, func(v *string) *string {
		if v == nil || *v == ppiPlaceholder {
			s := sentinel
			return &s
		}
		return v
	})
}

func CleanGeneration(in *internal.Table) *internal.Table {
	return CleanColumns(TrimStrings(WithUnits(in)))
}

func CleanEmissions(in *internal.Table) *internal.Table {
	return CleanColumns(TrimStrings(in))
}

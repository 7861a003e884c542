package pipeline

import (
	"sort"
	"strconv"

	"iactidy/internal"
	"iactidy/internal/util"
)

const (
	ColARC  = "ARC"
	ColYear = "year"
	ColPPI  = "ppi"

	firstPPIYear = 1987
	lastPPIYear  = 2018
)

var ppiIDColumns = []string{ColARC, "Description", "Series ID", "Industry", "Product"}

// PPIYears are the year columns of the PPI sheet, 1987 through 2018.
var PPIYears = func() []string {
	out := make([]string, 0, lastPPIYear-firstPPIYear+1)
	for y := firstPPIYear; y <= lastPPIYear; y++ {
		out = append(out, strconv.Itoa(y))
	}
	return out
}()

// UnpivotPPI melts the year columns into (ARC..., year, ppi) rows sorted by
// year, then ARC.
func UnpivotPPI(in *internal.Table) (*internal.Table, error) {
	out, err := unpivot(in, "ppi_tidy", ppiIDColumns, PPIYears, ColYear, ColPPI)
	if err != nil {
		return nil, err
	}

	yearCol, arcCol := out.Index(ColYear), out.Index(ColARC)
	sort.SliceStable(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i], out.Rows[j]
		if c := util.CompareValues(a[yearCol], b[yearCol]); c != 0 {
			return c < 0
		}
		return util.CompareValues(a[arcCol], b[arcCol]) < 0
	})
	return out, nil
}

package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"iactidy/internal"
	"iactidy/internal/util"
)

const (
	ColID         = "ID"
	ColSourceCode = "source_code"
	ColPlantCost  = "plant_cost"
	ColPlantUsage = "plant_usage"

	costSuffix  = "_plant_cost"
	usageSuffix = "_plant_usage"
)

// Facility columns carried onto every assessment source row, after ID.
var assessIDColumns = []string{
	"CENTER", "FY", "SIC", "NAICS", "STATE", "SALES",
	"EMPLOYEES", "PLANT_AREA", "PRODUCTS", "PRODUNITS",
	"PRODLEVEL", "PRODHOURS", "NUMARS",
}

// AssessTidySchema is the output column order of UnpivotAssessments.
var AssessTidySchema = func() []string {
	out := []string{ColID}
	out = append(out, assessIDColumns...)
	return append(out, ColSourceCode, ColPlantCost, ColPlantUsage)
}()

// meltedMeasure is one (assessment row, source code) cell of a melted block.
type meltedMeasure struct {
	keys  []*string
	code  SourceCode
	value *string
}

func (m meltedMeasure) joinKey() string {
	var b strings.Builder
	for _, k := range m.keys {
		if k == nil {
			b.WriteString("\x00")
		} else {
			b.WriteString("\x01")
			b.WriteString(*k)
		}
		b.WriteString("\x1f")
	}
	b.WriteString(string(m.code))
	return b.String()
}

// UnpivotAssessments turns the <code>_plant_cost / <code>_plant_usage pairs
// into one row per (assessment, source code). Cost and usage are melted
// separately and full-outer-joined, so a code present on only one side keeps
// a nil in the other measure. Rows with both measures nil are dropped and the
// result is sorted by ID, then source code rank.
func UnpivotAssessments(in *internal.Table) (*internal.Table, error) {
	keyCols := append([]string{ColID}, assessIDColumns...)
	keyIdx := make([]int, len(keyCols))
	for i, c := range keyCols {
		idx := in.Index(c)
		if idx < 0 {
			return nil, fmt.Errorf("%s: %q: %w", in.Name, c, ErrMissingColumn)
		}
		keyIdx[i] = idx
	}

	costs := melt(in, keyIdx, costSuffix)
	usages := melt(in, keyIdx, usageSuffix)

	usageByKey := make(map[string][]int, len(usages))
	for i, u := range usages {
		k := u.joinKey()
		usageByKey[k] = append(usageByKey[k], i)
	}
	matched := make([]bool, len(usages))

	out := internal.NewTable("assess_tidy", AssessTidySchema)
	emit := func(keys []*string, code SourceCode, cost, usage *string) error {
		if cost == nil && usage == nil {
			return nil
		}
		row := make([]*string, 0, len(AssessTidySchema))
		row = append(row, keys...)
		c := string(code)
		row = append(row, &c, cost, usage)
		if err := out.Append(row); err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		return nil
	}

	for _, c := range costs {
		hits := usageByKey[c.joinKey()]
		if len(hits) == 0 {
			if err := emit(c.keys, c.code, c.value, nil); err != nil {
				return nil, err
			}
			continue
		}
		for _, ui := range hits {
			matched[ui] = true
			if err := emit(c.keys, c.code, c.value, usages[ui].value); err != nil {
				return nil, err
			}
		}
	}
	for i, u := range usages {
		if matched[i] {
			continue
		}
		if err := emit(u.keys, u.code, nil, u.value); err != nil {
			return nil, err
		}
	}

	codeCol := len(keyCols)
	sort.SliceStable(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i], out.Rows[j]
		if c := util.CompareValues(a[0], b[0]); c != 0 {
			return c < 0
		}
		return SourceCode(internal.Deref(a[codeCol])).Compare(SourceCode(internal.Deref(b[codeCol]))) < 0
	})
	return out, nil
}

// melt unpivots every column ending in suffix, column-major, keeping the
// key columns of each row.
func melt(in *internal.Table, keyIdx []int, suffix string) []meltedMeasure {
	var out []meltedMeasure
	for col, name := range in.Columns {
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		code := SourceCode(strings.TrimSuffix(name, suffix))
		for r := range in.Rows {
			keys := make([]*string, len(keyIdx))
			for i, idx := range keyIdx {
				keys[i] = in.Cell(r, idx)
			}
			out = append(out, meltedMeasure{keys: keys, code: code, value: in.Cell(r, col)})
		}
	}
	return out
}

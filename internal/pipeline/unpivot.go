package pipeline

import (
	"fmt"

	"iactidy/internal"
)

// unpivot melts valueVars into (idVars..., varName, valueName) rows,
// variable-major: every row for valueVars[0], then every row for valueVars[1].
// All named columns must exist.
func unpivot(in *internal.Table, name string, idVars, valueVars []string, varName, valueName string) (*internal.Table, error) {
	idIdx, err := indexAll(in, idVars)
	if err != nil {
		return nil, err
	}
	valIdx, err := indexAll(in, valueVars)
	if err != nil {
		return nil, err
	}

	schema := append(append([]string{}, idVars...), varName, valueName)
	out := internal.NewTable(name, schema)
	out.Rows = make([][]*string, 0, len(in.Rows)*len(valueVars))
	for v, col := range valIdx {
		label := valueVars[v]
		for r := range in.Rows {
			row := make([]*string, 0, len(schema))
			for _, idx := range idIdx {
				row = append(row, in.Cell(r, idx))
			}
			l := label
			row = append(row, &l, in.Cell(r, col))
			if err := out.Append(row); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
			}
		}
	}
	return out, nil
}

func indexAll(in *internal.Table, columns []string) ([]int, error) {
	out := make([]int, len(columns))
	for i, c := range columns {
		idx := in.Index(c)
		if idx < 0 {
			return nil, fmt.Errorf("%s: %q: %w", in.Name, c, ErrMissingColumn)
		}
		out[i] = idx
	}
	return out, nil
}

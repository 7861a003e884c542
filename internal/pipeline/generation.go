package pipeline

import "iactidy/internal"

const (
	// generationHeaderOffset skips the title row above the header.
	generationHeaderOffset = 1
	generationUnits        = "MWh"
	ColUnits               = "units"
)

// WithUnits returns the generation table with a constant units column.
func WithUnits(in *internal.Table) *internal.Table {
	out := internal.NewTable("generation", append(append([]string{}, in.Columns...), ColUnits))
	out.Rows = make([][]*string, 0, len(in.Rows))
	for _, row := range in.Rows {
		cells := make([]*string, len(out.Columns))
		copy(cells, row)
		u := generationUnits
		cells[len(cells)-1] = &u
		out.Rows = append(out.Rows, cells)
	}
	return out
}

package pipeline

import (
	"iactidy/internal"
	"iactidy/internal/util"
)

const (
	ColEmissionType = "emission_type"
	ColAmount       = "amount"

	emissionUnitSuffix = "\n(Metric Tons)"
)

var (
	emissionIDColumns = []string{"State", "Year", "Producer Type", "Energy Source"}
	Pollutants        = []string{"CO2", "SO2", "NOx"}
)

// UnpivotEmissions strips the unit from the pollutant headers and melts them
// into (State, Year, Producer Type, Energy Source, emission_type, amount).
func UnpivotEmissions(in *internal.Table) (*internal.Table, error) {
	stripped := internal.NewTable(in.Name, in.Columns)
	for i, c := range stripped.Columns {
		stripped.Columns[i] = util.TrimSuffixFold(c, emissionUnitSuffix)
	}
	stripped.Rows = in.Rows

	return unpivot(stripped, "emissions_tidy", emissionIDColumns, Pollutants, ColEmissionType, ColAmount)
}

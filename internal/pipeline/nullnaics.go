package pipeline

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"iactidy/internal"
)

const (
	ColNAICS = "NAICS"
	ColFY    = "FY"

	// energyARCPrefix marks ARC codes in the energy management section.
	energyARCPrefix = "2"
)

// NullNAICSEnergy returns the assessments with no NAICS code that received at
// least one energy recommendation (ARC2 starting with "2"). Rows keep the
// original ASSESS layout and order.
func NullNAICSEnergy(assess, recc *internal.Table) (*internal.Table, error) {
	idx, err := indexAll(assess, []string{ColID, ColNAICS})
	if err != nil {
		return nil, err
	}
	reccIdx, err := indexAll(recc, []string{ColID, ColARC2})
	if err != nil {
		return nil, err
	}
	assessID, naics := idx[0], idx[1]
	reccID, arc := reccIdx[0], reccIdx[1]

	energyIDs := map[string]struct{}{}
	for r := range recc.Rows {
		code := recc.Cell(r, arc)
		id := recc.Cell(r, reccID)
		if code == nil || id == nil || !strings.HasPrefix(*code, energyARCPrefix) {
			continue
		}
		energyIDs[*id] = struct{}{}
	}

	nullCount := 0
	perFY := map[string]int{}
	fyCol := assess.Index(ColFY)

	out := internal.NewTable("null_naics", assess.Columns)
	for r, row := range assess.Rows {
		if assess.Cell(r, naics) != nil {
			continue
		}
		nullCount++
		perFY[internal.Deref(assess.Cell(r, fyCol))]++

		id := assess.Cell(r, assessID)
		if id == nil {
			continue
		}
		if _, ok := energyIDs[*id]; !ok {
			continue
		}
		cells := make([]*string, len(out.Columns))
		copy(cells, row)
		out.Rows = append(out.Rows, cells)
	}

	slog.Info("null NAICS assessments",
		slog.Int("total", nullCount),
		slog.String("per_fy", formatCounts(perFY)),
		slog.Int("with_energy_recommendations", out.Len()))
	return out, nil
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

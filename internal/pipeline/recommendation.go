package pipeline

import (
	"fmt"

	"iactidy/internal"
)

// Recommendation columns repeated unchanged on every ranked row.
var reccCommonColumns = []string{
	"SUPERID", "ID", "AR_NUMBER", "APPCODE", "ARC2",
	"IMPSTATUS", "IMPCOST", "REBATE", "INCREMNTAL",
	"FY", "IC_CAPITAL", "IC_OTHER", "PAYBACK", "BPTOOL",
}

// rankFields holds the four per-rank column names of one source rank.
type rankFields struct {
	SourceCode      string
	Conserved       string
	SourceConserved string
	Saved           string
}

type sourceRank struct {
	Label  string
	Fields rankFields
}

// Primary, secondary, tertiary and quaternary energy sources, in output order.
var sourceRanks = []sourceRank{
	{Label: "PSOURCCODE", Fields: rankFields{"PSOURCCODE", "PCONSERVED", "PSOURCONSV", "PSAVED"}},
	{Label: "SSOURCCODE", Fields: rankFields{"SSOURCCODE", "SCONSERVED", "SSOURCONSV", "SSAVED"}},
	{Label: "TSOURCCODE", Fields: rankFields{"TSOURCCODE", "TCONSERVED", "TSOURCONSV", "TSAVED"}},
	{Label: "QSOURCCODE", Fields: rankFields{"QSOURCCODE", "QCONSERVED", "QSOURCONSV", "QSAVED"}},
}

const (
	ColSourceRank = "SOURCE_RANK"
	ColSourcCode  = "SOURCCODE"
	ColConserved  = "CONSERVED"
	ColSourConsv  = "SOURCONSV"
	ColSaved      = "SAVED"
)

var rankedColumns = []string{ColSourceRank, ColSourcCode, ColConserved, ColSourConsv, ColSaved}

// reccCommonHead is how many common columns precede the ranked block.
const reccCommonHead = 7

// ReccTidySchema is the output column order of UnpivotRecommendations.
var ReccTidySchema = func() []string {
	out := make([]string, 0, len(reccCommonColumns)+len(rankedColumns))
	out = append(out, reccCommonColumns[:reccCommonHead]...)
	out = append(out, rankedColumns...)
	out = append(out, reccCommonColumns[reccCommonHead:]...)
	return out
}()

// UnpivotRecommendations turns each recommendation row into one row per
// source rank. Missing rank columns yield nil values; a missing common column
// is an error.
func UnpivotRecommendations(in *internal.Table) (*internal.Table, error) {
	common := make([]int, len(reccCommonColumns))
	for i, c := range reccCommonColumns {
		idx := in.Index(c)
		if idx < 0 {
			return nil, fmt.Errorf("%s: %q: %w", in.Name, c, ErrMissingColumn)
		}
		common[i] = idx
	}

	type rankIdx struct {
		label                                   string
		code, conserved, sourceConserved, saved int
	}
	ranks := make([]rankIdx, len(sourceRanks))
	for i, r := range sourceRanks {
		ranks[i] = rankIdx{
			label:           r.Label,
			code:            in.Index(r.Fields.SourceCode),
			conserved:       in.Index(r.Fields.Conserved),
			sourceConserved: in.Index(r.Fields.SourceConserved),
			saved:           in.Index(r.Fields.Saved),
		}
	}

	out := internal.NewTable("recc_tidy", ReccTidySchema)
	out.Rows = make([][]*string, 0, len(in.Rows)*len(sourceRanks))
	for r := range in.Rows {
		for _, rk := range ranks {
			row := make([]*string, 0, len(ReccTidySchema))
			for _, idx := range common[:reccCommonHead] {
				row = append(row, in.Cell(r, idx))
			}
			label := rk.label
			row = append(row,
				&label,
				in.Cell(r, rk.code),
				in.Cell(r, rk.conserved),
				in.Cell(r, rk.sourceConserved),
				in.Cell(r, rk.saved),
			)
			for _, idx := range common[reccCommonHead:] {
				row = append(row, in.Cell(r, idx))
			}
			if err := out.Append(row); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
			}
		}
	}
	return out, nil
}

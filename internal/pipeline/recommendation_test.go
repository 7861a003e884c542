package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reccInput(extra []string) []string {
	return append(append([]string{}, reccCommonColumns...), extra...)
}

func commonValues(id string) []any {
	return []any{"S-" + id, id, 1, "I", 2.7142, "I", 1200, 0, "N", 2005, 1000, 200, 0.4, "N"}
}

func TestUnpivotRecommendationsExample(t *testing.T) {
	cols := reccInput([]string{"PSOURCCODE", "PCONSERVED", "SSOURCCODE", "SCONSERVED", "RECC"})
	row := append(commonValues("AM0001"), "EC", 5, "ED", 3, "RECC02")
	in := mkTable("RECC", cols, row)

	got, err := UnpivotRecommendations(in)
	require.NoError(t, err)
	require.Equal(t, 4, got.Len())
	assert.Equal(t, ReccTidySchema, got.Columns)

	assert.Equal(t, "PSOURCCODE", cell(got, 0, ColSourceRank))
	assert.Equal(t, "EC", cell(got, 0, ColSourcCode))
	assert.Equal(t, "5", cell(got, 0, ColConserved))

	assert.Equal(t, "SSOURCCODE", cell(got, 1, ColSourceRank))
	assert.Equal(t, "ED", cell(got, 1, ColSourcCode))
	assert.Equal(t, "3", cell(got, 1, ColConserved))

	for i, label := range []string{"TSOURCCODE", "QSOURCCODE"} {
		r := i + 2
		assert.Equal(t, label, cell(got, r, ColSourceRank))
		assert.Equal(t, "<nil>", cell(got, r, ColSourcCode))
		assert.Equal(t, "<nil>", cell(got, r, ColConserved))
		assert.Equal(t, "<nil>", cell(got, r, ColSourConsv))
		assert.Equal(t, "<nil>", cell(got, r, ColSaved))
	}
}

func TestUnpivotRecommendationsKeepsRanksTogether(t *testing.T) {
	var cols []string
	cols = append(cols, reccCommonColumns...)
	var rows [][]any
	for _, r := range sourceRanks {
		cols = append(cols, r.Fields.SourceCode, r.Fields.Conserved, r.Fields.SourceConserved, r.Fields.Saved)
	}
	for _, id := range []string{"A1", "A2", "A3"} {
		row := commonValues(id)
		for _, r := range sourceRanks {
			p := r.Label[:1]
			row = append(row, p+"code-"+id, p+"cons-"+id, p+"src-"+id, p+"saved-"+id)
		}
		rows = append(rows, row)
	}
	in := mkTable("RECC", cols, rows...)

	got, err := UnpivotRecommendations(in)
	require.NoError(t, err)
	require.Equal(t, 4*in.Len(), got.Len())

	for r := range in.Rows {
		for k, rank := range sourceRanks {
			o := r*4 + k
			for _, c := range reccCommonColumns {
				assert.Equal(t, cell(in, r, c), cell(got, o, c), "common column %s", c)
			}
			id := cell(in, r, "ID")
			p := rank.Label[:1]
			assert.Equal(t, rank.Label, cell(got, o, ColSourceRank))
			assert.Equal(t, p+"code-"+id, cell(got, o, ColSourcCode))
			assert.Equal(t, p+"cons-"+id, cell(got, o, ColConserved))
			assert.Equal(t, p+"src-"+id, cell(got, o, ColSourConsv))
			assert.Equal(t, p+"saved-"+id, cell(got, o, ColSaved))
		}
	}
}

func TestUnpivotRecommendationsSchema(t *testing.T) {
	assert.Equal(t, []string{
		"SUPERID", "ID", "AR_NUMBER", "APPCODE", "ARC2", "IMPSTATUS", "IMPCOST",
		"SOURCE_RANK", "SOURCCODE", "CONSERVED", "SOURCONSV", "SAVED",
		"REBATE", "INCREMNTAL", "FY", "IC_CAPITAL", "IC_OTHER", "PAYBACK", "BPTOOL",
	}, ReccTidySchema)
}

func TestUnpivotRecommendationsEmpty(t *testing.T) {
	got, err := UnpivotRecommendations(mkTable("RECC", reccCommonColumns))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestUnpivotRecommendationsMissingCommonColumn(t *testing.T) {
	in := mkTable("RECC", reccCommonColumns[1:], commonValues("A1")[1:])
	_, err := UnpivotRecommendations(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(v string) *string { return &v }

func TestConcatUnion(t *testing.T) {
	a := NewTable("a", []string{"ID", "X"})
	a.Rows = [][]*string{{sp("1"), sp("x1")}}
	b := NewTable("b", []string{"Y", "ID"})
	b.Rows = [][]*string{{sp("y2"), sp("2")}, {nil, sp("3")}}

	got := Concat("ab", a, b)
	assert.Equal(t, []string{"ID", "X", "Y"}, got.Columns)
	assert.Equal(t, [][]string{
		{"1", "x1", ""},
		{"2", "", "y2"},
		{"3", "", ""},
	}, got.Records())
	assert.Nil(t, got.Cell(1, 1))
	assert.Nil(t, got.Cell(2, 2))
}

func TestAppendChecksWidth(t *testing.T) {
	tbl := NewTable("t", []string{"a", "b"})
	require.NoError(t, tbl.Append([]*string{sp("1"), nil}))
	require.Error(t, tbl.Append([]*string{sp("1")}))
	assert.Equal(t, 1, tbl.Len())
	assert.True(t, tbl.Has("b"))
	assert.Equal(t, []*string{nil}, tbl.Column("b"))
	assert.Nil(t, tbl.Column("c"))
	assert.Nil(t, tbl.Cell(5, 0))
}

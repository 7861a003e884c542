package pipeline

import (
	"strconv"
	"strings"
)

// SourceCode identifies an energy or waste stream in the IAC database.
// Codes are totally ordered by Rank, not alphabetically.
type SourceCode string

// SourceCodes lists the IAC energy (E*) and waste (W*) streams in database
// order. E1 was split into EC, ED and EF in FY95.
var SourceCodes = func() []SourceCode {
	out := []SourceCode{"EC", "ED", "EF"}
	for i := 2; i <= 12; i++ {
		out = append(out, SourceCode("E"+strconv.Itoa(i)))
	}
	for i := 0; i <= 6; i++ {
		out = append(out, SourceCode("W"+strconv.Itoa(i)))
	}
	return out
}()

var sourceCodeRank = func() map[SourceCode]int {
	m := make(map[SourceCode]int, len(SourceCodes))
	for i, c := range SourceCodes {
		m[c] = i
	}
	return m
}()

// Rank is the position of c in SourceCodes, or -1 for codes outside it.
func (c SourceCode) Rank() int {
	if r, ok := sourceCodeRank[c]; ok {
		return r
	}
	return -1
}

func (c SourceCode) Known() bool {
	return c.Rank() >= 0
}

// Compare orders known codes by rank, then unknown codes alphabetically.
func (c SourceCode) Compare(other SourceCode) int {
	a, b := c.Rank(), other.Rank()
	switch {
	case a >= 0 && b >= 0:
		return a - b
	case a >= 0:
		return -1
	case b >= 0:
		return 1
	}
	return strings.Compare(string(c), string(other))
}

package internal

import "fmt"

// Table is an in-memory sheet: a header and rows of nullable cells.
// A nil cell is a missing value.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]*string
}

func NewTable(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Cell returns the value at (row, col); out-of-range columns read as nil.
func (t *Table) Cell(row, col int) *string {
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return nil
	}
	r := t.Rows[row]
	if col >= len(r) {
		return nil
	}
	return r[col]
}

// Append adds a row after checking it matches the header width.
func (t *Table) Append(row []*string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("table %s: row has %d cells, schema has %d", t.Name, len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Column returns all values of a column, or nil when it does not exist.
func (t *Table) Column(name string) []*string {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	out := make([]*string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, idx)
	}
	return out
}

// Records renders the rows as strings, nil cells as "".
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i := range t.Columns {
			if i < len(row) && row[i] != nil {
				rec[i] = *row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

// Concat stacks tables with the union of their columns in first-seen order.
// Cells absent from a source table are nil.
func Concat(name string, tables ...*Table) *Table {
	var columns []string
	seen := map[string]int{}
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = len(columns)
			columns = append(columns, c)
		}
	}

	out := NewTable(name, columns)
	for _, t := range tables {
		pos := make([]int, len(t.Columns))
		for i, c := range t.Columns {
			pos[i] = seen[c]
		}
		for _, row := range t.Rows {
			merged := make([]*string, len(columns))
			for i, v := range row {
				if i < len(pos) {
					merged[pos[i]] = v
				}
			}
			out.Rows = append(out.Rows, merged)
		}
	}
	return out
}

func Deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

const (
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

type RunRecord struct {
	ID         int64
	TraceID    string
	Status     string
	StartedAt  string
	FinishedAt *string
	Counts     map[string]int
	TimingsMs  map[string]float64
	Error      *string
}

// OutputRecord is one file written by a run.
type OutputRecord struct {
	Name string
	Path string
	Rows int
}

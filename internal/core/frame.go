package core

import (
	"fmt"
	"strconv"
	"strings"
)

// HeaderIndex maps column names to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Names are matched exactly after trimming surrounding whitespace.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

// Frame is an in-memory table of nullable text cells.
//
// Every operation returns a new Frame and leaves the receiver untouched,
// so several outputs can be derived from one source frame. Unchanged cells
// are shared between frames; rows are never modified after creation.
type Frame struct {
	Columns []string
	Rows    [][]Cell
}

// NewFrame creates a frame with the given columns and rows.
func NewFrame(columns []string, rows [][]Cell) *Frame {
	return &Frame{Columns: columns, Rows: rows}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Index returns the position of a column, or -1 if absent.
func (f *Frame) Index(col string) int {
	for i, c := range f.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

func (f *Frame) mustIndex(col string) (int, error) {
	i := f.Index(col)
	if i < 0 {
		return 0, fmt.Errorf("column not found: %s", col)
	}
	return i, nil
}

// Select projects the frame onto the given columns, in the given order.
func (f *Frame) Select(cols ...string) (*Frame, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, err := f.mustIndex(c)
		if err != nil {
			return nil, err
		}
		idx[i] = j
	}

	rows := make([][]Cell, len(f.Rows))
	for r, row := range f.Rows {
		out := make([]Cell, len(idx))
		for i, j := range idx {
			out[i] = row[j]
		}
		rows[r] = out
	}

	columns := make([]string, len(cols))
	copy(columns, cols)
	return &Frame{Columns: columns, Rows: rows}, nil
}

// Rename changes column names. Columns not in the map keep their name.
func (f *Frame) Rename(names map[string]string) *Frame {
	columns := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		if n, ok := names[c]; ok {
			columns[i] = n
		} else {
			columns[i] = c
		}
	}
	return &Frame{Columns: columns, Rows: f.Rows}
}

// DropNull removes rows in which any cell is NULL.
func (f *Frame) DropNull() *Frame {
	rows := make([][]Cell, 0, len(f.Rows))
	for _, row := range f.Rows {
		if !hasNull(row) {
			rows = append(rows, row)
		}
	}
	return &Frame{Columns: f.Columns, Rows: rows}
}

func hasNull(row []Cell) bool {
	for _, c := range row {
		if !c.Valid {
			return true
		}
	}
	return false
}

// MapColumn applies fn to every non-NULL value of col.
func (f *Frame) MapColumn(col string, fn func(string) string) (*Frame, error) {
	j, err := f.mustIndex(col)
	if err != nil {
		return nil, err
	}

	rows := make([][]Cell, len(f.Rows))
	for r, row := range f.Rows {
		if !row[j].Valid {
			rows[r] = row
			continue
		}
		out := make([]Cell, len(row))
		copy(out, row)
		out[j] = Cell{String: fn(row[j].String), Valid: true}
		rows[r] = out
	}
	return &Frame{Columns: f.Columns, Rows: rows}, nil
}

// Explode splits col on sep and emits one row per element, duplicating the
// other cells. A NULL cell yields a single row with a NULL value. Empty
// elements are kept as empty strings.
func (f *Frame) Explode(col, sep string) (*Frame, error) {
	j, err := f.mustIndex(col)
	if err != nil {
		return nil, err
	}

	rows := make([][]Cell, 0, len(f.Rows))
	for _, row := range f.Rows {
		if !row[j].Valid {
			rows = append(rows, row)
			continue
		}
		parts := strings.Split(row[j].String, sep)
		if len(parts) == 1 {
			rows = append(rows, row)
			continue
		}
		for _, p := range parts {
			out := make([]Cell, len(row))
			copy(out, row)
			out[j] = Cell{String: p, Valid: true}
			rows = append(rows, out)
		}
	}
	return &Frame{Columns: f.Columns, Rows: rows}, nil
}

// DropDuplicates removes duplicate rows. NULL and the empty string are
// distinct values. Row order is preserved.
func (f *Frame) DropDuplicates(mode DedupeMode) *Frame {
	keys := make([]string, len(f.Rows))
	counts := make(map[string]int, len(f.Rows))
	for i, row := range f.Rows {
		k := rowKey(row)
		keys[i] = k
		counts[k]++
	}

	rows := make([][]Cell, 0, len(f.Rows))
	seen := make(map[string]bool, len(counts))
	for i, row := range f.Rows {
		k := keys[i]
		switch mode {
		case DedupeKeepFirst:
			if seen[k] {
				continue
			}
			seen[k] = true
		default:
			if counts[k] > 1 {
				continue
			}
		}
		rows = append(rows, row)
	}
	return &Frame{Columns: f.Columns, Rows: rows}
}

// rowKey encodes a row so that distinct rows never share a key: each value
// carries its byte length, so separators inside values cannot shift cells.
func rowKey(row []Cell) string {
	var b strings.Builder
	for _, c := range row {
		if !c.Valid {
			b.WriteString("N;")
			continue
		}
		b.WriteString("V")
		b.WriteString(strconv.Itoa(len(c.String)))
		b.WriteString(":")
		b.WriteString(c.String)
	}
	return b.String()
}

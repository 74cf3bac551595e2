package xlsx

import (
	"iter"
	"slices"
)

// Row is a sparse set of cells keyed by column number. Only cells that have a
// value or a formula are stored.
type Row struct {
	number int
	first  int
	last   int
	cells  map[int]*Cell
	cols   []int // sorted keys of cells, set by freeze
}

func newRow(number, first, last int) *Row {
	return &Row{
		number: number,
		first:  first,
		last:   last,
		cells:  make(map[int]*Cell),
	}
}

// put stores c under its column, replacing any earlier cell there.
func (r *Row) put(c *Cell) {
	r.cells[c.pos.Col] = c
}

func (r *Row) freeze() {
	r.cols = make([]int, 0, len(r.cells))
	for col := range r.cells {
		r.cols = append(r.cols, col)
	}
	slices.Sort(r.cols)
}

// Number returns the 1-based row number.
func (r *Row) Number() int {
	return r.number
}

// FirstColumn returns the first column of the row's declared span. The span
// is a hint written by the producer, not a bound on Cell lookups.
func (r *Row) FirstColumn() int {
	return r.first
}

// LastColumn returns the last column of the row's declared span.
func (r *Row) LastColumn() int {
	return r.last
}

// ColumnCount returns the width of the declared span. It is often larger
// than CellCount because empty cells are not stored.
func (r *Row) ColumnCount() int {
	return r.last - r.first + 1
}

// CellCount returns the number of stored cells.
func (r *Row) CellCount() int {
	return len(r.cells)
}

// Cell returns the cell in the given 1-based column, or nil if there is
// none. Any column number may be passed.
func (r *Row) Cell(col int) *Cell {
	return r.cells[col]
}

// Cells iterates over the stored cells in column order.
func (r *Row) Cells() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for _, col := range r.cols {
			if !yield(r.cells[col]) {
				return
			}
		}
	}
}

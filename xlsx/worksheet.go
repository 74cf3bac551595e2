package xlsx

import (
	"iter"
	"slices"

	"github.com/tsawler/xlsxgrid/cellref"
)

// Worksheet is a sparse set of rows keyed by row number.
type Worksheet struct {
	name   string
	folded string // case-folded name for lookups
	id     int
	index  int
	rows   map[int]*Row
	nums   []int // sorted keys of rows, set by freeze
}

func newWorksheet(name string, id, index int) *Worksheet {
	return &Worksheet{
		name:   name,
		folded: foldName(name),
		id:     id,
		index:  index,
		rows:   make(map[int]*Row),
	}
}

// put stores r under its number, replacing any earlier row there.
func (ws *Worksheet) put(r *Row) {
	ws.rows[r.number] = r
}

func (ws *Worksheet) freeze() {
	ws.nums = make([]int, 0, len(ws.rows))
	for n, r := range ws.rows {
		r.freeze()
		ws.nums = append(ws.nums, n)
	}
	slices.Sort(ws.nums)
}

// Name returns the sheet's tab name. Names are not guaranteed to be unique.
func (ws *Worksheet) Name() string {
	return ws.name
}

// ID returns the sheetId declared in the workbook. Ids need not be
// contiguous or start at 1.
func (ws *Worksheet) ID() int {
	return ws.id
}

// Index returns the sheet's 0-based position in the workbook.
func (ws *Worksheet) Index() int {
	return ws.index
}

// Row returns the row with the given 1-based number, or nil if there is none.
func (ws *Worksheet) Row(number int) *Row {
	return ws.rows[number]
}

// Cell returns the cell at the given 1-based row and column, or nil if the
// cell is empty or outside the sheet.
func (ws *Worksheet) Cell(row, col int) *Cell {
	r := ws.rows[row]
	if r == nil {
		return nil
	}
	return r.Cell(col)
}

// CellByRef returns the cell at a reference such as "B7", or nil.
func (ws *Worksheet) CellByRef(ref string) *Cell {
	p := cellref.Decode(ref)
	return ws.Cell(p.Row, p.Col)
}

// Value returns the value at the given position; empty if there is no cell.
func (ws *Worksheet) Value(row, col int) Value {
	if c := ws.Cell(row, col); c != nil {
		return c.value
	}
	return Value{}
}

// RowCount returns the number of stored rows.
func (ws *Worksheet) RowCount() int {
	return len(ws.rows)
}

// CellCount returns the number of stored cells across all rows.
func (ws *Worksheet) CellCount() int {
	n := 0
	for _, r := range ws.rows {
		n += len(r.cells)
	}
	return n
}

// Rows iterates over the stored rows in row order.
func (ws *Worksheet) Rows() iter.Seq[*Row] {
	return func(yield func(*Row) bool) {
		for _, n := range ws.nums {
			if !yield(ws.rows[n]) {
				return
			}
		}
	}
}

// Cells iterates over every stored cell, row by row and then by column.
// Each call starts a fresh pass.
func (ws *Worksheet) Cells() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for r := range ws.Rows() {
			for c := range r.Cells() {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Bounds returns the smallest range covering every stored row, the declared
// spans of those rows, and their cells. It reports false for a sheet with no
// rows.
func (ws *Worksheet) Bounds() (cellref.Range, bool) {
	if len(ws.nums) == 0 {
		return cellref.Range{}, false
	}

	minCol, maxCol := 0, 0
	for r := range ws.Rows() {
		lo, hi := r.first, r.last
		if len(r.cols) > 0 {
			lo = min(lo, r.cols[0])
			hi = max(hi, r.cols[len(r.cols)-1])
		}
		if lo < 1 {
			lo = 1
		}
		if hi < lo {
			continue
		}
		if minCol == 0 || lo < minCol {
			minCol = lo
		}
		maxCol = max(maxCol, hi)
	}
	if minCol == 0 {
		return cellref.Range{}, false
	}

	return cellref.Range{
		Start: cellref.Position{Row: ws.nums[0], Col: minCol},
		End:   cellref.Position{Row: ws.nums[len(ws.nums)-1], Col: maxCol},
	}, true
}

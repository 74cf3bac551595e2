package xlsx

import (
	"reflect"

	"github.com/tsawler/xlsxgrid/cellref"
)

// Table is a rectangular view of part of a worksheet. Columns are labelled
// with their letters; positions without a cell hold an empty Value.
// Worksheets never change after decoding, so the view reads through to the
// sheet instead of copying it.
//
// Its Title, Columns, NumRows, Cell and ReflectCell methods match the usual
// read-only table view shape, so a Table can be handed to generic tabular
// code.
type Table struct {
	title   string
	area    cellref.Range
	columns []string
	ws      *Worksheet // nil for a table with no cells
}

// AsTableRange projects the rectangle between the given 1-based rows and
// columns. Bounds may be given in either order and are clamped to the
// worksheet grid (1..cellref.MaxRows, 1..cellref.MaxColumns).
func (ws *Worksheet) AsTableRange(startRow, endRow, firstCol, lastCol int) *Table {
	area := cellref.NewRange(
		cellref.Position{Row: clamp(startRow, cellref.MaxRows), Col: clamp(firstCol, cellref.MaxColumns)},
		cellref.Position{Row: clamp(endRow, cellref.MaxRows), Col: clamp(lastCol, cellref.MaxColumns)},
	)
	return ws.project(area)
}

func clamp(n, limit int) int {
	return min(max(n, 1), limit)
}

// AsTableRef projects the range named by ref, such as "A1:E10" or "C3".
func (ws *Worksheet) AsTableRef(ref string) (*Table, error) {
	area, err := cellref.ParseRange(ref)
	if err != nil {
		return nil, err
	}
	return ws.project(area), nil
}

// AsTable projects the smallest rectangle covering the sheet's rows and
// their declared spans, clamped to the worksheet grid. An empty sheet gives
// a table with no rows or columns.
func (ws *Worksheet) AsTable() *Table {
	area, ok := ws.Bounds()
	if !ok {
		return &Table{title: ws.name}
	}
	return ws.AsTableRange(area.Start.Row, area.End.Row, area.Start.Col, area.End.Col)
}

// AsTables projects every worksheet with AsTable, in workbook order.
func (wb *Workbook) AsTables() []*Table {
	tables := make([]*Table, len(wb.sheets))
	for i, ws := range wb.sheets {
		tables[i] = ws.AsTable()
	}
	return tables
}

func (ws *Worksheet) project(area cellref.Range) *Table {
	t := &Table{
		title:   ws.name,
		area:    area,
		columns: make([]string, area.Cols()),
		ws:      ws,
	}
	for i := range t.columns {
		t.columns[i] = cellref.ColumnName(area.Start.Col + i)
	}
	return t
}

// Title returns the name of the worksheet the table was taken from.
func (t *Table) Title() string { return t.title }

// Columns returns the column letters. The slice must not be modified.
func (t *Table) Columns() []string { return t.columns }

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if t.ws == nil {
		return 0
	}
	return t.area.Rows()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// Range returns the worksheet range the table covers. It is the zero Range
// for a table taken from an empty sheet.
func (t *Table) Range() cellref.Range { return t.area }

// Value returns the value at the 0-based table position; empty when the
// position has no cell or is outside the table.
func (t *Table) Value(row, col int) Value {
	if row < 0 || row >= t.NumRows() || col < 0 || col >= len(t.columns) {
		return Value{}
	}
	return t.ws.Value(t.area.Start.Row+row, t.area.Start.Col+col)
}

// Cell returns the value at the 0-based table position as nil, string,
// float64 or bool. Nil marks an empty position.
func (t *Table) Cell(row, col int) any {
	return t.Value(row, col).Any()
}

// ReflectCell returns Cell wrapped in a reflect.Value; the invalid Value for
// an empty position.
func (t *Table) ReflectCell(row, col int) reflect.Value {
	v := t.Cell(row, col)
	if v == nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(v)
}

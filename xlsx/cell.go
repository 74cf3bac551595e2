package xlsx

import (
	"fmt"

	"github.com/tsawler/xlsxgrid/cellref"
)

// Cell is a single decoded cell. Cells are created while a workbook is
// decoded and never change afterwards.
type Cell struct {
	pos      cellref.Position
	value    Value
	formula  string
	typeCode string
	style    int
}

// Position returns the cell's 1-based coordinates.
func (c *Cell) Position() cellref.Position {
	return c.pos
}

// Row returns the 1-based row number.
func (c *Cell) Row() int {
	return c.pos.Row
}

// Col returns the 1-based column number.
func (c *Cell) Col() int {
	return c.pos.Col
}

// Ref returns the cell reference, e.g. "B7".
func (c *Cell) Ref() string {
	return c.pos.String()
}

// Value returns the cell's value. A cell kept only for its formula has an
// empty value.
func (c *Cell) Value() Value {
	return c.value
}

// Formula returns the formula text as stored, normally without a leading
// "=", and whether the cell has one. Cells that share a formula written on another cell
// report no formula.
func (c *Cell) Formula() (string, bool) {
	return c.formula, c.formula != ""
}

// TypeCode returns the raw type attribute ("s", "str", "b", ...), or "" for
// numbers written without one.
func (c *Cell) TypeCode() string {
	return c.typeCode
}

// StyleIndex returns the index into the workbook's cell formats.
func (c *Cell) StyleIndex() int {
	return c.style
}

// String returns a description such as `B7 = "3.5" (number)`.
func (c *Cell) String() string {
	return fmt.Sprintf("%s = %q (%s)", c.Ref(), c.value.String(), c.value.Kind())
}

// Package cellref converts between 1-based (row, column) positions, column
// letters, and A1-style cell references.
//
// Columns use bijective base-26: A=1, Z=26, AA=27, AZ=52, BA=53, ZZ=702,
// AAA=703. There is no zero digit, so multiples of 26 end in "Z".
package cellref

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned when a range string has no decodable endpoint.
var ErrInvalidRange = errors.New("cellref: invalid range")

// Worksheet grid limits: XFD1048576 is the last cell.
const (
	MaxRows    = 1048576
	MaxColumns = 16384
)

// Position is a 1-based cell coordinate. A zero Row or Col means the
// coordinate was not specified or could not be decoded.
type Position struct {
	Row int
	Col int
}

// Valid reports whether both coordinates are 1-based.
func (p Position) Valid() bool {
	return p.Row >= 1 && p.Col >= 1
}

// InSheet reports whether p is valid and within MaxRows and MaxColumns.
func (p Position) InSheet() bool {
	return p.Valid() && p.Row <= MaxRows && p.Col <= MaxColumns
}

// String returns the A1-style reference for p.
func (p Position) String() string {
	return Encode(p.Row, p.Col)
}

// Decode parses a reference such as "B7" or "aa100".
//
// The leading run of ASCII letters is read as the column; parsing stops at the
// first non-letter and the rest is read as the row. Decode never fails: an
// unparsable row yields Row 0, and a reference that does not start with a
// letter, or whose letters overflow an int, yields Col 0.
func Decode(ref string) Position {
	col := 0
	overflow := false
	i := 0
	for ; i < len(ref); i++ {
		c := ref[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			break
		}
		d := int(c-'A') + 1
		if overflow || col > (math.MaxInt-d)/26 {
			overflow = true
			continue
		}
		col = col*26 + d
	}
	if overflow {
		col = 0
	}

	row, err := strconv.Atoi(ref[i:])
	if err != nil {
		row = 0
	}
	return Position{Row: row, Col: col}
}

// ColumnName returns the letters for a 1-based column number.
// 1=A, 26=Z, 27=AA, 702=ZZ, 703=AAA. Columns below 1 yield "".
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}

	var buf [14]byte // enough for math.MaxInt
	i := len(buf)
	for col > 0 {
		col-- // shift to 0..25 so exact multiples of 26 map to 'Z'
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// ColumnNumber converts column letters to a 1-based column number.
// It returns 0 if s is empty, contains anything but ASCII letters, or
// names a column beyond math.MaxInt.
func ColumnNumber(s string) int {
	if s == "" {
		return 0
	}
	col := 0
	for _, c := range strings.ToUpper(s) {
		if c < 'A' || c > 'Z' {
			return 0
		}
		d := int(c-'A') + 1
		if col > (math.MaxInt-d)/26 {
			return 0
		}
		col = col*26 + d
	}
	return col
}

// Encode creates a reference string from 1-based row and column numbers.
func Encode(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

// Range is a rectangle of cells with Start at the top-left corner and End at
// the bottom-right corner, both inclusive.
type Range struct {
	Start Position
	End   Position
}

// NewRange returns the range spanning a and b with each axis normalized so
// that Start holds the minimum and End the maximum.
func NewRange(a, b Position) Range {
	return Range{
		Start: Position{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)},
		End:   Position{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)},
	}
}

// ParseRange parses a range such as "A1:E10". A single reference ("C3") is a
// one-cell range. Endpoints may be given in any order and may carry "$"
// absolute markers. Tokens after the second are ignored. Endpoints outside
// the worksheet grid (beyond XFD1048576) do not count as valid; when only one
// endpoint is valid, the range collapses onto it.
func ParseRange(s string) (Range, error) {
	tokens := strings.Split(strings.TrimSpace(s), ":")
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}

	var points []Position
	for _, tok := range tokens {
		p := Decode(strings.ReplaceAll(strings.TrimSpace(tok), "$", ""))
		if p.InSheet() {
			points = append(points, p)
		}
	}

	switch len(points) {
	case 0:
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	case 1:
		return NewRange(points[0], points[0]), nil
	default:
		return NewRange(points[0], points[1]), nil
	}
}

// Rows returns the number of rows covered by r.
func (r Range) Rows() int {
	return r.End.Row - r.Start.Row + 1
}

// Cols returns the number of columns covered by r.
func (r Range) Cols() int {
	return r.End.Col - r.Start.Col + 1
}

// Contains reports whether p lies inside r.
func (r Range) Contains(p Position) bool {
	return p.Row >= r.Start.Row && p.Row <= r.End.Row &&
		p.Col >= r.Start.Col && p.Col <= r.End.Col
}

// String returns r in "A1:B2" form.
func (r Range) String() string {
	return r.Start.String() + ":" + r.End.String()
}

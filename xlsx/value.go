package xlsx

import (
	"math"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindEmpty indicates no value.
	KindEmpty Kind = iota
	// KindText indicates a string value.
	KindText
	// KindNumber indicates a numeric value.
	KindNumber
	// KindBool indicates a boolean value.
	KindBool
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is the decoded content of a cell: text, a number, a boolean, or
// nothing. The zero Value is empty.
//
// Dates and times are not a separate kind. Spreadsheets store them as Number
// serials counting days since the workbook epoch, with the fraction giving
// the time of day; use Time to convert.
type Value struct {
	kind Kind
	text string
	num  float64
	b    bool
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether v holds nothing.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// Text returns the string held by v and whether v is a text value.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Number returns the number held by v and whether v is a numeric value.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Bool returns the boolean held by v and whether v is a boolean value.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Any returns v as nil, string, float64 or bool.
func (v Value) Any() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// String formats v the way a spreadsheet shows it in the General format:
// booleans as TRUE/FALSE, numbers in shortest form, empty as "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

var (
	epoch1900 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Time converts a numeric serial date to a time in UTC. Pass the workbook's
// Date1904 setting to select the epoch. Serials before 1900-03-01 in the 1900
// system are one day off, because that system counts a 29 February 1900 that
// never existed. Time reports false for non-numeric values.
func (v Value) Time(date1904 bool) (time.Time, bool) {
	if v.kind != KindNumber || math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return time.Time{}, false
	}

	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	}

	days := math.Floor(v.num)
	ms := math.Round((v.num - days) * 24 * 60 * 60 * 1000)
	return epoch.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond), true
}

package xlsx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/xlsxgrid/cellref"
	"github.com/tsawler/xlsxgrid/internal/ooxml"
)

var (
	// ErrUnsupportedFormat is returned for binary workbooks (.xls, .xlsb).
	ErrUnsupportedFormat = errors.New("xlsx: unsupported format")
	// ErrSheetNotFound is returned by Workbook.SheetByName.
	ErrSheetNotFound = errors.New("xlsx: sheet not found")
	// ErrSheetIndex is returned by Workbook.Sheet for an out-of-range index.
	ErrSheetIndex = errors.New("xlsx: sheet index out of range")

	// ErrMissingPart is returned when a part required to decode the workbook
	// is absent from the package.
	ErrMissingPart = ooxml.ErrMissingPart
	// ErrNoNamespace is returned when a part's root element has no namespace.
	ErrNoNamespace = ooxml.ErrNoNamespace
	// ErrInvalidRange is returned when a range string cannot be decoded.
	ErrInvalidRange = cellref.ErrInvalidRange
)

// PartError names the package part that could not be read.
type PartError = ooxml.PartError

// WarningKind classifies a Warning.
type WarningKind int

const (
	// WarnRowDropped means a row was skipped because its spans attribute was
	// missing or malformed, or its number was invalid.
	WarnRowDropped WarningKind = iota
	// WarnSharedString means a shared-string index was not a number or was
	// outside the table.
	WarnSharedString
	// WarnNumber means a numeric cell held text that is not a number.
	WarnNumber
	// WarnCellRef means a cell reference had no usable column.
	WarnCellRef
)

// String returns the string representation of the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarnRowDropped:
		return "row dropped"
	case WarnSharedString:
		return "bad shared string"
	case WarnNumber:
		return "bad number"
	case WarnCellRef:
		return "bad cell reference"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal problem found while decoding. The decoder applies a
// fixed fallback for each kind and carries on.
type Warning struct {
	Sheet  string
	Ref    string // cell reference or row number
	Kind   WarningKind
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s!%s: %s: %s", w.Sheet, w.Ref, w.Kind, w.Detail)
}

// FormatWarnings joins warnings into a single line-per-warning string.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

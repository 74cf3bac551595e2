package xlsx

import (
	"fmt"
	"iter"

	"golang.org/x/text/cases"
)

// Workbook is a decoded spreadsheet. It is read-only and safe for concurrent
// use once returned by Open.
type Workbook struct {
	sheets   []*Worksheet
	date1904 bool
	warnings []Warning
}

// foldName returns the case-folded form used for sheet name comparison.
// A Caser keeps state, so one is made per call.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// SheetCount returns the number of worksheets.
func (wb *Workbook) SheetCount() int {
	return len(wb.sheets)
}

// Sheet returns the worksheet at the given index (0-indexed).
func (wb *Workbook) Sheet(index int) (*Worksheet, error) {
	if index < 0 || index >= len(wb.sheets) {
		return nil, fmt.Errorf("%w: %d (0-%d)", ErrSheetIndex, index, len(wb.sheets)-1)
	}
	return wb.sheets[index], nil
}

// SheetByName returns the first worksheet whose name matches, ignoring case.
func (wb *Workbook) SheetByName(name string) (*Worksheet, error) {
	folded := foldName(name)
	for _, ws := range wb.sheets {
		if ws.folded == folded {
			return ws, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
}

// SheetNames returns the names of all sheets in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, ws := range wb.sheets {
		names[i] = ws.name
	}
	return names
}

// Sheets iterates over the worksheets in workbook order with their indexes.
func (wb *Workbook) Sheets() iter.Seq2[int, *Worksheet] {
	return func(yield func(int, *Worksheet) bool) {
		for i, ws := range wb.sheets {
			if !yield(i, ws) {
				return
			}
		}
	}
}

// Date1904 reports whether date serials count from 1904-01-01 instead of
// 1899-12-30. Pass it to Value.Time.
func (wb *Workbook) Date1904() bool {
	return wb.date1904
}

// Warnings returns the non-fatal problems found while decoding: dropped rows,
// unresolved shared strings and the like.
func (wb *Workbook) Warnings() []Warning {
	return append([]Warning(nil), wb.warnings...)
}

// Package xlsx decodes Office Open XML spreadsheets (.xlsx, .xlsm, .xltx,
// .xltm) into a read-only Workbook of Worksheets, Rows and Cells.
//
// Basic usage:
//
//	wb, err := xlsx.Open("report.xlsx")
//	if err != nil {
//	    // handle error
//	}
//	ws, _ := wb.SheetByName("summary")
//	for c := range ws.Cells() {
//	    fmt.Println(c)
//	}
//
// The whole workbook is decoded up front; the archive is closed before Open
// returns.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/tsawler/xlsxgrid/cellref"
	"github.com/tsawler/xlsxgrid/format"
	"github.com/tsawler/xlsxgrid/internal/ooxml"
)

// Part names within the package.
const (
	partWorkbook      = "xl/workbook.xml"
	partWorkbookRels  = "xl/_rels/workbook.xml.rels"
	partSharedStrings = "xl/sharedStrings.xml"
)

func sheetPartName(position int) string {
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", position)
}

// Open decodes the workbook at filename with default options.
func Open(filename string) (*Workbook, error) {
	return OpenWithOptions(filename, DefaultOptions())
}

// OpenWithOptions decodes the workbook at filename.
func OpenWithOptions(filename string, opts Options) (*Workbook, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return OpenReader(f, info.Size(), opts)
}

// OpenReader decodes a workbook from r, which holds size bytes. r is only
// read during the call.
func OpenReader(r io.ReaderAt, size int64, opts Options) (*Workbook, error) {
	kind, err := format.DetectFromReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("detecting format: %w", err)
	}
	if kind == format.XLS || kind == format.XLSB {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
	}

	pkg, err := ooxml.NewPackage(r, size)
	if err != nil {
		return nil, err
	}

	d := &decoder{pkg: pkg, opts: opts}
	return d.decode()
}

// decoder holds the state of one decode. Nothing in it outlives the call.
type decoder struct {
	pkg      *ooxml.Package
	opts     Options
	shared   []string
	rels     map[string]string // relationship id -> part name
	warnings []Warning
}

func (d *decoder) decode() (*Workbook, error) {
	// Shared strings come first; sheets index into them.
	if err := d.parseSharedStrings(); err != nil {
		return nil, fmt.Errorf("parsing shared strings: %w", err)
	}

	doc, err := d.pkg.ParsePart(partWorkbook)
	if err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	ns := doc.Namespace

	wb := &Workbook{}
	if pr, ok := doc.Root.First(ns, "workbookPr"); ok {
		wb.date1904 = parseXMLBool(pr.Attr("date1904"))
	}

	if d.opts.UseRelationships {
		if err := d.parseRelationships(); err != nil {
			return nil, fmt.Errorf("parsing relationships: %w", err)
		}
	}

	for i, el := range doc.Root.Select(ns, "sheets/sheet") {
		ws := newWorksheet(el.Attr("name"), el.AttrInt("sheetId"), i)

		sheetDoc, err := d.pkg.ParsePart(d.sheetPart(i+1, el))
		if err != nil {
			return nil, fmt.Errorf("parsing worksheet %q: %w", ws.name, err)
		}
		d.parseWorksheet(ws, sheetDoc)
		ws.freeze()

		wb.sheets = append(wb.sheets, ws)
	}

	wb.warnings = d.warnings
	return wb, nil
}

// parseSharedStrings builds the shared-string table. A package without the
// part simply has an empty table.
func (d *decoder) parseSharedStrings() error {
	if !d.pkg.Has(partSharedStrings) {
		return nil
	}

	doc, err := d.pkg.ParsePart(partSharedStrings)
	if err != nil {
		return err
	}

	items := doc.Root.Children(doc.Namespace, "si")
	d.shared = make([]string, len(items))
	for i, si := range items {
		d.shared[i] = runText(si, doc.Namespace)
	}
	return nil
}

// runText concatenates the text of a string item: either a single t element
// or a series of rich-text runs. Run formatting and phonetic runs are
// dropped.
func runText(item ooxml.Element, ns string) string {
	var text strings.Builder
	for _, child := range item.Elements() {
		if child.Namespace() != ns {
			continue
		}
		switch child.Name() {
		case "t":
			text.WriteString(child.Text())
		case "r":
			for _, t := range child.Children(ns, "t") {
				text.WriteString(t.Text())
			}
		}
	}
	return text.String()
}

// parseRelationships maps the workbook's relationship ids to part names.
func (d *decoder) parseRelationships() error {
	d.rels = make(map[string]string)
	if !d.pkg.Has(partWorkbookRels) {
		return nil
	}

	doc, err := d.pkg.ParsePart(partWorkbookRels)
	if err != nil {
		return err
	}

	for _, rel := range doc.Root.Children(doc.Namespace, "Relationship") {
		target := rel.Attr("Target")
		if target == "" || rel.Attr("TargetMode") == "External" {
			continue
		}
		// Targets are relative to xl/ unless absolute within the package.
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join("xl", target)
		}
		d.rels[rel.Attr("Id")] = target
	}
	return nil
}

// sheetPart returns the part holding the sheet declared at the given 1-based
// position.
func (d *decoder) sheetPart(position int, sheet ooxml.Element) string {
	if d.opts.UseRelationships {
		if target, ok := d.rels[sheet.AttrLocal("id")]; ok && d.pkg.Has(target) {
			return target
		}
	}
	return sheetPartName(position)
}

func (d *decoder) parseWorksheet(ws *Worksheet, doc *ooxml.Document) {
	ns := doc.Namespace
	next := 1

	for _, rowEl := range doc.Root.Select(ns, "sheetData/row") {
		// Rows may omit r, in which case they follow the previous row.
		number := rowEl.AttrInt("r")
		if number == 0 {
			number = next
		}
		next = number + 1
		rowRef := strconv.Itoa(number)

		if number < 1 {
			d.warn(ws, rowRef, WarnRowDropped, "invalid row number")
			continue
		}

		spans := rowEl.Attr("spans")
		first, last, ok := parseSpans(spans)
		infer := !ok && d.opts.InferSpans && !rowEl.HasAttr("spans")
		if !ok && !infer {
			d.warn(ws, rowRef, WarnRowDropped, fmt.Sprintf("spans %q is not first:last", spans))
			continue
		}

		row := newRow(number, first, last)
		if infer {
			row.first, row.last = 0, 0
		}

		col := 0
		for _, cellEl := range rowEl.Children(ns, "c") {
			// Cells may omit r, in which case they follow the previous cell.
			if cellEl.HasAttr("r") {
				col = cellref.Decode(cellEl.Attr("r")).Col
			} else {
				col++
			}
			if col < 1 {
				d.warn(ws, rowRef, WarnCellRef, fmt.Sprintf("cell reference %q has no column", cellEl.Attr("r")))
				continue
			}
			if infer {
				if row.first == 0 || col < row.first {
					row.first = col
				}
				row.last = max(row.last, col)
			}

			if cell := d.parseCell(ws, cellEl, ns, number, col); cell != nil {
				row.put(cell)
			}
		}

		if infer && row.first == 0 {
			d.warn(ws, rowRef, WarnRowDropped, "no spans and no cells")
			continue
		}
		ws.put(row)
	}
}

// parseSpans parses a "first:last" spans attribute.
func parseSpans(spans string) (first, last int, ok bool) {
	parts := strings.Split(spans, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	last, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return first, last, true
}

// parseCell decodes a c element. It returns nil for cells with neither a
// value nor a formula.
func (d *decoder) parseCell(ws *Worksheet, el ooxml.Element, ns string, row, col int) *Cell {
	cell := &Cell{
		pos:      cellref.Position{Row: row, Col: col},
		typeCode: el.Attr("t"),
		style:    el.AttrInt("s"),
	}

	raw := childText(el, ns, "v")
	cell.formula = childText(el, ns, "f")

	value, ok := d.classify(ws, cell, el, ns, raw)
	if !ok && cell.formula == "" {
		return nil
	}
	cell.value = value
	return cell
}

// classify converts a cell's raw text according to its type code. It reports
// false when the cell has no value.
func (d *decoder) classify(ws *Worksheet, cell *Cell, el ooxml.Element, ns, raw string) (Value, bool) {
	switch cell.typeCode {
	case "str": // formula result string
		return Text(raw), true

	case "s": // shared string
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && idx >= 0 && idx < len(d.shared) {
			return Text(d.shared[idx]), true
		}
		if raw != "" {
			d.warn(ws, cell.Ref(), WarnSharedString,
				fmt.Sprintf("index %q outside table of %d", raw, len(d.shared)))
		}
		return Value{}, false

	case "inlineStr":
		is := el.Children(ns, "is")
		if len(is) == 0 {
			return Value{}, false
		}
		return Text(runText(is[0], ns)), true

	case "b":
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		return Bool(err == nil && n != 0), true

	default: // number, or a type this reader does not interpret
		f, err := parseNumber(raw)
		if err != nil {
			if raw != "" && cell.typeCode != "e" {
				d.warn(ws, cell.Ref(), WarnNumber, fmt.Sprintf("%q is not a number", raw))
			}
			return Value{}, false
		}
		return Number(f), true
	}
}

var errNotDecimal = errors.New("not a finite decimal number")

// parseNumber parses a numeric cell value. strconv.ParseFloat also takes
// hexadecimal, NaN and Inf forms, none of which a producer writes.
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if strings.ContainsAny(s, "xXpP_") {
		return 0, errNotDecimal
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotDecimal
	}
	return f, nil
}

// childText returns the text of the first direct child with the given name.
func childText(el ooxml.Element, ns, local string) string {
	children := el.Children(ns, local)
	if len(children) == 0 {
		return ""
	}
	return children[0].Text()
}

func parseXMLBool(s string) bool {
	return s == "1" || s == "true"
}

func (d *decoder) warn(ws *Worksheet, ref string, kind WarningKind, detail string) {
	w := Warning{Sheet: ws.name, Ref: ref, Kind: kind, Detail: detail}
	d.warnings = append(d.warnings, w)

	if d.opts.Logger != nil {
		d.opts.Logger.Debug("xlsx: "+kind.String(),
			slog.String("sheet", w.Sheet),
			slog.String("ref", w.Ref),
			slog.String("detail", w.Detail),
		)
	}
}

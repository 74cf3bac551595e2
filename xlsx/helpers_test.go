package xlsx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const mainNS = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// testSheet is one worksheet of a test workbook. Rows holds the inner XML of
// sheetData.
type testSheet struct {
	name string
	rows string
}

// testBook describes a workbook package to build in memory.
type testBook struct {
	sheets        []testSheet
	sharedStrings []string // raw si inner XML; nil omits the part
	workbookPr    string   // attributes for workbookPr
	skipParts     []string // parts to leave out of the archive
	rels          bool     // write xl/_rels/workbook.xml.rels with reversed targets
}

func (b testBook) build(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	skip := make(map[string]bool)
	for _, p := range b.skipParts {
		skip[p] = true
	}

	write := func(name, content string) {
		if skip[name] {
			return
		}
		writeZipFile(t, zw, name, content)
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
</Types>`)

	var wb strings.Builder
	wb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="` + mainNS + `" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)
	if b.workbookPr != "" {
		wb.WriteString("<workbookPr " + b.workbookPr + "/>")
	}
	wb.WriteString("<sheets>")
	for i, s := range b.sheets {
		fmt.Fprintf(&wb, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, s.name, 10+i, i+1)
	}
	wb.WriteString("</sheets></workbook>")
	write("xl/workbook.xml", wb.String())

	if b.rels {
		// rId1 points at the last sheet part, rId2 at the one before, and so on.
		var rels strings.Builder
		rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
		for i := range b.sheets {
			fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet%d.xml"/>`,
				i+1, len(b.sheets)-i)
		}
		rels.WriteString("</Relationships>")
		write("xl/_rels/workbook.xml.rels", rels.String())
	}

	if b.sharedStrings != nil {
		var ss strings.Builder
		fmt.Fprintf(&ss, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="%s" count="%d" uniqueCount="%d">`, mainNS, len(b.sharedStrings), len(b.sharedStrings))
		for _, si := range b.sharedStrings {
			ss.WriteString("<si>" + si + "</si>")
		}
		ss.WriteString("</sst>")
		write("xl/sharedStrings.xml", ss.String())
	}

	for i, s := range b.sheets {
		write(fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1), `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="`+mainNS+`"><sheetData>`+s.rows+`</sheetData></worksheet>`)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

// open decodes the workbook from memory.
func (b testBook) open(t *testing.T, opts Options) *Workbook {
	t.Helper()

	data := b.build(t)
	wb, err := OpenReader(bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	return wb
}

// file writes the workbook to a temporary .xlsx file and returns its path.
func (b testBook) file(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := os.WriteFile(path, b.build(t), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	return path
}

func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("Failed to create %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// singleSheet is a one-sheet workbook named "Data".
func singleSheet(rows string, shared ...string) testBook {
	return testBook{
		sheets:        []testSheet{{name: "Data", rows: rows}},
		sharedStrings: shared,
	}
}

func sheetOf(t *testing.T, wb *Workbook, index int) *Worksheet {
	t.Helper()
	ws, err := wb.Sheet(index)
	if err != nil {
		t.Fatalf("Sheet(%d) failed: %v", index, err)
	}
	return ws
}

package xlsx

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Text returns the table as delimited text, one line per row. An empty
// delimiter means tab.
func (t *Table) Text(delimiter string) string {
	if delimiter == "" {
		delimiter = "\t"
	}

	var result strings.Builder
	for i := range t.NumRows() {
		if i > 0 {
			result.WriteString("\n")
		}
		for j := range t.NumCols() {
			if j > 0 {
				result.WriteString(delimiter)
			}
			result.WriteString(t.Value(i, j).String())
		}
	}
	return result.String()
}

// Markdown returns the table as a Markdown table headed by the column
// letters.
func (t *Table) Markdown() string {
	if len(t.columns) == 0 {
		return ""
	}

	var result strings.Builder

	// Headers
	result.WriteString("|")
	for _, h := range t.columns {
		result.WriteString(" ")
		result.WriteString(h)
		result.WriteString(" |")
	}
	result.WriteString("\n")

	// Separator
	result.WriteString("|")
	for range t.columns {
		result.WriteString("---|")
	}
	result.WriteString("\n")

	// Rows
	for i := range t.NumRows() {
		result.WriteString("|")
		for j := range t.NumCols() {
			result.WriteString(" ")
			result.WriteString(escapeMarkdown(t.Value(i, j).String()))
			result.WriteString(" |")
		}
		result.WriteString("\n")
	}

	return result.String()
}

// escapeMarkdown escapes special markdown characters in table cells.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// HTML returns the table as an HTML table element. The sheet name is the
// caption, column letters head the columns and row numbers head the rows.
// Each data cell carries its value kind as a class.
func (t *Table) HTML() (string, error) {
	table := newElement(atom.Table)

	if t.title != "" {
		caption := newElement(atom.Caption)
		caption.AppendChild(newText(t.title))
		table.AppendChild(caption)
	}

	thead := newElement(atom.Thead)
	header := newElement(atom.Tr)
	header.AppendChild(newElement(atom.Th))
	for _, col := range t.columns {
		th := newElement(atom.Th)
		th.AppendChild(newText(col))
		header.AppendChild(th)
	}
	thead.AppendChild(header)
	table.AppendChild(thead)

	tbody := newElement(atom.Tbody)
	for i := range t.NumRows() {
		tr := newElement(atom.Tr)
		th := newElement(atom.Th)
		th.AppendChild(newText(strconv.Itoa(t.area.Start.Row + i)))
		tr.AppendChild(th)

		for j := range t.NumCols() {
			v := t.Value(i, j)
			td := newElement(atom.Td)
			if !v.IsEmpty() {
				td.Attr = []html.Attribute{{Key: "class", Val: v.Kind().String()}}
				td.AppendChild(newText(v.String()))
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	var out strings.Builder
	if err := html.Render(&out, table); err != nil {
		return "", err
	}
	return out.String(), nil
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func newText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

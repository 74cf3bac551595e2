package xlsx

import (
	"slices"
	"testing"
)

func TestCell_References(t *testing.T) {
	tests := []struct {
		formula string
		want    []string
	}{
		{"", nil},
		{"A1+B2", []string{"A1", "B2"}},
		{"=SUM($A$1:B5)*2", []string{"A1:B5"}},
		{"A1*A1+$A$1", []string{"A1"}},
		{"Data!C3+VLOOKUP(D4,Lookup!A:B,2,FALSE)", []string{"Data!C3", "D4", "Lookup!A:B"}},
		{`IF(E1>0,"pos","neg")`, []string{"E1"}},
		{"SUM(A1:B2)+$C$3", []string{"A1:B2", "C3"}},
		{"1+2", nil},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			c := &Cell{formula: tt.formula}
			if got := c.References(); !slices.Equal(got, tt.want) {
				t.Errorf("References() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCell_FormulaFromPackage(t *testing.T) {
	rows := `<row r="1" spans="1:2"><c r="A1"><v>2</v></c><c r="B1"><f>A1*2</f><v>4</v></c></row>`
	ws := sheetOf(t, singleSheet(rows).open(t, DefaultOptions()), 0)

	c := ws.Cell(1, 2)
	if f, ok := c.Formula(); !ok || f != "A1*2" {
		t.Errorf("Formula() = %q, %v", f, ok)
	}
	if refs := c.References(); !slices.Equal(refs, []string{"A1"}) {
		t.Errorf("References() = %v, want [A1]", refs)
	}
	if _, ok := ws.Cell(1, 1).Formula(); ok {
		t.Error("A1 should have no formula")
	}
}

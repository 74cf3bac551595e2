package xlsx

import (
	"strings"

	"github.com/xuri/efp"
)

// References returns the range operands of the cell's formula in the order
// they appear, without "$" markers and without duplicates: plain references
// ("B2"), ranges ("A1:B5"), references into other sheets ("Data!C3") and
// defined names. The formula is tokenized, not evaluated.
func (c *Cell) References() []string {
	if c.formula == "" {
		return nil
	}

	ps := efp.ExcelParser()
	var refs []string
	seen := make(map[string]bool)
	for _, token := range ps.Parse(c.formula) {
		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		ref := strings.ReplaceAll(token.TValue, "$", "")
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}

// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package formula

import (
	"strings"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/xuri/efp"
)

// References returns the cell and range operands of a formula, in order of appearance.
// A single cell is returned as a 1×1 range. Operands that are not valid
// references (names, sheet-qualified refs) are skipped.
func References(formula string) []sheetcalc.CellRange {
	if !sheetcalc.IsFormula(formula) {
		return nil
	}
	ps := efp.ExcelParser()
	tokens := ps.Parse(formula)
	var refs []sheetcalc.CellRange
	for _, token := range tokens {
		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		ref := strings.ReplaceAll(token.TValue, "$", "")
		if strings.Contains(ref, "!") {
			continue
		}
		r, err := sheetcalc.ParseRange(ref)
		if err != nil {
			continue
		}
		refs = append(refs, r)
	}
	return refs
}

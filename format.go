// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// The display printer is pinned to en-US so output does not depend on the host locale.
var displayPrinter = message.NewPrinter(language.AmericanEnglish)

// Display returns the string the UI shows for the cell.
// Only numbers are affected by the number-format tag.
func Display(c Cell) string {
	if c.Value.Kind() != KindNumber {
		return c.Value.String()
	}
	v := c.Value.Num()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return c.Value.String()
	}
	switch c.Style.NumberFormat {
	case FormatCurrency:
		s := "$" + displayPrinter.Sprint(number.Decimal(math.Abs(v), number.Scale(2)))
		if v < 0 {
			return "-" + s
		}
		return s
	case FormatPercentage:
		frac := v / 100
		return displayPrinter.Sprint(number.Decimal(frac*100, number.Scale(2))) + "%"
	}
	return c.Value.String()
}

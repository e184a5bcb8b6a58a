// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc

import "errors"

var (
	// ErrMalformedAddress is returned for non-canonical address keys.
	ErrMalformedAddress = errors.New("malformed address")

	ErrUnknownFunction   = errors.New("unknown function")
	ErrCircularReference = errors.New("circular reference")
	ErrInvalidExpression = errors.New("invalid expression")
	ErrDivisionByZero    = errors.New("division by zero")

	// ErrImportFailed and ErrExportFailed wrap every failure at the file boundary.
	ErrImportFailed = errors.New("import failed")
	ErrExportFailed = errors.New("export failed")

	// ErrFilterBounds is returned for a between filter without both bounds.
	ErrFilterBounds = errors.New("between filter needs two bounds")
)

// ErrorText is what a failing formula displays.
const ErrorText = "#ERROR!"

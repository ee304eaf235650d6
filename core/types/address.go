// Package types defines the shared data model for the bonus grid engine.
package types

import "strings"

// CellAddress identifies one scalar workbook value, e.g. "Sheet1!D24".
// It is the sole unit of input and output identity: form state, persisted
// records, and export payloads all key off it, so addresses must stay stable
// across schema versions.
type CellAddress string

// Addr builds a CellAddress from a sheet name and an A1-style cell reference.
func Addr(sheet, cell string) CellAddress {
	return CellAddress(sheet + "!" + cell)
}

// String returns the address as a plain string.
func (a CellAddress) String() string {
	return string(a)
}

// Split returns the sheet and cell components. A bare cell reference with no
// sheet prefix returns an empty sheet.
func (a CellAddress) Split() (sheet, cell string) {
	s := string(a)
	if i := strings.IndexByte(s, '!'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// ValueKind classifies how a cell value is typed, coerced and rounded.
type ValueKind string

const (
	// KindNumber is an item or point count; rounds to whole units.
	KindNumber ValueKind = "number"

	// KindPercent is a fractional rate (0.05 == 5%); rounds to 4 decimals.
	KindPercent ValueKind = "percent"

	// KindCurrency is a dollar amount; rounds to 2 decimals.
	KindCurrency ValueKind = "currency"
)

// Valid reports whether the kind is one of the declared value kinds.
func (k ValueKind) Valid() bool {
	switch k {
	case KindNumber, KindPercent, KindCurrency:
		return true
	}
	return false
}

// Line identifies an insurance product line within the grid tables.
type Line string

const (
	LineAuto       Line = "Auto"
	LineFire       Line = "Fire"
	LineLife       Line = "Life"
	LineHealth     Line = "Health"
	LineCommercial Line = "Commercial"
	LineSpecialty  Line = "Specialty"
)

// Lines returns the product lines in table order.
func Lines() []Line {
	return []Line{LineAuto, LineFire, LineLife, LineHealth, LineCommercial, LineSpecialty}
}

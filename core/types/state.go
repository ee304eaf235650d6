// Package types - Workbook state types
package types

import "github.com/shopspring/decimal"

// WorkbookState is the raw per-session input state: whatever the form (or a
// persisted record) last held for each address. Values may be strings with
// formatting noise, numbers, or missing entirely; the state may be partial or
// stale relative to the current schema.
type WorkbookState map[CellAddress]interface{}

// Clone returns a shallow copy of the raw state.
func (s WorkbookState) Clone() WorkbookState {
	out := make(WorkbookState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// NormalizedState is a total, typed view of the workbook inputs: every
// declared schema address is present, coerced to a decimal and domain-clamped.
// Produced by the normalizer, consumed by the engine; ephemeral per call.
type NormalizedState map[CellAddress]decimal.Decimal

// Get returns the value at an address and whether it is present.
func (s NormalizedState) Get(a CellAddress) (decimal.Decimal, bool) {
	v, ok := s[a]
	return v, ok
}

// ComputedOutputs maps requested addresses to their derived values. Immutable
// for a given input snapshot; a fresh map is returned per compute call.
type ComputedOutputs map[CellAddress]decimal.Decimal

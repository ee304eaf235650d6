// Package api - Request and response envelopes
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/export"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
)

// ComputeRequest asks the engine to derive outputs from raw workbook state.
type ComputeRequest struct {
	// State is the raw workbook state; may be partial
	State types.WorkbookState `json:"state"`

	// Addresses are the requested output addresses. Empty means every
	// cataloged output.
	Addresses []types.CellAddress `json:"addresses,omitempty"`

	// Groups requests named output groups instead of explicit addresses.
	Groups []string `json:"groups,omitempty"`
}

// ComputeResponse returns the derived outputs.
type ComputeResponse struct {
	RequestID     string                              `json:"request_id"`
	Timestamp     time.Time                           `json:"timestamp"`
	SchemaVersion string                              `json:"schema_version"`
	Outputs       map[types.CellAddress]decimal.Decimal `json:"outputs"`
	Payload       *export.Payload                     `json:"payload,omitempty"`
}

// NormalizeRequest asks for the typed, total view of raw state.
type NormalizeRequest struct {
	State types.WorkbookState `json:"state"`
}

// NormalizeResponse returns the normalized state.
type NormalizeResponse struct {
	RequestID     string                `json:"request_id"`
	Timestamp     time.Time             `json:"timestamp"`
	SchemaVersion string                `json:"schema_version"`
	State         types.NormalizedState `json:"state"`
}

// SchemaField is the wire form of one input-field declaration.
type SchemaField struct {
	Address types.CellAddress `json:"address"`
	Section string            `json:"section"`
	Label   string            `json:"label"`
	Type    types.ValueKind   `json:"type"`
	Default decimal.Decimal   `json:"default"`
}

// SchemaResponse returns the input schema.
type SchemaResponse struct {
	Sheet   string        `json:"sheet"`
	Version string        `json:"version"`
	Fields  []SchemaField `json:"fields"`
}

// SaveWorkbookRequest persists raw workbook state for an account.
type SaveWorkbookRequest struct {
	ID        string              `json:"id,omitempty"`
	AccountID string              `json:"account_id"`
	Label     string              `json:"label,omitempty"`
	State     types.WorkbookState `json:"state"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

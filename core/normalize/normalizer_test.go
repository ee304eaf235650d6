package normalize

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.Load()
	if err != nil {
		t.Fatalf("schema.Load() failed: %v", err)
	}
	return reg
}

func TestNormalizeIsTotal(t *testing.T) {
	reg := testRegistry(t)
	n := New(reg)

	state := n.Normalize(types.WorkbookState{})
	if len(state) != reg.Len() {
		t.Fatalf("normalized state has %d entries, want %d", len(state), reg.Len())
	}
	for _, f := range reg.Fields() {
		if _, ok := state[f.Address]; !ok {
			t.Errorf("address %s missing from normalized state", f.Address)
		}
	}

	// Defaults apply when raw input is empty.
	if got := state["Sheet1!D27"]; !got.Equal(decimal.NewFromInt(250)) {
		t.Errorf("D27 = %s, want default 250", got)
	}
	if got := state["Sheet1!C33"]; !got.Equal(decimal.NewFromInt(125)) {
		t.Errorf("C33 = %s, want default 125", got)
	}
}

func TestCoercion(t *testing.T) {
	reg := testRegistry(t)
	n := New(reg)

	tests := []struct {
		name string
		addr types.CellAddress
		raw  interface{}
		want string
	}{
		{"plain number", "Sheet1!C5", float64(120), "120"},
		{"numeric string", "Sheet1!C5", "120", "120"},
		{"padded string", "Sheet1!C5", "  42  ", "42"},
		{"thousands separator", "Sheet1!D15", "18,000", "18000"},
		{"currency symbol", "Sheet1!D15", "$18,000", "18000"},
		{"decimal currency", "Sheet1!D15", "1,200.50", "1200.5"},
		{"percent suffix", "Sheet1!D5", "10%", "0.1"},
		{"bare percentage points", "Sheet1!D5", "5", "0.05"},
		{"bare percentage points numeric", "Sheet1!D5", float64(5), "0.05"},
		{"fractional percent", "Sheet1!D5", "0.05", "0.05"},
		{"percent over cap", "Sheet1!D5", "250%", "1"},
		{"negative count clamps", "Sheet1!C5", "-10", "0"},
		{"negative currency clamps", "Sheet1!D15", float64(-500), "0"},
		{"garbage falls back to default", "Sheet1!D27", "soon", "250"},
		{"blank falls back to default", "Sheet1!D28", "", "1000"},
		{"nil falls back to default", "Sheet1!C32", nil, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := n.Normalize(types.WorkbookState{tt.addr: tt.raw})
			got := state[tt.addr]
			if got.String() != tt.want {
				t.Errorf("%s = %s, want %s", tt.addr, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	reg := testRegistry(t)
	n := New(reg)

	first := n.Normalize(types.WorkbookState{
		"Sheet1!C5":  "120",
		"Sheet1!D5":  "5%",
		"Sheet1!C15": float64(15),
		"Sheet1!D15": "$18,000",
		"Sheet1!C32": 140,
	})

	// Feed the normalized values back through as raw state.
	raw := make(types.WorkbookState, len(first))
	for addr, v := range first {
		raw[addr] = v
	}
	second := n.Normalize(raw)

	if len(second) != len(first) {
		t.Fatalf("second pass has %d entries, want %d", len(second), len(first))
	}
	for addr, want := range first {
		if got := second[addr]; !got.Equal(want) {
			t.Errorf("%s changed on second pass: %s -> %s", addr, want, got)
		}
	}
}

func TestNormalizeIgnoresUndeclaredAddresses(t *testing.T) {
	reg := testRegistry(t)
	n := New(reg)

	state := n.Normalize(types.WorkbookState{
		"Sheet1!Z99": "12345",
	})
	if _, ok := state["Sheet1!Z99"]; ok {
		t.Error("undeclared address leaked into normalized state")
	}
	if len(state) != reg.Len() {
		t.Errorf("normalized state has %d entries, want %d", len(state), reg.Len())
	}
}

package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/catalog"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/normalize"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	apperrors "github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
)

// fixtureRaw is the reference-spreadsheet scenario: Baseline Auto 120 items
// at a 5% loss ratio, New-Business Auto 15 items on $18,000 premium, tier-1
// goal raised to 140 points. Everything else defaults.
func fixtureRaw() types.WorkbookState {
	return types.WorkbookState{
		"Sheet1!C5":  float64(120),
		"Sheet1!D5":  "5",
		"Sheet1!C15": float64(15),
		"Sheet1!D15": "$18,000",
		"Sheet1!C32": float64(140),
	}
}

func newEngine(t *testing.T, opts ...Option) (*Engine, *catalog.Catalog, types.NormalizedState) {
	t.Helper()
	reg, err := schema.Load()
	if err != nil {
		t.Fatalf("schema.Load() failed: %v", err)
	}
	cat := catalog.Default()
	eng, err := New(reg, cat, opts...)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	return eng, cat, normalize.New(reg).Normalize(fixtureRaw())
}

// TestGoldenFixture verifies the engine against literal values captured from
// the source spreadsheet. Exact string equality at each cell's declared
// precision - commission figures do not get float-epsilon comparisons.
func TestGoldenFixture(t *testing.T) {
	eng, cat, state := newEngine(t)

	requested := append(cat.Outputs.All(),
		cat.Baseline[0].Total,
		cat.NewBusiness[0].Total,
		cat.Factors.AvgPointsPerItem,
		cat.Factors.AvgPremiumPerItem,
	)
	out, err := eng.Compute(state, requested)
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	tests := []struct {
		name   string
		addr   types.CellAddress
		places int32
		want   string
	}{
		{"baseline auto total", "Sheet1!E5", 0, "114"},
		{"baseline items total", "Sheet1!C11", 0, "120"},
		{"baseline points total", "Sheet1!E11", 0, "114"},
		{"new business auto total", "Sheet1!E15", 0, "33"},
		{"new business items total", "Sheet1!C21", 0, "15"},
		{"new business premium total", "Sheet1!D21", 2, "18000.00"},
		{"new business points total", "Sheet1!E21", 0, "33"},
		{"growth factor", "Sheet1!D24", 4, "0.2895"},
		{"retention factor", "Sheet1!D25", 4, "0.9500"},
		{"combined factor", "Sheet1!D26", 4, "1.2395"},
		{"avg points per item", "Sheet1!D29", 4, "2.2000"},
		{"avg premium per item", "Sheet1!D30", 2, "1200.00"},
		{"tier 1 points needed", "Sheet1!F32", 0, "107"},
		{"tier 1 items needed", "Sheet1!G32", 0, "49"},
		{"tier 1 bonus dollars", "Sheet1!E32", 2, "2520.00"},
		{"tier 1 daily points", "Sheet1!H32", 2, "0.43"},
		{"tier 1 daily items", "Sheet1!I32", 2, "0.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := out[tt.addr]
			if !ok {
				t.Fatalf("%s missing from outputs", tt.addr)
			}
			if got.StringFixed(tt.places) != tt.want {
				t.Errorf("%s = %s, want %s", tt.addr, got.StringFixed(tt.places), tt.want)
			}
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	eng, cat, state := newEngine(t)

	first, err := eng.Compute(state, cat.Outputs.All())
	if err != nil {
		t.Fatalf("first Compute() failed: %v", err)
	}
	second, err := eng.Compute(state, cat.Outputs.All())
	if err != nil {
		t.Fatalf("second Compute() failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("output sizes differ: %d vs %d", len(first), len(second))
	}
	for addr, want := range first {
		got := second[addr]
		if got.String() != want.String() {
			t.Errorf("%s differs between calls: %s vs %s", addr, want, got)
		}
	}
}

// TestMonotonicTierOrdering checks that with ascending goals, a higher tier
// never requires fewer bonus dollars, points or items than a lower one.
func TestMonotonicTierOrdering(t *testing.T) {
	eng, cat, _ := newEngine(t)

	// Fixture production without the tier-1 goal override, so the seven
	// default goals ascend 100..250.
	reg, err := schema.Load()
	if err != nil {
		t.Fatalf("schema.Load() failed: %v", err)
	}
	raw := fixtureRaw()
	delete(raw, "Sheet1!C32")
	state := normalize.New(reg).Normalize(raw)

	out, err := eng.Compute(state, cat.Outputs.All())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	for i := 1; i < len(cat.Tiers); i++ {
		prev, cur := cat.Tiers[i-1], cat.Tiers[i]
		if out[cur.BonusDollars].LessThan(out[prev.BonusDollars]) {
			t.Errorf("tier %d bonus dollars %s < tier %d bonus dollars %s",
				cur.Number, out[cur.BonusDollars], prev.Number, out[prev.BonusDollars])
		}
		if out[cur.PointsNeeded].LessThan(out[prev.PointsNeeded]) {
			t.Errorf("tier %d points needed %s < tier %d points needed %s",
				cur.Number, out[cur.PointsNeeded], prev.Number, out[prev.PointsNeeded])
		}
		if out[cur.ItemsNeeded].LessThan(out[prev.ItemsNeeded]) {
			t.Errorf("tier %d items needed %s < tier %d items needed %s",
				cur.Number, out[cur.ItemsNeeded], prev.Number, out[prev.ItemsNeeded])
		}
	}
}

// TestUnknownAddressResolvesToZero covers graceful degradation: an address
// absent from the catalog returns 0 without an error and without corrupting
// the other requested outputs.
func TestUnknownAddressResolvesToZero(t *testing.T) {
	eng, cat, state := newEngine(t)

	out, err := eng.Compute(state, []types.CellAddress{
		"Sheet1!Z99",
		cat.Aggregates.BaselinePoints,
	})
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}
	if got := out["Sheet1!Z99"]; !got.IsZero() {
		t.Errorf("unknown address = %s, want 0", got)
	}
	if got := out[cat.Aggregates.BaselinePoints]; got.String() != "114" {
		t.Errorf("baseline points = %s, want 114", got)
	}
}

func TestStrictModeRejectsUnknownAddress(t *testing.T) {
	eng, cat, state := newEngine(t, WithStrict())

	_, err := eng.Compute(state, []types.CellAddress{
		cat.Aggregates.BaselinePoints,
		"Sheet1!Z99",
	})
	if err == nil {
		t.Fatal("strict engine accepted an unknown address")
	}
	if !apperrors.IsType(err, apperrors.TypeAddress) {
		t.Errorf("error type = %v, want UNKNOWN_ADDRESS", err)
	}

	// Known addresses still compute in strict mode.
	out, err := eng.Compute(state, []types.CellAddress{cat.Aggregates.BaselinePoints})
	if err != nil {
		t.Fatalf("strict Compute() on known addresses failed: %v", err)
	}
	if got := out[cat.Aggregates.BaselinePoints]; got.String() != "114" {
		t.Errorf("baseline points = %s, want 114", got)
	}
}

// TestNegativeInputsCannotGoNegative: a negative items count normalizes to
// zero, so no downstream total can dip below zero.
func TestNegativeInputsCannotGoNegative(t *testing.T) {
	reg, err := schema.Load()
	if err != nil {
		t.Fatalf("schema.Load() failed: %v", err)
	}
	cat := catalog.Default()
	eng, err := New(reg, cat)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}

	state := normalize.New(reg).Normalize(types.WorkbookState{
		"Sheet1!C5":  "-120",
		"Sheet1!C15": float64(-15),
		"Sheet1!D15": "-18000",
	})
	out, err := eng.Compute(state, cat.Outputs.All())
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}
	for addr, v := range out {
		if v.Sign() < 0 {
			t.Errorf("%s = %s, negative output from clamped inputs", addr, v)
		}
	}
}

func TestZeroDenominatorsResolveToZero(t *testing.T) {
	reg, err := schema.Load()
	if err != nil {
		t.Fatalf("schema.Load() failed: %v", err)
	}
	cat := catalog.Default()
	eng, err := New(reg, cat)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}

	raw := fixtureRaw()
	raw["Sheet1!D27"] = float64(0) // no business days left
	state := normalize.New(reg).Normalize(raw)

	out, err := eng.Compute(state, []types.CellAddress{
		cat.Tiers[0].DailyPoints,
		cat.Tiers[0].DailyItems,
	})
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}
	if !out[cat.Tiers[0].DailyPoints].IsZero() {
		t.Errorf("daily points = %s, want 0", out[cat.Tiers[0].DailyPoints])
	}
	if !out[cat.Tiers[0].DailyItems].IsZero() {
		t.Errorf("daily items = %s, want 0", out[cat.Tiers[0].DailyItems])
	}
}

func TestRoundingHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(decimal.Decimal) decimal.Decimal
		in   string
		want string
	}{
		{"count half rounds up", RoundCount, "48.5", "49"},
		{"count half rounds up from fixture", RoundCount, "48.6363636363636364", "49"},
		{"currency half cent rounds up", RoundCurrency, "2.005", "2.01"},
		{"currency truncates below half", RoundCurrency, "2.004", "2"},
		{"factor fourth decimal", RoundFactor, "0.28947368", "0.2895"},
		{"pace second decimal", RoundPace, "0.196", "0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(decimal.RequireFromString(tt.in))
			if got.String() != tt.want {
				t.Errorf("%s(%s) = %s, want %s", tt.name, tt.in, got, tt.want)
			}
		})
	}
}

// Package normalize turns raw, possibly-partial workbook state into a total,
// typed state: every declared schema address present, coerced to a decimal
// and domain-clamped. Pure and deterministic; an unparsable raw value is not
// an error, it falls back to the field default. Partially-filled input is the
// steady state of an in-progress form, not an exception.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Normalizer coerces raw workbook state against an input schema.
type Normalizer struct {
	reg *schema.Registry
}

// New creates a normalizer for a schema registry.
func New(reg *schema.Registry) *Normalizer {
	return &Normalizer{reg: reg}
}

// Normalize returns a total NormalizedState: one value per declared schema
// address, regardless of what the raw state holds. Raw addresses outside the
// schema are ignored.
func (n *Normalizer) Normalize(raw types.WorkbookState) types.NormalizedState {
	out := make(types.NormalizedState, n.reg.Len())
	for _, f := range n.reg.Fields() {
		out[f.Address] = normalizeValue(f, raw[f.Address])
	}
	return out
}

func normalizeValue(f *schema.Field, raw interface{}) decimal.Decimal {
	v, explicitPercent, ok := coerce(raw)
	if !ok {
		// CoercionFallback: silently replaced by the field default.
		v = f.Default
		explicitPercent = false
	}
	return clamp(f, v, explicitPercent)
}

// coerce parses a raw value into a decimal. The second result reports an
// explicit "%" suffix on string input.
func coerce(raw interface{}) (decimal.Decimal, bool, bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, false, false
	case decimal.Decimal:
		return v, false, true
	case float64:
		return decimal.NewFromFloat(v), false, true
	case float32:
		return decimal.NewFromFloat32(v), false, true
	case int:
		return decimal.NewFromInt(int64(v)), false, true
	case int64:
		return decimal.NewFromInt(v), false, true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, false, err == nil
	case string:
		return coerceString(v)
	}
	return decimal.Zero, false, false
}

// coerceString accepts thousands separators, currency symbols and a percent
// suffix: "$18,000" -> 18000, "10%" -> 10 with the percent flag set.
func coerceString(s string) (decimal.Decimal, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false, false
	}

	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, false
	}
	return d, percent, true
}

// clamp applies the per-kind domain rules. Counts and currency cannot be
// negative. Percent fields normalize to a fractional decimal: an explicit "%"
// suffix always divides by 100; for capped fields a bare value above 1 is
// treated as percentage points ("5" means 5%), matching how the form is
// filled in. Capped percents clamp to [0,1].
func clamp(f *schema.Field, v decimal.Decimal, explicitPercent bool) decimal.Decimal {
	if f.Kind == types.KindPercent {
		if explicitPercent {
			v = v.Div(hundred)
		} else if !f.Uncapped && v.GreaterThan(one) {
			v = v.Div(hundred)
		}
		if v.Sign() < 0 {
			return decimal.Zero
		}
		if !f.Uncapped && v.GreaterThan(one) {
			return one
		}
		return v
	}

	if v.Sign() < 0 {
		return decimal.Zero
	}
	return v
}

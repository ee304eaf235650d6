// Package export serializes a normalized-state + computed-outputs pair into a
// shareable payload: structured JSON for machine consumers, plain text for
// the clipboard, and a workbook file mirroring the source layout.
package export

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/catalog"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
)

// Payload is the structured export of one computed grid snapshot.
type Payload struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	SchemaVersion string        `json:"schema_version,omitempty"`
	Totals        Totals        `json:"totals"`
	Factors       FactorSummary `json:"factors"`
	Tiers         []TierSummary `json:"tiers"`
}

// Totals carries the section aggregates.
type Totals struct {
	BaselineItems      decimal.Decimal `json:"baseline_items"`
	BaselinePoints     decimal.Decimal `json:"baseline_points"`
	NewBusinessItems   decimal.Decimal `json:"new_business_items"`
	NewBusinessPremium decimal.Decimal `json:"new_business_premium"`
	NewBusinessPoints  decimal.Decimal `json:"new_business_points"`
}

// FactorSummary carries the derived growth-bonus factors.
type FactorSummary struct {
	Growth    decimal.Decimal `json:"growth"`
	Retention decimal.Decimal `json:"retention"`
	Combined  decimal.Decimal `json:"combined"`
}

// TierSummary carries one growth-grid tier row.
type TierSummary struct {
	Tier         int             `json:"tier"`
	Goal         decimal.Decimal `json:"goal"`
	BonusPercent decimal.Decimal `json:"bonus_percent"`
	BonusDollars decimal.Decimal `json:"bonus_dollars"`
	PointsNeeded decimal.Decimal `json:"points_needed"`
	ItemsNeeded  decimal.Decimal `json:"items_needed"`
	DailyPoints  decimal.Decimal `json:"daily_points"`
	DailyItems   decimal.Decimal `json:"daily_items"`
}

// Build assembles a payload from a catalog and the values computed for it.
// Lookup order matches blank-cell semantics: computed output first, then
// normalized input, then zero.
func Build(cat *catalog.Catalog, state types.NormalizedState, outputs types.ComputedOutputs, at time.Time) *Payload {
	get := func(a types.CellAddress) decimal.Decimal {
		if v, ok := outputs[a]; ok {
			return v
		}
		if v, ok := state[a]; ok {
			return v
		}
		return decimal.Zero
	}

	p := &Payload{
		GeneratedAt: at,
		Totals: Totals{
			BaselineItems:      get(cat.Aggregates.BaselineItems),
			BaselinePoints:     get(cat.Aggregates.BaselinePoints),
			NewBusinessItems:   get(cat.Aggregates.NewBusinessItems),
			NewBusinessPremium: get(cat.Aggregates.NewBusinessPremium),
			NewBusinessPoints:  get(cat.Aggregates.NewBusinessPoints),
		},
		Factors: FactorSummary{
			Growth:    get(cat.Factors.Growth),
			Retention: get(cat.Factors.Retention),
			Combined:  get(cat.Factors.Combined),
		},
	}

	for _, t := range cat.Tiers {
		p.Tiers = append(p.Tiers, TierSummary{
			Tier:         t.Number,
			Goal:         get(t.Goal),
			BonusPercent: get(t.BonusPercent),
			BonusDollars: get(t.BonusDollars),
			PointsNeeded: get(t.PointsNeeded),
			ItemsNeeded:  get(t.ItemsNeeded),
			DailyPoints:  get(t.DailyPoints),
			DailyItems:   get(t.DailyItems),
		})
	}
	return p
}

// Package catalog - Output address groups
package catalog

import (
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
)

// Output group names. These are the concepts the UI tiles, tier table and
// export payload request by.
const (
	GroupBonusPercentPreset = "bonus_percent_preset"
	GroupBonusDollars       = "bonus_dollars"
	GroupPointsNeeded       = "points_needed"
	GroupItemsNeeded        = "items_needed"
	GroupDailyPointsNeeded  = "daily_points_needed"
	GroupDailyItemsNeeded   = "daily_items_needed"
	GroupGrowthFactors      = "growth_factors"
	GroupSectionTotals      = "section_totals"
)

// Outputs names the sets of output addresses, one array per output concept,
// tier-ordered where tiered.
type Outputs struct {
	BonusPercentPreset []types.CellAddress
	BonusDollars       []types.CellAddress
	PointsNeeded       []types.CellAddress
	ItemsNeeded        []types.CellAddress
	DailyPointsNeeded  []types.CellAddress
	DailyItemsNeeded   []types.CellAddress
	GrowthFactors      []types.CellAddress
	SectionTotals      []types.CellAddress
}

func buildOutputs(c *Catalog) Outputs {
	var o Outputs
	for _, t := range c.Tiers {
		o.BonusPercentPreset = append(o.BonusPercentPreset, t.BonusPercent)
		o.BonusDollars = append(o.BonusDollars, t.BonusDollars)
		o.PointsNeeded = append(o.PointsNeeded, t.PointsNeeded)
		o.ItemsNeeded = append(o.ItemsNeeded, t.ItemsNeeded)
		o.DailyPointsNeeded = append(o.DailyPointsNeeded, t.DailyPoints)
		o.DailyItemsNeeded = append(o.DailyItemsNeeded, t.DailyItems)
	}
	o.GrowthFactors = []types.CellAddress{
		c.Factors.Growth,
		c.Factors.Retention,
		c.Factors.Combined,
	}
	o.SectionTotals = []types.CellAddress{
		c.Aggregates.BaselineItems,
		c.Aggregates.BaselinePoints,
		c.Aggregates.NewBusinessItems,
		c.Aggregates.NewBusinessPremium,
		c.Aggregates.NewBusinessPoints,
	}
	return o
}

// Group returns the addresses of a named output group, or nil for an unknown
// name.
func (o Outputs) Group(name string) []types.CellAddress {
	switch name {
	case GroupBonusPercentPreset:
		return o.BonusPercentPreset
	case GroupBonusDollars:
		return o.BonusDollars
	case GroupPointsNeeded:
		return o.PointsNeeded
	case GroupItemsNeeded:
		return o.ItemsNeeded
	case GroupDailyPointsNeeded:
		return o.DailyPointsNeeded
	case GroupDailyItemsNeeded:
		return o.DailyItemsNeeded
	case GroupGrowthFactors:
		return o.GrowthFactors
	case GroupSectionTotals:
		return o.SectionTotals
	}
	return nil
}

// GroupNames returns the output group names in a stable order.
func GroupNames() []string {
	return []string{
		GroupBonusPercentPreset,
		GroupBonusDollars,
		GroupPointsNeeded,
		GroupItemsNeeded,
		GroupDailyPointsNeeded,
		GroupDailyItemsNeeded,
		GroupGrowthFactors,
		GroupSectionTotals,
	}
}

// All returns every output address across all groups, in group order.
func (o Outputs) All() []types.CellAddress {
	var all []types.CellAddress
	for _, name := range GroupNames() {
		all = append(all, o.Group(name)...)
	}
	return all
}

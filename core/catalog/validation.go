// Package catalog - Catalog validation
// A catalog referencing an undeclared input address, or claiming a derived
// cell that the schema already declares as an input, cannot safely drive the
// engine. Violations are fatal at load time.
package catalog

import (
	"strconv"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
)

// Validate checks catalog integrity against a schema registry.
func (c *Catalog) Validate(reg *schema.Registry) error {
	seen := make(map[types.CellAddress]string)

	claim := func(a types.CellAddress, role string) error {
		if a == "" {
			return errors.Catalogf("%s: empty address", role)
		}
		if prev, dup := seen[a]; dup {
			return errors.Catalogf("%s: address %s already used by %s", role, a, prev)
		}
		seen[a] = role
		return nil
	}

	input := func(a types.CellAddress, role string) error {
		if err := claim(a, role); err != nil {
			return err
		}
		if !reg.Declared(a) {
			return errors.Catalogf("%s: address %s is not declared in the schema", role, a)
		}
		return nil
	}

	derived := func(a types.CellAddress, role string) error {
		if err := claim(a, role); err != nil {
			return err
		}
		if reg.Declared(a) {
			return errors.Catalogf("%s: derived address %s collides with a schema input", role, a)
		}
		return nil
	}

	for _, row := range c.Baseline {
		role := "baseline/" + string(row.Line)
		if err := input(row.Items, role+"/items"); err != nil {
			return err
		}
		if err := input(row.Loss, role+"/loss"); err != nil {
			return err
		}
		if err := derived(row.Total, role+"/total"); err != nil {
			return err
		}
	}

	for _, row := range c.NewBusiness {
		role := "new_business/" + string(row.Line)
		if err := input(row.Items, role+"/items"); err != nil {
			return err
		}
		if err := input(row.Premium, role+"/premium"); err != nil {
			return err
		}
		if err := derived(row.Total, role+"/total"); err != nil {
			return err
		}
	}

	aggs := []struct {
		addr types.CellAddress
		role string
	}{
		{c.Aggregates.BaselineItems, "aggregates/baseline_items"},
		{c.Aggregates.BaselinePoints, "aggregates/baseline_points"},
		{c.Aggregates.NewBusinessItems, "aggregates/new_business_items"},
		{c.Aggregates.NewBusinessPremium, "aggregates/new_business_premium"},
		{c.Aggregates.NewBusinessPoints, "aggregates/new_business_points"},
		{c.Factors.Growth, "factors/growth"},
		{c.Factors.Retention, "factors/retention"},
		{c.Factors.Combined, "factors/combined"},
		{c.Factors.AvgPointsPerItem, "factors/avg_points_per_item"},
		{c.Factors.AvgPremiumPerItem, "factors/avg_premium_per_item"},
	}
	for _, agg := range aggs {
		if err := derived(agg.addr, agg.role); err != nil {
			return err
		}
	}

	if err := input(c.Factors.BusinessDays, "factors/business_days"); err != nil {
		return err
	}
	if err := input(c.Factors.PremiumDivisor, "factors/premium_divisor"); err != nil {
		return err
	}

	for _, t := range c.Tiers {
		role := "growth_grid/tier_" + strconv.Itoa(t.Number)
		if err := input(t.Goal, role+"/goal"); err != nil {
			return err
		}
		if err := input(t.BonusPercent, role+"/bonus_percent"); err != nil {
			return err
		}
		for _, d := range []struct {
			addr types.CellAddress
			role string
		}{
			{t.BonusDollars, role + "/bonus_dollars"},
			{t.PointsNeeded, role + "/points_needed"},
			{t.ItemsNeeded, role + "/items_needed"},
			{t.DailyPoints, role + "/daily_points"},
			{t.DailyItems, role + "/daily_items"},
		} {
			if err := derived(d.addr, d.role); err != nil {
				return err
			}
		}
	}

	return nil
}

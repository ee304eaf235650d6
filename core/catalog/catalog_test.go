package catalog

import (
	"testing"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	apperrors "github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
)

func TestDefaultCatalogValidates(t *testing.T) {
	reg, err := schema.Load()
	if err != nil {
		t.Fatalf("schema.Load() failed: %v", err)
	}
	if err := Default().Validate(reg); err != nil {
		t.Fatalf("default catalog failed validation: %v", err)
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()

	if len(c.Baseline) != 6 {
		t.Errorf("baseline rows = %d, want 6", len(c.Baseline))
	}
	if len(c.NewBusiness) != 6 {
		t.Errorf("new business rows = %d, want 6", len(c.NewBusiness))
	}
	if len(c.Tiers) != 7 {
		t.Errorf("tiers = %d, want 7", len(c.Tiers))
	}

	if c.Baseline[0].Line != types.LineAuto || c.Baseline[0].Items != "Sheet1!C5" {
		t.Errorf("first baseline row = %+v, want Auto at Sheet1!C5", c.Baseline[0])
	}
	if c.Tiers[6].Goal != "Sheet1!C38" {
		t.Errorf("tier 7 goal = %s, want Sheet1!C38", c.Tiers[6].Goal)
	}
}

func TestOutputGroups(t *testing.T) {
	c := Default()

	for _, name := range []string{
		GroupBonusPercentPreset,
		GroupBonusDollars,
		GroupPointsNeeded,
		GroupItemsNeeded,
		GroupDailyPointsNeeded,
		GroupDailyItemsNeeded,
	} {
		if got := len(c.Outputs.Group(name)); got != 7 {
			t.Errorf("group %s has %d addresses, want 7", name, got)
		}
	}
	if got := len(c.Outputs.Group(GroupGrowthFactors)); got != 3 {
		t.Errorf("growth_factors has %d addresses, want 3", got)
	}
	if got := len(c.Outputs.Group(GroupSectionTotals)); got != 5 {
		t.Errorf("section_totals has %d addresses, want 5", got)
	}
	if c.Outputs.Group("bonus_jackpot") != nil {
		t.Error("unknown group returned addresses")
	}

	// 6 tiered groups of 7, plus factors and totals
	if got := len(c.Outputs.All()); got != 50 {
		t.Errorf("All() returned %d addresses, want 50", got)
	}
}

func TestValidateRejectsUndeclaredInput(t *testing.T) {
	reg, err := schema.Load()
	if err != nil {
		t.Fatalf("schema.Load() failed: %v", err)
	}

	c := Default()
	c.Factors.BusinessDays = types.CellAddress("Sheet1!Z99")
	err = c.Validate(reg)
	if err == nil {
		t.Fatal("catalog with undeclared input passed validation")
	}
	if !apperrors.IsType(err, apperrors.TypeCatalog) {
		t.Errorf("error type = %v, want CATALOG_ERROR", err)
	}
}

func TestValidateRejectsDerivedCollision(t *testing.T) {
	reg, err := schema.Load()
	if err != nil {
		t.Fatalf("schema.Load() failed: %v", err)
	}

	// D28 is a declared input; a derived cell may not claim it.
	c := Default()
	c.Aggregates.BaselinePoints = types.CellAddress("Sheet1!D28")
	if err := c.Validate(reg); err == nil {
		t.Fatal("catalog with input/derived collision passed validation")
	}
}

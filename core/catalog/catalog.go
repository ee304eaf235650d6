// Package catalog - Row and output address catalogs
// Static manifests separating "what formula" from "where it physically lives"
// in the virtual workbook. A layout change edits only these manifests, never
// the engine logic.
package catalog

import (
	"strconv"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
)

// BaselineRow locates one product line in the baseline table: in-force items,
// loss ratio and the derived row total.
type BaselineRow struct {
	Line  types.Line
	Items types.CellAddress
	Loss  types.CellAddress
	Total types.CellAddress
}

// NewBusinessRow locates one product line in the new-business table: items
// written, premium written and the derived row total.
type NewBusinessRow struct {
	Line    types.Line
	Items   types.CellAddress
	Premium types.CellAddress
	Total   types.CellAddress
}

// Tier locates one growth-grid tier row: its editable goal and preset, plus
// every derived cell for the tier.
type Tier struct {
	Number       int
	Goal         types.CellAddress
	BonusPercent types.CellAddress
	BonusDollars types.CellAddress
	PointsNeeded types.CellAddress
	ItemsNeeded  types.CellAddress
	DailyPoints  types.CellAddress
	DailyItems   types.CellAddress
}

// Factors locates the growth-bonus-factor cells: the two factor inputs and
// the derived ratios between the section aggregates.
type Factors struct {
	BusinessDays   types.CellAddress
	PremiumDivisor types.CellAddress

	Growth            types.CellAddress
	Retention         types.CellAddress
	Combined          types.CellAddress
	AvgPointsPerItem  types.CellAddress
	AvgPremiumPerItem types.CellAddress
}

// Aggregates locates the derived section totals.
type Aggregates struct {
	BaselineItems  types.CellAddress
	BaselinePoints types.CellAddress

	NewBusinessItems   types.CellAddress
	NewBusinessPremium types.CellAddress
	NewBusinessPoints  types.CellAddress
}

// Catalog is the full address manifest for one workbook layout.
type Catalog struct {
	Baseline    []BaselineRow
	NewBusiness []NewBusinessRow
	Aggregates  Aggregates
	Factors     Factors
	Tiers       []Tier
	Outputs     Outputs
}

// Default returns the manifest for the current workbook layout: baseline
// rows 5-10, new-business rows 15-20, factor block rows 24-30, growth grid
// rows 32-38, one tier per row.
func Default() *Catalog {
	const sheet = "Sheet1"

	baselineRows := []int{5, 6, 7, 8, 9, 10}
	newBusinessRows := []int{15, 16, 17, 18, 19, 20}
	tierRows := []int{32, 33, 34, 35, 36, 37, 38}

	c := &Catalog{
		Aggregates: Aggregates{
			BaselineItems:      types.Addr(sheet, "C11"),
			BaselinePoints:     types.Addr(sheet, "E11"),
			NewBusinessItems:   types.Addr(sheet, "C21"),
			NewBusinessPremium: types.Addr(sheet, "D21"),
			NewBusinessPoints:  types.Addr(sheet, "E21"),
		},
		Factors: Factors{
			BusinessDays:      types.Addr(sheet, "D27"),
			PremiumDivisor:    types.Addr(sheet, "D28"),
			Growth:            types.Addr(sheet, "D24"),
			Retention:         types.Addr(sheet, "D25"),
			Combined:          types.Addr(sheet, "D26"),
			AvgPointsPerItem:  types.Addr(sheet, "D29"),
			AvgPremiumPerItem: types.Addr(sheet, "D30"),
		},
	}

	for i, line := range types.Lines() {
		br := baselineRows[i]
		c.Baseline = append(c.Baseline, BaselineRow{
			Line:  line,
			Items: cellAt(sheet, "C", br),
			Loss:  cellAt(sheet, "D", br),
			Total: cellAt(sheet, "E", br),
		})

		nr := newBusinessRows[i]
		c.NewBusiness = append(c.NewBusiness, NewBusinessRow{
			Line:    line,
			Items:   cellAt(sheet, "C", nr),
			Premium: cellAt(sheet, "D", nr),
			Total:   cellAt(sheet, "E", nr),
		})
	}

	for i, row := range tierRows {
		c.Tiers = append(c.Tiers, Tier{
			Number:       i + 1,
			Goal:         cellAt(sheet, "C", row),
			BonusPercent: cellAt(sheet, "D", row),
			BonusDollars: cellAt(sheet, "E", row),
			PointsNeeded: cellAt(sheet, "F", row),
			ItemsNeeded:  cellAt(sheet, "G", row),
			DailyPoints:  cellAt(sheet, "H", row),
			DailyItems:   cellAt(sheet, "I", row),
		})
	}

	c.Outputs = buildOutputs(c)
	return c
}

func cellAt(sheet, col string, row int) types.CellAddress {
	return types.Addr(sheet, col+strconv.Itoa(row))
}

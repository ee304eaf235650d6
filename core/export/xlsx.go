// Package export - XLSX rendering
// Writes a workbook mirroring the source layout so an exported grid opens in
// Excel with every input and derived value in its original cell.
package export

import (
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/catalog"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
)

// XLSXFormatter renders a computed grid snapshot as an .xlsx workbook.
// Unlike the text and JSON formatters it needs the full cell maps, not just
// the summarized payload.
type XLSXFormatter struct {
	reg     *schema.Registry
	cat     *catalog.Catalog
	state   types.NormalizedState
	outputs types.ComputedOutputs
}

// NewXLSXFormatter creates an xlsx formatter for one snapshot.
func NewXLSXFormatter(reg *schema.Registry, cat *catalog.Catalog, state types.NormalizedState, outputs types.ComputedOutputs) *XLSXFormatter {
	return &XLSXFormatter{reg: reg, cat: cat, state: state, outputs: outputs}
}

// Format returns the format type
func (f *XLSXFormatter) Format() Format { return FormatXLSX }

// Render writes the workbook to w.
func (f *XLSXFormatter) Render(w io.Writer, p *Payload) error {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := f.reg.Sheet()
	if sheet != "Sheet1" {
		if _, err := wb.NewSheet(sheet); err != nil {
			return errors.Export("creating sheet", err)
		}
	}

	set := func(addr types.CellAddress, v interface{}) error {
		s, cell := addr.Split()
		if s == "" {
			s = sheet
		}
		return wb.SetCellValue(s, cell, v)
	}

	// Section headers and row labels.
	headers := map[string]string{
		"A1":  "Bonus Grid " + p.GeneratedAt.Format("2006-01-02"),
		"A4":  "Baseline",
		"A14": "New Business",
		"A23": "Growth Bonus Factors",
		"A31": "Growth Grid",
	}
	for cell, label := range headers {
		if err := wb.SetCellValue(sheet, cell, label); err != nil {
			return errors.Export("writing header", err)
		}
	}
	for _, row := range f.cat.Baseline {
		_, cell := row.Items.Split()
		if err := wb.SetCellValue(sheet, "A"+cell[1:], string(row.Line)); err != nil {
			return errors.Export("writing row label", err)
		}
	}
	for _, row := range f.cat.NewBusiness {
		_, cell := row.Items.Split()
		if err := wb.SetCellValue(sheet, "A"+cell[1:], string(row.Line)); err != nil {
			return errors.Export("writing row label", err)
		}
	}
	for _, t := range f.cat.Tiers {
		_, cell := t.Goal.Split()
		if err := wb.SetCellValue(sheet, "A"+cell[1:], "Tier "+strconv.Itoa(t.Number)); err != nil {
			return errors.Export("writing tier label", err)
		}
	}

	// Inputs, then derived values over them.
	for _, field := range f.reg.Fields() {
		if v, ok := f.state[field.Address]; ok {
			if err := set(field.Address, cellValue(v)); err != nil {
				return errors.Export("writing input cell", err)
			}
		}
	}
	for addr, v := range f.outputs {
		if err := set(addr, cellValue(v)); err != nil {
			return errors.Export("writing output cell", err)
		}
	}

	if err := wb.Write(w); err != nil {
		return errors.Export("writing workbook", err)
	}
	return nil
}

// cellValue converts a decimal to the numeric representation excelize stores.
// Every engine value is already rounded to its cell precision, so the float
// conversion is lossless in practice.
func cellValue(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

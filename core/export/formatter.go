// Package export - Formatter surface
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

// Format represents an export format type
type Format string

const (
	// FormatText is a human-readable clipboard/paste rendering
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatXLSX is a workbook file mirroring the source layout
	FormatXLSX Format = "xlsx"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the payload to w
	Render(w io.Writer, p *Payload) error
}

// ForFormat returns the formatter for a format name, or false for an unknown
// one. XLSX rendering also needs the raw cell values, so the xlsx formatter
// is constructed separately; see NewXLSXFormatter.
func ForFormat(f Format) (Formatter, bool) {
	switch f {
	case FormatText:
		return &TextFormatter{ShowFactors: true}, true
	case FormatJSON:
		return &JSONFormatter{}, true
	}
	return nil, false
}

// JSONFormatter renders the structured payload as indented JSON.
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes indented JSON
func (f *JSONFormatter) Render(w io.Writer, p *Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// TextFormatter renders a shareable plain-text summary: section totals,
// factors, and the tier table with bonus percent, bonus dollars and daily
// pace per tier.
type TextFormatter struct {
	// ShowFactors includes the growth/retention/combined line.
	ShowFactors bool
}

// Format returns the format type
func (f *TextFormatter) Format() Format { return FormatText }

// Render writes the text summary
func (f *TextFormatter) Render(w io.Writer, p *Payload) error {
	fmt.Fprintf(w, "Bonus Grid %s\n\n", p.GeneratedAt.Format("2006-01-02"))

	fmt.Fprintf(w, "Baseline: %s items, %s points\n",
		p.Totals.BaselineItems, p.Totals.BaselinePoints)
	fmt.Fprintf(w, "New Business: %s items, $%s premium, %s points\n",
		p.Totals.NewBusinessItems, p.Totals.NewBusinessPremium.StringFixed(2), p.Totals.NewBusinessPoints)
	if f.ShowFactors {
		fmt.Fprintf(w, "Growth %s | Retention %s | Combined %s\n",
			pct(p.Factors.Growth), pct(p.Factors.Retention), pct(p.Factors.Combined))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Tier\tGoal\tBonus %\tBonus $\tPoints Needed\tItems Needed\tPts/Day\tItems/Day")
	for _, t := range p.Tiers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t$%s\t%s\t%s\t%s\t%s\n",
			t.Tier,
			t.Goal,
			pct(t.BonusPercent),
			t.BonusDollars.StringFixed(2),
			t.PointsNeeded,
			t.ItemsNeeded,
			t.DailyPoints.StringFixed(2),
			t.DailyItems.StringFixed(2),
		)
	}
	return tw.Flush()
}

// pct renders a fractional decimal as a percentage with two decimals.
func pct(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

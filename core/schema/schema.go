// Package schema is the input schema registry: the static catalog of every
// addressable input field (section, label, type, default). Loaded once at
// process start and immutable afterwards. A duplicate address across field
// declarations is fatal at load time; the form, normalizer and storage layer
// all key off these addresses and cannot safely run against a broken catalog.
package schema

import (
	"github.com/shopspring/decimal"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
)

// Section groups input fields the way the source workbook groups its tables.
type Section string

const (
	SectionBaseline     Section = "baseline"
	SectionNewBusiness  Section = "new_business"
	SectionGrowthFactor Section = "growth_bonus_factors"
	SectionGrowthGrid   Section = "growth_grid"
)

// Valid reports whether the section is one of the declared sections.
func (s Section) Valid() bool {
	switch s {
	case SectionBaseline, SectionNewBusiness, SectionGrowthFactor, SectionGrowthGrid:
		return true
	}
	return false
}

// Field is one input-field declaration.
type Field struct {
	// Sheet and Cell locate the field in the virtual workbook.
	Sheet string
	Cell  string

	// Address is the canonical "<Sheet>!<Cell>" key.
	Address types.CellAddress

	// Section is the workbook table the field belongs to.
	Section Section

	// Label is the human-readable field name.
	Label string

	// Kind drives coercion, clamping and rounding.
	Kind types.ValueKind

	// Default replaces missing or unparsable raw values.
	Default decimal.Decimal

	// Uncapped marks a percent field that may exceed 1 (growth factors).
	// Capped percent fields clamp to [0,1].
	Uncapped bool
}

// Registry is the immutable set of declared input fields.
type Registry struct {
	sheet   string
	version string
	fields  map[types.CellAddress]*Field
	order   []types.CellAddress
}

// Sheet returns the workbook sheet name the schema addresses live on.
func (r *Registry) Sheet() string {
	return r.sheet
}

// Version returns the schema version string.
func (r *Registry) Version() string {
	return r.version
}

// Lookup returns the field declared at an address.
func (r *Registry) Lookup(a types.CellAddress) (*Field, bool) {
	f, ok := r.fields[a]
	return f, ok
}

// Declared reports whether an address has a field declaration.
func (r *Registry) Declared(a types.CellAddress) bool {
	_, ok := r.fields[a]
	return ok
}

// Fields returns all fields in declaration order.
func (r *Registry) Fields() []*Field {
	out := make([]*Field, 0, len(r.order))
	for _, a := range r.order {
		out = append(out, r.fields[a])
	}
	return out
}

// Section returns the fields of one section in declaration order.
func (r *Registry) Section(s Section) []*Field {
	var out []*Field
	for _, a := range r.order {
		if f := r.fields[a]; f.Section == s {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of declared fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

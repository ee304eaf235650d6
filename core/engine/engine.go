// Package engine derives every dependent cell of the bonus grid from a
// normalized input state. The workbook is re-implemented as an explicit,
// statically declared dependency graph of pure derivation functions keyed by
// output address - not a general spreadsheet interpreter; the output space is
// small and known in advance.
//
// Evaluation order falls out of the graph by construction: row totals first,
// then section aggregates, then growth/retention factors, then the seven
// growth-grid tier rows. There are no cycles and no convergence loops, so a
// full pass is safe on every keystroke.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/catalog"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
)

// Engine computes derived cells for one workbook layout. Stateless between
// calls: each Compute is given a full input snapshot and returns a fresh
// output map.
type Engine struct {
	reg      *schema.Registry
	cat      *catalog.Catalog
	formulas map[types.CellAddress]derivation
	strict   bool
}

// derivation computes one derived cell given a resolver for its inputs.
type derivation func(*resolver) decimal.Decimal

// Option configures an Engine.
type Option func(*Engine)

// WithStrict makes Compute return a typed error for requested addresses with
// no formula path instead of silently resolving them to zero. Production
// keeps the silent-zero behavior (an undeclared address reads like a blank
// cell); strict mode exists so tests and tooling catch catalog typos.
func WithStrict() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// New builds an engine for a schema and catalog. The catalog is validated
// against the schema; a violation is fatal, mirroring schema-load semantics.
func New(reg *schema.Registry, cat *catalog.Catalog, opts ...Option) (*Engine, error) {
	if err := cat.Validate(reg); err != nil {
		return nil, err
	}

	e := &Engine{
		reg: reg,
		cat: cat,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.formulas = buildFormulas(cat)
	return e, nil
}

// Catalog returns the address catalog the engine was built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Compute derives exactly the requested addresses from a normalized state.
// Deterministic: identical inputs yield bit-identical outputs. In the default
// mode an unknown address resolves to 0 and never corrupts the other
// requested outputs; in strict mode it is reported as an error instead.
func (e *Engine) Compute(state types.NormalizedState, requested []types.CellAddress) (types.ComputedOutputs, error) {
	if e.strict {
		var unknown []string
		for _, a := range requested {
			if _, ok := e.formulas[a]; ok {
				continue
			}
			if _, ok := state[a]; ok {
				continue
			}
			unknown = append(unknown, string(a))
		}
		if len(unknown) > 0 {
			err := errors.UnknownAddress(unknown[0])
			if len(unknown) > 1 {
				err = err.WithContext("additional", unknown[1:])
			}
			return nil, err
		}
	}

	r := &resolver{
		engine: e,
		state:  state,
		cache:  make(map[types.CellAddress]decimal.Decimal),
	}

	out := make(types.ComputedOutputs, len(requested))
	for _, a := range requested {
		out[a] = r.cell(a)
	}
	return out, nil
}

// resolver memoizes cell values for a single Compute call.
type resolver struct {
	engine *Engine
	state  types.NormalizedState
	cache  map[types.CellAddress]decimal.Decimal
}

// cell resolves an address: derived formula first, then normalized input,
// then zero (blank-cell semantics).
func (r *resolver) cell(a types.CellAddress) decimal.Decimal {
	if v, ok := r.cache[a]; ok {
		return v
	}
	if f, ok := r.engine.formulas[a]; ok {
		v := f(r)
		r.cache[a] = v
		return v
	}
	if v, ok := r.state[a]; ok {
		r.cache[a] = v
		return v
	}
	return decimal.Zero
}

// buildFormulas declares the full derivation graph for a catalog.
func buildFormulas(cat *catalog.Catalog) map[types.CellAddress]derivation {
	f := make(map[types.CellAddress]derivation)

	// Phase 1: row totals.
	for _, row := range cat.Baseline {
		row := row
		f[row.Total] = func(r *resolver) decimal.Decimal {
			// retained in-force points: items * (1 - loss ratio)
			retained := decimal.NewFromInt(1).Sub(r.cell(row.Loss))
			return RoundCount(r.cell(row.Items).Mul(retained))
		}
	}
	for _, row := range cat.NewBusiness {
		row := row
		f[row.Total] = func(r *resolver) decimal.Decimal {
			// one point per item plus one point per divisor dollars of premium
			premiumPoints := safeDiv(r.cell(row.Premium), r.cell(cat.Factors.PremiumDivisor))
			return RoundCount(r.cell(row.Items).Add(premiumPoints))
		}
	}

	// Phase 2: section aggregates, strictly after all row totals.
	f[cat.Aggregates.BaselineItems] = func(r *resolver) decimal.Decimal {
		sum := decimal.Zero
		for _, row := range cat.Baseline {
			sum = sum.Add(r.cell(row.Items))
		}
		return RoundCount(sum)
	}
	f[cat.Aggregates.BaselinePoints] = func(r *resolver) decimal.Decimal {
		sum := decimal.Zero
		for _, row := range cat.Baseline {
			sum = sum.Add(r.cell(row.Total))
		}
		return RoundCount(sum)
	}
	f[cat.Aggregates.NewBusinessItems] = func(r *resolver) decimal.Decimal {
		sum := decimal.Zero
		for _, row := range cat.NewBusiness {
			sum = sum.Add(r.cell(row.Items))
		}
		return RoundCount(sum)
	}
	f[cat.Aggregates.NewBusinessPremium] = func(r *resolver) decimal.Decimal {
		sum := decimal.Zero
		for _, row := range cat.NewBusiness {
			sum = sum.Add(r.cell(row.Premium))
		}
		return RoundCurrency(sum)
	}
	f[cat.Aggregates.NewBusinessPoints] = func(r *resolver) decimal.Decimal {
		sum := decimal.Zero
		for _, row := range cat.NewBusiness {
			sum = sum.Add(r.cell(row.Total))
		}
		return RoundCount(sum)
	}

	// Phase 3: growth, retention and combined factors.
	f[cat.Factors.Growth] = func(r *resolver) decimal.Decimal {
		return RoundFactor(safeDiv(
			r.cell(cat.Aggregates.NewBusinessPoints),
			r.cell(cat.Aggregates.BaselinePoints),
		))
	}
	f[cat.Factors.Retention] = func(r *resolver) decimal.Decimal {
		return RoundFactor(safeDiv(
			r.cell(cat.Aggregates.BaselinePoints),
			r.cell(cat.Aggregates.BaselineItems),
		))
	}
	f[cat.Factors.Combined] = func(r *resolver) decimal.Decimal {
		return RoundFactor(r.cell(cat.Factors.Growth).Add(r.cell(cat.Factors.Retention)))
	}
	f[cat.Factors.AvgPointsPerItem] = func(r *resolver) decimal.Decimal {
		return RoundFactor(safeDiv(
			r.cell(cat.Aggregates.NewBusinessPoints),
			r.cell(cat.Aggregates.NewBusinessItems),
		))
	}
	f[cat.Factors.AvgPremiumPerItem] = func(r *resolver) decimal.Decimal {
		return RoundCurrency(safeDiv(
			r.cell(cat.Aggregates.NewBusinessPremium),
			r.cell(cat.Aggregates.NewBusinessItems),
		))
	}

	// Phase 4: growth-grid tier rows.
	for _, tier := range cat.Tiers {
		tier := tier
		f[tier.PointsNeeded] = func(r *resolver) decimal.Decimal {
			needed := r.cell(tier.Goal).Sub(r.cell(cat.Aggregates.NewBusinessPoints))
			if needed.Sign() < 0 {
				needed = decimal.Zero
			}
			return RoundCount(needed)
		}
		f[tier.ItemsNeeded] = func(r *resolver) decimal.Decimal {
			return RoundCount(safeDiv(
				r.cell(tier.PointsNeeded),
				r.cell(cat.Factors.AvgPointsPerItem),
			))
		}
		f[tier.BonusDollars] = func(r *resolver) decimal.Decimal {
			// projected premium at goal: goal points * avg premium per item
			projected := RoundCurrency(r.cell(tier.Goal).Mul(r.cell(cat.Factors.AvgPremiumPerItem)))
			return RoundCurrency(r.cell(tier.BonusPercent).Mul(projected))
		}
		f[tier.DailyPoints] = func(r *resolver) decimal.Decimal {
			return RoundPace(safeDiv(
				r.cell(tier.PointsNeeded),
				r.cell(cat.Factors.BusinessDays),
			))
		}
		f[tier.DailyItems] = func(r *resolver) decimal.Decimal {
			return RoundPace(safeDiv(
				r.cell(tier.ItemsNeeded),
				r.cell(cat.Factors.BusinessDays),
			))
		}
	}

	return f
}

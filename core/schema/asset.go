// Package schema - HCL schema asset loading
package schema

import (
	_ "embed"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
)

//go:embed fields.hcl
var defaultAsset []byte

// fileSchema mirrors the HCL asset layout for gohcl decoding.
type fileSchema struct {
	Sheet    string         `hcl:"sheet"`
	Version  string         `hcl:"version,optional"`
	Sections []sectionBlock `hcl:"section,block"`
}

type sectionBlock struct {
	Name   string       `hcl:"name,label"`
	Fields []fieldBlock `hcl:"field,block"`
}

type fieldBlock struct {
	Sheet    string  `hcl:"sheet,optional"`
	Cell     string  `hcl:"cell"`
	Label    string  `hcl:"label"`
	Type     string  `hcl:"type"`
	Default  float64 `hcl:"default,optional"`
	Uncapped bool    `hcl:"uncapped,optional"`
}

// Parse builds a Registry from an HCL schema asset. Any schema violation
// (unparsable asset, unknown section or type, duplicate address) is an error;
// callers treat it as fatal at boot.
func Parse(src []byte, filename string) (*Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeSchema, "parsing schema asset", diags)
	}

	var fs fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &fs); diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeSchema, "decoding schema asset", diags)
	}
	if fs.Sheet == "" {
		return nil, errors.Schemaf("%s: sheet name is required", filename)
	}

	reg := &Registry{
		sheet:   fs.Sheet,
		version: fs.Version,
		fields:  make(map[types.CellAddress]*Field),
	}

	for _, sec := range fs.Sections {
		section := Section(sec.Name)
		if !section.Valid() {
			return nil, errors.Schemaf("%s: unknown section %q", filename, sec.Name)
		}
		for _, fb := range sec.Fields {
			kind := types.ValueKind(fb.Type)
			if !kind.Valid() {
				return nil, errors.Schemaf("%s: field %s: unknown type %q", filename, fb.Cell, fb.Type)
			}
			sheet := fb.Sheet
			if sheet == "" {
				sheet = fs.Sheet
			}
			f := &Field{
				Sheet:    sheet,
				Cell:     fb.Cell,
				Address:  types.Addr(sheet, fb.Cell),
				Section:  section,
				Label:    fb.Label,
				Kind:     kind,
				Default:  decimal.NewFromFloat(fb.Default),
				Uncapped: fb.Uncapped,
			}
			if _, exists := reg.fields[f.Address]; exists {
				return nil, errors.Schemaf("%s: duplicate address %s", filename, f.Address)
			}
			reg.fields[f.Address] = f
			reg.order = append(reg.order, f.Address)
		}
	}
	return reg, nil
}

// Load parses the embedded default schema asset.
func Load() (*Registry, error) {
	return Parse(defaultAsset, "fields.hcl")
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the process-wide registry for the embedded asset. It panics
// on a broken asset: a form cannot render against an unknown schema.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultReg
}

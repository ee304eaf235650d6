// Package cmd - compute command
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/catalog"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/engine"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/export"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/normalize"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/config"
)

var computeFormat string

var computeCmd = &cobra.Command{
	Use:   "compute [state.json]",
	Short: "Compute the bonus grid from raw workbook state",
	Long: `Reads raw workbook state (address-to-value JSON, "-" for stdin),
normalizes it against the input schema, derives every cataloged output and
prints the result. With no argument an all-defaults grid is computed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := loadState(args)
		if err != nil {
			return err
		}

		reg, cat, eng, err := buildEngine()
		if err != nil {
			return err
		}

		state := normalize.New(reg).Normalize(raw)
		outputs, err := eng.Compute(state, cat.Outputs.All())
		if err != nil {
			return err
		}

		payload := export.Build(cat, state, outputs, time.Now().UTC())
		formatter, err := textOrJSONFormatter(computeFormat)
		if err != nil {
			return err
		}
		return formatter.Render(os.Stdout, payload)
	},
}

func init() {
	computeCmd.Flags().StringVarP(&computeFormat, "format", "f", "", "output format (text, json; default from config)")
}

// textOrJSONFormatter resolves a format name against the configured default
// and output settings.
func textOrJSONFormatter(name string) (export.Formatter, error) {
	cfg := config.Get()
	if name == "" {
		name = cfg.Output.DefaultFormat
	}
	switch export.Format(name) {
	case export.FormatText, "":
		return &export.TextFormatter{ShowFactors: cfg.Output.ShowFactors}, nil
	case export.FormatJSON:
		return &export.JSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown format: %s (want text or json)", name)
}

// loadState reads raw workbook state from a file argument, stdin, or returns
// an empty state when no argument is given.
func loadState(args []string) (types.WorkbookState, error) {
	if len(args) == 0 {
		return types.WorkbookState{}, nil
	}

	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var state types.WorkbookState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	return state, nil
}

// buildEngine assembles the schema, catalog and engine from the active
// configuration.
func buildEngine() (*schema.Registry, *catalog.Catalog, *engine.Engine, error) {
	reg, err := schema.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	cat := catalog.Default()

	var opts []engine.Option
	if config.Get().Engine.Strict {
		opts = append(opts, engine.WithStrict())
	}
	eng, err := engine.New(reg, cat, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return reg, cat, eng, nil
}

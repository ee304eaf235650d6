// Package cmd - export command
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/export"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/normalize"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/config"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [state.json]",
	Short: "Export a computed grid as text, JSON or an xlsx workbook",
	Args:  cobra.MaximumNArgs(1),
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

		name := exportFormat
		if name == "" {
			name = config.Get().Output.DefaultFormat
		}
		var formatter export.Formatter
		if export.Format(name) == export.FormatXLSX {
			formatter = export.NewXLSXFormatter(reg, cat, state, outputs)
		} else {
			formatter, err = textOrJSONFormatter(name)
			if err != nil {
				return fmt.Errorf("unknown format: %s (want text, json or xlsx)", name)
			}
		}

		w := os.Stdout
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return formatter.Render(w, payload)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "export format (text, json, xlsx; default from config)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

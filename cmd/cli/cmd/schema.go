// Package cmd - schema command
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the input field schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := schema.Load()
		if err != nil {
			return err
		}

		fmt.Printf("Schema %s (sheet %s, %d fields)\n\n", reg.Version(), reg.Sheet(), reg.Len())

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ADDRESS\tSECTION\tLABEL\tTYPE\tDEFAULT")
		for _, f := range reg.Fields() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				f.Address, f.Section, f.Label, f.Kind, f.Default)
		}
		return tw.Flush()
	},
}

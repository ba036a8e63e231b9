package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/sitegen-cli/internal/flow"
	"github.com/sells-group/sitegen-cli/internal/industry"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the question catalog and configured industries",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := flow.LoadCatalog()
		if err != nil {
			return eris.Wrap(err, "load question catalog")
		}
		table, err := industry.Load()
		if err != nil {
			return eris.Wrap(err, "load industry table")
		}

		fmt.Printf("questions (%d):\n", catalog.Len())
		for _, q := range catalog.Plannable() {
			fmt.Printf("  p%d %-24s %s\n", q.Priority, q.ID, q.Text)
		}

		fmt.Printf("\nindustries: ")
		for i, key := range table.Keys() {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(key)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

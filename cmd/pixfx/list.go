package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func newListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available effects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, reg, err := root.load()
			if err != nil {
				return err
			}

			title := cases.Title(language.English)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EFFECT\tUSAGE\tDESCRIPTION")
			for _, s := range reg.Specs() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", title.String(s.Name), s.Usage(), s.Summary)
			}
			return w.Flush()
		},
	}
}

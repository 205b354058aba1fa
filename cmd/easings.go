package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matt-g-everett/ledtween/tween"
)

var easingSamples = []float64{0, 0.25, 0.5, 0.75, 1}

var easingsCmd = &cobra.Command{
	Use:   "easings",
	Short: "List easing styles and directions with sampled values",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-12s %-6s", "STYLE", "DIR")
		for _, t := range easingSamples {
			fmt.Fprintf(out, " %8.2f", t)
		}
		fmt.Fprintln(out)

		for _, style := range tween.Styles() {
			for _, dir := range tween.Directions() {
				f, err := tween.Lookup(style, dir)
				if err != nil {
					return err
				}
				var b strings.Builder
				fmt.Fprintf(&b, "%-12s %-6s", style, dir)
				for _, t := range easingSamples {
					fmt.Fprintf(&b, " %8.4f", f(t))
				}
				fmt.Fprintln(out, b.String())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(easingsCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matt-g-everett/ledtween/scene"
	"github.com/matt-g-everett/ledtween/tween"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a scene file loads and builds",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("scene")
		sc, err := scene.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load scene: %w", err)
		}

		// Nothing is played, so frames are never delivered.
		sched := tween.NewScheduler(tween.NewSystemClock(), &tween.ManualFrames{})
		st, err := scene.Build(sc, sched)
		if err != nil {
			return fmt.Errorf("invalid scene: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d fixtures, %d tweens\n", path, len(st.Fixtures()), len(st.Entries()))
		return nil
	},
}

func init() {
	validateCmd.Flags().String("scene", "", "scene file (.yaml or .toml)")
	_ = validateCmd.MarkFlagRequired("scene")
	rootCmd.AddCommand(validateCmd)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/slotcast/slotcast/internal/playground"
)

var playSlots int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive playground",
	Long: "Open a terminal playground with one emitter over a fresh world.\n" +
		"Type help inside for the command list.",
	RunE: func(cmd *cobra.Command, args []string) error {
		slots := cfg.Slots()
		if cmd.Flags().Changed("slots") {
			slots = playSlots
		}
		return playground.Run(slots, cfg.History())
	},
}

func init() {
	playCmd.Flags().IntVar(&playSlots, "slots", 0, "number of slots (overrides config)")
	rootCmd.AddCommand(playCmd)
}

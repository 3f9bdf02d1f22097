package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/slotcast/slotcast/internal/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.toml> [more...]",
	Short: "Replay scenario files",
	Long: "Replay one or more TOML scenario files against a fresh dispatcher.\n" +
		"Each delivery prints as entity.callback; a scenario with an expect\n" +
		"block fails when the deliveries differ.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			sc, err := scenario.Load(path)
			if err != nil {
				return err
			}

			fmt.Printf("📡 %s\n", sc.Name)
			report, err := scenario.Run(sc, os.Stdout, slog.Default())
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Printf("📡 %s: %d deliveries\n", sc.Name, len(report.Deliveries))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

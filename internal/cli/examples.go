package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slotcast/slotcast/internal/examples"
)

var examplesCmd = &cobra.Command{
	Use:   "examples [dir]",
	Short: "Install the bundled examples",
	Long: "Write the bundled scenario and Lua examples into a directory\n" +
		"(default ./slotcast-examples) for editing and replay.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "slotcast-examples"
		if len(args) == 1 {
			dir = args[0]
		}

		if err := examples.Install(dir); err != nil {
			return err
		}

		names, err := examples.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Printf("📡 installed %s/%s\n", dir, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}

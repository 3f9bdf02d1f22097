package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/slotcast/slotcast/internal/luahost"
)

var luaCmd = &cobra.Command{
	Use:   "lua <script.lua>",
	Short: "Run a Lua script against the dispatcher",
	Long: "Run a Lua script with the slotcast module in scope. Scripts spawn\n" +
		"actors, build emitters, and broadcast slots; see the shipped examples\n" +
		"for the API.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h := luahost.New(slog.Default())
		defer h.Close()

		return h.RunFile(args[0])
	},
}

func init() {
	rootCmd.AddCommand(luaCmd)
}

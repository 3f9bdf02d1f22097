package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slotcast/slotcast/internal/config"
	"github.com/slotcast/slotcast/internal/logging"
	"github.com/slotcast/slotcast/internal/paths"
)

// slotcastDir is the global --slotcast-dir flag value.
var slotcastDir string

// verbose mirrors the log to stderr.
var verbose bool

// cfg is the loaded configuration. A missing config file leaves it nil;
// the nil-safe getters return defaults.
var cfg *config.Config

// cleanupLogging closes the log file, set during PersistentPreRunE.
var cleanupLogging func()

var rootCmd = &cobra.Command{
	Use:   "slotcast",
	Short: "Per-object broadcast dispatcher",
	Long: "slotcast routes named callbacks through numbered slots. It replays scenario\n" +
		"files, scripts the dispatcher from Lua, and opens an interactive playground.",
	SilenceUsage: true,
	// main prints the error once
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set SLOTCAST_DIR environment variable if --slotcast-dir is
		// provided. This allows all path helpers to use the override.
		if slotcastDir != "" {
			if err := os.Setenv(paths.EnvDir, slotcastDir); err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := logging.ParseLevel(cfg.LogLevel())

		var cleanup func()
		if verbose {
			cleanup, err = logging.SetupMulti(cfg.LogPath(), os.Stderr, level)
		} else {
			cleanup, err = logging.Setup(cfg.LogPath(), level)
		}
		if err != nil {
			// Commands still work without a log file
			fmt.Fprintf(os.Stderr, "📡 logging disabled: %v\n", err)
			return nil
		}
		cleanupLogging = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cleanupLogging != nil {
			cleanupLogging()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&slotcastDir, "slotcast-dir", "", "base directory for slotcast data (overrides ~/.slotcast)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "mirror the log to stderr")
}

func Execute() error {
	return rootCmd.Execute()
}

// Command slotcast is the command line interface for the dispatcher:
// scenario replay, Lua scripting, and the interactive playground.
package main

import (
	"fmt"
	"os"

	"github.com/slotcast/slotcast/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "📡 Error: %v\n", err)
		os.Exit(1)
	}
}

// Command docsite renders the Markdown files under docs/ into a static
// HTML site.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/slotcast/slotcast/internal/docsite"
)

func main() {
	sourceDir := flag.String("source", "docs", "Directory of Markdown sources")
	outputDir := flag.String("out", "site", "Directory for the generated site")
	templateFile := flag.String("template", "", "HTML template file (default: built-in template)")
	flag.Parse()

	gen, err := docsite.NewGenerator(*sourceDir, *outputDir, *templateFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "📡 Error: %v\n", err)
		os.Exit(1)
	}
	if err := gen.Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "📡 Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("📡 Rendered %s into %s\n", *sourceDir, *outputDir)
}

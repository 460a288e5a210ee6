package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "serve":
		return runServe(args[1:])
	case "health":
		return runHealth(args[1:])
	case "lookup":
		return runLookup(args[1:])
	case "search":
		return runSearch(args[1:])
	case "votd":
		return runVerseOfTheDay(args[1:])
	case "translations":
		return runTranslations(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "manna CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  manna <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  serve         Start the scripture API server")
	fmt.Fprintln(os.Stderr, "  health        Check configuration and cache backend connectivity")
	fmt.Fprintln(os.Stderr, "  lookup        Resolve a scripture reference through the fallback chain")
	fmt.Fprintln(os.Stderr, "  search        Search verses by keyword or reference")
	fmt.Fprintln(os.Stderr, "  votd          Print the verse of the day")
	fmt.Fprintln(os.Stderr, "  translations  List translations available for a locale")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"manna <command> -h\" for command-specific flags.")
}

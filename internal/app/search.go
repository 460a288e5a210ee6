package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/manna/internal/cli"
	"horse.fit/manna/internal/search"
)

func runSearch(args []string) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	query := fs.String("query", "", "Keyword or reference to search for")
	filter := fs.String("filter", "", "Narrow results: ot, nt or a book name")
	translation := fs.String("translation", "", "Translation identifier or abbreviation")
	lang := fs.String("lang", "en", "Locale for translation resolution")
	limit := fs.Int("limit", search.DefaultLimit, "Maximum verses to return")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	format := fs.String("format", outputFormatText, "Output format: text or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	trimmedQuery := strings.TrimSpace(*query)
	if trimmedQuery == "" {
		fmt.Fprintln(os.Stderr, "--query is required")
		return 2
	}
	if *limit <= 0 {
		fmt.Fprintln(os.Stderr, "--limit must be > 0")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	svc, err := buildServices(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to wire services: %v\n", err)
		return 1
	}
	defer svc.cleanup()

	result, err := svc.search.Search(ctx, trimmedQuery, *translation, *lang, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to search: %v\n", err)
		return 1
	}
	filtered := search.Filter(result, strings.TrimSpace(strings.ToLower(*filter)))

	if outputFormat == outputFormatJSON {
		if err := printJSON(filtered); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Printf("%d of %d verses (OT %d / NT %d)\n\n",
		len(filtered.Results), filtered.TotalCount, filtered.OTCount, filtered.NTCount)
	for _, hit := range filtered.Results {
		fmt.Printf("%s  %s\n", hit.Reference, hit.Text)
	}
	return 0
}

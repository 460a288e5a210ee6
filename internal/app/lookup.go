package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/manna/internal/bible"
	"horse.fit/manna/internal/cli"
)

func runLookup(args []string) int {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	reference := fs.String("ref", "", "Scripture reference, e.g. \"John 3:16-18\" or \"Psalms 23\"")
	translation := fs.String("translation", "", "Translation identifier or abbreviation")
	lang := fs.String("lang", "en", "Locale for translation resolution")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	format := fs.String("format", outputFormatText, "Output format: text or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	trimmedRef := strings.TrimSpace(*reference)
	if trimmedRef == "" {
		fmt.Fprintln(os.Stderr, "--ref is required")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	ref, err := bible.ParseReference(trimmedRef)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid reference: %v\n", err)
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

	chapter, err := svc.resolver.ResolveVerses(ctx, ref, *translation, *lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve %s: %v\n", ref.String(), err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(chapter); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Printf("%s (%s, %s)\n\n", ref.String(), chapter.Translation, chapter.Source)
	for _, verse := range chapter.Verses {
		fmt.Printf("%d  %s\n", verse.Number, verse.Text)
	}
	return 0
}

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/manna/internal/cli"
)

func runVerseOfTheDay(args []string) int {
	fs := flag.NewFlagSet("votd", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
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

	chapter, reference, err := svc.search.VerseOfTheDay(ctx, *translation, *lang, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load verse of the day: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(map[string]any{
			"reference": reference,
			"verses":    chapter.Verses,
			"source":    chapter.Source,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Printf("%s (%s)\n\n", reference, chapter.Translation)
	for _, verse := range chapter.Verses {
		fmt.Printf("%d  %s\n", verse.Number, verse.Text)
	}
	return 0
}

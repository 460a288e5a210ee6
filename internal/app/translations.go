package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"horse.fit/manna/internal/catalog"
)

func runTranslations(args []string) int {
	fs := flag.NewFlagSet("translations", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	lang := fs.String("lang", "", "Locale to list (default: all supported locales)")
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

	locales := catalog.SupportedLocales()
	if trimmed := strings.TrimSpace(*lang); trimmed != "" {
		locales = []string{trimmed}
	}

	byLocale := make(map[string][]catalog.Descriptor, len(locales))
	for _, locale := range locales {
		byLocale[locale] = catalog.ForLocale(locale)
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(byLocale); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "LOCALE\tID\tABBREV\tNAME\tSOURCE")
	for _, locale := range locales {
		for _, descriptor := range byLocale[locale] {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
				locale, descriptor.Code, descriptor.Abbreviation, descriptor.Name, descriptor.Namespace)
		}
	}
	if err := writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render table: %v\n", err)
		return 1
	}
	return 0
}

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
)

// runHealth verifies the configuration loads and the configured cache
// backend is reachable, and reports which credentials are present.
func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Second, "Command timeout")
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

	cacheStatus := "ok"
	_, cleanup, cacheErr := buildCache(ctx, cfg, logger)
	if cacheErr != nil {
		cacheStatus = cacheErr.Error()
	} else {
		cleanup()
	}

	report := map[string]any{
		"cache_backend": strings.ToLower(strings.TrimSpace(cfg.CacheBackend)),
		"cache_status":  cacheStatus,
		"api_bible_key": cfg.APIBibleKey != "",
		"chat_providers": map[string]bool{
			"groq":      cfg.GroqAPIKey != "",
			"openai":    cfg.OpenAIAPIKey != "",
			"anthropic": cfg.AnthropicAPIKey != "",
		},
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(report); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
	} else {
		fmt.Printf("cache backend:  %s (%s)\n", report["cache_backend"], cacheStatus)
		fmt.Printf("api.bible key:  %v\n", report["api_bible_key"])
		providers := report["chat_providers"].(map[string]bool)
		fmt.Printf("chat providers: groq=%v openai=%v anthropic=%v\n",
			providers["groq"], providers["openai"], providers["anthropic"])
	}

	if cacheErr != nil {
		return 1
	}
	return 0
}

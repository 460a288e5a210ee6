// Package langdetect infers the locale of free-form text, used when a
// chat request arrives without an explicit language.
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// supported restricts detection to the locales the service serves.
// Narrowing the candidate set keeps short devotional questions from
// drifting into lookalike languages.
var supported = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.German,
	lingua.French,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Chinese,
}

// DetectLocale returns the ISO 639-1 code of the text, or "" when the
// sample is too short or detection is inconclusive.
func DetectLocale(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < 6 {
		return ""
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(supported...).
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}

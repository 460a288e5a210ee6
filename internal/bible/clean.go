package bible

import (
	"regexp"
	"strings"
)

var (
	strongsPattern    = regexp.MustCompile(`(?i)<S>\d+</S>`)
	breakPattern      = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	bracketNumPattern = regexp.MustCompile(`\[\d+\]`)
	parenNumPattern   = regexp.MustCompile(`\(\d+\)`)
	leadingNumPattern = regexp.MustCompile(`^\d+\s*`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanVerseText normalizes raw provider verse text into plain prose.
// Strong's spans are removed before generic tag stripping; stripping tags
// first would leave the concordance digits behind as verse text.
func CleanVerseText(raw string) string {
	text := strongsPattern.ReplaceAllString(raw, "")
	text = breakPattern.ReplaceAllString(text, " ")
	text = tagPattern.ReplaceAllString(text, "")
	text = bracketNumPattern.ReplaceAllString(text, "")
	text = parenNumPattern.ReplaceAllString(text, "")
	text = leadingNumPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

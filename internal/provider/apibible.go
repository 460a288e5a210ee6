package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"horse.fit/manna/internal/bible"
)

// DefaultAPIBibleBaseURL is the scripture.api.bible REST endpoint.
const DefaultAPIBibleBaseURL = "https://rest.api.bible/v1"

// usfmBookCodes maps canonical book names to the USFM identifiers that
// API.Bible uses in chapter and verse IDs.
var usfmBookCodes = map[string]string{
	"Genesis": "GEN", "Exodus": "EXO", "Leviticus": "LEV", "Numbers": "NUM",
	"Deuteronomy": "DEU", "Joshua": "JOS", "Judges": "JDG", "Ruth": "RUT",
	"1 Samuel": "1SA", "2 Samuel": "2SA", "1 Kings": "1KI", "2 Kings": "2KI",
	"1 Chronicles": "1CH", "2 Chronicles": "2CH", "Ezra": "EZR", "Nehemiah": "NEH",
	"Esther": "EST", "Job": "JOB", "Psalms": "PSA", "Proverbs": "PRO",
	"Ecclesiastes": "ECC", "Song of Solomon": "SNG", "Isaiah": "ISA",
	"Jeremiah": "JER", "Lamentations": "LAM", "Ezekiel": "EZK", "Daniel": "DAN",
	"Hosea": "HOS", "Joel": "JOL", "Amos": "AMO", "Obadiah": "OBA",
	"Jonah": "JON", "Micah": "MIC", "Nahum": "NAM", "Habakkuk": "HAB",
	"Zephaniah": "ZEP", "Haggai": "HAG", "Zechariah": "ZEC", "Malachi": "MAL",
	"Matthew": "MAT", "Mark": "MRK", "Luke": "LUK", "John": "JHN",
	"Acts": "ACT", "Romans": "ROM", "1 Corinthians": "1CO", "2 Corinthians": "2CO",
	"Galatians": "GAL", "Ephesians": "EPH", "Philippians": "PHP", "Colossians": "COL",
	"1 Thessalonians": "1TH", "2 Thessalonians": "2TH", "1 Timothy": "1TI",
	"2 Timothy": "2TI", "Titus": "TIT", "Philemon": "PHM", "Hebrews": "HEB",
	"James": "JAS", "1 Peter": "1PE", "2 Peter": "2PE", "1 John": "1JN",
	"2 John": "2JN", "3 John": "3JN", "Jude": "JUD", "Revelation": "REV",
}

// APIBible fetches chapters from scripture.api.bible. It is the only
// adapter that needs a credential, sent as the api-key request header.
type APIBible struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewAPIBible(baseURL, apiKey string) *APIBible {
	if baseURL == "" {
		baseURL = DefaultAPIBibleBaseURL
	}
	return &APIBible{baseURL: baseURL, apiKey: apiKey, client: newHTTPClient()}
}

func (a *APIBible) Name() string {
	return "api-bible"
}

// Configured reports whether an API key is present.
func (a *APIBible) Configured() bool {
	return strings.TrimSpace(a.apiKey) != ""
}

// FetchChapter retrieves one chapter as flat text with bracketed verse
// markers and parses the markers back out. The code is an API.Bible
// bible ID such as "06125adad2d5898a-01".
func (a *APIBible) FetchChapter(ctx context.Context, ref bible.Reference, code string) (*bible.Chapter, error) {
	if !a.Configured() {
		return nil, ErrMissingCredential
	}
	usfm, ok := usfmBookCodes[ref.Book]
	if !ok {
		return nil, fmt.Errorf("api-bible: unknown book %q", ref.Book)
	}

	endpoint := fmt.Sprintf(
		"%s/bibles/%s/chapters/%s.%d?content-type=text&include-notes=false&include-titles=false&include-chapter-numbers=false&include-verse-numbers=true",
		a.baseURL, code, usfm, ref.Chapter,
	)
	body, err := fetchBody(ctx, a.client, a.Name(), endpoint, map[string]string{"api-key": a.apiKey})
	if err != nil {
		return nil, err
	}

	content := gjson.GetBytes(body, "data.content").String()
	verses := parseBracketedVerses(content)
	if len(verses) == 0 {
		return nil, ErrEmptyChapter
	}

	return &bible.Chapter{
		Book:            ref.Book,
		Chapter:         ref.Chapter,
		Translation:     code,
		TranslationName: code,
		Verses:          verses,
		Source:          "api-bible",
	}, nil
}

// SearchResult is one verse hit from the API.Bible search endpoint.
type SearchResult struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// Search queries the API.Bible full-text search endpoint for a bible ID.
func (a *APIBible) Search(ctx context.Context, code, query string, limit int) ([]SearchResult, error) {
	if !a.Configured() {
		return nil, ErrMissingCredential
	}
	if limit <= 0 {
		limit = 20
	}

	endpoint := fmt.Sprintf("%s/bibles/%s/search?query=%s&limit=%d",
		a.baseURL, code, url.QueryEscape(query), limit)
	body, err := fetchBody(ctx, a.client, a.Name(), endpoint, map[string]string{"api-key": a.apiKey})
	if err != nil {
		return nil, err
	}

	entries := gjson.GetBytes(body, "data.verses").Array()
	results := make([]SearchResult, 0, len(entries))
	for _, entry := range entries {
		text := bible.CleanVerseText(entry.Get("text").String())
		if text == "" {
			continue
		}
		results = append(results, SearchResult{
			Reference: entry.Get("reference").String(),
			Text:      text,
		})
	}
	return results, nil
}

var bracketedVersePattern = regexp.MustCompile(`\[(\d+)\]\s*([^\[\]]+)`)

// parseBracketedVerses splits "[1] In the beginning... [2] And the earth..."
// into numbered verses. Content with no markers at all is treated as a
// single verse 1, which happens for degenerate single-verse replies.
func parseBracketedVerses(content string) []bible.Verse {
	cleaned := strings.TrimSpace(stripTags(content))
	if cleaned == "" {
		return nil
	}

	matches := bracketedVersePattern.FindAllStringSubmatch(cleaned, -1)
	verses := make([]bible.Verse, 0, len(matches))
	for _, match := range matches {
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		text := strings.Join(strings.Fields(match[2]), " ")
		if text == "" {
			continue
		}
		verses = append(verses, bible.Verse{Number: number, Text: text})
	}

	if len(verses) == 0 {
		return []bible.Verse{{Number: 1, Text: strings.Join(strings.Fields(cleaned), " ")}}
	}
	return verses
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

func stripTags(content string) string {
	return tagPattern.ReplaceAllString(content, "")
}

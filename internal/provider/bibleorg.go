package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"horse.fit/manna/internal/bible"
)

// DefaultBibleOrgBaseURL is the labs.bible.org NET Bible endpoint.
const DefaultBibleOrgBaseURL = "https://labs.bible.org/api/"

// BibleOrg fetches chapters from labs.bible.org. It serves a single
// fixed translation, the NET Bible, English only.
type BibleOrg struct {
	baseURL string
	client  *http.Client
}

func NewBibleOrg(baseURL string) *BibleOrg {
	if baseURL == "" {
		baseURL = DefaultBibleOrgBaseURL
	}
	return &BibleOrg{baseURL: baseURL, client: newHTTPClient()}
}

func (b *BibleOrg) Name() string {
	return "bible-org"
}

// FetchChapter retrieves one chapter. The code argument is ignored
// since the endpoint only serves the NET Bible. Book names go into the
// passage query lowercased with plus signs for spaces, and verse
// numbers come back as JSON strings.
func (b *BibleOrg) FetchChapter(ctx context.Context, ref bible.Reference, _ string) (*bible.Chapter, error) {
	passage := strings.ReplaceAll(strings.ToLower(ref.Book), " ", "+")
	url := fmt.Sprintf("%s?passage=%s+%d&type=json", b.baseURL, passage, ref.Chapter)

	body, err := fetchBody(ctx, b.client, b.Name(), url, nil)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("bible-org: unexpected payload shape")
	}

	verses := make([]bible.Verse, 0, len(parsed.Array()))
	for _, entry := range parsed.Array() {
		text := bible.CleanVerseText(entry.Get("text").String())
		if text == "" {
			continue
		}
		verses = append(verses, bible.Verse{
			Number: int(entry.Get("verse").Int()),
			Text:   text,
		})
	}
	if len(verses) == 0 {
		return nil, ErrEmptyChapter
	}

	return &bible.Chapter{
		Book:            ref.Book,
		Chapter:         ref.Chapter,
		Translation:     "NET",
		TranslationName: "New English Translation",
		Verses:          verses,
		Source:          "bible-org",
		Language:        "en",
	}, nil
}

package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"horse.fit/manna/internal/bible"
)

// DefaultBollsBaseURL is the public bolls.life endpoint.
const DefaultBollsBaseURL = "https://bolls.life"

// Bolls fetches chapters from bolls.life, the primary multilingual source.
// No credential is required.
type Bolls struct {
	baseURL string
	client  *http.Client
}

func NewBolls(baseURL string) *Bolls {
	if baseURL == "" {
		baseURL = DefaultBollsBaseURL
	}
	return &Bolls{baseURL: baseURL, client: newHTTPClient()}
}

func (b *Bolls) Name() string {
	return "bolls"
}

// FetchChapter retrieves one chapter. The code is a bolls translation
// identifier such as "KJV" or "RV1960". Verses arrive as a flat JSON
// array of {pk, verse, text} objects.
func (b *Bolls) FetchChapter(ctx context.Context, ref bible.Reference, code string) (*bible.Chapter, error) {
	bookID, ok := bible.BookNumber(ref.Book)
	if !ok {
		return nil, fmt.Errorf("bolls: unknown book %q", ref.Book)
	}

	url := fmt.Sprintf("%s/get-chapter/%s/%d/%d/", b.baseURL, code, bookID, ref.Chapter)
	body, err := fetchBody(ctx, b.client, b.Name(), url, nil)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("bolls: unexpected payload shape")
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
		Translation:     code,
		TranslationName: code,
		Verses:          verses,
		Source:          "bolls",
	}, nil
}

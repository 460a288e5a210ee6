package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"horse.fit/manna/internal/bible"
)

// DefaultGetBibleBaseURL is the static getbible.net v2 endpoint.
const DefaultGetBibleBaseURL = "https://api.getbible.net/v2"

// GetBible fetches chapters from getbible.net, the multilingual fallback
// used when bolls is unavailable. No credential is required.
type GetBible struct {
	baseURL string
	client  *http.Client
}

func NewGetBible(baseURL string) *GetBible {
	if baseURL == "" {
		baseURL = DefaultGetBibleBaseURL
	}
	return &GetBible{baseURL: baseURL, client: newHTTPClient()}
}

func (g *GetBible) Name() string {
	return "getbible"
}

// FetchChapter retrieves one chapter. The code is a getbible translation
// identifier such as "kjv" or "valera". The payload carries its own
// translation and language metadata which the adapter passes through.
func (g *GetBible) FetchChapter(ctx context.Context, ref bible.Reference, code string) (*bible.Chapter, error) {
	bookID, ok := bible.BookNumber(ref.Book)
	if !ok {
		return nil, fmt.Errorf("getbible: unknown book %q", ref.Book)
	}

	url := fmt.Sprintf("%s/%s/%d/%d.json", g.baseURL, code, bookID, ref.Chapter)
	body, err := fetchBody(ctx, g.client, g.Name(), url, nil)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	entries := parsed.Get("verses").Array()
	verses := make([]bible.Verse, 0, len(entries))
	for _, entry := range entries {
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

	translationName := parsed.Get("translation").String()
	abbreviation := parsed.Get("abbreviation").String()
	if abbreviation == "" {
		abbreviation = code
	}
	if translationName == "" {
		translationName = abbreviation
	}

	return &bible.Chapter{
		Book:            ref.Book,
		Chapter:         ref.Chapter,
		Translation:     abbreviation,
		TranslationName: translationName,
		Verses:          verses,
		Source:          "getbible",
		Language:        parsed.Get("lang").String(),
	}, nil
}

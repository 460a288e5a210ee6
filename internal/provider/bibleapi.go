package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"horse.fit/manna/internal/bible"
)

// DefaultBibleAPIBaseURL is the public bible-api.com endpoint.
const DefaultBibleAPIBaseURL = "https://bible-api.com"

// English-only translation codes accepted by bible-api.com. Anything
// else is coerced to KJV before the request goes out.
var bibleAPITranslations = map[string]string{
	"kjv":   "King James Version",
	"web":   "World English Bible",
	"bbe":   "Bible in Basic English",
	"asv":   "American Standard Version",
	"darby": "Darby Translation",
	"ylt":   "Young's Literal Translation",
}

// BibleAPI fetches chapters from bible-api.com, the English-only
// fallback and the unconditional last resort (as KJV).
type BibleAPI struct {
	baseURL string
	client  *http.Client
}

func NewBibleAPI(baseURL string) *BibleAPI {
	if baseURL == "" {
		baseURL = DefaultBibleAPIBaseURL
	}
	return &BibleAPI{baseURL: baseURL, client: newHTTPClient()}
}

func (b *BibleAPI) Name() string {
	return "bible-api"
}

// NormalizeTranslation maps a requested code onto one bible-api.com
// accepts, defaulting to kjv.
func NormalizeTranslation(code string) string {
	lowered := strings.ToLower(strings.TrimSpace(code))
	if _, ok := bibleAPITranslations[lowered]; ok {
		return lowered
	}
	return "kjv"
}

// FetchChapter retrieves one chapter. bible-api.com takes a textual
// reference, so single-chapter books are expanded to an explicit verse
// range to keep it from misreading "Jude 1" as a single verse.
func (b *BibleAPI) FetchChapter(ctx context.Context, ref bible.Reference, code string) (*bible.Chapter, error) {
	translation := NormalizeTranslation(code)

	reference := fmt.Sprintf("%s %d", ref.Book, ref.Chapter)
	if count, ok := bible.SingleChapterVerseCount(ref.Book); ok && ref.Chapter == 1 {
		reference = fmt.Sprintf("%s 1:1-%d", ref.Book, count)
	}

	endpoint := fmt.Sprintf("%s/%s?translation=%s", b.baseURL, url.PathEscape(reference), translation)
	body, err := fetchBody(ctx, b.client, b.Name(), endpoint, nil)
	if err != nil {
		return nil, err
	}

	entries := gjson.GetBytes(body, "verses").Array()
	verses := make([]bible.Verse, 0, len(entries))
	for _, entry := range entries {
		text := strings.TrimSpace(entry.Get("text").String())
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
		Translation:     strings.ToUpper(translation),
		TranslationName: bibleAPITranslations[translation],
		Verses:          verses,
		Source:          "bible-api",
		Language:        "en",
	}, nil
}

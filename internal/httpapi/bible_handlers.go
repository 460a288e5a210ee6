package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/manna/internal/bible"
	"horse.fit/manna/internal/catalog"
	"horse.fit/manna/internal/language"
	"horse.fit/manna/internal/resolver"
	"horse.fit/manna/internal/search"
)

type chapterResponse struct {
	Book            string        `json:"book"`
	Chapter         int           `json:"chapter"`
	Translation     string        `json:"translation"`
	TranslationName string        `json:"translationName"`
	Verses          []bible.Verse `json:"verses"`
	IsNative        bool          `json:"isNativeTranslation"`
	Language        string        `json:"language"`
	Source          string        `json:"source"`
}

type verseResponse struct {
	Reference       string        `json:"reference"`
	Verses          []bible.Verse `json:"verses"`
	Translation     string        `json:"translation"`
	TranslationName string        `json:"translationName"`
	Source          string        `json:"source"`
}

func requestedLocale(c echo.Context) string {
	return language.NormalizeOrDefault(c.QueryParam("lang"), catalog.DefaultLocale)
}

func (s *Server) handleTranslations(c echo.Context) error {
	locale := requestedLocale(c)
	descriptors := catalog.ForLocale(locale)
	return success(c, map[string]any{
		"locale":       locale,
		"translations": descriptors,
	})
}

func (s *Server) handleChapter(c echo.Context) error {
	book := strings.TrimSpace(c.Param("book"))
	if book == "" {
		return failValidation(c, map[string]string{"book": "is required"})
	}
	chapterNum, err := strconv.Atoi(strings.TrimSpace(c.Param("chapter")))
	if err != nil || chapterNum < 1 {
		return failValidation(c, map[string]string{"chapter": "must be a positive integer"})
	}

	locale := requestedLocale(c)
	chapter, err := s.resolver.ResolveChapter(c.Request().Context(), book, chapterNum, c.QueryParam("translation"), locale)
	if err != nil {
		return s.chapterError(c, err)
	}

	return success(c, chapterPayload(chapter, locale))
}

// handleVerse accepts three path shapes under /bible/verse/:
// book/chapter/verse, book/chapter and a single URL-encoded reference
// like "John 3:16-18".
func (s *Server) handleVerse(c echo.Context) error {
	raw := strings.Trim(c.Param("*"), "/")
	if raw == "" {
		return failValidation(c, map[string]string{"reference": "is required"})
	}

	ref, err := parseVersePath(raw)
	if err != nil {
		return failValidation(c, map[string]string{"reference": err.Error()})
	}

	locale := requestedLocale(c)
	chapter, err := s.resolver.ResolveVerses(c.Request().Context(), ref, c.QueryParam("translation"), locale)
	if err != nil {
		return s.chapterError(c, err)
	}

	return success(c, verseResponse{
		Reference:       ref.String(),
		Verses:          chapter.Verses,
		Translation:     chapter.Translation,
		TranslationName: chapter.TranslationName,
		Source:          chapter.Source,
	})
}

func parseVersePath(raw string) (bible.Reference, error) {
	segments := strings.Split(raw, "/")
	switch len(segments) {
	case 1:
		return bible.ParseReference(segments[0])
	case 2:
		return bible.ParseReference(segments[0] + " " + segments[1])
	case 3:
		return bible.ParseReference(segments[0] + " " + segments[1] + ":" + segments[2])
	default:
		return bible.Reference{}, errors.New("must be a reference, book/chapter or book/chapter/verse")
	}
}

func (s *Server) handleSearch(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return failValidation(c, map[string]string{"q": "is required"})
	}

	limit := 0
	if rawLimit := strings.TrimSpace(c.QueryParam("limit")); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > 100 {
			return failValidation(c, map[string]string{"limit": "must be between 1 and 100"})
		}
		limit = parsed
	}

	locale := requestedLocale(c)
	result, err := s.searcher.Search(c.Request().Context(), query, c.QueryParam("translation"), locale, limit)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error(), nil)
	}

	filter := strings.TrimSpace(strings.ToLower(c.QueryParam("filter")))
	filtered := search.Filter(result, filter)

	return success(c, map[string]any{
		"results":    filtered.Results,
		"totalCount": filtered.TotalCount,
		"otCount":    filtered.OTCount,
		"ntCount":    filtered.NTCount,
		"bookCounts": filtered.BookCounts,
		"filter":     filter,
	})
}

func (s *Server) handleVerseOfTheDay(c echo.Context) error {
	locale := requestedLocale(c)
	chapter, reference, err := s.searcher.VerseOfTheDay(c.Request().Context(), c.QueryParam("translation"), locale, time.Now())
	if err != nil {
		return s.chapterError(c, err)
	}

	return success(c, map[string]any{
		"reference":       reference,
		"verses":          chapter.Verses,
		"translation":     chapter.Translation,
		"translationName": chapter.TranslationName,
		"source":          chapter.Source,
	})
}

func chapterPayload(chapter *bible.Chapter, locale string) chapterResponse {
	return chapterResponse{
		Book:            chapter.Book,
		Chapter:         chapter.Chapter,
		Translation:     chapter.Translation,
		TranslationName: chapter.TranslationName,
		Verses:          chapter.Verses,
		IsNative:        strings.EqualFold(chapter.Language, locale),
		Language:        chapter.Language,
		Source:          chapter.Source,
	}
}

func (s *Server) chapterError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, bible.ErrUnresolvableReference):
		return fail(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, resolver.ErrVerseNotFound):
		return failNotFound(c, "Requested verses not found")
	case errors.Is(err, resolver.ErrAllProvidersExhausted):
		return failNotFound(c, "Scripture content is unavailable right now")
	default:
		s.logger.Error().Err(err).Msg("resolve scripture failed")
		return internalError(c, "Failed to load scripture")
	}
}

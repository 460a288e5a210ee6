package bible

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnresolvableReference marks input that cannot become a valid Reference.
var ErrUnresolvableReference = errors.New("unresolvable scripture reference")

// Reference is the canonical (book, chapter, verse range) form every
// provider adapter consumes. Zero verse fields mean "whole chapter".
type Reference struct {
	Book       string
	Chapter    int
	VerseStart int
	VerseEnd   int
}

// Verse is one normalized verse: plain text, no markup, no Strong's numbers.
type Verse struct {
	Number int    `json:"verse"`
	Text   string `json:"text"`
}

// Chapter is the unit returned to callers after provider normalization.
type Chapter struct {
	Book            string  `json:"book"`
	Chapter         int     `json:"chapter"`
	Translation     string  `json:"translation"`
	TranslationName string  `json:"translationName"`
	Verses          []Verse `json:"verses"`
	Source          string  `json:"source"`
	Language        string  `json:"language"`
}

// ParseReference canonicalizes free-text references of the shapes
// "Book Chapter", "Book Chapter:Verse" and "Book Chapter:Start-End".
// Multi-word book names keep all leading tokens ("1 Samuel 17:4").
func ParseReference(raw string) (Reference, error) {
	tokens := strings.Fields(strings.TrimSpace(raw))
	if len(tokens) < 2 {
		return Reference{}, fmt.Errorf("%w: %q", ErrUnresolvableReference, raw)
	}

	bookPart := strings.Join(tokens[:len(tokens)-1], " ")
	book, ok := CanonicalName(bookPart)
	if !ok {
		return Reference{}, fmt.Errorf("%w: unknown book %q", ErrUnresolvableReference, bookPart)
	}

	chapterPart := tokens[len(tokens)-1]
	versePart := ""
	if colon := strings.IndexByte(chapterPart, ':'); colon >= 0 {
		versePart = chapterPart[colon+1:]
		chapterPart = chapterPart[:colon]
	}

	chapter, err := strconv.Atoi(chapterPart)
	if err != nil || chapter < 1 {
		return Reference{}, fmt.Errorf("%w: invalid chapter %q", ErrUnresolvableReference, chapterPart)
	}

	ref := Reference{Book: book, Chapter: chapter}
	if versePart == "" {
		return ref, nil
	}

	startPart := versePart
	endPart := ""
	if dash := strings.IndexByte(versePart, '-'); dash >= 0 {
		startPart = versePart[:dash]
		endPart = versePart[dash+1:]
	}

	start, err := strconv.Atoi(startPart)
	if err != nil || start < 1 {
		return Reference{}, fmt.Errorf("%w: invalid verse %q", ErrUnresolvableReference, startPart)
	}
	ref.VerseStart = start

	if endPart != "" {
		end, err := strconv.Atoi(endPart)
		if err != nil || end < start {
			return Reference{}, fmt.Errorf("%w: invalid verse range %q", ErrUnresolvableReference, versePart)
		}
		ref.VerseEnd = end
	}

	return ref, nil
}

// ExpandSingleChapter rewrites "Book 1" requests against single-chapter
// books into an explicit full verse range so providers do not shrink them
// to a single verse.
func ExpandSingleChapter(ref Reference) Reference {
	if ref.Chapter != 1 || ref.VerseStart != 0 {
		return ref
	}
	count, ok := SingleChapterVerseCount(ref.Book)
	if !ok {
		return ref
	}
	ref.VerseStart = 1
	ref.VerseEnd = count
	return ref
}

// String renders the reference in the provider-facing text form.
func (r Reference) String() string {
	out := fmt.Sprintf("%s %d", r.Book, r.Chapter)
	if r.VerseStart > 0 {
		out += fmt.Sprintf(":%d", r.VerseStart)
		if r.VerseEnd > 0 && r.VerseEnd != r.VerseStart {
			out += fmt.Sprintf("-%d", r.VerseEnd)
		}
	}
	return out
}

// HasVerseRange reports whether the reference targets specific verses.
func (r Reference) HasVerseRange() bool {
	return r.VerseStart > 0
}

// Contains reports whether a verse number falls inside the requested range.
// A reference without a range contains every verse.
func (r Reference) Contains(verse int) bool {
	if r.VerseStart == 0 {
		return true
	}
	end := r.VerseEnd
	if end == 0 {
		end = r.VerseStart
	}
	return verse >= r.VerseStart && verse <= end
}

var referencePattern = regexp.MustCompile(`(\d?\s?[A-Za-z]+)\s+(\d+):(\d+)(?:-(\d+))?`)

// ExtractReferences finds verse-shaped substrings ("John 3:16",
// "1 John 4:7-8") in free text, deduplicated in order of appearance.
func ExtractReferences(text string) []string {
	matches := referencePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		key := strings.ToLower(strings.Join(strings.Fields(match), " "))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, match)
	}
	return out
}

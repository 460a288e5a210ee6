package bible

import (
	"errors"
	"testing"
)

func TestParseReference(t *testing.T) {
	t.Parallel()

	ref, err := ParseReference("John 3:16")
	if err != nil {
		t.Fatalf("parse reference: %v", err)
	}
	if ref.Book != "John" || ref.Chapter != 3 || ref.VerseStart != 16 || ref.VerseEnd != 0 {
		t.Fatalf("unexpected reference: %+v", ref)
	}

	ref, err = ParseReference("1 John 4:7-8")
	if err != nil {
		t.Fatalf("parse multi-word reference: %v", err)
	}
	if ref.Book != "1 John" || ref.Chapter != 4 || ref.VerseStart != 7 || ref.VerseEnd != 8 {
		t.Fatalf("unexpected reference: %+v", ref)
	}

	ref, err = ParseReference("Genesis 1")
	if err != nil {
		t.Fatalf("parse chapter reference: %v", err)
	}
	if ref.Book != "Genesis" || ref.Chapter != 1 || ref.VerseStart != 0 {
		t.Fatalf("unexpected reference: %+v", ref)
	}
}

func TestParseReferenceRejectsUnknownBook(t *testing.T) {
	t.Parallel()

	_, err := ParseReference("NotABook 9")
	if !errors.Is(err, ErrUnresolvableReference) {
		t.Fatalf("expected ErrUnresolvableReference, got %v", err)
	}

	_, err = ParseReference("John zero")
	if !errors.Is(err, ErrUnresolvableReference) {
		t.Fatalf("expected ErrUnresolvableReference for non-numeric chapter, got %v", err)
	}
}

func TestParseReferenceRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	if _, err := ParseReference("John 3:16-2"); !errors.Is(err, ErrUnresolvableReference) {
		t.Fatalf("expected ErrUnresolvableReference, got %v", err)
	}
}

func TestExpandSingleChapter(t *testing.T) {
	t.Parallel()

	ref := ExpandSingleChapter(Reference{Book: "Jude", Chapter: 1})
	if ref.VerseStart != 1 || ref.VerseEnd != 25 {
		t.Fatalf("expected Jude 1:1-25, got %+v", ref)
	}
	if ref.String() != "Jude 1:1-25" {
		t.Fatalf("unexpected rendering: %q", ref.String())
	}

	ref = ExpandSingleChapter(Reference{Book: "Genesis", Chapter: 1})
	if ref.VerseStart != 0 {
		t.Fatalf("multi-chapter book must not expand: %+v", ref)
	}

	ref = ExpandSingleChapter(Reference{Book: "Jude", Chapter: 1, VerseStart: 3})
	if ref.VerseStart != 3 || ref.VerseEnd != 0 {
		t.Fatalf("explicit verse must not expand: %+v", ref)
	}
}

func TestCanonicalNameAliases(t *testing.T) {
	t.Parallel()

	name, ok := CanonicalName("psalm")
	if !ok || name != "Psalms" {
		t.Fatalf("unexpected canonical name: %q %v", name, ok)
	}
	name, ok = CanonicalName("SONG OF SOLOMON")
	if !ok || name != "Song of Solomon" {
		t.Fatalf("unexpected canonical name: %q %v", name, ok)
	}
	if _, ok := CanonicalName("Gospel of Thomas"); ok {
		t.Fatalf("expected unknown book to miss")
	}
}

func TestTestamentClassification(t *testing.T) {
	t.Parallel()

	if Testament("Malachi") != "OT" {
		t.Fatalf("Malachi should be OT")
	}
	if Testament("Matthew") != "NT" {
		t.Fatalf("Matthew should be NT")
	}
}

func TestExtractReferences(t *testing.T) {
	t.Parallel()

	refs := ExtractReferences("Compare John 3:16 with 1 John 4:7-8 and john 3:16 again")
	if len(refs) != 2 {
		t.Fatalf("unexpected references: %v", refs)
	}
	if refs[0] != "John 3:16" {
		t.Fatalf("unexpected first reference: %q", refs[0])
	}
}

func TestCleanVerseText(t *testing.T) {
	t.Parallel()

	raw := `[3] <S>1234</S>For <i>God</i> so loved<br/> the   world`
	got := CleanVerseText(raw)
	if got != "For God so loved the world" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}

	if got := CleanVerseText("12 In the beginning"); got != "In the beginning" {
		t.Fatalf("leading verse number not stripped: %q", got)
	}
}

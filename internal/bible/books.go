package bible

import "strings"

// bookInfo describes one book of the 66-book Protestant canon.
type bookInfo struct {
	name     string
	aliases  []string
	chapters int
}

// Canonical order, 1-66. The slice index plus one is the book number shared
// by providers that address books numerically.
var books = []bookInfo{
	{"Genesis", []string{"gen"}, 50},
	{"Exodus", []string{"exod", "ex"}, 40},
	{"Leviticus", []string{"lev"}, 27},
	{"Numbers", []string{"num"}, 36},
	{"Deuteronomy", []string{"deut", "dt"}, 34},
	{"Joshua", []string{"josh"}, 24},
	{"Judges", []string{"judg", "jdg"}, 21},
	{"Ruth", nil, 4},
	{"1 Samuel", []string{"1samuel", "1sam", "1 sam"}, 31},
	{"2 Samuel", []string{"2samuel", "2sam", "2 sam"}, 24},
	{"1 Kings", []string{"1kings", "1kgs", "1 kgs"}, 22},
	{"2 Kings", []string{"2kings", "2kgs", "2 kgs"}, 25},
	{"1 Chronicles", []string{"1chronicles", "1chr", "1 chr"}, 29},
	{"2 Chronicles", []string{"2chronicles", "2chr", "2 chr"}, 36},
	{"Ezra", nil, 10},
	{"Nehemiah", []string{"neh"}, 13},
	{"Esther", []string{"esth", "est"}, 10},
	{"Job", nil, 42},
	{"Psalms", []string{"psalm", "ps", "psa"}, 150},
	{"Proverbs", []string{"prov", "pro"}, 31},
	{"Ecclesiastes", []string{"eccl", "ecc"}, 12},
	{"Song of Solomon", []string{"song", "sos", "songs", "canticles"}, 8},
	{"Isaiah", []string{"isa", "is"}, 66},
	{"Jeremiah", []string{"jer"}, 52},
	{"Lamentations", []string{"lam"}, 5},
	{"Ezekiel", []string{"ezek", "eze"}, 48},
	{"Daniel", []string{"dan"}, 12},
	{"Hosea", []string{"hos"}, 14},
	{"Joel", nil, 3},
	{"Amos", nil, 9},
	{"Obadiah", []string{"obad", "oba"}, 1},
	{"Jonah", []string{"jon"}, 4},
	{"Micah", []string{"mic"}, 7},
	{"Nahum", []string{"nah"}, 3},
	{"Habakkuk", []string{"hab"}, 3},
	{"Zephaniah", []string{"zeph", "zep"}, 3},
	{"Haggai", []string{"hag"}, 2},
	{"Zechariah", []string{"zech", "zec"}, 14},
	{"Malachi", []string{"mal"}, 4},
	{"Matthew", []string{"matt", "mt"}, 28},
	{"Mark", []string{"mk"}, 16},
	{"Luke", []string{"lk"}, 24},
	{"John", []string{"jn"}, 21},
	{"Acts", []string{"act"}, 28},
	{"Romans", []string{"rom"}, 16},
	{"1 Corinthians", []string{"1corinthians", "1cor", "1 cor"}, 16},
	{"2 Corinthians", []string{"2corinthians", "2cor", "2 cor"}, 13},
	{"Galatians", []string{"gal"}, 6},
	{"Ephesians", []string{"eph"}, 6},
	{"Philippians", []string{"phil", "php"}, 4},
	{"Colossians", []string{"col"}, 4},
	{"1 Thessalonians", []string{"1thessalonians", "1thess", "1 thess"}, 5},
	{"2 Thessalonians", []string{"2thessalonians", "2thess", "2 thess"}, 3},
	{"1 Timothy", []string{"1timothy", "1tim", "1 tim"}, 6},
	{"2 Timothy", []string{"2timothy", "2tim", "2 tim"}, 4},
	{"Titus", []string{"tit"}, 3},
	{"Philemon", []string{"phlm", "phm"}, 1},
	{"Hebrews", []string{"heb"}, 13},
	{"James", []string{"jas"}, 5},
	{"1 Peter", []string{"1peter", "1pet", "1 pet"}, 5},
	{"2 Peter", []string{"2peter", "2pet", "2 pet"}, 3},
	{"1 John", []string{"1john", "1jn", "1 jn"}, 5},
	{"2 John", []string{"2john", "2jn", "2 jn"}, 1},
	{"3 John", []string{"3john", "3jn", "3 jn"}, 1},
	{"Jude", nil, 25},
	{"Revelation", []string{"rev", "re"}, 22},
}

// Single-chapter books need their full verse range spelled out when a
// provider would otherwise read "Jude 1" as "Jude 1:1".
var singleChapterVerses = map[string]int{
	"Obadiah":  21,
	"Philemon": 25,
	"2 John":   13,
	"3 John":   14,
	"Jude":     25,
}

const oldTestamentBooks = 39

var bookIndex = buildBookIndex()

func buildBookIndex() map[string]int {
	index := make(map[string]int, len(books)*3)
	for i, info := range books {
		index[strings.ToLower(info.name)] = i + 1
		for _, alias := range info.aliases {
			index[alias] = i + 1
		}
	}
	return index
}

// CanonicalName resolves a raw book name or common abbreviation to its
// canonical form. The lookup is case-insensitive.
func CanonicalName(raw string) (string, bool) {
	number, ok := BookNumber(raw)
	if !ok {
		return "", false
	}
	return books[number-1].name, true
}

// BookNumber returns the 1-66 position of a book in the canon.
func BookNumber(raw string) (int, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if key == "" {
		return 0, false
	}
	number, ok := bookIndex[key]
	return number, ok
}

// BookByNumber returns the canonical name for a 1-66 book number.
func BookByNumber(number int) (string, bool) {
	if number < 1 || number > len(books) {
		return "", false
	}
	return books[number-1].name, true
}

// IsOldTestament reports testament membership for a canonical book name.
func IsOldTestament(book string) bool {
	number, ok := BookNumber(book)
	if !ok {
		return false
	}
	return number <= oldTestamentBooks
}

// Testament returns "OT" or "NT" for a canonical book name.
func Testament(book string) string {
	if IsOldTestament(book) {
		return "OT"
	}
	return "NT"
}

// ChapterCount returns the number of chapters in a book, or 0 when unknown.
func ChapterCount(book string) int {
	number, ok := BookNumber(book)
	if !ok {
		return 0
	}
	return books[number-1].chapters
}

// SingleChapterVerseCount returns the verse count for single-chapter books.
func SingleChapterVerseCount(book string) (int, bool) {
	canonical, ok := CanonicalName(book)
	if !ok {
		return 0, false
	}
	count, ok := singleChapterVerses[canonical]
	return count, ok
}

// BookNames returns the canonical names in canon order.
func BookNames() []string {
	names := make([]string, len(books))
	for i, info := range books {
		names[i] = info.name
	}
	return names
}

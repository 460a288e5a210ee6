package search

import "strings"

// topicReferences maps common devotional themes to the passages most
// likely to contain them. Keyword search scans only these candidates,
// so a keyword outside every topic falls back to the generic list.
var topicReferences = map[string][]string{
	"love": {
		"1 Corinthians 13", "John 3:16-17", "1 John 4:7-21", "Romans 8:35-39",
		"John 15:9-17", "Ephesians 5:25-33", "Song of Solomon 8:6-7",
	},
	"faith": {
		"Hebrews 11", "Romans 10:17", "James 2:14-26", "Ephesians 2:8-9",
		"Mark 11:22-24", "Matthew 17:20", "Galatians 2:20",
	},
	"hope": {
		"Romans 15:13", "Hebrews 6:19", "1 Peter 1:3-9", "Romans 8:24-25",
		"Jeremiah 29:11", "Psalm 42", "Lamentations 3:21-26",
	},
	"peace": {
		"John 14:27", "Philippians 4:6-7", "Isaiah 26:3", "Romans 5:1",
		"Colossians 3:15", "Psalm 29:11", "Numbers 6:24-26",
	},
	"joy": {
		"Philippians 4:4-7", "Nehemiah 8:10", "Psalm 16:11", "Romans 15:13",
		"John 15:11", "Galatians 5:22-23", "James 1:2-4",
	},
	"salvation": {
		"Romans 10:9-13", "Ephesians 2:8-9", "John 3:16-17", "Acts 4:12",
		"Titus 3:4-7", "Romans 6:23", "2 Corinthians 5:17",
	},
	"forgiveness": {
		"1 John 1:9", "Ephesians 4:32", "Colossians 3:13", "Matthew 6:14-15",
		"Psalm 103:10-12", "Isaiah 1:18", "Acts 3:19",
	},
	"strength": {
		"Philippians 4:13", "Isaiah 40:29-31", "2 Corinthians 12:9-10",
		"Psalm 46:1", "Nehemiah 8:10", "Deuteronomy 31:6", "Joshua 1:9",
	},
	"wisdom": {
		"Proverbs 1", "Proverbs 2", "Proverbs 3", "James 1:5",
		"Proverbs 9:10", "Colossians 2:2-3", "1 Corinthians 1:30",
	},
	"fear": {
		"Isaiah 41:10", "2 Timothy 1:7", "Psalm 23", "Psalm 91",
		"Joshua 1:9", "Psalm 27:1", "Romans 8:15",
	},
	"prayer": {
		"Matthew 6:9-13", "Philippians 4:6-7", "1 Thessalonians 5:16-18",
		"James 5:13-16", "John 14:13-14", "Romans 8:26-27", "Psalm 145",
	},
	"grace": {
		"Ephesians 2:8-9", "2 Corinthians 12:9", "Romans 5:20-21",
		"Titus 2:11-14", "John 1:14-17", "Romans 6:14", "Hebrews 4:16",
	},
	"truth": {
		"John 14:6", "John 8:32", "John 17:17", "Psalm 119:160",
		"Ephesians 4:15", "3 John 1:4", "Proverbs 12:19",
	},
	"light": {
		"John 8:12", "Matthew 5:14-16", "Psalm 119:105", "1 John 1:5-7",
		"Isaiah 60:1-3", "John 1:1-9", "Ephesians 5:8-14",
	},
	"life": {
		"John 10:10", "John 14:6", "John 11:25-26", "Romans 6:23",
		"Galatians 2:20", "Colossians 3:1-4", "John 3:16",
	},
	"death": {
		"Romans 6:23", "1 Corinthians 15:54-57", "Hebrews 2:14-15",
		"Revelation 21:4", "Psalm 23:4", "John 11:25-26", "Romans 8:38-39",
	},
	"sin": {
		"Romans 3:23", "Romans 6:23", "1 John 1:8-10", "Isaiah 53:5-6",
		"Romans 5:12", "James 1:15", "Psalm 51",
	},
	"heaven": {
		"John 14:1-3", "Revelation 21:1-7", "Philippians 3:20-21",
		"2 Corinthians 5:1-8", "1 Thessalonians 4:16-17", "Revelation 22:1-5",
	},
	"blessed": {
		"Matthew 5:1-12", "Psalm 1", "Psalm 32:1-2", "James 1:12",
		"Romans 4:7-8", "Revelation 22:14", "Proverbs 3:13",
	},
	"lord": {
		"Psalm 23", "Psalm 100", "Philippians 2:9-11", "Romans 10:9-13",
		"Acts 2:36", "1 Corinthians 12:3", "Revelation 19:16",
	},
}

// genericReferences are high-coverage passages scanned when no topic
// matches the keyword.
var genericReferences = []string{
	"Psalm 23", "Psalm 91", "Psalm 119:1-32", "Proverbs 3",
	"Matthew 5", "Matthew 6", "John 1", "John 3",
	"Romans 8", "1 Corinthians 13", "Philippians 4",
	"Hebrews 11", "James 1", "1 John 4",
}

// topicOrder fixes the probe order so a keyword touching several
// topics always resolves to the same one.
var topicOrder = []string{
	"love", "faith", "hope", "peace", "joy", "salvation", "forgiveness",
	"strength", "wisdom", "fear", "prayer", "grace", "truth", "light",
	"life", "death", "sin", "heaven", "blessed", "lord",
}

// candidateReferences picks the passages to scan for a keyword. The
// match is loose in both directions: "loved" finds "love" and "sal"
// finds "salvation".
func candidateReferences(keyword string) []string {
	lowered := strings.ToLower(strings.TrimSpace(keyword))
	if lowered == "" {
		return genericReferences
	}
	for _, topic := range topicOrder {
		if strings.Contains(lowered, topic) || strings.Contains(topic, lowered) {
			return topicReferences[topic]
		}
	}
	return genericReferences
}

// Package queryproc turns free-form collector questions into structured
// search parameters: a theme, time/size/price modifiers, an exact year or
// set number, and residual keywords.
package queryproc

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Parsed is the structured form of one natural-language query.
type Parsed struct {
	Query         string
	Theme         string
	TimeModifier  string // oldest, newest, vintage, modern
	SizeModifier  string // largest, smallest, medium
	PriceModifier string // expensive, cheap, free
	Year          int
	SetNumber     string
	Keywords      []string
}

type themeEntry struct {
	canonical string
	variants  []string
}

// Common LEGO themes and the spellings collectors actually type.
var themeTable = []themeEntry{
	{"star wars", []string{"star wars", "starwars", "sw", "starwar"}},
	{"city", []string{"city", "lego city", "town"}},
	{"technic", []string{"technic", "technical"}},
	{"friends", []string{"friends", "lego friends"}},
	{"ninjago", []string{"ninjago", "ninja go", "ninja"}},
	{"architecture", []string{"architecture", "architectural"}},
	{"creator", []string{"creator", "creative"}},
	{"duplo", []string{"duplo", "duplo blocks"}},
	{"bionicle", []string{"bionicle", "bionicles"}},
	{"marvel", []string{"marvel", "superheroes", "avengers"}},
	{"dc", []string{"dc", "batman", "superman"}},
	{"harry potter", []string{"harry potter", "hp", "wizarding world"}},
	{"minecraft", []string{"minecraft", "mine craft"}},
	{"jurassic world", []string{"jurassic world", "jurassic park", "dinosaurs"}},
	{"speed champions", []string{"speed champions", "cars", "racing"}},
	{"ideas", []string{"ideas", "lego ideas", "fan designed"}},
	{"expert", []string{"expert", "expert level", "adult"}},
	{"classic", []string{"classic", "basic", "traditional"}},
}

type modifierEntry struct {
	modifier string
	keywords []string
}

var timeTable = []modifierEntry{
	{"oldest", []string{"oldest", "first", "earliest", "original"}},
	{"newest", []string{"newest", "latest", "recent", "current"}},
	{"vintage", []string{"vintage", "retro", "classic", "old"}},
	{"modern", []string{"modern", "new", "contemporary", "recent"}},
}

var sizeTable = []modifierEntry{
	{"largest", []string{"largest", "biggest", "huge", "massive"}},
	{"smallest", []string{"smallest", "tiny", "mini", "small"}},
	{"medium", []string{"medium", "average", "normal"}},
}

var priceTable = []modifierEntry{
	{"expensive", []string{"expensive", "costly", "premium", "high price"}},
	{"cheap", []string{"cheap", "inexpensive", "affordable", "low price"}},
	{"free", []string{"free", "no cost", "zero price"}},
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "set": true, "sets": true, "lego": true,
}

var (
	yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	numRe  = regexp.MustCompile(`\b\d{3,6}\b`)
	wordRe = regexp.MustCompile(`\b\w+\b`)
)

// fuzzyThemeThreshold is the minimum similarity percentage for a fuzzy
// theme match.
const fuzzyThemeThreshold = 70

// Parse extracts all search parameters from one query.
func Parse(query string) Parsed {
	return Parsed{
		Query:         query,
		Theme:         ExtractTheme(query),
		TimeModifier:  extractModifier(query, timeTable),
		SizeModifier:  extractModifier(query, sizeTable),
		PriceModifier: extractModifier(query, priceTable),
		Year:          ExtractYear(query),
		SetNumber:     ExtractSetNumber(query),
		Keywords:      ExtractKeywords(query),
	}
}

// ExtractTheme finds a known theme in the query: variant substring match
// first, then fuzzy matching of individual words and word pairs against
// the canonical theme names.
func ExtractTheme(query string) string {
	lower := strings.ToLower(query)

	for _, entry := range themeTable {
		for _, v := range entry.variants {
			if strings.Contains(lower, v) {
				return entry.canonical
			}
		}
	}

	words := wordRe.FindAllString(lower, -1)
	var candidates []string
	candidates = append(candidates, words...)
	for i := 0; i+1 < len(words); i++ {
		candidates = append(candidates, words[i]+" "+words[i+1])
	}

	best := ""
	bestScore := 0
	for _, entry := range themeTable {
		for _, c := range candidates {
			if score := similarity(c, entry.canonical); score > bestScore {
				bestScore = score
				best = entry.canonical
			}
		}
	}
	if bestScore > fuzzyThemeThreshold {
		return best
	}
	return ""
}

// similarity is a percentage derived from Levenshtein distance.
func similarity(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return 100 * (max - dist) / max
}

func extractModifier(query string, table []modifierEntry) string {
	lower := strings.ToLower(query)
	for _, entry := range table {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.modifier
			}
		}
	}
	return ""
}

// ExtractYear returns a four-digit release year, or 0.
func ExtractYear(query string) int {
	m := yearRe.FindString(query)
	if m == "" {
		return 0
	}
	year := 0
	for _, c := range m {
		year = year*10 + int(c-'0')
	}
	return year
}

// ExtractSetNumber returns the first 3-6 digit run, or "".
func ExtractSetNumber(query string) string {
	return numRe.FindString(query)
}

// ExtractKeywords returns the meaningful words of the query, stopwords and
// short tokens removed.
func ExtractKeywords(query string) []string {
	words := wordRe.FindAllString(strings.ToLower(query), -1)
	var out []string
	for _, w := range words {
		if stopWords[w] || len(w) <= 2 {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Queries generates the derived search-query list for multi-pass search,
// deduplicated in order: the original query, theme, modifier+theme, set
// number, then keywords.
func (p Parsed) Queries() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			return
		}
		seen[q] = true
		out = append(out, q)
	}

	add(p.Query)
	if p.Theme != "" {
		add(p.Theme)
		if p.TimeModifier != "" {
			add(p.TimeModifier + " " + p.Theme)
		}
	}
	if p.SetNumber != "" {
		add(p.SetNumber)
	}
	for _, kw := range p.Keywords {
		add(kw)
	}
	return out
}

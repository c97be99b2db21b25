package keywords

import (
	"regexp"
	"strings"
)

var (
	noise      = regexp.MustCompile(`#\w+|@\w+|https?://\S+`)
	hashtagRe  = regexp.MustCompile(`#(\w+)`)
	nonWordRun = regexp.MustCompile(`[^\p{L}\p{N}_]`)
	alphaOnly  = regexp.MustCompile(`^\p{L}+$`)
)

// stopwords is a closed set of function words excluded from keyword tallies
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "but", "for", "are", "this", "that", "with", "have", "from",
		"they", "know", "want", "been", "good", "much", "some", "time", "very",
		"when", "come", "here", "just", "like", "over", "also", "back", "after",
		"first", "well", "way", "even", "new", "work", "will", "can", "said",
		"each", "which", "their", "them", "she", "may", "use", "her",
		"than", "now", "look", "only", "its", "think",
		"your", "years", "these", "give", "day", "most", "us",
	} {
		stopwords[w] = struct{}{}
	}
}

// MinTokenLen is the shortest keyword kept. One threshold covers tweets
// and captions alike; short loanwords survive while the stopword set
// drops function words.
const MinTokenLen = 2

// Extractor tokenizes post text into content words. It is stateless;
// the zero value is usable.
type Extractor struct{}

// New creates a keyword extractor
func New() *Extractor {
	return &Extractor{}
}

// Keywords returns the lower-cased content words of text in input order,
// duplicates included; the caller tallies frequency. Mentions, URLs and
// hashtag markup are removed first, then tokens are kept only when they
// are purely alphabetic, at least MinTokenLen runes long and not a
// stopword.
func (e *Extractor) Keywords(text string) []string {
	cleaned := noise.ReplaceAllString(text, " ")

	var words []string
	for _, token := range strings.Fields(cleaned) {
		word := strings.ToLower(nonWordRun.ReplaceAllString(token, ""))
		if len([]rune(word)) < MinTokenLen {
			continue
		}
		if !alphaOnly.MatchString(word) {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		words = append(words, word)
	}
	return words
}

// Hashtags returns the lower-cased contents of #hashtags found in text,
// in input order. Callers weight these heavier than plain keywords.
func (e *Extractor) Hashtags(text string) []string {
	matches := hashtagRe.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1]))
	}
	return tags
}

// IsStopword reports whether word is in the closed stopword set
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

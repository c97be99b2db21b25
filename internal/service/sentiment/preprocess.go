package sentiment

import (
	"regexp"
	"strings"
)

var (
	urlRe     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionRe = regexp.MustCompile(`@\w+`)
	hashtagRe = regexp.MustCompile(`#(\w+)`)
	rtLeadRe  = regexp.MustCompile(`^RT\s+`)
	rtWordRe  = regexp.MustCompile(`\bRT\b`)
	spacesRe  = regexp.MustCompile(`\s+`)
)

// Indonesian negation particles joined to the following word so a
// model tokenizer sees the negated phrase as one unit.
var negations = []string{"tidak", "bukan", "jangan"}

// Normalize cleans post text before scoring: URLs and mentions are
// dropped, hashtag markup is unwrapped (the word carries sentiment, the
// '#' does not), retweet markers are removed and whitespace collapsed.
func Normalize(text string) string {
	text = urlRe.ReplaceAllString(text, " ")
	text = mentionRe.ReplaceAllString(text, " ")
	text = hashtagRe.ReplaceAllString(text, "$1")
	text = rtLeadRe.ReplaceAllString(text, "")
	text = rtWordRe.ReplaceAllString(text, "")
	return strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))
}

// joinNegations rewrites "tidak bagus" as "tidak_bagus" and the like,
// lower-casing the text in the process.
func joinNegations(text string) string {
	text = strings.ToLower(text)
	for _, n := range negations {
		text = strings.ReplaceAll(text, n+" ", n+"_")
	}
	return text
}

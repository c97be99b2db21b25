package geo

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Leading emoji/symbol runs, e.g. "📍 Yogyakarta"
	leadingSymbols = regexp.MustCompile(`^[^\p{L}\p{N}\s_]+`)

	// Everything that is not a word character or whitespace
	nonWord = regexp.MustCompile(`[^\p{L}\p{N}\s_]`)

	titleCaser = cases.Title(language.Und)
)

// Separators scanned in fixed priority order; the segment before the first
// separator found is usually the city.
var separators = []string{",", "|", "-", "•", "·", "/"}

// Extractor normalizes a free-text location or place string into a
// canonical city name. It is pure and deterministic; two variants exist,
// an Indonesian one with a populated alias table and a generic global one.
type Extractor struct {
	prefixes  []string
	aliases   map[string]string
	cityWords []string
}

// NewIndonesian returns the Indonesia-specific extractor. It knows common
// "tinggal di ..." style prefixes, aliases like "jogja" -> "Yogyakarta"
// and administrative prefixes ("kota", "kabupaten") to drop.
func NewIndonesian() *Extractor {
	return &Extractor{
		prefixes: []string{
			"tinggal di", "domisili", "asal", "dari", "di", "kota", "kabupaten",
			"living in", "based in", "from", "in", "at", "currently in",
			"located in", "residing in", "home:", "location:", "here:",
		},
		aliases: map[string]string{
			"dki jakarta":     "Jakarta",
			"jakarta pusat":   "Jakarta",
			"jakarta selatan": "Jakarta",
			"jakarta utara":   "Jakarta",
			"jakarta barat":   "Jakarta",
			"jakarta timur":   "Jakarta",
			"jogja":           "Yogyakarta",
			"yogya":           "Yogyakarta",
			"jogjakarta":      "Yogyakarta",
			"bandung raya":    "Bandung",
			"kota bandung":    "Bandung",
			"solo":            "Surakarta",
			"semarang":        "Semarang",
			"surabaya":        "Surabaya",
			"medan":           "Medan",
			"palembang":       "Palembang",
			"makassar":        "Makassar",
			"denpasar":        "Denpasar",
			"bali":            "Denpasar",
			"malang":          "Malang",
			"bogor":           "Bogor",
			"tangerang":       "Tangerang",
			"bekasi":          "Bekasi",
			"depok":           "Depok",
			"pontianak":       "Pontianak",
			"balikpapan":      "Balikpapan",
			"banjarmasin":     "Banjarmasin",
			"manado":          "Manado",
			"pekanbaru":       "Pekanbaru",
			"padang":          "Padang",
			"batam":           "Batam",
			"samarinda":       "Samarinda",
		},
		cityWords: []string{"kota", "kabupaten"},
	}
}

// NewGlobal returns the generic fallback extractor with an empty alias
// table, used for every country without a specialized variant.
func NewGlobal() *Extractor {
	return &Extractor{
		prefixes: []string{
			"living in", "based in", "from", "in", "at", "currently in",
			"located in", "residing in", "home:", "location:", "here:",
		},
		aliases: map[string]string{},
	}
}

// City extracts a canonical city name from a free-text location string.
// It handles forms like "Jakarta, Indonesia", "Kota Bandung, Jawa Barat",
// "📍 Yogyakarta" and "Tinggal di Medan". The boolean is false when
// nothing usable remains after cleaning.
func (e *Extractor) City(raw string) (string, bool) {
	loc := strings.TrimSpace(raw)
	if loc == "" {
		return "", false
	}

	loc = strings.TrimSpace(leadingSymbols.ReplaceAllString(loc, ""))

	// Strip one locale prefix, first match wins. Word prefixes must end
	// at a word boundary so "Indonesia" keeps its leading "in".
	lower := strings.ToLower(loc)
	for _, p := range e.prefixes {
		if !strings.HasPrefix(lower, p) {
			continue
		}
		rest := loc[len(p):]
		if !strings.HasSuffix(p, ":") && rest != "" && rest[0] != ' ' {
			continue
		}
		loc = strings.TrimSpace(rest)
		break
	}

	clean := strings.ToLower(strings.TrimSpace(loc))
	if city, ok := e.aliases[clean]; ok {
		return city, true
	}

	for _, sep := range separators {
		if !strings.Contains(loc, sep) {
			continue
		}
		candidate := strings.ToLower(strings.TrimSpace(strings.SplitN(loc, sep, 2)[0]))
		if city, ok := e.aliases[candidate]; ok {
			return city, true
		}
		return e.finish(candidate)
	}

	// No separator anywhere: clean up the whole string
	return e.finish(clean)
}

// finish strips punctuation from a lower-cased candidate, rejects segments
// that are too short or purely numeric, drops a leading administrative
// word and title-cases the result.
func (e *Extractor) finish(candidate string) (string, bool) {
	candidate = strings.TrimSpace(nonWord.ReplaceAllString(candidate, ""))
	if runeLen(candidate) <= 2 || isDigits(candidate) {
		return "", false
	}
	for _, w := range e.cityWords {
		if strings.HasPrefix(candidate, w+" ") {
			candidate = strings.TrimSpace(candidate[len(w)+1:])
			break
		}
	}
	return titleCaser.String(candidate), true
}

func runeLen(s string) int {
	return len([]rune(s))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

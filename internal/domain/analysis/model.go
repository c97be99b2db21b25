package analysis

import (
	"time"
)

// Sentiment label thresholds. Polarity within [-0.1, 0.1] is neutral.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// SentimentLabel converts a polarity score in [-1, 1] to a three-way label
func SentimentLabel(polarity float64) string {
	switch {
	case polarity > PositiveThreshold:
		return "positive"
	case polarity < NegativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// LocationCount is one ranked entry in Summary.TopLocations
type LocationCount struct {
	LocationName  string `json:"location_name"`
	TotalMentions int    `json:"total_mentions"`
}

// KeywordCount is one ranked entry in Summary.TopKeywords
type KeywordCount struct {
	Text     string `json:"text"`
	Mentions int    `json:"mentions"`
}

// Mention is one recent post with its per-post sentiment
type Mention struct {
	Platform       string    `json:"platform"`
	Text           string    `json:"text"`
	Time           time.Time `json:"time"`
	Username       string    `json:"username"`
	Sentiment      string    `json:"sentiment"`
	SentimentScore float64   `json:"sentiment_score"`
}

// Influencer is one ranked author with aggregated sentiment over their posts
type Influencer struct {
	Username       string  `json:"username"`
	Followers      int     `json:"followers"`
	Sentiment      string  `json:"sentiment"`
	SentimentScore float64 `json:"sentiment_score"`
	TotalPosts     int     `json:"total_posts"`
}

// Summary is the aggregated result for one query on one platform, or the
// combined result across platforms. It is immutable once produced; when
// Error is set every count is zero and every list empty.
type Summary struct {
	TotalMentions            int                `json:"total_mentions"`
	PositiveSentimentPercent float64            `json:"positive_sentiment_percent"`
	AvgEngagementRate        float64            `json:"avg_engagement_rate"`
	EstimatedReach           int                `json:"estimated_reach"`
	SentimentTrend           map[string]float64 `json:"sentiment_trend"`
	TopLocations             []LocationCount    `json:"top_locations"`
	TopKeywords              []KeywordCount     `json:"top_keywords"`
	RecentMentions           []Mention          `json:"recent_mentions"`
	TopInfluencers           []Influencer       `json:"top_influencers"`
	Error                    string             `json:"error,omitempty"`
}

// ErrorSummary returns a zero-valued Summary carrying a fetch failure message
func ErrorSummary(msg string) Summary {
	s := ZeroSummary()
	s.Error = msg
	return s
}

// ZeroSummary returns an empty, well-formed Summary with no error set
func ZeroSummary() Summary {
	return Summary{
		SentimentTrend: map[string]float64{},
		TopLocations:   []LocationCount{},
		TopKeywords:    []KeywordCount{},
		RecentMentions: []Mention{},
		TopInfluencers: []Influencer{},
	}
}

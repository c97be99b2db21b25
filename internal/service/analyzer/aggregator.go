package analyzer

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/analysis"
	"github.com/haritsbachtiar/social-media-crawling/internal/domain/post"
	"github.com/haritsbachtiar/social-media-crawling/internal/service/geo"
	"github.com/haritsbachtiar/social-media-crawling/internal/service/keywords"
)

// Config contains configuration for the aggregator
type Config struct {
	// MinInfluencerFollowers drops authors at or below this follower count
	// from the top-influencers ranking; 0 keeps everyone.
	MinInfluencerFollowers int
}

// Aggregator implements the analysis.Analyzer interface: a synchronous,
// single-threaded reduce over an in-memory batch. Instances hold no state
// between calls; one Aggregate call must not share its batch with another
// running concurrently, nothing else needs locking.
type Aggregator struct {
	scorer     analysis.Scorer
	indoCities *geo.Extractor
	anyCities  *geo.Extractor
	tokenizer  *keywords.Extractor
	config     Config
	log        *logrus.Logger
	now        func() time.Time
}

// NewAggregator creates an aggregator around the given sentiment scorer
func NewAggregator(scorer analysis.Scorer, config Config, log *logrus.Logger) *Aggregator {
	return &Aggregator{
		scorer:     scorer,
		indoCities: geo.NewIndonesian(),
		anyCities:  geo.NewGlobal(),
		tokenizer:  keywords.New(),
		config:     config,
		log:        log,
		now:        time.Now,
	}
}

// trendBucket accumulates polarity per calendar day
type trendBucket struct {
	sum   float64
	count int
}

// authorStats is the per-author aggregate built during the reduce
type authorStats struct {
	username   string
	sentiments []float64
	followers  int
	postCount  int
}

// reduceState holds the running tallies for one Aggregate call
type reduceState struct {
	now           time.Time
	positive      int
	engagements   []float64
	reach         map[string]struct{}
	trend         map[string]*trendBucket
	cityCounts    *counter
	keywordCounts *counter
	mentions      []analysis.Mention
	authors       map[string]*authorStats
	authorOrder   []string
}

func newReduceState(now time.Time) *reduceState {
	return &reduceState{
		now:           now,
		reach:         map[string]struct{}{},
		trend:         map[string]*trendBucket{},
		cityCounts:    newCounter(),
		keywordCounts: newCounter(),
		authors:       map[string]*authorStats{},
	}
}

// Aggregate reduces a batch of normalized posts plus its side tables into
// a Summary. A malformed post is logged and skipped without aborting the
// batch; an empty batch produces a valid zero Summary with no error.
func (a *Aggregator) Aggregate(batch *post.Batch) analysis.Summary {
	summary := analysis.ZeroSummary()
	if batch == nil || len(batch.Posts) == 0 {
		return summary
	}

	st := newReduceState(a.now())
	for i := range batch.Posts {
		if err := a.reducePost(&batch.Posts[i], batch, st); err != nil {
			a.log.WithFields(logrus.Fields{
				"platform": batch.Platform,
				"index":    i,
			}).WithError(err).Warn("skipping post")
		}
	}

	total := len(batch.Posts)
	summary.TotalMentions = total
	summary.PositiveSentimentPercent = round2(float64(st.positive) / float64(total) * 100)
	if len(st.engagements) > 0 {
		var sum float64
		for _, e := range st.engagements {
			sum += e
		}
		summary.AvgEngagementRate = round4(sum / float64(len(st.engagements)))
	}
	summary.EstimatedReach = len(st.reach)

	for date, bucket := range st.trend {
		summary.SentimentTrend[date] = round3(bucket.sum / float64(bucket.count))
	}

	for _, t := range st.cityCounts.top(5) {
		summary.TopLocations = append(summary.TopLocations, analysis.LocationCount{
			LocationName:  t.key,
			TotalMentions: t.count,
		})
	}
	for _, t := range st.keywordCounts.top(10) {
		summary.TopKeywords = append(summary.TopKeywords, analysis.KeywordCount{
			Text:     t.key,
			Mentions: t.count,
		})
	}

	summary.TopInfluencers = a.rankInfluencers(st)

	sort.SliceStable(st.mentions, func(i, j int) bool {
		return st.mentions[i].Time.After(st.mentions[j].Time)
	})
	if len(st.mentions) > 5 {
		st.mentions = st.mentions[:5]
	}
	summary.RecentMentions = append(summary.RecentMentions, st.mentions...)

	return summary
}

// reducePost folds one post into the running tallies. Any panic caused by
// unexpected input shape is converted into an error so the caller can
// skip the post and continue with the rest of the batch.
func (a *Aggregator) reducePost(p *post.Post, batch *post.Batch, st *reduceState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing post: %v", r)
		}
	}()

	polarity := a.scorer.Score(p.Text)
	if polarity > 0 {
		st.positive++
	}

	// A post without a usable timestamp still counts under today's date
	ts := resolveTimestamp(p.CreatedAt, st.now)
	date := ts.Format("2006-01-02")
	bucket := st.trend[date]
	if bucket == nil {
		bucket = &trendBucket{}
		st.trend[date] = bucket
	}
	bucket.sum += polarity
	bucket.count++

	author, hasAuthor := batch.Authors[p.AuthorID]
	username := p.Username
	if hasAuthor && author.Username != "" {
		username = author.Username
	}
	if username != "" && !strings.HasPrefix(username, "@") {
		username = "@" + username
	}

	followers := p.Followers
	if hasAuthor {
		followers = author.Followers
	}

	if key := authorKey(p); key != "" {
		st.reach[key] = struct{}{}

		stats := st.authors[key]
		if stats == nil {
			stats = &authorStats{}
			st.authors[key] = stats
			st.authorOrder = append(st.authorOrder, key)
		}
		stats.sentiments = append(stats.sentiments, polarity)
		stats.postCount++
		if followers > stats.followers {
			stats.followers = followers
		}
		if username != "" {
			stats.username = username
		}
	}

	// An estimated follower count ranks influencers but is not a known
	// audience; the rate falls back to the interaction-based estimate.
	audience := followers
	if !hasAuthor && p.FollowersEstimated {
		audience = 0
	}
	if rate, ok := engagementRate(p.Engagement, audience); ok {
		st.engagements = append(st.engagements, rate)
	}

	if city, ok := a.resolveCity(p, batch); ok {
		st.cityCounts.add(city, 1)
	}

	a.tallyKeywords(p, st)

	if username != "" {
		st.mentions = append(st.mentions, analysis.Mention{
			Platform:       string(p.Platform),
			Text:           mentionText(p.Text),
			Time:           ts,
			Username:       username,
			Sentiment:      analysis.SentimentLabel(polarity),
			SentimentScore: round3(polarity),
		})
	}

	return nil
}

// tallyKeywords updates the keyword tally for one post. Structured
// hashtags weigh 3, hashtags parsed out of the text weigh 2, plain
// content words weigh 1.
func (a *Aggregator) tallyKeywords(p *post.Post, st *reduceState) {
	for i, tag := range p.Hashtags {
		if i >= 10 {
			break
		}
		tag = strings.ToLower(tag)
		if len([]rune(tag)) > 2 {
			st.keywordCounts.add(tag, 3)
		}
	}
	for i, tag := range a.tokenizer.Hashtags(p.Text) {
		if i >= 5 {
			break
		}
		if len([]rune(tag)) > 2 {
			st.keywordCounts.add(tag, 2)
		}
	}
	for _, word := range a.tokenizer.Keywords(p.Text) {
		st.keywordCounts.add(word, 1)
	}
}

// resolveCity picks the post's location: a geo-tagged place first, run
// through the extractor variant for its country, then the free-text
// profile location with the Indonesian variant tried before the global
// one.
func (a *Aggregator) resolveCity(p *post.Post, batch *post.Batch) (string, bool) {
	if p.PlaceID != "" {
		if place, ok := batch.Places[p.PlaceID]; ok && place.FullName != "" {
			if isIndonesia(place.Country) {
				if city, ok := a.indoCities.City(place.FullName); ok {
					return city, true
				}
			}
			return a.anyCities.City(place.FullName)
		}
	}

	profile := p.ProfileLocation
	if profile == "" {
		if author, ok := batch.Authors[p.AuthorID]; ok {
			profile = author.Location
		}
	}
	if profile == "" {
		return "", false
	}
	if city, ok := a.indoCities.City(profile); ok {
		return city, true
	}
	return a.anyCities.City(profile)
}

// rankInfluencers turns the author aggregates into the top-5 ranking:
// followers descending, stable, first-seen order preserved on ties.
func (a *Aggregator) rankInfluencers(st *reduceState) []analysis.Influencer {
	influencers := []analysis.Influencer{}
	for _, key := range st.authorOrder {
		stats := st.authors[key]
		if stats.postCount == 0 || stats.username == "" {
			continue
		}
		if a.config.MinInfluencerFollowers > 0 && stats.followers <= a.config.MinInfluencerFollowers {
			continue
		}
		var sum float64
		for _, s := range stats.sentiments {
			sum += s
		}
		avg := sum / float64(len(stats.sentiments))
		influencers = append(influencers, analysis.Influencer{
			Username:       stats.username,
			Followers:      stats.followers,
			Sentiment:      analysis.SentimentLabel(avg),
			SentimentScore: round3(avg),
			TotalPosts:     stats.postCount,
		})
	}
	sort.SliceStable(influencers, func(i, j int) bool {
		return influencers[i].Followers > influencers[j].Followers
	})
	if len(influencers) > 5 {
		influencers = influencers[:5]
	}
	return influencers
}

// authorKey resolves the platform-scoped author identity: usernames for
// Instagram-like sources, author IDs for Twitter-like ones. The two key
// spaces are never merged inside one platform's aggregation.
func authorKey(p *post.Post) string {
	if p.Platform == post.PlatformInstagram {
		if p.Username != "" {
			return p.Username
		}
		return p.AuthorID
	}
	if p.AuthorID != "" {
		return p.AuthorID
	}
	return p.Username
}

// engagementRate converts a post's interaction counts into a percentage
// of audience size. Without a known follower count the audience is
// estimated from likes so the unit stays a percentage either way; posts
// with neither followers nor interactions contribute nothing.
func engagementRate(e post.Engagement, followers int) (float64, bool) {
	total := e.Total()
	if followers > 0 {
		return float64(total) / float64(followers) * 100, true
	}
	if total == 0 {
		return 0, false
	}
	estimated := e.Likes * 10
	if estimated < 1000 {
		estimated = 1000
	}
	rate := float64(total) / float64(estimated) * 100
	if rate > 100 {
		rate = 100
	}
	return rate, true
}

// resolveTimestamp parses an ISO-8601-ish timestamp. A trailing "Z",
// a "+hh:mm" or "-hh:mm" offset and fractional seconds are dropped, not
// converted. Absent or unparseable values resolve to the aggregation
// wall clock; the post is never dropped.
func resolveTimestamp(raw string, now time.Time) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return now
	}
	s = strings.TrimSuffix(s, "Z")
	// Offsets only appear after the time part, never in the date
	if t := strings.Index(s, "T"); t >= 0 {
		if i := strings.IndexAny(s[t:], "+-"); i >= 0 {
			s = s[:t+i]
		}
	}
	if i := strings.Index(s, "."); i >= 0 {
		s = s[:i]
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t
	}
	return now
}

// mentionText caps the text shown in recent mentions; long captions are
// still tallied in full for keywords and sentiment.
func mentionText(text string) string {
	runes := []rune(text)
	if len(runes) <= 200 {
		return text
	}
	return string(runes[:200]) + "..."
}

func isIndonesia(country string) bool {
	return strings.Contains(strings.ToLower(country), "indonesia")
}

// counter is a frequency tally that remembers first-seen insertion order
// so ranking ties break deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

type tally struct {
	key   string
	count int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string, n int) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// top returns the n highest counts, count descending, insertion order on
// ties (stable sort, never an undefined map order).
func (c *counter) top(n int) []tally {
	entries := make([]tally, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, tally{key: key, count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Rounding happens only at the output step, never mid-computation

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

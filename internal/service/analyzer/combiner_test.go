package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/analysis"
)

func summaryFixture(total int, positivePct, avgEngagement float64, reach int) analysis.Summary {
	s := analysis.ZeroSummary()
	s.TotalMentions = total
	s.PositiveSentimentPercent = positivePct
	s.AvgEngagementRate = avgEngagement
	s.EstimatedReach = reach
	return s
}

func TestCombine(t *testing.T) {
	a := newTestAggregator(mapScorer{})

	s1 := summaryFixture(10, 40, 2.0, 8)
	s1.SentimentTrend = map[string]float64{"2024-05-01": 0.2}
	s1.TopLocations = []analysis.LocationCount{{LocationName: "Jakarta", TotalMentions: 5}}
	s1.TopKeywords = []analysis.KeywordCount{{Text: "produk", Mentions: 6}}
	s1.TopInfluencers = []analysis.Influencer{
		{Username: "@alice", Followers: 2000, Sentiment: "positive", SentimentScore: 0.4, TotalPosts: 2},
	}

	s2 := summaryFixture(10, 60, 1.0, 5)
	s2.SentimentTrend = map[string]float64{"2024-05-01": 0.4, "2024-05-02": 0.1}
	s2.TopLocations = []analysis.LocationCount{
		{LocationName: "Bandung", TotalMentions: 3},
		{LocationName: "Jakarta", TotalMentions: 2},
	}
	s2.TopKeywords = []analysis.KeywordCount{{Text: "produk", Mentions: 2}, {Text: "promo", Mentions: 1}}
	s2.TopInfluencers = []analysis.Influencer{
		{Username: "@alice", Followers: 2500, Sentiment: "positive", SentimentScore: 0.3, TotalPosts: 3},
		{Username: "@bob", Followers: 400, Sentiment: "neutral", SentimentScore: 0, TotalPosts: 1},
	}

	combined := a.Combine([]analysis.Summary{s1, s2}, nil)

	require.Empty(t, combined.Error)
	assert.Equal(t, 20, combined.TotalMentions)
	// 4 positive of 10 plus 6 of 10
	assert.Equal(t, 50.0, combined.PositiveSentimentPercent)
	// Mention-weighted: (2.0*10 + 1.0*10) / 20
	assert.Equal(t, 1.5, combined.AvgEngagementRate)
	assert.Equal(t, 13, combined.EstimatedReach)

	assert.Equal(t, map[string]float64{
		"2024-05-01": 0.3,
		"2024-05-02": 0.1,
	}, combined.SentimentTrend)

	assert.Equal(t, []analysis.LocationCount{
		{LocationName: "Jakarta", TotalMentions: 7},
		{LocationName: "Bandung", TotalMentions: 3},
	}, combined.TopLocations)

	assert.Equal(t, []analysis.KeywordCount{
		{Text: "produk", Mentions: 8},
		{Text: "promo", Mentions: 1},
	}, combined.TopKeywords)

	// Duplicate influencers collapse to the entry with more followers
	require.Len(t, combined.TopInfluencers, 2)
	assert.Equal(t, 2500, combined.TopInfluencers[0].Followers)
	assert.Equal(t, "@alice", combined.TopInfluencers[0].Username)
	assert.Equal(t, "@bob", combined.TopInfluencers[1].Username)
}

func TestCombineSingleSummaryIsIdentityOnScalars(t *testing.T) {
	a := newTestAggregator(mapScorer{})

	s := summaryFixture(10, 40, 2.0, 8)
	combined := a.Combine([]analysis.Summary{s}, nil)

	assert.Equal(t, s.TotalMentions, combined.TotalMentions)
	assert.Equal(t, s.PositiveSentimentPercent, combined.PositiveSentimentPercent)
	assert.Equal(t, s.AvgEngagementRate, combined.AvgEngagementRate)
	assert.Equal(t, s.EstimatedReach, combined.EstimatedReach)
}

func TestCombineSkipsErroredSummaries(t *testing.T) {
	a := newTestAggregator(mapScorer{})

	s := summaryFixture(10, 40, 2.0, 8)
	combined := a.Combine([]analysis.Summary{s, analysis.ErrorSummary("instagram: actor timed out")}, nil)

	assert.Empty(t, combined.Error)
	assert.Equal(t, 10, combined.TotalMentions)
	assert.Equal(t, 40.0, combined.PositiveSentimentPercent)
}

func TestCombineAllFailed(t *testing.T) {
	a := newTestAggregator(mapScorer{})

	combined := a.Combine(
		[]analysis.Summary{analysis.ErrorSummary("twitter: rate limited")},
		[]string{"instagram: actor timed out"},
	)

	assert.Equal(t, "instagram: actor timed out; twitter: rate limited", combined.Error)
	assert.Zero(t, combined.TotalMentions)
	assert.Empty(t, combined.RecentMentions)
}

func TestCombineTrendRoundsOnceAtOutput(t *testing.T) {
	a := newTestAggregator(mapScorer{})

	// Three sources sharing one date: rounding each pairwise step would
	// inflate 0.00045 to 0.001, rounding once keeps it at zero
	values := []float64{0.0009, 0.0009, 0}
	summaries := make([]analysis.Summary, 0, len(values))
	for _, v := range values {
		s := summaryFixture(1, 0, 0, 1)
		s.SentimentTrend = map[string]float64{"2024-05-01": v}
		summaries = append(summaries, s)
	}

	combined := a.Combine(summaries, nil)
	assert.Equal(t, map[string]float64{"2024-05-01": 0}, combined.SentimentTrend)
}

func TestCombineMentionsCappedAndSorted(t *testing.T) {
	a := newTestAggregator(mapScorer{})

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s1 := summaryFixture(6, 0, 0, 6)
	s2 := summaryFixture(6, 0, 0, 6)
	for i := 0; i < 6; i++ {
		s1.RecentMentions = append(s1.RecentMentions, analysis.Mention{
			Platform: "twitter", Username: "@a", Time: base.Add(time.Duration(2*i) * time.Hour),
		})
		s2.RecentMentions = append(s2.RecentMentions, analysis.Mention{
			Platform: "instagram", Username: "@b", Time: base.Add(time.Duration(2*i+1) * time.Hour),
		})
	}

	combined := a.Combine([]analysis.Summary{s1, s2}, nil)

	require.Len(t, combined.RecentMentions, 10)
	for i := 1; i < len(combined.RecentMentions); i++ {
		assert.False(t, combined.RecentMentions[i].Time.After(combined.RecentMentions[i-1].Time))
	}
	assert.Equal(t, base.Add(11*time.Hour), combined.RecentMentions[0].Time)
}

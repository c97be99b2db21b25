package analyzer

import (
	"sort"
	"strings"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/analysis"
)

// Combine merges already-computed per-platform summaries into one. Ranked
// lists are re-derived from merged tallies, never concatenated. errs
// carries fetch failure messages for sources that produced no summary;
// summaries carrying their own error contribute only that message. When
// every source failed the result is a zero Summary naming each failure.
func (a *Aggregator) Combine(summaries []analysis.Summary, errs []string) analysis.Summary {
	combined := analysis.ZeroSummary()

	failures := append([]string{}, errs...)
	valid := make([]analysis.Summary, 0, len(summaries))
	for _, s := range summaries {
		if s.Error != "" {
			failures = append(failures, s.Error)
			continue
		}
		valid = append(valid, s)
	}
	if len(valid) == 0 {
		combined.Error = strings.Join(failures, "; ")
		return combined
	}

	var positiveSum, engagementSum float64
	trend := map[string]float64{}
	locations := newCounter()
	words := newCounter()
	influencerIndex := map[string]int{}
	influencers := []analysis.Influencer{}

	for _, s := range valid {
		combined.TotalMentions += s.TotalMentions
		combined.EstimatedReach += s.EstimatedReach

		// Re-derive the implied positive count so the percentage is
		// weighted by each summary's mention count
		positiveSum += s.PositiveSentimentPercent / 100 * float64(s.TotalMentions)
		engagementSum += s.AvgEngagementRate * float64(s.TotalMentions)

		// Dates shared between summaries merge as a pairwise average;
		// with more than two sources on one date this biases toward the
		// later summaries. Rounding waits for the output step.
		for date, value := range s.SentimentTrend {
			if existing, ok := trend[date]; ok {
				trend[date] = (existing + value) / 2
			} else {
				trend[date] = value
			}
		}

		for _, loc := range s.TopLocations {
			locations.add(loc.LocationName, loc.TotalMentions)
		}
		for _, kw := range s.TopKeywords {
			words.add(kw.Text, kw.Mentions)
		}

		combined.RecentMentions = append(combined.RecentMentions, s.RecentMentions...)

		for _, inf := range s.TopInfluencers {
			if i, seen := influencerIndex[inf.Username]; seen {
				if inf.Followers > influencers[i].Followers {
					influencers[i] = inf
				}
				continue
			}
			influencerIndex[inf.Username] = len(influencers)
			influencers = append(influencers, inf)
		}
	}

	if combined.TotalMentions > 0 {
		combined.PositiveSentimentPercent = round2(positiveSum / float64(combined.TotalMentions) * 100)
		combined.AvgEngagementRate = round4(engagementSum / float64(combined.TotalMentions))
	}

	for date, value := range trend {
		combined.SentimentTrend[date] = round3(value)
	}

	for _, t := range locations.top(5) {
		combined.TopLocations = append(combined.TopLocations, analysis.LocationCount{
			LocationName:  t.key,
			TotalMentions: t.count,
		})
	}
	for _, t := range words.top(10) {
		combined.TopKeywords = append(combined.TopKeywords, analysis.KeywordCount{
			Text:     t.key,
			Mentions: t.count,
		})
	}

	sort.SliceStable(combined.RecentMentions, func(i, j int) bool {
		return combined.RecentMentions[i].Time.After(combined.RecentMentions[j].Time)
	})
	if len(combined.RecentMentions) > 10 {
		combined.RecentMentions = combined.RecentMentions[:10]
	}

	sort.SliceStable(influencers, func(i, j int) bool {
		return influencers[i].Followers > influencers[j].Followers
	})
	if len(influencers) > 5 {
		influencers = influencers[:5]
	}
	combined.TopInfluencers = influencers

	return combined
}

package analysis

import (
	"context"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/post"
)

// Scorer maps post text to a signed polarity score in [-1, 1]. A Scorer
// must be a pure function of the text so aggregation stays deterministic;
// any implementation satisfying that contract is interchangeable.
type Scorer interface {
	Score(text string) float64
}

// Analyzer defines the aggregation core consumed by the endpoint layer
type Analyzer interface {
	// Aggregate reduces one fetched batch into a Summary. It never fails:
	// malformed posts are skipped, an empty batch yields a zero Summary.
	Aggregate(batch *post.Batch) Summary

	// Combine merges already-computed per-platform summaries into one,
	// re-ranking rather than concatenating. errs carries fetch failure
	// messages for sources that produced no summary at all.
	Combine(summaries []Summary, errs []string) Summary
}

// Source is a social platform fetch collaborator. Implementations return
// either an error or a batch of normalized posts plus side tables; the
// core never retries a failed fetch.
type Source interface {
	// Platform returns the platform this source fetches from
	Platform() post.Platform

	// Fetch searches recent posts matching the query
	Fetch(ctx context.Context, query string) (*post.Batch, error)
}

package twitter

import (
	gotwitter "github.com/g8rswimmer/go-twitter/v2"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/post"
)

// normalizeBatch maps the raw search response into the common batch
// shape: one normalized Post per tweet plus author/place side tables.
func normalizeBatch(raw *gotwitter.TweetRaw) *post.Batch {
	batch := &post.Batch{
		Platform: post.PlatformTwitter,
		Authors:  map[string]post.Author{},
		Places:   map[string]post.Place{},
	}
	if raw == nil {
		return batch
	}

	if raw.Includes != nil {
		for _, u := range raw.Includes.Users {
			if u == nil {
				continue
			}
			author := post.Author{
				ID:       u.ID,
				Username: u.UserName,
				Location: u.Location,
			}
			if u.PublicMetrics != nil {
				author.Followers = u.PublicMetrics.Followers
			}
			batch.Authors[u.ID] = author
		}
		for _, pl := range raw.Includes.Places {
			if pl == nil {
				continue
			}
			batch.Places[pl.ID] = post.Place{
				Country:   pl.Country,
				FullName:  pl.FullName,
				PlaceType: pl.PlaceType,
			}
		}
	}

	for _, t := range raw.Tweets {
		if t == nil {
			continue
		}
		p := post.Post{
			Platform:  post.PlatformTwitter,
			Text:      t.Text,
			CreatedAt: t.CreatedAt,
			AuthorID:  t.AuthorID,
		}
		if t.PublicMetrics != nil {
			p.Engagement = post.Engagement{
				Likes:    t.PublicMetrics.Likes,
				Comments: t.PublicMetrics.Replies,
				Shares:   t.PublicMetrics.Retweets,
			}
		}
		if t.Geo != nil {
			p.PlaceID = t.Geo.PlaceID
		}
		batch.Posts = append(batch.Posts, p)
	}

	return batch
}

package twitter

import (
	"testing"

	gotwitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/post"
)

func TestNormalizeBatch(t *testing.T) {
	raw := &gotwitter.TweetRaw{
		Tweets: []*gotwitter.TweetObj{
			{
				ID:        "100",
				Text:      "kopi di sini enak banget",
				CreatedAt: "2024-05-01T10:00:00.000Z",
				AuthorID:  "1",
				PublicMetrics: &gotwitter.TweetMetricsObj{
					Likes:    20,
					Replies:  5,
					Retweets: 3,
				},
				Geo: &gotwitter.TweetGeoObj{PlaceID: "p1"},
			},
			{
				ID:       "101",
				Text:     "no metrics on this one",
				AuthorID: "2",
			},
		},
		Includes: &gotwitter.TweetRawIncludes{
			Users: []*gotwitter.UserObj{
				{
					ID:            "1",
					UserName:      "alice",
					Location:      "Jakarta, Indonesia",
					PublicMetrics: &gotwitter.UserMetricsObj{Followers: 2000},
				},
				nil,
			},
			Places: []*gotwitter.PlaceObj{
				{
					ID:        "p1",
					FullName:  "Jakarta, Indonesia",
					Country:   "Indonesia",
					PlaceType: "city",
				},
			},
		},
	}

	batch := normalizeBatch(raw)

	assert.Equal(t, post.PlatformTwitter, batch.Platform)
	require.Len(t, batch.Posts, 2)

	first := batch.Posts[0]
	assert.Equal(t, "kopi di sini enak banget", first.Text)
	assert.Equal(t, "2024-05-01T10:00:00.000Z", first.CreatedAt)
	assert.Equal(t, "1", first.AuthorID)
	assert.Equal(t, post.Engagement{Likes: 20, Comments: 5, Shares: 3}, first.Engagement)
	assert.Equal(t, "p1", first.PlaceID)

	// Missing optional blocks leave zero values rather than panicking
	second := batch.Posts[1]
	assert.Zero(t, second.Engagement.Total())
	assert.Empty(t, second.PlaceID)

	require.Contains(t, batch.Authors, "1")
	assert.Equal(t, "alice", batch.Authors["1"].Username)
	assert.Equal(t, 2000, batch.Authors["1"].Followers)
	assert.Equal(t, "Jakarta, Indonesia", batch.Authors["1"].Location)

	require.Contains(t, batch.Places, "p1")
	assert.Equal(t, "Indonesia", batch.Places["p1"].Country)
}

func TestNormalizeBatchEmpty(t *testing.T) {
	batch := normalizeBatch(nil)
	assert.Equal(t, post.PlatformTwitter, batch.Platform)
	assert.Empty(t, batch.Posts)
	assert.NotNil(t, batch.Authors)
	assert.NotNil(t, batch.Places)

	batch = normalizeBatch(&gotwitter.TweetRaw{})
	assert.Empty(t, batch.Posts)
}

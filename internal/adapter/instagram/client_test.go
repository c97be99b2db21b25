package instagram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/post"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewSourceRequiresToken(t *testing.T) {
	_, err := NewSource(Config{}, testLogger())
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))

		var input runInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "kopi", input.Search)
		assert.Equal(t, "hashtag", input.SearchType)
		assert.Equal(t, "posts", input.ResultsType)
		assert.Equal(t, "7 days", input.OnlyPostsNewerThan)

		w.Write([]byte(`[
			{
				"topPosts": [
					{
						"caption": "Kopi pagi #kopi",
						"ownerUsername": "alice",
						"ownerId": "111",
						"timestamp": "2024-05-01T10:00:00.000Z",
						"likesCount": 100,
						"commentsCount": 10,
						"hashtags": ["kopi"],
						"locationName": "Jakarta, Indonesia"
					}
				],
				"latestPosts": [
					{
						"caption": "Nongkrong sore",
						"ownerUsername": "bob",
						"ownerId": "222",
						"timestamp": "2024-05-02T16:00:00.000Z",
						"likesCount": 0,
						"commentsCount": 2
					}
				]
			}
		]`))
	}))
	defer srv.Close()

	src, err := NewSource(Config{
		Token:        "test-token",
		ActorURL:     srv.URL,
		SearchLimit:  5,
		ResultsLimit: 10,
		NewerThan:    "7 days",
		Timeout:      time.Second,
	}, testLogger())
	require.NoError(t, err)

	batch, err := src.Fetch(context.Background(), "#kopi")
	require.NoError(t, err)

	assert.Equal(t, post.PlatformInstagram, batch.Platform)
	require.Len(t, batch.Posts, 2)

	top := batch.Posts[0]
	assert.Equal(t, "Kopi pagi #kopi", top.Text)
	assert.Equal(t, "alice", top.Username)
	assert.Equal(t, "111", top.AuthorID)
	assert.Equal(t, post.Engagement{Likes: 100, Comments: 10}, top.Engagement)
	assert.Equal(t, "Jakarta, Indonesia", top.ProfileLocation)
	assert.Equal(t, []string{"kopi"}, top.Hashtags)
	// Audience estimated from likes, and flagged as an estimate
	assert.Equal(t, 1500, top.Followers)
	assert.True(t, top.FollowersEstimated)

	latest := batch.Posts[1]
	assert.Equal(t, "bob", latest.Username)
	// No likes means no audience estimate
	assert.Zero(t, latest.Followers)
	assert.False(t, latest.FollowersEstimated)
}

func TestFetchActorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	src, err := NewSource(Config{Token: "test-token", ActorURL: srv.URL, Timeout: time.Second}, testLogger())
	require.NoError(t, err)

	_, err = src.Fetch(context.Background(), "kopi")
	assert.ErrorContains(t, err, "status 402")
}

func TestNormalizeItemsOrdersTopBeforeLatest(t *testing.T) {
	items := []hashtagItem{
		{
			TopPosts:    []rawPost{{Caption: "top-1"}, {Caption: "top-2"}},
			LatestPosts: []rawPost{{Caption: "latest-1"}},
		},
		{
			TopPosts: []rawPost{{Caption: "top-3"}},
		},
	}

	batch := normalizeItems(items)
	require.Len(t, batch.Posts, 4)
	assert.Equal(t, "top-1", batch.Posts[0].Text)
	assert.Equal(t, "top-2", batch.Posts[1].Text)
	assert.Equal(t, "latest-1", batch.Posts[2].Text)
	assert.Equal(t, "top-3", batch.Posts[3].Text)
}

package instagram

import (
	"github.com/haritsbachtiar/social-media-crawling/internal/domain/post"
)

// rawPost is the subset of the scraper's post shape the analyzer needs
type rawPost struct {
	Caption       string   `json:"caption"`
	OwnerUsername string   `json:"ownerUsername"`
	OwnerID       string   `json:"ownerId"`
	Timestamp     string   `json:"timestamp"`
	LikesCount    int      `json:"likesCount"`
	CommentsCount int      `json:"commentsCount"`
	ReshareCount  int      `json:"reshareCount"`
	Hashtags      []string `json:"hashtags"`
	LocationName  string   `json:"locationName"`
}

// normalizeItems flattens the hashtag items (top posts first, then
// latest, matching the scraper's ordering) into the common batch shape.
// Instagram has no author side table; follower counts are estimated from
// likes, a deliberately rough audience proxy.
func normalizeItems(items []hashtagItem) *post.Batch {
	batch := &post.Batch{
		Platform: post.PlatformInstagram,
		Authors:  map[string]post.Author{},
		Places:   map[string]post.Place{},
	}
	for _, item := range items {
		for _, raw := range item.TopPosts {
			batch.Posts = append(batch.Posts, normalizePost(raw))
		}
		for _, raw := range item.LatestPosts {
			batch.Posts = append(batch.Posts, normalizePost(raw))
		}
	}
	return batch
}

func normalizePost(raw rawPost) post.Post {
	p := post.Post{
		Platform:  post.PlatformInstagram,
		Text:      raw.Caption,
		CreatedAt: raw.Timestamp,
		AuthorID:  raw.OwnerID,
		Username:  raw.OwnerUsername,
		Engagement: post.Engagement{
			Likes:    raw.LikesCount,
			Comments: raw.CommentsCount,
			Shares:   raw.ReshareCount,
		},
		ProfileLocation: raw.LocationName,
		Hashtags:        raw.Hashtags,
	}
	if raw.LikesCount > 0 {
		p.Followers = raw.LikesCount * 15
		p.FollowersEstimated = true
	}
	return p
}

package post

// Platform identifies the social network a post came from
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
)

// Engagement holds per-post interaction counts
type Engagement struct {
	Likes    int
	Comments int
	Shares   int
}

// Total returns the combined interaction count
func (e Engagement) Total() int {
	return e.Likes + e.Comments + e.Shares
}

// Post is a normalized social-media item, independent of the source API shape
type Post struct {
	Platform Platform
	Text     string

	// CreatedAt is the raw ISO-8601-ish timestamp from the source API.
	// Empty or unparseable values resolve to the aggregation wall clock.
	CreatedAt string

	AuthorID string
	Username string

	Engagement Engagement

	// Followers is the author's follower count when the source exposes it
	// per post; 0 means unknown.
	Followers int

	// FollowersEstimated marks Followers as an audience estimate derived
	// from interactions rather than a real profile count. Estimates rank
	// influencers but never count as a known audience for engagement rates.
	FollowersEstimated bool

	// PlaceID references the Places side table for geo-tagged posts
	PlaceID string

	// ProfileLocation is free-text location from the post itself
	// (Instagram locationName); used when no geo-tag resolves.
	ProfileLocation string

	// Hashtags holds structured hashtags when the source exposes them
	Hashtags []string
}

// Author is a side-table record keyed by platform-scoped author ID
type Author struct {
	ID        string
	Username  string
	Followers int

	// Location is the free-text location from the author's profile
	Location string
}

// Place is a side-table record resolved from a post's place ID
type Place struct {
	Country   string
	FullName  string
	PlaceType string
}

// Batch bundles one fetch result: normalized posts plus the denormalized
// side tables the source API returned. The maps are read-only once built.
type Batch struct {
	Platform Platform
	Posts    []Post
	Authors  map[string]Author
	Places   map[string]Place
}

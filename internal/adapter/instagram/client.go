package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/post"
)

// DefaultActorURL is the Apify instagram-scraper synchronous run endpoint
const DefaultActorURL = "https://api.apify.com/v2/acts/apify~instagram-scraper/run-sync-get-dataset-items"

// Config contains configuration for the Instagram source
type Config struct {
	Token        string
	ActorURL     string
	SearchLimit  int
	ResultsLimit int
	NewerThan    string
	Timeout      time.Duration
}

// Source fetches Instagram posts for a hashtag through the Apify
// instagram-scraper actor, run synchronously so the dataset items come
// back in the response body.
type Source struct {
	config     Config
	httpClient *http.Client
	log        *logrus.Logger
}

// NewSource creates an Instagram source from an Apify token
func NewSource(cfg Config, log *logrus.Logger) (*Source, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("apify token not configured")
	}
	if cfg.ActorURL == "" {
		cfg.ActorURL = DefaultActorURL
	}
	return &Source{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}, nil
}

// Platform returns the platform this source fetches from
func (s *Source) Platform() post.Platform {
	return post.PlatformInstagram
}

// runInput is the actor input payload
type runInput struct {
	Search             string `json:"search"`
	SearchType         string `json:"searchType"`
	SearchLimit        int    `json:"searchLimit"`
	ResultsType        string `json:"resultsType"`
	ResultsLimit       int    `json:"resultsLimit"`
	OnlyPostsNewerThan string `json:"onlyPostsNewerThan,omitempty"`
	AddParentData      bool   `json:"addParentData"`
}

// hashtagItem is one dataset item; posts are split between the top and
// latest buckets
type hashtagItem struct {
	TopPosts    []rawPost `json:"topPosts"`
	LatestPosts []rawPost `json:"latestPosts"`
}

// Fetch runs a hashtag search for the query and normalizes the scraped
// posts. A leading '#' on the query is tolerated.
func (s *Source) Fetch(ctx context.Context, query string) (*post.Batch, error) {
	fetchID := uuid.New().String()
	s.log.WithFields(logrus.Fields{
		"fetch_id": fetchID,
		"query":    query,
	}).Debug("scraping instagram posts")

	input := runInput{
		Search:             strings.TrimPrefix(query, "#"),
		SearchType:         "hashtag",
		SearchLimit:        s.config.SearchLimit,
		ResultsType:        "posts",
		ResultsLimit:       s.config.ResultsLimit,
		OnlyPostsNewerThan: s.config.NewerThan,
		AddParentData:      false,
	}
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encoding actor input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.ActorURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building actor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	q := req.URL.Query()
	q.Set("token", s.config.Token)
	req.URL.RawQuery = q.Encode()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("running instagram scraper: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("instagram scraper returned status %d", resp.StatusCode)
	}

	var items []hashtagItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding scraper response: %w", err)
	}

	batch := normalizeItems(items)
	s.log.WithFields(logrus.Fields{
		"fetch_id": fetchID,
		"posts":    len(batch.Posts),
	}).Debug("instagram scrape complete")
	return batch, nil
}

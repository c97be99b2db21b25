package twitter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
	gotwitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/post"
)

// Config contains configuration for the Twitter source
type Config struct {
	BearerToken    string
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
	BaseURL        string
	MaxResults     int
	Timeout        time.Duration
}

// Source fetches recent tweets matching a query through the v2 recent
// search endpoint. App-only bearer auth is the default; when consumer
// credentials are configured the underlying client signs requests with
// OAuth1 instead.
type Source struct {
	client     *gotwitter.Client
	maxResults int
	log        *logrus.Logger
}

// bearerAuthorizer adds an app-only bearer token to each request
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// noopAuthorizer is used when the http.Client itself signs requests
type noopAuthorizer struct{}

func (noopAuthorizer) Add(req *http.Request) {}

// NewSource creates a Twitter source from credentials
func NewSource(cfg Config, log *logrus.Logger) (*Source, error) {
	if cfg.BearerToken == "" && cfg.ConsumerKey == "" {
		return nil, fmt.Errorf("twitter credentials not configured")
	}

	var (
		httpClient *http.Client
		authorizer gotwitter.Authorizer
	)
	if cfg.ConsumerKey != "" {
		oauthConfig := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
		token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
		httpClient = oauthConfig.Client(oauth1.NoContext, token)
		httpClient.Timeout = cfg.Timeout
		authorizer = noopAuthorizer{}
	} else {
		httpClient = &http.Client{Timeout: cfg.Timeout}
		authorizer = bearerAuthorizer{token: cfg.BearerToken}
	}

	return &Source{
		client: &gotwitter.Client{
			Authorizer: authorizer,
			Client:     httpClient,
			Host:       cfg.BaseURL,
		},
		maxResults: cfg.MaxResults,
		log:        log,
	}, nil
}

// Platform returns the platform this source fetches from
func (s *Source) Platform() post.Platform {
	return post.PlatformTwitter
}

// Fetch searches recent tweets for the query, expanding authors and
// geo-tagged places into side tables. It never retries; the caller turns
// a failure into an error Summary.
func (s *Source) Fetch(ctx context.Context, query string) (*post.Batch, error) {
	fetchID := uuid.New().String()
	s.log.WithFields(logrus.Fields{
		"fetch_id": fetchID,
		"query":    query,
	}).Debug("searching recent tweets")

	opts := gotwitter.TweetRecentSearchOpts{
		MaxResults: s.maxResults,
		TweetFields: []gotwitter.TweetField{
			gotwitter.TweetFieldCreatedAt,
			gotwitter.TweetFieldPublicMetrics,
			gotwitter.TweetFieldAuthorID,
			gotwitter.TweetFieldGeo,
		},
		Expansions: []gotwitter.Expansion{
			gotwitter.ExpansionAuthorID,
			gotwitter.ExpansionGeoPlaceID,
		},
		UserFields: []gotwitter.UserField{
			gotwitter.UserFieldUserName,
			gotwitter.UserFieldPublicMetrics,
			gotwitter.UserFieldVerified,
			gotwitter.UserFieldLocation,
		},
		PlaceFields: []gotwitter.PlaceField{
			gotwitter.PlaceFieldFullName,
			gotwitter.PlaceFieldCountry,
			gotwitter.PlaceFieldPlaceType,
		},
	}

	res, err := s.client.TweetRecentSearch(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching recent tweets: %w", err)
	}

	batch := normalizeBatch(res.Raw)
	s.log.WithFields(logrus.Fields{
		"fetch_id": fetchID,
		"tweets":   len(batch.Posts),
	}).Debug("recent tweet search complete")
	return batch, nil
}

package sentiment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/analysis"
)

// RemoteConfig contains configuration for the model-backed scorer
type RemoteConfig struct {
	URL     string
	Timeout time.Duration
}

// Remote scores text against a sentiment model served over HTTP (an
// IndoBERT classifier sidecar). When the model service is unreachable it
// falls back to the lexicon scorer for that call; the fallback is logged,
// and makes this scorer only as deterministic as the service's uptime.
type Remote struct {
	url        string
	httpClient *http.Client
	fallback   analysis.Scorer
	log        *logrus.Logger
}

// NewRemote creates a model-backed scorer with a lexicon fallback
func NewRemote(cfg RemoteConfig, fallback analysis.Scorer, log *logrus.Logger) *Remote {
	return &Remote{
		url:      cfg.URL,
		fallback: fallback,
		log:      log,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

// Score returns the model's polarity for text, clamped to [-1, 1]
func (r *Remote) Score(text string) float64 {
	cleaned := joinNegations(Normalize(text))
	if cleaned == "" {
		return 0
	}

	score, err := r.query(cleaned)
	if err != nil {
		r.log.WithError(err).Warn("sentiment model unavailable, using lexicon fallback")
		return r.fallback.Score(text)
	}
	return clamp(score)
}

func (r *Remote) query(text string) (float64, error) {
	body, err := json.Marshal(scoreRequest{Text: text})
	if err != nil {
		return 0, fmt.Errorf("encoding score request: %w", err)
	}

	resp, err := r.httpClient.Post(r.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("calling sentiment model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("sentiment model returned status %d", resp.StatusCode)
	}

	var parsed scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decoding score response: %w", err)
	}
	return parsed.Score, nil
}

func clamp(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

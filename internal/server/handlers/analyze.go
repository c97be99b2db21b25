package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/haritsbachtiar/social-media-crawling/internal/domain/analysis"
	"github.com/haritsbachtiar/social-media-crawling/internal/domain/post"
)

// PlatformAll selects every configured source and combines the results
const PlatformAll = "all"

// AnalyzeResponse is the endpoint payload wrapping one analysis result
type AnalyzeResponse struct {
	Query    string           `json:"query"`
	Analysis analysis.Summary `json:"analysis"`
	Status   string           `json:"status"`
}

// AnalyzeHandler handles analysis HTTP requests
type AnalyzeHandler struct {
	analyzer       analysis.Analyzer
	sources        []analysis.Source
	minQueryLength int
	log            *logrus.Logger
}

// NewAnalyzeHandler creates a new analyze handler over the configured
// platform sources
func NewAnalyzeHandler(
	analyzer analysis.Analyzer,
	sources []analysis.Source,
	minQueryLength int,
	log *logrus.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:       analyzer,
		sources:        sources,
		minQueryLength: minQueryLength,
		log:            log,
	}
}

// Analyze fetches recent posts for a query on the requested platform(s)
// and returns the aggregated summary
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if utf8.RuneCountInString(query) < h.minQueryLength {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("query must be at least %d characters long", h.minQueryLength), nil)
		return
	}

	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = string(post.PlatformTwitter)
	}

	selected := h.selectSources(platform)
	if len(selected) == 0 {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("unsupported or unconfigured platform: %s", platform), nil)
		return
	}

	// Each platform fetches and aggregates independently; aggregation
	// shares nothing across goroutines beyond its own slot.
	summaries := make([]analysis.Summary, len(selected))
	var wg sync.WaitGroup
	for i, src := range selected {
		wg.Add(1)
		go func(i int, src analysis.Source) {
			defer wg.Done()
			batch, err := src.Fetch(r.Context(), query)
			if err != nil {
				h.log.WithFields(logrus.Fields{
					"platform": src.Platform(),
					"query":    query,
				}).WithError(err).Warn("fetch failed")
				summaries[i] = analysis.ErrorSummary(fmt.Sprintf("%s: %v", src.Platform(), err))
				return
			}
			summaries[i] = h.analyzer.Aggregate(batch)
		}(i, src)
	}
	wg.Wait()

	var result analysis.Summary
	if len(selected) == 1 {
		result = summaries[0]
	} else {
		result = h.analyzer.Combine(summaries, nil)
	}

	if result.Error != "" {
		respondWithError(w, http.StatusInternalServerError,
			fmt.Sprintf("analysis failed: %s", result.Error), nil)
		return
	}

	respondWithJSON(w, http.StatusOK, AnalyzeResponse{
		Query:    query,
		Analysis: result,
		Status:   "success",
	})
}

// selectSources resolves the platform query parameter against the
// configured sources
func (h *AnalyzeHandler) selectSources(platform string) []analysis.Source {
	if platform == PlatformAll {
		return h.sources
	}
	for _, src := range h.sources {
		if string(src.Platform()) == platform {
			return []analysis.Source{src}
		}
	}
	return nil
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil {
		response["details"] = err.Error()
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}

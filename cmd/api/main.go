// cmd/api/main.go

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/haritsbachtiar/social-media-crawling/internal/adapter/instagram"
	"github.com/haritsbachtiar/social-media-crawling/internal/adapter/twitter"
	"github.com/haritsbachtiar/social-media-crawling/internal/config"
	"github.com/haritsbachtiar/social-media-crawling/internal/domain/analysis"
	"github.com/haritsbachtiar/social-media-crawling/internal/server"
	"github.com/haritsbachtiar/social-media-crawling/internal/server/handlers"
	"github.com/haritsbachtiar/social-media-crawling/internal/service/analyzer"
	"github.com/haritsbachtiar/social-media-crawling/internal/service/sentiment"
)

func main() {
	// Load .env if present; real deployments set variables directly
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.Environment == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize sentiment scorer
	scorer := buildScorer(cfg.Sentiment, log)

	// Initialize platform sources
	sources := buildSources(cfg, log)
	if len(sources) == 0 {
		log.Fatal("No platform sources configured; set TWITTER_BEARER_TOKEN or APIFY_TOKEN")
	}

	// Initialize analyzer
	agg := analyzer.NewAggregator(scorer, analyzer.Config{
		MinInfluencerFollowers: cfg.Analysis.MinInfluencerFollowers,
	}, log)

	// Initialize HTTP server
	analyzeHandler := handlers.NewAnalyzeHandler(agg, sources, cfg.Server.MinQueryLength, log)
	httpServer := server.NewServer(cfg.Server, analyzeHandler)

	// Start HTTP server
	go func() {
		log.WithFields(logrus.Fields{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		}).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}

	log.Info("Shutdown complete")
}

// buildScorer selects the sentiment backend. The remote backend always
// keeps the lexicon as its fallback.
func buildScorer(cfg config.SentimentConfig, log *logrus.Logger) analysis.Scorer {
	lexicon := sentiment.NewLexicon()
	if cfg.Backend == config.SentimentRemote {
		log.WithField("url", cfg.ModelURL).Info("Using remote sentiment backend")
		return sentiment.NewRemote(sentiment.RemoteConfig{
			URL:     cfg.ModelURL,
			Timeout: cfg.Timeout,
		}, lexicon, log)
	}
	return lexicon
}

// buildSources creates a source per platform that has credentials
// configured; missing credentials skip the platform with a warning
func buildSources(cfg config.Config, log *logrus.Logger) []analysis.Source {
	var sources []analysis.Source

	twitterSource, err := twitter.NewSource(twitter.Config{
		BearerToken:    cfg.Twitter.BearerToken,
		ConsumerKey:    cfg.Twitter.ConsumerKey,
		ConsumerSecret: cfg.Twitter.ConsumerSecret,
		AccessToken:    cfg.Twitter.AccessToken,
		AccessSecret:   cfg.Twitter.AccessSecret,
		BaseURL:        cfg.Twitter.BaseURL,
		MaxResults:     cfg.Twitter.MaxResults,
		Timeout:        cfg.Twitter.Timeout,
	}, log)
	if err != nil {
		log.WithError(err).Warn("Twitter source disabled")
	} else {
		sources = append(sources, twitterSource)
	}

	instagramSource, err := instagram.NewSource(instagram.Config{
		Token:        cfg.Instagram.Token,
		ActorURL:     cfg.Instagram.ActorURL,
		SearchLimit:  cfg.Instagram.SearchLimit,
		ResultsLimit: cfg.Instagram.ResultsLimit,
		NewerThan:    cfg.Instagram.NewerThan,
		Timeout:      cfg.Instagram.Timeout,
	}, log)
	if err != nil {
		log.WithError(err).Warn("Instagram source disabled")
	} else {
		sources = append(sources, instagramSource)
	}

	return sources
}

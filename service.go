package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"

	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"ewintr.nl/vidsum/auth"
	"ewintr.nl/vidsum/handler"
	"ewintr.nl/vidsum/storage"
	"ewintr.nl/vidsum/summarize"
)

func main() {

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr))

	postgres, err := storage.NewPostgres(storage.PostgresInfo{
		Host:     getParam("POSTGRES_HOST", "localhost"),
		Port:     getParam("POSTGRES_PORT", "5432"),
		User:     getParam("POSTGRES_USER", "vidsum"),
		Password: getParam("POSTGRES_PASSWORD", "vidsum"),
		Database: getParam("POSTGRES_DB", "vidsum"),
	})
	if err != nil {
		logger.Error("unable to connect to postgres", err)
		os.Exit(1)
	}
	summaryRepo := storage.NewPostgresSummaryRepository(postgres)

	var vecRepo storage.SummaryVecRepository = storage.NewNopSummaryVecRepository()
	if weaviateHost := getParam("WEAVIATE_HOST", ""); weaviateHost != "" {
		weaviate, err := storage.NewWeaviate(weaviateHost, getParam("WEAVIATE_APIKEY", ""), getParam("OPENAI_API_KEY", ""))
		if err != nil {
			logger.Error("unable to create weaviate client", err)
			os.Exit(1)
		}
		if err := weaviate.EnsureSchema(ctx); err != nil {
			logger.Error("unable to ensure weaviate schema", err)
			os.Exit(1)
		}
		vecRepo = weaviate
	}

	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(getParam("YOUTUBE_API_KEY", "")))
	if err != nil {
		logger.Error("unable to create youtube service", err)
		os.Exit(1)
	}
	resolver := summarize.NewYoutube(ytClient, summarize.NewInnerTube())
	extractor := summarize.NewExtractor(resolver, summarize.NewTimedTextFetcher())

	provider := getParam("SUMMARY_PROVIDER", "gemini")
	apiKey := getParam("GEMINI_API_KEY", "")
	if provider == "openai" {
		apiKey = getParam("OPENAI_API_KEY", "")
	}
	generator, err := summarize.NewGenerator(ctx, provider, apiKey)
	if err != nil {
		logger.Error("unable to create summary generator", err)
		os.Exit(1)
	}
	pipeline := summarize.NewPipeline(extractor, generator)

	supabase := auth.NewSupabase(getParam("SUPABASE_URL", ""), getParam("SUPABASE_KEY", ""))

	summaryAPI := handler.NewSummaryAPI(summaryRepo, vecRepo, pipeline, supabase, logger)
	authAPI := handler.NewAuthAPI(supabase, logger)
	server := handler.NewServer(summaryAPI, authAPI, getParam("CORS_ORIGIN", ""), logger)

	port, err := strconv.Atoi(getParam("API_PORT", "8080"))
	if err != nil {
		logger.Error("invalid port", err)
		os.Exit(1)
	}
	go http.ListenAndServe(fmt.Sprintf(":%d", port), server)
	logger.Info("http server started", "port", port)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done

	logger.Info("service stopped")
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}

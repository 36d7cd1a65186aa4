package main

// #region imports
import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/factfence/rag-controller/internal/audit"
	"github.com/factfence/rag-controller/internal/config"
	"github.com/factfence/rag-controller/internal/engine"
	"github.com/factfence/rag-controller/internal/llm"
	"github.com/factfence/rag-controller/internal/server"
	"github.com/factfence/rag-controller/internal/vectorstore"
)

// #endregion

// #region main
func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")

	embed, err := vectorstore.NewEmbedding(
		cfg.VectorDB.EmbeddingProvider, cfg.VectorDB.EmbeddingModel,
		apiKey, cfg.VectorDB.OllamaBaseURL,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build embedding function")
	}

	store, err := vectorstore.Open(cfg.VectorDB.Path, embed)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open vector store")
	}
	facts, external := store.Counts()
	log.Info().Int("facts", facts).Int("external", external).Msg("vector store ready")

	generator, err := llm.New(llm.Options{
		APIKey:      apiKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build llm client")
	}

	var recorder engine.DecisionRecorder
	if cfg.Audit.Enabled {
		auditLog, err := audit.Open(cfg.Audit.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open audit log")
		}
		defer auditLog.Close()
		recorder = auditLog
	}

	eng := engine.New(cfg.EngineConfig(), store, generator, recorder, log.Logger)
	srv := server.New(eng, store, cfg.Server, log.Logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-done
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// #endregion main

package main

// #region imports
import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/factfence/rag-controller/internal/config"
	"github.com/factfence/rag-controller/internal/ingest"
	"github.com/factfence/rag-controller/internal/vectorstore"
)

// #endregion

// #region main

// Ingest processes the facts and external corpus files into the vector
// database. Run once before serving, and again whenever the source files
// change.
func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	chunker := ingest.DefaultChunkerConfig()

	factsChunks, err := ingest.LoadFacts(cfg.Data.FactsFile, chunker)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load facts corpus")
	}
	externalChunks, err := ingest.LoadExternal(cfg.Data.ExternalFile, chunker)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load external corpus")
	}

	embed, err := vectorstore.NewEmbedding(
		cfg.VectorDB.EmbeddingProvider, cfg.VectorDB.EmbeddingModel,
		os.Getenv("OPENAI_API_KEY"), cfg.VectorDB.OllamaBaseURL,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build embedding function")
	}

	store, err := vectorstore.Open(cfg.VectorDB.Path, embed)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open vector store")
	}

	ctx := context.Background()
	if err := store.AddChunks(ctx, factsChunks); err != nil {
		log.Fatal().Err(err).Msg("failed to index facts corpus")
	}
	if err := store.AddChunks(ctx, externalChunks); err != nil {
		log.Fatal().Err(err).Msg("failed to index external corpus")
	}

	log.Info().
		Int("facts_chunks", len(factsChunks)).
		Int("external_chunks", len(externalChunks)).
		Str("db", cfg.VectorDB.Path).
		Msg("ingestion complete")
}

// #endregion main

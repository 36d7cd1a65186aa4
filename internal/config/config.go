// Package config loads application settings from an optional YAML file
// with environment-variable overrides.
package config

// #region imports
import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/factfence/rag-controller/internal/engine"
)

// #endregion

// #region config-types

// Config is the full application configuration.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	VectorDB   VectorDBConfig  `yaml:"vector_db"`
	LLM        LLMConfig       `yaml:"llm"`
	Guardrails GuardrailConfig `yaml:"guardrails"`
	Audit      AuditConfig     `yaml:"audit"`
	Data       DataConfig      `yaml:"data"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// VectorDBConfig holds the embedded vector database settings.
type VectorDBConfig struct {
	Path              string `yaml:"path"`
	EmbeddingProvider string `yaml:"embedding_provider"` // openai | ollama
	EmbeddingModel    string `yaml:"embedding_model"`
	OllamaBaseURL     string `yaml:"ollama_base_url"`
}

// LLMConfig holds generator settings. The API key is env-only
// (OPENAI_API_KEY), never stored in the file.
type LLMConfig struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"` // empty = api.openai.com
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// GuardrailConfig mirrors the engine's rule tables and thresholds.
type GuardrailConfig struct {
	SensitiveKeywords []string `yaml:"sensitive_keywords"`
	OverridePhrases   []string `yaml:"override_phrases"`
	MinScore          float32  `yaml:"min_score"`
	ConfidenceScore   float32  `yaml:"confidence_score"`
	FactsTopK         int      `yaml:"facts_top_k"`
	ExternalTopK      int      `yaml:"external_top_k"`
	MaxFactsChunks    int      `yaml:"max_facts_chunks"`
	MaxExternalChunks int      `yaml:"max_external_chunks"`
	ContextBudget     int      `yaml:"context_budget"`
}

// AuditConfig holds decision-log settings.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// DataConfig holds corpus source file paths for ingestion.
type DataConfig struct {
	FactsFile    string `yaml:"facts_file"`
	ExternalFile string `yaml:"external_file"`
}

// #endregion config-types

// #region defaults

// Default returns a complete configuration so the service runs with no
// config file at all.
func Default() Config {
	ec := engine.DefaultConfig()
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8000},
		VectorDB: VectorDBConfig{
			Path:              "./data/vector_db",
			EmbeddingProvider: "openai",
			EmbeddingModel:    "text-embedding-3-small",
			OllamaBaseURL:     "http://localhost:11434/api",
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   500,
			Temperature: 0.1,
		},
		Guardrails: GuardrailConfig{
			SensitiveKeywords: ec.SensitiveKeywords,
			OverridePhrases:   ec.OverridePhrases,
			MinScore:          ec.MinScore,
			ConfidenceScore:   ec.ConfidenceScore,
			FactsTopK:         ec.FactsTopK,
			ExternalTopK:      ec.ExternalTopK,
			MaxFactsChunks:    ec.MaxFactsChunks,
			MaxExternalChunks: ec.MaxExternalChunks,
			ContextBudget:     ec.ContextBudget,
		},
		Audit: AuditConfig{Enabled: true, DBPath: "./data/decisions.db"},
		Data: DataConfig{
			FactsFile:    "./data/facts.md",
			ExternalFile: "./data/external.json",
		},
	}
}

// #endregion defaults

// #region load

// Load reads configuration from path (optional) and applies env-var
// overrides on top of the defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Guardrails.ConfidenceScore < cfg.Guardrails.MinScore {
		return Config{}, fmt.Errorf("confidence_score %.2f below min_score %.2f",
			cfg.Guardrails.ConfidenceScore, cfg.Guardrails.MinScore)
	}
	return cfg, nil
}

// #endregion load

// #region env-overrides

func applyEnv(cfg *Config) {
	cfg.Server.Host = envOr("RAG_HOST", cfg.Server.Host)
	cfg.Server.Port = envIntOr("RAG_PORT", cfg.Server.Port)
	cfg.VectorDB.Path = envOr("RAG_VECTOR_DB", cfg.VectorDB.Path)
	cfg.LLM.Model = envOr("RAG_LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.BaseURL = envOr("RAG_LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.Audit.DBPath = envOr("RAG_AUDIT_DB", cfg.Audit.DBPath)
	cfg.Data.FactsFile = envOr("RAG_FACTS_FILE", cfg.Data.FactsFile)
	cfg.Data.ExternalFile = envOr("RAG_EXTERNAL_FILE", cfg.Data.ExternalFile)
	if v := os.Getenv("RAG_AUDIT_ENABLED"); v != "" {
		cfg.Audit.Enabled = v == "true" || v == "1"
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// #endregion env-overrides

// #region engine-config

// EngineConfig converts the guardrail section into the engine's explicit
// configuration object.
func (c Config) EngineConfig() engine.Config {
	g := c.Guardrails
	return engine.Config{
		SensitiveKeywords: g.SensitiveKeywords,
		OverridePhrases:   g.OverridePhrases,
		MinScore:          g.MinScore,
		ConfidenceScore:   g.ConfidenceScore,
		FactsTopK:         g.FactsTopK,
		ExternalTopK:      g.ExternalTopK,
		MaxFactsChunks:    g.MaxFactsChunks,
		MaxExternalChunks: g.MaxExternalChunks,
		ContextBudget:     g.ContextBudget,
	}
}

// #endregion engine-config

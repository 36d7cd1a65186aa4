package engine

// #region config

// Config holds the guardrail rule tables and thresholds. The keyword and
// override sets are data, not code: they are loaded from configuration at
// startup and can be tuned without touching the decision logic.
type Config struct {
	// SensitiveKeywords mark a query (or an external passage) as touching
	// pricing/warranty/availability/purchase territory.
	SensitiveKeywords []string
	// OverridePhrases are qualifying phrases that neutralize an otherwise
	// sensitive keyword ("available colors" must not trigger "available").
	OverridePhrases []string

	// MinScore is the minimum similarity for a facts result to count
	// toward sufficiency at all.
	MinScore float32
	// ConfidenceScore is the score the top facts result must exceed for
	// facts coverage to be judged sufficient. Must be >= MinScore.
	ConfidenceScore float32

	// FactsTopK and ExternalTopK bound the search collaborator calls.
	FactsTopK   int
	ExternalTopK int

	// MaxFactsChunks and MaxExternalChunks cap how many chunks per corpus
	// are offered to the assembler.
	MaxFactsChunks    int
	MaxExternalChunks int

	// ContextBudget is the maximum total size of the context buffer in
	// characters. Chunks are never partially included.
	ContextBudget int
}

// #endregion config

// #region defaults

// DefaultConfig returns the built-in guardrail rules and thresholds.
func DefaultConfig() Config {
	return Config{
		SensitiveKeywords: []string{
			"price", "pricing", "cost", "warranty", "guarantee",
			"available", "availability", "in stock", "purchase", "buy",
			"deal", "discount", "offer", "aed", "$", "usd",
			"delivery", "shipping", "insurance", "financing", "loan",
		},
		OverridePhrases: []string{
			"available colors", "available colours", "available trims",
			"colors available", "colours available", "available options",
			"available features", "available modes",
		},
		MinScore:          0.30,
		ConfidenceScore:   0.70,
		FactsTopK:         5,
		ExternalTopK:      3,
		MaxFactsChunks:    3,
		MaxExternalChunks: 2,
		ContextBudget:     2000,
	}
}

// #endregion defaults

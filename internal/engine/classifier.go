package engine

// #region imports
import (
	"strings"
)

// #endregion

// #region classifier

// Classifier labels queries and passages as sensitive via keyword
// matching with override-phrase disambiguation. Deterministic, total,
// no side effects.
type Classifier struct {
	keywords  []string
	overrides []string
}

// NewClassifier builds a classifier from the configured rule tables.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{
		keywords:  lowered(cfg.SensitiveKeywords),
		overrides: lowered(cfg.OverridePhrases),
	}
}

// #endregion classifier

// #region is-sensitive

// IsSensitive reports whether a query touches a sensitive topic.
// Override phrases are blanked out of the normalized text before keyword
// matching, so "available colors" does not trigger "available" while
// "available for purchase" still does.
func (c *Classifier) IsSensitive(query string) bool {
	return c.matches(Normalize(query))
}

// ContentSensitive reports whether passage text discusses a sensitive
// topic. Same keyword family as IsSensitive, applied to chunk content.
func (c *Classifier) ContentSensitive(text string) bool {
	return c.matches(Normalize(text))
}

func (c *Classifier) matches(lower string) bool {
	for _, phrase := range c.overrides {
		if phrase == "" {
			continue
		}
		lower = strings.ReplaceAll(lower, phrase, "")
	}
	for _, kw := range c.keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// #endregion is-sensitive

// #region normalize

// Normalize lower-cases and trims a query. Applied once at classifier
// entry; the result is not persisted.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// #endregion normalize

// #region helpers

func lowered(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}

// #endregion helpers

package engine

// #region imports
import (
	"regexp"
)

// #endregion

// #region tag-pattern

// tagPattern matches citation tags embedded in generated text, e.g.
// [facts:F020:c0].
var tagPattern = regexp.MustCompile(`\[(facts|external):([^:\[\]\s]+):([^:\[\]\s]+)\]`)

// #endregion tag-pattern

// #region extract

// ExtractCitations pulls every citation-tag-shaped substring out of
// answer text, in order of first occurrence, deduplicated.
func ExtractCitations(answer string) []Citation {
	var cites []Citation
	seen := make(map[Citation]bool)
	for _, m := range tagPattern.FindAllStringSubmatch(answer, -1) {
		c := Citation{Source: Corpus(m[1]), DocID: m[2], ChunkID: m[3]}
		if seen[c] {
			continue
		}
		seen[c] = true
		cites = append(cites, c)
	}
	return cites
}

// #endregion extract

// #region validate

// ValidateAnswer checks generated text against the context buffer built
// for the same request. The answer stands only when at least one embedded
// citation resolves into the buffer; a zero-citation answer is an
// ungrounded claim and is refused, and an answer whose citations are all
// fabricated is refused rather than surfaced with bogus sourcing.
// Citations that fail to resolve are dropped from the result.
func ValidateAnswer(answer string, buf *ContextBuffer) AnswerResult {
	extracted := ExtractCitations(answer)
	if len(extracted) == 0 {
		return refusedUncited()
	}

	valid := make([]Citation, 0, len(extracted))
	for _, c := range extracted {
		if buf.Resolve(c.Source, c.DocID, c.ChunkID) {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return refusedUncited()
	}

	return AnswerResult{
		Answer:    answer,
		Status:    StatusAnswered,
		Citations: valid,
	}
}

// #endregion validate

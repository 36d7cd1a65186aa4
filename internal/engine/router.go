package engine

// #region sufficiency

// IsSufficient decides whether facts-corpus results are adequate to
// answer without consulting the external corpus. Requires at least one
// result at or above MinScore and a top result above ConfidenceScore,
// so a single barely-matching hit is never treated as conclusive.
// An empty result set is always insufficient.
func IsSufficient(results []Chunk, cfg Config) bool {
	if len(results) == 0 {
		return false
	}

	var top float32
	aboveMin := false
	for _, r := range results {
		if r.Score >= cfg.MinScore {
			aboveMin = true
		}
		if r.Score > top {
			top = r.Score
		}
	}

	return aboveMin && top > cfg.ConfidenceScore
}

// #endregion sufficiency

// #region route

// Route selects the source policy for a request. Evaluated in this exact
// order: sensitivity always dominates, so a sensitive query never reaches
// the external corpus regardless of facts coverage.
//
//	sensitive             → FactsOnly
//	sufficient facts      → FactsPrimary
//	otherwise             → FactsAndExternal
func Route(sensitive, sufficient bool) SourcePolicy {
	if sensitive {
		return FactsOnly
	}
	if sufficient {
		return FactsPrimary
	}
	return FactsAndExternal
}

// #endregion route

// #region filter

// FilterExternal drops external chunks whose text discusses a sensitive
// topic. Second guardrail layer: even when the query is non-sensitive,
// external passages about pricing/warranty/availability must never reach
// generation context. Preserves relative order, does not mutate input.
func FilterExternal(results []Chunk, classifier *Classifier) []Chunk {
	filtered := make([]Chunk, 0, len(results))
	for _, r := range results {
		if classifier.ContentSensitive(r.Text) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// #endregion filter

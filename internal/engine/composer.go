package engine

// #region messages

// Fixed response messages. Refusals and no-data outcomes never carry
// fabricated content or citations.
const (
	msgRefusedSensitive = "I cannot provide pricing, warranty, or availability information as it's not available in our official documentation."
	msgRefusedUncited   = "I couldn't verify the answer against our documentation, so I can't share it."
	msgNoData           = "I don't have sufficient information to answer your question."
	msgError            = "I'm sorry, I'm unable to generate a response at the moment. Please try again later."
)

// #endregion messages

// #region compose

// refusedSensitive is the terminal state for a sensitive query with no
// usable facts coverage.
func refusedSensitive() AnswerResult {
	return AnswerResult{
		Answer:    msgRefusedSensitive,
		Status:    StatusRefused,
		Citations: []Citation{},
	}
}

// refusedUncited is the terminal state for a generated answer that failed
// citation validation.
func refusedUncited() AnswerResult {
	return AnswerResult{
		Answer:    msgRefusedUncited,
		Status:    StatusRefused,
		Citations: []Citation{},
	}
}

// noData is the terminal state for an empty context buffer on a
// non-sensitive query.
func noData() AnswerResult {
	return AnswerResult{
		Answer:    msgNoData,
		Status:    StatusNoData,
		Citations: []Citation{},
	}
}

// errorResult is the terminal state for a collaborator failure. Never
// coerced into an answer.
func errorResult() AnswerResult {
	return AnswerResult{
		Answer:    msgError,
		Status:    StatusError,
		Citations: []Citation{},
	}
}

// #endregion compose

// Package engine implements the retrieval-policy and guardrail core:
// it decides which corpora to query, suppresses sensitive external
// content, assembles budget-bounded generation context, and validates
// generated answers against their claimed sources.
package engine

// #region imports
import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// #endregion

// #region engine-struct

// Engine coordinates one request end to end. It holds no cross-request
// mutable state; Answer is safe for concurrent callers.
type Engine struct {
	config     Config
	classifier *Classifier
	search     Searcher
	generate   Generator
	recorder   DecisionRecorder // nil disables auditing
	log        zerolog.Logger
}

// New wires an engine from its collaborators. recorder may be nil.
func New(cfg Config, search Searcher, gen Generator, recorder DecisionRecorder, log zerolog.Logger) *Engine {
	return &Engine{
		config:     cfg,
		classifier: NewClassifier(cfg),
		search:     search,
		generate:   gen,
		recorder:   recorder,
		log:        log,
	}
}

// #endregion engine-struct

// #region answer

// Answer runs the full pipeline for one question and always terminates in
// one of the four statuses. Collaborator failures map to StatusError and
// never escape as errors; guardrail refusals are designed terminal states,
// not failures.
func (e *Engine) Answer(ctx context.Context, question string) AnswerResult {
	sensitive := e.classifier.IsSensitive(question)

	factsResults, err := e.search.Search(ctx, question, CorpusFacts, e.config.FactsTopK)
	if err != nil {
		e.log.Error().Err(err).Msg("facts search failed")
		return e.finish(question, sensitive, false, FactsOnly, errorResult(), "facts search: "+err.Error())
	}

	sufficient := IsSufficient(factsResults, e.config)
	policy := Route(sensitive, sufficient)

	var external []Chunk
	if policy == FactsAndExternal {
		raw, err := e.search.Search(ctx, question, CorpusExternal, e.config.ExternalTopK)
		if err != nil {
			e.log.Error().Err(err).Msg("external search failed")
			return e.finish(question, sensitive, sufficient, policy, errorResult(), "external search: "+err.Error())
		}
		external = FilterExternal(raw, e.classifier)
	}

	facts := capChunks(factsResults, e.config.MaxFactsChunks)
	external = capChunks(external, e.config.MaxExternalChunks)

	buf := Assemble(facts, external, e.config.ContextBudget)
	e.log.Debug().
		Bool("sensitive", sensitive).
		Bool("sufficient", sufficient).
		Str("policy", string(policy)).
		Int("facts", len(facts)).
		Int("external", len(external)).
		Int("context_size", buf.Size).
		Msg("routed query")

	// Empty buffer short-circuits before the generator. A sensitive query
	// with nothing in facts is a refusal, not a data gap.
	if buf.Empty() {
		if sensitive {
			return e.finish(question, sensitive, sufficient, policy, refusedSensitive(), "sensitive query, no facts context")
		}
		return e.finish(question, sensitive, sufficient, policy, noData(), "empty context buffer")
	}

	answer, err := e.generate.Generate(ctx, buf.Render(), question)
	if err != nil {
		e.log.Error().Err(err).Msg("generation failed")
		return e.finish(question, sensitive, sufficient, policy, errorResult(), "generation: "+err.Error())
	}

	result := ValidateAnswer(answer, &buf)
	reason := "validated"
	if result.Status == StatusRefused {
		reason = "citation validation failed"
	}
	return e.finish(question, sensitive, sufficient, policy, result, reason)
}

// #endregion answer

// #region finish

func (e *Engine) finish(question string, sensitive, sufficient bool, policy SourcePolicy, result AnswerResult, reason string) AnswerResult {
	if e.recorder != nil {
		rec := DecisionRecord{
			RequestID:     uuid.New().String(),
			Question:      question,
			Sensitive:     sensitive,
			Sufficient:    sufficient,
			Policy:        policy,
			Status:        result.Status,
			CitationCount: len(result.Citations),
			Reason:        reason,
			CreatedAt:     time.Now().UTC(),
		}
		if err := e.recorder.Record(rec); err != nil {
			e.log.Warn().Err(err).Msg("failed to record decision")
		}
	}
	return result
}

// #endregion finish

// #region helpers

func capChunks(chunks []Chunk, max int) []Chunk {
	if max >= 0 && len(chunks) > max {
		return chunks[:max]
	}
	return chunks
}

// #endregion helpers

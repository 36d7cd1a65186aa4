package engine

// #region imports
import (
	"context"
	"time"
)

// #endregion

// #region corpus

// Corpus identifies which passage collection a chunk belongs to.
type Corpus string

const (
	CorpusFacts    Corpus = "facts"
	CorpusExternal Corpus = "external"
)

// #endregion

// #region chunk

// Chunk is a retrievable unit of text with stable identity within its
// corpus and document. Identity is (Corpus, DocID, ChunkID).
type Chunk struct {
	Corpus  Corpus
	DocID   string
	ChunkID string
	Text    string
	Score   float32
}

// #endregion

// #region source-policy

// SourcePolicy decides which corpora feed generation context for a request.
type SourcePolicy string

const (
	// FactsOnly: sensitive query, external corpus never queried.
	FactsOnly SourcePolicy = "facts_only"
	// FactsPrimary: facts coverage sufficient, external corpus not needed.
	FactsPrimary SourcePolicy = "facts_primary"
	// FactsAndExternal: facts insufficient and query not sensitive.
	FactsAndExternal SourcePolicy = "facts_and_external"
)

// #endregion

// #region status

// Status is the terminal outcome of a request.
type Status string

const (
	StatusAnswered Status = "answered"
	StatusRefused  Status = "refused"
	StatusNoData   Status = "no_data"
	StatusError    Status = "error"
)

// #endregion

// #region citation

// Citation links a generated claim to a chunk that was placed into the
// context buffer for the same request.
type Citation struct {
	Source  Corpus `json:"source"`
	DocID   string `json:"doc_id"`
	ChunkID string `json:"chunk_id"`
}

// #endregion

// #region answer-result

// AnswerResult is the output envelope for one question.
// StatusAnswered implies Citations is non-empty and every citation
// resolves into the context buffer built for the request.
type AnswerResult struct {
	Answer    string     `json:"answer"`
	Status    Status     `json:"status"`
	Citations []Citation `json:"citations"`
}

// #endregion

// #region collaborators

// Searcher is the vector-search collaborator. Results are ranked by
// descending score and may contain fewer than k entries.
type Searcher interface {
	Search(ctx context.Context, query string, corpus Corpus, k int) ([]Chunk, error)
}

// Generator is the text-generation collaborator. The returned text may
// embed zero or more [source:doc_id:chunk_id] citation tags.
type Generator interface {
	Generate(ctx context.Context, contextText, question string) (string, error)
}

// #endregion

// #region decision-record

// DecisionRecord is one row of the guardrail audit trail.
type DecisionRecord struct {
	RequestID     string
	Question      string
	Sensitive     bool
	Sufficient    bool
	Policy        SourcePolicy
	Status        Status
	CitationCount int
	Reason        string
	CreatedAt     time.Time
}

// DecisionRecorder persists guardrail decisions. Implementations must be
// safe for concurrent use; a nil recorder disables auditing.
type DecisionRecorder interface {
	Record(rec DecisionRecord) error
}

// #endregion

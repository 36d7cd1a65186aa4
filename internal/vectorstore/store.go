// Package vectorstore adapts an embedded chromem-go database to the
// engine's Searcher contract, one collection per corpus.
package vectorstore

// #region imports
import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/factfence/rag-controller/internal/engine"
)

// #endregion

// #region store

// Store holds the two corpus collections. The underlying index is
// read-only at query time; the engine never mutates it.
type Store struct {
	db       *chromem.DB
	facts    *chromem.Collection
	external *chromem.Collection
}

// compile-time check
var _ engine.Searcher = (*Store)(nil)

// #endregion store

// #region constructors

// Open opens (or creates) a persistent vector database at path and binds
// the facts and external collections with the given embedding function.
func Open(path string, embed chromem.EmbeddingFunc) (*Store, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db: %w", err)
	}
	return collections(db, embed)
}

// OpenInMemory creates a volatile store, used by ingestion dry runs and
// tests.
func OpenInMemory(embed chromem.EmbeddingFunc) (*Store, error) {
	return collections(chromem.NewDB(), embed)
}

func collections(db *chromem.DB, embed chromem.EmbeddingFunc) (*Store, error) {
	facts, err := db.GetOrCreateCollection(string(engine.CorpusFacts), nil, embed)
	if err != nil {
		return nil, fmt.Errorf("facts collection: %w", err)
	}
	external, err := db.GetOrCreateCollection(string(engine.CorpusExternal), nil, embed)
	if err != nil {
		return nil, fmt.Errorf("external collection: %w", err)
	}
	return &Store{db: db, facts: facts, external: external}, nil
}

// #endregion constructors

// #region embedding

// NewEmbedding returns an embedding function for the configured provider.
func NewEmbedding(provider, model, apiKey, ollamaBaseURL string) (chromem.EmbeddingFunc, error) {
	switch provider {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai embedding provider requires OPENAI_API_KEY")
		}
		return chromem.NewEmbeddingFuncOpenAI(apiKey, chromem.EmbeddingModelOpenAI(model)), nil
	case "ollama":
		return chromem.NewEmbeddingFuncOllama(model, ollamaBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// #endregion embedding

// #region search

// Search runs a similarity query against one corpus and returns ranked
// chunks. May return fewer than k results.
func (s *Store) Search(ctx context.Context, query string, corpus engine.Corpus, k int) ([]engine.Chunk, error) {
	coll, err := s.collection(corpus)
	if err != nil {
		return nil, err
	}

	// chromem rejects queries asking for more results than documents.
	if n := coll.Count(); n < k {
		k = n
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := coll.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query %s corpus: %w", corpus, err)
	}

	chunks := make([]engine.Chunk, len(results))
	for i, r := range results {
		docID, chunkID := splitID(r.ID, r.Metadata)
		chunks[i] = engine.Chunk{
			Corpus:  corpus,
			DocID:   docID,
			ChunkID: chunkID,
			Text:    r.Content,
			Score:   r.Similarity,
		}
	}
	return chunks, nil
}

// #endregion search

// #region add

// AddChunks indexes chunks into their corpus collection.
func (s *Store) AddChunks(ctx context.Context, chunks []engine.Chunk) error {
	byCorpus := map[engine.Corpus][]chromem.Document{}
	for _, c := range chunks {
		byCorpus[c.Corpus] = append(byCorpus[c.Corpus], chromem.Document{
			ID:      c.DocID + ":" + c.ChunkID,
			Content: c.Text,
			Metadata: map[string]string{
				"doc_id":   c.DocID,
				"chunk_id": c.ChunkID,
				"corpus":   string(c.Corpus),
			},
		})
	}

	for corpus, docs := range byCorpus {
		coll, err := s.collection(corpus)
		if err != nil {
			return err
		}
		if err := coll.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
			return fmt.Errorf("add to %s corpus: %w", corpus, err)
		}
	}
	return nil
}

// #endregion add

// #region counts

// Counts reports document counts per corpus for health reporting.
func (s *Store) Counts() (facts, external int) {
	return s.facts.Count(), s.external.Count()
}

// #endregion counts

// #region helpers

func (s *Store) collection(corpus engine.Corpus) (*chromem.Collection, error) {
	switch corpus {
	case engine.CorpusFacts:
		return s.facts, nil
	case engine.CorpusExternal:
		return s.external, nil
	default:
		return nil, fmt.Errorf("unknown corpus %q", corpus)
	}
}

func splitID(id string, metadata map[string]string) (docID, chunkID string) {
	if d, ok := metadata["doc_id"]; ok {
		if c, ok := metadata["chunk_id"]; ok {
			return d, c
		}
	}
	if i := strings.IndexByte(id, ':'); i > 0 {
		return id[:i], id[i+1:]
	}
	return id, "c0"
}

// #endregion helpers

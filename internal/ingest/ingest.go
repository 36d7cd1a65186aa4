// Package ingest turns corpus source files into identifiable chunks:
// a markdown facts document split on headings, and a JSON export of
// external video records. Chunk identity is (corpus, doc_id, chunk_id)
// and stays stable across re-ingestion of unchanged inputs.
package ingest

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/factfence/rag-controller/internal/engine"
)

// #endregion

// #region chunker-config

// ChunkerConfig bounds chunk sizes for both corpora.
type ChunkerConfig struct {
	ChunkSize    int // max characters per chunk
	ChunkOverlap int // characters of overlap between adjacent chunks
}

// DefaultChunkerConfig returns the standard chunking bounds.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{ChunkSize: 500, ChunkOverlap: 50}
}

// #endregion chunker-config

// #region facts

// ParseFacts splits a markdown document into heading-delimited sections
// (doc IDs F000, F001, ...) and chunks each section.
func ParseFacts(content string, cfg ChunkerConfig) []engine.Chunk {
	var chunks []engine.Chunk
	var section string
	var body []string
	count := 0

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if text == "" {
			return
		}
		docID := fmt.Sprintf("F%03d", count)
		full := text
		if section != "" {
			full = section + "\n\n" + text
		}
		chunks = append(chunks, chunkDoc(engine.CorpusFacts, docID, full, cfg)...)
		count++
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			flush()
			section = strings.TrimSpace(line)
			body = body[:0]
			continue
		}
		if strings.TrimSpace(line) != "" {
			body = append(body, line)
		}
	}
	flush()

	return chunks
}

// LoadFacts reads and parses a facts markdown file.
func LoadFacts(path string, cfg ChunkerConfig) ([]engine.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read facts file: %w", err)
	}
	return ParseFacts(string(data), cfg), nil
}

// #endregion facts

// #region external

// externalRecord is one entry of the external JSON export.
type externalRecord struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	TranscriptText struct {
		Content string `json:"content"`
	} `json:"transcriptText"`
}

// ParseExternal converts a JSON array of video records into chunks
// (doc IDs E000, E001, ...).
func ParseExternal(data []byte, cfg ChunkerConfig) ([]engine.Chunk, error) {
	var records []externalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse external json: %w", err)
	}

	var chunks []engine.Chunk
	for i, rec := range records {
		var parts []string
		if rec.Title != "" {
			parts = append(parts, "Title: "+rec.Title)
		}
		if rec.Description != "" {
			parts = append(parts, "Description: "+rec.Description)
		}
		if rec.TranscriptText.Content != "" {
			parts = append(parts, "Transcript: "+rec.TranscriptText.Content)
		}
		if len(parts) == 0 {
			continue
		}
		docID := fmt.Sprintf("E%03d", i)
		chunks = append(chunks, chunkDoc(engine.CorpusExternal, docID, strings.Join(parts, "\n\n"), cfg)...)
	}
	return chunks, nil
}

// LoadExternal reads and parses an external JSON file.
func LoadExternal(path string, cfg ChunkerConfig) ([]engine.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read external file: %w", err)
	}
	return ParseExternal(data, cfg)
}

// #endregion external

// #region chunking

// chunkDoc splits document content into overlapping word windows. A
// document within ChunkSize becomes a single c0 chunk; chunks are whole
// word sequences, never split mid-word.
func chunkDoc(corpus engine.Corpus, docID, content string, cfg ChunkerConfig) []engine.Chunk {
	if len(content) <= cfg.ChunkSize {
		return []engine.Chunk{{Corpus: corpus, DocID: docID, ChunkID: "c0", Text: content}}
	}

	words := strings.Fields(content)
	// Word counts estimated from average word length.
	chunkWords := cfg.ChunkSize / 5
	overlapWords := cfg.ChunkOverlap / 5
	step := chunkWords - overlapWords
	if step < 1 {
		step = 1
	}

	var chunks []engine.Chunk
	for i, n := 0, 0; i < len(words); i, n = i+step, n+1 {
		end := i + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, engine.Chunk{
			Corpus:  corpus,
			DocID:   docID,
			ChunkID: fmt.Sprintf("c%d", n),
			Text:    strings.Join(words[i:end], " "),
		})
		if end == len(words) {
			break
		}
	}
	return chunks
}

// #endregion chunking

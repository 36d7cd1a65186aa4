package engine

// #region imports
import (
	"fmt"
	"sort"
	"strings"
)

// #endregion

// #region segment

// Segment is one chunk placed into the context buffer with its citation tag.
type Segment struct {
	Chunk Chunk
	Tag   string // source:doc_id:chunk_id
}

// #endregion segment

// #region context-buffer

// ContextBuffer is the ordered, budget-bounded set of chunks handed to
// the generator. Facts segments always precede external segments.
type ContextBuffer struct {
	Segments []Segment
	Size     int // total characters of rendered segments
}

// Empty reports whether no chunk fit the budget.
func (b *ContextBuffer) Empty() bool {
	return len(b.Segments) == 0
}

// Resolve reports whether a citation refers to a chunk actually present
// in this buffer.
func (b *ContextBuffer) Resolve(source Corpus, docID, chunkID string) bool {
	for _, seg := range b.Segments {
		c := seg.Chunk
		if c.Corpus == source && c.DocID == docID && c.ChunkID == chunkID {
			return true
		}
	}
	return false
}

// Render produces the generation-context text, one tagged passage per
// paragraph.
func (b *ContextBuffer) Render() string {
	parts := make([]string, len(b.Segments))
	for i, seg := range b.Segments {
		parts[i] = fmt.Sprintf("[%s] %s", seg.Tag, seg.Chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}

// #endregion context-buffer

// #region assemble

// Assemble merges facts and external chunks into a context buffer.
// Facts are placed before any external chunk regardless of score; within
// each corpus, chunks go in descending score order with a deterministic
// tie-break on (DocID, ChunkID). Chunks are appended until the next one
// would exceed budget; a chunk is never partially included.
func Assemble(facts, external []Chunk, budget int) ContextBuffer {
	buf := ContextBuffer{}

	for _, c := range append(sortRanked(facts), sortRanked(external)...) {
		tag := CitationTag(c)
		cost := len(tag) + len(c.Text) + 3 // brackets and separating space
		if buf.Size+cost > budget {
			break
		}
		buf.Segments = append(buf.Segments, Segment{Chunk: c, Tag: tag})
		buf.Size += cost
	}

	return buf
}

// CitationTag returns the literal tag for a chunk: source:doc_id:chunk_id.
func CitationTag(c Chunk) string {
	return fmt.Sprintf("%s:%s:%s", c.Corpus, c.DocID, c.ChunkID)
}

// #endregion assemble

// #region sort

func sortRanked(chunks []Chunk) []Chunk {
	sorted := make([]Chunk, len(chunks))
	copy(sorted, chunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		if sorted[i].DocID != sorted[j].DocID {
			return sorted[i].DocID < sorted[j].DocID
		}
		return sorted[i].ChunkID < sorted[j].ChunkID
	})
	return sorted
}

// #endregion sort

package engine

import (
	"strings"
	"testing"
)

func chunk(corpus Corpus, docID, chunkID, text string, score float32) Chunk {
	return Chunk{Corpus: corpus, DocID: docID, ChunkID: chunkID, Text: text, Score: score}
}

func TestAssembleFactsBeforeExternal(t *testing.T) {
	facts := []Chunk{
		chunk(CorpusFacts, "F001", "c0", "facts low", 0.2),
		chunk(CorpusFacts, "F002", "c0", "facts high", 0.9),
	}
	external := []Chunk{
		chunk(CorpusExternal, "E001", "c0", "external top", 0.99),
	}

	buf := Assemble(facts, external, 10000)
	if len(buf.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(buf.Segments))
	}

	// Facts first regardless of score, descending score within corpus.
	wantTags := []string{"facts:F002:c0", "facts:F001:c0", "external:E001:c0"}
	for i, want := range wantTags {
		if buf.Segments[i].Tag != want {
			t.Errorf("segment %d: got %q, want %q", i, buf.Segments[i].Tag, want)
		}
	}
}

func TestAssembleTieBreak(t *testing.T) {
	facts := []Chunk{
		chunk(CorpusFacts, "F002", "c1", "b", 0.5),
		chunk(CorpusFacts, "F002", "c0", "a", 0.5),
		chunk(CorpusFacts, "F001", "c0", "c", 0.5),
	}

	buf := Assemble(facts, nil, 10000)
	wantTags := []string{"facts:F001:c0", "facts:F002:c0", "facts:F002:c1"}
	for i, want := range wantTags {
		if buf.Segments[i].Tag != want {
			t.Errorf("segment %d: got %q, want %q", i, buf.Segments[i].Tag, want)
		}
	}
}

func TestAssembleBudget(t *testing.T) {
	facts := []Chunk{
		chunk(CorpusFacts, "F001", "c0", strings.Repeat("a", 100), 0.9),
		chunk(CorpusFacts, "F002", "c0", strings.Repeat("b", 100), 0.8),
	}

	// Budget fits one chunk plus its tag, not two.
	buf := Assemble(facts, nil, 150)
	if len(buf.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(buf.Segments))
	}
	if buf.Segments[0].Chunk.DocID != "F001" {
		t.Errorf("kept %s, want highest-scoring F001", buf.Segments[0].Chunk.DocID)
	}

	// Chunks are whole or absent, never truncated.
	if !strings.Contains(buf.Render(), strings.Repeat("a", 100)) {
		t.Error("chunk text was truncated")
	}
}

func TestAssembleZeroBudget(t *testing.T) {
	facts := []Chunk{chunk(CorpusFacts, "F001", "c0", "text", 0.9)}
	buf := Assemble(facts, nil, 0)
	if !buf.Empty() {
		t.Error("zero budget must produce an empty buffer")
	}
}

func TestAssembleExternalDropped(t *testing.T) {
	facts := []Chunk{chunk(CorpusFacts, "F001", "c0", strings.Repeat("a", 80), 0.9)}
	external := []Chunk{chunk(CorpusExternal, "E001", "c0", strings.Repeat("b", 80), 0.9)}

	// Budget admits the facts chunk but not the external one.
	buf := Assemble(facts, external, 120)
	if len(buf.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(buf.Segments))
	}
	if buf.Segments[0].Chunk.Corpus != CorpusFacts {
		t.Error("facts chunk should survive when external is cut")
	}
}

func TestContextBufferResolve(t *testing.T) {
	buf := Assemble([]Chunk{chunk(CorpusFacts, "F020", "c0", "AED 149,900", 0.9)}, nil, 1000)

	if !buf.Resolve(CorpusFacts, "F020", "c0") {
		t.Error("present chunk did not resolve")
	}
	if buf.Resolve(CorpusExternal, "F020", "c0") {
		t.Error("corpus mismatch resolved")
	}
	if buf.Resolve(CorpusFacts, "F020", "c1") {
		t.Error("absent chunk resolved")
	}
}

func TestContextBufferRender(t *testing.T) {
	buf := Assemble([]Chunk{
		chunk(CorpusFacts, "F001", "c0", "first", 0.9),
		chunk(CorpusFacts, "F002", "c0", "second", 0.8),
	}, nil, 1000)

	got := buf.Render()
	want := "[facts:F001:c0] first\n\n[facts:F002:c0] second"
	if got != want {
		t.Errorf("Render:\ngot  %q\nwant %q", got, want)
	}
}

package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/factfence/rag-controller/internal/engine"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(filepath.Join(t.TempDir(), "decisions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestRecordAndList(t *testing.T) {
	log := openTestLog(t)

	recs := []engine.DecisionRecord{
		{
			RequestID:     uuid.New().String(),
			Question:      "What's the price?",
			Sensitive:     true,
			Sufficient:    true,
			Policy:        engine.FactsOnly,
			Status:        engine.StatusAnswered,
			CitationCount: 1,
			Reason:        "validated",
			CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			RequestID:  uuid.New().String(),
			Question:   "How's the ride?",
			Policy:     engine.FactsAndExternal,
			Status:     engine.StatusNoData,
			Reason:     "empty context buffer",
			CreatedAt:  time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
		},
	}
	for _, rec := range recs {
		if err := log.Record(rec); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := log.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// Newest first.
	if got[0].Question != "How's the ride?" {
		t.Errorf("order: got %q first", got[0].Question)
	}
	if got[1].Policy != engine.FactsOnly || !got[1].Sensitive || got[1].CitationCount != 1 {
		t.Errorf("round-trip mismatch: %+v", got[1])
	}
	if got[1].Reason != "validated" {
		t.Errorf("reason: got %q", got[1].Reason)
	}
}

func TestRecordFillsTimestamp(t *testing.T) {
	log := openTestLog(t)

	rec := engine.DecisionRecord{
		RequestID: uuid.New().String(),
		Question:  "q",
		Policy:    engine.FactsPrimary,
		Status:    engine.StatusAnswered,
	}
	if err := log.Record(rec); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := log.ListRecent(1)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 1 || got[0].CreatedAt.IsZero() {
		t.Error("zero CreatedAt should be filled at record time")
	}
}

func TestListRecentLimit(t *testing.T) {
	log := openTestLog(t)
	for i := 0; i < 5; i++ {
		rec := engine.DecisionRecord{
			RequestID: uuid.New().String(),
			Question:  "q",
			Policy:    engine.FactsPrimary,
			Status:    engine.StatusAnswered,
			CreatedAt: time.Date(2025, 6, 1, 10, i, 0, 0, time.UTC),
		}
		if err := log.Record(rec); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	got, err := log.ListRecent(3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d records, want 3", len(got))
	}
}

// Package audit persists guardrail decisions to SQLite so routing and
// refusal behavior can be inspected after the fact.
package audit

// #region imports
import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/factfence/rag-controller/internal/engine"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	request_id      TEXT PRIMARY KEY,
	question        TEXT NOT NULL,
	sensitive       INTEGER NOT NULL,
	sufficient      INTEGER NOT NULL,
	policy          TEXT NOT NULL,
	status          TEXT NOT NULL,
	citation_count  INTEGER NOT NULL DEFAULT 0,
	reason          TEXT,
	created_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_created ON decisions(created_at);
`

// #endregion schema

// #region log-struct

// Log is a SQLite-backed decision recorder.
type Log struct {
	db *sql.DB
}

var _ engine.DecisionRecorder = (*Log)(nil)

// #endregion log-struct

// #region constructor

// Open opens the decision database and runs migrations.
func Open(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Log{db: db}, nil
}

// Close closes the underlying database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// #endregion constructor

// #region record

// Record inserts one decision row.
func (l *Log) Record(rec engine.DecisionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := l.db.Exec(
		`INSERT INTO decisions (request_id, question, sensitive, sufficient, policy, status, citation_count, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RequestID,
		rec.Question,
		boolInt(rec.Sensitive),
		boolInt(rec.Sufficient),
		string(rec.Policy),
		string(rec.Status),
		rec.CitationCount,
		nullIfEmpty(rec.Reason),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// #endregion record

// #region list-recent

// ListRecent returns the most recent decisions, newest first.
func (l *Log) ListRecent(limit int) ([]engine.DecisionRecord, error) {
	rows, err := l.db.Query(
		`SELECT request_id, question, sensitive, sufficient, policy, status, citation_count, reason, created_at
		 FROM decisions ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var records []engine.DecisionRecord
	for rows.Next() {
		var rec engine.DecisionRecord
		var sensitive, sufficient int
		var policy, status, createdStr string
		var reason sql.NullString

		if err := rows.Scan(&rec.RequestID, &rec.Question, &sensitive, &sufficient,
			&policy, &status, &rec.CitationCount, &reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.Sensitive = sensitive != 0
		rec.Sufficient = sufficient != 0
		rec.Policy = engine.SourcePolicy(policy)
		rec.Status = engine.Status(status)
		if reason.Valid {
			rec.Reason = reason.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-recent

// #region helpers

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers

// Package history persists comparison runs to SQLite so side-by-side
// answers survive between sessions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag/engine"
)

// Record is one persisted comparison run.
type Record struct {
	ID            string
	Question      string
	GraphAnswer   string
	VectorAnswer  string
	GraphLatency  time.Duration
	VectorLatency time.Duration
	CreatedAt     time.Time
}

// Store persists comparison records in a SQLite database.
type Store struct {
	db        *sql.DB
	tableName string
}

// Options configures the SQLite connection.
type Options struct {
	Path      string
	TableName string // Default "comparisons"
}

// NewStore opens (or creates) the database and its schema.
func NewStore(opts Options) (*Store, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "comparisons"
	}

	store := &Store{db: db, tableName: tableName}
	if err := store.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			graph_answer TEXT NOT NULL,
			vector_answer TEXT NOT NULL,
			graph_latency_ms INTEGER NOT NULL,
			vector_latency_ms INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at);
	`, s.tableName, s.tableName, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores one comparison result and returns its record id.
func (s *Store) Save(ctx context.Context, comparison *engine.Comparison) (string, error) {
	id := uuid.NewString()
	query := fmt.Sprintf(`
		INSERT INTO %s (id, question, graph_answer, vector_answer, graph_latency_ms, vector_latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.tableName)

	_, err := s.db.ExecContext(ctx, query,
		id,
		comparison.Question,
		comparison.GraphAnswer,
		comparison.VectorAnswer,
		comparison.GraphLatency.Milliseconds(),
		comparison.VectorLatency.Milliseconds(),
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save comparison: %w", err)
	}
	return id, nil
}

// List returns the most recent records, newest first. A limit of zero means
// no limit.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	query := fmt.Sprintf(`
		SELECT id, question, graph_answer, vector_answer, graph_latency_ms, vector_latency_ms, created_at
		FROM %s
		ORDER BY created_at DESC
	`, s.tableName)
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var r Record
		var graphMs, vectorMs int64
		if err := rows.Scan(&r.ID, &r.Question, &r.GraphAnswer, &r.VectorAnswer, &graphMs, &vectorMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.GraphLatency = time.Duration(graphMs) * time.Millisecond
		r.VectorLatency = time.Duration(vectorMs) * time.Millisecond
		records = append(records, &r)
	}
	return records, rows.Err()
}

// Get loads one record by id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	query := fmt.Sprintf(`
		SELECT id, question, graph_answer, vector_answer, graph_latency_ms, vector_latency_ms, created_at
		FROM %s
		WHERE id = ?
	`, s.tableName)

	var r Record
	var graphMs, vectorMs int64
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.Question, &r.GraphAnswer, &r.VectorAnswer, &graphMs, &vectorMs, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("comparison not found: %s", id)
		}
		return nil, fmt.Errorf("failed to load comparison: %w", err)
	}
	r.GraphLatency = time.Duration(graphMs) * time.Millisecond
	r.VectorLatency = time.Duration(vectorMs) * time.Millisecond
	return &r, nil
}

// Clear deletes all records.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.tableName))
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

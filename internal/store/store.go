// Package store handles SQLite persistence of test history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MysticalShroom/typespeed/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for result history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			finished_at TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			words INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			errors INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_finished_at ON results(finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertResult stores one completed test.
func (s *Store) InsertResult(ctx context.Context, rec model.ResultRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (finished_at, difficulty, words, wpm, accuracy, errors, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.FinishedAt.Format(time.RFC3339Nano),
		string(rec.Difficulty),
		rec.Words,
		rec.WPM,
		rec.Accuracy,
		rec.Errors,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListResults returns results matching the filter, oldest first.
func (s *Store) ListResults(ctx context.Context, filter model.HistoryFilter) ([]model.ResultRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, string(filter.Difficulty))
	}
	if filter.Since != nil {
		clauses = append(clauses, "finished_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT finished_at, difficulty, words, wpm, accuracy, errors, duration_ms
		FROM results
		WHERE %s
		ORDER BY finished_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ResultRecord
	for rows.Next() {
		var rec model.ResultRecord
		var finishedAt string
		var difficulty string
		var durationMs int64
		if err := rows.Scan(&finishedAt, &difficulty, &rec.Words, &rec.WPM, &rec.Accuracy, &rec.Errors, &durationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		rec.FinishedAt = parsed
		rec.Difficulty = model.Difficulty(difficulty)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(records) > filter.Last {
		records = records[len(records)-filter.Last:]
	}
	return records, nil
}

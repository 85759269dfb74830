package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MysticalShroom/typespeed/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "typespeed.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertResults(t *testing.T, st *Store, count int, difficulty model.Difficulty) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < count; i++ {
		rec := model.ResultRecord{
			FinishedAt: time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			Difficulty: difficulty,
			Words:      10,
			WPM:        40 + float64(i),
			Accuracy:   95,
			Errors:     1,
			Duration:   30 * time.Second,
		}
		if _, err := st.InsertResult(ctx, rec); err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}
}

func TestInsertAndListResults(t *testing.T) {
	st := openTestStore(t)
	insertResults(t, st, 3, model.DifficultyEasy)

	records, err := st.ListResults(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if !records[0].FinishedAt.Before(records[2].FinishedAt) {
		t.Fatalf("records not ordered oldest first")
	}
	first := records[0]
	if first.Difficulty != model.DifficultyEasy || first.Words != 10 || first.WPM != 40 ||
		first.Accuracy != 95 || first.Errors != 1 || first.Duration != 30*time.Second {
		t.Fatalf("round-trip mismatch: %+v", first)
	}
}

func TestListResultsDifficultyFilter(t *testing.T) {
	st := openTestStore(t)
	insertResults(t, st, 2, model.DifficultyEasy)
	insertResults(t, st, 3, model.DifficultyHard)

	records, err := st.ListResults(context.Background(), model.HistoryFilter{Difficulty: model.DifficultyHard})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 hard records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Difficulty != model.DifficultyHard {
			t.Fatalf("unexpected difficulty %s", rec.Difficulty)
		}
	}
}

func TestListResultsSinceAndLast(t *testing.T) {
	st := openTestStore(t)
	insertResults(t, st, 5, model.DifficultyMedium)

	since := time.Unix(0, 0).Add(90 * time.Second)
	records, err := st.ListResults(context.Background(), model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records since %v, got %d", since, len(records))
	}

	records, err = st.ListResults(context.Background(), model.HistoryFilter{Last: 2})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected last 2 records, got %d", len(records))
	}
	if records[1].WPM != 44 {
		t.Fatalf("expected most recent record last, got %+v", records[1])
	}
}

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(Config{Path: filepath.Join(t.TempDir(), "nested", "renders.db")})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaultConfig(t *testing.T) {
	if cfg := DefaultConfig(); cfg.Path != "./data/renders.db" {
		t.Errorf("Path = %v, want ./data/renders.db", cfg.Path)
	}
}

func TestSQLiteStore_PutGet(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	created := time.Unix(1700000000, 0)
	in := &Render{
		Key:       "render:abc",
		Input:     `\frac{a}{b}`,
		Style:     "display",
		HTML:      `<span class="katex"></span>`,
		TreeJSON:  []byte(`{"type":"box"}`),
		CreatedAt: created,
	}
	if err := s.Put(ctx, in); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "render:abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Input != in.Input || got.Style != in.Style || got.HTML != in.HTML {
		t.Errorf("Get() = %+v, want %+v", got, in)
	}
	if string(got.TreeJSON) != `{"type":"box"}` {
		t.Errorf("TreeJSON = %s", got.TreeJSON)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	if got.Hits != 1 {
		t.Errorf("Hits = %d, want 1", got.Hits)
	}

	got, _ = s.Get(ctx, "render:abc")
	if got.Hits != 2 {
		t.Errorf("Hits after second read = %d, want 2", got.Hits)
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("code = %v, want NOT_FOUND", mdwerror.GetCode(err))
	}
}

func TestSQLiteStore_PutValidation(t *testing.T) {
	s := createTestStore(t)

	err := s.Put(context.Background(), &Render{Input: "x"})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Put(no key) error = %v, want INVALID_INPUT", err)
	}
}

func TestSQLiteStore_ReplaceDeleteCount(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, &Render{Key: key, Input: key, Style: "text", TreeJSON: []byte("{}")}); err != nil {
			t.Fatalf("Put(%s) error = %v", key, err)
		}
	}
	// Replacing keeps the count
	if err := s.Put(ctx, &Render{Key: "a", Input: "a2", Style: "text", TreeJSON: []byte("{}")}); err != nil {
		t.Fatalf("Put(replace) error = %v", err)
	}

	count, err := s.Count(ctx)
	if err != nil || count != 3 {
		t.Fatalf("Count() = %d, %v; want 3", count, err)
	}
	if got, _ := s.Get(ctx, "a"); got.Input != "a2" {
		t.Errorf("replaced input = %q, want a2", got.Input)
	}

	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if count, _ := s.Count(ctx); count != 2 {
		t.Errorf("Count() after delete = %d, want 2", count)
	}
}

func TestSQLiteStore_Prune(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	now := time.Now()

	s.Put(ctx, &Render{Key: "old", Input: "x", Style: "text", TreeJSON: []byte("{}"), CreatedAt: now.Add(-48 * time.Hour)})
	s.Put(ctx, &Render{Key: "new", Input: "y", Style: "text", TreeJSON: []byte("{}"), CreatedAt: now})

	removed, err := s.Prune(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}
	if _, err := s.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old render should be pruned, got %v", err)
	}
	if _, err := s.Get(ctx, "new"); err != nil {
		t.Errorf("new render should survive, got %v", err)
	}
}

func TestSQLiteStore_StatisticsAndPing(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	stats, err := s.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats["renders"] != int64(0) || stats["stored_hits"] != int64(0) {
		t.Errorf("empty statistics = %v", stats)
	}

	s.Put(ctx, &Render{Key: "k", Input: "x", Style: "text", TreeJSON: []byte("{}")})
	s.Get(ctx, "k")
	stats, _ = s.Statistics(ctx)
	if stats["renders"] != int64(1) || stats["stored_hits"] != int64(1) {
		t.Errorf("statistics = %v, want 1 render with 1 hit", stats)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renders.db")
	ctx := context.Background()

	s, err := New(Config{Path: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Put(ctx, &Render{Key: "persist", Input: "x", Style: "text", TreeJSON: []byte("{}")})
	s.Close()

	s, err = New(Config{Path: path})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, "persist"); err != nil {
		t.Errorf("render lost across reopen: %v", err)
	}
}

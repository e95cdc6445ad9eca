package source

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *SQLiteSource {
	t.Helper()
	s, err := NewSQLiteSource(filepath.Join(t.TempDir(), "records.db"), "records")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error creating schema: %v", err)
	}
	return s
}

func TestSQLiteSource_RoundTrip(t *testing.T) {
	s := newTestDB(t)
	created := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	err := s.Insert(context.Background(),
		Record{Seq: 2, Key: "k2", Body: "second", CreatedAt: created},
		Record{Seq: 1, Key: "k1", Body: "first", CreatedAt: created},
	)
	if err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	page, err := s.Load(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(page.Records) != 2 || page.HasMore {
		t.Fatalf("unexpected page: %d records, hasMore %v", len(page.Records), page.HasMore)
	}
	if page.Records[0].Seq != 1 || page.Records[0].Body != "first" {
		t.Errorf("expected seq 1 first, got %+v", page.Records[0])
	}
	if !page.Records[0].CreatedAt.Equal(created) {
		t.Errorf("expected created at %v, got %v", created, page.Records[0].CreatedAt)
	}
}

func TestSQLiteSource_Paging(t *testing.T) {
	s := newTestDB(t)
	var records []Record
	for i := int64(1); i <= 5; i++ {
		records = append(records, Record{Seq: i, Key: "k", Body: "b", CreatedAt: time.Unix(0, 0)})
	}
	if err := s.Insert(context.Background(), records...); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	first, err := s.Load(context.Background(), 0, 2)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(first.Records) != 2 || !first.HasMore {
		t.Fatalf("unexpected first page: %d records, hasMore %v", len(first.Records), first.HasMore)
	}

	last, err := s.Load(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(last.Records) != 1 || last.HasMore {
		t.Errorf("unexpected last page: %d records, hasMore %v", len(last.Records), last.HasMore)
	}
}

func TestSQLiteSource_RejectsBadTableName(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewSQLiteSource(filepath.Join(dir, "a.db"), "records; drop table users"); err == nil {
		t.Error("expected error for invalid table name")
	}
	if _, err := NewSQLiteSource(filepath.Join(dir, "b.db"), ""); err == nil {
		t.Error("expected error for empty table name")
	}
}

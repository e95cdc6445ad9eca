package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource serves pages from a SQLite table with columns
// (seq INTEGER PRIMARY KEY, key TEXT, body TEXT, created_at INTEGER)
type SQLiteSource struct {
	db    *sql.DB
	table string
}

func NewSQLiteSource(path, table string) (*SQLiteSource, error) {
	// table is interpolated into queries, so it must be a plain identifier
	if !identRegex.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &SQLiteSource{db: db, table: table}, nil
}

func (s *SQLiteSource) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			seq INTEGER PRIMARY KEY,
			key TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`, s.table))
	return err
}

func (s *SQLiteSource) Insert(ctx context.Context, records ...Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (seq, key, body, created_at) VALUES (?, ?, ?, ?)`, s.table))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Seq, r.Key, r.Body, r.CreatedAt.Unix()); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteSource) Load(ctx context.Context, page, size int) (Page, error) {
	if page < 0 || size <= 0 {
		return Page{}, fmt.Errorf("invalid page %d with size %d", page, size)
	}

	// one extra row tells us whether another page exists
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT seq, key, body, created_at FROM %s ORDER BY seq LIMIT ? OFFSET ?`, s.table),
		size+1, page*size)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var createdAt int64
		if err := rows.Scan(&r.Seq, &r.Key, &r.Body, &createdAt); err != nil {
			return Page{}, err
		}
		r.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	hasMore := len(records) > size
	if hasMore {
		records = records[:size]
	}
	return Page{Records: records, HasMore: hasMore}, nil
}

func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/internal/models"
)

// SQLite implements TrendingStore with prepared statements over a single
// writer connection.
type SQLite struct {
	conn      *sql.DB
	imageBase string
	now       func() time.Time

	stmtRecord *sql.Stmt
	stmtList   *sql.Stmt
	stmtPrune  *sql.Stmt
	mu         sync.RWMutex
}

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath, imageBase string) (*SQLite, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", "trending.sqlite")
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, apperrors.NewStoreError("failed to prepare sqlite database", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to open sqlite database", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &SQLite{conn: conn, imageBase: imageBase, now: time.Now}

	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, apperrors.NewStoreError("failed to create schema", err)
	}

	if err := db.prepareStatements(); err != nil {
		conn.Close()
		return nil, apperrors.NewStoreError("failed to prepare statements", err)
	}

	return db, nil
}

func (db *SQLite) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, stmt := range []*sql.Stmt{db.stmtRecord, db.stmtList, db.stmtPrune} {
		if stmt != nil {
			stmt.Close()
		}
	}

	return db.conn.Close()
}

func (db *SQLite) createTables() error {
	trendingTable := `
	CREATE TABLE IF NOT EXISTS trending (
		key TEXT PRIMARY KEY NOT NULL,
		search_term TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 1,
		movie_id INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL DEFAULT '',
		poster_url TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`

	countIndex := `CREATE INDEX IF NOT EXISTS idx_trending_count ON trending(count DESC, key)`

	if _, err := db.conn.Exec(trendingTable); err != nil {
		return fmt.Errorf("failed to create trending table: %w", err)
	}

	if _, err := db.conn.Exec(countIndex); err != nil {
		return fmt.Errorf("failed to create trending index: %w", err)
	}

	return nil
}

func (db *SQLite) prepareStatements() error {
	var err error

	db.stmtRecord, err = db.conn.Prepare(`
	INSERT INTO trending (key, search_term, count, movie_id, title, poster_url, created_at, updated_at)
	VALUES (?, ?, 1, ?, ?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET count = count + 1, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}

	db.stmtList, err = db.conn.Prepare(`
	SELECT key, search_term, count, movie_id, title, poster_url, created_at, updated_at
	FROM trending ORDER BY count DESC, key ASC LIMIT ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	db.stmtPrune, err = db.conn.Prepare("DELETE FROM trending WHERE updated_at < ?")
	if err != nil {
		return fmt.Errorf("failed to prepare prune statement: %w", err)
	}

	return nil
}

func (db *SQLite) RecordSearch(ctx context.Context, term string, first models.Movie) error {
	key, err := normalizedKey(term)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	rec := models.NewTrendingRecord(term, first, db.imageBase, db.now())
	_, err = db.stmtRecord.ExecContext(ctx, key, rec.SearchTerm, rec.MovieID, rec.Title, rec.PosterURL,
		rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano())
	if err != nil {
		return apperrors.NewStoreError(fmt.Sprintf("failed to record search %q", term), err)
	}

	return nil
}

func (db *SQLite) ListTrending(ctx context.Context, limit int) ([]models.TrendingRecord, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}

	rows, err := db.stmtList.QueryContext(ctx, limit)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list trending searches", err)
	}
	defer rows.Close()

	var records []models.TrendingRecord
	for rows.Next() {
		var rec models.TrendingRecord
		var created, updated int64
		if err := rows.Scan(&rec.Key, &rec.SearchTerm, &rec.Count, &rec.MovieID, &rec.Title,
			&rec.PosterURL, &created, &updated); err != nil {
			return nil, apperrors.NewStoreError("failed to scan trending record", err)
		}
		rec.CreatedAt = time.Unix(0, created)
		rec.UpdatedAt = time.Unix(0, updated)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("error iterating trending records", err)
	}

	return records, nil
}

func (db *SQLite) Prune(ctx context.Context, before time.Time) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.stmtPrune.ExecContext(ctx, before.UnixNano())
	if err != nil {
		return 0, apperrors.NewStoreError("failed to prune trending searches", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.NewStoreError("failed to count pruned records", err)
	}
	return int(n), nil
}

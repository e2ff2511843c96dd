package rickmorty

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	appErrors "rmselect/internal/errors"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultCacheTTL is how long a cached page stays fresh.
const DefaultCacheTTL = 24 * time.Hour

const cacheSchema = `
CREATE TABLE IF NOT EXISTS pages (
	term       TEXT    NOT NULL,
	page       INTEGER NOT NULL,
	body       BLOB    NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (term, page)
)`

// Cache stores fetched pages in SQLite, keyed by normalized search term and
// page number, so a repeated search does not hit the network.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(ctx context.Context, path string, ttl time.Duration) (*Cache, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "cache path is empty", nil)
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	//nolint:gosec // G301: cache directory lives under the user's home
	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, appErrors.New(appErrors.CodeCacheFailed, "create cache directory", err)
	}

	db, err := sql.Open("sqlite", buildCacheDSN(trimmed))
	if err != nil {
		return nil, appErrors.New(appErrors.CodeCacheFailed, "open page cache", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeCacheFailed, "ping page cache", err)
	}
	if _, err := db.ExecContext(ctx, cacheSchema); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeCacheFailed, "create page cache schema", err)
	}
	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

// buildCacheDSN creates a read-write WAL DSN for the given path.
func buildCacheDSN(path string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "journal_mode(WAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

// normalizeTerm folds case and surrounding space; the API matches names
// case-insensitively, so "Rick" and "rick " share cache rows.
func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Get returns the cached page, if present and fresh.
func (c *Cache) Get(ctx context.Context, term string, page int) (Page, bool, error) {
	var (
		body      []byte
		fetchedAt int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM pages WHERE term = ? AND page = ?`,
		normalizeTerm(term), page,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Page{}, false, nil
	}
	if err != nil {
		return Page{}, false, appErrors.New(appErrors.CodeCacheFailed, "read cached page", err)
	}
	if c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return Page{}, false, nil
	}

	var p Page
	if err := json.Unmarshal(body, &p); err != nil {
		return Page{}, false, appErrors.New(appErrors.CodeDecodeFailed, "decode cached page", err)
	}
	return p, true, nil
}

// Put stores a page, replacing any earlier copy.
func (c *Cache) Put(ctx context.Context, term string, page int, p Page) error {
	body, err := json.Marshal(p)
	if err != nil {
		return appErrors.New(appErrors.CodeCacheFailed, "encode page", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pages (term, page, body, fetched_at) VALUES (?, ?, ?, ?)`,
		normalizeTerm(term), page, body, c.now().Unix(),
	)
	if err != nil {
		return appErrors.New(appErrors.CodeCacheFailed, fmt.Sprintf("store page %d", page), err)
	}
	return nil
}

// Prune deletes expired rows and returns how many were removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-c.ttl).Unix()
	res, err := c.db.ExecContext(ctx, `DELETE FROM pages WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, appErrors.New(appErrors.CodeCacheFailed, "prune page cache", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Package cache is the client-side durable key-value store: one serialized
// JSON blob per collection key, standing in for the browser localStorage the
// web client uses. Writes are eager whole-blob overwrites.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mkessler/stemtutor/internal/logger"
)

// Well-known collection keys.
const (
	KeyCourses      = "courses"
	KeySkillNodes   = "skillNodes"
	KeyRecentTopics = "recentTopics"
)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Cache wraps the SQLite-backed key-value table.
type Cache struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db, log: logger.Default().WithPrefix("cache")}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get loads the blob stored under key into v. A missing key or a corrupt
// blob is reported as a miss, never as an error that could break rendering.
func (c *Cache) Get(ctx context.Context, key string, v any) (bool, error) {
	query, args, err := sq.Select("value").From("collections").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return false, err
	}

	var raw string
	err = c.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		c.log.Warn("corrupt blob under key %s, treating as miss: %v", key, err)
		return false, nil
	}
	return true, nil
}

// Put serializes v and overwrites the blob stored under key.
func (c *Cache) Put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("collections").
		Columns("key", "value", "updated_at").
		Values(key, string(raw), time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	_, err = c.db.ExecContext(ctx, query, args...)
	if err != nil {
		c.log.Error("failed to write key %s: %v", key, err)
	}
	return err
}

// Delete removes the blob stored under key, if any.
func (c *Cache) Delete(ctx context.Context, key string) error {
	query, args, err := sq.Delete("collections").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, query, args...)
	return err
}

// Keys lists the stored collection keys in order.
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("key").From("collections").OrderBy("key").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

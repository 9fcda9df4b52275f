// Package catalog indexes committed samples so they can be listed and
// reopened. SQLite is preferred; a JSONL file is used when the database
// cannot be opened.
package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// SQLiteStore persists catalog entries in a SQLite database.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// Open creates (or opens) the database at path. If SQLite is unusable the
// store transparently falls back to a JSONL file next to it.
func Open(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	store := &SQLiteStore{path: path}
	db, err := sql.Open("sqlite", path)
	if err == nil {
		store.db = db
		err = store.init()
	}
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		store.db = nil
		store.fallback = NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl")
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		path TEXT NOT NULL,
		session_id TEXT,
		mode TEXT,
		rect TEXT,
		package TEXT,
		activity TEXT,
		node_count INTEGER,
		crop_black INTEGER,
		empty_nodes INTEGER,
		created_at TEXT
	);`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS samples_name ON samples(name);`)
	return err
}

// Record inserts a new entry.
func (s *SQLiteStore) Record(entry domain.CatalogEntry) error {
	if s.db == nil {
		return s.fallback.Record(entry)
	}
	rect, err := json.Marshal(entry.Rect)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO samples
		(name, path, session_id, mode, rect, package, activity, node_count, crop_black, empty_nodes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Name,
		entry.Path,
		entry.SessionID,
		string(entry.Mode),
		string(rect),
		entry.Package,
		entry.Activity,
		entry.NodeCount,
		boolToInt(entry.Warnings.CropProbablyBlack),
		boolToInt(entry.Warnings.EmptyNodes),
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

const selectColumns = "SELECT name, path, session_id, mode, rect, package, activity, node_count, crop_black, empty_nodes, created_at FROM samples"

// Entries returns entries newest first. search matches name, package or
// path; limit <= 0 means no limit.
func (s *SQLiteStore) Entries(limit int, search string) ([]domain.CatalogEntry, error) {
	if s.db == nil {
		return s.fallback.Entries(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString(selectColumns)
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE name LIKE ? OR package LIKE ? OR path LIKE ?")
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	builder.WriteString(" ORDER BY id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	return s.query(builder.String(), args...)
}

// Last returns the most recently recorded entry.
func (s *SQLiteStore) Last() (domain.CatalogEntry, error) {
	if s.db == nil {
		return s.fallback.Last()
	}
	return s.one(selectColumns + " ORDER BY id DESC LIMIT 1")
}

// Lookup returns the newest entry with the given name.
func (s *SQLiteStore) Lookup(name string) (domain.CatalogEntry, error) {
	if s.db == nil {
		return s.fallback.Lookup(name)
	}
	return s.one(selectColumns+" WHERE name = ? ORDER BY id DESC LIMIT 1", name)
}

func (s *SQLiteStore) one(query string, args ...interface{}) (domain.CatalogEntry, error) {
	entries, err := s.query(query, args...)
	if err != nil {
		return domain.CatalogEntry{}, err
	}
	if len(entries) == 0 {
		return domain.CatalogEntry{}, domain.ErrNotFound
	}
	return entries[0], nil
}

func (s *SQLiteStore) query(query string, args ...interface{}) ([]domain.CatalogEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.CatalogEntry
	for rows.Next() {
		var (
			e                 domain.CatalogEntry
			mode, rect, ts    string
			cropBlack, empty  int
			session, pkg, act sql.NullString
		)
		if err := rows.Scan(&e.Name, &e.Path, &session, &mode, &rect, &pkg, &act,
			&e.NodeCount, &cropBlack, &empty, &ts); err != nil {
			return nil, err
		}
		e.SessionID, e.Package, e.Activity = session.String, pkg.String, act.String
		e.Mode = domain.CaptureMode(mode)
		if rect != "" {
			if err := json.Unmarshal([]byte(rect), &e.Rect); err != nil {
				return nil, fmt.Errorf("decode rect for %s: %w", e.Name, err)
			}
		}
		e.Warnings = domain.Warnings{CropProbablyBlack: cropBlack == 1, EmptyNodes: empty == 1}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Path returns the backing store path.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Backend names the active storage backend.
func (s *SQLiteStore) Backend() string {
	if s.db == nil {
		return "jsonl"
	}
	return "sqlite"
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *SQLiteStore) Ping() error {
	if s.db == nil {
		return errors.New("sqlite unavailable, using jsonl fallback")
	}
	return s.db.Ping()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.Catalog = (*SQLiteStore)(nil)

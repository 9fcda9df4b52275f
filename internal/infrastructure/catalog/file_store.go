package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// FileStore appends catalog entries to a jsonl file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Record implements ports.Catalog.
func (f *FileStore) Record(entry domain.CatalogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = file.Write(append(data, '\n'))
	return err
}

// Entries returns entries newest first.
func (f *FileStore) Entries(limit int, search string) ([]domain.CatalogEntry, error) {
	all, err := f.load()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(search)
	var out []domain.CatalogEntry
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		if needle != "" && !matches(e, needle) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Last returns the most recent entry.
func (f *FileStore) Last() (domain.CatalogEntry, error) {
	all, err := f.load()
	if err != nil {
		return domain.CatalogEntry{}, err
	}
	if len(all) == 0 {
		return domain.CatalogEntry{}, domain.ErrNotFound
	}
	return all[len(all)-1], nil
}

// Lookup returns the newest entry with the given name.
func (f *FileStore) Lookup(name string) (domain.CatalogEntry, error) {
	all, err := f.load()
	if err != nil {
		return domain.CatalogEntry{}, err
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Name == name {
			return all[i], nil
		}
	}
	return domain.CatalogEntry{}, domain.ErrNotFound
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// load reads all entries, skipping lines that do not parse.
func (f *FileStore) load() ([]domain.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []domain.CatalogEntry
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var e domain.CatalogEntry
		if err := json.Unmarshal(line, &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func matches(e domain.CatalogEntry, needle string) bool {
	for _, field := range []string{e.Name, e.Package, e.Path} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

var _ ports.Catalog = (*FileStore)(nil)

package catalog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

func entry(name, pkg string, at time.Time) domain.CatalogEntry {
	return domain.CatalogEntry{
		Name:      name,
		Path:      filepath.Join("/samples", name),
		SessionID: "0000-" + name,
		Mode:      domain.ModeRect,
		Rect:      domain.Rect{X: 10, Y: 20, W: 30, H: 40},
		Package:   pkg,
		Activity:  ".Main",
		NodeCount: 3,
		Warnings:  domain.Warnings{EmptyNodes: name == "empty"},
		CreatedAt: at,
	}
}

func stores(t *testing.T) map[string]ports.Catalog {
	dir := t.TempDir()
	sqlite := Open(filepath.Join(dir, "catalog.db"))
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]ports.Catalog{
		"sqlite": sqlite,
		"jsonl":  NewFileStore(filepath.Join(dir, "catalog.jsonl")),
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Last(); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("Last() on empty catalog = %v, want ErrNotFound", err)
			}
			first := entry("login", "com.example", base)
			second := entry("empty", "com.other", base.Add(time.Minute))
			third := entry("settings", "com.android.settings", base.Add(2*time.Minute))
			for _, e := range []domain.CatalogEntry{first, second, third} {
				if err := store.Record(e); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			last, err := store.Last()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(third, last); diff != "" {
				t.Fatalf("Last() mismatch (-want +got):\n%s", diff)
			}

			all, err := store.Entries(0, "")
			if err != nil || len(all) != 3 || all[0].Name != "settings" || all[2].Name != "login" {
				t.Fatalf("Entries() = %+v, %v", all, err)
			}
			if !all[1].Warnings.EmptyNodes {
				t.Fatal("warnings not persisted")
			}

			limited, _ := store.Entries(2, "")
			if len(limited) != 2 {
				t.Fatalf("limit ignored: %d", len(limited))
			}

			found, _ := store.Entries(0, "example")
			if len(found) != 1 || found[0].Name != "login" {
				t.Fatalf("search = %+v", found)
			}

			got, err := store.Lookup("empty")
			if err != nil || got.Package != "com.other" {
				t.Fatalf("Lookup() = %+v, %v", got, err)
			}
			if _, err := store.Lookup("missing"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("Lookup(missing) = %v", err)
			}
		})
	}
}

func TestOpenFallsBackToJSONL(t *testing.T) {
	// a directory where the database file should be makes sqlite unusable
	dir := t.TempDir()
	store := Open(dir)
	if store.Backend() != "jsonl" {
		t.Skip("sqlite opened a directory path on this platform")
	}
	if err := store.Record(entry("x", "p", time.Now().UTC())); err != nil {
		t.Fatalf("Record() via fallback error = %v", err)
	}
	if _, err := store.Last(); err != nil {
		t.Fatalf("Last() via fallback error = %v", err)
	}
}

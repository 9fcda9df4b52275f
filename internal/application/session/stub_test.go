package session

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/pkg/logger"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

var errStub = errors.New("stub failure")

type element struct {
	id, text, desc, cls string
	clickable           bool
	bounds              domain.Bounds
	parent              *element
}

func (e *element) ID() (string, error)            { return e.id, nil }
func (e *element) Text() (string, error)          { return e.text, nil }
func (e *element) Desc() (string, error)          { return e.desc, nil }
func (e *element) ClassName() (string, error)     { return e.cls, nil }
func (e *element) PackageName() (string, error)   { return "com.example", nil }
func (e *element) Clickable() (bool, error)       { return e.clickable, nil }
func (e *element) Enabled() (bool, error)         { return true, nil }
func (e *element) VisibleToUser() (bool, error)   { return true, nil }
func (e *element) Depth() (int, error)            { return 3, nil }
func (e *element) Bounds() (domain.Bounds, error) { return e.bounds, nil }

func (e *element) Parent() (ports.RawElement, error) {
	if e.parent == nil {
		return nil, nil
	}
	return e.parent, nil
}

type tree struct {
	nodes []ports.RawElement
}

func (t *tree) QueryIntersecting(context.Context, domain.Rect) ([]ports.RawElement, error) {
	return t.nodes, nil
}

func (t *tree) QueryAll(context.Context) ([]ports.RawElement, error) {
	return t.nodes, nil
}

type frame struct {
	size     domain.Size
	released *int
	mu       *sync.Mutex
}

func (f frame) Size() domain.Size { return f.size }

func (f frame) Release() {
	f.mu.Lock()
	*f.released++
	f.mu.Unlock()
}

// capture hands out frames and counts how many were released.
type capture struct {
	fail     bool
	pixel    color.RGBA
	mu       sync.Mutex
	taken    int
	released int
}

func (c *capture) frame(size domain.Size) frame {
	c.mu.Lock()
	c.taken++
	c.mu.Unlock()
	return frame{size: size, released: &c.released, mu: &c.mu}
}

func (c *capture) CaptureFullScreen(context.Context) (ports.Image, error) {
	if c.fail {
		return nil, errStub
	}
	return c.frame(domain.Size{Width: 1080, Height: 2400}), nil
}

func (c *capture) Crop(_ ports.Image, rect domain.Rect) (ports.Image, error) {
	return c.frame(domain.Size{Width: rect.W, Height: rect.H}), nil
}

func (c *capture) Save(_ ports.Image, path string) error {
	return os.WriteFile(path, []byte("png"), 0o644)
}

func (c *capture) PixelAt(ports.Image, int, int) (color.RGBA, error) {
	return c.pixel, nil
}

func (c *capture) balanced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.taken == c.released
}

type device struct{}

func (device) Device(context.Context) (domain.DeviceInfo, error) {
	return domain.DeviceInfo{Brand: "Acme", Model: "T1", Release: "14", Width: 1080, Height: 2400}, nil
}

type foreground struct{}

func (foreground) Foreground(context.Context) (domain.AppInfo, error) {
	return domain.AppInfo{Package: "com.example", Activity: ".MainActivity"}, nil
}

// namer replays scripted answers; hook, when set, runs before each answer.
type namer struct {
	answers []string
	cancel  bool
	err     error
	block   bool
	hook    func()
	calls   int
}

func (n *namer) PromptName(ctx context.Context, _ string) (string, bool, error) {
	i := n.calls
	n.calls++
	if n.hook != nil {
		n.hook()
	}
	if n.block {
		<-ctx.Done()
		return "", false, ctx.Err()
	}
	if n.err != nil {
		return "", false, n.err
	}
	if n.cancel {
		return "", false, nil
	}
	if i < len(n.answers) {
		return n.answers[i], true, nil
	}
	return n.answers[len(n.answers)-1], true, nil
}

// fsStorage works on the real filesystem under a test temp dir.
type fsStorage struct {
	failCopy bool
}

func (fsStorage) MkdirAll(path string) error { return os.MkdirAll(path, 0o755) }

func (fsStorage) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (fsStorage) WriteFile(path string, data []byte) error { return os.WriteFile(path, data, 0o644) }
func (fsStorage) RemoveAll(path string) error              { return os.RemoveAll(path) }

func (s fsStorage) CopyDir(src, dst string) error {
	if s.failCopy {
		// leave a partial destination behind
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return err
		}
		return errStub
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}

type memCatalog struct {
	entries []domain.CatalogEntry
}

func (m *memCatalog) Record(e domain.CatalogEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memCatalog) Entries(int, string) ([]domain.CatalogEntry, error) { return m.entries, nil }

func (m *memCatalog) Last() (domain.CatalogEntry, error) {
	if len(m.entries) == 0 {
		return domain.CatalogEntry{}, domain.ErrNotFound
	}
	return m.entries[len(m.entries)-1], nil
}

func (m *memCatalog) Lookup(string) (domain.CatalogEntry, error) {
	return domain.CatalogEntry{}, domain.ErrNotFound
}

type fixture struct {
	ctrl    *Controller
	tree    *tree
	capture *capture
	namer   *namer
	catalog *memCatalog
	scratch string
	output  string
}

func newFixture(t *testing.T, nodes ...ports.RawElement) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		tree:    &tree{nodes: nodes},
		capture: &capture{pixel: color.RGBA{R: 200, G: 200, B: 200, A: 255}},
		namer:   &namer{answers: []string{"login button"}},
		catalog: &memCatalog{},
		scratch: filepath.Join(root, "scratch"),
		output:  filepath.Join(root, "samples"),
	}
	seq := 0
	f.ctrl = &Controller{
		Config: domain.Config{
			Sampling: domain.SamplingSettings{
				TreeRetry:         2,
				TreeRetryInterval: "0s",
				CaptureDelay:      "0s",
			},
			Naming: domain.NamingSettings{MaxAttempts: 3, MaxLength: 60, PromptTimeout: "2s"},
		},
		ScratchRoot: f.scratch,
		OutputRoot:  f.output,
		Tree:        f.tree,
		Foreground:  foreground{},
		Capture:     f.capture,
		Device:      device{},
		Namer:       f.namer,
		Storage:     fsStorage{},
		Catalog:     f.catalog,
		Logger:      logger.Nop(),
		Now:         func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		NewID: func() string {
			seq++
			return fmt.Sprintf("%08d-0000-0000-0000-000000000000", seq)
		},
	}
	if err := os.MkdirAll(f.scratch, 0o755); err != nil {
		t.Fatal(err)
	}
	return f
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// Package ports defines the interfaces (ports) between the sampling core and
// its collaborators.
//
// The core never talks to a concrete UI-automation runtime, screen grabber or
// prompt. Adapters in the infrastructure layer implement these interfaces,
// and tests substitute scripted doubles.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., TreeProvider, CaptureProvider)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"image/color"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.uisampler/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// RawElement is a live tree node. Every accessor is individually fallible;
// callers degrade a failing accessor to "absent" rather than dropping the node.
type RawElement interface {
	ID() (string, error)
	Text() (string, error)
	Desc() (string, error)
	ClassName() (string, error)
	PackageName() (string, error)
	Clickable() (bool, error)
	Enabled() (bool, error)
	VisibleToUser() (bool, error)
	Depth() (int, error)
	Bounds() (domain.Bounds, error)
	// Parent returns nil at the root.
	Parent() (RawElement, error)
}

// TreeProvider exposes the current UI element tree.
type TreeProvider interface {
	// QueryIntersecting returns elements whose bounds intersect rect.
	QueryIntersecting(ctx context.Context, rect domain.Rect) ([]RawElement, error)
	// QueryAll returns every element, used by full-dump mode.
	QueryAll(ctx context.Context) ([]RawElement, error)
}

// ForegroundProvider reports the application owning the screen. Optional.
type ForegroundProvider interface {
	Foreground(ctx context.Context) (domain.AppInfo, error)
}

// Image is a captured frame. The sampling task owns it and must Release it on
// every exit path.
type Image interface {
	Size() domain.Size
	Release()
}

// CaptureProvider grabs and manipulates screen images.
type CaptureProvider interface {
	CaptureFullScreen(ctx context.Context) (Image, error)
	Crop(img Image, rect domain.Rect) (Image, error)
	Save(img Image, path string) error
	PixelAt(img Image, x, y int) (color.RGBA, error)
}

// DeviceProvider describes the display samples are taken on.
type DeviceProvider interface {
	Device(ctx context.Context) (domain.DeviceInfo, error)
}

// Namer asks the operator for a sample name. ok is false when the operator
// cancelled. Implementations should honour ctx; the caller bounds the wait.
type Namer interface {
	PromptName(ctx context.Context, title string) (name string, ok bool, err error)
}

// Storage is the filesystem surface used for scratch and permanent samples.
type Storage interface {
	MkdirAll(path string) error
	Exists(path string) (bool, error)
	WriteFile(path string, data []byte) error
	// CopyDir recursively copies the contents of src into dst, creating dst
	// and any parents.
	CopyDir(src, dst string) error
	RemoveAll(path string) error
}

// Catalog indexes committed samples.
type Catalog interface {
	Record(entry domain.CatalogEntry) error
	Entries(limit int, search string) ([]domain.CatalogEntry, error)
	Last() (domain.CatalogEntry, error)
	Lookup(name string) (domain.CatalogEntry, error)
}

// Clipboard provides cross-platform clipboard integration for copying paths.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

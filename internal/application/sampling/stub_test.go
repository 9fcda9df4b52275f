package sampling

import (
	"context"
	"errors"
	"image/color"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

var errAccessor = errors.New("accessor failed")

// stubElement is a scripted RawElement. Fields named in fail make their
// accessor return errAccessor.
type stubElement struct {
	id, text, desc, cls, pkg string
	clickable, enabled, vis  bool
	depth                    int
	bounds                   domain.Bounds
	parent                   *stubElement
	fail                     map[string]bool
}

func (s *stubElement) err(name string) error {
	if s.fail[name] {
		return errAccessor
	}
	return nil
}

func (s *stubElement) ID() (string, error)          { return s.id, s.err("id") }
func (s *stubElement) Text() (string, error)        { return s.text, s.err("text") }
func (s *stubElement) Desc() (string, error)        { return s.desc, s.err("desc") }
func (s *stubElement) ClassName() (string, error)   { return s.cls, s.err("cls") }
func (s *stubElement) PackageName() (string, error) { return s.pkg, s.err("pkg") }
func (s *stubElement) Clickable() (bool, error)     { return s.clickable, s.err("clickable") }
func (s *stubElement) Enabled() (bool, error)       { return s.enabled, s.err("enabled") }
func (s *stubElement) VisibleToUser() (bool, error) { return s.vis, s.err("visible") }
func (s *stubElement) Depth() (int, error)          { return s.depth, s.err("depth") }
func (s *stubElement) Bounds() (domain.Bounds, error) {
	return s.bounds, s.err("bounds")
}

func (s *stubElement) Parent() (ports.RawElement, error) {
	if err := s.err("parent"); err != nil {
		return nil, err
	}
	if s.parent == nil {
		return nil, nil
	}
	return s.parent, nil
}

// stubTree answers each query with the next scripted response.
type stubTree struct {
	responses [][]ports.RawElement
	errs      []error
	calls     int
}

func (t *stubTree) next() ([]ports.RawElement, error) {
	i := t.calls
	t.calls++
	var err error
	if i < len(t.errs) {
		err = t.errs[i]
	}
	if i < len(t.responses) {
		return t.responses[i], err
	}
	return nil, err
}

func (t *stubTree) QueryIntersecting(context.Context, domain.Rect) ([]ports.RawElement, error) {
	return t.next()
}

func (t *stubTree) QueryAll(context.Context) ([]ports.RawElement, error) {
	return t.next()
}

// stubImage is an in-memory frame for the black-frame check.
type stubImage struct {
	size  domain.Size
	pixel func(x, y int) color.RGBA
}

func (s stubImage) Size() domain.Size { return s.size }
func (s stubImage) Release()          {}

type stubCapture struct {
	fail bool
}

func (stubCapture) CaptureFullScreen(context.Context) (ports.Image, error) { return nil, nil }
func (stubCapture) Crop(ports.Image, domain.Rect) (ports.Image, error)     { return nil, nil }
func (stubCapture) Save(ports.Image, string) error                         { return nil }

func (c stubCapture) PixelAt(img ports.Image, x, y int) (color.RGBA, error) {
	if c.fail {
		return color.RGBA{}, errAccessor
	}
	return img.(stubImage).pixel(x, y), nil
}

package capture

import (
	"context"
	"fmt"
	"image"
	"os"
	"runtime"

	"github.com/kbinani/screenshot"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// Desktop captures an attached display.
type Desktop struct {
	ops
	// Display is the index of the display to capture.
	Display int
}

// NewDesktop returns a capture source for display index.
func NewDesktop(display int) *Desktop {
	return &Desktop{Display: display}
}

func (d *Desktop) bounds() (domain.Rect, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return domain.Rect{}, domain.ErrNoDisplay
	}
	if d.Display < 0 || d.Display >= n {
		return domain.Rect{}, fmt.Errorf("%w: display %d of %d", domain.ErrNoDisplay, d.Display, n)
	}
	b := screenshot.GetDisplayBounds(d.Display)
	return domain.Rect{X: b.Min.X, Y: b.Min.Y, W: b.Dx(), H: b.Dy()}, nil
}

// CaptureFullScreen grabs the whole display.
func (d *Desktop) CaptureFullScreen(context.Context) (ports.Image, error) {
	r, err := d.bounds()
	if err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(image.Rect(r.X, r.Y, r.Right(), r.Bottom()))
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", d.Display, err)
	}
	return NewFrame(img), nil
}

// Device describes the display being captured.
func (d *Desktop) Device(context.Context) (domain.DeviceInfo, error) {
	r, err := d.bounds()
	if err != nil {
		return domain.DeviceInfo{}, err
	}
	host, _ := os.Hostname()
	return domain.DeviceInfo{
		Brand:   runtime.GOOS,
		Model:   host,
		Release: runtime.GOARCH,
		Width:   r.W,
		Height:  r.H,
	}, nil
}

// Displays reports how many displays can be captured.
func Displays() int {
	return screenshot.NumActiveDisplays()
}

var (
	_ ports.CaptureProvider = (*Desktop)(nil)
	_ ports.DeviceProvider  = (*Desktop)(nil)
)

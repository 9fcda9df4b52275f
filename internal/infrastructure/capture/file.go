package capture

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// File replays a saved screenshot as the screen. Paired with a tree
// snapshot it lets a device dump be sampled offline.
type File struct {
	ops
	Path string
	// Info overrides the device description; width and height always
	// come from the image.
	Info domain.DeviceInfo
}

// NewFile returns a capture source reading path.
func NewFile(path string) *File {
	return &File{Path: path}
}

func (f *File) decode() (image.Image, error) {
	in, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoDisplay, err)
	}
	defer in.Close()
	img, _, err := image.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return img, nil
}

// CaptureFullScreen loads the screenshot.
func (f *File) CaptureFullScreen(context.Context) (ports.Image, error) {
	img, err := f.decode()
	if err != nil {
		return nil, err
	}
	return NewFrame(img), nil
}

// Device reports the screenshot dimensions.
func (f *File) Device(context.Context) (domain.DeviceInfo, error) {
	in, err := os.Open(f.Path)
	if err != nil {
		return domain.DeviceInfo{}, fmt.Errorf("%w: %v", domain.ErrNoDisplay, err)
	}
	defer in.Close()
	cfg, _, err := image.DecodeConfig(in)
	if err != nil {
		return domain.DeviceInfo{}, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	info := f.Info
	info.Width, info.Height = cfg.Width, cfg.Height
	return info, nil
}

var (
	_ ports.CaptureProvider = (*File)(nil)
	_ ports.DeviceProvider  = (*File)(nil)
)

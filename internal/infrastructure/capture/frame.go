// Package capture provides screen sources for sampling: the live desktop
// and previously saved PNG screenshots.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

var errReleased = errors.New("frame already released")

// Frame is an in-memory RGBA frame.
type Frame struct {
	img *image.RGBA
}

// NewFrame copies src into a frame with its origin at (0,0).
func NewFrame(src image.Image) *Frame {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Frame{img: dst}
}

// Size implements ports.Image.
func (f *Frame) Size() domain.Size {
	if f.img == nil {
		return domain.Size{}
	}
	b := f.img.Bounds()
	return domain.Size{Width: b.Dx(), Height: b.Dy()}
}

// Release drops the pixel buffer.
func (f *Frame) Release() {
	f.img = nil
}

// ops implements the image half of ports.CaptureProvider for Frames.
type ops struct{}

func (ops) frame(img ports.Image) (*Frame, error) {
	f, ok := img.(*Frame)
	if !ok {
		return nil, fmt.Errorf("unsupported image type %T", img)
	}
	if f.img == nil {
		return nil, errReleased
	}
	return f, nil
}

// Crop copies rect out of img. The rect must lie inside the frame.
func (o ops) Crop(img ports.Image, rect domain.Rect) (ports.Image, error) {
	f, err := o.frame(img)
	if err != nil {
		return nil, err
	}
	r := image.Rect(rect.X, rect.Y, rect.Right(), rect.Bottom())
	if r.Empty() || !r.In(f.img.Bounds()) {
		return nil, fmt.Errorf("crop %s outside frame %v", rect, f.img.Bounds().Size())
	}
	return NewFrame(f.img.SubImage(r)), nil
}

// Save encodes img as PNG at path.
func (o ops) Save(img ports.Image, path string) (err error) {
	f, err := o.frame(img)
	if err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePermissions)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(out, f.img)
}

// PixelAt returns the colour at (x, y).
func (o ops) PixelAt(img ports.Image, x, y int) (color.RGBA, error) {
	f, err := o.frame(img)
	if err != nil {
		return color.RGBA{}, err
	}
	if !(image.Point{X: x, Y: y}).In(f.img.Bounds()) {
		return color.RGBA{}, fmt.Errorf("pixel (%d,%d) outside frame", x, y)
	}
	return f.img.RGBAAt(x, y), nil
}

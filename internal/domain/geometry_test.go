package domain_test

import (
	"errors"
	"testing"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

var phone = domain.Size{Width: 1080, Height: 2400}

func TestNormalizeCorners(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Corners
		want domain.Rect
	}{
		{name: "drag down right", in: domain.Corners{X1: 10, Y1: 20, X2: 110, Y2: 220}, want: domain.Rect{X: 10, Y: 20, W: 100, H: 200}},
		{name: "drag up left", in: domain.Corners{X1: 110, Y1: 220, X2: 10, Y2: 20}, want: domain.Rect{X: 10, Y: 20, W: 100, H: 200}},
		{name: "zero width", in: domain.Corners{X1: 50, Y1: 50, X2: 50, Y2: 90}, want: domain.Rect{X: 50, Y: 50, W: 1, H: 40}},
		{name: "off screen", in: domain.Corners{X1: -50, Y1: 20, X2: 2000, Y2: 40}, want: domain.Rect{X: 0, Y: 20, W: 1079, H: 20}},
		{name: "single pixel at corner", in: domain.Corners{X1: 5000, Y1: 5000, X2: 5000, Y2: 5000}, want: domain.Rect{X: 1079, Y: 2399, W: 1, H: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.NormalizeCorners(tt.in, phone); got != tt.want {
				t.Fatalf("NormalizeCorners(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeCornersOrderIndependentAndInside(t *testing.T) {
	values := []int{-100, 0, 1, 539, 1079, 1080, 2399, 2400, 9999}
	for _, x1 := range values {
		for _, y1 := range values {
			for _, x2 := range values {
				for _, y2 := range values {
					a := domain.NormalizeCorners(domain.Corners{X1: x1, Y1: y1, X2: x2, Y2: y2}, phone)
					b := domain.NormalizeCorners(domain.Corners{X1: x2, Y1: y2, X2: x1, Y2: y1}, phone)
					if a != b {
						t.Fatalf("order dependent: %+v vs %+v for (%d,%d,%d,%d)", a, b, x1, y1, x2, y2)
					}
					if !a.Within(phone) {
						t.Fatalf("%+v escapes the screen for (%d,%d,%d,%d)", a, x1, y1, x2, y2)
					}
				}
			}
		}
	}
}

func TestNormalizeRect(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Rect
		want domain.Rect
	}{
		{name: "inside", in: domain.Rect{X: 10, Y: 10, W: 100, H: 100}, want: domain.Rect{X: 10, Y: 10, W: 100, H: 100}},
		{name: "extent clamped", in: domain.Rect{X: 1000, Y: 10, W: 500, H: 0}, want: domain.Rect{X: 1000, Y: 10, W: 80, H: 1}},
		{name: "negative origin", in: domain.Rect{X: -20, Y: -5, W: 40, H: 40}, want: domain.Rect{X: 0, Y: 0, W: 40, H: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.NormalizeRect(tt.in, phone); got != tt.want {
				t.Fatalf("NormalizeRect(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPointCropRectShiftsInsteadOfShrinking(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Point
		want domain.Rect
	}{
		{name: "centre", p: domain.Point{X: 540, Y: 1200}, want: domain.Rect{X: 410, Y: 1070, W: 260, H: 260}},
		{name: "top left", p: domain.Point{X: 5, Y: 5}, want: domain.Rect{X: 0, Y: 0, W: 260, H: 260}},
		{name: "bottom right", p: domain.Point{X: 1075, Y: 2395}, want: domain.Rect{X: 820, Y: 2140, W: 260, H: 260}},
		{name: "outside", p: domain.Point{X: -40, Y: 9000}, want: domain.Rect{X: 0, Y: 2140, W: 260, H: 260}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.PointCropRect(tt.p, 260, phone)
			if got != tt.want {
				t.Fatalf("PointCropRect(%+v) = %+v, want %+v", tt.p, got, tt.want)
			}
			if !got.Within(phone) {
				t.Fatalf("%+v escapes the screen", got)
			}
		})
	}

	small := domain.Size{Width: 100, Height: 300}
	if got := domain.PointCropRect(domain.Point{X: 50, Y: 50}, 260, small); got != (domain.Rect{X: 0, Y: 0, W: 100, H: 260}) {
		t.Fatalf("small screen crop = %+v", got)
	}
}

func TestBoundsCenterAndArea(t *testing.T) {
	b := domain.Bounds{Left: 10, Top: 21, Right: 31, Bottom: 40}
	if c := b.Center(); c != (domain.Point{X: 20, Y: 30}) {
		t.Fatalf("Center() = %+v", c)
	}
	if a := b.Area(); a != 21*19 {
		t.Fatalf("Area() = %d", a)
	}
	if a := (domain.Bounds{Left: 10, Right: 5, Bottom: 10}).Area(); a != 0 {
		t.Fatalf("inverted Area() = %d", a)
	}
	if c := (domain.Bounds{Left: -3, Top: -3}).Center(); c != (domain.Point{X: -2, Y: -2}) {
		t.Fatalf("negative Center() = %+v", c)
	}
}

func TestRegionResolve(t *testing.T) {
	got, err := domain.PointRegion(100, 150).Resolve(phone, 260)
	if err != nil {
		t.Fatal(err)
	}
	if got.Query != (domain.Rect{X: 100, Y: 150, W: 1, H: 1}) {
		t.Fatalf("point query = %+v", got.Query)
	}
	if got.Capture.W != 260 || got.Capture.H != 260 {
		t.Fatalf("point capture = %+v", got.Capture)
	}

	got, err = domain.CornerRegion(300, 300, 10, 10).Resolve(phone, 260)
	if err != nil {
		t.Fatal(err)
	}
	if got.Capture != got.Query || got.Capture != (domain.Rect{X: 10, Y: 10, W: 290, H: 290}) {
		t.Fatalf("corner region = %+v", got)
	}

	bad := []struct {
		name   string
		region domain.Region
		screen domain.Size
	}{
		{name: "no screen", region: domain.PointRegion(1, 1), screen: domain.Size{}},
		{name: "rect without shape", region: domain.Region{Mode: domain.ModeRect}, screen: phone},
		{name: "unknown mode", region: domain.Region{Mode: "lasso"}, screen: phone},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.region.Resolve(tt.screen, 260); !errors.Is(err, domain.ErrInvalidRegion) {
				t.Fatalf("Resolve() error = %v, want ErrInvalidRegion", err)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	long := ""
	for i := 0; i < 70; i++ {
		long += "x"
	}
	tests := []struct {
		in   string
		want string
	}{
		{in: "login button", want: "login button"},
		{in: "  a/b:c  ", want: "a_b_c"},
		{in: `w*x?y"z<>|\`, want: "w_x_y_z____"},
		{in: "tab\there", want: "tab_here"},
		{in: "   ", want: ""},
		{in: "", want: ""},
		{in: "..", want: "__"},
		{in: long, want: long[:60]},
		{in: "设置 页面", want: "设置 页面"},
	}
	for _, tt := range tests {
		if got := domain.SanitizeName(tt.in, 60); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package sampling

import (
	"image/color"
	"testing"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }
func intp(i int) *int       { return &i }

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		d    domain.ElementDescriptor
		want int
	}{
		{name: "empty", d: domain.ElementDescriptor{}, want: 0},
		{
			name: "clickable with id text desc",
			d: domain.ElementDescriptor{
				Clickable: boolp(true), ID: strp("id"), Text: strp("t"), Desc: strp("d"),
			},
			want: 1000 + 250 + 120 + 110,
		},
		{
			name: "empty strings do not count",
			d:    domain.ElementDescriptor{ID: strp(""), Text: strp(""), Clickable: boolp(false)},
			want: 0,
		},
		{name: "depth bonus", d: domain.ElementDescriptor{Depth: intp(5)}, want: 60},
		{name: "area penalty", d: domain.ElementDescriptor{Area: 12000}, want: -10},
		{name: "area penalty capped", d: domain.ElementDescriptor{Area: 1080 * 2400}, want: -600},
		{name: "area penalty floors", d: domain.ElementDescriptor{Area: 1199}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.d); got != tt.want {
				t.Fatalf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRankOrdersByDescendingScore(t *testing.T) {
	in := []domain.ElementDescriptor{
		{Text: strp("label")},
		{Clickable: boolp(true), ID: strp("btn")},
		{ID: strp("img")},
	}
	got := Rank(in)
	wantIDs := []string{"btn", "img", ""}
	for i, want := range wantIDs {
		if domain.Deref(got[i].ID) != want {
			t.Fatalf("rank %d = %q, want %q", i, domain.Deref(got[i].ID), want)
		}
	}
	if got[0].Score != 1250 {
		t.Fatalf("top score = %d", got[0].Score)
	}
}

func TestRankIsStableForEqualScores(t *testing.T) {
	in := []domain.ElementDescriptor{
		{Text: strp("first")},
		{Clickable: boolp(true)},
		{Text: strp("second")},
		{Text: strp("third")},
	}
	got := Rank(in)
	order := []string{domain.Deref(got[1].Text), domain.Deref(got[2].Text), domain.Deref(got[3].Text)}
	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("tie order = %v, want %v", order, want)
		}
	}
}

func TestProbablyBlack(t *testing.T) {
	size := domain.Size{Width: 100, Height: 100}
	black := stubImage{size: size, pixel: func(int, int) color.RGBA { return color.RGBA{A: 255} }}
	white := stubImage{size: size, pixel: func(int, int) color.RGBA { return color.RGBA{R: 255, G: 255, B: 255, A: 255} }}
	mostlyBlack := stubImage{size: size, pixel: func(x, _ int) color.RGBA {
		// two of the twenty diagonal samples are bright
		if x >= 90 {
			return color.RGBA{R: 200, G: 200, B: 200, A: 255}
		}
		return color.RGBA{R: 5, G: 5, B: 5, A: 255}
	}}
	halfBlack := stubImage{size: size, pixel: func(x, _ int) color.RGBA {
		if x >= 50 {
			return color.RGBA{R: 200, A: 255}
		}
		return color.RGBA{A: 255}
	}}

	tests := []struct {
		name    string
		img     stubImage
		capture stubCapture
		want    bool
	}{
		{name: "solid black", img: black, want: true},
		{name: "white", img: white, want: false},
		{name: "ninety percent dark", img: mostlyBlack, want: true},
		{name: "half dark", img: halfBlack, want: false},
		{name: "pixel read fails", img: black, capture: stubCapture{fail: true}, want: false},
		{name: "empty image", img: stubImage{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProbablyBlack(tt.capture, tt.img); got != tt.want {
				t.Fatalf("ProbablyBlack() = %v, want %v", got, tt.want)
			}
		})
	}
}

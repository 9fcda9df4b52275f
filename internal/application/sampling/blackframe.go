package sampling

import (
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// ProbablyBlack samples evenly spaced pixels along the diagonal of img and
// reports whether at least 90% of them are near-black. Secure surfaces and
// captures taken mid-transition typically come back solid black. Any pixel
// read failure makes the check report false.
func ProbablyBlack(capture ports.CaptureProvider, img ports.Image) bool {
	size := img.Size()
	if !size.Valid() {
		return false
	}
	samples := domain.BlackFrameSamples
	dark := 0
	for i := 0; i < samples; i++ {
		x := (i + 1) * size.Width / (samples + 1)
		y := (i + 1) * size.Height / (samples + 1)
		c, err := capture.PixelAt(img, x, y)
		if err != nil {
			return false
		}
		lum := (int(c.R) + int(c.G) + int(c.B)) / 3
		if lum < domain.BlackFrameLuminance {
			dark++
		}
	}
	return dark >= int(float64(samples)*domain.BlackFrameRatio)
}

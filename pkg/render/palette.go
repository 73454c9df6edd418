package render

import (
	"fmt"
	"image/color"

	"github.com/mazznoer/colorgrad"
)

// Scale is the viridis gradient sampled at n evenly spaced entries,
// entry 0 darkest and entry n-1 brightest.
type Scale struct {
	grad colorgrad.Gradient
	n    int
}

// Viridis returns the viridis scale resampled to n entries.
func Viridis(n int) Scale {
	return Scale{grad: colorgrad.Viridis(), n: n}
}

// Len returns the number of entries.
func (s Scale) Len() int {
	return s.n
}

// At returns entry i. Out of range indices are clamped.
func (s Scale) At(i int) color.RGBA {
	t := 0.0
	switch {
	case s.n <= 1 || i <= 0:
	case i >= s.n-1:
		t = 1
	default:
		t = float64(i) / float64(s.n-1)
	}
	r, g, b := s.grad.At(t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// hex formats c as #rrggbb.
func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

package render

import (
	"math/big"
)

// frame maps layout coordinates onto a canvas. The plot area sits inside
// fixed margins; vertical fractions run bottom up as in the layout.
type frame struct {
	width, height            float64
	left, right, top, bottom float64
	limit                    *big.Float
}

func newFrame(width, height int, limit *big.Int) frame {
	w, h := float64(width), float64(height)
	f := frame{
		width:  w,
		height: h,
		left:   w * 0.05,
		right:  w * 0.05,
		top:    h * 0.16,
		bottom: h * 0.22,
	}
	if limit != nil && limit.Sign() > 0 {
		f.limit = new(big.Float).SetInt(limit)
	}
	return f
}

func (f frame) plotWidth() float64 {
	return f.width - f.left - f.right
}

func (f frame) plotHeight() float64 {
	return f.height - f.top - f.bottom
}

// X converts an axis position to a canvas x coordinate.
func (f frame) X(pos *big.Int) float64 {
	if f.limit == nil || pos == nil {
		return f.left
	}
	r := new(big.Float).SetInt(pos)
	r.Quo(r, f.limit)
	v, _ := r.Float64()
	return f.left + v*f.plotWidth()
}

// Y converts a vertical fraction to a canvas y coordinate.
func (f frame) Y(frac float64) float64 {
	return f.top + (1-frac)*f.plotHeight()
}

// Band limits shared by all backends.
const (
	bandLow     = 0.25
	bandHigh    = 0.75
	dividerLow  = 0.2
	dividerHigh = 0.8
	markerY     = 0.5
)

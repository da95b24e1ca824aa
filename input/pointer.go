package input

import (
	"image"
	"math"
)

// Pointer is the cursor position clamped to the viewport.
type Pointer struct {
	x, y float64
}

// OnMove stores the raw position relative to origin, clamped to
// [0, width] x [0, height]. No history is kept.
func (p *Pointer) OnMove(rawX, rawY float64, origin image.Point, width, height float64) {
	if p == nil {
		return
	}
	p.x = clamp(rawX-float64(origin.X), 0, width)
	p.y = clamp(rawY-float64(origin.Y), 0, height)
}

// Position returns the clamped coordinates.
func (p *Pointer) Position() (x, y float64) {
	if p == nil {
		return 0, 0
	}
	return p.x, p.y
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

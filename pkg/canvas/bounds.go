package canvas

import "math"

// DefaultFootprint is the icon bounding box: 80 wide, 100 tall.
var DefaultFootprint = Size{Width: 80, Height: 100}

// Clamp limits v to [lo, hi]. If hi < lo the range is empty and v is pinned
// to lo. A NaN bound or a result that is not finite is also pinned to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(hi) {
		return lo
	}
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return lo
	}
	return v
}

// Bounds constrains icon top-left positions within a container.
type Bounds struct {
	// Footprint is the fixed icon size.
	Footprint Size
	// Margin insets every edge of the container. Zero keeps icons flush
	// with the container edges.
	Margin float64
}

// Range returns the allowed top-left interval on each axis for a container
// of size container. The upper bound can be below the lower one when the
// container is smaller than the footprint.
func (b Bounds) Range(container Size) (lo, hi Point) {
	lo = Point{X: b.Margin, Y: b.Margin}
	hi = Point{
		X: container.Width - b.Footprint.Width - b.Margin,
		Y: container.Height - b.Footprint.Height - b.Margin,
	}
	return lo, hi
}

// Clamp forces a candidate top-left position inside the container.
func (b Bounds) Clamp(p Point, container Size) Point {
	lo, hi := b.Range(container)
	return Point{
		X: Clamp(p.X, lo.X, hi.X),
		Y: Clamp(p.Y, lo.Y, hi.Y),
	}
}

// DropPosition centers the footprint under a canvas-local pointer and clamps
// the result. This is the position a drop commits.
func (b Bounds) DropPosition(local Point, container Size) Point {
	return b.Clamp(local.Sub(b.Footprint.Half()), container)
}

// Valid reports whether p already satisfies the clamp for container.
func (b Bounds) Valid(p Point, container Size) bool {
	return b.Clamp(p, container) == p
}

package canvas

import "math"

// Point is a pair of offsets in pixels. Depending on context it is an
// absolute screen position or a canvas-local position.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Half returns the offset from a top-left corner to the center of a box of
// this size.
func (s Size) Half() Point { return Point{X: s.Width / 2, Y: s.Height / 2} }

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Left   float64 `json:"left" toml:"left"`
	Top    float64 `json:"top" toml:"top"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// RectAt returns the rectangle of size s whose top-left corner is p.
func RectAt(p Point, s Size) Rect {
	return Rect{Left: p.X, Top: p.Y, Width: s.Width, Height: s.Height}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Contains reports whether p lies inside r. The left and top edges are
// inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// ToLocal converts an absolute pointer position into coordinates relative
// to the container's top-left corner. rect must be the container's current
// on-screen rectangle; no division happens here, so a zero-sized rect is fine.
func ToLocal(pointer Point, rect Rect) Point {
	return Point{X: pointer.X - rect.Left, Y: pointer.Y - rect.Top}
}

// Package canvas converts pointer coordinates into canvas-local space and
// keeps icon placements inside the canvas.
//
// All coordinates are float64 pixels. Screen coordinates are absolute (the
// host's pointer events); canvas-local coordinates are measured from the
// container's top-left corner.
//
// # Resolving Pointers
//
// The container rectangle must be sampled by the caller on every call since
// layout changes (scrolling, terminal resizes) move it:
//
//	local := canvas.ToLocal(canvas.Point{X: 412, Y: 96}, rect)
//
// # Clamping
//
// [Bounds] describes the icon footprint and an optional inset margin. Its
// Clamp method is the only place where committed positions are forced inside
// the container:
//
//	b := canvas.Bounds{Footprint: canvas.DefaultFootprint}
//	pos := b.Clamp(canvas.Point{X: 350, Y: 240}, rect.Size())
//
// When the container is smaller than the footprint the upper bound falls
// below the lower one and Clamp pins the position to the lower bound.
package canvas

// Package pkg provides the core libraries for folio, a desktop of featured
// applications whose icons can be dragged around and double-clicked open.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Geometry and state: [canvas], [placement]
//  2. Gestures: [drag], [motion], [activation]
//  3. Composition: [catalog], [desktop]
//
// Supporting packages are [errors] (coded errors), [observability] (hooks
// for gesture and HTTP events) and [buildinfo] (version metadata).
//
// # Architecture
//
// A pointer event flows through the packages like this:
//
//	screen pointer
//	     ↓
//	[canvas] ToLocal (container-relative point)
//	     ↓
//	[drag] Controller (one session at a time, commit clamps via [canvas] Bounds)
//	     ↓
//	[placement] Store (committed position, z-order)
//	     ↓
//	[motion] Tracker (displayed position springs toward the committed one)
//
// Double activations go through [activation] Dispatcher, which drops a
// launch of the icon that is currently being dragged.
//
// # Quick Start
//
// Drag an icon into the corner of a 400×300 container:
//
//	import (
//	    "github.com/matzehuels/folio/pkg/canvas"
//	    "github.com/matzehuels/folio/pkg/drag"
//	    "github.com/matzehuels/folio/pkg/placement"
//	)
//
//	store := placement.Seed([]placement.Entry{{ID: "ecommerce", Position: canvas.Point{X: 50, Y: 50}}})
//	ctrl := drag.NewController(store, canvas.Bounds{Footprint: canvas.DefaultFootprint}, nil)
//
//	container := canvas.Rect{Width: 400, Height: 300}
//	_ = ctrl.Begin("ecommerce", canvas.Point{X: 60, Y: 60}, container)
//	pos, _ := ctrl.End(canvas.Point{X: 390, Y: 290}, container)
//	// pos == (320, 200)
//
// [desktop] wires all of this together behind a single HandlePointer call,
// and [desktop.Replay] runs a recorded gesture script headlessly.
//
// # Main Packages
//
// [canvas] - Points, sizes, rectangles and the bounds resolver that keeps a
// dropped icon inside its container.
//
// [placement] - The only authoritative record of icon positions and
// stacking order.
//
// [drag] - The drag session state machine. Only commit writes positions.
//
// [motion] - Critically damped spring interpolation of displayed positions.
//
// [activation] - Double-activation dispatch with drag disambiguation.
//
// [catalog] - The featured applications, loaded from TOML with an embedded
// default.
//
// [desktop] - The composed engine shared by the terminal UI, the CLI and
// the HTTP API.
package pkg

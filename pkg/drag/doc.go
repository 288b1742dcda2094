// Package drag implements the drag session state machine for canvas icons.
//
// A [Controller] moves between two states:
//
//	Idle ──Begin──▶ Dragging ──End────▶ Idle   (position committed)
//	                         ──Cancel─▶ Idle   (store untouched)
//
// At most one session exists at a time. A Begin while dragging is rejected
// with SESSION_ACTIVE and the running session continues unchanged; hosts
// ignore that error.
//
// Pointer moves only update the session's transient pointer, which renderers
// read through [Controller.Offset] or [Controller.Preview]. The placement
// store is written exactly once per session, on End, with the footprint
// centered under the pointer and clamped into the container.
//
// The controller satisfies [Gesture], the minimal capability a host's gesture
// recognizer drives. Any pointer source (terminal mouse events, replayed
// scripts, HTTP requests) can sit in front of it.
package drag

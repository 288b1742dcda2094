package drag

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/placement"
)

// Gesture is the capability a host's gesture recognizer drives. Pointers are
// absolute screen positions; container is the canvas rectangle sampled at
// call time.
type Gesture interface {
	Begin(id string, pointer canvas.Point, container canvas.Rect) error
	Move(pointer canvas.Point, container canvas.Rect) error
	End(pointer canvas.Point, container canvas.Rect) (canvas.Point, error)
	Cancel() bool
}

// State is the controller's state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Session is a snapshot of one drag gesture.
type Session struct {
	ID        string       // dragged icon
	Start     canvas.Point // stored position when the drag began
	Pointer   canvas.Point // latest canvas-local pointer
	Committed bool         // set once End wrote the store
}

// Controller owns the single drag session of a canvas and is the only
// writer of its placement store.
type Controller struct {
	// Fallback supplies the start position for icons the store does not
	// know. A nil Fallback uses the canvas origin.
	Fallback func(id string) canvas.Point

	store   *placement.Store
	bounds  canvas.Bounds
	logger  *log.Logger
	session *Session
	last    *Session
}

var _ Gesture = (*Controller)(nil)

// NewController creates an idle controller writing to store.
// If logger is nil, log.Default() is used.
func NewController(store *placement.Store, bounds canvas.Bounds, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		store:  store,
		bounds: bounds,
		logger: logger,
	}
}

// Bounds returns the clamp applied on commit.
func (c *Controller) Bounds() canvas.Bounds { return c.bounds }

// State returns Dragging while a session is open.
func (c *Controller) State() State {
	if c.session != nil {
		return Dragging
	}
	return Idle
}

// Active reports whether a session is open.
func (c *Controller) Active() bool { return c.session != nil }

// DraggingID returns the icon being dragged, if any.
func (c *Controller) DraggingID() (string, bool) {
	if c.session == nil {
		return "", false
	}
	return c.session.ID, true
}

// Session returns a copy of the open session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Last returns a copy of the most recently closed session. Committed tells
// whether it ended with End or Cancel.
func (c *Controller) Last() (Session, bool) {
	if c.last == nil {
		return Session{}, false
	}
	return *c.last, true
}

// Begin opens a session for id and raises it above every other icon.
func (c *Controller) Begin(id string, pointer canvas.Point, container canvas.Rect) error {
	if c.session != nil {
		c.logger.Debug("drag start ignored", "id", id, "active", c.session.ID)
		return errors.New(errors.ErrCodeSessionActive, "drag of %q already in progress", c.session.ID)
	}

	start, ok := c.store.Get(id)
	if !ok {
		start = c.fallback(id)
	}
	c.store.BringToFront(id)

	c.session = &Session{
		ID:      id,
		Start:   start,
		Pointer: canvas.ToLocal(pointer, container),
	}
	c.logger.Debug("drag started", "id", id, "x", start.X, "y", start.Y)
	observability.Gesture().OnDragStart(id, start)
	return nil
}

// Move records the latest pointer. It never writes the store.
func (c *Controller) Move(pointer canvas.Point, container canvas.Rect) error {
	if c.session == nil {
		return errors.New(errors.ErrCodeNoSession, "no drag in progress")
	}
	c.session.Pointer = canvas.ToLocal(pointer, container)
	return nil
}

// End commits the drop: the footprint is centered under the pointer,
// clamped into container and written to the store. It returns the committed
// position.
func (c *Controller) End(pointer canvas.Point, container canvas.Rect) (canvas.Point, error) {
	s := c.session
	if s == nil {
		return canvas.Point{}, errors.New(errors.ErrCodeNoSession, "no drag in progress")
	}

	s.Pointer = canvas.ToLocal(pointer, container)
	pos := c.bounds.DropPosition(s.Pointer, container.Size())
	c.store.Set(s.ID, pos)
	s.Committed = true

	c.session, c.last = nil, s
	c.logger.Debug("drag committed", "id", s.ID, "x", pos.X, "y", pos.Y)
	observability.Gesture().OnDragCommit(s.ID, s.Start, pos)
	return pos, nil
}

// Cancel discards the open session without touching the store. It returns
// false when there was nothing to cancel.
func (c *Controller) Cancel() bool {
	s := c.session
	if s == nil {
		return false
	}
	c.session, c.last = nil, s
	c.logger.Debug("drag cancelled", "id", s.ID)
	observability.Gesture().OnDragCancel(s.ID)
	return true
}

// Offset returns the transient, unclamped top-left that keeps the dragged
// icon centered under the pointer.
func (c *Controller) Offset() (canvas.Point, bool) {
	if c.session == nil {
		return canvas.Point{}, false
	}
	return c.session.Pointer.Sub(c.bounds.Footprint.Half()), true
}

// Preview returns the position End would commit if the pointer were released
// now inside container.
func (c *Controller) Preview(container canvas.Rect) (canvas.Point, bool) {
	if c.session == nil {
		return canvas.Point{}, false
	}
	return c.bounds.DropPosition(c.session.Pointer, container.Size()), true
}

func (c *Controller) fallback(id string) canvas.Point {
	if c.Fallback == nil {
		return canvas.Point{}
	}
	return c.Fallback(id)
}

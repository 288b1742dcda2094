// Package activation turns launch gestures into launch events.
//
// A launch is suppressed while the same icon is being dragged. Dragging a
// different icon does not block it. Each accepted launch is delivered to
// every subscriber exactly once, in subscription order.
package activation

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/observability"
)

// DragState reports which icon, if any, is being dragged.
type DragState interface {
	DraggingID() (string, bool)
}

// Event is a launch request for one icon.
type Event struct {
	ID string
}

// Handler receives launch events.
type Handler func(Event)

// Dispatcher validates launch gestures and fans events out to subscribers.
type Dispatcher struct {
	drag     DragState
	known    func(id string) bool
	logger   *log.Logger
	handlers map[int]Handler
	order    []int
	nextID   int
	launches int
}

// NewDispatcher creates a dispatcher. known reports whether an id belongs to
// the canvas; nil accepts every id. If logger is nil, log.Default() is used.
func NewDispatcher(drag DragState, known func(id string) bool, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		drag:     drag,
		known:    known,
		logger:   logger,
		handlers: make(map[int]Handler),
	}
}

// Subscribe registers fn and returns a function that removes it.
func (d *Dispatcher) Subscribe(fn Handler) func() {
	id := d.nextID
	d.nextID++
	d.handlers[id] = fn
	d.order = append(d.order, id)
	return func() {
		delete(d.handlers, id)
		for i, v := range d.order {
			if v == id {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

// Activate handles a double activation on id.
func (d *Dispatcher) Activate(id string) error {
	if d.known != nil && !d.known(id) {
		return errors.New(errors.ErrCodeNotFound, "unknown icon %q", id)
	}
	if d.drag != nil {
		if dragging, ok := d.drag.DraggingID(); ok && dragging == id {
			d.logger.Debug("launch suppressed", "id", id)
			observability.Gesture().OnLaunchSuppressed(id)
			return errors.New(errors.ErrCodeLaunchSuppressed, "icon %q is being dragged", id)
		}
	}

	d.launches++
	d.logger.Info("launch", "id", id)
	observability.Gesture().OnLaunch(id)

	ev := Event{ID: id}
	for _, h := range append([]int(nil), d.order...) {
		if fn, ok := d.handlers[h]; ok {
			fn(ev)
		}
	}
	return nil
}

// Launches returns the number of delivered launches.
func (d *Dispatcher) Launches() int { return d.launches }

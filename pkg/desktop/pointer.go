package desktop

import (
	"time"

	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/errors"
)

// PointerKind is the kind of a raw pointer event.
type PointerKind string

const (
	Press   PointerKind = "press"
	Move    PointerKind = "move"
	Release PointerKind = "release"
	Leave   PointerKind = "leave" // capture lost
)

// PointerEvent is a raw pointer event in screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	Pos  canvas.Point
	Time time.Time
}

// OutcomeKind describes what a pointer event did.
type OutcomeKind string

const (
	None        OutcomeKind = "none"
	Pressed     OutcomeKind = "pressed"
	DragStarted OutcomeKind = "drag_started"
	Dragged     OutcomeKind = "dragged"
	Committed   OutcomeKind = "committed"
	Cancelled   OutcomeKind = "cancelled"
	Clicked     OutcomeKind = "clicked"
	Launched    OutcomeKind = "launched"
	Suppressed  OutcomeKind = "suppressed"
	Rejected    OutcomeKind = "rejected"
)

// Outcome is the result of one pointer event.
type Outcome struct {
	Kind     OutcomeKind
	ID       string
	Position canvas.Point // committed position for Committed
	Err      error
}

// HandlePointer feeds one pointer event through the gesture recognizer.
// container is the canvas rectangle in the same coordinate space as the
// event, sampled by the caller for this event.
//
// A press on an icon only arms a gesture. Moving farther than the drag
// threshold starts a drag; releasing without that is a click, and two clicks
// on the same icon within the double click window launch it.
func (d *Desktop) HandlePointer(ev PointerEvent, container canvas.Rect) Outcome {
	if ev.Time.IsZero() {
		ev.Time = d.Now()
	}
	switch ev.Kind {
	case Press:
		return d.onPress(ev, container)
	case Move:
		return d.onMove(ev, container)
	case Release:
		return d.onRelease(ev, container)
	case Leave:
		return d.onLeave()
	}
	return Outcome{Kind: None, Err: errors.New(errors.ErrCodeInvalidInput, "unknown pointer event %q", ev.Kind)}
}

func (d *Desktop) onPress(ev PointerEvent, container canvas.Rect) Outcome {
	id, hit := d.HitTest(canvas.ToLocal(ev.Pos, container))
	if d.drag.Active() {
		// A second press mid-drag cannot open another session.
		if hit {
			err := d.drag.Begin(id, ev.Pos, container)
			return Outcome{Kind: Rejected, ID: id, Err: err}
		}
		return Outcome{Kind: None}
	}
	if !hit {
		d.press = nil
		return Outcome{Kind: None}
	}
	d.press = &press{id: id, at: ev.Pos}
	return Outcome{Kind: Pressed, ID: id}
}

func (d *Desktop) onMove(ev PointerEvent, container canvas.Rect) Outcome {
	if d.drag.Active() {
		id, _ := d.drag.DraggingID()
		if err := d.drag.Move(ev.Pos, container); err != nil {
			return Outcome{Kind: None, ID: id, Err: err}
		}
		return Outcome{Kind: Dragged, ID: id}
	}
	if d.press == nil || ev.Pos.Dist(d.press.at) <= d.cfg.DragThreshold {
		return Outcome{Kind: None}
	}

	p := d.press
	d.press, d.lastClick = nil, nil
	if err := d.drag.Begin(p.id, p.at, container); err != nil {
		return Outcome{Kind: Rejected, ID: p.id, Err: err}
	}
	if err := d.drag.Move(ev.Pos, container); err != nil {
		return Outcome{Kind: Rejected, ID: p.id, Err: err}
	}
	return Outcome{Kind: DragStarted, ID: p.id}
}

func (d *Desktop) onRelease(ev PointerEvent, container canvas.Rect) Outcome {
	if d.drag.Active() {
		id, _ := d.drag.DraggingID()
		dropped, _ := d.drag.Offset()
		pos, err := d.drag.End(ev.Pos, container)
		if err != nil {
			return Outcome{Kind: None, ID: id, Err: err}
		}
		// Spring from where the icon was let go to where it was committed.
		d.tracker.Place(id, dropped)
		d.tracker.Sync(d.store.List())
		return Outcome{Kind: Committed, ID: id, Position: pos}
	}

	p := d.press
	d.press = nil
	if p == nil {
		return Outcome{Kind: None}
	}

	if c := d.lastClick; c != nil && c.id == p.id && ev.Time.Sub(c.at) <= d.cfg.DoubleClick {
		d.lastClick = nil
		return d.launchOutcome(p.id)
	}
	d.lastClick = &click{id: p.id, at: ev.Time}
	return Outcome{Kind: Clicked, ID: p.id}
}

func (d *Desktop) onLeave() Outcome {
	d.press = nil
	if id, ok := d.drag.DraggingID(); ok {
		dropped, _ := d.drag.Offset()
		d.drag.Cancel()
		d.tracker.Place(id, dropped)
		d.tracker.Sync(d.store.List())
		return Outcome{Kind: Cancelled, ID: id}
	}
	return Outcome{Kind: None}
}

// Cancel aborts an open drag, as when the host loses pointer capture.
func (d *Desktop) Cancel() bool {
	return d.onLeave().Kind == Cancelled
}

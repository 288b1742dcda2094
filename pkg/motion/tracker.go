package motion

import (
	"math"

	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/placement"
)

// Tracker keeps one interpolator per icon and follows placement snapshots.
type Tracker struct {
	fps     int
	profile Profile
	icons   map[string]*Interpolator
}

// NewTracker creates an empty tracker.
func NewTracker(fps int, profile Profile) *Tracker {
	return &Tracker{
		fps:     fps,
		profile: profile,
		icons:   make(map[string]*Interpolator),
	}
}

// Sync retargets every icon to its committed position. Icons seen for the
// first time appear at their position without animating; icons missing from
// entries are dropped.
func (t *Tracker) Sync(entries []placement.Entry) {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.ID] = true
		if in, ok := t.icons[e.ID]; ok {
			in.Retarget(e.Position)
			continue
		}
		t.icons[e.ID] = New(e.Position, t.fps, t.profile)
	}
	for id := range t.icons {
		if !seen[id] {
			delete(t.icons, id)
		}
	}
}

// Place moves an icon's displayed position without animation. Points that
// are not finite are ignored.
func (t *Tracker) Place(id string, p canvas.Point) {
	if !finite(p) {
		return
	}
	if in, ok := t.icons[id]; ok {
		in.Jump(p)
		return
	}
	t.icons[id] = New(p, t.fps, t.profile)
}

// Step advances every icon by one frame and reports whether any is still
// moving.
func (t *Tracker) Step() bool {
	moving := false
	for _, in := range t.icons {
		in.Step()
		if !in.Settled() {
			moving = true
		}
	}
	return moving
}

// Moving reports whether any icon is off its target.
func (t *Tracker) Moving() bool {
	for _, in := range t.icons {
		if !in.Settled() {
			return true
		}
	}
	return false
}

// Position returns the displayed position of id.
func (t *Tracker) Position(id string) (canvas.Point, bool) {
	in, ok := t.icons[id]
	if !ok {
		return canvas.Point{}, false
	}
	return in.Position(), true
}

func finite(p canvas.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

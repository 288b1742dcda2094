// Package placement holds the authoritative icon layout of a canvas.
//
// A [Store] maps each icon identity to its committed top-left position and a
// z-order rank. It is the single source of truth: renderers read from it and
// only the drag controller writes to it. The store never clamps; positions
// handed to [Store.Set] must already be valid for the container.
//
// Z-order values are drawn from a monotonically increasing counter that is
// never reused, so they are unique but not contiguous. [Store.List] returns
// entries back-to-front (ascending z), which is the paint order.
//
// The store is not safe for concurrent use. All mutations happen on the
// host's event loop.
package placement

import (
	"sort"

	"github.com/matzehuels/folio/pkg/canvas"
)

// Entry is one icon's placement as returned by [Store.List].
type Entry struct {
	ID       string       `json:"id"`
	Position canvas.Point `json:"position"`
	Z        int          `json:"z"`
}

type slot struct {
	pos canvas.Point
	z   int
}

// Store maps icon identities to positions and paint order.
type Store struct {
	slots   map[string]*slot
	counter int
}

// New creates an empty store.
func New() *Store {
	return &Store{slots: make(map[string]*slot)}
}

// Seed creates a store from composition-time placements. Entries are ranked
// in the given order, the last one painted on top. Duplicate identities keep
// the later position but the earlier rank.
func Seed(entries []Entry) *Store {
	s := New()
	for _, e := range entries {
		s.Set(e.ID, e.Position)
	}
	return s
}

// Len returns the number of placed icons.
func (s *Store) Len() int { return len(s.slots) }

// Has reports whether id has a stored position.
func (s *Store) Has(id string) bool {
	_, ok := s.slots[id]
	return ok
}

// Get returns the stored position of id. The boolean is false when id is
// unknown; callers substitute their own default in that case.
func (s *Store) Get(id string) (canvas.Point, bool) {
	sl, ok := s.slots[id]
	if !ok {
		return canvas.Point{}, false
	}
	return sl.pos, true
}

// GetOr returns the stored position of id, or def when id is unknown.
func (s *Store) GetOr(id string, def canvas.Point) canvas.Point {
	if p, ok := s.Get(id); ok {
		return p
	}
	return def
}

// Set overwrites the position of id. An unknown id is added above every
// existing entry. Set never changes the rank of an existing entry.
func (s *Store) Set(id string, pos canvas.Point) {
	if sl, ok := s.slots[id]; ok {
		sl.pos = pos
		return
	}
	s.slots[id] = &slot{pos: pos, z: s.next()}
}

// BringToFront gives id a z-order strictly greater than every other entry.
// It returns false, leaving the store untouched, when id is unknown.
func (s *Store) BringToFront(id string) bool {
	sl, ok := s.slots[id]
	if !ok {
		return false
	}
	sl.z = s.next()
	return true
}

// ZOrder returns the rank of id and whether it exists.
func (s *Store) ZOrder(id string) (int, bool) {
	sl, ok := s.slots[id]
	if !ok {
		return 0, false
	}
	return sl.z, true
}

// Top returns the identity with the highest rank, or "" for an empty store.
func (s *Store) Top() string {
	top, best := "", 0
	for id, sl := range s.slots {
		if top == "" || sl.z > best {
			top, best = id, sl.z
		}
	}
	return top
}

// List returns a snapshot of all entries ordered back-to-front.
func (s *Store) List() []Entry {
	out := make([]Entry, 0, len(s.slots))
	for id, sl := range s.slots {
		out = append(out, Entry{ID: id, Position: sl.pos, Z: sl.z})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

func (s *Store) next() int {
	s.counter++
	return s.counter
}

package activation

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/errors"
)

type fakeDrag struct{ id string }

func (f *fakeDrag) DraggingID() (string, bool) { return f.id, f.id != "" }

func knownIDs(ids ...string) func(string) bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

func newTestDispatcher(drag *fakeDrag) *Dispatcher {
	return NewDispatcher(drag, knownIDs("shopflow", "taskflow"), log.New(io.Discard))
}

func TestActivate(t *testing.T) {
	tests := []struct {
		name       string
		dragging   string
		id         string
		wantCode   errors.Code
		wantLaunch bool
	}{
		{"idle", "", "shopflow", "", true},
		{"other icon dragging", "taskflow", "shopflow", "", true},
		{"same icon dragging", "shopflow", "shopflow", errors.ErrCodeLaunchSuppressed, false},
		{"unknown icon", "", "ghost", errors.ErrCodeNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDispatcher(&fakeDrag{id: tt.dragging})
			var got []Event
			d.Subscribe(func(e Event) { got = append(got, e) })

			err := d.Activate(tt.id)
			if tt.wantCode == "" && err != nil {
				t.Fatalf("Activate() error = %v", err)
			}
			if tt.wantCode != "" && !errors.Is(err, tt.wantCode) {
				t.Fatalf("Activate() error = %v, want %s", err, tt.wantCode)
			}

			if tt.wantLaunch {
				if len(got) != 1 || got[0].ID != tt.id {
					t.Errorf("events = %v, want one for %s", got, tt.id)
				}
			} else if len(got) != 0 {
				t.Errorf("events = %v, want none", got)
			}
		})
	}
}

func TestActivateDeliversOncePerSubscriber(t *testing.T) {
	d := newTestDispatcher(&fakeDrag{})
	counts := make([]int, 3)
	for i := range counts {
		i := i
		d.Subscribe(func(Event) { counts[i]++ })
	}

	_ = d.Activate("taskflow")
	for i, n := range counts {
		if n != 1 {
			t.Errorf("subscriber %d got %d events", i, n)
		}
	}
	if d.Launches() != 1 {
		t.Errorf("Launches() = %d", d.Launches())
	}
}

func TestUnsubscribe(t *testing.T) {
	d := newTestDispatcher(&fakeDrag{})
	var a, b int
	unsubA := d.Subscribe(func(Event) { a++ })
	d.Subscribe(func(Event) { b++ })

	_ = d.Activate("shopflow")
	unsubA()
	unsubA()
	_ = d.Activate("shopflow")

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a, b)
	}
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	d := newTestDispatcher(&fakeDrag{})
	var calls []string
	var unsub func()
	unsub = d.Subscribe(func(Event) {
		calls = append(calls, "first")
		unsub()
	})
	d.Subscribe(func(Event) { calls = append(calls, "second") })

	_ = d.Activate("shopflow")
	_ = d.Activate("shopflow")

	want := []string{"first", "second", "second"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestNilCollaborators(t *testing.T) {
	d := NewDispatcher(nil, nil, nil)
	if err := d.Activate("anything"); err != nil {
		t.Errorf("Activate() with nil collaborators = %v", err)
	}
}

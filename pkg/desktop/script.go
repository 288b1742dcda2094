package desktop

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/catalog"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/placement"
)

// Script formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// ScriptEvent is one recorded input. Pointer kinds use X and Y in screen
// coordinates; "launch" uses ID and stands for a native double activation.
// At is the offset from the start of the script in milliseconds.
type ScriptEvent struct {
	Kind string  `toml:"kind" json:"kind"`
	X    float64 `toml:"x" json:"x,omitempty"`
	Y    float64 `toml:"y" json:"y,omitempty"`
	ID   string  `toml:"id" json:"id,omitempty"`
	At   int64   `toml:"at" json:"at,omitempty"`
}

const kindLaunch = "launch"

// Script is a recorded gesture sequence against one container.
//
// In TOML:
//
//	container = { left = 0, top = 0, width = 400, height = 300 }
//
//	[[event]]
//	kind = "press"
//	x = 60
//	y = 60
type Script struct {
	Container canvas.Rect   `toml:"container" json:"container"`
	Events    []ScriptEvent `toml:"event" json:"events"`
}

// Validate checks the script before it is replayed.
func (s *Script) Validate() error {
	c := s.Container
	if !finite(c.Left, c.Top, c.Width, c.Height) {
		return errors.New(errors.ErrCodeInvalidScript, "container must have finite coordinates")
	}
	if c.Width < 0 || c.Height < 0 {
		return errors.New(errors.ErrCodeInvalidScript, "container size must not be negative")
	}
	var last int64
	for i, ev := range s.Events {
		if !finite(ev.X, ev.Y) {
			return errors.New(errors.ErrCodeInvalidScript, "event %d: coordinates must be finite, got (%v, %v)", i, ev.X, ev.Y)
		}
		switch PointerKind(ev.Kind) {
		case Press, Move, Release, Leave:
		default:
			if ev.Kind != kindLaunch {
				return errors.New(errors.ErrCodeInvalidScript, "event %d: unknown kind %q", i, ev.Kind)
			}
			if ev.ID == "" {
				return errors.New(errors.ErrCodeInvalidScript, "event %d: launch needs an id", i)
			}
		}
		if ev.At < last {
			return errors.New(errors.ErrCodeInvalidScript, "event %d: time goes backwards (%d < %d)", i, ev.At, last)
		}
		last = ev.At
	}
	return nil
}

// ReadScript decodes a script in the given format from r.
func ReadScript(r io.Reader, format string) (*Script, error) {
	var s Script
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode toml script")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode json script")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported script format %q", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ImportScript reads a script file. Files ending in .json are JSON, all
// others TOML.
func ImportScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "open script %s", path)
	}
	defer f.Close()
	return ReadScript(f, FormatFromPath(path))
}

// FormatFromPath guesses a script format from a file extension.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Step is the outcome of one replayed event.
type Step struct {
	Event    ScriptEvent  `json:"event"`
	Outcome  OutcomeKind  `json:"outcome"`
	ID       string       `json:"id,omitempty"`
	Position canvas.Point `json:"position"`
	Error    string       `json:"error,omitempty"`
}

// Result is the state of a desktop after a replay.
type Result struct {
	Placements []placement.Entry `json:"placements"`
	Launches   []string          `json:"launches"`
	Steps      []Step            `json:"steps"`
}

// Replay mounts a fresh desktop and feeds it the script. Event times are
// taken from the script, so the result does not depend on wall-clock time.
func Replay(cat *catalog.Catalog, cfg Config, s *Script, logger *log.Logger) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	d, err := New(cat, cfg, logger)
	if err != nil {
		return nil, err
	}

	epoch := time.Unix(0, 0).UTC()
	res := &Result{Steps: make([]Step, 0, len(s.Events))}
	var clock int64
	for _, ev := range s.Events {
		// Let motion run for the frames that elapsed since the last event.
		for f := framesBetween(clock, ev.At, cfg.FPS); f > 0; f-- {
			if !d.Tick() {
				break
			}
		}
		clock = ev.At

		at := epoch.Add(time.Duration(ev.At) * time.Millisecond)
		d.Now = func() time.Time { return at }

		var out Outcome
		if ev.Kind == kindLaunch {
			out = d.launchOutcome(ev.ID)
		} else {
			out = d.HandlePointer(PointerEvent{
				Kind: PointerKind(ev.Kind),
				Pos:  canvas.Point{X: ev.X, Y: ev.Y},
				Time: at,
			}, s.Container)
		}

		step := Step{Event: ev, Outcome: out.Kind, ID: out.ID, Position: out.Position}
		if out.Err != nil {
			step.Error = errors.UserMessage(out.Err)
		}
		res.Steps = append(res.Steps, step)
	}

	res.Placements = d.Placements()
	res.Launches = d.Launched()
	if res.Launches == nil {
		res.Launches = []string{}
	}
	return res, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func framesBetween(from, to int64, fps int) int {
	return int((to - from) * int64(fps) / 1000)
}

func (d *Desktop) launchOutcome(id string) Outcome {
	err := d.Launch(id)
	switch {
	case err == nil:
		return Outcome{Kind: Launched, ID: id}
	case errors.Is(err, errors.ErrCodeLaunchSuppressed):
		return Outcome{Kind: Suppressed, ID: id, Err: err}
	default:
		return Outcome{Kind: None, ID: id, Err: err}
	}
}

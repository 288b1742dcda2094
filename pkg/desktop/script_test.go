package desktop

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/catalog"
	"github.com/matzehuels/folio/pkg/errors"
)

const dragScript = `
container = { left = 0, top = 0, width = 400, height = 300 }

# drag ShopFlow into the bottom-right corner
[[event]]
kind = "press"
x = 60
y = 60

[[event]]
kind = "move"
x = 200
y = 200
at = 16

[[event]]
kind = "release"
x = 390
y = 290
at = 32

# double click WeatherPro
[[event]]
kind = "press"
x = 360
y = 60
at = 500

[[event]]
kind = "release"
x = 360
y = 60
at = 520

[[event]]
kind = "press"
x = 360
y = 60
at = 600

[[event]]
kind = "release"
x = 360
y = 60
at = 620
`

func replayTOML(t *testing.T, src string) *Result {
	t.Helper()
	s, err := ReadScript(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("ReadScript() error = %v", err)
	}
	res, err := Replay(catalog.Default(), DefaultConfig(), s, log.New(io.Discard))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	return res
}

func TestReplay(t *testing.T) {
	res := replayTOML(t, dragScript)

	var shop canvas.Point
	for _, e := range res.Placements {
		if e.ID == "ecommerce" {
			shop = e.Position
		}
	}
	if shop != (canvas.Point{X: 320, Y: 200}) {
		t.Errorf("ecommerce at %v, want (320, 200)", shop)
	}
	if top := res.Placements[len(res.Placements)-1]; top.ID != "ecommerce" {
		t.Errorf("top = %s", top.ID)
	}
	if !reflect.DeepEqual(res.Launches, []string{"weather"}) {
		t.Errorf("Launches = %v", res.Launches)
	}

	kinds := make([]OutcomeKind, len(res.Steps))
	for i, s := range res.Steps {
		kinds[i] = s.Outcome
	}
	want := []OutcomeKind{Pressed, DragStarted, Committed, Pressed, Clicked, Pressed, Launched}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("outcomes = %v, want %v", kinds, want)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	a := replayTOML(t, dragScript)
	b := replayTOML(t, dragScript)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("replays differ:\n%+v\n%+v", a, b)
	}
}

func TestReplaySuppressedLaunch(t *testing.T) {
	res := replayTOML(t, `
container = { width = 400, height = 300 }

[[event]]
kind = "press"
x = 60
y = 60

[[event]]
kind = "move"
x = 120
y = 120

[[event]]
kind = "launch"
id = "ecommerce"

[[event]]
kind = "launch"
id = "taskmanager"

[[event]]
kind = "leave"
`)

	want := []OutcomeKind{Pressed, DragStarted, Suppressed, Launched, Cancelled}
	for i, s := range res.Steps {
		if s.Outcome != want[i] {
			t.Errorf("step %d = %s, want %s", i, s.Outcome, want[i])
		}
	}
	if res.Steps[2].Error == "" {
		t.Error("suppressed step has no error message")
	}
	if !reflect.DeepEqual(res.Launches, []string{"taskmanager"}) {
		t.Errorf("Launches = %v", res.Launches)
	}
	for _, e := range res.Placements {
		if e.Position != catalog.Default().Position(e.ID) {
			t.Errorf("%s moved to %v by a cancelled drag", e.ID, e.Position)
		}
	}
}

func TestReadScriptJSON(t *testing.T) {
	src := `{
  "container": {"left": 0, "top": 0, "width": 400, "height": 300},
  "events": [
    {"kind": "press", "x": 60, "y": 60},
    {"kind": "move", "x": 200, "y": 200, "at": 16},
    {"kind": "release", "x": 390, "y": 290, "at": 32}
  ]
}`
	s, err := ReadScript(strings.NewReader(src), FormatJSON)
	if err != nil {
		t.Fatalf("ReadScript() error = %v", err)
	}
	res, err := Replay(catalog.Default(), DefaultConfig(), s, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Steps[2].Position; got != (canvas.Point{X: 320, Y: 200}) {
		t.Errorf("committed %v", got)
	}
	if len(res.Launches) != 0 {
		t.Errorf("Launches = %v", res.Launches)
	}
}

func TestReadScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format string
		want   errors.Code
	}{
		{"unknown format", "", "yaml", errors.ErrCodeInvalidFormat},
		{"bad toml", "container = [", FormatTOML, errors.ErrCodeInvalidScript},
		{"bad json", "{", FormatJSON, errors.ErrCodeInvalidScript},
		{"unknown kind", "[[event]]\nkind = \"hover\"\n", FormatTOML, errors.ErrCodeInvalidScript},
		{"launch without id", "[[event]]\nkind = \"launch\"\n", FormatTOML, errors.ErrCodeInvalidScript},
		{"time backwards", "[[event]]\nkind = \"press\"\nat = 10\n[[event]]\nkind = \"release\"\nat = 5\n", FormatTOML, errors.ErrCodeInvalidScript},
		{"negative container", "container = { width = -1 }\n", FormatTOML, errors.ErrCodeInvalidScript},
		{"nan container", "container = { width = nan, height = 300 }\n", FormatTOML, errors.ErrCodeInvalidScript},
		{"inf container", "container = { left = -inf, width = 400 }\n", FormatTOML, errors.ErrCodeInvalidScript},
		{"nan pointer", "[[event]]\nkind = \"move\"\nx = nan\ny = 10\n", FormatTOML, errors.ErrCodeInvalidScript},
		{"inf pointer", "[[event]]\nkind = \"release\"\nx = 10\ny = inf\n", FormatTOML, errors.ErrCodeInvalidScript},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScript(strings.NewReader(tt.src), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadScript() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestImportScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drag.toml")
	if err := os.WriteFile(path, []byte(dragScript), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := ImportScript(path)
	if err != nil {
		t.Fatalf("ImportScript() error = %v", err)
	}
	if len(s.Events) != 7 {
		t.Errorf("events = %d", len(s.Events))
	}

	if _, err := ImportScript(filepath.Join(dir, "none.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.json":     FormatJSON,
		"a.JSON":     FormatJSON,
		"a.toml":     FormatTOML,
		"script":     FormatTOML,
		"dir.json/x": FormatTOML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestReplayExample(t *testing.T) {
	s, err := ImportScript(filepath.Join("..", "..", "examples", "drag.toml"))
	if err != nil {
		t.Fatalf("ImportScript() error: %v", err)
	}
	res, err := Replay(catalog.Default(), DefaultConfig(), s, log.New(io.Discard))
	if err != nil {
		t.Fatalf("Replay() error: %v", err)
	}
	if !reflect.DeepEqual(res.Launches, []string{"weather"}) {
		t.Errorf("launches = %v, want [weather]", res.Launches)
	}
}

func TestNonFinitePointerStaysInside(t *testing.T) {
	d, err := New(catalog.Default(), DefaultConfig(), log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	nan := canvas.Point{X: math.NaN(), Y: math.NaN()}
	container := canvas.Rect{Width: 400, Height: 300}

	d.HandlePointer(PointerEvent{Kind: Press, Pos: canvas.Point{X: 60, Y: 60}}, container)
	d.HandlePointer(PointerEvent{Kind: Move, Pos: nan}, container)
	out := d.HandlePointer(PointerEvent{Kind: Release, Pos: nan}, container)

	if out.Kind != Committed {
		t.Fatalf("outcome = %s, want %s", out.Kind, Committed)
	}
	if out.Position != (canvas.Point{}) {
		t.Errorf("committed %v, want origin", out.Position)
	}
	if !d.Config().Bounds().Valid(d.Position("ecommerce"), container.Size()) {
		t.Errorf("stored position %v is outside the container", d.Position("ecommerce"))
	}
	for _, ic := range d.Icons() {
		if math.IsNaN(ic.Display.X) || math.IsNaN(ic.Display.Y) {
			t.Errorf("%s displayed at %v", ic.App.ID, ic.Display)
		}
	}
}

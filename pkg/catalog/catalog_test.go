package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/errors"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	want := []struct {
		id    string
		title string
		pos   canvas.Point
	}{
		{"ecommerce", "ShopFlow", canvas.Point{X: 50, Y: 50}},
		{"taskmanager", "TaskFlow", canvas.Point{X: 200, Y: 50}},
		{"weather", "WeatherPro", canvas.Point{X: 350, Y: 50}},
	}
	for i, a := range c.Apps() {
		if a.ID != want[i].id || a.Title != want[i].title || a.Position != want[i].pos {
			t.Errorf("app %d = %s/%s at %v, want %s/%s at %v", i, a.ID, a.Title, a.Position, want[i].id, want[i].title, want[i].pos)
		}
		if len(a.Technologies) == 0 || len(a.Features) == 0 || a.LaunchDate == "" {
			t.Errorf("app %s missing metadata", a.ID)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{
			name: "valid",
			input: `
[[app]]
id = "one"
title = "One"
position = { x = 1, y = 2 }
`,
		},
		{
			name:     "malformed",
			input:    `[[app]` + "\n",
			wantCode: errors.ErrCodeInvalidCatalog,
		},
		{
			name:     "empty",
			input:    "",
			wantCode: errors.ErrCodeInvalidCatalog,
		},
		{
			name: "duplicate id",
			input: `
[[app]]
id = "same"
title = "A"
[[app]]
id = "same"
title = "B"
`,
			wantCode: errors.ErrCodeDuplicateID,
		},
		{
			name: "missing title",
			input: `
[[app]]
id = "x"
`,
			wantCode: errors.ErrCodeInvalidCatalog,
		},
		{
			name: "bad id",
			input: `
[[app]]
id = "has space"
title = "X"
`,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name: "negative position",
			input: `
[[app]]
id = "x"
title = "X"
position = { x = -5, y = 0 }
`,
			wantCode: errors.ErrCodeInvalidCatalog,
		},
		{
			name: "bad link",
			input: `
[[app]]
id = "x"
title = "X"
demo = "javascript:alert(1)"
`,
			wantCode: errors.ErrCodeInvalidCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Parse() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestParseAssignsMissingIDs(t *testing.T) {
	c, err := Parse([]byte(`
[[app]]
title = "Anonymous"
[[app]]
title = "Another"
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	apps := c.Apps()
	for _, a := range apps {
		if _, err := uuid.Parse(a.ID); err != nil {
			t.Errorf("generated id %q is not a UUID: %v", a.ID, err)
		}
	}
	if apps[0].ID == apps[1].ID {
		t.Error("generated ids collide")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apps.toml")
	if err := os.WriteFile(path, []byte("[[app]]\nid = \"a\"\ntitle = \"A\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !c.Has("a") || c.Has("b") {
		t.Errorf("Has() mismatch for loaded catalog")
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	def, err := Load("")
	if err != nil || def.Len() != 3 {
		t.Errorf("Load(\"\") = %v, %v, want default catalog", def, err)
	}
}

func TestLookups(t *testing.T) {
	c := Default()

	if a, ok := c.Get("weather"); !ok || a.Title != "WeatherPro" {
		t.Errorf("Get(weather) = %v, %v", a, ok)
	}
	if _, ok := c.Get("nope"); ok {
		t.Error("Get(nope) ok")
	}
	if p := c.Position("taskmanager"); p != (canvas.Point{X: 200, Y: 50}) {
		t.Errorf("Position(taskmanager) = %v", p)
	}
	if p := c.Position("nope"); p != (canvas.Point{}) {
		t.Errorf("Position(nope) = %v, want origin", p)
	}

	entries := c.Entries()
	if len(entries) != 3 || entries[0].ID != "ecommerce" || entries[2].Position.X != 350 {
		t.Errorf("Entries() = %+v", entries)
	}
}

func TestAppsReturnsCopy(t *testing.T) {
	c := Default()
	apps := c.Apps()
	apps[0].Title = "changed"
	if a, _ := c.Get(apps[0].ID); a.Title == "changed" {
		t.Error("Apps() exposes internal slice")
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		app  App
		want string
	}{
		{App{Icon: "★", Title: "Star"}, "★"},
		{App{Title: "taskflow"}, "T"},
		{App{}, "?"},
	}
	for _, tt := range tests {
		if got := tt.app.Glyph(); got != tt.want {
			t.Errorf("Glyph(%+v) = %q, want %q", tt.app, got, tt.want)
		}
	}
}

func TestLoadExample(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "catalog.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	apps := c.Apps()
	if apps[0].ID != "notes" {
		t.Errorf("first id = %q, want notes", apps[0].ID)
	}
	if _, err := uuid.Parse(apps[1].ID); err != nil {
		t.Errorf("second id %q should be a generated uuid: %v", apps[1].ID, err)
	}
}

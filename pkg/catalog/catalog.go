// Package catalog loads the applications shown on the desktop.
//
// A catalog is a TOML document with one [[app]] table per icon. It carries the
// immutable display metadata and the position each icon starts at when a
// desktop is created. Entries without an id receive a random UUID at load
// time. The package embeds a default catalog used when no file is given.
package catalog

import (
	_ "embed"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/placement"
)

//go:embed default.toml
var defaultCatalog []byte

// App is one featured application.
type App struct {
	ID           string       `toml:"id" json:"id"`
	Title        string       `toml:"title" json:"title"`
	Category     string       `toml:"category" json:"category"`
	Icon         string       `toml:"icon" json:"icon,omitempty"`
	Description  string       `toml:"description" json:"description"`
	Technologies []string     `toml:"technologies" json:"technologies,omitempty"`
	Features     []string     `toml:"features" json:"features,omitempty"`
	GitHub       string       `toml:"github" json:"github,omitempty"`
	Demo         string       `toml:"demo" json:"demo,omitempty"`
	LaunchDate   string       `toml:"launch_date" json:"launch_date,omitempty"`
	Position     canvas.Point `toml:"position" json:"position"`
}

// Glyph returns the icon glyph, or the title's first letter when none is set.
func (a App) Glyph() string {
	if a.Icon != "" {
		return a.Icon
	}
	for _, r := range a.Title {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Catalog is an ordered, validated set of apps.
type Catalog struct {
	apps  []App
	index map[string]int
}

type document struct {
	Apps []App `toml:"app"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic("catalog: embedded default is invalid: " + err.Error())
	}
	return c
}

// Load reads a catalog file. An empty path returns the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "read catalog %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML catalog.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	for i := range doc.Apps {
		if doc.Apps[i].ID == "" {
			doc.Apps[i].ID = uuid.NewString()
		}
	}
	return New(doc.Apps)
}

// New validates apps and builds a catalog preserving their order.
func New(apps []App) (*Catalog, error) {
	if len(apps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog has no apps")
	}
	c := &Catalog{
		apps:  make([]App, len(apps)),
		index: make(map[string]int, len(apps)),
	}
	copy(c.apps, apps)
	for i, a := range c.apps {
		if err := validate(a); err != nil {
			return nil, err
		}
		if _, dup := c.index[a.ID]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateID, "duplicate app id %q", a.ID)
		}
		c.index[a.ID] = i
	}
	return c, nil
}

func validate(a App) error {
	if err := errors.ValidateIconID(a.ID); err != nil {
		return err
	}
	if strings.TrimSpace(a.Title) == "" {
		return errors.New(errors.ErrCodeInvalidCatalog, "app %q has no title", a.ID)
	}
	if a.Position.X < 0 || a.Position.Y < 0 {
		return errors.New(errors.ErrCodeInvalidCatalog, "app %q has negative position (%g, %g)", a.ID, a.Position.X, a.Position.Y)
	}
	for _, link := range []string{a.GitHub, a.Demo} {
		if err := errors.ValidateLink(link); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "app %q", a.ID)
		}
	}
	return nil
}

// Apps returns the apps in catalog order.
func (c *Catalog) Apps() []App {
	out := make([]App, len(c.apps))
	copy(out, c.apps)
	return out
}

// Len returns the number of apps.
func (c *Catalog) Len() int { return len(c.apps) }

// Get looks up an app by id.
func (c *Catalog) Get(id string) (App, bool) {
	i, ok := c.index[id]
	if !ok {
		return App{}, false
	}
	return c.apps[i], true
}

// Has reports whether id belongs to the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Position returns the initial position of id, or the origin.
func (c *Catalog) Position(id string) canvas.Point {
	if a, ok := c.Get(id); ok {
		return a.Position
	}
	return canvas.Point{}
}

// Entries returns the initial placements in catalog order.
func (c *Catalog) Entries() []placement.Entry {
	out := make([]placement.Entry, len(c.apps))
	for i, a := range c.apps {
		out[i] = placement.Entry{ID: a.ID, Position: a.Position}
	}
	return out
}

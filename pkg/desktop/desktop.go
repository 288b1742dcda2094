// Package desktop composes the placement engine into one canvas.
//
// A [Desktop] owns the placement store for a catalog and wires the drag
// controller, the activation dispatcher and the motion tracker around it.
// Hosts feed it raw pointer events through [Desktop.HandlePointer] together
// with the container rectangle sampled at event time, and read
// [Desktop.Icons] to paint. Nothing is persisted: every New starts from the
// catalog's positions.
//
// A Desktop is not safe for concurrent use. Hosts deliver events serially
// from their own event loop.
package desktop

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/activation"
	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/catalog"
	"github.com/matzehuels/folio/pkg/drag"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/motion"
	"github.com/matzehuels/folio/pkg/placement"
)

// Gesture recognition defaults.
const (
	DefaultDragThreshold = 4.0
	DefaultDoubleClick   = 400 * time.Millisecond
)

// Config controls geometry, motion and gesture recognition.
type Config struct {
	Footprint     canvas.Size
	Margin        float64
	FPS           int
	Spring        motion.Profile
	DragThreshold float64       // pointer travel before a press becomes a drag
	DoubleClick   time.Duration // max gap between the clicks of a launch
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Footprint:     canvas.DefaultFootprint,
		FPS:           motion.DefaultFPS,
		Spring:        motion.DefaultProfile,
		DragThreshold: DefaultDragThreshold,
		DoubleClick:   DefaultDoubleClick,
	}
}

// Validate checks that every dimension is usable.
func (c Config) Validate() error {
	if err := errors.ValidateDimension("icon width", c.Footprint.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("icon height", c.Footprint.Height); err != nil {
		return err
	}
	if err := errors.ValidateDimension("fps", float64(c.FPS)); err != nil {
		return err
	}
	if err := errors.ValidateFinite("margin", c.Margin); err != nil {
		return err
	}
	if err := errors.ValidateFinite("drag threshold", c.DragThreshold); err != nil {
		return err
	}
	if c.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin must not be negative, got %v", c.Margin)
	}
	if c.DragThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "drag threshold must not be negative, got %v", c.DragThreshold)
	}
	if c.DoubleClick <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "double click window must be positive, got %v", c.DoubleClick)
	}
	if !c.Spring.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "spring stiffness, damping and mass must be positive and finite")
	}
	return nil
}

// Bounds returns the commit clamp for this configuration.
func (c Config) Bounds() canvas.Bounds {
	return canvas.Bounds{Footprint: c.Footprint, Margin: c.Margin}
}

// Icon is one icon ready to paint.
type Icon struct {
	App      catalog.App
	Position canvas.Point // committed
	Display  canvas.Point // where to draw it this frame
	Z        int
	Dragging bool
}

// Desktop is one mounted canvas.
type Desktop struct {
	cfg      Config
	catalog  *catalog.Catalog
	store    *placement.Store
	drag     *drag.Controller
	dispatch *activation.Dispatcher
	tracker  *motion.Tracker
	logger   *log.Logger

	// Now supplies timestamps for pointer events that carry none.
	Now func() time.Time

	press     *press
	lastClick *click
	launched  []string
}

type press struct {
	id string
	at canvas.Point
}

type click struct {
	id string
	at time.Time
}

// New mounts a desktop for cat. If logger is nil, log.Default() is used.
func New(cat *catalog.Catalog, cfg Config, logger *log.Logger) (*Desktop, error) {
	if cat == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "catalog is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	store := placement.Seed(cat.Entries())
	ctrl := drag.NewController(store, cfg.Bounds(), logger)
	ctrl.Fallback = cat.Position

	d := &Desktop{
		cfg:      cfg,
		catalog:  cat,
		store:    store,
		drag:     ctrl,
		dispatch: activation.NewDispatcher(ctrl, cat.Has, logger),
		tracker:  motion.NewTracker(cfg.FPS, cfg.Spring),
		logger:   logger,
		Now:      time.Now,
	}
	d.tracker.Sync(store.List())
	d.dispatch.Subscribe(func(e activation.Event) {
		d.launched = append(d.launched, e.ID)
	})

	logger.Debug("desktop mounted", "icons", cat.Len(), "margin", cfg.Margin, "fps", cfg.FPS)
	return d, nil
}

// Config returns the desktop configuration.
func (d *Desktop) Config() Config { return d.cfg }

// Catalog returns the mounted catalog.
func (d *Desktop) Catalog() *catalog.Catalog { return d.catalog }

// Drag exposes the drag controller.
func (d *Desktop) Drag() *drag.Controller { return d.drag }

// Subscribe registers a launch listener and returns its removal func.
func (d *Desktop) Subscribe(fn activation.Handler) func() {
	return d.dispatch.Subscribe(fn)
}

// Launch forwards a native double activation on id to the dispatcher.
func (d *Desktop) Launch(id string) error {
	return d.dispatch.Activate(id)
}

// Launched returns the ids of every delivered launch in order.
func (d *Desktop) Launched() []string {
	return append([]string(nil), d.launched...)
}

// Placements returns the committed layout back-to-front.
func (d *Desktop) Placements() []placement.Entry {
	return d.store.List()
}

// Position returns the committed position of id, falling back to the
// catalog position for unknown ids.
func (d *Desktop) Position(id string) canvas.Point {
	return d.store.GetOr(id, d.catalog.Position(id))
}

// Icons returns the icons back-to-front joined with their metadata and
// their displayed position.
func (d *Desktop) Icons() []Icon {
	entries := d.store.List()
	dragging, _ := d.drag.DraggingID()
	offset, _ := d.drag.Offset()

	icons := make([]Icon, 0, len(entries))
	for _, e := range entries {
		app, ok := d.catalog.Get(e.ID)
		if !ok {
			continue
		}
		ic := Icon{App: app, Position: e.Position, Display: e.Position, Z: e.Z}
		if p, ok := d.tracker.Position(e.ID); ok {
			ic.Display = p
		}
		if e.ID == dragging {
			ic.Dragging = true
			ic.Display = offset
		}
		icons = append(icons, ic)
	}
	return icons
}

// Tick advances motion by one frame and reports whether anything still moves.
func (d *Desktop) Tick() bool {
	return d.tracker.Step()
}

// Moving reports whether any icon is animating.
func (d *Desktop) Moving() bool {
	return d.tracker.Moving()
}

// HitTest returns the topmost icon whose displayed footprint contains the
// canvas-local point.
func (d *Desktop) HitTest(local canvas.Point) (string, bool) {
	icons := d.Icons()
	for i := len(icons) - 1; i >= 0; i-- {
		if canvas.RectAt(icons[i].Display, d.cfg.Footprint).Contains(local) {
			return icons[i].App.ID, true
		}
	}
	return "", false
}

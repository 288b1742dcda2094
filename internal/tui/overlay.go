package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/folio/pkg/activation"
	"github.com/matzehuels/folio/pkg/catalog"
)

// Overlay shows the detail view of a launched app. It owns its open state
// and is only coupled to the engine through launch events.
type Overlay struct {
	catalog *catalog.Catalog
	app     *catalog.App
}

// NewOverlay creates a closed overlay resolving launches against cat.
func NewOverlay(cat *catalog.Catalog) *Overlay {
	return &Overlay{catalog: cat}
}

// Consume opens the overlay for a launch event. Unknown ids are ignored.
func (o *Overlay) Consume(e activation.Event) {
	if app, ok := o.catalog.Get(e.ID); ok {
		o.Open(app)
	}
}

// Open shows app.
func (o *Overlay) Open(app catalog.App) { o.app = &app }

// Close hides the overlay.
func (o *Overlay) Close() { o.app = nil }

// IsOpen reports whether an app is shown.
func (o *Overlay) IsOpen() bool { return o.app != nil }

// App returns the shown app.
func (o *Overlay) App() (catalog.App, bool) {
	if o.app == nil {
		return catalog.App{}, false
	}
	return *o.app, true
}

// View renders the panel at most width columns wide, or "" when closed.
func (o *Overlay) View(width int) string {
	if o.app == nil {
		return ""
	}
	return stylePanel.Render(RenderDetail(*o.app, panelWidth(width)))
}

func panelWidth(width int) int {
	// border and padding take 6 columns
	return max(min(width-6, 64), 20)
}

// RenderDetail renders an app's detail view wrapped to width columns.
func RenderDetail(app catalog.App, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	var b strings.Builder

	b.WriteString(stylePanelTitle.Render(app.Glyph() + "  " + app.Title))
	b.WriteByte('\n')

	var meta []string
	if app.Category != "" {
		meta = append(meta, app.Category)
	}
	if app.LaunchDate != "" {
		meta = append(meta, "launched "+app.LaunchDate)
	}
	if len(meta) > 0 {
		b.WriteString(styleMeta.Render(strings.Join(meta, " · ")))
		b.WriteByte('\n')
	}

	if app.Description != "" {
		b.WriteByte('\n')
		b.WriteString(wrap.Render(strings.TrimSpace(app.Description)))
		b.WriteByte('\n')
	}

	if len(app.Technologies) > 0 {
		b.WriteByte('\n')
		b.WriteString(styleLabel.Render("Technologies"))
		b.WriteByte('\n')
		b.WriteString(wrap.Render(strings.Join(app.Technologies, " · ")))
		b.WriteByte('\n')
	}

	if len(app.Features) > 0 {
		b.WriteByte('\n')
		b.WriteString(styleLabel.Render("Features"))
		b.WriteByte('\n')
		for _, f := range app.Features {
			b.WriteString(wrap.Render("• " + f))
			b.WriteByte('\n')
		}
	}

	links := [][2]string{{"Source", app.GitHub}, {"Demo", app.Demo}}
	var linkLines []string
	for _, l := range links {
		if l[1] == "" || l[1] == "#" {
			continue
		}
		linkLines = append(linkLines, styleMeta.Render(l[0]+" ")+styleLink.Render(l[1]))
	}
	if len(linkLines) > 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Join(linkLines, "\n"))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(styleHint.Render("esc close"))
	return b.String()
}

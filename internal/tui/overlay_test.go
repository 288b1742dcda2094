package tui

import (
	"strings"
	"testing"

	"github.com/matzehuels/folio/pkg/activation"
	"github.com/matzehuels/folio/pkg/catalog"
)

func TestOverlayConsume(t *testing.T) {
	o := NewOverlay(catalog.Default())
	if o.IsOpen() || o.View(80) != "" {
		t.Fatal("new overlay is open")
	}

	o.Consume(activation.Event{ID: "unknown"})
	if o.IsOpen() {
		t.Error("unknown id opened the overlay")
	}

	o.Consume(activation.Event{ID: "weather"})
	app, ok := o.App()
	if !ok || app.Title != "WeatherPro" {
		t.Errorf("App() = %v, %v", app.Title, ok)
	}

	o.Close()
	if o.IsOpen() {
		t.Error("Close() left it open")
	}
}

func TestRenderDetail(t *testing.T) {
	app, _ := catalog.Default().Get("taskmanager")
	out := RenderDetail(app, 50)

	for _, want := range []string{"TaskFlow", "productivity", "January 2024", "Socket.io", "• Real-time collaboration"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderDetail() missing %q", want)
		}
	}
	if strings.Contains(out, "Source") {
		t.Error("placeholder links should be hidden")
	}
}

func TestRenderDetailLinks(t *testing.T) {
	app := catalog.App{ID: "x", Title: "X", GitHub: "https://github.com/example/x", Demo: "#"}
	out := RenderDetail(app, 50)
	if !strings.Contains(out, "https://github.com/example/x") {
		t.Error("source link missing")
	}
	if strings.Contains(out, "Demo") {
		t.Error("placeholder demo link shown")
	}
}

func TestPanelWidth(t *testing.T) {
	tests := []struct{ in, want int }{
		{200, 64},
		{50, 44},
		{10, 20},
	}
	for _, tt := range tests {
		if got := panelWidth(tt.in); got != tt.want {
			t.Errorf("panelWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

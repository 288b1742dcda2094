package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSurfaceBox(t *testing.T) {
	s := newSurface(6, 3)
	s.box(0, 0, 4, 3, lipgloss.NormalBorder(), nil)

	want := "┌──┐  \n│  │  \n└──┘  "
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestSurfaceClips(t *testing.T) {
	s := newSurface(3, 2)
	s.box(-1, -1, 3, 3, lipgloss.NormalBorder(), nil)
	s.text(2, 1, "hello", 5, nil)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 3 {
			t.Errorf("line %q has %d runes", l, n)
		}
	}
}

func TestSurfaceWideRunes(t *testing.T) {
	s := newSurface(4, 1)
	s.text(0, 0, "ab", 4, nil)
	s.set(1, 0, '界', nil)

	if got := s.String(); got != "a界 " {
		t.Errorf("String() = %q, want %q", got, "a界 ")
	}

	// Overwriting the right half blanks the left half.
	s.set(2, 0, 'x', nil)
	if got := s.String(); got != "a x " {
		t.Errorf("String() = %q, want %q", got, "a x ")
	}
}

func TestSurfaceTruncates(t *testing.T) {
	s := newSurface(10, 1)
	s.text(0, 0, "WeatherPro", 8, nil)
	if got := strings.TrimRight(s.String(), " "); got != "Weather…" {
		t.Errorf("String() = %q", got)
	}
}

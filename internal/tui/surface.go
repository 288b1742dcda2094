package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// surface is a grid of styled runes painted back-to-front.
type surface struct {
	cols, rows int
	cells      [][]cell
}

type cell struct {
	r     rune
	style *lipgloss.Style
	cont  bool // right half of a wide rune
}

func newSurface(cols, rows int) *surface {
	s := &surface{cols: max(cols, 0), rows: max(rows, 0)}
	s.cells = make([][]cell, s.rows)
	for y := range s.cells {
		s.cells[y] = make([]cell, s.cols)
		for x := range s.cells[y] {
			s.cells[y][x] = cell{r: ' '}
		}
	}
	return s
}

func (s *surface) set(x, y int, r rune, st *lipgloss.Style) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	// Overwriting half of a wide rune blanks the other half.
	if s.cells[y][x].cont && x > 0 {
		s.cells[y][x-1] = cell{r: ' '}
	}
	if x+1 < s.cols && s.cells[y][x+1].cont {
		s.cells[y][x+1] = cell{r: ' '}
	}
	s.cells[y][x] = cell{r: r, style: st}
	if runewidth.RuneWidth(r) == 2 {
		if x+1 < s.cols {
			s.cells[y][x+1] = cell{cont: true, style: st}
		} else {
			s.cells[y][x] = cell{r: ' '}
		}
	}
}

// text writes str from (x, y), clipped to maxWidth columns.
func (s *surface) text(x, y int, str string, maxWidth int, st *lipgloss.Style) {
	str = runewidth.Truncate(str, maxWidth, "…")
	for _, r := range str {
		s.set(x, y, r, st)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// box draws a cols x rows frame with its top-left at (x, y).
func (s *surface) box(x, y, cols, rows int, border lipgloss.Border, st *lipgloss.Style) {
	if cols < 2 || rows < 2 {
		return
	}
	r := func(str string) rune {
		for _, c := range str {
			return c
		}
		return ' '
	}
	right, bottom := x+cols-1, y+rows-1
	for cx := x + 1; cx < right; cx++ {
		s.set(cx, y, r(border.Top), st)
		s.set(cx, bottom, r(border.Bottom), st)
	}
	for cy := y + 1; cy < bottom; cy++ {
		s.set(x, cy, r(border.Left), st)
		s.set(right, cy, r(border.Right), st)
	}
	s.set(x, y, r(border.TopLeft), st)
	s.set(right, y, r(border.TopRight), st)
	s.set(x, bottom, r(border.BottomLeft), st)
	s.set(right, bottom, r(border.BottomRight), st)
}

// fill blanks a rectangle.
func (s *surface) fill(x, y, cols, rows int) {
	for cy := y; cy < y+rows; cy++ {
		for cx := x; cx < x+cols; cx++ {
			s.set(cx, cy, ' ', nil)
		}
	}
}

// String renders the surface, grouping runs of equally styled cells.
func (s *surface) String() string {
	var b strings.Builder
	for y, row := range s.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var cur *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == nil {
				b.WriteString(run.String())
			} else {
				b.WriteString(cur.Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.cont {
				continue
			}
			if c.style != cur {
				flush()
				cur = c.style
			}
			run.WriteRune(c.r)
		}
		flush()
	}
	return b.String()
}

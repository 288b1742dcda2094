package tui

import (
	"math"

	"github.com/matzehuels/folio/pkg/canvas"
)

// DefaultCell is the pixel size assumed for one terminal cell. With it the
// default 80x100 icon footprint covers 10x5 cells.
var DefaultCell = canvas.Size{Width: 8, Height: 20}

// Grid maps terminal cells to the engine's pixel space.
type Grid struct {
	Cell canvas.Size
}

// Pixel returns the pixel at the center of cell (col, row).
func (g Grid) Pixel(col, row int) canvas.Point {
	return canvas.Point{
		X: (float64(col) + 0.5) * g.Cell.Width,
		Y: (float64(row) + 0.5) * g.Cell.Height,
	}
}

// Cell returns the first cell whose center lies at or after p on each axis,
// so a box drawn from it covers exactly the cells Pixel would hit-test
// inside the box.
func (g Grid) Cell(p canvas.Point) (col, row int) {
	return firstCell(p.X, g.Cell.Width), firstCell(p.Y, g.Cell.Height)
}

// Span returns how many cells a pixel size covers, at least one per axis.
func (g Grid) Span(s canvas.Size) (cols, rows int) {
	cols = int(math.Round(s.Width / g.Cell.Width))
	rows = int(math.Round(s.Height / g.Cell.Height))
	return max(cols, 1), max(rows, 1)
}

// Rect returns the pixel rectangle of a cols x rows block at (col, row).
func (g Grid) Rect(col, row, cols, rows int) canvas.Rect {
	return canvas.Rect{
		Left:   float64(col) * g.Cell.Width,
		Top:    float64(row) * g.Cell.Height,
		Width:  float64(cols) * g.Cell.Width,
		Height: float64(rows) * g.Cell.Height,
	}
}

func firstCell(v, size float64) int {
	return int(math.Ceil(v/size - 0.5))
}

package render

import (
	"math"
	"strings"
	"unicode/utf8"
)

var (
	solidBorder  = [6]rune{'┌', '┐', '└', '┘', '─', '│'}
	doubleBorder = [6]rune{'╔', '╗', '╚', '╝', '═', '║'}
	dottedBorder = [6]rune{'·', '·', '·', '·', '·', '·'}
)

// Canvas is a character grid scaled from surface pixels.
type Canvas struct {
	Cols, Rows int
	sx, sy     float64
	cells      []rune
}

// NewCanvas returns a blank cols x rows canvas for a surface of w x h
// pixels.
func NewCanvas(cols, rows int, w, h float64) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	c := &Canvas{Cols: cols, Rows: rows, cells: make([]rune, cols*rows)}
	if w > 0 && h > 0 {
		c.sx, c.sy = float64(cols)/w, float64(rows)/h
	}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

// RenderText draws a snapshot onto a new canvas: containers with dotted
// borders, docked items with solid borders and floating items with double
// borders, each with its label on the middle row.
func RenderText(s Snapshot, cols, rows int) *Canvas {
	c := NewCanvas(cols, rows, s.Width, s.Height)
	for _, ct := range s.Containers {
		c.box(ct.Box, dottedBorder)
		c.text(ct.X, ct.Y, ct.W, ct.Name, true)
	}
	for _, it := range s.Items {
		border := solidBorder
		if it.Floating {
			border = doubleBorder
		}
		c.fill(it.Box)
		c.box(it.Box, border)
		c.text(it.X, it.Y+it.H*0.5, it.W, it.Label, false)
	}
	return c
}

// ToSurface maps the center of a cell to surface pixels.
func (c *Canvas) ToSurface(col, row int) (x, y float64) {
	if c.sx == 0 || c.sy == 0 {
		return 0, 0
	}
	return (float64(col) + 0.5) / c.sx, (float64(row) + 0.5) / c.sy
}

// Lines returns the canvas rows.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.Rows)
	for r := range lines {
		lines[r] = string(c.cells[r*c.Cols : (r+1)*c.Cols])
	}
	return lines
}

// String joins the rows with newlines.
func (c *Canvas) String() string { return strings.Join(c.Lines(), "\n") }

// At returns the rune at a cell, or a space outside the canvas.
func (c *Canvas) At(col, row int) rune {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return ' '
	}
	return c.cells[row*c.Cols+col]
}

func (c *Canvas) set(col, row int, r rune) {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row*c.Cols+col] = r
}

// span converts a pixel box to inclusive cell bounds.
func (c *Canvas) span(b Box) (c0, r0, c1, r1 int) {
	c0 = int(math.Round(b.X * c.sx))
	r0 = int(math.Round(b.Y * c.sy))
	c1 = int(math.Round((b.X+b.W)*c.sx)) - 1
	r1 = int(math.Round((b.Y+b.H)*c.sy)) - 1
	return c0, r0, max(c1, c0), max(r1, r0)
}

func (c *Canvas) fill(b Box) {
	c0, r0, c1, r1 := c.span(b)
	for r := r0; r <= r1; r++ {
		for col := c0; col <= c1; col++ {
			c.set(col, r, ' ')
		}
	}
}

func (c *Canvas) box(b Box, border [6]rune) {
	c0, r0, c1, r1 := c.span(b)
	for col := c0 + 1; col < c1; col++ {
		c.set(col, r0, border[4])
		c.set(col, r1, border[4])
	}
	for r := r0 + 1; r < r1; r++ {
		c.set(c0, r, border[5])
		c.set(c1, r, border[5])
	}
	c.set(c0, r0, border[0])
	c.set(c1, r0, border[1])
	c.set(c0, r1, border[2])
	c.set(c1, r1, border[3])
}

// text writes s on the row at pixel y, centered in the pixel span
// [x, x+w] inside the borders, or left-aligned after the corner when left
// is set. Text that does not fit is cut with an ellipsis.
func (c *Canvas) text(x, y, w float64, s string, left bool) {
	c0 := int(math.Round(x*c.sx)) + 1
	c1 := int(math.Round((x+w)*c.sx)) - 2
	row := int(math.Floor(y * c.sy))
	room := c1 - c0 + 1
	if room <= 0 || s == "" {
		return
	}
	runes := []rune(s)
	if len(runes) > room {
		if room == 1 {
			runes = runes[:1]
		} else {
			runes = append(runes[:room-1], '…')
		}
	}
	start := c0
	if !left {
		start = c0 + (room-utf8.RuneCountInString(string(runes)))/2
	}
	for i, r := range runes {
		c.set(start+i, row, r)
	}
}

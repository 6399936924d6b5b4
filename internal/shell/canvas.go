package shell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r rune
	s styleID
}

// canvas is a grid of styled cells; later draws cover earlier ones
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([]cell, c.w*c.h)
	c.fill(0, 0, c.w, c.h, stDesktop)
	return c
}

func (c *canvas) set(x, y int, r rune, s styleID) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, s: s}
}

func (c *canvas) at(x, y int) cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return cell{}
	}
	return c.cells[y*c.w+x]
}

func (c *canvas) fill(x, y, w, h int, s styleID) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.set(col, row, ' ', s)
		}
	}
}

// text writes s from (x, y), clipped to limit cells; it returns the cells used
func (c *canvas) text(x, y int, s string, st styleID, limit int) int {
	n := 0
	for _, r := range s {
		if n >= limit {
			break
		}
		c.set(x+n, y, r, st)
		n++
	}
	return n
}

func (c *canvas) box(x, y, w, h int, st styleID, border lipgloss.Border) {
	if w < 2 || h < 2 {
		return
	}
	first := func(s string) rune {
		for _, r := range s {
			return r
		}
		return ' '
	}
	right, bottom := x+w-1, y+h-1
	for col := x + 1; col < right; col++ {
		c.set(col, y, first(border.Top), st)
		c.set(col, bottom, first(border.Bottom), st)
	}
	for row := y + 1; row < bottom; row++ {
		c.set(x, row, first(border.Left), st)
		c.set(right, row, first(border.Right), st)
	}
	c.set(x, y, first(border.TopLeft), st)
	c.set(right, y, first(border.TopRight), st)
	c.set(x, bottom, first(border.BottomLeft), st)
	c.set(right, bottom, first(border.BottomRight), st)
}

// render joins runs of equally styled cells so each run is styled once
func (c *canvas) render(t Theme) string {
	var out strings.Builder
	var run []rune
	for y := 0; y < c.h; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		for i := 0; i < len(row); {
			j := i
			run = run[:0]
			for j < len(row) && row[j].s == row[i].s {
				run = append(run, row[j].r)
				j++
			}
			out.WriteString(t.style(row[i].s).Render(string(run)))
			i = j
		}
	}
	return out.String()
}

// line returns row y without styling
func (c *canvas) line(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	var b strings.Builder
	for _, cl := range c.cells[y*c.w : (y+1)*c.w] {
		b.WriteRune(cl.r)
	}
	return b.String()
}

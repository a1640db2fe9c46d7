package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells pack 2x4 dots per character, giving a (Width*2)x(Height*4)
// pixel grid. Dot-to-bit layout (Unicode offset 0x2800):
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Color indices for the canvas' color layer.
const (
	ColorNone uint8 = iota
	ColorBody1
	ColorBody2
	ColorBody3
	ColorAxes
)

// Canvas is a braille pixel canvas with a per-cell color layer so each
// body's path renders in its own color.
type Canvas struct {
	Width, Height int // character cells
	cells         []rune
	colors        []uint8
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		Width:  w,
		Height: h,
		cells:  make([]rune, w*h),
		colors: make([]uint8, w*h),
	}
}

// PixelSize returns the sub-pixel resolution of the canvas.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0
		c.colors[i] = ColorNone
	}
}

// Set lights the pixel at sub-pixel coordinates (x, y). Later colors win
// within a cell; body colors are never overwritten by axes.
func (c *Canvas) Set(x, y int, color uint8) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	idx := row*c.Width + col
	c.cells[idx] |= dotBits[y%4][x%2]
	if color != ColorAxes || c.colors[idx] == ColorNone {
		c.colors[idx] = color
	}
}

// Dot reports whether the pixel at (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.cells[row*c.Width+col]&dotBits[y%4][x%2] != 0
}

// Cell returns the braille pattern and color of a character cell.
func (c *Canvas) Cell(col, row int) (rune, uint8) {
	idx := row*c.Width + col
	pattern := c.cells[idx]
	if pattern == 0 {
		return ' ', ColorNone
	}
	return 0x2800 + pattern, c.colors[idx]
}

// Line draws a line in sub-pixel space using Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, color uint8) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Marker draws a filled square of radius r, the body position marker.
func (c *Canvas) Marker(x, y, r int, color uint8) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy, color)
		}
	}
}

// String renders the canvas without color, one line per cell row.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _ := c.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the canvas applying the body color palette.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, color := c.Cell(col, row)
			if color == ColorNone {
				b.WriteRune(r)
				continue
			}
			b.WriteString(paletteStyle(color).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func paletteStyle(color uint8) lipgloss.Style {
	switch color {
	case ColorBody1:
		return Body1Style
	case ColorBody2:
		return Body2Style
	case ColorBody3:
		return Body3Style
	default:
		return AxesStyle
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

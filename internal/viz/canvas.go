package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/particles/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid. Every cell also remembers the fastest
// particle that landed in it, which picks the cell's color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Speed         [][]float32
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Grid = make([][]rune, h)
	c.Speed = make([][]float32, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Speed[i] = make([]float32, w)
	}
	c.Clear()
	return c
}

// Dots is the canvas size in sub-cell dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int, speed float32) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if speed > c.Speed[row][col] {
		c.Speed[row][col] = speed
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Speed[i][j] = 0
		}
	}
}

// String renders the grid with each lit cell colored from the speed lookup
// table.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if r == blank {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(cellStyle(c.Speed[i][j]).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// plain is String without styling.
func (c *Canvas) plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func cellStyle(speed float32) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SpeedColor(speed))
}

// SpeedColor is the lookup table color for speed. The terminal has no
// additive blending, so alpha is dropped.
func SpeedColor(speed float32) lipgloss.Color {
	rgba := render.Sample(speed)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgba[0], rgba[1], rgba[2]))
}

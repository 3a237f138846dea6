package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbsim/internal/cloud"
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

// Layer records what was drawn into a cell.
type Layer uint8

const (
	LayerA Layer = 1 << iota
	LayerB
	LayerOverlay
)

// LobeLayer maps a lobe flag to its canvas layer.
func LobeLayer(l cloud.Lobe) Layer {
	if l == cloud.LobeA {
		return LayerA
	}
	return LayerB
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Layers        [][]Layer
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Layers: make([][]Layer, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Layers[i] = make([]Layer, w)
	}
	c.Clear()
	return c
}

// Set draws an overlay dot at sub-pixel (x, y). The canvas is
// (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	c.SetLayer(x, y, LayerOverlay)
}

func (c *Canvas) SetLayer(x, y int, l Layer) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Layers[row][col] |= l
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Layers[i][j] = 0
		}
	}
}

// DrawLine draws an overlay line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colours each cell by its dominant layer. Cells holding both lobes
// take the accent colour. Runs of equal colour share one style call.
func (c *Canvas) Render(th Theme) string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && cellColor(c.Layers[row][col], th) == cellColor(c.Layers[row][start], th) {
				continue
			}
			run := string(c.Grid[row][start:col])
			if fg := cellColor(c.Layers[row][start], th); fg != "" {
				run = lipgloss.NewStyle().Foreground(fg).Render(run)
			}
			b.WriteString(run)
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellColor(l Layer, th Theme) lipgloss.Color {
	switch {
	case l&LayerA != 0 && l&LayerB != 0:
		return th.Accent
	case l&LayerA != 0:
		return th.LobeA
	case l&LayerB != 0:
		return th.LobeB
	case l&LayerOverlay != 0:
		return th.Muted
	}
	return ""
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package viz

import (
	"image"
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

const (
	gifCharW = 8
	gifCharH = 16
)

// CaptureFrame rasterizes the canvas into a paletted image: background,
// lobe A, lobe B, accent for mixed cells and muted overlay lines.
func CaptureFrame(c *Canvas, th Theme) *image.Paletted {
	palette := color.Palette{
		themeRGBA(th.Background),
		themeRGBA(th.LobeA),
		themeRGBA(th.LobeB),
		themeRGBA(th.Accent),
		themeRGBA(th.Muted),
	}
	imgW, imgH := c.Width*gifCharW, c.Height*gifCharH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), palette)

	dotW, dotH := gifCharW/2, gifCharH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern == 0 {
				continue
			}
			idx := paletteIndex(c.Layers[row][col])
			baseX, baseY := col*gifCharW, row*gifCharH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	return img
}

func paletteIndex(l Layer) uint8 {
	switch {
	case l&LayerA != 0 && l&LayerB != 0:
		return 3
	case l&LayerA != 0:
		return 1
	case l&LayerB != 0:
		return 2
	}
	return 4
}

func themeRGBA(c lipgloss.Color) color.RGBA {
	r, g, b := parseHex(string(c))
	return color.RGBA{r, g, b, 255}
}

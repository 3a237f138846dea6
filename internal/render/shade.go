package render

import "math"

// Color is linear RGB in [0, 1].
type Color struct{ R, G, B float64 }

var (
	LobeAColor = Color{1.0, 0.5, 0.5}
	LobeBColor = Color{0.2, 0.8, 1.0}

	DefaultLight = [3]float64{0, 1, 0}
)

const (
	ambient      = 0.5
	diffuseScale = 0.7
)

// Shade is the fragment stage: hidden points are discarded (ok == false);
// visible points take their lobe colour lit by max(n·l, 0) where n is the
// normalized position.
func Shade(visible, lobe float32, x, y, z float32, light [3]float64) (c Color, ok bool) {
	if visible < 0.5 {
		return Color{}, false
	}
	base := LobeBColor
	if lobe >= 0.5 {
		base = LobeAColor
	}

	n := normalize(float64(x), float64(y), float64(z))
	l := normalize(light[0], light[1], light[2])
	diffuse := math.Max(n[0]*l[0]+n[1]*l[1]+n[2]*l[2], 0)
	k := ambient + diffuse*diffuseScale
	return Color{base.R * k, base.G * k, base.B * k}, true
}

// Hex renders the colour as #rrggbb, saturating above 1.
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	b := make([]byte, 7)
	b[0] = '#'
	for i, v := range [3]float64{c.R, c.G, c.B} {
		u := int(math.Round(math.Min(math.Max(v, 0), 1) * 255))
		b[1+2*i] = digits[u/16]
		b[2+2*i] = digits[u%16]
	}
	return string(b)
}

func normalize(x, y, z float64) [3]float64 {
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return [3]float64{}
	}
	return [3]float64{x / l, y / l, z / l}
}

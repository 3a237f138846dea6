package export

import (
	"fmt"
	"io"
	"math"
	"sort"

	svg "github.com/ajstarks/svgo"
	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/render"
)

const background = "#0a0a0a"

type svgPoint struct {
	x, y  float64
	depth float64
	fill  string
}

// CloudSVG writes the visible points of one frame as shaded circles, far
// points first. At most maxPoints are drawn (0 draws all), picked evenly.
func CloudSVG(w io.Writer, s *cloud.Samples, v *cloud.VisualState, cam *render.Camera, width, height, maxPoints int) error {
	if err := cloud.CheckLengths(s, v); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("svg size must be positive, got %dx%d", width, height)
	}

	stride := 1
	if vis := v.VisibleCount(); maxPoints > 0 && vis > maxPoints {
		stride = (vis + maxPoints - 1) / maxPoints
	}

	points := make([]svgPoint, 0, v.VisibleCount()/stride+1)
	seen := 0
	for i := 0; i < s.Len(); i++ {
		if !v.Visible[i] {
			continue
		}
		seen++
		if (seen-1)%stride != 0 {
			continue
		}
		x, y, z := s.Position(i)
		col, ok := render.Shade(1, v.Lobe[i].Float(), x, y, z, render.DefaultLight)
		if !ok {
			continue
		}
		px, py, depth, ok := cam.ProjectF(render.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}, float64(width), float64(height))
		if !ok || px < 0 || py < 0 || px >= float64(width) || py >= float64(height) {
			continue
		}
		points = append(points, svgPoint{px, py, depth, col.Hex()})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].depth < points[j].depth })

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+background)
	canvas.Gstyle("stroke:none")
	for _, p := range points {
		canvas.Circle(int(math.Round(p.x)), int(math.Round(p.y)), 1, "fill:"+p.fill)
	}
	canvas.Gend()
	canvas.End()
	return nil
}

// SeriesSVG plots values as a polyline scaled to fill the image with 10%
// padding on the value axis.
func SeriesSVG(w io.Writer, values []float64, width, height int, stroke string) error {
	if len(values) < 2 {
		return fmt.Errorf("series needs at least 2 points, got %d", len(values))
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	lo -= rng * 0.1
	rng *= 1.2

	xs := make([]int, len(values))
	ys := make([]int, len(values))
	for i, v := range values {
		xs[i] = int(math.Round(float64(i) / float64(len(values)-1) * float64(width)))
		ys[i] = int(math.Round(float64(height) - (v-lo)/rng*float64(height)))
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+background)
	canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", stroke))
	canvas.End()
	return nil
}

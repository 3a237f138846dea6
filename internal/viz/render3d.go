package viz

import (
	"sort"

	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/render"
)

type Edge struct {
	Start, End render.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e render.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe onto the overlay layer, far edges first.
func Render3D(c *Canvas, w *Wireframe, cam *render.Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

func CreateCubeWireframe(size float64) *Wireframe {
	w, s := NewWireframe(), size/2
	v := []render.Vec3{{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s}, {X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}

func CreateAxesWireframe(l float64) *Wireframe {
	w, o := NewWireframe(), render.Vec3{}
	w.AddEdge(o, render.Vec3{X: l})
	w.AddEdge(o, render.Vec3{Y: l})
	w.AddEdge(o, render.Vec3{Z: l})
	return w
}

// DrawCloud projects visible points onto their lobe layer. When more than
// budget points are visible only every k-th one is drawn. It returns the
// number of points drawn.
func DrawCloud(c *Canvas, cam *render.Camera, s *cloud.Samples, v *cloud.VisualState, budget int) int {
	if c == nil || cam == nil || s == nil || v == nil || v.Len() != s.Len() {
		return 0
	}
	stride := 1
	if budget > 0 {
		if vis := v.VisibleCount(); vis > budget {
			stride = (vis + budget - 1) / budget
		}
	}

	cw, ch := c.Width*2, c.Height*4
	drawn, seen := 0, 0
	for i := 0; i < s.Len(); i++ {
		if !v.Visible[i] {
			continue
		}
		seen++
		if (seen-1)%stride != 0 {
			continue
		}
		x, y, z := s.Position(i)
		sx, sy, _, ok := cam.Project(render.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}, cw, ch)
		if !ok {
			continue
		}
		c.SetLayer(sx, sy, LobeLayer(v.Lobe[i]))
		drawn++
	}
	return drawn
}

// DrawGeometry draws every stride-th visible point held by a render
// geometry. It returns the number of points drawn.
func DrawGeometry(c *Canvas, cam *render.Camera, g *render.Geometry, stride int) int {
	if c == nil || cam == nil || g == nil {
		return 0
	}
	stride = max(stride, 1)
	cw, ch := c.Width*2, c.Height*4
	drawn, seen := 0, 0
	g.Points(func(x, y, z, lobe float32) {
		seen++
		if (seen-1)%stride != 0 {
			return
		}
		sx, sy, _, ok := cam.Project(render.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}, cw, ch)
		if !ok {
			return
		}
		l := LayerB
		if lobe >= 0.5 {
			l = LayerA
		}
		c.SetLayer(sx, sy, l)
		drawn++
	})
	return drawn
}

package render

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Camera orbits the origin and projects world points with a simple
// perspective divide. Extent is the world half-width that fills the
// shorter screen side at zoom 1.
type Camera struct {
	Distance         float64
	Near             float64
	Extent           float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera(extent float64) *Camera {
	if extent <= 0 {
		extent = 1
	}
	return &Camera{Distance: extent * 4, Near: 0.1, Extent: extent, RotX: 0.35, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Reset() {
	*c = *NewCamera(c.Extent)
}

// RotatePoint applies the X, then Y, then Z rotation.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// ProjectF maps p onto a sw x sh screen with y growing downwards. ok is
// false for points behind the near plane; on-screen bounds are not checked.
func (c *Camera) ProjectF(p Vec3, sw, sh float64) (x, y, depth float64, ok bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := math.Min(sw, sh) / 2 / c.Extent * 0.9
	return rot.X*scale*pScale + sw/2, -rot.Y*scale*pScale + sh/2, rot.Z, true
}

// Project is ProjectF snapped to integer pixels. ok also requires the point
// to land on screen.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	fx, fy, depth, ok := c.ProjectF(p, float64(sw), float64(sh))
	if !ok {
		return 0, 0, 0, false
	}
	sx, sy := int(math.Floor(fx)), int(math.Floor(fy))
	return sx, sy, depth, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

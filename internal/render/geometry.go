// Package render holds the CPU-side attribute buffers a renderer uploads from,
// and the shading rule that turns per-point flags into colour.
package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/orbsim/internal/cloud"
)

var ErrNotUploaded = errors.New("render: publish before upload")

// Attribute is one named float32 buffer.
type Attribute struct {
	Name        string
	ItemSize    int
	Array       []float32
	Version     uint64
	NeedsUpdate bool
}

func (a *Attribute) Count() int {
	if a.ItemSize == 0 {
		return 0
	}
	return len(a.Array) / a.ItemSize
}

// Geometry is a point geometry keyed by attribute name. It implements
// classifier.Sink.
type Geometry struct {
	mu    sync.RWMutex
	attrs map[string]*Attribute
	order []string
	count int
}

func NewGeometry() *Geometry {
	return &Geometry{attrs: make(map[string]*Attribute)}
}

// Upload copies every static array and the seed flags into fresh buffers.
func (g *Geometry) Upload(s *cloud.Samples, v *cloud.VisualState) error {
	if err := cloud.CheckLengths(s, v); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n := s.Len()
	g.attrs = make(map[string]*Attribute, len(cloud.Attributes))
	g.order = g.order[:0]
	g.count = n

	for _, def := range cloud.Attributes {
		attr := &Attribute{
			Name:        def.Name,
			ItemSize:    def.ItemSize,
			Array:       make([]float32, n*def.ItemSize),
			Version:     1,
			NeedsUpdate: true,
		}
		if src := s.Field(def.Name); src != nil {
			copy(attr.Array, src)
		}
		g.attrs[def.Name] = attr
		g.order = append(g.order, def.Name)
	}

	v.EncodeFlags(g.attrs[cloud.AttrVisible].Array, g.attrs[cloud.AttrLobe].Array)
	return nil
}

// Publish rewrites the flag buffers in full and marks them dirty.
func (g *Geometry) Publish(v *cloud.VisualState) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.count == 0 {
		return ErrNotUploaded
	}
	if v.Len() != g.count {
		return cloud.InvalidArgument("flags", "length %d does not match %d uploaded points", v.Len(), g.count)
	}

	vis, lobe := g.attrs[cloud.AttrVisible], g.attrs[cloud.AttrLobe]
	v.EncodeFlags(vis.Array, lobe.Array)
	vis.Version++
	lobe.Version++
	vis.NeedsUpdate = true
	lobe.NeedsUpdate = true
	return nil
}

// Count is the number of uploaded points.
func (g *Geometry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.count
}

// Names lists attributes in upload order.
func (g *Geometry) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Attribute returns a snapshot of a buffer's metadata and a copy of its data.
func (g *Geometry) Attribute(name string) (Attribute, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	a, ok := g.attrs[name]
	if !ok {
		return Attribute{}, false
	}
	cp := *a
	cp.Array = append([]float32(nil), a.Array...)
	return cp, true
}

// Consume hands the buffer to fn if it is dirty and clears the flag. It
// reports whether fn ran.
func (g *Geometry) Consume(name string, fn func(a *Attribute)) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.attrs[name]
	if !ok {
		return false, fmt.Errorf("render: unknown attribute %q", name)
	}
	if !a.NeedsUpdate {
		return false, nil
	}
	fn(a)
	a.NeedsUpdate = false
	return true, nil
}

// Points calls fn for each visible point with its position and lobe flag.
func (g *Geometry) Points(fn func(x, y, z float32, lobe float32)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.count == 0 {
		return
	}
	pos := g.attrs[cloud.AttrPosition].Array
	vis := g.attrs[cloud.AttrVisible].Array
	lobe := g.attrs[cloud.AttrLobe].Array
	for i := 0; i < g.count; i++ {
		if vis[i] < 0.5 {
			continue
		}
		fn(pos[3*i], pos[3*i+1], pos[3*i+2], lobe[i])
	}
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/render"
)

var axes = []string{"x", "y", "z", "w"}

// CSVHeader lists one column per attribute component, in upload order.
func CSVHeader() []string {
	var header []string
	for _, a := range cloud.Attributes {
		header = appendColumns(header, a.Name, a.ItemSize)
	}
	return header
}

func appendColumns(header []string, name string, itemSize int) []string {
	if itemSize == 1 {
		return append(header, name)
	}
	for _, axis := range axes[:itemSize] {
		header = append(header, name+"_"+axis)
	}
	return header
}

// WriteCSV writes one row per point with every static attribute followed
// by the current frame flags.
func WriteCSV(w io.Writer, s *cloud.Samples, v *cloud.VisualState) error {
	if err := cloud.CheckLengths(s, v); err != nil {
		return err
	}
	g := render.NewGeometry()
	if err := g.Upload(s, v); err != nil {
		return err
	}
	return WriteGeometryCSV(w, g)
}

// WriteGeometryCSV writes the buffers a renderer would draw from, one row per
// point, columns in upload order.
func WriteGeometryCSV(w io.Writer, g *render.Geometry) error {
	n := g.Count()
	if n == 0 {
		return render.ErrNotUploaded
	}

	var (
		header  []string
		buffers []render.Attribute
	)
	for _, name := range g.Names() {
		a, ok := g.Attribute(name)
		if !ok {
			return fmt.Errorf("export: attribute %q vanished", name)
		}
		if a.Count() != n {
			return cloud.InvalidArgument(name, "%d items for %d points", a.Count(), n)
		}
		header = appendColumns(header, a.Name, a.ItemSize)
		buffers = append(buffers, a)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for p := 0; p < n; p++ {
		row = row[:0]
		for _, a := range buffers {
			for k := 0; k < a.ItemSize; k++ {
				row = append(row, formatFloat(a.Array[p*a.ItemSize+k]))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

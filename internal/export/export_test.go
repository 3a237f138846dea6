package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"strings"
	"testing"

	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/render"
	"github.com/san-kum/orbsim/internal/sampler"
)

func fixture(t *testing.T) (*cloud.Samples, *cloud.VisualState) {
	t.Helper()
	s, err := sampler.FromPositions([][3]float32{{0, 1, 0}, {1, 0, 0}, {0, -1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	v := cloud.NewVisualState(3)
	v.Visible[0], v.Lobe[0] = true, cloud.LobeA
	v.Visible[2], v.Lobe[2] = true, cloud.LobeB
	return s, v
}

func TestCloudSVG(t *testing.T) {
	s, v := fixture(t)
	var buf bytes.Buffer
	if err := CloudSVG(&buf, s, v, render.NewCamera(2), 200, 200, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if got := strings.Count(out, "<circle"); got != 2 {
		t.Errorf("expected 2 circles for 2 visible points, got %d", got)
	}
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("missing svg envelope")
	}
}

func TestCloudSVGBudget(t *testing.T) {
	s, err := sampler.Generate(2000, 13, 1)
	if err != nil {
		t.Fatal(err)
	}
	v := cloud.NewVisualState(s.Len())
	for i := range v.Visible {
		v.Visible[i] = true
	}
	var buf bytes.Buffer
	if err := CloudSVG(&buf, s, v, render.NewCamera(6.5), 300, 300, 100); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "<circle"); got > 100 {
		t.Errorf("expected at most 100 circles, got %d", got)
	}
}

func TestCloudSVGErrors(t *testing.T) {
	s, _ := fixture(t)
	var buf bytes.Buffer
	if err := CloudSVG(&buf, s, cloud.NewVisualState(2), render.NewCamera(1), 10, 10, 0); !errors.Is(err, cloud.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for mismatched state, got %v", err)
	}
	if err := CloudSVG(&buf, s, cloud.NewVisualState(3), render.NewCamera(1), 0, 10, 0); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestSeriesSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := SeriesSVG(&buf, []float64{1, 3, 2, 5}, 100, 50, "#00ff88"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<polyline") {
		t.Error("expected a polyline")
	}
	if err := SeriesSVG(&buf, []float64{1}, 100, 50, "#fff"); err == nil {
		t.Error("expected error for single point")
	}
}

func TestWriteCSV(t *testing.T) {
	s, v := fixture(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, s, v); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}

	header := records[0]
	if len(header) != 12 {
		t.Errorf("expected 12 columns, got %d: %v", len(header), header)
	}
	if header[0] != "position_x" || header[len(header)-1] != cloud.AttrLobe {
		t.Errorf("unexpected header %v", header)
	}

	// point 0 sits on +y, visible, lobe A
	row := records[1]
	if row[1] != "1" || row[10] != "1" || row[11] != "1" {
		t.Errorf("unexpected first row %v", row)
	}
	// point 1 is hidden
	if records[2][10] != "0" {
		t.Errorf("expected hidden flag, got %v", records[2])
	}
}

func TestWriteGeometryCSV(t *testing.T) {
	s, v := fixture(t)
	g := render.NewGeometry()
	if err := WriteGeometryCSV(&bytes.Buffer{}, g); !errors.Is(err, render.ErrNotUploaded) {
		t.Fatalf("expected ErrNotUploaded, got %v", err)
	}
	if err := g.Upload(s, v); err != nil {
		t.Fatal(err)
	}

	// the geometry, not the samples, is what gets written
	v.Visible[1], v.Lobe[1] = true, cloud.LobeA
	if err := g.Publish(v); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteGeometryCSV(&buf, g); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if strings.Join(records[0], ",") != strings.Join(CSVHeader(), ",") {
		t.Errorf("header %v does not follow upload order %v", records[0], CSVHeader())
	}
	if records[2][10] != "1" || records[2][11] != "1" {
		t.Errorf("expected republished flags for point 1, got %v", records[2])
	}
}

func TestWriteGIF(t *testing.T) {
	pal := color.Palette{color.Black, color.White}
	frames := []*image.Paletted{
		image.NewPaletted(image.Rect(0, 0, 4, 4), pal),
		image.NewPaletted(image.Rect(0, 0, 4, 4), pal),
	}

	var buf bytes.Buffer
	if err := WriteGIF(&buf, frames, 0); err != nil {
		t.Fatal(err)
	}
	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(decoded.Image))
	}
	if decoded.Delay[0] != 1 {
		t.Errorf("expected delay clamped to 1, got %d", decoded.Delay[0])
	}

	if err := WriteGIF(&buf, nil, 5); err == nil {
		t.Error("expected error for no frames")
	}
}

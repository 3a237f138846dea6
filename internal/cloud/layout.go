package cloud

// Attribute names shared with render sinks.
const (
	AttrPosition = "position"
	AttrRadius   = "distance_from_origin"
	AttrPolar    = "theta"
	AttrAzimuth  = "phi"
	AttrAmpS     = "wavefunction_1s_at_point"
	AttrAmpP     = "wavefunction_2pz_at_point"
	AttrAmpSSq   = "wavefunction_1s_at_point_squared"
	AttrAmpPSq   = "wavefunction_2pz_at_point_squared"
	AttrVisible  = "isActive"
	AttrLobe     = "isLobe_1"
)

// AttributeSpec describes one per-point buffer.
type AttributeSpec struct {
	Name     string
	ItemSize int
	Dynamic  bool // republished every frame
}

// Attributes is the upload order. Static fields first, per-frame flags last.
var Attributes = []AttributeSpec{
	{AttrPosition, 3, false},
	{AttrRadius, 1, false},
	{AttrPolar, 1, false},
	{AttrAzimuth, 1, false},
	{AttrAmpS, 1, false},
	{AttrAmpP, 1, false},
	{AttrAmpSSq, 1, false},
	{AttrAmpPSq, 1, false},
	{AttrVisible, 1, true},
	{AttrLobe, 1, true},
}

// Field returns the static array backing a named attribute, or nil for
// dynamic or unknown names.
func (s *Samples) Field(name string) []float32 {
	switch name {
	case AttrPosition:
		return s.Positions
	case AttrRadius:
		return s.Radius
	case AttrPolar:
		return s.Polar
	case AttrAzimuth:
		return s.Azimuth
	case AttrAmpS:
		return s.AmpS
	case AttrAmpP:
		return s.AmpP
	case AttrAmpSSq:
		return s.AmpSSq
	case AttrAmpPSq:
		return s.AmpPSq
	}
	return nil
}

// EncodeFlags writes the visible and lobe flags as 0/1 floats.
func (v *VisualState) EncodeFlags(visible, lobe []float32) {
	for i, vis := range v.Visible {
		if vis {
			visible[i] = 1
		} else {
			visible[i] = 0
		}
		lobe[i] = v.Lobe[i].Float()
	}
}

// CheckLengths reports whether s and v describe the same number of points.
func CheckLengths(s *Samples, v *VisualState) error {
	if s == nil || v == nil {
		return InvalidArgument("samples", "nil input")
	}
	n := s.Len()
	if len(s.Positions) != 3*n || len(s.Polar) != n || len(s.Azimuth) != n ||
		len(s.AmpS) != n || len(s.AmpP) != n || len(s.AmpSSq) != n || len(s.AmpPSq) != n {
		return InvalidArgument("samples", "ragged sample arrays")
	}
	if len(v.Visible) != n || len(v.Lobe) != n {
		return InvalidArgument("output", "length %d does not match %d samples", len(v.Visible), n)
	}
	return nil
}

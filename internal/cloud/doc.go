// Package cloud defines the shared data layout of the orbital point cloud.
//
// The package holds the types every other stage agrees on:
//
//   - [Samples]: immutable per-point scalars, one contiguous float32 slice per field
//   - [VisualState]: per-frame visibility and lobe flags
//   - [FrameState]: the phase accumulator and the threshold in force
//   - [Params]: user tunables, passed explicitly by reference
//   - [Attributes]: the ordered attribute contract used by render sinks
//
// # Layout
//
// Samples are stored as a structure of arrays so that each field can be handed to a
// render buffer in one copy. Positions are interleaved xyz triples; every other field
// has one value per point:
//
//	s.Positions[3*i : 3*i+3] // x, y, z of point i
//	s.Radius[i], s.Polar[i], s.Azimuth[i]
//
// # Thread Safety
//
// Samples are read-only after construction and safe to share. VisualState slots may be
// written concurrently as long as each index has a single writer (see [ParallelFor]).
package cloud

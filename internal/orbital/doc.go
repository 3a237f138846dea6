// Package orbital evaluates the two hydrogen orbitals mixed in the cloud.
//
//   - [AmplitudeS]: 1s, spherically symmetric, exp(-r)
//   - [AmplitudeP]: 2pz-like lobe, K·r·exp(-r/2)·sin θ
//   - [Interference]: the time-dependent cross term 2·ψs·ψp·cos(phase − φ)
//
// Coordinates use y as the "up" axis: the polar angle is measured from +y and the
// azimuth is measured in the xz plane from +z toward +x.
//
// The amplitudes are not normalized. K is a relative weight between the two
// orbitals chosen for a readable picture.
package orbital

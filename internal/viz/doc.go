// Package viz draws the animated orbital cloud in the terminal.
//
// Points are projected through a [render.Camera] onto a Braille [Canvas]
// (2x4 dots per cell) and coloured per lobe by the active [Theme]. [Model]
// is a Bubble Tea program that steps a [sim.Session] on every tick.
//
// # Key Bindings
//
//	Space   - Pause/Resume animation
//	Up/Down - Threshold
//	Lft/Rgt - Speed
//	n/N     - s/p proportion (m follows)
//	x y z   - Rotate (shift reverses)
//	+/-     - Zoom
//	a / c   - Toggle axes / bounding cube
//	T       - Cycle color themes
//	G       - Toggle GIF recording
//	?       - Show help overlay
package viz

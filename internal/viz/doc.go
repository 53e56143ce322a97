// Package viz draws the simulation in a terminal.
//
// A [Canvas] is a grid of Braille characters, 2x4 dots per cell, with one
// color per cell. It implements shapes.Surface, so the same frame code
// that feeds the window renderer and the SVG export paints it too.
//
// [Model] is the Bubble Tea program: a clock that ticks the simulation at
// the configured rate, a mouse handler that queues a body at the pressed
// cell, and a side panel with the kinetic energy chart.
//
// # Key Bindings
//
//	Space/P - Pause/Resume
//	S       - Single step while paused
//	R       - Reset to the configured bodies
//	T       - Cycle color themes
//	?       - Toggle full help
//	Q       - Quit
package viz

// Package viz renders a live particle field in the terminal.
//
// The TUI is built on bubbletea: a 60fps tick drives the engine's
// frame scheduler, the field draws onto a braille dot canvas, and a
// stats panel shows connection metrics alongside interactive motion
// and lifecycle controls.
package viz

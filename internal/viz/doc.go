// Package viz is the terminal host built on Bubble Tea.
//
// The setup screen takes the four parameters through a keyboard form with
// the same input filter as the desktop host. Once started, both bodies are
// drawn on a braille canvas with a stats panel and a velocity history
// chart beside it.
//
// # Key Bindings
//
//	Tab/Shift+Tab - Move between fields
//	Enter         - Start (setup) or restart the run
//	Space         - Pause/Resume
//	R             - Reset to the setup screen
//	S             - Toggle sound
//	+/-, Up/Down  - Volume
//	T             - Cycle color themes
//	Q             - Quit
package viz

// Package viz provides the terminal viewer for forktal.
//
// The viewer is a Bubble Tea program:
//
//   - [App]: preset menu that launches the viewer
//   - [Model]: live fractal view with a statistics panel
//
// Each terminal cell shows two field pixels with an upper half block, the
// top pixel as foreground and the bottom pixel as background.
//
// # Key Bindings
//
//	Space  - Zoom
//	Arrows - Pan (h/j/k/l also work)
//	P      - Pause/Resume stepping
//	R      - Reset to the starting viewport
//	S      - Save a PNG snapshot
//	T      - Cycle color themes
//	?      - Show help overlay
//	Q/Esc  - Quit
package viz

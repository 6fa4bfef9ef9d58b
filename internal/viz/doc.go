// Package viz renders heat exchange runs in the terminal.
//
// Static output is built from two pieces:
//
//   - asciigraph charts of temperature and energy histories
//   - lipgloss swatches painted with each particle's display color
//
// [RunLive] wraps a simulator in a Bubble Tea program that steps it once per
// frame.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Ticks per frame
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz

// Package viz provides the terminal dashboard for the amplifier model.
//
// The dashboard is a Bubble Tea program built around a [session.Session]:
//
//   - a parameter list with bound-clamped stepping and typed edits
//   - panels for waveforms, frequency response, spectrum, transfer curve,
//     RC/RE gain sensitivity and a braille circuit drawing
//   - per-panel error display that keeps the last good data on screen
//
// # Key Bindings
//
//	j/k   - Select parameter
//	h/l   - Step parameter within its bound
//	Enter - Type a value
//	Tab   - Cycle panels
//	P     - Cycle presets
//	R     - Reset to the starting or preset values
//	[ ]   - Halve/double the sample count
//	T     - Cycle color themes
//	?     - Show help overlay
package viz

// Package viz is the terminal live view of a session, built on Bubble Tea.
//
// Frames are flattened with package render and drawn on a Braille [Canvas],
// so the terminal shows the same elements an SVG export would. The side
// panel lists the numeric parameters, the element flags, the configuration
// string and a chart of the primary corner.
//
// # Key Bindings
//
//	Space      - Pause/Resume the clock
//	R          - Rounds back to zero
//	[ ]        - Nudge rounds
//	Tab, Up/Dn - Select and tune a parameter
//	Left/Right - Move the element cursor, Enter toggles
//	S          - Match hand speed
//	P, T       - Cycle presets, themes
//	G          - Save a PNG snapshot
package viz

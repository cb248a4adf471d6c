package vt

// Cell is one character position in the grid: a glyph byte plus the
// rendition it was written under. A zero glyph marks a cell that was
// never touched (or was cleared wholesale); it must render as a space
// in the default colors no matter what the other fields hold from
// earlier reuse.
type Cell struct {
	Glyph  byte
	FG, BG uint8
	Flags  Flags
}

// Resolve returns the drawable content of the cell, applying the
// zero-glyph rule. invert swaps foreground and background; the cursor
// indicator and the pointer overlay draw through it.
func (c Cell) Resolve(invert bool) (glyph byte, fg, bg uint8, flags Flags) {
	glyph, fg, bg, flags = c.Glyph, c.FG, c.BG, c.Flags
	if c.Glyph == 0 {
		glyph, fg, bg, flags = ' ', DEFAULT_FG, DEFAULT_BG, 0
	}
	if invert {
		fg, bg = bg, fg
	}
	return
}

func (c Cell) Equal(other Cell) bool {
	return c == other
}

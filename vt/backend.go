package vt

// Renderer is the capability set the parser drives. The parser never
// touches grid internals; every mutation and every cursor read goes
// through this interface. The Grid is the canonical implementation,
// tests substitute a recording double.
type Renderer interface {
	// Write renders one pass-through byte at the cursor and
	// advances it, handling control bytes, wrap and scroll.
	Write(c byte)
	// SetRendition applies the color pair used by subsequent
	// writes.
	SetRendition(fg, bg uint8)
	// SetCursor moves the cursor; implementations clamp to the
	// grid.
	SetCursor(x, y int)
	CursorX() int
	CursorY() int
	// SetCell places a glyph at an arbitrary coordinate without
	// moving the cursor.
	SetCell(x, y int, glyph byte)
	// ClearScreen blanks the entire grid and homes the cursor.
	ClearScreen()
}

// Painter is the pixel half of the backend: it turns one resolved
// cell into visible output. Concrete painters live in the render
// package. A painter error means that one cell isn't drawn; the grid
// logs it and carries on.
type Painter interface {
	DrawGlyph(col, row int, glyph byte, fg, bg uint8, flags Flags) error
}

// NopPainter discards everything. Useful headless.
type NopPainter struct{}

func (NopPainter) DrawGlyph(int, int, byte, uint8, uint8, Flags) error {
	return nil
}

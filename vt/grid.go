package vt

import "log/slog"

// Grid owns the cell buffer and the cursor and implements the
// Renderer contract. It knows nothing about escape syntax; the parser
// drives it through the interface only. Pixel output is delegated to
// a Painter so the same grid runs against a font rasterizer, a host
// terminal, or nothing at all.
type Grid struct {
	st *State

	width, height int
	cells         []Cell

	csrX, csrY int
	fg, bg     uint8

	cursorOn bool
	flipped  bool

	painter Painter
}

func NewGrid(st *State, painter Painter) *Grid {
	if painter == nil {
		painter = NopPainter{}
	}
	return &Grid{
		st:       st,
		width:    st.Width,
		height:   st.Height,
		cells:    make([]Cell, st.Width*st.Height),
		fg:       DEFAULT_FG,
		bg:       DEFAULT_BG,
		cursorOn: true,
		painter:  painter,
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Cell returns the stored cell, or a zero cell for out of range
// coordinates.
func (g *Grid) Cell(x, y int) Cell {
	if !g.validPoint(x, y) {
		return Cell{}
	}
	return g.cells[y*g.width+x]
}

func (g *Grid) validPoint(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) setCell(x, y int, c Cell) {
	if !g.validPoint(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
	g.paint(x, y, false)
}

func (g *Grid) paint(x, y int, invert bool) {
	if !g.validPoint(x, y) {
		return
	}
	glyph, fg, bg, flags := g.cells[y*g.width+x].Resolve(invert)
	if err := g.painter.DrawGlyph(x, y, glyph, fg, bg, flags); err != nil {
		slog.Debug("painter skipped glyph", "x", x, "y", y, "glyph", glyph, "err", err)
	}
}

// RedrawCell repaints a cell as stored; RedrawCellInverted paints it
// with foreground and background swapped. The pointer overlay uses
// the pair to move its indicator without disturbing cell contents.
func (g *Grid) RedrawCell(x, y int)         { g.paint(x, y, false) }
func (g *Grid) RedrawCellInverted(x, y int) { g.paint(x, y, true) }

func (g *Grid) redrawAll() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.paint(x, y, false)
		}
	}
}

// Write places one pass-through byte at the cursor and advances it.
// Newline fills the rest of the line with spaces in the current
// colors, carriage return and backspace move the column (backspace
// clamps at column 0), tab advances to the next multiple of 8.
// Column overflow wraps, row overflow scrolls.
func (g *Grid) Write(c byte) {
	g.paint(g.csrX, g.csrY, false) // never leave a stale inverted cursor cell
	switch c {
	case CTRL_LF:
		for x := g.csrX; x < g.width; x++ {
			g.setCell(x, g.csrY, Cell{' ', g.fg, g.bg, g.st.Flags})
		}
		g.csrX = 0
		g.csrY++
	case CTRL_CR:
		g.csrX = 0
	case CTRL_BS:
		if g.csrX > 0 {
			g.csrX--
			g.setCell(g.csrX, g.csrY, Cell{' ', g.fg, g.bg, g.st.Flags})
		}
	case CTRL_TAB:
		g.csrX = (g.csrX + 8) &^ 7
	default:
		g.setCell(g.csrX, g.csrY, Cell{c, g.fg, g.bg, g.st.Flags})
		g.csrX++
	}
	if g.csrX >= g.width {
		g.csrX = 0
		g.csrY++
	}
	if g.csrY >= g.height {
		g.scroll()
		g.csrY = g.height - 1
	}
	g.DrawCursor()
}

// scroll shifts every row up by one, discarding the top row. The
// exposed bottom row is blanked in the current colors, not the
// defaults.
func (g *Grid) scroll() {
	copy(g.cells, g.cells[g.width:])
	bottom := g.cells[(g.height-1)*g.width:]
	for i := range bottom {
		bottom[i] = Cell{' ', g.fg, g.bg, 0}
	}
	g.redrawAll()
}

func (g *Grid) SetRendition(fg, bg uint8) {
	g.fg, g.bg = fg, bg
}

func (g *Grid) SetCursor(x, y int) {
	g.paint(g.csrX, g.csrY, false)
	g.csrX = clamp(x, 0, g.width-1)
	g.csrY = clamp(y, 0, g.height-1)
}

func (g *Grid) CursorX() int { return g.csrX }
func (g *Grid) CursorY() int { return g.csrY }

// SetCell places a glyph in the current colors without moving the
// cursor or touching style flags.
func (g *Grid) SetCell(x, y int, glyph byte) {
	g.setCell(x, y, Cell{glyph, g.fg, g.bg, 0})
}

func (g *Grid) ClearScreen() {
	g.csrX, g.csrY = 0, 0
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
	g.redrawAll()
}

// SetCursorVisible toggles the inverted-cell cursor indicator.
func (g *Grid) SetCursorVisible(on bool) {
	if !on {
		g.paint(g.csrX, g.csrY, false)
		g.flipped = false
	}
	g.cursorOn = on
	if on {
		g.DrawCursor()
	}
}

// DrawCursor forces the indicator to its solid "on" phase. Writes
// call this so a blink never leaves a stale inverted cell behind the
// new glyph.
func (g *Grid) DrawCursor() {
	if !g.cursorOn {
		return
	}
	g.flipped = false
	g.paint(g.csrX, g.csrY, true)
}

// FlipCursor toggles the blink phase. The session tick drives it.
func (g *Grid) FlipCursor() {
	if !g.cursorOn {
		return
	}
	g.flipped = !g.flipped
	g.paint(g.csrX, g.csrY, !g.flipped)
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

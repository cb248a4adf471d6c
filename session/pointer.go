package session

import (
	"encoding/binary"
	"log/slog"
	"math/bits"

	"github.com/cellterm/cellterm/vt"
)

const (
	pointerMagic = 0xFEED1234
	packetLen    = 7

	// Sub-cell units per pixel of pointer resolution.
	pointerScale = 6
)

// Pointer tracks a relative-motion device and overlays its position
// on the grid by inverting the cell under it. Position is kept in
// sub-cell units so slow motion accumulates instead of vanishing.
type Pointer struct {
	grid         *vt.Grid
	cellW, cellH int

	x, y    int
	pending []byte
}

func NewPointer(grid *vt.Grid, cellW, cellH int) *Pointer {
	p := &Pointer{
		grid:  grid,
		cellW: cellW,
		cellH: cellH,
	}
	p.x = grid.Width() * cellW * pointerScale / 2
	p.y = grid.Height() * cellH * pointerScale / 2
	return p
}

// Feed consumes raw device bytes. Packets are 7 bytes: a little
// endian magic word, two signed deltas and a button mask. A magic
// mismatch discards exactly one byte so the stream resynchronizes on
// the next word boundary.
func (p *Pointer) Feed(data []byte) {
	p.pending = append(p.pending, data...)
	for len(p.pending) >= packetLen {
		if binary.LittleEndian.Uint32(p.pending[:4]) != pointerMagic {
			p.pending = p.pending[1:]
			continue
		}
		dx := int(int8(p.pending[4]))
		dy := int(int8(p.pending[5]))
		buttons := p.pending[6]
		p.pending = p.pending[packetLen:]
		p.move(dx, dy, buttons)
	}
}

// move applies one packet. Deltas are scaled up by their own bit
// length so fast swipes cover more ground, then clamped to the
// sub-cell bounds of the grid.
func (p *Pointer) move(dx, dy int, buttons byte) {
	oldCol, oldRow := p.Cell()

	p.x += dx << uint(bits.Len(uint(abs(dx))))
	p.y -= dy << uint(bits.Len(uint(abs(dy))))
	p.x = clamp(p.x, 0, p.grid.Width()*p.cellW*pointerScale-1)
	p.y = clamp(p.y, 0, p.grid.Height()*p.cellH*pointerScale-1)

	col, row := p.Cell()
	if col != oldCol || row != oldRow {
		p.grid.RedrawCell(oldCol, oldRow)
		p.grid.RedrawCellInverted(col, row)
	}
	if buttons != 0 {
		slog.Debug("pointer buttons", "mask", buttons, "col", col, "row", row)
	}
}

// Cell reports which grid cell the pointer currently covers.
func (p *Pointer) Cell() (col, row int) {
	col = p.x / (p.cellW * pointerScale)
	row = p.y / (p.cellH * pointerScale)
	return col, row
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
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

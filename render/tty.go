package render

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/cellterm/cellterm/vt"
)

// TTY paints cells onto a host terminal via cursor-addressed escape
// output. Cell colors map straight onto the 256-color SGR space.
type TTY struct {
	w   *bufio.Writer
	out *termenv.Output
}

func NewTTY(w io.Writer) *TTY {
	bw := bufio.NewWriter(w)
	return &TTY{
		w:   bw,
		out: termenv.NewOutput(bw, termenv.WithProfile(termenv.ANSI256)),
	}
}

func (t *TTY) DrawGlyph(col, row int, glyph byte, fg, bg uint8, flags vt.Flags) error {
	r := rune(glyph)
	if glyph < 32 || glyph == 127 {
		r = ' '
	}
	// A host font may render some glyphs double width, which would
	// smear into the neighbor cell.
	if runewidth.RuneWidth(r) > 1 {
		r = ' '
	}

	s := t.out.String(string(r)).
		Foreground(termenv.ANSI256Color(fg)).
		Background(termenv.ANSI256Color(bg))
	if flags.Has(vt.FLAG_BOLD) {
		s = s.Bold()
	}
	if flags.Has(vt.FLAG_ITALIC) {
		s = s.Italic()
	}
	if flags.Has(vt.FLAG_UNDERLINE) || flags.Has(vt.FLAG_DOUBLE_UL) {
		s = s.Underline()
	}
	if flags.Has(vt.FLAG_CROSS) {
		s = s.CrossOut()
	}

	t.out.MoveCursor(row+1, col+1)
	if _, err := t.w.WriteString(s.String()); err != nil {
		return err
	}
	return t.w.Flush()
}

// Clear wipes the host terminal and homes its cursor.
func (t *TTY) Clear() error {
	t.out.ClearScreen()
	return t.w.Flush()
}

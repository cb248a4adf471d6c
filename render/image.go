package render

import (
	"errors"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/cellterm/cellterm/vt"
)

var errNoGlyph = errors.New("glyph not in face")

// Image rasterizes cells into an in-memory RGBA frame using a
// FaceSet. Cell geometry is derived from the regular face.
type Image struct {
	faces  *FaceSet
	frame  *image.RGBA
	cellW  int
	cellH  int
	ascent int
}

func NewImage(faces *FaceSet, cols, rows int) *Image {
	cellW, cellH, ascent := 8, 13, 11
	if adv, ok := faces.Regular.GlyphAdvance('M'); ok {
		cellW = adv.Ceil()
	}
	if m := faces.Regular.Metrics(); m.Height > 0 {
		cellH = m.Height.Ceil()
		ascent = m.Ascent.Ceil()
	}
	return &Image{
		faces:  faces,
		frame:  image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH)),
		cellW:  cellW,
		cellH:  cellH,
		ascent: ascent,
	}
}

// Frame exposes the backing image for display or encoding.
func (im *Image) Frame() *image.RGBA { return im.frame }

// CellSize reports the pixel box of one cell.
func (im *Image) CellSize() (w, h int) { return im.cellW, im.cellH }

// DrawGlyph paints one cell: background box, glyph, then any rules
// the flags call for. Glyphs the face lacks report errNoGlyph with
// the background already painted.
func (im *Image) DrawGlyph(col, row int, glyph byte, fg, bg uint8, flags vt.Flags) error {
	w := im.cellW
	if flags.Has(vt.FLAG_WIDE) {
		w *= 2
	}
	x0, y0 := col*im.cellW, row*im.cellH
	box := image.Rect(x0, y0, x0+w, y0+im.cellH)
	draw.Draw(im.frame, box, image.NewUniform(Palette[bg]), image.Point{}, draw.Src)

	if glyph >= 32 && glyph != 127 {
		face := im.faces.face(flags)
		if _, ok := face.GlyphAdvance(rune(glyph)); !ok {
			return errNoGlyph
		}
		d := font.Drawer{
			Dst:  im.frame,
			Src:  image.NewUniform(Palette[fg]),
			Face: face,
			Dot:  fixed.P(x0, y0+im.ascent),
		}
		d.DrawString(string(rune(glyph)))
	}

	if flags.Has(vt.FLAG_UNDERLINE) || flags.Has(vt.FLAG_DOUBLE_UL) {
		im.hline(x0, y0+im.ascent+2, w, fg)
	}
	if flags.Has(vt.FLAG_DOUBLE_UL) {
		im.hline(x0, y0+im.ascent+4, w, fg)
	}
	if flags.Has(vt.FLAG_OVERLINE) {
		im.hline(x0, y0+1, w, fg)
	}
	if flags.Has(vt.FLAG_CROSS) {
		im.hline(x0, y0+im.ascent-5, w, fg)
	}
	return nil
}

func (im *Image) hline(x, y, w int, fg uint8) {
	if y < 0 || y >= im.frame.Rect.Max.Y {
		return
	}
	c := Palette[fg]
	for i := 0; i < w; i++ {
		im.frame.SetRGBA(x+i, y, c)
	}
}

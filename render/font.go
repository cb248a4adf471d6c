package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/cellterm/cellterm/vt"
)

// FaceSet holds the faces an Image painter selects between based on
// cell flags. Any nil face falls back to Regular.
type FaceSet struct {
	Regular    font.Face
	Bold       font.Face
	Italic     font.Face
	BoldItalic font.Face
	Alt        font.Face
}

// BitmapFaces returns a FaceSet backed by the built-in 7x13 bitmap
// face. Every style renders with the same face; the painter's color
// handling still distinguishes bold.
func BitmapFaces() *FaceSet {
	return &FaceSet{Regular: basicfont.Face7x13}
}

// LoadFace parses an OpenType font file and prepares it at the given
// pixel size.
func LoadFace(path string, size float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font %q: %w", path, err)
	}
	f, err := opentype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing font %q: %w", path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("sizing font %q: %w", path, err)
	}
	return face, nil
}

func (fs *FaceSet) face(flags vt.Flags) font.Face {
	var f font.Face
	switch {
	case flags.Has(vt.FLAG_ALT_FONT):
		f = fs.Alt
	case flags.Has(vt.FLAG_BOLD) && flags.Has(vt.FLAG_ITALIC):
		f = fs.BoldItalic
	case flags.Has(vt.FLAG_BOLD):
		f = fs.Bold
	case flags.Has(vt.FLAG_ITALIC):
		f = fs.Italic
	}
	if f == nil {
		f = fs.Regular
	}
	return f
}

package vt

// Flags is the per-cell style bitset. Cells store these verbatim, so
// the values are part of the grid's stored representation.
type Flags uint8

const (
	FLAG_BOLD      Flags = 1 << 0
	FLAG_UNDERLINE Flags = 1 << 1
	FLAG_ITALIC    Flags = 1 << 2
	FLAG_ALT_FONT  Flags = 1 << 3 // render with the alternate font face
	FLAG_DOUBLE_UL Flags = 1 << 4
	FLAG_OVERLINE  Flags = 1 << 5
	FLAG_WIDE      Flags = 1 << 6 // cell occupies two columns visually
	FLAG_CROSS     Flags = 1 << 7 // strikethrough
)

func (f Flags) Has(b Flags) bool {
	return f&b != 0
}

func (f *Flags) Set(b Flags) {
	*f |= b
}

func (f *Flags) Clear(b Flags) {
	*f &^= b
}

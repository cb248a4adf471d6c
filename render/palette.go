// Package render provides painters that turn grid cells into pixels
// or host-terminal escape output.
package render

import "image/color"

// Palette maps the 256 color indices used by grid cells to RGBA. The
// first 16 entries are the Tango scheme; the rest are the standard
// 6x6x6 cube and the grayscale ramp, filled in at init.
var Palette [256]color.RGBA

var tango = [16]color.RGBA{
	{0x2e, 0x34, 0x36, 0xff},
	{0xcc, 0x00, 0x00, 0xff},
	{0x3e, 0x9a, 0x06, 0xff},
	{0xc4, 0xa0, 0x00, 0xff},
	{0x34, 0x65, 0xa4, 0xff},
	{0x75, 0x50, 0x7b, 0xff},
	{0x06, 0x98, 0x9a, 0xff},
	{0xee, 0xee, 0xec, 0xff},
	{0x55, 0x57, 0x53, 0xff},
	{0xef, 0x29, 0x29, 0xff},
	{0x8a, 0xe2, 0x34, 0xff},
	{0xfc, 0xe9, 0x4f, 0xff},
	{0x72, 0x9f, 0xcf, 0xff},
	{0xad, 0x7f, 0xa8, 0xff},
	{0x34, 0xe2, 0xe2, 0xff},
	{0xff, 0xff, 0xff, 0xff},
}

func cubeLevel(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(55 + 40*n)
}

func init() {
	copy(Palette[:16], tango[:])
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				Palette[16+36*r+6*g+b] = color.RGBA{
					cubeLevel(r), cubeLevel(g), cubeLevel(b), 0xff,
				}
			}
		}
	}
	for j := 0; j < 24; j++ {
		v := uint8(8 + 10*j)
		Palette[232+j] = color.RGBA{v, v, v, 0xff}
	}
}

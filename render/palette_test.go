package render

import (
	"image/color"
	"testing"
)

func TestPalette(t *testing.T) {
	cases := []struct {
		idx  int
		want color.RGBA
	}{
		{0, color.RGBA{0x2e, 0x34, 0x36, 0xff}},
		{1, color.RGBA{0xcc, 0x00, 0x00, 0xff}},
		{7, color.RGBA{0xee, 0xee, 0xec, 0xff}},
		{15, color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{16, color.RGBA{0x00, 0x00, 0x00, 0xff}},  // cube origin
		{21, color.RGBA{0x00, 0x00, 0xff, 0xff}},  // pure cube blue
		{196, color.RGBA{0xff, 0x00, 0x00, 0xff}}, // pure cube red
		{231, color.RGBA{0xff, 0xff, 0xff, 0xff}}, // cube white
		{232, color.RGBA{0x08, 0x08, 0x08, 0xff}}, // darkest gray
		{255, color.RGBA{0xee, 0xee, 0xee, 0xff}}, // lightest gray
	}

	for i, c := range cases {
		if got := Palette[c.idx]; got != c.want {
			t.Errorf("%d: Got %v for index %d, wanted %v", i, got, c.idx, c.want)
		}
	}
}

func TestCubeLevels(t *testing.T) {
	want := []uint8{0, 95, 135, 175, 215, 255}
	for n, w := range want {
		if got := cubeLevel(n); got != w {
			t.Errorf("Got level %d for step %d, wanted %d", got, n, w)
		}
	}
}

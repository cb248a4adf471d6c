package vt

import (
	"strings"
	"testing"
)

// recorder is a test double for the Renderer contract. It stores the
// cursor like a real backend and logs every call.
type recorder struct {
	x, y       int
	fg, bg     uint8
	writes     []byte
	cells      int
	clears     int
	renditions int
}

func (r *recorder) Write(c byte) {
	r.writes = append(r.writes, c)
}

func (r *recorder) SetRendition(fg, bg uint8) {
	r.fg, r.bg = fg, bg
	r.renditions++
}

func (r *recorder) SetCursor(x, y int) {
	r.x, r.y = x, y
}

func (r *recorder) CursorX() int { return r.x }
func (r *recorder) CursorY() int { return r.y }

func (r *recorder) SetCell(x, y int, glyph byte) {
	r.cells++
}

func (r *recorder) ClearScreen() {
	r.clears++
	r.x, r.y = 0, 0
}

func newTestParser() (*Parser, *State, *recorder) {
	st := NewState(DEF_COLS, DEF_ROWS)
	r := &recorder{}
	return NewParser(st, r), st, r
}

func TestPassThrough(t *testing.T) {
	p, st, r := newTestParser()

	p.PutString("hello")
	if got, want := string(r.writes), "hello"; got != want {
		t.Errorf("Got writes %q, wanted %q", got, want)
	}
	if st.escape != escGround {
		t.Errorf("Got escape state %d, wanted ground", st.escape)
	}
}

func TestEscapeAbort(t *testing.T) {
	p, st, r := newTestParser()

	// ESC not followed by [ is not a sequence; both bytes must
	// reach the renderer.
	p.Put(ESC)
	if len(r.writes) != 0 {
		t.Errorf("Got %d writes while buffering, wanted 0", len(r.writes))
	}
	p.Put('x')
	if got, want := string(r.writes), "\x1bx"; got != want {
		t.Errorf("Got writes %q, wanted %q", got, want)
	}
	if st.escape != escGround || len(st.buf) != 0 {
		t.Errorf("Got state (%d, buflen %d), wanted clean ground", st.escape, len(st.buf))
	}
}

func TestDispatchReturnsToGround(t *testing.T) {
	cases := []string{
		"\x1b[H",
		"\x1b[2J",
		"\x1b[31;44m",
		"\x1b[5;10H",
		"\x1b[Q",        // unrecognized command letter
		"\x1b[12;34;Zz", // junk parameters
	}

	for i, c := range cases {
		p, st, _ := newTestParser()
		p.PutString(c)
		if st.escape != escGround {
			t.Errorf("%d: Got escape state %d after %q, wanted ground", i, st.escape, c)
		}
		if len(st.buf) != 0 {
			t.Errorf("%d: Got %d buffered bytes after %q, wanted 0", i, len(st.buf), c)
		}
	}
}

func TestBufferOverflow(t *testing.T) {
	p, st, r := newTestParser()

	p.PutString("\x1b[" + strings.Repeat("1;", ESC_BUF_MAX))
	if st.escape != escGround {
		t.Errorf("Got escape state %d after overflow, wanted ground", st.escape)
	}

	// Once aborted, subsequent bytes pass straight through.
	before := len(r.writes)
	p.Put('A')
	if len(r.writes) != before+1 || r.writes[len(r.writes)-1] != 'A' {
		t.Errorf("Got writes %q, wanted trailing 'A' passed through", r.writes)
	}
}

func TestCursorCommands(t *testing.T) {
	cases := []struct {
		seq              string
		startX, startY   int
		wantX, wantY     int
	}{
		// CUU - cursor up
		{"\x1b[A", 0, 5, 0, 4},
		{"\x1b[3A", 0, 5, 0, 2},
		{"\x1b[10A", 0, 5, 0, 0},
		{"\x1b[A", 0, 0, 0, 0},
		// CUD - cursor down
		{"\x1b[B", 0, 5, 0, 6},
		{"\x1b[4B", 0, 5, 0, 9},
		{"\x1b[100B", 0, 5, 0, 23},
		// CUF - cursor forward
		{"\x1b[C", 5, 0, 6, 0},
		{"\x1b[10C", 5, 0, 15, 0},
		{"\x1b[200C", 5, 0, 79, 0},
		// CUB - cursor back
		{"\x1b[D", 5, 0, 4, 0},
		{"\x1b[2D", 5, 0, 3, 0},
		{"\x1b[9D", 5, 0, 0, 0},
		// CUP - cursor position, row;col 1-based
		{"\x1b[H", 10, 10, 0, 0},
		{"\x1b[5H", 10, 10, 0, 0}, // fewer than 2 args homes
		{"\x1b[5;10H", 0, 0, 9, 4},
		{"\x1b[1000;1000H", 0, 0, 79, 23},
		{"\x1b[0;0H", 10, 10, 0, 0},
		{"\x1b[5;10f", 0, 0, 9, 4}, // HVP is CUP
		// VPA - line position absolute
		{"\x1b[d", 5, 10, 5, 0},
		{"\x1b[7d", 5, 10, 5, 6},
		{"\x1b[500d", 5, 10, 5, 23},
	}

	for i, c := range cases {
		st := NewState(DEF_COLS, DEF_ROWS)
		g := NewGrid(st, nil)
		p := NewParser(st, g)
		g.SetCursor(c.startX, c.startY)

		p.PutString(c.seq)
		if g.CursorX() != c.wantX || g.CursorY() != c.wantY {
			t.Errorf("%d: %q: Got (%d, %d), wanted (%d, %d)", i, c.seq, g.CursorX(), g.CursorY(), c.wantX, c.wantY)
		}
	}
}

func TestSaveRestoreCursor(t *testing.T) {
	st := NewState(DEF_COLS, DEF_ROWS)
	g := NewGrid(st, nil)
	p := NewParser(st, g)

	cases := []struct{ x, y int }{
		{0, 0},
		{10, 5},
		{79, 23},
	}

	for i, c := range cases {
		g.SetCursor(c.x, c.y)
		p.PutString("\x1b[s\x1b[u")
		if g.CursorX() != c.x || g.CursorY() != c.y {
			t.Errorf("%d: Got (%d, %d) after s/u round trip, wanted (%d, %d)", i, g.CursorX(), g.CursorY(), c.x, c.y)
		}

		// Restore must come back after the cursor moves away.
		p.PutString("\x1b[s")
		g.SetCursor(1, 1)
		p.PutString("\x1b[u")
		if g.CursorX() != c.x || g.CursorY() != c.y {
			t.Errorf("%d: Got (%d, %d) after move and restore, wanted (%d, %d)", i, g.CursorX(), g.CursorY(), c.x, c.y)
		}
	}
}

func TestSGR(t *testing.T) {
	cases := []struct {
		seq       string
		wantFG    uint8
		wantBG    uint8
		wantFlags Flags
	}{
		{"\x1b[m", DEFAULT_FG, DEFAULT_BG, 0},
		{"\x1b[0m", DEFAULT_FG, DEFAULT_BG, 0},
		{"\x1b[31m", 1, DEFAULT_BG, 0},
		{"\x1b[31;42m", 1, 2, 0},
		{"\x1b[39m", DEFAULT_FG, DEFAULT_BG, 0},
		{"\x1b[49m", DEFAULT_FG, DEFAULT_BG, 0},
		{"\x1b[91m", 9, DEFAULT_BG, 0},
		{"\x1b[104m", DEFAULT_FG, 12, 0},
		{"\x1b[1m", DEFAULT_FG, DEFAULT_BG, FLAG_BOLD},
		{"\x1b[3m", DEFAULT_FG, DEFAULT_BG, FLAG_ITALIC},
		{"\x1b[4m", DEFAULT_FG, DEFAULT_BG, FLAG_UNDERLINE},
		{"\x1b[9m", DEFAULT_FG, DEFAULT_BG, FLAG_CROSS},
		{"\x1b[1;3;4;9m", DEFAULT_FG, DEFAULT_BG, FLAG_BOLD | FLAG_ITALIC | FLAG_UNDERLINE | FLAG_CROSS},
		{"\x1b[31;44m\x1b[7m", 4, 1, 0}, // invert swaps the pair
		{"\x1b[38;5;123m", 123, DEFAULT_BG, 0},
		{"\x1b[48;5;200m", DEFAULT_FG, 200, 0},
		{"\x1b[38;5;123;48;5;200m", 123, 200, 0},
		{"\x1b[31m\x1b[5m", 1, DEFAULT_BG, 0},  // leading 5 ends processing
		{"\x1b[38;5m", 8, DEFAULT_BG, 0},       // truncated extension: 38 fell in range
		{"\x1b[1m\x1b[0m", DEFAULT_FG, DEFAULT_BG, 0},
		{"\x1b[31;42;1m\x1b[0m", DEFAULT_FG, DEFAULT_BG, 0},
	}

	for i, c := range cases {
		p, st, _ := newTestParser()
		p.PutString(c.seq)
		if st.FG != c.wantFG || st.BG != c.wantBG || st.Flags != c.wantFlags {
			t.Errorf("%d: %q: Got (fg %d, bg %d, flags %08b), wanted (fg %d, bg %d, flags %08b)",
				i, c.seq, st.FG, st.BG, st.Flags, c.wantFG, c.wantBG, c.wantFlags)
		}
	}
}

func TestBoldBrightensRendition(t *testing.T) {
	cases := []struct {
		seq            string
		wantFG, wantBG uint8
	}{
		{"\x1b[31m", 1, DEFAULT_BG},
		{"\x1b[1;31m", 9, DEFAULT_BG},  // bold maps base to bright
		{"\x1b[1;37m", 15, DEFAULT_BG},
		{"\x1b[1;91m", 9, DEFAULT_BG},  // already bright, unchanged
		{"\x1b[1;38;5;123m", 123, DEFAULT_BG}, // >= 9, not remapped
		{"\x1b[44m", DEFAULT_FG, 4},    // background never remapped
		{"\x1b[1;44m", 15, 4},          // default fg 7 brightens to 15
	}

	for i, c := range cases {
		p, _, r := newTestParser()
		p.PutString(c.seq)
		if r.fg != c.wantFG || r.bg != c.wantBG {
			t.Errorf("%d: %q: Got rendition (%d, %d), wanted (%d, %d)", i, c.seq, r.fg, r.bg, c.wantFG, c.wantBG)
		}
	}
}

func TestRenditionAppliedBeforeWrite(t *testing.T) {
	p, _, r := newTestParser()

	p.PutString("\x1b[31m")
	if r.renditions < 2 { // one from NewParser, one from the dispatch
		t.Errorf("Got %d rendition calls, wanted at least 2", r.renditions)
	}
	if r.fg != 1 || r.bg != DEFAULT_BG {
		t.Errorf("Got rendition (%d, %d), wanted (1, %d)", r.fg, r.bg, DEFAULT_BG)
	}
	p.Put('A')
	if got, want := string(r.writes), "A"; got != want {
		t.Errorf("Got writes %q, wanted %q", got, want)
	}
}

func TestAltScreen(t *testing.T) {
	cases := []struct {
		seq        string
		wantClears int
	}{
		{"\x1b[?1049h", 1},
		{"\x1b[?1049l", 1},
		{"\x1b[?1048h", 0}, // unknown mode parameter, ignored
		{"\x1b[h", 0},
		{"\x1b[12h", 0},
	}

	for i, c := range cases {
		p, _, r := newTestParser()
		r.x, r.y = 7, 7
		p.PutString(c.seq)
		if r.clears != c.wantClears {
			t.Errorf("%d: %q: Got %d clears, wanted %d", i, c.seq, r.clears, c.wantClears)
		}
		if c.wantClears > 0 && (r.x != 0 || r.y != 0) {
			t.Errorf("%d: %q: Got cursor (%d, %d), wanted home", i, c.seq, r.x, r.y)
		}
	}
}

func TestVendorEcho(t *testing.T) {
	cases := []struct {
		seq  string
		want bool
	}{
		{"\x1b[1001z", false},
		{"\x1b[1002z", true},
		{"\x1b[1001z\x1b[1002z", true},
		{"\x1b[9999z", true}, // unknown opcode ignored
		{"\x1b[z", true},     // no argument ignored
	}

	for i, c := range cases {
		p, st, _ := newTestParser()
		p.PutString(c.seq)
		if st.LocalEcho != c.want {
			t.Errorf("%d: %q: Got local echo %t, wanted %t", i, c.seq, st.LocalEcho, c.want)
		}
	}
}

func TestEraseChars(t *testing.T) {
	cases := []struct {
		seq        string
		wantWrites string
	}{
		{"\x1b[X", " "},
		{"\x1b[3X", "   "},
		{"\x1b[0X", ""},
	}

	for i, c := range cases {
		p, _, r := newTestParser()
		p.PutString(c.seq)
		if got := string(r.writes); got != c.wantWrites {
			t.Errorf("%d: %q: Got writes %q, wanted %q", i, c.seq, got, c.wantWrites)
		}
	}
}

func TestEraseLine(t *testing.T) {
	fill := func(g *Grid) {
		for x := 0; x < g.Width(); x++ {
			g.SetCell(x, 3, 'x')
		}
	}

	cases := []struct {
		seq   string
		blank func(x int) bool // which columns of row 3 should be spaces
	}{
		{"\x1b[K", func(x int) bool { return x >= 10 }},
		{"\x1b[0K", func(x int) bool { return x >= 10 }},
		{"\x1b[1K", func(x int) bool { return x < 10 }},
		{"\x1b[2K", func(x int) bool { return true }},
		{"\x1b[5K", func(x int) bool { return false }}, // unknown mode is a no-op
	}

	for i, c := range cases {
		st := NewState(DEF_COLS, DEF_ROWS)
		g := NewGrid(st, nil)
		p := NewParser(st, g)
		fill(g)
		g.SetCursor(10, 3)

		p.PutString(c.seq)
		for x := 0; x < g.Width(); x++ {
			want := byte('x')
			if c.blank(x) {
				want = ' '
			}
			if got := g.Cell(x, 3).Glyph; got != want {
				t.Errorf("%d: %q: col %d: Got %q, wanted %q", i, c.seq, x, got, want)
			}
		}
	}
}

func TestEraseDisplay(t *testing.T) {
	st := NewState(DEF_COLS, DEF_ROWS)
	g := NewGrid(st, nil)
	p := NewParser(st, g)

	p.PutString("filling some cells")
	g.SetCursor(40, 12)
	p.PutString("\x1b[2J")

	if g.CursorX() != 0 || g.CursorY() != 0 {
		t.Errorf("Got cursor (%d, %d), wanted home", g.CursorX(), g.CursorY())
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if c := g.Cell(x, y); c.Glyph != 0 {
				t.Fatalf("Got glyph %q at (%d, %d), wanted cleared grid", c.Glyph, x, y)
			}
		}
	}
}

func TestColoredWriteScenario(t *testing.T) {
	// ESC [ 31 m A: the cell stores fg index 1 and the backend saw
	// the rendition change before the write.
	st := NewState(DEF_COLS, DEF_ROWS)
	g := NewGrid(st, nil)
	p := NewParser(st, g)

	p.PutString("\x1b[31mA")
	c := g.Cell(0, 0)
	if c.Glyph != 'A' || c.FG != 1 {
		t.Errorf("Got cell %+v, wanted glyph 'A' with fg 1", c)
	}
}

package vt

import (
	"log/slog"
	"strconv"
	"strings"
)

// Parser is the escape-sequence state machine. It consumes one byte
// at a time: printable bytes outside a sequence pass straight through
// to the renderer, ESC [ starts buffering, and a final byte in
// 'A'..'z' dispatches the buffered command. Malformed input never
// errors out; unknown commands and junk parameters are swallowed so
// adversarial output from a child process cannot desynchronize the
// machine.
type Parser struct {
	st *State
	r  Renderer
}

func NewParser(st *State, r Renderer) *Parser {
	p := &Parser{st: st, r: r}
	p.applyRendition()
	return p
}

// Put consumes one input byte.
func (p *Parser) Put(c byte) {
	switch p.st.escape {
	case escGround:
		if c == ESC {
			p.st.buf = p.st.buf[:0]
			p.push(c)
			p.st.escape = escSawEscape
			return
		}
		p.r.Write(c)
	case escSawEscape:
		if c == BRACKET {
			p.push(c)
			p.st.escape = escInCommand
			return
		}
		// Not actually an escape sequence. The consumer still
		// needs to see every byte we held back.
		for _, b := range p.st.buf {
			p.r.Write(b)
		}
		p.r.Write(c)
		p.abort()
	case escInCommand:
		if c >= CSI_FINAL_LOW && c <= CSI_FINAL_HIGH {
			p.dispatch(c)
			p.abort()
			return
		}
		p.push(c)
	}
}

// PutString feeds every byte of s through the state machine.
func (p *Parser) PutString(s string) {
	for i := 0; i < len(s); i++ {
		p.Put(s[i])
	}
}

// push appends to the pending buffer. A sequence that outgrows the
// buffer is aborted outright and its bytes discarded; the alternative
// of flushing up to 100 bytes of half-parsed garbage into the grid
// helps nobody.
func (p *Parser) push(c byte) {
	if len(p.st.buf) >= ESC_BUF_MAX {
		slog.Debug("escape sequence too long, aborting", "len", len(p.st.buf))
		p.abort()
		return
	}
	p.st.buf = append(p.st.buf, c)
}

func (p *Parser) abort() {
	p.st.buf = p.st.buf[:0]
	p.st.escape = escGround
}

// dispatch runs one complete sequence. The buffer holds "ESC [" plus
// the parameter bytes; last is the final command byte.
func (p *Parser) dispatch(last byte) {
	var body []byte
	if len(p.st.buf) >= 2 {
		body = p.st.buf[2:]
	}
	args := splitArgs(body)

	switch last {
	case CSI_EXT:
		if len(args) > 0 {
			switch argInt(args, 0, 0) {
			case EXT_ECHO_OFF:
				p.st.LocalEcho = false
			case EXT_ECHO_ON:
				p.st.LocalEcho = true
			}
		}
	case CSI_SCP:
		p.st.SavedX, p.st.SavedY = p.r.CursorX(), p.r.CursorY()
	case CSI_RCP:
		p.r.SetCursor(p.st.SavedX, p.st.SavedY)
	case CSI_SGR:
		p.rendition(args)
	case CSI_MODE_SET, CSI_MODE_RESET:
		if len(args) > 0 && args[0] == ALT_SCREEN {
			p.r.ClearScreen()
			p.r.SetCursor(0, 0)
		}
	case CSI_CUU:
		p.r.SetCursor(p.r.CursorX(), p.r.CursorY()-argInt(args, 0, 1))
	case CSI_CUD:
		p.r.SetCursor(p.r.CursorX(), p.r.CursorY()+argInt(args, 0, 1))
	case CSI_CUF:
		p.r.SetCursor(p.r.CursorX()+argInt(args, 0, 1), p.r.CursorY())
	case CSI_CUB:
		p.r.SetCursor(p.r.CursorX()-argInt(args, 0, 1), p.r.CursorY())
	case CSI_CUP, CSI_HVP:
		if len(args) < 2 {
			p.r.SetCursor(0, 0)
			break
		}
		col := clamp(argInt(args, 1, 1), 1, p.st.Width)
		row := clamp(argInt(args, 0, 1), 1, p.st.Height)
		p.r.SetCursor(col-1, row-1)
	case CSI_ED:
		p.r.ClearScreen()
	case CSI_EL:
		p.eraseLine(argInt(args, 0, 0))
	case CSI_ECH:
		for i, n := 0, argInt(args, 0, 1); i < n; i++ {
			p.r.Write(' ')
		}
	case CSI_VPA:
		if len(args) < 1 {
			p.r.SetCursor(p.r.CursorX(), 0)
		} else {
			p.r.SetCursor(p.r.CursorX(), argInt(args, 0, 1)-1)
		}
	default:
		slog.Debug("ignoring unrecognized command", "last", string(rune(last)), "args", args)
	}

	// Every dispatch refreshes the backend's rendition, not just
	// SGR.
	p.applyRendition()
}

func (p *Parser) eraseLine(mode int) {
	var from, to int
	switch mode {
	case 0: // cursor to end of line
		from, to = p.r.CursorX(), p.st.Width
	case 1: // start of line to cursor, exclusive
		from, to = 0, p.r.CursorX()
	case 2: // whole line
		from, to = 0, p.st.Width
	default:
		return
	}
	y := p.r.CursorY()
	for x := from; x < to; x++ {
		p.r.SetCell(x, y, ' ')
	}
}

// rendition applies one SGR command, walking the arguments left to
// right. The ladder order, the invert swap and the one-token
// lookahead for 256-color selection are part of the protocol
// contract; see the dispatch tests. An extension marker 5 in the
// first position ends parameter processing for the command.
func (p *Parser) rendition(args []string) {
	if len(args) == 0 {
		args = []string{"0"}
	}
	st := p.st
	for i := 0; i < len(args); i++ {
		arg := argInt(args, i, 0)
		switch {
		case arg >= SGR_BG_BRIGHT && arg < SGR_BG_BRIGHT+10:
			st.BG = uint8(8 + arg - SGR_BG_BRIGHT)
		case arg >= SGR_FG_BRIGHT && arg < SGR_FG_BRIGHT+10:
			st.FG = uint8(8 + arg - SGR_FG_BRIGHT)
		case arg >= SGR_BG_BASE && arg < SGR_BG_DEFAULT:
			st.BG = uint8(arg - SGR_BG_BASE)
		case arg == SGR_BG_DEFAULT:
			st.BG = DEFAULT_BG
		case arg >= SGR_FG_BASE && arg < SGR_FG_DEFAULT:
			st.FG = uint8(arg - SGR_FG_BASE)
		case arg == SGR_FG_DEFAULT:
			st.FG = DEFAULT_FG
		case arg == SGR_CROSS:
			st.Flags.Set(FLAG_CROSS)
		case arg == SGR_INVERT:
			st.FG, st.BG = st.BG, st.FG
		case arg == SGR_EXT_COLOR:
			if i == 0 {
				return
			}
			if i+1 < len(args) {
				switch argInt(args, i-1, 0) {
				case SGR_SET_BG:
					st.BG = uint8(argInt(args, i+1, 0))
				case SGR_SET_FG:
					st.FG = uint8(argInt(args, i+1, 0))
				}
				i++ // the color index token is consumed
			}
		case arg == SGR_UNDERLINE:
			st.Flags.Set(FLAG_UNDERLINE)
		case arg == SGR_ITALIC:
			st.Flags.Set(FLAG_ITALIC)
		case arg == SGR_BOLD:
			st.Flags.Set(FLAG_BOLD)
		case arg == SGR_RESET:
			st.FG, st.BG, st.Flags = DEFAULT_FG, DEFAULT_BG, 0
		default:
			slog.Debug("unimplemented SGR parameter", "param", arg)
		}
	}
}

// applyRendition pushes the effective color pair to the backend. Bold
// brightens the base foreground colors; the background is never
// remapped.
func (p *Parser) applyRendition() {
	fg := p.st.FG
	if p.st.Flags.Has(FLAG_BOLD) && fg < 9 {
		fg = fg%8 + 8
	}
	p.r.SetRendition(fg, p.st.BG)
}

// splitArgs tokenizes the parameter bytes between "ESC [" and the
// final letter. Empty tokens are dropped, so "5;;10" and ";5" parse
// as two and one arguments respectively.
func splitArgs(b []byte) []string {
	var args []string
	for _, tok := range strings.Split(string(b), ";") {
		if tok != "" {
			args = append(args, tok)
		}
	}
	return args
}

// argInt parses args[i] as a best-effort integer: def when the token
// is absent, 0 when it is present but non-numeric.
func argInt(args []string, i, def int) int {
	if i < 0 || i >= len(args) {
		return def
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0
	}
	return n
}

package vt

// LineBuffer is the local line-editing bridge between raw keystrokes
// and the child process. Printable keystrokes accumulate until a
// newline (or the buffer cap) completes the line, which the caller
// flushes to the child's stdin. Byte 0x03 fires the interrupt hook
// instead of being buffered. When local echo is enabled on the shared
// State, accepted keystrokes are replayed through echo so they show
// up in the grid.
type LineBuffer struct {
	st        *State
	echo      func(byte)
	interrupt func()
	buf       []byte
}

func NewLineBuffer(st *State, echo func(byte), interrupt func()) *LineBuffer {
	return &LineBuffer{
		st:        st,
		echo:      echo,
		interrupt: interrupt,
		buf:       make([]byte, 0, INPUT_BUF_MAX),
	}
}

// Put consumes one keystroke. The returned slice is non-nil when the
// line is complete and must be written to the child; it is only valid
// until the next call.
func (l *LineBuffer) Put(c byte) []byte {
	switch {
	case c == CTRL_BS:
		if len(l.buf) > 0 {
			l.buf = l.buf[:len(l.buf)-1]
			l.localEcho(c)
		}
		return nil
	case c == CTRL_ETX:
		if l.interrupt != nil {
			l.interrupt()
		}
		return nil
	case c < CTRL_LF || (c > CTRL_LF && c < 32) || c > 126:
		// Everything non-printable other than newline is
		// dropped.
		return nil
	}

	l.buf = append(l.buf, c)
	l.localEcho(c)

	if c == CTRL_LF || len(l.buf) == INPUT_BUF_MAX {
		line := l.buf
		l.buf = l.buf[:0]
		return line
	}
	return nil
}

// Len reports how many bytes are waiting for the line to complete.
func (l *LineBuffer) Len() int {
	return len(l.buf)
}

func (l *LineBuffer) localEcho(c byte) {
	if l.st.LocalEcho && l.echo != nil {
		l.echo(c)
	}
}

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"

	"github.com/cellterm/cellterm/vt"
)

const (
	tickInterval = 50 * time.Millisecond

	// Ticks of inactivity before the cursor starts blinking.
	blinkTicks = 8

	readChunk = 1024
)

// Config carries everything a Session needs. Zero values get
// reasonable defaults.
type Config struct {
	Shell      string
	Rows, Cols int

	Painter  vt.Painter
	Keyboard io.Reader

	// Optional relative-motion device stream.
	PointerDev io.Reader

	// Cell pixel geometry for the pointer overlay.
	CellW, CellH int
}

// Session wires the keyboard, a child shell on a pty, and an optional
// pointer device into one grid. A single goroutine owns the parser
// and grid; reader goroutines only move byte chunks over channels.
type Session struct {
	cfg   Config
	st    *vt.State
	grid  *vt.Grid
	p     *vt.Parser
	lb    *vt.LineBuffer
	ptr   *Pointer
	ptmx  *os.File
	child *exec.Cmd
}

func New(cfg Config) (*Session, error) {
	if cfg.Shell == "" {
		cfg.Shell = "/bin/sh"
	}
	if cfg.Rows == 0 {
		cfg.Rows = vt.DEF_ROWS
	}
	if cfg.Cols == 0 {
		cfg.Cols = vt.DEF_COLS
	}
	if cfg.Keyboard == nil {
		cfg.Keyboard = os.Stdin
	}
	if cfg.CellW == 0 {
		cfg.CellW = 8
	}
	if cfg.CellH == 0 {
		cfg.CellH = 13
	}

	s := &Session{cfg: cfg}
	s.st = vt.NewState(cfg.Cols, cfg.Rows)
	s.grid = vt.NewGrid(s.st, cfg.Painter)
	s.p = vt.NewParser(s.st, s.grid)
	s.lb = vt.NewLineBuffer(s.st, s.p.Put, s.interrupt)
	if cfg.PointerDev != nil {
		s.ptr = NewPointer(s.grid, cfg.CellW, cfg.CellH)
	}

	s.child = exec.Command(cfg.Shell)
	ptmx, err := pty.StartWithSize(s.child, &pty.Winsize{
		Rows: uint16(cfg.Rows),
		Cols: uint16(cfg.Cols),
	})
	if err != nil {
		return nil, fmt.Errorf("starting %q: %w", cfg.Shell, err)
	}
	s.ptmx = ptmx
	return s, nil
}

// Grid exposes the cell buffer, mainly so a frame can be captured
// after Run returns.
func (s *Session) Grid() *vt.Grid { return s.grid }

func (s *Session) interrupt() {
	if s.child.Process != nil {
		if err := s.child.Process.Signal(syscall.SIGINT); err != nil {
			slog.Info("couldn't signal child", "err", err)
		}
	}
}

// Run drives the session until the context is cancelled, the child
// exits, or the keyboard closes.
func (s *Session) Run(ctx context.Context) error {
	defer s.ptmx.Close()

	kbd := readInto(ctx, s.cfg.Keyboard)
	out := readInto(ctx, s.ptmx)
	var ptrDev <-chan []byte
	if s.cfg.PointerDev != nil {
		ptrDev = readInto(ctx, s.cfg.PointerDev)
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	idle := 0
	active := func() {
		idle = 0
		s.grid.DrawCursor()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk, ok := <-kbd:
			if !ok {
				return nil
			}
			for _, c := range chunk {
				if line := s.lb.Put(c); line != nil {
					if _, err := s.ptmx.Write(line); err != nil {
						return fmt.Errorf("writing to child: %w", err)
					}
				}
			}
			active()
		case chunk, ok := <-out:
			if !ok {
				// The child hung up its side of the pty.
				return s.child.Wait()
			}
			for _, c := range chunk {
				s.p.Put(c)
			}
			active()
		case chunk, ok := <-ptrDev:
			if !ok {
				ptrDev = nil
				continue
			}
			s.ptr.Feed(chunk)
		case <-ticker.C:
			idle++
			if idle >= blinkTicks {
				s.grid.FlipCursor()
			}
		}
	}
}

// readInto pumps a reader into a channel in 1k chunks so the owner
// goroutine never blocks on a device.
func readInto(ctx context.Context, r io.Reader) <-chan []byte {
	ch := make(chan []byte)
	go func() {
		defer close(ch)
		for {
			buf := make([]byte, readChunk)
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case ch <- buf[:n]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Debug("reader stopped", "err", err)
				}
				return
			}
		}
	}()
	return ch
}

// Binary terminal runs a shell inside a character-cell emulator. The
// default backend repaints cells onto the host tty; -render image
// rasterizes into an off-screen frame instead, which -frame can dump
// as a PNG on exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/cellterm/cellterm/logging"
	"github.com/cellterm/cellterm/render"
	"github.com/cellterm/cellterm/session"
	"github.com/cellterm/cellterm/vt"
)

var (
	cols  = flag.Int("cols", vt.DEF_COLS, "Grid width in cells.")
	rows  = flag.Int("rows", vt.DEF_ROWS, "Grid height in cells.")
	shell = flag.String("shell", "/bin/sh", "Child process to run.")

	logfile = flag.String("logfile", "", "Log destination; empty discards logs.")
	debug   = flag.Bool("debug", false, "Log at debug level.")

	mode = flag.String("render", "tty", "Render backend: tty or image.")

	outlineFont    = flag.Bool("outline_font", false, "Use outline fonts from the -font* flags instead of the built-in bitmap face.")
	fontRegular    = flag.String("font", "", "Regular outline font file.")
	fontBold       = flag.String("font_bold", "", "Bold outline font file.")
	fontItalic     = flag.String("font_italic", "", "Italic outline font file.")
	fontBoldItalic = flag.String("font_bold_italic", "", "Bold italic outline font file.")
	fontSize       = flag.Float64("font_size", 13, "Outline font pixel size.")
	frame          = flag.String("frame", "", "Write the final frame to this PNG file (image mode).")

	pointerDev = flag.String("pointer_device", "", "Relative-motion device to read pointer packets from.")
)

func loadFaces() (*render.FaceSet, error) {
	if !*outlineFont {
		return render.BitmapFaces(), nil
	}
	if *fontRegular == "" {
		return nil, fmt.Errorf("-outline_font requires -font")
	}
	fs := &render.FaceSet{}
	var err error
	if fs.Regular, err = render.LoadFace(*fontRegular, *fontSize); err != nil {
		return nil, err
	}
	if *fontBold != "" {
		if fs.Bold, err = render.LoadFace(*fontBold, *fontSize); err != nil {
			return nil, err
		}
	}
	if *fontItalic != "" {
		if fs.Italic, err = render.LoadFace(*fontItalic, *fontSize); err != nil {
			return nil, err
		}
	}
	if *fontBoldItalic != "" {
		if fs.BoldItalic, err = render.LoadFace(*fontBoldItalic, *fontSize); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func writeFrame(im *render.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, im.Frame())
}

func run() error {
	cfg := session.Config{
		Shell:    *shell,
		Rows:     *rows,
		Cols:     *cols,
		Keyboard: os.Stdin,
	}

	var img *render.Image
	switch *mode {
	case "tty":
		t := render.NewTTY(os.Stdout)
		if err := t.Clear(); err != nil {
			return err
		}
		cfg.Painter = t

		old, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer term.Restore(int(os.Stdin.Fd()), old)
	case "image":
		faces, err := loadFaces()
		if err != nil {
			return err
		}
		img = render.NewImage(faces, *cols, *rows)
		cfg.Painter = img
		cfg.CellW, cfg.CellH = img.CellSize()
	default:
		return fmt.Errorf("unknown render backend %q", *mode)
	}

	if *pointerDev != "" {
		f, err := os.Open(*pointerDev)
		if err != nil {
			return fmt.Errorf("opening pointer device: %w", err)
		}
		defer f.Close()
		cfg.PointerDev = f
	}

	s, err := session.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = s.Run(ctx)
	if err == context.Canceled || err == io.EOF {
		err = nil
	}

	if img != nil && *frame != "" {
		if ferr := writeFrame(img, *frame); ferr != nil {
			slog.Info("couldn't write frame", "path", *frame, "err", ferr)
			if err == nil {
				err = ferr
			}
		}
	}
	return err
}

func main() {
	flag.Parse()

	if err := logging.Setup(*logfile, *debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

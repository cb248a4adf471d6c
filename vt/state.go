package vt

type escState uint8

const (
	escGround escState = iota
	escSawEscape
	escInCommand
)

// State is the terminal-wide mutable aggregate: current rendition,
// saved cursor, escape machinery and the local echo toggle. It is
// created once by the owning controller and handed to the Parser,
// Grid and LineBuffer. Nothing here synchronizes access; the
// controller is the single owner of all of it (see the session
// package).
type State struct {
	FG, BG uint8 // current rendition color indices
	Flags  Flags // current rendition style flags

	SavedX, SavedY int // cursor snapshot for CSI s / CSI u

	LocalEcho bool

	Width, Height int // grid dimensions, fixed for the process life

	escape escState
	buf    []byte // in-flight escape sequence
}

func NewState(width, height int) *State {
	return &State{
		FG:        DEFAULT_FG,
		BG:        DEFAULT_BG,
		Width:     width,
		Height:    height,
		LocalEcho: true,
		buf:       make([]byte, 0, ESC_BUF_MAX),
	}
}

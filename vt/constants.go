package vt

const (
	// Like it's 1975 baby!
	DEF_ROWS = 24
	DEF_COLS = 80
)

const (
	// Longest escape sequence we will buffer before giving up on
	// it and returning to ground.
	ESC_BUF_MAX = 100
	// Keystrokes accumulate up to this many bytes before the line
	// is flushed to the child regardless of a newline.
	INPUT_BUF_MAX = 1024
)

// Control bytes the grid and input bridge act on.
const (
	CTRL_ETX = 0x03 // ^C interrupt
	CTRL_BS  = 0x08 // ^H Backspace
	CTRL_TAB = 0x09 // ^I Tab \t
	CTRL_LF  = 0x0a // ^J Line feed \n
	CTRL_CR  = 0x0d // ^M Carriage return \r
	ESC      = 0x1b
	BRACKET  = '[' // CSI introducer following ESC
)

// CSI final bytes. Any byte in CSI_FINAL_LOW..CSI_FINAL_HIGH
// terminates a buffered sequence and triggers a dispatch.
const (
	CSI_FINAL_LOW  = 'A'
	CSI_FINAL_HIGH = 'z'
)

// CSI commands we act on. Everything else dispatches to a silent
// no-op.
const (
	CSI_CUU        = 'A' // cursor up
	CSI_CUD        = 'B' // cursor down
	CSI_CUF        = 'C' // cursor forward
	CSI_CUB        = 'D' // cursor back
	CSI_CUP        = 'H' // cursor position
	CSI_ED         = 'J' // erase in display
	CSI_EL         = 'K' // erase in line
	CSI_ECH        = 'X' // erase characters
	CSI_VPA        = 'd' // line position absolute
	CSI_HVP        = 'f' // horizontal vertical position, same as CUP
	CSI_MODE_SET   = 'h' // set mode; only ?1049 is recognized
	CSI_MODE_RESET = 'l' // reset mode; only ?1049 is recognized
	CSI_SGR        = 'm' // select graphic rendition
	CSI_SCP        = 's' // save cursor position
	CSI_RCP        = 'u' // restore cursor position
	CSI_EXT        = 'z' // private extension (local echo control)
)

// The only mode parameter CSI h/l acts on: emulate the xterm
// alternate screen by clearing and homing.
const ALT_SCREEN = "?1049"

// CSI z opcodes. A cooperating shell uses these to suppress our local
// echo while it does its own line editing.
const (
	EXT_ECHO_OFF = 1001
	EXT_ECHO_ON  = 1002
)

// SGR parameter codes.
const (
	SGR_RESET      = 0
	SGR_BOLD       = 1
	SGR_ITALIC     = 3
	SGR_UNDERLINE  = 4
	SGR_EXT_COLOR  = 5 // with a 38/48 prefix: 256 color selection
	SGR_INVERT     = 7
	SGR_CROSS      = 9
	SGR_FG_BASE    = 30
	SGR_SET_FG     = 38
	SGR_FG_DEFAULT = 39
	SGR_BG_BASE    = 40
	SGR_SET_BG     = 48
	SGR_BG_DEFAULT = 49
	SGR_FG_BRIGHT  = 90
	SGR_BG_BRIGHT  = 100
)

// Default color indices into the 256 color palette.
const (
	DEFAULT_FG = 0x07 // light grey
	DEFAULT_BG = 0x10 // pure black (cube origin, not ANSI black)
)

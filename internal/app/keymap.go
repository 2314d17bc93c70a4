package app

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeySpace     = " "
	KeyTab       = "tab"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyScrubBack = "h"
	KeyScrubFwd  = "l"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyNextLine  = "j"
	KeyPrevLine  = "k"
	KeyGroup     = "g"
	KeySinger    = "s"
	KeyResetLine = "r"
	KeyEditLabel = "e"
	KeyCopyLRC   = "y"
)

package input

// Key identifies a keyboard key by its legacy browser key code. Letters and
// digits use the code of their upper case character.
type Key int

const (
	KeyBackspace Key = 8
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyShift     Key = 16
	KeyCtrl      Key = 17
	KeyAlt       Key = 18
	KeyEscape    Key = 27
	KeySpace     Key = 32
	KeyLeft      Key = 37
	KeyUp        Key = 38
	KeyRight     Key = 39
	KeyDown      Key = 40
	KeyDelete    Key = 46
	KeyCmdL      Key = 91
	KeyCmdR      Key = 93

	KeyWindows = KeyCmdL
)

// KeyOf returns the key for a letter or digit.
func KeyOf(r rune) (Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return Key(r - 'a' + 'A'), true
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return Key(r), true
	}
	return 0, false
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

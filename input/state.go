// Package input tracks cursor and keyboard state and dispatches mouse and
// keyboard events to scripts and GUI elements of the active scene.
package input

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Source is the raw input the Dispatcher polls each frame. Cursor
// coordinates are viewport pixels with y growing downwards.
type Source interface {
	CursorPosition() mgl64.Vec2
	IsMouseButtonPressed(button MouseButton) bool
	AppendPressedKeys(keys []Key) []Key
	AppendInputChars(chars []rune) []rune
}

// State is the input as of the last poll.
type State struct {
	Cursor      mgl64.Vec2
	CursorWorld mgl64.Vec2
	MouseDown   bool
	Typed       []rune

	keys    map[Key]bool
	pressed []Key
	polled  bool
}

func newState() *State {
	return &State{keys: make(map[Key]bool)}
}

// KeyDown reports whether key is held.
func (s *State) KeyDown(key Key) bool {
	return s.keys[key]
}

// JustPressed reports whether key went down during the last poll.
func (s *State) JustPressed(key Key) bool {
	return slices.Contains(s.pressed, key)
}

// HeldKeys returns the held keys in ascending order.
func (s *State) HeldKeys() []Key {
	held := make([]Key, 0, len(s.keys))
	for k, down := range s.keys {
		if down {
			held = append(held, k)
		}
	}
	slices.Sort(held)
	return held
}

// updateKeys replaces the held set and records keys that went down.
func (s *State) updateKeys(held []Key) {
	s.pressed = s.pressed[:0]
	next := make(map[Key]bool, len(held))
	for _, k := range held {
		next[k] = true
		if !s.keys[k] {
			s.pressed = append(s.pressed, k)
		}
	}
	s.keys = next
}

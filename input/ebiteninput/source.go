// Package ebiteninput reads mouse and keyboard state from ebiten.
package ebiteninput

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/tessel/input"
)

var letters = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
	ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
	ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
	ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
	ebiten.KeyY, ebiten.KeyZ,
}

var digits = []ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var keyMap = func() map[ebiten.Key]input.Key {
	m := map[ebiten.Key]input.Key{
		ebiten.KeyBackspace:    input.KeyBackspace,
		ebiten.KeyTab:          input.KeyTab,
		ebiten.KeyEnter:        input.KeyEnter,
		ebiten.KeyNumpadEnter:  input.KeyEnter,
		ebiten.KeyShiftLeft:    input.KeyShift,
		ebiten.KeyShiftRight:   input.KeyShift,
		ebiten.KeyControlLeft:  input.KeyCtrl,
		ebiten.KeyControlRight: input.KeyCtrl,
		ebiten.KeyAltLeft:      input.KeyAlt,
		ebiten.KeyAltRight:     input.KeyAlt,
		ebiten.KeyEscape:       input.KeyEscape,
		ebiten.KeySpace:        input.KeySpace,
		ebiten.KeyArrowLeft:    input.KeyLeft,
		ebiten.KeyArrowUp:      input.KeyUp,
		ebiten.KeyArrowRight:   input.KeyRight,
		ebiten.KeyArrowDown:    input.KeyDown,
		ebiten.KeyDelete:       input.KeyDelete,
		ebiten.KeyMetaLeft:     input.KeyCmdL,
		ebiten.KeyMetaRight:    input.KeyCmdR,
	}
	for i, k := range letters {
		m[k] = input.Key('A' + i)
	}
	for i, k := range digits {
		m[k] = input.Key('0' + i)
	}
	return m
}()

// Source implements input.Source using ebiten's polling API. Call it from
// the game's Update.
type Source struct {
	pressed []ebiten.Key
}

func New() *Source {
	return &Source{}
}

func (s *Source) CursorPosition() mgl64.Vec2 {
	x, y := ebiten.CursorPosition()
	return mgl64.Vec2{float64(x), float64(y)}
}

func (s *Source) IsMouseButtonPressed(button input.MouseButton) bool {
	switch button {
	case input.MouseLeft:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	case input.MouseRight:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	case input.MouseMiddle:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	}
	return false
}

// AppendPressedKeys appends the held keys that have an input.Key equivalent.
// Left and right modifier keys both map to the same key and are reported once.
func (s *Source) AppendPressedKeys(keys []input.Key) []input.Key {
	s.pressed = inpututil.AppendPressedKeys(s.pressed[:0])
	start := len(keys)
	for _, k := range s.pressed {
		mapped, ok := Map(k)
		if !ok {
			continue
		}
		duplicate := false
		for _, seen := range keys[start:] {
			if seen == mapped {
				duplicate = true
				break
			}
		}
		if !duplicate {
			keys = append(keys, mapped)
		}
	}
	return keys
}

func (s *Source) AppendInputChars(chars []rune) []rune {
	return ebiten.AppendInputChars(chars)
}

// Map converts an ebiten key.
func Map(k ebiten.Key) (input.Key, bool) {
	mapped, ok := keyMap[k]
	return mapped, ok
}

var _ input.Source = (*Source)(nil)

package controller

import "github.com/gdamore/tcell/v2"

// Defines the lowercase letter keystrokes used for shortcuts.
const (
	KeyA tcell.Key = iota + 97
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// initKeys registers display names for the letter keys so screen headers
// can render them alongside the built-in key names.
func initKeys() {
	for key := KeyA; key <= KeyZ; key++ {
		tcell.KeyNames[key] = string(rune(key))
	}
}

// AsKey converts rune to keyboard key.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	key := tcell.Key(evt.Rune())
	if evt.Modifiers() == tcell.ModAlt {
		key = tcell.Key(int16(evt.Rune()) * int16(evt.Modifiers()))
	}

	return key
}

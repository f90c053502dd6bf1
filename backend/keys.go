// Package backend runs the app inside an ebiten window: it feeds keyboard
// state to the input mapper and draws the render queue.
package backend

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/platform/input"
)

// keyAliases are the names config files use that ebiten spells differently.
var keyAliases = map[string]ebiten.Key{
	"LEFT":      ebiten.KeyArrowLeft,
	"RIGHT":     ebiten.KeyArrowRight,
	"UP":        ebiten.KeyArrowUp,
	"DOWN":      ebiten.KeyArrowDown,
	"RETURN":    ebiten.KeyEnter,
	"ESC":       ebiten.KeyEscape,
	"LSHIFT":    ebiten.KeyShiftLeft,
	"RSHIFT":    ebiten.KeyShiftRight,
	"LCTRL":     ebiten.KeyControlLeft,
	"RCTRL":     ebiten.KeyControlRight,
	"LALT":      ebiten.KeyAltLeft,
	"RALT":      ebiten.KeyAltRight,
	"SPACEBAR":  ebiten.KeySpace,
	"BACKSPACE": ebiten.KeyBackspace,
}

// KeyNames builds the name table for every key ebiten knows. Names are the
// upper-cased ebiten names ("A", "SPACE", "ARROWLEFT", "DIGIT1") plus the
// aliases above.
func KeyNames() input.KeyNames {
	names := make(input.KeyNames, int(ebiten.KeyMax)+len(keyAliases))
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := strings.ToUpper(k.String())
		if name == "" {
			continue
		}
		if _, dup := names[name]; !dup {
			names[name] = input.Key(k)
		}
	}
	for name, k := range keyAliases {
		names[name] = input.Key(k)
	}
	return names
}

// Keyboard reads live key state from ebiten.
type Keyboard struct {
	// Captured reports whether another consumer, such as the debug overlay,
	// owns the keyboard this frame. All keys read as released while it does.
	Captured func() bool
}

func (kb Keyboard) IsKeyPressed(k input.Key) bool {
	if kb.Captured != nil && kb.Captured() {
		return false
	}
	return ebiten.IsKeyPressed(ebiten.Key(k))
}

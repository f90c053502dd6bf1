package input

import "strings"

// Key is a device key identifier. Its values are owned by the backend that
// resolves key names; the mapper only compares them.
type Key int

// KeyResolver turns a configured key name into a device key.
type KeyResolver interface {
	ResolveKey(name string) (Key, bool)
}

// KeyboardState is a snapshot of the raw keyboard for one frame.
type KeyboardState interface {
	IsKeyPressed(k Key) bool
}

// KeyNames is a KeyResolver backed by a fixed table. Lookups ignore case.
type KeyNames map[string]Key

func (n KeyNames) ResolveKey(name string) (Key, bool) {
	k, ok := n[strings.ToUpper(strings.TrimSpace(name))]
	return k, ok
}

// PressedKeys is a KeyboardState that reports exactly the keys it holds.
// It drives the mapper in headless runs and tests.
type PressedKeys map[Key]bool

func (p PressedKeys) IsKeyPressed(k Key) bool { return p[k] }

func (p PressedKeys) Press(keys ...Key) {
	for _, k := range keys {
		p[k] = true
	}
}

func (p PressedKeys) Release(keys ...Key) {
	for _, k := range keys {
		delete(p, k)
	}
}

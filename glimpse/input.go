package glimpse

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

//go:generate go tool stringer -type=Key -trimprefix=Key

// Key is a named logical key. Keys that produce text are reported
// as KeyCharacter, the text is found in KeyEvent.Text.
type Key uint16

const (
	KeyUnidentified Key = iota
	KeyCharacter
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeySpace
	KeyInsert
	KeyDelete
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyShift
	KeyControl
	KeyAlt
	KeySuper
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

type KeyState uint8

const (
	Pressed KeyState = iota
	Released
)

func (s KeyState) String() string {
	if s == Released {
		return "Released"
	}

	return "Pressed"
}

type KeyEvent struct {
	// the logical key, KeyCharacter if the key produces text
	Key Key

	// text for KeyCharacter, empty otherwise
	Text string

	State KeyState

	// true if the key is held down and the platform repeats it
	Repeat bool
}

// IsNamed reports whether this event is for the given named key.
func (ev KeyEvent) IsNamed(key Key) bool {
	return ev.Key == key && key != KeyCharacter
}

// IsCharacter reports whether this event is for a key producing the given text.
func (ev KeyEvent) IsCharacter(text string) bool {
	return ev.Key == KeyCharacter && ev.Text == text
}

func (ev KeyEvent) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("key", ev.Key.String()),
		slog.String("state", ev.State.String()),
	}

	if ev.Key == KeyCharacter {
		attrs = append(attrs, slog.String("text", ev.Text))
	}

	return slog.GroupValue(attrs...)
}

// Modifiers is a set of modifier keys that are currently held down.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

func (m Modifiers) Shift() bool   { return m&ModShift != 0 }
func (m Modifiers) Control() bool { return m&ModControl != 0 }
func (m Modifiers) Alt() bool     { return m&ModAlt != 0 }
func (m Modifiers) Super() bool   { return m&ModSuper != 0 }

func (m Modifiers) String() string {
	var names []string

	if m.Shift() {
		names = append(names, "Shift")
	}

	if m.Control() {
		names = append(names, "Control")
	}

	if m.Alt() {
		names = append(names, "Alt")
	}

	if m.Super() {
		names = append(names, "Super")
	}

	if len(names) == 0 {
		return "None"
	}

	return strings.Join(names, "+")
}

// KeysState tracks the physical keys that are currently held down,
// keyed by their platform specific scancode.
type KeysState struct {
	pressed map[int]KeyEvent
}

// press records the key as held down and reports whether it already was.
func (k *KeysState) press(scancode int, ev KeyEvent) (repeat bool) {
	if k.pressed == nil {
		k.pressed = map[int]KeyEvent{}
	}

	_, repeat = k.pressed[scancode]
	k.pressed[scancode] = ev

	return repeat
}

func (k *KeysState) release(scancode int) {
	delete(k.pressed, scancode)
}

// releaseAll forgets all held keys and returns release events for them,
// ordered by scancode.
func (k *KeysState) releaseAll() []KeyEvent {
	var released []KeyEvent

	for _, scancode := range slices.Sorted(maps.Keys(k.pressed)) {
		ev := k.pressed[scancode]
		ev.State = Released
		ev.Repeat = false

		released = append(released, ev)
	}

	clear(k.pressed)

	return released
}

func (k *KeysState) IsPressed(scancode int) bool {
	_, ok := k.pressed[scancode]
	return ok
}

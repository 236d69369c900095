package glimpse

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape:       KeyEscape,
	glfw.KeyEnter:        KeyEnter,
	glfw.KeyKPEnter:      KeyEnter,
	glfw.KeyTab:          KeyTab,
	glfw.KeyBackspace:    KeyBackspace,
	glfw.KeySpace:        KeySpace,
	glfw.KeyInsert:       KeyInsert,
	glfw.KeyDelete:       KeyDelete,
	glfw.KeyLeft:         KeyArrowLeft,
	glfw.KeyRight:        KeyArrowRight,
	glfw.KeyUp:           KeyArrowUp,
	glfw.KeyDown:         KeyArrowDown,
	glfw.KeyPageUp:       KeyPageUp,
	glfw.KeyPageDown:     KeyPageDown,
	glfw.KeyHome:         KeyHome,
	glfw.KeyEnd:          KeyEnd,
	glfw.KeyLeftShift:    KeyShift,
	glfw.KeyRightShift:   KeyShift,
	glfw.KeyLeftControl:  KeyControl,
	glfw.KeyRightControl: KeyControl,
	glfw.KeyLeftAlt:      KeyAlt,
	glfw.KeyRightAlt:     KeyAlt,
	glfw.KeyLeftSuper:    KeySuper,
	glfw.KeyRightSuper:   KeySuper,
	glfw.KeyF1:           KeyF1,
	glfw.KeyF2:           KeyF2,
	glfw.KeyF3:           KeyF3,
	glfw.KeyF4:           KeyF4,
	glfw.KeyF5:           KeyF5,
	glfw.KeyF6:           KeyF6,
	glfw.KeyF7:           KeyF7,
	glfw.KeyF8:           KeyF8,
	glfw.KeyF9:           KeyF9,
	glfw.KeyF10:          KeyF10,
	glfw.KeyF11:          KeyF11,
	glfw.KeyF12:          KeyF12,
}

var keyToModifier = map[Key]Modifiers{
	KeyShift:   ModShift,
	KeyControl: ModControl,
	KeyAlt:     ModAlt,
	KeySuper:   ModSuper,
}

// keyEventOf resolves the logical key using the current keyboard layout.
func keyEventOf(glfwKey glfw.Key, scancode int) (ev KeyEvent, ok bool) {
	if key, ok := glfwToKey[glfwKey]; ok {
		return KeyEvent{Key: key}, true
	}

	if text := glfw.GetKeyName(glfwKey, scancode); text != "" {
		return KeyEvent{Key: KeyCharacter, Text: text}, true
	}

	slog.Warn(
		"Unknown key code",
		slog.Int("key", int(glfwKey)),
		slog.Int("scancode", scancode),
	)

	return KeyEvent{}, false
}

func modifiersOf(mods glfw.ModifierKey) Modifiers {
	var result Modifiers

	if mods&glfw.ModShift != 0 {
		result |= ModShift
	}

	if mods&glfw.ModControl != 0 {
		result |= ModControl
	}

	if mods&glfw.ModAlt != 0 {
		result |= ModAlt
	}

	if mods&glfw.ModSuper != 0 {
		result |= ModSuper
	}

	return result
}

// modifiersAfter applies the key event to the modifier state. Some platforms
// report the state from before the modifier key itself was pressed.
func modifiersAfter(mods Modifiers, glfwKey glfw.Key, action glfw.Action) Modifiers {
	modifier, ok := keyToModifier[glfwToKey[glfwKey]]
	if !ok {
		return mods
	}

	if action == glfw.Release {
		return mods &^ modifier
	}

	return mods | modifier
}

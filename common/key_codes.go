package common

import "strings"

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW         = 87  // W key (ASCII)
	KeyA         = 65  // A key (ASCII)
	KeyS         = 83  // S key (ASCII)
	KeyD         = 68  // D key (ASCII)
	KeyQ         = 81  // Q key (ASCII)
	KeyE         = 69  // E key (ASCII)
	KeyR         = 82  // R key (ASCII)
	KeyF         = 70  // F key (ASCII)
	KeyZ         = 90  // Z key (ASCII)
	KeyX         = 88  // X key (ASCII)
	KeyC         = 67  // C key (ASCII)
	KeySpace     = 32  // Spacebar (ASCII)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyEsc       = 256 // Escape key (GLFW)
	KeyTab       = 258 // Tab key (GLFW)

	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// Modifier keys
const (
	KeyLeftShift    = 340 // Left Shift (GLFW)
	KeyLeftControl  = 341 // Left Control (GLFW)
	KeyLeftAlt      = 342 // Left Alt (GLFW)
	KeyRightShift   = 344 // Right Shift (GLFW)
	KeyRightControl = 345 // Right Control (GLFW)
	KeyRightAlt     = 346 // Right Alt (GLFW)
)

// Mouse button codes, matching GLFW's MouseButton values.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButton
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

var keyNames = map[string]uint32{
	"space":        KeySpace,
	"backspace":    KeyBackspace,
	"esc":          KeyEsc,
	"escape":       KeyEsc,
	"tab":          KeyTab,
	"right":        KeyRight,
	"left":         KeyLeft,
	"down":         KeyDown,
	"up":           KeyUp,
	"leftshift":    KeyLeftShift,
	"rightshift":   KeyRightShift,
	"leftcontrol":  KeyLeftControl,
	"rightcontrol": KeyRightControl,
	"leftalt":      KeyLeftAlt,
	"rightalt":     KeyRightAlt,
}

var mouseButtonNames = map[string]uint32{
	"left":   MouseButtonLeft,
	"right":  MouseButtonRight,
	"middle": MouseButtonMiddle,
}

// KeyByName resolves a key name as written in binding files to its key code.
// Single letters and digits map to their ASCII code; other names are matched case-insensitively
// against the named keys above (e.g. "LeftShift", "Space", "Up").
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is unknown
func KeyByName(name string) (uint32, bool) {
	if len(name) == 1 {
		c := strings.ToUpper(name)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return uint32(c), true
		}
	}
	code, ok := keyNames[strings.ToLower(name)]
	return code, ok
}

// MouseButtonByName resolves "left", "right" or "middle" (case-insensitive) to a mouse button code.
//
// Parameters:
//   - name: the button name
//
// Returns:
//   - uint32: the mouse button code
//   - bool: false if the name is unknown
func MouseButtonByName(name string) (uint32, bool) {
	code, ok := mouseButtonNames[strings.ToLower(name)]
	return code, ok
}

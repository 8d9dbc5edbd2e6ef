package types

import "fmt"

// Key is a frontend-independent input code. Values follow the raylib/GLFW
// key numbering so the raylib frontend can pass codes through unchanged;
// other frontends translate into this space.
type Key int32

const (
	KeyNull   Key = 0
	KeyA      Key = 65
	KeyD      Key = 68
	KeyQ      Key = 81
	KeyS      Key = 83
	KeyW      Key = 87
	KeyEscape Key = 256
	KeyRight  Key = 262
	KeyLeft   Key = 263
	KeyDown   Key = 264
	KeyUp     Key = 265
)

var keyNames = map[Key]string{
	KeyA:      "A",
	KeyD:      "D",
	KeyQ:      "Q",
	KeyS:      "S",
	KeyW:      "W",
	KeyEscape: "Escape",
	KeyRight:  "Right",
	KeyLeft:   "Left",
	KeyDown:   "Down",
	KeyUp:     "Up",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}

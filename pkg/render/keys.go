package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/leterax/go-reflection/pkg/input"
)

// captureToggleKey releases or recaptures the cursor.
const captureToggleKey = glfw.KeyC

// keyBindings maps physical keys to the input key set.
var keyBindings = map[glfw.Key]input.Key{
	glfw.KeyW:      input.KeyForward,
	glfw.KeyS:      input.KeyBackward,
	glfw.KeyA:      input.KeyLeft,
	glfw.KeyD:      input.KeyRight,
	glfw.KeyO:      input.KeyUp,
	glfw.KeyP:      input.KeyDown,
	glfw.KeyEscape: input.KeyQuit,
}

func translateAction(a glfw.Action) input.Action {
	switch a {
	case glfw.Press:
		return input.Press
	case glfw.Repeat:
		return input.Repeat
	default:
		return input.Release
	}
}

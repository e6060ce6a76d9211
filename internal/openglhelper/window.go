package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-reflection/internal/logger"
)

// Window handles GLFW window creation and the OpenGL 3.3 core context.
type Window struct {
	glfwWindow    *glfw.Window
	width         int
	height        int
	title         string
	mouseCaptured bool
}

// NewWindow creates a fixed-size window and makes its context current.
// It must be called from the main OS thread.
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Sugar.Infow("OpenGL context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"vsync", vsync)

	// The framebuffer can differ from the window size on HiDPI displays.
	fbWidth, fbHeight := glfwWindow.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	return &Window{
		glfwWindow: glfwWindow,
		width:      width,
		height:     height,
		title:      title,
	}, nil
}

// Clear clears the color and depth buffers.
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SwapBuffers swaps the front and back buffers
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose returns whether the window should close
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// SetShouldClose flags the window for closing at the end of the frame.
func (w *Window) SetShouldClose(v bool) {
	w.glfwWindow.SetShouldClose(v)
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}

// Time returns seconds since GLFW was initialized.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// AspectRatio returns width over height.
func (w *Window) AspectRatio() float32 {
	if w.height == 0 {
		return 1
	}
	return float32(w.width) / float32(w.height)
}

// Title returns the title the window was created with.
func (w *Window) Title() string {
	return w.title
}

// SetTitle sets the window title
func (w *Window) SetTitle(title string) {
	w.glfwWindow.SetTitle(title)
}

// CursorPos returns the current cursor position.
func (w *Window) CursorPos() (x, y float64) {
	return w.glfwWindow.GetCursorPos()
}

// SetMouseCaptured hides the cursor and locks it to the window, or releases it.
func (w *Window) SetMouseCaptured(captured bool) {
	w.mouseCaptured = captured

	if captured {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			w.glfwWindow.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	} else {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// IsMouseCaptured returns whether the mouse is currently captured
func (w *Window) IsMouseCaptured() bool {
	return w.mouseCaptured
}

// SetKeyCallback registers fn for key events.
func (w *Window) SetKeyCallback(fn func(key glfw.Key, action glfw.Action)) {
	w.glfwWindow.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		fn(key, action)
	})
}

// SetCursorPosCallback registers fn for cursor movement.
func (w *Window) SetCursorPosCallback(fn func(x, y float64)) {
	w.glfwWindow.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		fn(x, y)
	})
}

// SetScrollCallback registers fn for scroll wheel events.
func (w *Window) SetScrollCallback(fn func(xoff, yoff float64)) {
	w.glfwWindow.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		fn(xoff, yoff)
	})
}

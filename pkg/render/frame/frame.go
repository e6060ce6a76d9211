// Package frame holds the GL-free parts of the render loop: lifecycle state,
// frame timing and the skybox geometry and view transform.
package frame

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// State is the render loop lifecycle stage.
type State int

const (
	Init State = iota
	Running
	Terminating
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// CanTransition reports whether the loop may move from s to next.
// Init may fail straight to Terminating; Terminating is final.
func (s State) CanTransition(next State) bool {
	switch s {
	case Init:
		return next == Running || next == Terminating
	case Running:
		return next == Terminating
	default:
		return false
	}
}

// Clock derives per-frame delta time from a monotonic seconds counter and
// counts frames over one-second windows.
type Clock struct {
	last       float64
	started    bool
	windowFrom float64
	frames     int
	fps        float64
}

// Tick records a frame at now (seconds) and returns the time since the previous tick.
// The first tick returns zero so the first frame moves nothing.
func (c *Clock) Tick(now float64) float32 {
	if !c.started {
		c.started = true
		c.last = now
		c.windowFrom = now
		return 0
	}

	dt := now - c.last
	if dt < 0 {
		dt = 0
	}
	c.last = now

	c.frames++
	if elapsed := now - c.windowFrom; elapsed >= 1 {
		c.fps = float64(c.frames) / elapsed
		c.frames = 0
		c.windowFrom = now
	}
	return float32(dt)
}

// FPS returns the frame rate measured over the last completed window, or 0 before one completes.
func (c *Clock) FPS() float64 {
	return c.fps
}

// WindowTitle appends the measured frame rate to base.
func WindowTitle(base string, fps float64) string {
	return fmt.Sprintf("%s | %.0f FPS", base, fps)
}

// SkyboxView strips the translation from a view matrix so the skybox stays centered on the camera.
func SkyboxView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}

// SkyboxVertices are the eight corners of the unit cube around the origin.
var SkyboxVertices = []float32{
	-1, -1, -1,
	1, -1, -1,
	1, 1, -1,
	-1, 1, -1,
	-1, -1, 1,
	1, -1, 1,
	1, 1, 1,
	-1, 1, 1,
}

// SkyboxIndices triangulate the cube faces, two triangles per face.
var SkyboxIndices = []uint32{
	// -Z
	0, 2, 1, 2, 0, 3,
	// +Z
	4, 5, 6, 6, 7, 4,
	// -X
	0, 4, 7, 7, 3, 0,
	// +X
	1, 2, 6, 6, 5, 1,
	// -Y
	0, 1, 5, 5, 4, 0,
	// +Y
	3, 7, 6, 6, 2, 3,
}

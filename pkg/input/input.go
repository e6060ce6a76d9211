// Package input tracks keyboard and cursor state between event polling and the per-frame update.
package input

import "github.com/leterax/go-reflection/pkg/camera"

// Key is one of the keys the demo reacts to.
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyQuit

	keyCount
)

// Action is a key transition reported by the window system.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// movement maps held keys to camera directions, in the order they are applied each frame.
var movement = [...]struct {
	key Key
	dir camera.Direction
}{
	{KeyForward, camera.Forward},
	{KeyBackward, camera.Backward},
	{KeyLeft, camera.Left},
	{KeyRight, camera.Right},
	{KeyUp, camera.Up},
	{KeyDown, camera.Down},
}

// State is written by window callbacks during event polling and read by the frame update on the
// same thread. It is not safe for concurrent use.
type State struct {
	pressed [keyCount]bool

	lastX, lastY float64
	firstMove    bool

	// cursor offsets in arrival order and scroll total, not yet applied
	looks  [][2]float32
	scroll float32

	quit bool
}

// NewState returns a State whose first cursor event only seeds the last-known position.
func NewState(cursorX, cursorY float64) *State {
	return &State{
		lastX:     cursorX,
		lastY:     cursorY,
		firstMove: true,
	}
}

// HandleKey records a key transition. Repeat leaves the pressed state unchanged.
// Pressing KeyQuit requests termination.
func (s *State) HandleKey(k Key, a Action) {
	if k < 0 || k >= keyCount {
		return
	}
	switch a {
	case Press:
		s.pressed[k] = true
		if k == KeyQuit {
			s.quit = true
		}
	case Release:
		s.pressed[k] = false
	}
}

// Pressed reports whether k is currently held.
func (s *State) Pressed(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return s.pressed[k]
}

// QuitRequested reports whether KeyQuit has been pressed.
func (s *State) QuitRequested() bool {
	return s.quit
}

// HandleCursor queues the offset from the last known cursor position. Y is inverted so
// moving the cursor up yields a positive offset. The first event after NewState or
// ResetCursor only seeds the position.
func (s *State) HandleCursor(x, y float64) {
	if s.firstMove {
		s.lastX, s.lastY = x, y
		s.firstMove = false
		return
	}

	dx, dy := float32(x-s.lastX), float32(s.lastY-y)
	s.lastX, s.lastY = x, y
	if dx != 0 || dy != 0 {
		s.looks = append(s.looks, [2]float32{dx, dy})
	}
}

// ResetCursor makes the next cursor event seed the position again, e.g. after recapturing the cursor.
func (s *State) ResetCursor() {
	s.firstMove = true
}

// HandleScroll accumulates a vertical scroll offset.
func (s *State) HandleScroll(yoffset float64) {
	s.scroll += float32(yoffset)
}

// Cursor returns the last known cursor position.
func (s *State) Cursor() (x, y float64) {
	return s.lastX, s.lastY
}

// Camera is the subset of *camera.Camera driven by input.
type Camera interface {
	HandleKeyPress(dir camera.Direction, deltaTime float32)
	HandleMouseMove(xoffset, yoffset float32)
	HandleMouseScroll(yoffset float32)
}

// Apply feeds each pending cursor offset to cam in arrival order, so the pitch clamp sees
// every event, then the scroll total, then moves cam for every held movement key scaled
// by deltaTime. Pending offsets are cleared.
func (s *State) Apply(cam Camera, deltaTime float32) {
	for _, l := range s.looks {
		cam.HandleMouseMove(l[0], l[1])
	}
	s.looks = s.looks[:0]

	if s.scroll != 0 {
		cam.HandleMouseScroll(s.scroll)
		s.scroll = 0
	}
	for _, m := range movement {
		if s.pressed[m.key] {
			cam.HandleKeyPress(m.dir, deltaTime)
		}
	}
}

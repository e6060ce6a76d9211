// Package camera implements a free-look fly camera driven by keyboard and mouse deltas.
// It holds no graphics state and is safe to use without a GL context.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera defaults.
const (
	DefaultYaw         = -90.0 // Facing -Z
	DefaultPitch       = 0.0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0

	MinZoom  = 1.0
	MaxZoom  = 45.0
	MaxPitch = 89.0
	MinPitch = -89.0
)

// Direction is a movement axis relative to the camera basis.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Camera is a yaw/pitch camera. front, right and up are recomputed from the
// angles every time they change and stay orthonormal.
type Camera struct {
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	// Euler angles, degrees
	yaw   float32
	pitch float32

	zoom        float32
	speed       float32
	sensitivity float32
}

// Option configures a Camera at construction.
type Option func(*Camera)

// WithAngles sets the initial yaw and pitch in degrees. Pitch is clamped.
func WithAngles(yaw, pitch float32) Option {
	return func(c *Camera) {
		c.yaw = yaw
		c.pitch = clamp(pitch, MinPitch, MaxPitch)
	}
}

// WithSpeed sets the movement speed in world units per second.
func WithSpeed(speed float32) Option {
	return func(c *Camera) { c.speed = speed }
}

// WithSensitivity sets degrees of rotation per unit of cursor offset.
func WithSensitivity(sensitivity float32) Option {
	return func(c *Camera) { c.sensitivity = sensitivity }
}

// WithZoom sets the initial vertical field of view in degrees. It is clamped.
func WithZoom(zoom float32) Option {
	return func(c *Camera) { c.zoom = clamp(zoom, MinZoom, MaxZoom) }
}

// New creates a camera at position with Y-up and the package defaults, then applies opts.
func New(position mgl32.Vec3, opts ...Option) *Camera {
	c := &Camera{
		position:    position,
		worldUp:     mgl32.Vec3{0, 1, 0},
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		zoom:        DefaultZoom,
		speed:       DefaultSpeed,
		sensitivity: DefaultSensitivity,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.updateCameraVectors()
	return c
}

// updateCameraVectors recalculates the basis from the Euler angles.
func (c *Camera) updateCameraVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// HandleKeyPress moves the camera along its basis by speed × deltaTime.
// There are no bounds; the camera can fly anywhere.
func (c *Camera) HandleKeyPress(dir Direction, deltaTime float32) {
	velocity := c.speed * deltaTime

	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	case Up:
		c.position = c.position.Add(c.up.Mul(velocity))
	case Down:
		c.position = c.position.Sub(c.up.Mul(velocity))
	}
}

// HandleMouseMove turns the camera by cursor offsets. yoffset is positive when
// the cursor moves up the screen.
func (c *Camera) HandleMouseMove(xoffset, yoffset float32) {
	c.yaw += xoffset * c.sensitivity
	c.pitch = clamp(c.pitch+yoffset*c.sensitivity, MinPitch, MaxPitch)
	c.updateCameraVectors()
}

// HandleMouseScroll narrows the field of view on scroll up and widens it on scroll down.
func (c *Camera) HandleMouseScroll(yoffset float32) {
	c.zoom = clamp(c.zoom-yoffset, MinZoom, MaxZoom)
}

// ViewMatrix returns the look-at matrix from position towards position+front.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns a perspective projection using the current zoom as vertical FOV.
func (c *Camera) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, near, far)
}

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Orientation returns yaw and pitch in degrees.
func (c *Camera) Orientation() (yaw, pitch float32) { return c.yaw, c.pitch }

// Zoom returns the vertical field of view in degrees.
func (c *Camera) Zoom() float32 { return c.zoom }

// Speed returns the movement speed.
func (c *Camera) Speed() float32 { return c.speed }

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *Camera) Right() mgl32.Vec3 { return c.right }

// Up returns the unit up vector of the camera basis.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

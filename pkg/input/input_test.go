package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-reflection/pkg/camera"
)

type recordingCamera struct {
	moves   []camera.Direction
	dts     []float32
	looks   [][2]float32
	scrolls []float32
}

func (r *recordingCamera) HandleKeyPress(dir camera.Direction, dt float32) {
	r.moves = append(r.moves, dir)
	r.dts = append(r.dts, dt)
}

func (r *recordingCamera) HandleMouseMove(x, y float32) {
	r.looks = append(r.looks, [2]float32{x, y})
}

func (r *recordingCamera) HandleMouseScroll(y float32) {
	r.scrolls = append(r.scrolls, y)
}

func TestKeyTransitions(t *testing.T) {
	s := NewState(0, 0)

	s.HandleKey(KeyForward, Press)
	if !s.Pressed(KeyForward) {
		t.Fatal("forward should be pressed")
	}
	s.HandleKey(KeyForward, Repeat)
	if !s.Pressed(KeyForward) {
		t.Fatal("repeat should keep forward pressed")
	}
	s.HandleKey(KeyForward, Release)
	if s.Pressed(KeyForward) {
		t.Fatal("forward should be released")
	}
}

func TestOutOfRangeKeysIgnored(t *testing.T) {
	s := NewState(0, 0)
	s.HandleKey(Key(-1), Press)
	s.HandleKey(keyCount, Press)
	s.HandleKey(Key(1000), Press)

	if s.Pressed(Key(-1)) || s.Pressed(keyCount) || s.Pressed(Key(1000)) {
		t.Error("out-of-range keys must never report pressed")
	}
}

func TestQuitKey(t *testing.T) {
	s := NewState(0, 0)
	if s.QuitRequested() {
		t.Fatal("quit requested before any input")
	}
	s.HandleKey(KeyQuit, Release)
	if s.QuitRequested() {
		t.Fatal("release alone must not request quit")
	}
	s.HandleKey(KeyQuit, Press)
	if !s.QuitRequested() {
		t.Fatal("quit key press should request quit")
	}
}

func TestFirstCursorEventOnlySeeds(t *testing.T) {
	s := NewState(960, 540)
	cam := &recordingCamera{}

	s.HandleCursor(100, 100)
	s.Apply(cam, 0.016)
	if len(cam.looks) != 0 {
		t.Fatalf("first cursor event produced look %v", cam.looks)
	}

	s.HandleCursor(110, 90)
	s.Apply(cam, 0.016)
	if len(cam.looks) != 1 {
		t.Fatalf("expected 1 look, got %d", len(cam.looks))
	}
	if cam.looks[0] != [2]float32{10, 10} {
		t.Errorf("look = %v, want [10 10] (y inverted)", cam.looks[0])
	}

	if x, y := s.Cursor(); x != 110 || y != 90 {
		t.Errorf("Cursor() = (%v, %v), want (110, 90)", x, y)
	}
}

func TestResetCursor(t *testing.T) {
	s := NewState(0, 0)
	cam := &recordingCamera{}

	s.HandleCursor(0, 0)
	s.ResetCursor()
	s.HandleCursor(500, 500)
	s.Apply(cam, 0)
	if len(cam.looks) != 0 {
		t.Errorf("cursor jump after reset produced look %v", cam.looks)
	}
}

func TestCursorOffsetsQueueUntilApply(t *testing.T) {
	s := NewState(0, 0)
	cam := &recordingCamera{}

	s.HandleCursor(0, 0)
	s.HandleCursor(5, 0)
	s.HandleCursor(5, 0)
	s.HandleCursor(8, -2)
	s.Apply(cam, 0)
	s.Apply(cam, 0)

	want := [][2]float32{{5, 0}, {3, 2}}
	if len(cam.looks) != len(want) {
		t.Fatalf("looks = %v, want %v", cam.looks, want)
	}
	for i := range want {
		if cam.looks[i] != want[i] {
			t.Errorf("looks[%d] = %v, want %v", i, cam.looks[i], want[i])
		}
	}
}

func TestPitchClampAppliesPerCursorEvent(t *testing.T) {
	s := NewState(0, 0)
	cam := camera.New(mgl32.Vec3{0, 0, 3},
		camera.WithAngles(camera.DefaultYaw, camera.MaxPitch),
		camera.WithSensitivity(1))

	s.HandleCursor(0, 0)
	s.HandleCursor(0, -20) // up 20, clamped at the limit
	s.HandleCursor(0, 0)   // down 20
	s.Apply(cam, 0)

	if _, pitch := cam.Orientation(); pitch < 68.999 || pitch > 69.001 {
		t.Errorf("pitch = %v, want 69", pitch)
	}
}

func TestScroll(t *testing.T) {
	s := NewState(0, 0)
	cam := &recordingCamera{}

	s.HandleScroll(1)
	s.HandleScroll(2)
	s.Apply(cam, 0)
	s.Apply(cam, 0)

	if len(cam.scrolls) != 1 || cam.scrolls[0] != 3 {
		t.Errorf("scrolls = %v, want [3]", cam.scrolls)
	}
}

func TestApplyMovesForHeldKeys(t *testing.T) {
	s := NewState(0, 0)
	cam := &recordingCamera{}

	s.HandleKey(KeyDown, Press)
	s.HandleKey(KeyForward, Press)
	s.HandleKey(KeyLeft, Press)
	s.HandleKey(KeyLeft, Release)
	s.Apply(cam, 0.5)

	want := []camera.Direction{camera.Forward, camera.Down}
	if len(cam.moves) != len(want) {
		t.Fatalf("moves = %v, want %v", cam.moves, want)
	}
	for i := range want {
		if cam.moves[i] != want[i] {
			t.Errorf("moves[%d] = %v, want %v", i, cam.moves[i], want[i])
		}
		if cam.dts[i] != 0.5 {
			t.Errorf("dts[%d] = %v, want 0.5", i, cam.dts[i])
		}
	}
}

func TestApplyDrivesRealCamera(t *testing.T) {
	s := NewState(0, 0)
	cam := camera.New(mgl32.Vec3{0, 0, 3})

	s.HandleKey(KeyForward, Press)
	s.Apply(cam, 1)

	want := mgl32.Vec3{0, 0, 3 - camera.DefaultSpeed}
	got := cam.Position()
	if d := got.Sub(want).Len(); d > 1e-4 {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

// Package render owns the window, the GPU resources and the frame loop.
package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-reflection/assets/shaders"
	"github.com/leterax/go-reflection/internal/config"
	"github.com/leterax/go-reflection/internal/logger"
	"github.com/leterax/go-reflection/internal/openglhelper"
	"github.com/leterax/go-reflection/pkg/camera"
	"github.com/leterax/go-reflection/pkg/input"
	"github.com/leterax/go-reflection/pkg/model"
	"github.com/leterax/go-reflection/pkg/render/frame"
	"go.uber.org/zap"
)

// Renderer drives the scene pass and the skybox pass once per frame.
// All methods must be called from the thread that created it.
type Renderer struct {
	cfg   *config.Config
	state frame.State

	window *openglhelper.Window
	camera *camera.Camera
	input  *input.State
	clock  frame.Clock

	meshes       []*openglhelper.Mesh
	textures     *openglhelper.TextureCache
	skybox       *Skybox
	sceneShader  *openglhelper.Shader
	skyboxShader *openglhelper.Shader

	projection mgl32.Mat4
	clearColor mgl32.Vec4
}

// New creates the window and loads every startup resource. Any failure is fatal to
// startup; resources created so far are released before returning.
func New(cfg *config.Config) (r *Renderer, err error) {
	r = &Renderer{
		cfg:        cfg,
		state:      frame.Init,
		textures:   openglhelper.NewTextureCache(),
		clearColor: mgl32.Vec4(cfg.Render.ClearColor),
	}
	defer func() {
		if err != nil {
			r.Cleanup()
			r = nil
		}
	}()

	r.window, err = openglhelper.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.VSync)
	if err != nil {
		return r, fmt.Errorf("failed to create window: %w", err)
	}

	r.window.SetMouseCaptured(true)
	r.input = input.NewState(r.window.CursorPos())
	r.window.SetKeyCallback(r.keyCallback)
	r.window.SetCursorPosCallback(r.cursorCallback)
	r.window.SetScrollCallback(func(_, yoff float64) { r.input.HandleScroll(yoff) })

	cam := cfg.Camera
	r.camera = camera.New(mgl32.Vec3(cam.Position),
		camera.WithAngles(cam.Yaw, cam.Pitch),
		camera.WithSpeed(cam.Speed),
		camera.WithSensitivity(cam.Sensitivity),
		camera.WithZoom(cam.Zoom),
	)

	if err = r.loadModel(cfg.Assets.Mesh); err != nil {
		return r, err
	}

	r.skybox, err = NewSkybox(cfg.Assets.SkyboxFaces)
	if err != nil {
		return r, err
	}

	r.sceneShader, err = loadShader("scene", cfg.Assets.SceneShader, shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return r, err
	}
	r.skyboxShader, err = loadShader("skybox", cfg.Assets.SkyboxShader, shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader)
	if err != nil {
		return r, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)

	return r, nil
}

// loadModel reads the mesh file and uploads every mesh it contains.
func (r *Renderer) loadModel(path string) error {
	m, err := model.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	for i := range m.Meshes {
		mesh, err := openglhelper.NewMesh(&m.Meshes[i], r.textures)
		if err != nil {
			return fmt.Errorf("failed to upload model: %w", err)
		}
		r.meshes = append(r.meshes, mesh)
	}

	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("textures", r.textures.Len()))
	return nil
}

// loadShader compiles the override files when both are configured, else the embedded sources.
func loadShader(name string, override config.ShaderPaths, vertex, fragment string) (*openglhelper.Shader, error) {
	if override.IsSet() {
		logger.Info("loading shader override",
			zap.String("shader", name),
			zap.String("vertex", override.Vertex),
			zap.String("fragment", override.Fragment))
		return openglhelper.LoadShaderFromFiles(name, override.Vertex, override.Fragment)
	}
	return openglhelper.NewShader(name, vertex, fragment)
}

// State returns the current lifecycle stage.
func (r *Renderer) State() frame.State {
	return r.state
}

func (r *Renderer) transition(next frame.State) error {
	if !r.state.CanTransition(next) {
		return fmt.Errorf("invalid render state transition %s -> %s", r.state, next)
	}
	logger.Debug("render state", zap.Stringer("from", r.state), zap.Stringer("to", next))
	r.state = next
	return nil
}

// ErrNotReady is returned by Run on a renderer that failed or already finished.
var ErrNotReady = errors.New("renderer not ready")

// Run loops until the window is asked to close or Escape is pressed, then releases
// all resources.
func (r *Renderer) Run() error {
	if r.state != frame.Init {
		return ErrNotReady
	}
	if err := r.transition(frame.Running); err != nil {
		return err
	}

	r.projection = r.camera.ProjectionMatrix(r.window.AspectRatio(), r.cfg.Render.Near, r.cfg.Render.Far)
	lastTitle := 0.0

	for !r.window.ShouldClose() {
		dt := r.clock.Tick(r.window.Time())
		r.window.PollEvents()

		if r.input.QuitRequested() {
			r.window.SetShouldClose(true)
		}

		zoom := r.camera.Zoom()
		r.input.Apply(r.camera, dt)
		if r.camera.Zoom() != zoom {
			r.projection = r.camera.ProjectionMatrix(r.window.AspectRatio(), r.cfg.Render.Near, r.cfg.Render.Far)
		}

		r.render()
		r.window.SwapBuffers()

		if r.cfg.Window.ShowFPS && r.clock.FPS() > 0 && r.clock.FPS() != lastTitle {
			lastTitle = r.clock.FPS()
			r.window.SetTitle(frame.WindowTitle(r.window.Title(), lastTitle))
		}
	}

	if err := r.transition(frame.Terminating); err != nil {
		return err
	}
	r.Cleanup()
	return nil
}

// render draws the scene with environment mapping, then the skybox behind it.
func (r *Renderer) render() {
	r.window.Clear(r.clearColor)

	view := r.camera.ViewMatrix()

	r.sceneShader.Use()
	r.sceneShader.SetMat4("projection", r.projection)
	r.sceneShader.SetMat4("view", view)
	r.sceneShader.SetMat4("model", mgl32.Ident4())
	r.sceneShader.SetVec3("cameraPos", r.camera.Position())
	r.skybox.Cubemap.Bind(0)
	r.sceneShader.SetInt("envText", 0)
	for _, mesh := range r.meshes {
		mesh.Draw(r.sceneShader)
	}

	r.skybox.Draw(r.skyboxShader, r.projection, view)

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (r *Renderer) keyCallback(key glfw.Key, action glfw.Action) {
	if key == captureToggleKey && action == glfw.Press {
		r.window.SetMouseCaptured(!r.window.IsMouseCaptured())
		r.input.ResetCursor()
		return
	}

	k, ok := keyBindings[key]
	if !ok {
		return
	}
	r.input.HandleKey(k, translateAction(action))
}

// cursorCallback steers the camera only while the cursor is captured.
func (r *Renderer) cursorCallback(x, y float64) {
	if r.window.IsMouseCaptured() {
		r.input.HandleCursor(x, y)
	}
}

// Cleanup releases GPU resources and the window. It is safe on a partially built renderer.
func (r *Renderer) Cleanup() {
	for _, mesh := range r.meshes {
		mesh.Delete()
	}
	r.meshes = nil

	if r.textures != nil {
		r.textures.Delete()
	}
	if r.skybox != nil {
		r.skybox.Delete()
		r.skybox = nil
	}
	if r.sceneShader != nil {
		r.sceneShader.Delete()
		r.sceneShader = nil
	}
	if r.skyboxShader != nil {
		r.skyboxShader.Delete()
		r.skyboxShader = nil
	}
	if r.window != nil {
		r.window.Close()
		r.window = nil
	}
	r.state = frame.Terminating
}

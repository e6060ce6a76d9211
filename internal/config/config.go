// Package config handles loading and validating the demo's settings.
package config

import (
	"errors"
	"fmt"
)

// SkyboxFaceCount is the number of cubemap face images, ordered
// right, left, top, bottom, back, front.
const SkyboxFaceCount = 6

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Assets  AssetsConfig  `yaml:"assets"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings. The window is never resizable.
type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	VSync   bool   `yaml:"vsync"`
	ShowFPS bool   `yaml:"show_fps"`
}

// ShaderPaths points at an external vertex/fragment pair. Empty paths select the embedded sources.
type ShaderPaths struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// IsSet reports whether both stages are overridden.
func (s ShaderPaths) IsSet() bool {
	return s.Vertex != "" && s.Fragment != ""
}

// AssetsConfig holds the files read once at startup.
type AssetsConfig struct {
	Mesh         string      `yaml:"mesh"`
	SkyboxFaces  []string    `yaml:"skybox_faces"`
	SceneShader  ShaderPaths `yaml:"scene_shader"`
	SkyboxShader ShaderPaths `yaml:"skybox_shader"`
}

// CameraConfig holds the free camera's initial state.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Zoom        float32    `yaml:"zoom"`
}

// RenderConfig holds per-frame pipeline settings.
type RenderConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the settings the demo ships with.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1920,
			Height: 1080,
			Title:  "Environment Mapping - reflection",
			VSync:  true,
		},
		Assets: AssetsConfig{
			Mesh: "assets/sphere.obj",
			SkyboxFaces: []string{
				"assets/skybox/sky_rt.png",
				"assets/skybox/sky_lf.png",
				"assets/skybox/sky_up.png",
				"assets/skybox/sky_dn.png",
				"assets/skybox/sky_bk.png",
				"assets/skybox/sky_ft.png",
			},
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0.18, 0.04, 0.14, 1.0},
			Near:       0.1,
			Far:        100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that would make startup fail.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Assets.Mesh == "" {
		errs = append(errs, errors.New("assets.mesh is empty"))
	}
	if len(c.Assets.SkyboxFaces) != SkyboxFaceCount {
		errs = append(errs, fmt.Errorf("assets.skybox_faces has %d entries, want %d", len(c.Assets.SkyboxFaces), SkyboxFaceCount))
	}
	if c.Render.Near <= 0 || c.Render.Near >= c.Render.Far {
		errs = append(errs, fmt.Errorf("render clip planes near=%v far=%v: need 0 < near < far", c.Render.Near, c.Render.Far))
	}
	if c.Camera.Speed < 0 || c.Camera.Sensitivity < 0 {
		errs = append(errs, errors.New("camera speed and sensitivity must not be negative"))
	}
	return errors.Join(errs...)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "go-reflection")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "go-reflection")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "go-reflection")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "go-reflection")
	}
}

// loadFromFile merges a YAML file over cfg. Keys absent from the file keep their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// SaveTo writes the config as YAML, creating parent directories as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// CheckAssets reports every configured asset file that cannot be read, so a missing
// skybox face fails before a window is opened. Shader overrides are checked only when set.
func (c *Config) CheckAssets() error {
	type asset struct{ role, path string }

	assets := []asset{{"mesh", c.Assets.Mesh}}
	for i, face := range c.Assets.SkyboxFaces {
		assets = append(assets, asset{fmt.Sprintf("skybox face %d", i), face})
	}
	for name, sp := range map[string]ShaderPaths{"scene": c.Assets.SceneShader, "skybox": c.Assets.SkyboxShader} {
		if sp.IsSet() {
			assets = append(assets,
				asset{name + " vertex shader", sp.Vertex},
				asset{name + " fragment shader", sp.Fragment})
		}
	}

	var errs []error
	for _, a := range assets {
		info, err := os.Stat(a.path)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", a.role, err))
		case info.IsDir():
			errs = append(errs, fmt.Errorf("%s: %s is a directory", a.role, a.path))
		}
	}
	return errors.Join(errs...)
}

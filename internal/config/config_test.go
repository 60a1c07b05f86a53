package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1000 {
		t.Errorf("expected width 1000, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 800 {
		t.Errorf("expected height 800, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Graphics.FOV)
	}

	if cfg.Game.MapFile != "scenes/map1.txt" {
		t.Errorf("expected map scenes/map1.txt, got %s", cfg.Game.MapFile)
	}
	if cfg.Game.MoveSpeed != 1.3 {
		t.Errorf("expected move speed 1.3, got %f", cfg.Game.MoveSpeed)
	}
	if cfg.Game.CollisionMargin != 0.06 {
		t.Errorf("expected collision margin 0.06, got %f", cfg.Game.CollisionMargin)
	}
	if !cfg.Game.ExitOnWin {
		t.Error("expected exit_on_win to be true by default")
	}

	if cfg.Assets.Meshes.Wall != "models/cube.txt" {
		t.Errorf("expected wall mesh models/cube.txt, got %s", cfg.Assets.Meshes.Wall)
	}
	if len(cfg.Assets.Skybox.Default) != 6 {
		t.Errorf("expected 6 default skybox faces, got %d", len(cfg.Assets.Skybox.Default))
	}

	if cfg.Capture.Enabled {
		t.Error("expected capture to be disabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if !cfg.Logging.Console || cfg.Logging.TimeFormat != "15:04:05" {
		t.Errorf("expected console logging with 15:04:05 timestamps, got %+v", cfg.Logging)
	}
	if cfg.Logging.MaxSizeMB != 20 || cfg.Logging.MaxBackups != 3 || cfg.Logging.MaxAgeDays != 7 {
		t.Errorf("unexpected rotation defaults: %+v", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fov: 60

game:
  map: "scenes/map2.txt"
  move_speed: 2.5
  turn_speed: 2.0
  collision_margin: 0.1
  exit_on_win: false

assets:
  meshes:
    goal: "models/teapot.txt"
  skybox_model: "models/sky.txt"

capture:
  enabled: true
  dir: "frames"

logging:
  level: "debug"
  log_file: "mazewalk.log"
  max_backups: 5
  color: false
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Game.MapFile != "scenes/map2.txt" {
		t.Errorf("expected map scenes/map2.txt, got %s", cfg.Game.MapFile)
	}
	if cfg.Game.MoveSpeed != 2.5 {
		t.Errorf("expected move speed 2.5, got %f", cfg.Game.MoveSpeed)
	}
	if cfg.Game.ExitOnWin {
		t.Error("expected exit_on_win to be false")
	}

	// Partial mesh section keeps the other defaults
	if cfg.Assets.Meshes.Goal != "models/teapot.txt" {
		t.Errorf("expected goal mesh models/teapot.txt, got %s", cfg.Assets.Meshes.Goal)
	}
	if cfg.Assets.Meshes.Wall != "models/cube.txt" {
		t.Errorf("expected wall mesh default to survive, got %s", cfg.Assets.Meshes.Wall)
	}
	if cfg.Assets.SkyboxModel != "models/sky.txt" {
		t.Errorf("expected skybox model models/sky.txt, got %s", cfg.Assets.SkyboxModel)
	}

	if !cfg.Capture.Enabled || cfg.Capture.Dir != "frames" {
		t.Errorf("expected capture enabled into frames, got %+v", cfg.Capture)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "mazewalk.log" {
		t.Errorf("expected log file 'mazewalk.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Logging.MaxBackups != 5 {
		t.Errorf("expected max backups 5, got %d", cfg.Logging.MaxBackups)
	}
	if cfg.Logging.Color {
		t.Error("expected color to be disabled")
	}
	if cfg.Logging.MaxSizeMB != 20 {
		t.Errorf("unset max_size_mb should keep default 20, got %d", cfg.Logging.MaxSizeMB)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "invalid size"},
		{"bad fov", func(c *Config) { c.Graphics.FOV = 180 }, "fov"},
		{"bright ambient", func(c *Config) { c.Graphics.Light.Ambient = 1.5 }, "ambient"},
		{"empty map", func(c *Config) { c.Game.MapFile = "" }, "map path"},
		{"zero move speed", func(c *Config) { c.Game.MoveSpeed = 0 }, "move_speed"},
		{"negative turn speed", func(c *Config) { c.Game.TurnSpeed = -1 }, "turn_speed"},
		{"negative margin", func(c *Config) { c.Game.CollisionMargin = -0.1 }, "collision_margin"},
		{"short skybox", func(c *Config) { c.Assets.Skybox.Won = []string{"a.jpg"} }, "skybox won"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, "unknown level"},
		{"no log output", func(c *Config) { c.Logging.Console = false }, "no log_file"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "rotation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}

	// An empty skybox set is allowed: that variant is simply not available
	cfg := Default()
	cfg.Assets.Skybox.Fun = nil
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty skybox set should be valid, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "map flag",
			setup: func() { *flagMap = "scenes/custom.txt" },
			verify: func(cfg *Config) {
				if cfg.Game.MapFile != "scenes/custom.txt" {
					t.Errorf("expected map scenes/custom.txt, got %s", cfg.Game.MapFile)
				}
			},
			teardown: func() { *flagMap = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "capture flag",
			setup: func() { *flagCapture = "shots" },
			verify: func(cfg *Config) {
				if !cfg.Capture.Enabled || cfg.Capture.Dir != "shots" {
					t.Errorf("expected capture into shots, got %+v", cfg.Capture)
				}
			},
			teardown: func() { *flagCapture = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("game:\n  move_speed: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject negative move speed")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Game.MapFile = "scenes/big.txt"
	cfg.Graphics.Width = 640
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "#") {
		t.Error("saved config should start with a comment header")
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile error: %v", err)
	}
	if loaded.Game.MapFile != "scenes/big.txt" || loaded.Graphics.Width != 640 {
		t.Errorf("round trip lost values: %+v", loaded.Game)
	}
	if len(loaded.Assets.Skybox.Won) != 6 {
		t.Errorf("won skybox faces = %d, want 6", len(loaded.Assets.Skybox.Won))
	}
}

func TestSaveToRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Game.MoveSpeed = 0
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.SaveTo(path); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config should not be written")
	}
}

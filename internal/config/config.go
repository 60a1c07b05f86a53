// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Game     GameConfig     `yaml:"game"`
	Assets   AssetsConfig   `yaml:"assets"`
	Capture  CaptureConfig  `yaml:"capture"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // Vertical field of view in degrees

	Light LightConfig `yaml:"light"`
}

// LightConfig places the directional sun light. Angles are in degrees.
type LightConfig struct {
	Longitude float32 `yaml:"longitude"` // Around Y, 0 = +Z
	Latitude  float32 `yaml:"latitude"`  // Above the horizon
	Ambient   float32 `yaml:"ambient"`   // 0..1
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	MapFile         string  `yaml:"map"`
	MoveSpeed       float32 `yaml:"move_speed"`       // World units per second
	TurnSpeed       float32 `yaml:"turn_speed"`       // Radians per second
	CollisionMargin float32 `yaml:"collision_margin"` // Extra probe distance ahead of a move
	ExitOnWin       bool    `yaml:"exit_on_win"`
}

// MeshConfig lists the four shared meshes a map loads, in load order.
type MeshConfig struct {
	Wall   string `yaml:"wall"`
	Key    string `yaml:"key"` // Reserved, loaded but unused
	Goal   string `yaml:"goal"`
	Ground string `yaml:"ground"`
}

// SkyboxConfig holds the six cubemap faces: +X, -X, +Y, -Y, +Z, -Z.
type SkyboxConfig struct {
	Default []string `yaml:"default"`
	Fun     []string `yaml:"fun"`
	Won     []string `yaml:"won"`
}

// AssetsConfig holds model and texture paths.
type AssetsConfig struct {
	Meshes       MeshConfig   `yaml:"meshes"`
	SkyboxModel  string       `yaml:"skybox_model"`
	FloorTexture string       `yaml:"floor_texture"`
	WallTexture  string       `yaml:"wall_texture"`
	Skybox       SkyboxConfig `yaml:"skybox"`
}

// CaptureConfig holds frame capture settings.
type CaptureConfig struct {
	Enabled bool   `yaml:"enabled"` // Dump every frame
	Dir     string `yaml:"dir"`
	Prefix  string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn or error
	Console    bool   `yaml:"console"`
	Color      bool   `yaml:"color"`
	TimeFormat string `yaml:"time_format"` // Go time layout for console lines
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1000,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Light: LightConfig{
				Longitude: 225,
				Latitude:  35,
				Ambient:   0.3,
			},
		},
		Game: GameConfig{
			MapFile:         "scenes/map1.txt",
			MoveSpeed:       1.3,
			TurnSpeed:       1.3,
			CollisionMargin: 0.06,
			ExitOnWin:       true,
		},
		Assets: AssetsConfig{
			Meshes: MeshConfig{
				Wall:   "models/cube.txt",
				Key:    "models/knot.txt",
				Goal:   "models/sphere.txt",
				Ground: "models/cube.txt",
			},
			SkyboxModel:  "models/skybox.txt",
			FloorTexture: "textures/brick.bmp",
			WallTexture:  "textures/brick.bmp",
			Skybox: SkyboxConfig{
				Default: []string{
					"textures/skybox/right.jpg", "textures/skybox/left.jpg",
					"textures/skybox/top.jpg", "textures/skybox/bottom.jpg",
					"textures/skybox/front.jpg", "textures/skybox/back.jpg",
				},
				Fun: []string{
					"textures/Yokohama3/posx.jpg", "textures/Yokohama3/negx.jpg",
					"textures/Yokohama3/posy.jpg", "textures/Yokohama3/negy.jpg",
					"textures/Yokohama3/posz.jpg", "textures/Yokohama3/negz.jpg",
				},
				Won: []string{
					"textures/interstellar/right.tga", "textures/interstellar/left.tga",
					"textures/interstellar/top.tga", "textures/interstellar/down.tga",
					"textures/interstellar/front.tga", "textures/interstellar/back.tga",
				},
			},
		},
		Capture: CaptureConfig{
			Enabled: false,
			Dir:     "out",
			Prefix:  "frame",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    true,
			Color:      true,
			TimeFormat: "15:04:05",
			LogFile:    "",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate checks settings that would otherwise fail deep inside the game loop.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov %.1f out of range (0, 180)", c.Graphics.FOV))
	}
	if c.Graphics.Light.Ambient < 0 || c.Graphics.Light.Ambient > 1 {
		errs = append(errs, fmt.Errorf("graphics: light ambient %.2f out of range [0, 1]", c.Graphics.Light.Ambient))
	}
	if c.Game.MapFile == "" {
		errs = append(errs, errors.New("game: map path is empty"))
	}
	if c.Game.MoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("game: move_speed must be positive, got %.2f", c.Game.MoveSpeed))
	}
	if c.Game.TurnSpeed <= 0 {
		errs = append(errs, fmt.Errorf("game: turn_speed must be positive, got %.2f", c.Game.TurnSpeed))
	}
	if c.Game.CollisionMargin < 0 {
		errs = append(errs, fmt.Errorf("game: collision_margin must not be negative, got %.2f", c.Game.CollisionMargin))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	if !c.Logging.Console && c.Logging.LogFile == "" {
		errs = append(errs, errors.New("logging: console disabled and no log_file set"))
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		errs = append(errs, errors.New("logging: rotation limits must not be negative"))
	}

	sets := map[string][]string{
		"default": c.Assets.Skybox.Default,
		"fun":     c.Assets.Skybox.Fun,
		"won":     c.Assets.Skybox.Won,
	}
	for _, name := range []string{"default", "fun", "won"} {
		if n := len(sets[name]); n != 0 && n != 6 {
			errs = append(errs, fmt.Errorf("assets: skybox %s needs 6 faces, got %d", name, n))
		}
	}

	return errors.Join(errs...)
}

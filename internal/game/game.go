// Package game implements the main loop: input, movement, drawing and capture.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/mazewalk/internal/config"
	"github.com/Faultbox/mazewalk/internal/engine/camera"
	"github.com/Faultbox/mazewalk/internal/engine/debug"
	"github.com/Faultbox/mazewalk/internal/engine/input"
	"github.com/Faultbox/mazewalk/internal/engine/lighting"
	"github.com/Faultbox/mazewalk/internal/engine/model"
	"github.com/Faultbox/mazewalk/internal/engine/renderer"
	"github.com/Faultbox/mazewalk/internal/engine/texture"
	"github.com/Faultbox/mazewalk/internal/engine/window"
	"github.com/Faultbox/mazewalk/internal/game/player"
	"github.com/Faultbox/mazewalk/internal/game/world"
	"github.com/Faultbox/mazewalk/internal/logger"
	"github.com/Faultbox/mazewalk/pkg/math"
)

// Skybox set names.
const (
	SkyboxDefault = "default"
	SkyboxFun     = "fun"
	SkyboxWon     = "won"
)

// Game is the main game instance.
type Game struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	world  *world.Map
	camera *camera.FirstPersonCamera
	player *player.Controller

	skyboxes map[string]uint32
	skybox   string
	textures []uint32

	capture  *debug.Capture
	snapshot bool
}

// New creates the window and renderer, then loads the map and its assets.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.String("map", cfg.Game.MapFile),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{
		cfg:      cfg,
		skyboxes: make(map[string]uint32),
		capture:  debug.NewCapture(cfg.Capture.Dir, cfg.Capture.Prefix),
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      "Maze Walk",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	if err := g.load(); err != nil {
		g.Close()
		return nil, err
	}

	logger.Info("game initialized successfully")
	return g, nil
}

// load reads the map, meshes and textures and uploads them.
func (g *Game) load() error {
	cfg := g.cfg

	m, err := world.Load(cfg.Game.MapFile, world.MeshPaths{
		Wall:   cfg.Assets.Meshes.Wall,
		Key:    cfg.Assets.Meshes.Key,
		Goal:   cfg.Assets.Meshes.Goal,
		Ground: cfg.Assets.Meshes.Ground,
	})
	if err != nil {
		return err
	}
	// A map without a reachable goal would leave the player stuck
	if err := m.Playable(); err != nil {
		return &world.MapLoadError{Path: cfg.Game.MapFile, Err: err}
	}
	logger.Debug("maze solvable", zap.Int("steps", len(m.Solve())-1))
	g.world = m

	if err := g.renderer.UploadScene(m.Store()); err != nil {
		return err
	}

	sky := model.NewStore(model.SkyboxStride)
	if _, err := sky.Load(cfg.Assets.SkyboxModel); err != nil {
		return err
	}
	if err := g.renderer.UploadSkybox(sky); err != nil {
		return err
	}

	floorTex, err := texture.Load2D(cfg.Assets.FloorTexture)
	if err != nil {
		return fmt.Errorf("floor texture: %w", err)
	}
	wallTex := floorTex
	if cfg.Assets.WallTexture != cfg.Assets.FloorTexture {
		if wallTex, err = texture.Load2D(cfg.Assets.WallTexture); err != nil {
			return fmt.Errorf("wall texture: %w", err)
		}
		g.textures = append(g.textures, wallTex)
	}
	g.textures = append(g.textures, floorTex)
	g.renderer.SetTextures(floorTex, wallTex)

	light := cfg.Graphics.Light
	g.renderer.SetSun(lighting.NewSun(light.Longitude, light.Latitude, light.Ambient))

	for name, faces := range map[string][]string{
		SkyboxDefault: cfg.Assets.Skybox.Default,
		SkyboxFun:     cfg.Assets.Skybox.Fun,
		SkyboxWon:     cfg.Assets.Skybox.Won,
	} {
		if len(faces) == 0 {
			continue
		}
		tex, err := texture.LoadCubemap(faces)
		if err != nil {
			// A missing skybox only affects the background
			logger.Warn("skybox unavailable", zap.String("skybox", name), zap.Error(err))
			continue
		}
		g.skyboxes[name] = tex
	}
	g.setSkybox(SkyboxDefault)

	g.camera = camera.NewFirstPersonCamera(m.Start, math.Vec3{X: 0, Y: 0, Z: -1})
	g.camera.FOV = cfg.Graphics.FOV
	g.camera.SetAspect(g.renderer.Size())

	g.player = player.NewController(g.camera, m)
	g.player.MoveSpeed = cfg.Game.MoveSpeed
	g.player.TurnSpeed = cfg.Game.TurnSpeed
	g.player.Margin = cfg.Game.CollisionMargin

	return nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if g.input.Update() {
			g.running = false
		}
		g.handleEvents()

		g.update(dt)
		g.render(dt)

		if err := g.captureFrame(); err != nil {
			return fmt.Errorf("capture error: %w", err)
		}

		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		if event.Type == input.EventWindowResize {
			w, h := g.window.DrawableSize()
			g.renderer.Resize(w, h)
			g.camera.SetAspect(w, h)
		}
	}

	for _, action := range g.input.Actions() {
		if name, ok := SkyboxForAction(action); ok {
			g.setSkybox(name)
			continue
		}
		switch action {
		case input.ActionQuit:
			g.running = false
		case input.ActionToggleFullscreen:
			if err := g.window.ToggleFullscreen(); err != nil {
				logger.Warn("fullscreen toggle failed", zap.Error(err))
			}
		case input.ActionSnapshot:
			g.snapshot = true
		}
	}
}

// update applies held movement keys and reacts to reaching the goal.
func (g *Game) update(dt float32) {
	move, turn := g.input.Axes()
	wasWon := g.player.Won()

	outcome := g.player.Step(player.Intent{Move: move, Turn: turn}, dt)
	if outcome == world.Invalid {
		logger.Debug("move blocked", zap.Any("position", g.camera.Position))
	}

	if g.player.Won() && !wasWon {
		g.setSkybox(SkyboxWon)
		if g.cfg.Game.ExitOnWin {
			g.running = false
		}
	}
}

// render draws the maze then the skybox.
func (g *Game) render(dt float32) {
	w, h := g.renderer.Size()
	proj := g.camera.ProjectionMatrix()

	g.renderer.Begin(g.camera.ViewMatrix(), proj)
	g.world.Draw(world.Frame{DeltaTime: dt, Width: w, Height: h}, g.renderer)
	g.renderer.DrawSkybox(g.camera.SkyboxViewMatrix(), proj)
	g.renderer.End()
}

// captureFrame writes the back buffer when recording or a snapshot was requested.
func (g *Game) captureFrame() error {
	if !g.cfg.Capture.Enabled && !g.snapshot {
		return nil
	}

	pixels, w, h := g.renderer.ReadPixels()
	if g.snapshot {
		g.snapshot = false
		if _, err := g.capture.Snapshot(pixels, w, h); err != nil {
			logger.Warn("snapshot failed", zap.Error(err))
		}
	}
	if g.cfg.Capture.Enabled {
		if _, err := g.capture.Frame(pixels, w, h); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) setSkybox(name string) {
	tex, ok := g.skyboxes[name]
	if !ok {
		logger.Debug("skybox not loaded", zap.String("skybox", name))
		return
	}
	g.skybox = name
	g.renderer.SetCubemap(tex)
	logger.Debug("skybox changed", zap.String("skybox", name))
}

// SkyboxForAction returns the skybox set a key action selects.
func SkyboxForAction(a input.Action) (string, bool) {
	switch a {
	case input.ActionSkyboxFun:
		return SkyboxFun, true
	case input.ActionSkyboxWon:
		return SkyboxWon, true
	case input.ActionSkyboxDefault:
		return SkyboxDefault, true
	default:
		return "", false
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.cfg.Capture.Enabled && g.capture.Frames() > 0 {
		logger.Info("frames captured", zap.Int("count", g.capture.Frames()), zap.String("dir", g.cfg.Capture.Dir))
	}

	for _, tex := range g.skyboxes {
		texture.Delete(tex)
	}
	for _, tex := range g.textures {
		texture.Delete(tex)
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

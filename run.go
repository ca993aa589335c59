package sprig

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// RunConfig configures the window and game loop started by Run.
type RunConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Debug      bool   `yaml:"debug"`
	ShowFPS    bool   `yaml:"show_fps"`
	ClearColor *Color `yaml:"clear_color"`
	// DragDeadZone overrides the HUD's drag threshold in pixels when > 0.
	DragDeadZone float64 `yaml:"drag_dead_zone"`
}

const (
	defaultRunWidth  = 640
	defaultRunHeight = 480
)

// LoadRunConfig parses a YAML run configuration. Missing sizes fall back to
// 640x480.
func LoadRunConfig(data []byte) (RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *RunConfig) applyDefaults() {
	if c.Width <= 0 {
		c.Width = defaultRunWidth
	}
	if c.Height <= 0 {
		c.Height = defaultRunHeight
	}
}

// game adapts a HUD to ebiten.Game.
type game struct {
	hud        *HUD
	clearColor *Color
}

func (g *game) Update() error {
	g.hud.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.clearColor != nil {
		screen.Fill(g.clearColor.toRGBA())
	}
	g.hud.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.hud.Width() || h != g.hud.Height() {
		g.hud.Resize(w, h)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives hud until the window is closed. For full
// control over the loop, implement ebiten.Game and call HUD.Update and
// HUD.Draw directly.
func Run(hud *HUD, cfg RunConfig) error {
	cfg.applyDefaults()
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if cfg.Debug {
		hud.SetDebugMode(true)
	}
	if cfg.DragDeadZone > 0 {
		hud.SetDragDeadZone(cfg.DragDeadZone)
	}
	if cfg.ShowFPS {
		hud.AddActor(NewFPSLabel(nil).Actor)
	}
	return ebiten.RunGame(&game{hud: hud, clearColor: cfg.ClearColor})
}

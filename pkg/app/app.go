// Package app wires the support layer together behind the ebiten.Game
// interface: audio context, resource cache, settings, audio manager and
// scene stack. A game builds an App, pushes its initial scene and hands the
// app to ebiten.RunGame.
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/decker502/gamekit/pkg/game"
	"github.com/decker502/gamekit/pkg/resource"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config defines the application startup configuration.
type Config struct {
	// Title is the window title.
	Title string
	// Width and Height set the logical screen size. Ebitengine scales the
	// logical screen to the actual window.
	Width  int
	Height int
	// AppName names the gdata storage container for persisted settings.
	// Leave empty to skip persistence (settings stay in memory).
	AppName string
	// ResourceConfig is the path of the YAML resource manifest. Leave empty
	// when loading assets by path only.
	ResourceConfig string
	// SampleRate is the audio context sample rate; 0 defaults to 48000.
	SampleRate int
	// Verbose enables log output; without it logs are discarded.
	Verbose bool
}

// App is the core application wrapper implementing ebiten.Game.
type App struct {
	config          Config
	sceneManager    *game.SceneManager
	resourceManager *resource.Manager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager

	pendingWindowSizeReset   bool // Window size must be restored a few frames after leaving fullscreen
	windowSizeResetCountdown int
}

// New creates and initializes the application: audio context, resource
// manager (with manifest, when configured), persisted settings and the
// scene manager. The returned app has an empty scene stack; push the
// initial scene before running.
func New(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 48000
	}
	if cfg.Width == 0 {
		cfg.Width = 800
	}
	if cfg.Height == 0 {
		cfg.Height = 600
	}

	audioContext := audio.NewContext(cfg.SampleRate)
	resourceManager := resource.NewManager(audioContext)

	if cfg.ResourceConfig != "" {
		if err := resourceManager.LoadConfig(cfg.ResourceConfig); err != nil {
			return nil, fmt.Errorf("failed to load resource config: %w", err)
		}
		log.Printf("[App] Loaded resource config: %s", cfg.ResourceConfig)
	}

	var gdataManager *gdata.Manager
	if cfg.AppName != "" {
		var err error
		gdataManager, err = gdata.Open(gdata.Config{AppName: cfg.AppName})
		if err != nil {
			// Settings degrade to in-memory mode; not fatal.
			log.Printf("[App] Warning: settings storage unavailable: %v", err)
			gdataManager = nil
		}
	}
	settingsManager := game.NewSettingsManager(gdataManager)
	audioManager := game.NewAudioManager(resourceManager, settingsManager)

	app := &App{
		config:          cfg,
		sceneManager:    game.NewSceneManager(),
		resourceManager: resourceManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
	}

	if settingsManager.Get().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return app, nil
}

// Run sets up the window, pushes the initial scene and enters the
// Ebitengine main loop. It blocks until the game exits, then shuts the
// support layer down.
func (a *App) Run(initial game.Scene) error {
	ebiten.SetWindowSize(a.config.Width, a.config.Height)
	ebiten.SetWindowTitle(a.config.Title)

	a.sceneManager.Push(initial)
	err := ebiten.RunGame(a)

	a.Shutdown()
	return err
}

// Update advances the active scene by one tick (1/60 s) and handles the
// global F11 fullscreen toggle.
func (a *App) Update() error {
	// Restore the window size a few frames after leaving fullscreen; the
	// window manager needs time before the size sticks.
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.config.Width, a.config.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw renders the visible scene stack.
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout returns the logical screen size, independent of the window size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.Width, a.config.Height
}

// Shutdown saves settings, releases the audio manager's cache references
// and evicts everything unreferenced from the resource cache.
func (a *App) Shutdown() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
	a.audioManager.Shutdown()
	a.resourceManager.Purge()
}

// SceneManager returns the scene stack.
func (a *App) SceneManager() *game.SceneManager { return a.sceneManager }

// ResourceManager returns the resource cache.
func (a *App) ResourceManager() *resource.Manager { return a.resourceManager }

// AudioManager returns the audio playback manager.
func (a *App) AudioManager() *game.AudioManager { return a.audioManager }

// SettingsManager returns the persisted settings manager.
func (a *App) SettingsManager() *game.SettingsManager { return a.settingsManager }

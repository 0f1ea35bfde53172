// Command demo is a minimal game built on the gamekit support layer: a menu
// scene, a gameplay scene with a few moving entities, and a transparent
// pause scene stacked on top of gameplay.
//
// It expects an assets directory next to the binary:
//
//	assets/resources.yaml    resource manifest
//	assets/images/hero.png   referenced as IMAGE_HERO
//	assets/sounds/click.wav  referenced as SOUND_CLICK
//	assets/sounds/theme.wav  referenced as MUSIC_THEME
//
// Missing image and sound files are generated as placeholders on startup,
// so the demo runs from a bare checkout.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/gamekit/pkg/app"
	"github.com/decker502/gamekit/pkg/components"
	"github.com/decker502/gamekit/pkg/ecs"
	"github.com/decker502/gamekit/pkg/graphics"
	"github.com/decker502/gamekit/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/profile"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable log output")
	cpuprofile := flag.Bool("cpuprofile", false, "write a CPU profile for this run")
	flag.Parse()

	if *cpuprofile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := ensureDemoAssets("assets"); err != nil {
		log.Fatalf("Failed to generate demo assets: %v", err)
	}

	a, err := app.New(app.Config{
		Title:          "gamekit demo",
		Width:          800,
		Height:         600,
		AppName:        "gamekit_demo",
		ResourceConfig: "assets/resources.yaml",
		Verbose:        *verbose,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := a.Run(newMenuScene(a)); err != nil {
		log.Fatal(err)
	}
}

// menuScene waits for Enter and then replaces itself with gameplay.
type menuScene struct {
	app *app.App
}

func newMenuScene(a *app.App) *menuScene {
	return &menuScene{app: a}
}

func (s *menuScene) Enter() {
	s.app.AudioManager().PlayMusic("MUSIC_THEME")
}

func (s *menuScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.app.AudioManager().PlaySound("SOUND_CLICK")
		if err := s.app.SceneManager().Replace(newPlayScene(s.app)); err != nil {
			log.Printf("[Demo] Failed to start gameplay: %v", err)
		}
	}
}

func (s *menuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 28, B: 40, A: 255})
	ebitenutil.DebugPrintAt(screen, "gamekit demo - press Enter to play", 280, 290)
}

// playScene runs a small entity set through the built-in systems.
type playScene struct {
	app *app.App

	entityManager   *ecs.EntityManager
	renderSystem    *systems.RenderSystem
	movementSystem  *systems.MovementSystem
	animationSystem *systems.AnimationSystem
	lifetimeSystem  *systems.LifetimeSystem
}

func newPlayScene(a *app.App) *playScene {
	em := ecs.NewEntityManager()
	return &playScene{
		app:             a,
		entityManager:   em,
		renderSystem:    systems.NewRenderSystem(em),
		movementSystem:  systems.NewMovementSystem(em),
		animationSystem: systems.NewAnimationSystem(em),
		lifetimeSystem:  systems.NewLifetimeSystem(em),
	}
}

func (s *playScene) Enter() {
	rm := s.app.ResourceManager()

	res, err := rm.AcquireByID("IMAGE_HERO")
	if err != nil {
		log.Printf("[Demo] Failed to load hero image: %v", err)
		return
	}

	// A few drifting heroes with different speeds and lifetimes. They all
	// share the one cached image.
	for i := 0; i < 3; i++ {
		sprite, err := graphics.NewSprite(res)
		if err != nil {
			log.Printf("[Demo] Failed to wrap hero image: %v", err)
			return
		}
		id := s.entityManager.CreateEntity()
		mustAdd(s.entityManager.AddComponent(id, &components.TransformComponent{X: 100, Y: 120 + float64(i)*160}))
		mustAdd(s.entityManager.AddComponent(id, &components.VelocityComponent{VX: 40 + float64(i)*30}))
		mustAdd(s.entityManager.AddComponent(id, components.NewSpriteComponent(sprite)))
		mustAdd(s.entityManager.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 20 + float64(i)*5}))
	}
}

func (s *playScene) Exit() {
	// Balance the Acquire from Enter and drop the image once nothing else
	// references it.
	s.app.ResourceManager().ReleaseByID("IMAGE_HERO")
	s.app.ResourceManager().Purge()
}

func (s *playScene) Suspend() {
	s.app.AudioManager().PauseMusic()
}

func (s *playScene) Resume() {
	s.app.AudioManager().ResumeMusic()
}

func (s *playScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.app.SceneManager().Push(newPauseScene(s.app))
		return
	}

	s.movementSystem.Update(deltaTime)
	s.animationSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

func (s *playScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 40, G: 72, B: 48, A: 255})
	s.renderSystem.Draw(screen)
}

// pauseScene sits transparently on top of gameplay, which stays visible but
// frozen underneath.
type pauseScene struct {
	app *app.App

	overlay *ebiten.Image // Dimming layer, built once and reused every frame
}

func newPauseScene(a *app.App) *pauseScene {
	return &pauseScene{app: a}
}

func (s *pauseScene) Transparent() bool { return true }

func (s *pauseScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if err := s.app.SceneManager().Pop(); err != nil {
			log.Printf("[Demo] Failed to close pause menu: %v", err)
		}
	}
}

func (s *pauseScene) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if s.overlay == nil || s.overlay.Bounds().Dx() != w || s.overlay.Bounds().Dy() != h {
		s.overlay = ebiten.NewImage(w, h)
		s.overlay.Fill(color.RGBA{A: 160})
	}
	screen.DrawImage(s.overlay, nil)
	ebitenutil.DebugPrintAt(screen, "paused - press Esc to resume", 300, 290)
}

func mustAdd(err error) {
	if err != nil {
		log.Fatalf("[Demo] Failed to attach component: %v", err)
	}
}

// ensureDemoAssets generates the placeholder image and sound files the
// manifest references, skipping any that already exist. Real games ship real
// assets; the demo just needs something loadable.
func ensureDemoAssets(root string) error {
	heroPath := filepath.Join(root, "images", "hero.png")
	if _, err := os.Stat(heroPath); os.IsNotExist(err) {
		if err := writePlaceholderImage(heroPath); err != nil {
			return err
		}
	}
	for _, name := range []string{"click.wav", "theme.wav"} {
		soundPath := filepath.Join(root, "sounds", name)
		if _, err := os.Stat(soundPath); os.IsNotExist(err) {
			if err := writeSilentWAV(soundPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// writePlaceholderImage writes a small solid square as a stand-in sprite.
func writePlaceholderImage(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	fill := color.RGBA{R: 220, G: 180, B: 60, A: 255}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, fill)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

// writeSilentWAV writes a short silent 16-bit stereo WAV at 48000 Hz.
func writeSilentWAV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	const frames = 9600 // 0.2 s
	const dataSize = frames * 4
	buf := make([]byte, 0, 44+dataSize)
	buf = append(buf, "RIFF"...)
	buf = appendUint32(buf, 36+dataSize)
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = appendUint32(buf, 16)
	buf = appendUint16(buf, 1) // PCM
	buf = appendUint16(buf, 2) // stereo
	buf = appendUint32(buf, 48000)
	buf = appendUint32(buf, 48000*4)
	buf = appendUint16(buf, 4)
	buf = appendUint16(buf, 16)
	buf = append(buf, "data"...)
	buf = appendUint32(buf, dataSize)
	buf = append(buf, make([]byte, dataSize)...)

	return os.WriteFile(path, buf, 0644)
}

func appendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendUint16(b []byte, v uint16) []byte {
	return append(b, byte(v), byte(v>>8))
}

package systems

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/decker502/gamekit/pkg/components"
	"github.com/decker502/gamekit/pkg/ecs"
	"github.com/decker502/gamekit/pkg/graphics"
	"github.com/decker502/gamekit/pkg/resource"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Shared audio context; Ebitengine allows only one per process.
var testAudioContext *audio.Context

// runLoopGame keeps an Ebitengine run loop alive while the tests execute on
// another goroutine; (*ebiten.Image).At requires a started game.
type runLoopGame struct {
	started chan struct{}
	once    sync.Once
	done    chan struct{}
}

func (g *runLoopGame) Update() error {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.done:
		return ebiten.Termination
	default:
		return nil
	}
}

func (g *runLoopGame) Draw(*ebiten.Image) {}

func (g *runLoopGame) Layout(w, h int) (int, int) { return 320, 240 }

func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	g := &runLoopGame{started: make(chan struct{}), done: make(chan struct{})}
	code := 0
	go func() {
		<-g.started
		code = m.Run()
		close(g.done)
	}()
	if err := ebiten.RunGame(g); err != nil {
		panic(err)
	}
	os.Exit(code)
}

// mustAdd attaches a component or fails the test.
func mustAdd(t *testing.T, em *ecs.EntityManager, id ecs.EntityID, component any) {
	t.Helper()
	if err := em.AddComponent(id, component); err != nil {
		t.Fatalf("AddComponent failed: %v", err)
	}
}

// solidSprite builds a sprite over a freshly allocated solid-colored image.
func solidSprite(w, h int, fill color.Color) *graphics.Sprite {
	img := ebiten.NewImage(w, h)
	img.Fill(fill)
	return graphics.NewSpriteFromImage(img)
}

// sheetAnimation loads a 2-frame sprite sheet through a fresh resource
// manager and wraps it in an animation with the given frame durations.
func sheetAnimation(t *testing.T, durations ...float64) *graphics.Animation {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		img.Set(0, y, color.RGBA{R: 255, A: 255})
		img.Set(1, y, color.RGBA{R: 255, A: 255})
		img.Set(2, y, color.RGBA{G: 255, A: 255})
		img.Set(3, y, color.RGBA{G: 255, A: 255})
	}
	path := filepath.Join(t.TempDir(), "sheet.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	file.Close()

	m := resource.NewManager(testAudioContext)
	res, err := m.Acquire(path)
	if err != nil {
		t.Fatalf("Failed to load sheet: %v", err)
	}
	anim, err := graphics.NewAnimation(res, durations...)
	if err != nil {
		t.Fatalf("NewAnimation failed: %v", err)
	}
	return anim
}

func TestMovementSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	ms := NewMovementSystem(em)

	moving := em.CreateEntity()
	mustAdd(t, em, moving, &components.TransformComponent{X: 10, Y: 20})
	mustAdd(t, em, moving, &components.VelocityComponent{VX: 60, VY: -30})

	// An entity without a velocity stays put.
	still := em.CreateEntity()
	mustAdd(t, em, still, &components.TransformComponent{X: 5, Y: 5})

	ms.Update(0.5)

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, moving)
	if transform.X != 40 || transform.Y != 5 {
		t.Errorf("Moved transform: got (%v, %v), want (40, 5)", transform.X, transform.Y)
	}
	stillTransform, _ := ecs.GetComponent[*components.TransformComponent](em, still)
	if stillTransform.X != 5 || stillTransform.Y != 5 {
		t.Errorf("Velocity-less entity moved to (%v, %v)", stillTransform.X, stillTransform.Y)
	}
}

func TestLifetimeSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	ls := NewLifetimeSystem(em)

	shortLived := em.CreateEntity()
	mustAdd(t, em, shortLived, &components.LifetimeComponent{MaxLifetime: 1.0})
	longLived := em.CreateEntity()
	mustAdd(t, em, longLived, &components.LifetimeComponent{MaxLifetime: 10.0})

	ls.Update(0.6)
	if lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, shortLived); lifetime.IsExpired {
		t.Error("Entity expired before its lifetime ran out")
	}

	ls.Update(0.6)
	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, shortLived)
	if !lifetime.IsExpired {
		t.Error("Entity should have expired after 1.2s of a 1.0s lifetime")
	}

	// Destruction is deferred to the sweep.
	if !em.Alive(shortLived) {
		t.Error("Expired entity should stay alive until the sweep")
	}
	em.RemoveMarkedEntities()
	if em.Alive(shortLived) {
		t.Error("Expired entity should be gone after the sweep")
	}
	if !em.Alive(longLived) {
		t.Error("Entity with time left was destroyed")
	}
}

func TestAnimationSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	as := NewAnimationSystem(em)

	anim := sheetAnimation(t, 0.1, 0.1)
	id := em.CreateEntity()
	mustAdd(t, em, id, components.NewAnimationComponent(anim))

	as.Update(0.1)
	if anim.CurrentFrame() != 1 {
		t.Errorf("Frame after one duration: got %d, want 1", anim.CurrentFrame())
	}
	as.Update(0.1)
	if anim.CurrentFrame() != 0 {
		t.Errorf("Frame after wrap: got %d, want 0", anim.CurrentFrame())
	}
}

func TestRenderSystem_LayerOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em)

	// Red on the upper layer, green below it, both covering the same pixel.
	green := em.CreateEntity()
	mustAdd(t, em, green, &components.TransformComponent{})
	mustAdd(t, em, green, &components.SpriteComponent{Sprite: solidSprite(2, 2, color.RGBA{G: 255, A: 255}), Layer: 0, Visible: true})

	red := em.CreateEntity()
	mustAdd(t, em, red, &components.TransformComponent{})
	mustAdd(t, em, red, &components.SpriteComponent{Sprite: solidSprite(2, 2, color.RGBA{R: 255, A: 255}), Layer: 1, Visible: true})

	screen := ebiten.NewImage(2, 2)
	rs.Draw(screen)

	r, g, _, _ := screen.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 {
		t.Errorf("Top layer pixel: got r=%d g=%d, want red on top", r>>8, g>>8)
	}
}

func TestRenderSystem_SkipsInvisible(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em)

	hidden := em.CreateEntity()
	mustAdd(t, em, hidden, &components.TransformComponent{})
	sprite := components.NewSpriteComponent(solidSprite(2, 2, color.RGBA{R: 255, A: 255}))
	sprite.Visible = false
	mustAdd(t, em, hidden, sprite)

	screen := ebiten.NewImage(2, 2)
	rs.Draw(screen)

	_, _, _, a := screen.At(0, 0).RGBA()
	if a != 0 {
		t.Error("Invisible sprite was drawn")
	}
}

func TestRenderSystem_DrawsAnimationFrame(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em)

	// Frame 0 is red, frame 1 is green.
	anim := sheetAnimation(t, 0.1, 0.1)
	id := em.CreateEntity()
	mustAdd(t, em, id, &components.TransformComponent{})
	mustAdd(t, em, id, components.NewAnimationComponent(anim))

	screen := ebiten.NewImage(2, 2)
	rs.Draw(screen)
	r, _, _, _ := screen.At(0, 0).RGBA()
	if r>>8 != 255 {
		t.Errorf("Frame 0 pixel: got r=%d, want 255", r>>8)
	}

	anim.Update(0.1)
	screen2 := ebiten.NewImage(2, 2)
	rs.Draw(screen2)
	_, g, _, _ := screen2.At(0, 0).RGBA()
	if g>>8 != 255 {
		t.Errorf("Frame 1 pixel: got g=%d, want 255", g>>8)
	}
}

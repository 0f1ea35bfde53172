package resource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeManifest writes a resource manifest plus the asset files it refers
// to, and returns the manifest path.
func writeManifest(t *testing.T, dir string) string {
	t.Helper()

	createTestImage(t, filepath.Join(dir, "assets", "images", "hero.png"))
	createTestImage(t, filepath.Join(dir, "assets", "images", "logo.png"))
	createTestWAV(t, filepath.Join(dir, "assets", "sounds", "click.wav"))

	manifest := `version: "1.0"
base_path: ` + filepath.ToSlash(filepath.Join(dir, "assets")) + `
groups:
  init:
    images:
      - id: IMAGE_HERO
        path: images/hero
      - id: IMAGE_LOGO
        path: images/logo.png
    sounds:
      - id: SOUND_CLICK
        path: sounds/click.wav
    fonts:
      - id: FONT_MENU
        path: fonts/menu.ttf
`
	path := filepath.Join(dir, "resources.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

func TestLoadConfig_ResolvesIDs(t *testing.T) {
	dir := t.TempDir()
	manifest := writeManifest(t, dir)

	m := NewManager(testAudioContext)
	if err := m.LoadConfig(manifest); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Extension defaulting: images get .png when none is given.
	heroPath, err := m.ResolveID("IMAGE_HERO")
	if err != nil {
		t.Fatalf("ResolveID failed: %v", err)
	}
	if filepath.Ext(heroPath) != ".png" {
		t.Errorf("Image without extension should default to .png, got %s", heroPath)
	}

	// Explicit extensions pass through untouched.
	logoPath, err := m.ResolveID("IMAGE_LOGO")
	if err != nil {
		t.Fatalf("ResolveID failed: %v", err)
	}
	if filepath.Base(logoPath) != "logo.png" {
		t.Errorf("Explicit extension mangled: %s", logoPath)
	}

	if _, err := m.ResolveID("IMAGE_NONEXISTENT"); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Unknown ID: got %v, want ErrUnknownID", err)
	}
}

func TestResolveID_WithoutConfig(t *testing.T) {
	m := NewManager(testAudioContext)
	if _, err := m.ResolveID("IMAGE_HERO"); !errors.Is(err, ErrConfigNotLoaded) {
		t.Errorf("ResolveID without config: got %v, want ErrConfigNotLoaded", err)
	}
	if _, err := m.AcquireByID("IMAGE_HERO"); !errors.Is(err, ErrConfigNotLoaded) {
		t.Errorf("AcquireByID without config: got %v, want ErrConfigNotLoaded", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	m := NewManager(testAudioContext)
	if err := m.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig of a missing file should fail")
	}
}

func TestAcquireByID(t *testing.T) {
	dir := t.TempDir()
	manifest := writeManifest(t, dir)

	m := NewManager(testAudioContext)
	if err := m.LoadConfig(manifest); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	res, err := m.AcquireByID("IMAGE_HERO")
	if err != nil {
		t.Fatalf("AcquireByID failed: %v", err)
	}
	if res.Kind() != KindImage {
		t.Errorf("Kind: got %v, want KindImage", res.Kind())
	}

	// ID and direct path share the same cache slot.
	direct, err := m.Acquire(res.Path())
	if err != nil {
		t.Fatalf("Acquire by path failed: %v", err)
	}
	if direct != res {
		t.Error("ID-based and path-based acquisition returned different instances")
	}

	m.ReleaseByID("IMAGE_HERO")
	m.Release(res.Path())
	if got := m.RefCount(res.Path()); got != 0 {
		t.Errorf("RefCount after releases: got %d, want 0", got)
	}
}

func TestLoadGroup(t *testing.T) {
	dir := t.TempDir()
	manifest := writeManifest(t, dir)

	m := NewManager(testAudioContext)
	if err := m.LoadConfig(manifest); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if err := m.LoadGroup("init"); err != nil {
		t.Fatalf("LoadGroup failed: %v", err)
	}
	// Two images and one sound; fonts are skipped by group loading.
	if m.Len() != 3 {
		t.Errorf("Cache size after LoadGroup: got %d, want 3", m.Len())
	}

	m.ReleaseGroup("init")
	if purged := m.Purge(); purged != 3 {
		t.Errorf("Purge after ReleaseGroup evicted %d entries, want 3", purged)
	}
}

func TestLoadGroup_Unknown(t *testing.T) {
	dir := t.TempDir()
	manifest := writeManifest(t, dir)

	m := NewManager(testAudioContext)
	if err := m.LoadConfig(manifest); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if err := m.LoadGroup("no_such_group"); !errors.Is(err, ErrUnknownID) {
		t.Errorf("LoadGroup of unknown group: got %v, want ErrUnknownID", err)
	}
}

package resource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level resource manifest loaded from YAML.
// The manifest maps stable resource IDs to file paths so game code can refer
// to assets by ID instead of hard-coded paths.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type Config struct {
	Version  string           `yaml:"version"`   // Manifest file version
	BasePath string           `yaml:"base_path"` // Base path prepended to every resource path
	Groups   map[string]Group `yaml:"groups"`    // Resource groups keyed by group name
}

// Group is a collection of related resources that can be loaded together,
// e.g. everything a loading screen or a particular level needs.
type Group struct {
	Images []ImageEntry `yaml:"images"` // Image resources in this group
	Sounds []SoundEntry `yaml:"sounds"` // Sound resources in this group
	Fonts  []FontEntry  `yaml:"fonts"`  // Font resources in this group
}

// ImageEntry is a single image resource definition.
// Path is relative to the manifest's base_path; the .png extension is
// assumed when no extension is given.
type ImageEntry struct {
	ID   string `yaml:"id"`   // Unique resource ID (e.g. "IMAGE_HERO")
	Path string `yaml:"path"` // Relative file path from base_path
}

// SoundEntry is a single audio resource definition.
// The .ogg extension is assumed when no extension is given.
type SoundEntry struct {
	ID   string `yaml:"id"`   // Unique resource ID (e.g. "SOUND_BUTTONCLICK")
	Path string `yaml:"path"` // Relative file path from base_path
}

// FontEntry is a single font resource definition.
type FontEntry struct {
	ID   string `yaml:"id"`   // Unique resource ID (e.g. "FONT_MENU")
	Path string `yaml:"path"` // Relative file path from base_path
}

// LoadConfig loads the resource manifest from a YAML file. Call it once
// during engine startup, before using any of the *ByID methods.
func (m *Manager) LoadConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	m.config = &config
	m.buildResourceMap()
	return nil
}

// buildResourceMap constructs the resource ID -> full file path mapping.
// The mapping combines the base path with each resource's relative path, e.g.
//
//	IMAGE_HERO -> assets/images/hero.png
//	SOUND_BUTTONCLICK -> assets/sounds/buttonclick.ogg
func (m *Manager) buildResourceMap() {
	if m.config == nil {
		return
	}

	m.resourceMap = make(map[string]string)

	for _, group := range m.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(m.config.BasePath, img.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png" // Default to PNG for images
			}
			m.resourceMap[img.ID] = fullPath
		}

		for _, sound := range group.Sounds {
			fullPath := buildFullPath(m.config.BasePath, sound.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".ogg" // Default to OGG for sounds
			}
			m.resourceMap[sound.ID] = fullPath
		}

		for _, font := range group.Fonts {
			m.resourceMap[font.ID] = buildFullPath(m.config.BasePath, font.Path)
		}
	}
}

// ResolveID returns the full file path for a resource ID defined in the
// manifest.
func (m *Manager) ResolveID(resourceID string) (string, error) {
	if m.config == nil {
		return "", ErrConfigNotLoaded
	}
	path, exists := m.resourceMap[resourceID]
	if !exists {
		return "", fmt.Errorf("%s: %w", resourceID, ErrUnknownID)
	}
	return path, nil
}

// AcquireByID acquires a resource using its manifest ID instead of a path.
// Reference counting behaves exactly as with Acquire; release with
// ReleaseByID or with the resource's Path.
func (m *Manager) AcquireByID(resourceID string) (*Resource, error) {
	path, err := m.ResolveID(resourceID)
	if err != nil {
		return nil, err
	}
	return m.Acquire(path)
}

// ReleaseByID releases a resource previously acquired through AcquireByID.
func (m *Manager) ReleaseByID(resourceID string) {
	path, err := m.ResolveID(resourceID)
	if err != nil {
		return
	}
	m.Release(path)
}

// LoadImageByID loads an image resource using its manifest ID.
func (m *Manager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	path, err := m.ResolveID(resourceID)
	if err != nil {
		return nil, err
	}
	return m.LoadImage(path)
}

// LoadSoundByID loads an audio resource using its manifest ID.
func (m *Manager) LoadSoundByID(resourceID string) (*Resource, error) {
	path, err := m.ResolveID(resourceID)
	if err != nil {
		return nil, err
	}
	return m.LoadSound(path)
}

// LoadGroup loads every image and sound in the named manifest group.
// This is useful for batch-loading related resources up front, e.g. an
// "init" group at startup or a per-level group on scene entry.
//
// Fonts are not loaded here since they require a size; load them
// individually with LoadFont.
func (m *Manager) LoadGroup(groupName string) error {
	if m.config == nil {
		return ErrConfigNotLoaded
	}

	group, exists := m.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group %s: %w", groupName, ErrUnknownID)
	}

	for _, img := range group.Images {
		if _, err := m.LoadImageByID(img.ID); err != nil {
			return fmt.Errorf("failed to load image %s in group %s: %w", img.ID, groupName, err)
		}
	}
	for _, sound := range group.Sounds {
		if _, err := m.LoadSoundByID(sound.ID); err != nil {
			return fmt.Errorf("failed to load sound %s in group %s: %w", sound.ID, groupName, err)
		}
	}
	return nil
}

// ReleaseGroup releases one reference for every image and sound in the named
// group, balancing a previous LoadGroup. Unknown groups are ignored.
func (m *Manager) ReleaseGroup(groupName string) {
	if m.config == nil {
		return
	}
	group, exists := m.config.Groups[groupName]
	if !exists {
		return
	}
	for _, img := range group.Images {
		m.ReleaseByID(img.ID)
	}
	for _, sound := range group.Sounds {
		m.ReleaseByID(sound.ID)
	}
}

// buildFullPath combines the manifest base path with a resource's relative
// path.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}

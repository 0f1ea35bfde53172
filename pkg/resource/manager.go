package resource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Manager is responsible for centralized management of game assets.
// It provides loading, caching and reference counting for image and audio
// resources, ensuring that each distinct file is read from storage at most
// once and shared read-only among all consumers.
//
// Key features:
//   - Image loading and caching (PNG/JPEG via image decoders)
//   - Audio loading and caching (WAV/OGG/MP3, decoded to PCM once)
//   - Font face loading and caching (Ebitengine text/v2)
//   - Reference counting with deferred eviction (Release marks, Purge evicts)
//   - Optional YAML manifest mapping stable resource IDs to file paths
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go
// maps, which are not safe for concurrent access. The manager is designed to
// be driven from the single game loop goroutine. If you need background
// loading, synchronize access externally (e.g. sync.RWMutex) or pre-load all
// resources before starting concurrent work.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := resource.NewManager(audioContext)
//	res, err := rm.Acquire("assets/images/hero.png")
//	if err != nil {
//	    log.Printf("Failed to load resource: %v", err)
//	}
type Manager struct {
	entries      map[string]*cacheEntry      // Loaded resources: normalized path -> entry
	fontCache    map[string]*text.GoTextFace // Font faces keyed by "path:size"
	audioContext *audio.Context              // Global audio context used for PCM decoding

	// YAML resource manifest
	config      *Config           // Parsed manifest, nil until LoadConfig is called
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup
}

// cacheEntry pairs a loaded resource with its reference count.
type cacheEntry struct {
	res  *Resource
	refs int
}

// NewManager creates and initializes a new Manager with empty caches.
// The audioContext is required for decoding audio assets; it should be
// created once at startup (the conventional sample rate is 48000 Hz).
func NewManager(audioContext *audio.Context) *Manager {
	return &Manager{
		entries:      make(map[string]*cacheEntry),
		fontCache:    make(map[string]*text.GoTextFace),
		audioContext: audioContext,
		resourceMap:  make(map[string]string),
	}
}

// AudioContext returns the audio context the manager decodes with.
// Audio wrappers need it to build players over cached PCM data.
func (m *Manager) AudioContext() *audio.Context {
	return m.audioContext
}

// Acquire returns the resource for the given path, loading it from storage
// on first use and bumping its reference count on every call. Two Acquire
// calls with the same identifier return the same *Resource instance and
// perform exactly one disk read.
//
// Every successful Acquire must be balanced by a Release with the same
// identifier once the consumer is done with the resource.
//
// Errors:
//   - ErrNotFound if the file does not exist
//   - ErrUnsupportedFormat if the extension maps to no known asset kind
//   - ErrLoadFailed if the file exists but cannot be decoded
//
// A failed load leaves the cache unchanged: no partial entry is inserted.
func (m *Manager) Acquire(path string) (*Resource, error) {
	key := normalize(path)

	if entry, exists := m.entries[key]; exists {
		entry.refs++
		return entry.res, nil
	}

	res, err := m.load(key)
	if err != nil {
		return nil, err
	}

	m.entries[key] = &cacheEntry{res: res, refs: 1}
	return res, nil
}

// Release decrements the reference count for the given identifier.
// When the count reaches zero the resource becomes eligible for eviction;
// actual eviction is deferred until Purge is called, so a re-Acquire before
// the next Purge is still a cache hit.
//
// Releasing an identifier that is not cached, or whose count is already
// zero, is logged and otherwise ignored.
func (m *Manager) Release(path string) {
	key := normalize(path)

	entry, exists := m.entries[key]
	if !exists {
		log.Printf("[Resource] Release of uncached resource: %s", key)
		return
	}
	if entry.refs == 0 {
		log.Printf("[Resource] Unbalanced release for %s", key)
		return
	}
	entry.refs--
}

// Purge evicts every cached resource whose reference count is zero and
// returns the number of evicted entries. Call it at scene transitions or at
// engine shutdown; between Purges unreferenced resources stay cached.
func (m *Manager) Purge() int {
	purged := 0
	for key, entry := range m.entries {
		if entry.refs == 0 {
			delete(m.entries, key)
			purged++
		}
	}
	if purged > 0 {
		log.Printf("[Resource] Purged %d unreferenced resources", purged)
	}
	return purged
}

// RefCount returns the current reference count for an identifier, or 0 if it
// is not cached. Mainly useful for diagnostics and tests.
func (m *Manager) RefCount(path string) int {
	if entry, exists := m.entries[normalize(path)]; exists {
		return entry.refs
	}
	return 0
}

// Len returns the number of resources currently held in the cache,
// including unreferenced entries not yet purged.
func (m *Manager) Len() int {
	return len(m.entries)
}

// LoadImage acquires the resource at path and returns its decoded image.
// It is a typed convenience over Acquire: the reference count is bumped the
// same way and must be balanced with Release.
//
// Returns ErrUnsupportedFormat if the path resolves to a non-image resource.
func (m *Manager) LoadImage(path string) (*ebiten.Image, error) {
	res, err := m.Acquire(path)
	if err != nil {
		return nil, err
	}
	if res.Kind() != KindImage {
		m.Release(path)
		return nil, fmt.Errorf("%s is %s, not an image: %w", path, res.Kind(), ErrUnsupportedFormat)
	}
	return res.Image(), nil
}

// GetImage retrieves a previously loaded image from the cache without
// touching the reference count. It returns nil if the path has not been
// loaded; use LoadImage or Acquire first.
func (m *Manager) GetImage(path string) *ebiten.Image {
	if entry, exists := m.entries[normalize(path)]; exists && entry.res.Kind() == KindImage {
		return entry.res.Image()
	}
	return nil
}

// LoadSound acquires the resource at path and returns it as an audio
// resource, decoding the file to PCM on first use. The reference count is
// bumped the same way as Acquire and must be balanced with Release.
//
// Returns ErrUnsupportedFormat if the path resolves to a non-audio resource.
func (m *Manager) LoadSound(path string) (*Resource, error) {
	res, err := m.Acquire(path)
	if err != nil {
		return nil, err
	}
	if res.Kind() != KindAudio {
		m.Release(path)
		return nil, fmt.Errorf("%s is %s, not audio: %w", path, res.Kind(), ErrUnsupportedFormat)
	}
	return res, nil
}

// GetSound retrieves a previously loaded audio resource from the cache
// without touching the reference count. It returns nil if the path has not
// been loaded; use LoadSound or Acquire first.
func (m *Manager) GetSound(path string) *Resource {
	if entry, exists := m.entries[normalize(path)]; exists && entry.res.Kind() == KindAudio {
		return entry.res
	}
	return nil
}

// LoadFont loads a TrueType/OpenType font from the given path and returns a
// text face with the requested size. Faces are cached under a key combining
// path and size; fonts are not reference counted since a face is tiny
// compared to decoded assets and games keep them for their whole lifetime.
//
// Supported formats: .ttf, .otf; anything else fails with
// ErrUnsupportedFormat.
func (m *Manager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
	default:
		return nil, fmt.Errorf("font file %s: %w", path, ErrUnsupportedFormat)
	}

	cacheKey := fontKey(path, size)

	if cachedFace, exists := m.fontCache[cacheKey]; exists {
		return cachedFace, nil
	}

	fontData, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("font file %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w: %v", path, ErrLoadFailed, err)
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	m.fontCache[cacheKey] = face
	return face, nil
}

// GetFont retrieves a previously loaded font face from the cache, or nil if
// the path/size pair has not been loaded yet.
func (m *Manager) GetFont(path string, size float64) *text.GoTextFace {
	return m.fontCache[fontKey(path, size)]
}

// load reads and decodes the file at key. The caller has already verified
// that the key is not cached.
func (m *Manager) load(key string) (*Resource, error) {
	kind, err := kindForPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer file.Close()

	switch kind {
	case KindImage:
		return m.loadImageFile(key, file)
	case KindAudio:
		return m.loadAudioFile(key, file)
	default:
		return nil, fmt.Errorf("%s: %w", key, ErrUnsupportedFormat)
	}
}

// loadImageFile decodes an image file into an Ebitengine image.
func (m *Manager) loadImageFile(key string, file *os.File) (*Resource, error) {
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w: %v", key, ErrLoadFailed, err)
	}
	return &Resource{
		path:  key,
		kind:  KindImage,
		image: ebiten.NewImageFromImage(img),
	}, nil
}

// loadAudioFile decodes an audio file fully into PCM at the audio context's
// sample rate. Reading everything up front keeps the cached data seekable
// and lets multiple players share one decode.
func (m *Manager) loadAudioFile(key string, file *os.File) (*Resource, error) {
	// Read the entire file into memory so the decoder can seek without
	// keeping the file handle open.
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", key, err)
	}
	reader := bytes.NewReader(data)

	var stream io.Reader
	switch strings.ToLower(filepath.Ext(key)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(m.audioContext.SampleRate(), reader)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(m.audioContext.SampleRate(), reader)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(m.audioContext.SampleRate(), reader)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio %s: %w: %v", key, ErrLoadFailed, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio %s: %w: %v", key, ErrLoadFailed, err)
	}

	return &Resource{
		path: key,
		kind: KindAudio,
		pcm:  pcm,
	}, nil
}

// kindForPath infers the asset kind from the file extension.
func kindForPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return KindImage, nil
	case ".wav", ".ogg", ".mp3":
		return KindAudio, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// normalize cleans a path so that equivalent spellings share one cache slot.
func normalize(path string) string {
	return filepath.Clean(path)
}

// fontKey builds the font cache key from path and size.
func fontKey(path string, size float64) string {
	return fmt.Sprintf("%s:%.1f", path, size)
}

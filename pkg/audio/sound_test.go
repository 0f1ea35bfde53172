package audio

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/gamekit/pkg/resource"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Shared audio context; Ebitengine allows only one per process.
var testAudioContext *eaudio.Context

func TestMain(m *testing.M) {
	testAudioContext = eaudio.NewContext(48000)
	os.Exit(m.Run())
}

// soundResource loads a short generated WAV through a fresh manager.
func soundResource(t *testing.T) *resource.Resource {
	t.Helper()
	path := filepath.Join(t.TempDir(), "click.wav")
	writeTestWAV(t, path)

	m := resource.NewManager(testAudioContext)
	res, err := m.LoadSound(path)
	if err != nil {
		t.Fatalf("Failed to load test WAV: %v", err)
	}
	return res
}

// pictureResource loads a tiny generated PNG through a fresh manager.
func pictureResource(t *testing.T) *resource.Resource {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "pixel.png")

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
		t.Fatalf("Failed to load test image: %v", err)
	}
	return res
}

// writeTestWAV writes a short silent 16-bit stereo WAV at 48000 Hz.
func writeTestWAV(t *testing.T, path string) {
	t.Helper()
	const dataSize = 480 * 4
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

	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
}

func appendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendUint16(b []byte, v uint16) []byte {
	return append(b, byte(v), byte(v>>8))
}

func TestNewSound(t *testing.T) {
	sound, err := NewSound(testAudioContext, soundResource(t))
	if err != nil {
		t.Fatalf("NewSound failed: %v", err)
	}
	if sound.Volume() != 1.0 {
		t.Errorf("Initial volume: got %v, want 1.0", sound.Volume())
	}
	if sound.IsPlaying() {
		t.Error("Fresh sound should not be playing")
	}
}

func TestNewSound_WrongKind(t *testing.T) {
	_, err := NewSound(testAudioContext, pictureResource(t))
	if !errors.Is(err, resource.ErrUnsupportedFormat) {
		t.Errorf("Sound over image: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestSound_SetVolumeClamps(t *testing.T) {
	sound, err := NewSound(testAudioContext, soundResource(t))
	if err != nil {
		t.Fatal(err)
	}

	sound.SetVolume(0.5)
	if sound.Volume() != 0.5 {
		t.Errorf("Volume: got %v, want 0.5", sound.Volume())
	}
	sound.SetVolume(2.0)
	if sound.Volume() != 1.0 {
		t.Errorf("Volume should clamp to 1.0, got %v", sound.Volume())
	}
	sound.SetVolume(-1.0)
	if sound.Volume() != 0.0 {
		t.Errorf("Volume should clamp to 0.0, got %v", sound.Volume())
	}
}

func TestNewMusic(t *testing.T) {
	music, err := NewMusic(testAudioContext, soundResource(t))
	if err != nil {
		t.Fatalf("NewMusic failed: %v", err)
	}
	if music.Volume() != 1.0 {
		t.Errorf("Initial volume: got %v, want 1.0", music.Volume())
	}
	if music.IsPlaying() {
		t.Error("Fresh music should not be playing")
	}
}

func TestNewMusic_WrongKind(t *testing.T) {
	_, err := NewMusic(testAudioContext, pictureResource(t))
	if !errors.Is(err, resource.ErrUnsupportedFormat) {
		t.Errorf("Music over image: got %v, want ErrUnsupportedFormat", err)
	}
}

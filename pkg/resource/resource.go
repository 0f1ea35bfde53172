package resource

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Kind identifies what category of asset a Resource holds.
type Kind int

const (
	// KindImage is a decoded raster image (PNG/JPEG).
	KindImage Kind = iota
	// KindAudio is a decoded audio clip (WAV/OGG/MP3), held as raw PCM.
	KindAudio
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Resource is a loaded, decoded asset owned by the Manager.
// It is shared read-only between all wrappers referencing it; wrappers must
// not mutate the underlying image or PCM data. A Resource stays valid until
// its reference count reaches zero and the Manager purges it.
type Resource struct {
	path string
	kind Kind

	// Exactly one of the following is populated, depending on kind.
	image *ebiten.Image
	pcm   []byte // 16-bit little-endian stereo PCM at the audio context's sample rate
}

// Path returns the normalized identifier this resource was loaded from.
func (r *Resource) Path() string {
	return r.path
}

// Kind returns the resource's asset category.
func (r *Resource) Kind() Kind {
	return r.kind
}

// Image returns the decoded image, or nil if this is not an image resource.
func (r *Resource) Image() *ebiten.Image {
	return r.image
}

// PCM returns the decoded audio samples, or nil if this is not an audio
// resource. The returned slice is shared; callers must treat it as read-only.
func (r *Resource) PCM() []byte {
	return r.pcm
}

package graphics

import (
	"image/color"
	"testing"
)

func TestNewAnimation(t *testing.T) {
	res := imageResource(t, 8, 2, color.RGBA{R: 255, A: 255})

	anim, err := NewAnimation(res, 0.1, 0.1, 0.1, 0.1)
	if err != nil {
		t.Fatalf("NewAnimation failed: %v", err)
	}
	if anim.FrameCount() != 4 {
		t.Errorf("FrameCount: got %d, want 4", anim.FrameCount())
	}
	// The sprite surface reflects one frame, not the whole sheet.
	if anim.Width() != 2 || anim.Height() != 2 {
		t.Errorf("Frame size: got %vx%v, want 2x2", anim.Width(), anim.Height())
	}
}

func TestNewAnimation_NoDurations(t *testing.T) {
	res := imageResource(t, 8, 2, color.RGBA{R: 255, A: 255})
	if _, err := NewAnimation(res); err == nil {
		t.Error("NewAnimation without durations should fail")
	}
}

func TestNewAnimation_NonPositiveDuration(t *testing.T) {
	res := imageResource(t, 8, 2, color.RGBA{R: 255, A: 255})
	if _, err := NewAnimation(res, 0.1, 0, 0.1, 0.1); err == nil {
		t.Error("NewAnimation with a zero duration should fail")
	}
	if _, err := NewAnimation(res, 0.1, -0.5, 0.1, 0.1); err == nil {
		t.Error("NewAnimation with a negative duration should fail")
	}
}

func TestNewAnimation_IndivisibleSheet(t *testing.T) {
	res := imageResource(t, 8, 2, color.RGBA{R: 255, A: 255})
	if _, err := NewAnimation(res, 0.1, 0.1, 0.1); err == nil {
		t.Error("NewAnimation with a sheet width not divisible into frames should fail")
	}
}

func TestAnimation_Advance(t *testing.T) {
	res := imageResource(t, 8, 2, color.RGBA{R: 255, A: 255})
	anim, err := NewAnimation(res, 0.1, 0.2, 0.1, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	if anim.CurrentFrame() != 0 {
		t.Errorf("Initial frame: got %d, want 0", anim.CurrentFrame())
	}

	anim.Update(0.05)
	if anim.CurrentFrame() != 0 {
		t.Errorf("Frame after 0.05s: got %d, want 0", anim.CurrentFrame())
	}

	anim.Update(0.05)
	if anim.CurrentFrame() != 1 {
		t.Errorf("Frame after 0.10s: got %d, want 1", anim.CurrentFrame())
	}

	// Frame 1 lasts 0.2s.
	anim.Update(0.1)
	if anim.CurrentFrame() != 1 {
		t.Errorf("Frame after 0.20s: got %d, want 1", anim.CurrentFrame())
	}
	anim.Update(0.1)
	if anim.CurrentFrame() != 2 {
		t.Errorf("Frame after 0.30s: got %d, want 2", anim.CurrentFrame())
	}

	// A large step crosses several frames and wraps around.
	anim.Update(0.25)
	if anim.CurrentFrame() != 0 {
		t.Errorf("Frame after wrap: got %d, want 0", anim.CurrentFrame())
	}
}

func TestAnimation_Backwards(t *testing.T) {
	res := imageResource(t, 8, 2, color.RGBA{R: 255, A: 255})
	anim, err := NewAnimation(res, 0.1, 0.1, 0.1, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	anim.SetPlayingBackwards(true)
	anim.Update(0.1)
	if anim.CurrentFrame() != 3 {
		t.Errorf("Backwards from frame 0: got %d, want 3", anim.CurrentFrame())
	}
	anim.Update(0.1)
	if anim.CurrentFrame() != 2 {
		t.Errorf("Backwards step: got %d, want 2", anim.CurrentFrame())
	}
}

func TestAnimation_PauseResume(t *testing.T) {
	res := imageResource(t, 8, 2, color.RGBA{R: 255, A: 255})
	anim, err := NewAnimation(res, 0.1, 0.1, 0.1, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	anim.Pause()
	if !anim.IsPaused() {
		t.Error("IsPaused should report true after Pause")
	}
	anim.Update(1.0)
	if anim.CurrentFrame() != 0 {
		t.Errorf("Paused animation advanced to frame %d", anim.CurrentFrame())
	}

	anim.Resume()
	anim.Update(0.1)
	if anim.CurrentFrame() != 1 {
		t.Errorf("Resumed animation should advance, got frame %d", anim.CurrentFrame())
	}
}

func TestAnimation_HoldAtFrame(t *testing.T) {
	res := imageResource(t, 8, 2, color.RGBA{R: 255, A: 255})
	anim, err := NewAnimation(res, 0.1, 0.1, 0.1, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	anim.HoldAtFrame(2)
	anim.Update(1.0) // would normally wrap several times
	if anim.CurrentFrame() != 2 {
		t.Errorf("Hold frame: got %d, want 2", anim.CurrentFrame())
	}
	if !anim.IsPaused() {
		t.Error("Animation should pause on the held frame")
	}

	// The hold is one-shot: resuming plays on past the frame.
	anim.Resume()
	anim.Update(0.1)
	if anim.CurrentFrame() != 3 {
		t.Errorf("After resume: got %d, want 3", anim.CurrentFrame())
	}
}

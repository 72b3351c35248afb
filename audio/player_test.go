package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// attach starts p against a capturing output instead of the speaker
func attach(p *Player, clock *time.Time) *[]beep.Streamer {
	var queued []beep.Streamer
	p.output = func(s beep.Streamer) { queued = append(queued, s) }
	p.now = func() time.Time { return *clock }
	return &queued
}

func TestPlayer_DropsCuesUntilStarted(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	if p.PlayBump() {
		t.Error("Expected cue dropped before Start")
	}
	if p.Played() != 0 {
		t.Errorf("Expected 0 played, got %d", p.Played())
	}
	// Stop on a stopped player is a no-op
	p.Stop()
}

func TestPlayer_BumpGap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BumpGap = 100 * time.Millisecond
	p := NewPlayer(cfg)

	now := time.Unix(0, 0)
	queued := attach(p, &now)

	if !p.PlayBump() {
		t.Fatal("Expected first cue queued")
	}
	now = now.Add(50 * time.Millisecond)
	if p.PlayBump() {
		t.Error("Expected cue inside the gap to be skipped")
	}
	now = now.Add(60 * time.Millisecond)
	if !p.PlayBump() {
		t.Error("Expected cue after the gap to be queued")
	}

	if len(*queued) != 2 || p.Played() != 2 {
		t.Errorf("Expected 2 queued cues, got %d (played %d)", len(*queued), p.Played())
	}
}

func TestPlayer_Muted(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	now := time.Unix(0, 0)
	queued := attach(p, &now)

	p.SetMuted(true)
	if p.PlayBump() {
		t.Error("Expected muted player to drop cues")
	}
	p.SetMuted(false)
	if !p.PlayBump() {
		t.Error("Expected unmuted player to queue cues")
	}
	if len(*queued) != 1 {
		t.Errorf("Expected 1 queued cue, got %d", len(*queued))
	}
}

package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rotisserie/eris"

	"github.com/lixenwraith/grove/constant"
)

// Player queues sound cues onto the speaker through a shared mixer.
// Until Start succeeds every cue is dropped, so the game runs silently without audio hardware.
type Player struct {
	mu    sync.Mutex
	cfg   Config
	mixer *beep.Mixer

	output   func(beep.Streamer) // nil until started
	now      func() time.Time
	muted    bool
	lastBump time.Time
	played   int
}

// NewPlayer creates a stopped player
func NewPlayer(cfg Config) *Player {
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Start initializes the speaker and begins streaming the mixer
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.output != nil {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constant.AudioBufferDuration)); err != nil {
		return eris.Wrap(err, "init speaker")
	}
	speaker.Play(p.mixer)

	p.output = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	log.Printf("audio: speaker started at %d Hz", p.cfg.SampleRate)
	return nil
}

// Stop drops queued sounds and stops accepting cues
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.output == nil {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.output = nil
}

// SetMuted toggles cue suppression without touching the speaker
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// PlayBump queues the collision cue and reports whether it was queued.
// Cues closer than BumpGap to the previous one are skipped.
func (p *Player) PlayBump() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.output == nil || p.muted {
		return false
	}
	now := p.now()
	if p.played > 0 && now.Sub(p.lastBump) < p.cfg.BumpGap {
		return false
	}

	p.output(BumpSound(p.cfg))
	p.lastBump = now
	p.played++
	return true
}

// Played returns the number of cues queued so far
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

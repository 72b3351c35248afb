package audio

import (
	"time"

	"github.com/lixenwraith/grove/constant"
)

// Config holds sound generation parameters
type Config struct {
	SampleRate int
	Volume     float64 // Master volume in [0, 1]

	BumpFrequency float64
	BumpDuration  time.Duration
	BumpAttack    time.Duration
	BumpRelease   time.Duration
	BumpGap       time.Duration // Minimum spacing between bump cues
}

// DefaultConfig returns the built-in audio settings
func DefaultConfig() Config {
	return Config{
		SampleRate:    constant.AudioSampleRate,
		Volume:        constant.AudioVolume,
		BumpFrequency: constant.BumpSoundFrequency,
		BumpDuration:  constant.BumpSoundDuration,
		BumpAttack:    constant.BumpSoundAttack,
		BumpRelease:   constant.BumpSoundRelease,
		BumpGap:       constant.BumpSoundGap,
	}
}

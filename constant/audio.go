package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Bump Sound
const (
	BumpSoundFrequency = 110.0
	BumpSoundDuration  = 60 * time.Millisecond
	BumpSoundAttack    = 5 * time.Millisecond
	BumpSoundRelease   = 30 * time.Millisecond

	// BumpSoundGap suppresses repeated bumps while the player leans into a tree
	BumpSoundGap = 120 * time.Millisecond
)

// AudioVolume is the master volume in [0, 1]
const AudioVolume = 0.5

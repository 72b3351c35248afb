package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"

	"github.com/lixenwraith/grove/audio"
	"github.com/lixenwraith/grove/constant"
)

var (
	ErrInvalidConfig = eris.New("config: invalid value")
)

// Config is the full runtime configuration.
// Files only need the keys they change; everything else keeps its default.
type Config struct {
	Board  BoardConfig  `toml:"board"`
	Player PlayerConfig `toml:"player"`
	Loop   LoopConfig   `toml:"loop"`
	Audio  AudioConfig  `toml:"audio"`
}

type BoardConfig struct {
	Size  int   `toml:"size"`
	Trees int   `toml:"trees"`
	Seed  int64 `toml:"seed"`
}

type PlayerConfig struct {
	Speed   float64       `toml:"speed"`
	KeyHold time.Duration `toml:"key_hold"`
}

type LoopConfig struct {
	FrameInterval time.Duration `toml:"frame_interval"`
	MaxDelta      time.Duration `toml:"max_delta"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size:  constant.MatrixSize,
			Trees: constant.TreeCount,
			Seed:  constant.DefaultSeed,
		},
		Player: PlayerConfig{
			Speed:   constant.PlayerSpeed,
			KeyHold: constant.KeyHoldWindow,
		},
		Loop: LoopConfig{
			FrameInterval: constant.FrameUpdateInterval,
			MaxDelta:      constant.MaxFrameDelta,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  constant.AudioVolume,
		},
	}
}

// Load reads a TOML file over the defaults and validates the result
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, eris.Wrapf(err, "load config %s", path)
	}
	log.Printf("config: loaded %s", path)
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result.
// Unknown keys are logged and ignored.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, eris.Wrap(err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.Printf("config: ignoring unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with
func (c Config) Validate() error {
	switch {
	case c.Board.Size <= 0:
		return eris.Wrapf(ErrInvalidConfig, "board.size must be positive, got %d", c.Board.Size)
	case c.Board.Trees < 0:
		return eris.Wrapf(ErrInvalidConfig, "board.trees must not be negative, got %d", c.Board.Trees)
	case c.Board.Trees > c.Board.Size*c.Board.Size-1:
		// One cell is reserved for the player
		return eris.Wrapf(ErrInvalidConfig, "board.trees %d exceeds free cells %d", c.Board.Trees, c.Board.Size*c.Board.Size-1)
	case c.Player.Speed <= 0:
		return eris.Wrapf(ErrInvalidConfig, "player.speed must be positive, got %v", c.Player.Speed)
	case c.Player.KeyHold <= 0:
		return eris.Wrapf(ErrInvalidConfig, "player.key_hold must be positive, got %v", c.Player.KeyHold)
	case c.Loop.FrameInterval <= 0:
		return eris.Wrapf(ErrInvalidConfig, "loop.frame_interval must be positive, got %v", c.Loop.FrameInterval)
	case c.Loop.MaxDelta <= 0:
		return eris.Wrapf(ErrInvalidConfig, "loop.max_delta must be positive, got %v", c.Loop.MaxDelta)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return eris.Wrapf(ErrInvalidConfig, "audio.volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	return nil
}

// AudioSettings derives the sound generation parameters
func (c Config) AudioSettings() audio.Config {
	cfg := audio.DefaultConfig()
	cfg.Volume = c.Audio.Volume
	return cfg
}

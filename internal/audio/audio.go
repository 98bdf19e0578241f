// Package audio plays the game's short synthesized sound cues.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/samdwyer/noxistown/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a named sound effect.
type Cue int

const (
	CueDoor   Cue = iota // Entering or leaving a building
	CueCoin              // Buying an upgrade
	CueBlip              // Dialog page
	CueDenied            // Cannot afford
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueDoor:
		return "door"
	case CueCoin:
		return "coin"
	case CueBlip:
		return "blip"
	case CueDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Streamer synthesizes the cue at the given volume.
func (c Cue) Streamer(rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueDoor:
		d := 250 * time.Millisecond
		s = newEnvelope(newOscillator(0, d, WaveNoise, rate), d, 60*time.Millisecond, 150*time.Millisecond, rate)
		vol *= 0.4
	case CueCoin:
		s = beep.Seq(
			tone(988, 80*time.Millisecond, WaveSquare, rate),
			tone(1319, 160*time.Millisecond, WaveSquare, rate),
		)
		vol *= 0.5
	case CueBlip:
		s = tone(660, 30*time.Millisecond, WaveSine, rate)
	case CueDenied:
		s = tone(110, 150*time.Millisecond, WaveSaw, rate)
		vol *= 0.6
	default:
		s = beep.Silence(0)
	}
	return withVolume(s, vol)
}

// Player plays cues.
type Player interface {
	Play(c Cue)
	Close() error
}

// Nop is a Player that makes no sound.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Close does nothing.
func (Nop) Close() error { return nil }

// Speaker plays cues on the default output device.
type Speaker struct {
	volume float64
}

// NewSpeaker opens the audio device. If audio is disabled or the device
// cannot be opened it logs and returns Nop; the game runs silently.
func NewSpeaker(cfg config.Config, log *zap.Logger) Player {
	if !cfg.AudioEnabled {
		return Nop{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		log.Warn("audio unavailable, running silent", zap.Error(err))
		return Nop{}
	}
	log.Debug("audio initialized", zap.Int("sample_rate", int(sampleRate)), zap.Float64("volume", cfg.AudioVolume))
	return &Speaker{volume: cfg.AudioVolume}
}

// Play starts a cue without waiting for it to finish.
func (s *Speaker) Play(c Cue) {
	speaker.Play(c.Streamer(sampleRate, s.volume))
}

// Close stops playback and releases the device.
func (s *Speaker) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

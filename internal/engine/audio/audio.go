// Package audio plays the looping fire ambience, attenuated by the
// listener's distance to the fire.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playback is requested before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager handles the ambience loop.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate

	// Ambience
	loopStreamer beep.StreamSeekCloser
	loopCtrl     *beep.Ctrl
	loopVolume   *effects.Volume
	loopName     string

	// Falloff
	referenceDistance float64
	maxDistance       float64
	gain              float64

	masterVolume float64
	muted        bool
}

// New creates a new audio manager. The ambience is at full volume inside
// reference and silent at max distance.
func New(reference, max float64) *Manager {
	if reference <= 0 {
		reference = 1
	}
	if max <= reference {
		max = reference * 10
	}
	return &Manager{
		referenceDistance: reference,
		maxDistance:       max,
		gain:              1,
		masterVolume:      1,
	}
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopInternal()
	if m.initialized {
		speaker.Close()
	}
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateVolume()
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// SetMuted mutes or unmutes all output.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.updateVolume()
}

// ToggleMute flips the mute flag and returns the new value.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	m.updateVolume()
	logger.Info("audio mute toggled", zap.Bool("muted", m.muted))
	return m.muted
}

// Muted reports the mute flag.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// SetListenerDistance updates the falloff from the listener's distance to
// the fire.
func (m *Manager) SetListenerDistance(d float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gain = DistanceGain(d, m.referenceDistance, m.maxDistance)
	m.updateVolume()
}

// Volume returns the effective 0-1 output volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.effectiveVolume()
}

func (m *Manager) effectiveVolume() float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume * m.gain
}

func (m *Manager) updateVolume() {
	if m.loopVolume == nil {
		return
	}
	vol := m.effectiveVolume()

	speaker.Lock()
	defer speaker.Unlock()
	if vol <= 0 {
		m.loopVolume.Silent = true
	} else {
		m.loopVolume.Silent = false
		m.loopVolume.Volume = volumeExponent(vol)
	}
}

// DistanceGain is 1 up to reference, falls off as reference/d and fades
// linearly to 0 at max.
func DistanceGain(d, reference, max float64) float64 {
	if d <= reference {
		return 1
	}
	if d >= max {
		return 0
	}
	return (reference / d) * (max - d) / (max - reference)
}

// volumeExponent converts a 0-1 volume to the exponent effects.Volume
// expects with Base 2: amplitude = 2^exp.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// PlayLoop decodes WAV data and loops it until Stop or Close.
func (m *Manager) PlayLoop(data []byte, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	m.stopInternal()

	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}

	looped := &loopStreamer{streamer: streamer}
	var out beep.Streamer = looped
	if format.SampleRate != m.sampleRate {
		out = beep.Resample(4, format.SampleRate, m.sampleRate, looped)
	}

	m.loopCtrl = &beep.Ctrl{Streamer: out}
	m.loopVolume = &effects.Volume{
		Streamer: m.loopCtrl,
		Base:     2,
	}
	m.loopStreamer = streamer
	m.loopName = name
	m.updateVolume()

	speaker.Play(m.loopVolume)

	logger.Info("ambience playing",
		zap.String("name", name),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Duration("length", format.SampleRate.D(streamer.Len())))
	return nil
}

// Stop stops the ambience.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopInternal()
}

func (m *Manager) stopInternal() {
	if m.loopCtrl == nil {
		return
	}
	speaker.Clear()
	if err := m.loopStreamer.Close(); err != nil {
		logger.Warn("close ambience", zap.Error(err))
	}
	m.loopStreamer = nil
	m.loopCtrl = nil
	m.loopVolume = nil
	m.loopName = ""
}

// Playing returns the name of the current loop, or "".
func (m *Manager) Playing() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loopName
}

// loopStreamer rewinds its source when it runs out.
type loopStreamer struct {
	streamer beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.streamer.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			if l.streamer.Len() == 0 {
				return filled, filled > 0
			}
			// Reset to beginning
			if err := l.streamer.Seek(0); err != nil {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}

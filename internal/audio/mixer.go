package audio

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/ayusman/poseplay/internal/game"
)

// DefaultSampleRate is the speaker output rate.
const DefaultSampleRate beep.SampleRate = 44100

// output is the playback device.
type output interface {
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Clear()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }
func (speakerOutput) Clear()                  { speaker.Clear() }
func (speakerOutput) Close()                  { speaker.Close() }

// Mixer implements game.Mixer on top of the beep speaker.
type Mixer struct {
	rate   beep.SampleRate
	out    output
	music  *beep.Ctrl
	logger *log.Logger
}

// NewMixer initialises the speaker at rate with a 100ms buffer.
func NewMixer(rate beep.SampleRate, logger *log.Logger) (*Mixer, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return newMixer(rate, speakerOutput{}, logger), nil
}

func newMixer(rate beep.SampleRate, out output, logger *log.Logger) *Mixer {
	if logger == nil {
		logger = log.Default()
	}
	return &Mixer{rate: rate, out: out, logger: logger}
}

// Loop replaces the background music with s, repeating forever.
func (m *Mixer) Loop(s game.Sound) {
	clip, ok := m.clip(s)
	if !ok {
		return
	}

	m.out.Lock()
	if m.music != nil {
		m.music.Streamer = nil
	}
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, clip.streamer())}
	m.music = ctrl
	m.out.Unlock()

	m.out.Play(m.resample(clip, ctrl))
}

// Stop ends the background music.
func (m *Mixer) Stop() {
	m.out.Lock()
	defer m.out.Unlock()

	if m.music != nil {
		m.music.Streamer = nil
		m.music = nil
	}
}

// Play plays s once on top of whatever is already playing.
func (m *Mixer) Play(s game.Sound) {
	clip, ok := m.clip(s)
	if !ok {
		return
	}
	m.out.Play(m.resample(clip, clip.streamer()))
}

// Playing reports whether background music is active.
func (m *Mixer) Playing() bool {
	m.out.Lock()
	defer m.out.Unlock()
	return m.music != nil
}

// Close silences and releases the speaker.
func (m *Mixer) Close() error {
	m.Stop()
	m.out.Clear()
	m.out.Close()
	return nil
}

func (m *Mixer) clip(s game.Sound) (*Clip, bool) {
	clip, ok := s.(*Clip)
	if !ok || clip == nil {
		m.logger.Warn("unplayable sound", "sound", s)
		return nil, false
	}
	return clip, true
}

func (m *Mixer) resample(clip *Clip, s beep.Streamer) beep.Streamer {
	if clip.Format().SampleRate == m.rate {
		return s
	}
	return beep.Resample(4, clip.Format().SampleRate, m.rate, s)
}

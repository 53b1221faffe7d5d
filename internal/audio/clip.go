// Package audio plays game music and effects through the system speaker.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupportedFormat is returned for files that are neither MP3 nor WAV.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Clip is a fully decoded sound held in memory.
type Clip struct {
	name string
	buf  *beep.Buffer
}

// LoadClip decodes an .mp3 or .wav file into memory.
func LoadClip(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &Clip{name: filepath.Base(path), buf: buf}, nil
}

// Name returns the file name the clip was loaded from.
func (c *Clip) Name() string { return c.name }

// Format returns the clip's sample format.
func (c *Clip) Format() beep.Format { return c.buf.Format() }

// Len returns the clip length in samples.
func (c *Clip) Len() int { return c.buf.Len() }

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}

// streamer returns a fresh reader over the whole clip.
func (c *Clip) streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

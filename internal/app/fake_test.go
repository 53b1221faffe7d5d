package app

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/ayusman/poseplay/internal/capture"
	"github.com/ayusman/poseplay/internal/detector"
	"github.com/ayusman/poseplay/internal/game"
	"github.com/ayusman/poseplay/internal/server"
	"github.com/ayusman/poseplay/internal/store"
)

// fakeCanvas counts presented frames and remembers the last texts drawn.
type fakeCanvas struct {
	presents int
	texts    []string
	pending  []string
}

func (c *fakeCanvas) Clear(color.RGBA)                                {}
func (c *fakeCanvas) Line(image.Point, image.Point, color.RGBA, int)  {}
func (c *fakeCanvas) FillRoundedRect(image.Rectangle, int, color.RGBA) {}
func (c *fakeCanvas) Shadow(image.Rectangle, int, float64)            {}
func (c *fakeCanvas) TextWidth(s string) int                          { return len(s) * 10 }
func (c *fakeCanvas) Blit(game.Image, image.Point)                    {}

func (c *fakeCanvas) Text(s string, _ image.Point, _ color.RGBA) {
	c.pending = append(c.pending, s)
}

func (c *fakeCanvas) Present() error {
	c.presents++
	c.texts = c.pending
	c.pending = nil
	return nil
}

type fakeImage struct{ size image.Point }

func (i fakeImage) Bounds() image.Rectangle { return image.Rectangle{Max: i.size} }

type fakeSound string

func (s fakeSound) Name() string { return string(s) }

// fakeDisplay replays queued key codes and keeps a copy of the last preview.
type fakeDisplay struct {
	keys     []int
	polls    int
	previews int
	last     gocv.Mat
	closed   bool

	// windowClosed simulates the user closing a window.
	windowClosed bool
}

func (d *fakeDisplay) ShowPreview(frame *gocv.Mat) {
	d.previews++
	d.last.Close()
	d.last = frame.Clone()
}

func (d *fakeDisplay) PollKey() int {
	d.polls++
	if len(d.keys) == 0 {
		return -1
	}
	key := d.keys[0]
	d.keys = d.keys[1:]
	return key
}

func (d *fakeDisplay) Closed() bool { return d.windowClosed }

func (d *fakeDisplay) Close() error {
	d.closed = true
	return nil
}

type harness struct {
	app      *App
	camera   *capture.MockCamera
	detector *detector.MockDetector
	display  *fakeDisplay
	canvas   *fakeCanvas
	store    *store.Store
	hub      *server.Hub
	clock    *quartz.Mock
}

func newHarness(t *testing.T, frames ...*gocv.Mat) *harness {
	t.Helper()

	if len(frames) == 0 {
		frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		t.Cleanup(func() { frame.Close() })
		frames = append(frames, &frame)
	}

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	h := &harness{
		camera:   capture.NewMockCamera(frames, true),
		detector: detector.NewMockDetector(),
		display:  &fakeDisplay{last: gocv.NewMat()},
		canvas:   &fakeCanvas{},
		store:    st,
		hub:      server.NewHub(),
		clock:    quartz.NewMock(t),
	}
	t.Cleanup(func() { h.display.last.Close() })

	h.app = New(Config{
		Game:   game.DefaultConfig(),
		Canvas: h.canvas,
		Assets: &game.Assets{
			Actor:    fakeImage{size: image.Pt(40, 40)},
			Obstacle: fakeImage{size: image.Pt(20, 40)},
			Music:    fakeSound("music"),
			GameOver: fakeSound("gameover"),
		},
		Camera:   h.camera,
		Detector: h.detector,
		Display:  h.display,
		Store:    st,
		Hub:      h.hub,
		Mirror:   true,
		Clock:    h.clock,
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	})
	return h
}

func (h *harness) fist() {
	h.detector.SetHands([]detector.HandLandmarks{detector.FistLandmarks()})
}

func (h *harness) openPalm() {
	h.detector.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})
}

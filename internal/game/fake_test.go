package game

import (
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

type drawOp struct {
	kind string
	text string
	at   image.Point
	rect image.Rectangle
	col  color.RGBA
}

// fakeCanvas records draw calls since the last Present.
type fakeCanvas struct {
	ops      []drawOp
	frames   [][]drawOp
	presents int
}

func (c *fakeCanvas) Clear(col color.RGBA) {
	c.ops = append(c.ops, drawOp{kind: "clear", col: col})
}

func (c *fakeCanvas) Line(from, to image.Point, col color.RGBA, thickness int) {
	c.ops = append(c.ops, drawOp{kind: "line", rect: image.Rectangle{Min: from, Max: to}, col: col})
}

func (c *fakeCanvas) FillRoundedRect(r image.Rectangle, radius int, col color.RGBA) {
	c.ops = append(c.ops, drawOp{kind: "rect", rect: r, col: col})
}

func (c *fakeCanvas) Shadow(r image.Rectangle, radius int, alpha float64) {
	c.ops = append(c.ops, drawOp{kind: "shadow", rect: r})
}

func (c *fakeCanvas) Text(s string, at image.Point, col color.RGBA) {
	c.ops = append(c.ops, drawOp{kind: "text", text: s, at: at, col: col})
}

func (c *fakeCanvas) TextWidth(s string) int { return len(s) * 10 }

func (c *fakeCanvas) Blit(img Image, at image.Point) {
	c.ops = append(c.ops, drawOp{kind: "blit", text: img.(fakeImage).name, at: at})
}

func (c *fakeCanvas) Present() error {
	c.presents++
	c.frames = append(c.frames, c.ops)
	c.ops = nil
	return nil
}

func (c *fakeCanvas) lastFrame() []drawOp {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func (c *fakeCanvas) texts() []string {
	var out []string
	for _, op := range c.lastFrame() {
		if op.kind == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

type fakeImage struct {
	name string
	size image.Point
}

func (i fakeImage) Bounds() image.Rectangle { return image.Rectangle{Max: i.size} }

type fakeSound string

func (s fakeSound) Name() string { return string(s) }

type fakeMixer struct {
	looping string
	played  []string
	stops   int
}

func (m *fakeMixer) Loop(s Sound) { m.looping = s.Name() }
func (m *fakeMixer) Stop()        { m.looping = ""; m.stops++ }
func (m *fakeMixer) Play(s Sound) { m.played = append(m.played, s.Name()) }

func testAssets() *Assets {
	return &Assets{
		Actor:    fakeImage{name: "actor", size: image.Pt(40, 40)},
		Obstacle: fakeImage{name: "obstacle", size: image.Pt(20, 40)},
		Music:    fakeSound("gameplay"),
		GameOver: fakeSound("gameover"),
	}
}

type harness struct {
	game    *Game
	canvas  *fakeCanvas
	mixer   *fakeMixer
	clock   *quartz.Mock
	results []Result
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		canvas: &fakeCanvas{},
		mixer:  &fakeMixer{},
		clock:  quartz.NewMock(t),
	}
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	h.game = New(DefaultConfig(), h.canvas, h.mixer, testAssets(),
		WithClock(h.clock),
		WithLogger(logger),
		OnOver(func(r Result) { h.results = append(h.results, r) }),
	)
	return h
}

package game

import (
	"image"
	"image/color"
)

// Palette used by the game screens.
var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.RGBA{A: 255}
	Red   = color.RGBA{R: 255, A: 255}
)

// Image is a drawable sprite.
type Image interface {
	Bounds() image.Rectangle
}

// Sound is a playable audio clip.
type Sound interface {
	Name() string
}

// Canvas is the drawing surface the game renders to. Text positions are
// the top-left corner of the rendered string.
type Canvas interface {
	Clear(c color.RGBA)
	Line(from, to image.Point, c color.RGBA, thickness int)
	FillRoundedRect(r image.Rectangle, radius int, c color.RGBA)
	// Shadow darkens r by blending black at the given alpha in [0, 1].
	Shadow(r image.Rectangle, radius int, alpha float64)
	Text(s string, at image.Point, c color.RGBA)
	TextWidth(s string) int
	Blit(img Image, at image.Point)
	Present() error
}

// Mixer plays background music and one-shot effects.
type Mixer interface {
	Loop(s Sound)
	Stop()
	Play(s Sound)
}

// Assets bundles the sprites and sounds a session uses.
type Assets struct {
	Actor    Image
	Obstacle Image
	Music    Sound
	GameOver Sound
}

// NopMixer discards all audio.
type NopMixer struct{}

func (NopMixer) Loop(Sound) {}
func (NopMixer) Stop()      {}
func (NopMixer) Play(Sound) {}

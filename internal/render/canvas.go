package render

import (
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"gocv.io/x/gocv"

	"github.com/ayusman/poseplay/internal/game"
)

// Text style roughly matching a 30px sans font.
const (
	fontFace      = gocv.FontHersheySimplex
	fontScale     = 0.8
	fontThickness = 2
)

// FrameSink receives every presented frame as JPEG bytes.
type FrameSink func(jpeg []byte)

// Canvas implements game.Canvas on an OpenCV BGR image.
type Canvas struct {
	frame  gocv.Mat
	window *gocv.Window
	sink   FrameSink
	logger *log.Logger
}

// NewCanvas creates a width x height canvas. A nil window renders off-screen.
func NewCanvas(width, height int, window *gocv.Window, logger *log.Logger) *Canvas {
	if logger == nil {
		logger = log.Default()
	}
	return &Canvas{
		frame:  gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3),
		window: window,
		logger: logger,
	}
}

// SetSink registers a receiver for presented frames.
func (c *Canvas) SetSink(sink FrameSink) {
	c.sink = sink
}

// Frame exposes the backing image.
func (c *Canvas) Frame() *gocv.Mat {
	return &c.frame
}

// Close releases the backing image.
func (c *Canvas) Close() error {
	return c.frame.Close()
}

func (c *Canvas) Clear(col color.RGBA) {
	c.frame.SetTo(scalar(col))
}

func (c *Canvas) Line(from, to image.Point, col color.RGBA, thickness int) {
	gocv.Line(&c.frame, from, to, col, thickness)
}

func (c *Canvas) FillRoundedRect(r image.Rectangle, radius int, col color.RGBA) {
	fillRoundedRect(&c.frame, r, radius, col)
}

// Shadow blends a black rounded rectangle over the frame with the given opacity.
func (c *Canvas) Shadow(r image.Rectangle, radius int, alpha float64) {
	overlay := c.frame.Clone()
	defer overlay.Close()

	fillRoundedRect(&overlay, r, radius, color.RGBA{A: 255})
	gocv.AddWeighted(overlay, alpha, c.frame, 1-alpha, 0, &c.frame)
}

// Text draws s with its top-left corner at at.
func (c *Canvas) Text(s string, at image.Point, col color.RGBA) {
	size := gocv.GetTextSize(s, fontFace, fontScale, fontThickness)
	gocv.PutText(&c.frame, s, image.Pt(at.X, at.Y+size.Y), fontFace, fontScale, col, fontThickness)
}

func (c *Canvas) TextWidth(s string) int {
	return gocv.GetTextSize(s, fontFace, fontScale, fontThickness).X
}

// Blit copies a *Sprite onto the frame, clipped to the frame bounds.
func (c *Canvas) Blit(img game.Image, at image.Point) {
	sprite, ok := img.(*Sprite)
	if !ok || sprite == nil {
		return
	}

	dst := sprite.Bounds().Add(at).Intersect(image.Rect(0, 0, c.frame.Cols(), c.frame.Rows()))
	if dst.Empty() {
		return
	}
	src := dst.Sub(at)

	roi := c.frame.Region(dst)
	defer roi.Close()
	bgr := sprite.bgr.Region(src)
	defer bgr.Close()
	mask := sprite.mask.Region(src)
	defer mask.Close()

	bgr.CopyToWithMask(&roi, mask)
}

// Present shows the frame and forwards it to the sink, if any.
func (c *Canvas) Present() error {
	if c.window != nil {
		c.window.IMShow(c.frame)
	}
	if c.sink == nil {
		return nil
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, c.frame)
	if err != nil {
		return err
	}
	defer buf.Close()

	c.sink(buf.GetBytes())
	return nil
}

func fillRoundedRect(dst *gocv.Mat, r image.Rectangle, radius int, col color.RGBA) {
	if radius <= 0 {
		gocv.Rectangle(dst, r, col, -1)
		return
	}
	if limit := min(r.Dx(), r.Dy()) / 2; radius > limit {
		radius = limit
	}

	// Cross of two rectangles plus a filled circle in each corner.
	gocv.Rectangle(dst, image.Rect(r.Min.X+radius, r.Min.Y, r.Max.X-radius, r.Max.Y), col, -1)
	gocv.Rectangle(dst, image.Rect(r.Min.X, r.Min.Y+radius, r.Max.X, r.Max.Y-radius), col, -1)

	corners := []image.Point{
		{X: r.Min.X + radius, Y: r.Min.Y + radius},
		{X: r.Max.X - radius - 1, Y: r.Min.Y + radius},
		{X: r.Min.X + radius, Y: r.Max.Y - radius - 1},
		{X: r.Max.X - radius - 1, Y: r.Max.Y - radius - 1},
	}
	for _, p := range corners {
		gocv.Circle(dst, p, radius, col, -1)
	}
}

func scalar(col color.RGBA) gocv.Scalar {
	return gocv.NewScalar(float64(col.B), float64(col.G), float64(col.R), 0)
}

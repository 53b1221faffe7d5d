// Package render draws the game with OpenCV (gocv) and owns the highgui windows.
package render

import (
	"fmt"
	"image"
	"path/filepath"

	"gocv.io/x/gocv"
)

// Sprite is a BGR image with a blend mask taken from its alpha channel.
type Sprite struct {
	name string
	bgr  gocv.Mat
	mask gocv.Mat
}

// LoadSprite reads an image file and scales it to width x height.
// Transparent pixels (alpha 0) are left out when the sprite is blitted.
func LoadSprite(path string, width, height int) (*Sprite, error) {
	src := gocv.IMRead(path, gocv.IMReadUnchanged)
	if src.Empty() {
		src.Close()
		return nil, fmt.Errorf("read image %s", path)
	}
	defer src.Close()

	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.Resize(src, &scaled, image.Pt(width, height), 0, 0, gocv.InterpolationArea)

	s, err := NewSprite(filepath.Base(path), scaled)
	if err != nil {
		return nil, fmt.Errorf("sprite %s: %w", path, err)
	}
	return s, nil
}

// NewSprite builds a sprite from a 1, 3 or 4 channel image. The source Mat is
// copied and stays owned by the caller.
func NewSprite(name string, img gocv.Mat) (*Sprite, error) {
	s := &Sprite{name: name}

	switch img.Channels() {
	case 4:
		planes := gocv.Split(img)
		defer func() {
			for _, p := range planes {
				p.Close()
			}
		}()
		s.bgr = gocv.NewMat()
		gocv.Merge(planes[:3], &s.bgr)
		s.mask = planes[3].Clone()
	case 3:
		s.bgr = img.Clone()
		s.mask = gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0), img.Rows(), img.Cols(), gocv.MatTypeCV8UC1)
	case 1:
		s.bgr = gocv.NewMat()
		gocv.CvtColor(img, &s.bgr, gocv.ColorGrayToBGR)
		s.mask = gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0), img.Rows(), img.Cols(), gocv.MatTypeCV8UC1)
	default:
		return nil, fmt.Errorf("unsupported channel count %d", img.Channels())
	}

	return s, nil
}

// Name returns the file name the sprite was loaded from.
func (s *Sprite) Name() string { return s.name }

// Bounds returns the sprite size anchored at the origin.
func (s *Sprite) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.bgr.Cols(), s.bgr.Rows())
}

// Close releases the sprite's native memory.
func (s *Sprite) Close() error {
	s.bgr.Close()
	s.mask.Close()
	return nil
}

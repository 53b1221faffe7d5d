package detector

import (
	"image/color"

	"gocv.io/x/gocv"
)

var (
	landmarkColor   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	connectionColor = color.RGBA{R: 0, G: 255, B: 0, A: 0}
)

// DrawLandmarks draws the hand skeleton of every hand onto frame in place.
func DrawLandmarks(frame *gocv.Mat, hands []HandLandmarks) {
	if frame == nil || frame.Empty() {
		return
	}

	w, h := frame.Cols(), frame.Rows()
	for _, hand := range hands {
		for _, c := range HandConnections {
			a := hand.Points[c[0]].Pixel(w, h)
			b := hand.Points[c[1]].Pixel(w, h)
			gocv.Line(frame, a, b, connectionColor, 2)
		}
		for _, p := range hand.Points {
			gocv.Circle(frame, p.Pixel(w, h), 4, landmarkColor, -1)
		}
	}
}

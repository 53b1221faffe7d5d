package render

import (
	"github.com/charmbracelet/log"
	"gocv.io/x/gocv"
)

// Window titles.
const (
	GameWindowTitle    = "PosePlay | T-Rex Game"
	PreviewWindowTitle = "PosePlay | Webcam"
)

// Display owns the game and webcam preview windows.
type Display struct {
	gameWindow    *gocv.Window
	previewWindow *gocv.Window
	canvas        *Canvas
}

// NewDisplay opens both windows and a game canvas of the given size.
func NewDisplay(width, height int, logger *log.Logger) *Display {
	gameWindow := gocv.NewWindow(GameWindowTitle)
	previewWindow := gocv.NewWindow(PreviewWindowTitle)

	return &Display{
		gameWindow:    gameWindow,
		previewWindow: previewWindow,
		canvas:        NewCanvas(width, height, gameWindow, logger),
	}
}

// Canvas returns the game canvas.
func (d *Display) Canvas() *Canvas {
	return d.canvas
}

// ShowPreview shows a camera frame in the preview window.
func (d *Display) ShowPreview(frame *gocv.Mat) {
	if frame == nil || frame.Empty() {
		return
	}
	d.previewWindow.IMShow(*frame)
}

// PollKey pumps window events for 1ms and returns the pressed key, or -1.
func (d *Display) PollKey() int {
	return d.previewWindow.WaitKey(1)
}

// Closed reports whether the user closed either window.
func (d *Display) Closed() bool {
	return d.gameWindow.GetWindowProperty(gocv.WindowPropertyVisible) < 1 ||
		d.previewWindow.GetWindowProperty(gocv.WindowPropertyVisible) < 1
}

// Close closes both windows and frees the canvas.
func (d *Display) Close() error {
	d.canvas.Close()
	d.previewWindow.Close()
	return d.gameWindow.Close()
}

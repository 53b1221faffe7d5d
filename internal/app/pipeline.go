package app

import (
	"fmt"

	"github.com/ayusman/poseplay/internal/capture"
	"github.com/ayusman/poseplay/internal/detector"
	"github.com/ayusman/poseplay/internal/game"
	"github.com/ayusman/poseplay/internal/gesture"
)

// Key codes returned by Display.PollKey.
const (
	KeySpace = ' '
	KeyEsc   = 27
)

// Step runs one loop iteration:
//  1. read and mirror a camera frame
//  2. detect hands and draw the landmark overlay
//  3. classify the fist gesture
//  4. poll the keyboard and window state
//  5. advance the game and publish its snapshot
//  6. show the camera preview
//
// Detector failures count as no hand. A camera failure is returned wrapped.
func (a *App) Step() error {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}
	defer frame.Close()

	if a.config.Mirror {
		capture.Mirror(frame)
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		a.logger.Warn("detect hands", "err", err)
		hands = nil
	}
	detector.DrawLandmarks(frame, hands)

	in := game.Input{Fist: gesture.IsFist(hands)}
	if in.Fist != a.fist {
		a.logger.Debug("fist", "held", in.Fist, "hands", len(hands))
		a.fist = in.Fist
	}

	switch a.display.PollKey() {
	case KeySpace:
		in.Start = true
	case 'r', 'R':
		in.Restart = true
	case 'q', 'Q', KeyEsc:
		return ErrQuit
	}
	if a.display.Closed() {
		return ErrQuit
	}

	a.game.Tick(in)
	a.publish()

	a.display.ShowPreview(frame)
	return nil
}

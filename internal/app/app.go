// Package app provides the main frame loop for the PosePlay gesture-controlled runner.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"gocv.io/x/gocv"

	"github.com/ayusman/poseplay/internal/capture"
	"github.com/ayusman/poseplay/internal/detector"
	"github.com/ayusman/poseplay/internal/game"
	"github.com/ayusman/poseplay/internal/server"
	"github.com/ayusman/poseplay/internal/store"
)

// DefaultFrameInterval caps the loop at 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// ErrQuit is returned by Step when the quit key was pressed or a window was closed.
var ErrQuit = errors.New("quit requested")

// Display shows the camera preview and pumps keyboard events.
type Display interface {
	ShowPreview(frame *gocv.Mat)
	// PollKey returns the pressed key code, or -1 when none was pressed.
	PollKey() int
	// Closed reports whether the user closed a window.
	Closed() bool
	Close() error
}

// Config holds the collaborators of an App. Store and Hub are optional.
type Config struct {
	Game     game.Config
	Canvas   game.Canvas
	Mixer    game.Mixer
	Assets   *game.Assets
	Camera   capture.Camera
	Detector detector.Detector
	Display  Display
	Store    *store.Store
	Hub      *server.Hub

	// Mirror flips camera frames so the preview behaves like a mirror.
	Mirror        bool
	FrameInterval time.Duration
	Clock         quartz.Clock
	Logger        *log.Logger
}

// App wires camera, detector, classifier and game into a single-threaded loop.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	display  Display
	game     *game.Game
	clock    quartz.Clock
	logger   *log.Logger

	fist bool
}

// New creates a new App and its game session controller.
func New(config Config) *App {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultFrameInterval
	}

	a := &App{
		config:   config,
		camera:   config.Camera,
		detector: config.Detector,
		display:  config.Display,
		clock:    config.Clock,
		logger:   config.Logger,
	}
	a.game = game.New(config.Game, config.Canvas, config.Mixer, config.Assets,
		game.WithClock(config.Clock),
		game.WithLogger(config.Logger),
		game.OnOver(a.record),
	)
	return a
}

// Game returns the session controller.
func (a *App) Game() *game.Game {
	return a.game
}

// Run opens the camera and steps the loop until the quit key, a closed
// window, ctx cancellation or a camera failure. Camera, detector and display are
// closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	a.game.ShowStartScreen()
	a.publish()
	a.logger.Info("game ready", "fps", int(time.Second/a.config.FrameInterval))

	ticker := a.clock.NewTicker(a.config.FrameInterval, "frame")
	defer ticker.Stop()

	for {
		if err := a.Step(); err != nil {
			if errors.Is(err, ErrQuit) {
				a.logger.Info("quit")
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			a.logger.Info("shutting down", "reason", context.Cause(ctx))
			return nil
		case <-ticker.C:
		}
	}
}

// record persists a finished session. Failures are logged and never stop the game.
func (a *App) record(r game.Result) {
	if a.config.Store == nil {
		return
	}
	if err := a.config.Store.Sessions().Create(store.FromResult(r)); err != nil {
		a.logger.Error("save session", "id", r.SessionID, "err", err)
		return
	}
	a.logger.Debug("session saved", "id", r.SessionID, "score", r.Score)
}

func (a *App) publish() {
	if a.config.Hub != nil {
		a.config.Hub.PublishSnapshot(a.game.Snapshot())
	}
}

func (a *App) close() {
	if err := a.camera.Close(); err != nil {
		a.logger.Warn("close camera", "err", err)
	}
	if err := a.detector.Close(); err != nil {
		a.logger.Warn("close detector", "err", err)
	}
	if err := a.display.Close(); err != nil {
		a.logger.Warn("close display", "err", err)
	}
}

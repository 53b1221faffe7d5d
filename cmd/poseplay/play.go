package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ayusman/poseplay/internal/app"
	"github.com/ayusman/poseplay/internal/assets"
	"github.com/ayusman/poseplay/internal/audio"
	"github.com/ayusman/poseplay/internal/capture"
	"github.com/ayusman/poseplay/internal/config"
	"github.com/ayusman/poseplay/internal/detector"
	"github.com/ayusman/poseplay/internal/game"
	"github.com/ayusman/poseplay/internal/render"
	"github.com/ayusman/poseplay/internal/server"
	"github.com/ayusman/poseplay/internal/store"
)

var (
	flagCamera int
	flagFPS    int
	flagAssets string
	flagDBPath string
	flagServe  string
	flagMute   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the webcam and play",
	Long: `Open the webcam, track your hand and start the game window.

Make a fist to start and to jump. When you hit an obstacle the session
is saved and a fist (or r) starts the next one.

Examples:
  poseplay play
  poseplay play --camera 1 --fps 30
  poseplay play --assets ./assets --db ./scores.db
  poseplay play --serve :8090    # spectators open http://localhost:8090/api/stream`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagCamera, "camera", 0, "Camera device index")
	playCmd.Flags().IntVar(&flagFPS, "fps", 60, "Frame rate cap")
	playCmd.Flags().StringVar(&flagAssets, "assets", "assets", "Directory holding sprites and sounds")
	playCmd.Flags().StringVar(&flagDBPath, "db", "~/.poseplay/poseplay.db", "Path to scores database (empty disables saving)")
	playCmd.Flags().StringVar(&flagServe, "serve", "", "Spectator server address, e.g. :8090")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
}

// applyPlayFlags copies explicitly set flags over the loaded config.
func applyPlayFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("camera") {
		cfg.Camera.Device = flagCamera
	}
	if flags.Changed("fps") {
		cfg.Game.FPS = flagFPS
	}
	if flags.Changed("assets") {
		cfg.Assets.Dir = flagAssets
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("serve") {
		cfg.Server.Addr = flagServe
	}
	if flags.Changed("mute") {
		cfg.Assets.Mute = flagMute
	}
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyPlayFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameCfg := cfg.GameSettings()

	bundle, err := assets.Load(config.ExpandHome(cfg.Assets.Dir), cfg.AssetFiles(), gameCfg)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	defer bundle.Close()

	var mixer game.Mixer = game.NopMixer{}
	if !cfg.Assets.Mute {
		m, err := audio.NewMixer(audio.DefaultSampleRate, logger)
		if err != nil {
			return fmt.Errorf("init audio: %w", err)
		}
		defer m.Close()
		mixer = m
	}

	var st *store.Store
	if cfg.Storage.Path != "" {
		st, err = store.New(config.ExpandHome(cfg.Storage.Path))
		if err != nil {
			return fmt.Errorf("open scores database: %w", err)
		}
		defer st.Close()
		logger.Debug("scores database", "path", st.Path())
	}

	det, err := detector.NewMediaPipeDetector(cfg.DetectorSettings())
	if err != nil {
		return fmt.Errorf("init hand detector: %w", err)
	}

	display := render.NewDisplay(gameCfg.Width, gameCfg.Height, logger)

	var hub *server.Hub
	if cfg.Server.Addr != "" {
		hub = server.NewHub()
		display.Canvas().SetSink(hub.PublishFrame)

		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		done := serveSpectators(ctx, cfg, st, hub, logger)
		defer func() {
			cancel()
			<-done
		}()
	}

	a := app.New(app.Config{
		Game:          gameCfg,
		Canvas:        display.Canvas(),
		Mixer:         mixer,
		Assets:        &bundle.Assets,
		Camera:        capture.NewCamera(cfg.CameraOptions()),
		Detector:      det,
		Display:       display,
		Store:         st,
		Hub:           hub,
		Mirror:        cfg.Camera.Mirror,
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger,
	})
	return a.Run(ctx)
}

// serveSpectators runs the spectator server until ctx is done. The returned
// channel is closed once the server has stopped.
func serveSpectators(ctx context.Context, cfg config.Config, st *store.Store, hub *server.Hub, logger *log.Logger) <-chan struct{} {
	srv := server.New(server.Config{
		Store:          st,
		Hub:            hub,
		EventsInterval: cfg.EventsInterval(),
		Logger:         logger,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info("spectator server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
			logger.Error("spectator server", "err", err)
		}
	}()
	return done
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ayusman/poseplay/internal/assets"
	"github.com/ayusman/poseplay/internal/detector"
	"github.com/ayusman/poseplay/internal/game"
)

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)
	return home, wd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal(defaultYAML, &cfg))

	assert.Equal(t, Default(), cfg)
}

func TestDefault_Valid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_EmbeddedFallback(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_CustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "game:\n  fps: 30\nserver:\n  addr: \":8090\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Game.FPS)
	assert.Equal(t, ":8090", cfg.Server.Addr)
	assert.Equal(t, 800, cfg.Game.Width, "unset keys keep their defaults")
}

func TestLoad_CustomPathErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "game: [not, a, map")
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_SearchOrder(t *testing.T) {
	home, wd := isolate(t)

	writeFile(t, filepath.Join(wd, "configs", "poseplay.yaml"), "camera:\n  device: 2\n")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Camera.Device, "local configs directory is used")

	writeFile(t, filepath.Join(home, ".poseplay", "config.yaml"), "camera:\n  device: 1\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Camera.Device, "user config wins over local")
}

func TestLoad_BrokenUserConfigFallsThrough(t *testing.T) {
	home, wd := isolate(t)

	writeFile(t, filepath.Join(home, ".poseplay", "config.yaml"), "game: [oops")
	writeFile(t, filepath.Join(wd, "configs", "poseplay.yaml"), "game:\n  fps: 24\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Game.FPS)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero width", func(c *Config) { c.Game.Width = 0 }, "screen size"},
		{"ground below screen", func(c *Config) { c.Game.GroundY = 400 }, "ground_y"},
		{"zero fps", func(c *Config) { c.Game.FPS = 0 }, "fps"},
		{"negative actor", func(c *Config) { c.Game.Actor.Height = -1 }, "actor size"},
		{"zero obstacle", func(c *Config) { c.Game.Obstacle.Width = 0 }, "obstacle size"},
		{"stopped obstacles", func(c *Config) { c.Game.Obstacle.Speed = 0 }, "obstacle speed"},
		{"zero gravity", func(c *Config) { c.Game.Gravity = 0 }, "gravity"},
		{"downward jump", func(c *Config) { c.Game.JumpVelocity = 18 }, "jump_velocity"},
		{"zero jump", func(c *Config) { c.Game.JumpVelocity = 0 }, "jump_velocity"},
		{"negative spawn gap", func(c *Config) { c.Game.Obstacle.SpawnGap = -1 }, "spawn_gap"},
		{"no hands", func(c *Config) { c.Detector.MaxHands = 0 }, "max_hands"},
		{"confidence above one", func(c *Config) { c.Detector.MinDetectionConfidence = 1.5 }, "min_detection_confidence"},
		{"negative tracking", func(c *Config) { c.Detector.MinTrackingConfidence = -0.1 }, "min_tracking_confidence"},
		{"negative camera", func(c *Config) { c.Camera.Device = -1 }, "camera"},
		{"server without rate", func(c *Config) { c.Server.Addr = ":8090"; c.Server.EventsPerSecond = 0 }, "events_per_second"},
		{"unknown log level", func(c *Config) { c.Log.Level = "chatty" }, "log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Game.FPS = 0
	cfg.Detector.MaxHands = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fps")
	assert.Contains(t, err.Error(), "max_hands")
}

func TestConversions(t *testing.T) {
	cfg := Default()

	assert.Equal(t, game.DefaultConfig(), cfg.GameSettings())

	d := cfg.DetectorSettings()
	want := detector.DefaultConfig()
	assert.Equal(t, want.MaxHands, d.MaxHands)
	assert.Equal(t, want.MinConfidence, d.MinConfidence)
	assert.Equal(t, want.MinTrackingConf, d.MinTrackingConf)
	assert.Equal(t, want.StaticImageMode, d.StaticImageMode)

	opts := cfg.CameraOptions()
	assert.Equal(t, 0, opts.DeviceID)
	assert.Equal(t, 640, opts.Width)
	assert.Equal(t, 60, opts.FPS)

	assert.Equal(t, assets.DefaultFiles(), cfg.AssetFiles())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())

	cfg.Log.Level = "debug"
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	cfg.Log.Level = "chatty"
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())

	assert.Equal(t, time.Second/60, cfg.FrameInterval())
	assert.Equal(t, 100*time.Millisecond, cfg.EventsInterval())
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".poseplay", "poseplay.db"), ExpandHome("~/.poseplay/poseplay.db"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "rel/~path", ExpandHome("rel/~path"))
	assert.Equal(t, "", ExpandHome(""))
}

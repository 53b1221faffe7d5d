// Package config provides YAML-based configuration loading for poseplay.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ayusman/poseplay/internal/assets"
	"github.com/ayusman/poseplay/internal/capture"
	"github.com/ayusman/poseplay/internal/detector"
	"github.com/ayusman/poseplay/internal/game"
)

// Config is the complete application configuration.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Detector DetectorConfig `yaml:"detector"`
	Camera   CameraConfig   `yaml:"camera"`
	Assets   AssetsConfig   `yaml:"assets"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// GameConfig defines screen geometry and physics.
type GameConfig struct {
	Width        int            `yaml:"width"`
	Height       int            `yaml:"height"`
	GroundY      float64        `yaml:"ground_y"`
	Gravity      float64        `yaml:"gravity"`
	JumpVelocity float64        `yaml:"jump_velocity"`
	FPS          int            `yaml:"fps"`
	Actor        ActorConfig    `yaml:"actor"`
	Obstacle     ObstacleConfig `yaml:"obstacle"`
}

// ActorConfig defines the runner's placement and size.
type ActorConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines obstacle size, speed and spacing.
type ObstacleConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	SpawnGap float64 `yaml:"spawn_gap"`
}

// DetectorConfig defines the hand landmark model knobs.
type DetectorConfig struct {
	MaxHands               int     `yaml:"max_hands"`
	MinDetectionConfidence float64 `yaml:"min_detection_confidence"`
	MinTrackingConfidence  float64 `yaml:"min_tracking_confidence"`
	StaticImageMode        bool    `yaml:"static_image_mode"`
	Script                 string  `yaml:"script"`
	Python                 string  `yaml:"python"`
}

// CameraConfig selects the webcam.
type CameraConfig struct {
	Device int  `yaml:"device"`
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Mirror bool `yaml:"mirror"`
}

// AssetsConfig locates sprites and sounds.
type AssetsConfig struct {
	Dir      string `yaml:"dir"`
	Actor    string `yaml:"actor"`
	Obstacle string `yaml:"obstacle"`
	Music    string `yaml:"music"`
	GameOver string `yaml:"game_over"`
	Mute     bool   `yaml:"mute"`
}

// StorageConfig locates the score database. An empty path disables persistence.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig controls the spectator server. An empty address disables it.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	EventsPerSecond int    `yaml:"events_per_second"`
}

// LogConfig sets the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate rejects configurations the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	g := c.Game
	if g.Width <= 0 || g.Height <= 0 {
		errs = append(errs, fmt.Errorf("game: screen size must be positive, got %dx%d", g.Width, g.Height))
	}
	if g.GroundY <= 0 || g.GroundY > float64(g.Height) {
		errs = append(errs, fmt.Errorf("game: ground_y %.0f outside screen height %d", g.GroundY, g.Height))
	}
	if g.FPS <= 0 {
		errs = append(errs, fmt.Errorf("game: fps must be positive, got %d", g.FPS))
	}
	if g.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("game: gravity must be positive, got %v", g.Gravity))
	}
	if g.JumpVelocity >= 0 {
		errs = append(errs, fmt.Errorf("game: jump_velocity must be negative (upward), got %v", g.JumpVelocity))
	}
	if g.Actor.Width <= 0 || g.Actor.Height <= 0 {
		errs = append(errs, errors.New("game: actor size must be positive"))
	}
	if g.Obstacle.Width <= 0 || g.Obstacle.Height <= 0 {
		errs = append(errs, errors.New("game: obstacle size must be positive"))
	}
	if g.Obstacle.Speed <= 0 {
		errs = append(errs, errors.New("game: obstacle speed must be positive"))
	}
	if g.Obstacle.SpawnGap < 0 {
		errs = append(errs, fmt.Errorf("game: obstacle spawn_gap must not be negative, got %v", g.Obstacle.SpawnGap))
	}

	d := c.Detector
	if d.MaxHands <= 0 {
		errs = append(errs, fmt.Errorf("detector: max_hands must be positive, got %d", d.MaxHands))
	}
	if d.MinDetectionConfidence < 0 || d.MinDetectionConfidence > 1 {
		errs = append(errs, fmt.Errorf("detector: min_detection_confidence %v outside [0,1]", d.MinDetectionConfidence))
	}
	if d.MinTrackingConfidence < 0 || d.MinTrackingConfidence > 1 {
		errs = append(errs, fmt.Errorf("detector: min_tracking_confidence %v outside [0,1]", d.MinTrackingConfidence))
	}

	if c.Camera.Device < 0 {
		errs = append(errs, fmt.Errorf("camera: device must not be negative, got %d", c.Camera.Device))
	}
	if c.Server.Addr != "" && c.Server.EventsPerSecond <= 0 {
		errs = append(errs, errors.New("server: events_per_second must be positive"))
	}
	if _, err := log.ParseLevel(c.Log.Level); c.Log.Level != "" && err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// GameSettings converts the game section for the game package.
func (c Config) GameSettings() game.Config {
	g := c.Game
	return game.Config{
		Width:          g.Width,
		Height:         g.Height,
		GroundY:        g.GroundY,
		Gravity:        g.Gravity,
		JumpVelocity:   g.JumpVelocity,
		ActorX:         g.Actor.X,
		ActorWidth:     g.Actor.Width,
		ActorHeight:    g.Actor.Height,
		ObstacleWidth:  g.Obstacle.Width,
		ObstacleHeight: g.Obstacle.Height,
		ObstacleSpeed:  g.Obstacle.Speed,
		SpawnGap:       g.Obstacle.SpawnGap,
	}
}

// DetectorSettings converts the detector section for the detector package.
func (c Config) DetectorSettings() detector.Config {
	d := c.Detector
	return detector.Config{
		MaxHands:        d.MaxHands,
		MinConfidence:   d.MinDetectionConfidence,
		MinTrackingConf: d.MinTrackingConfidence,
		StaticImageMode: d.StaticImageMode,
		ScriptPath:      ExpandHome(d.Script),
		Python:          ExpandHome(d.Python),
	}
}

// CameraOptions converts the camera section for the capture package.
func (c Config) CameraOptions() capture.Options {
	return capture.Options{
		DeviceID: c.Camera.Device,
		Width:    c.Camera.Width,
		Height:   c.Camera.Height,
		FPS:      c.Game.FPS,
	}
}

// AssetFiles returns the asset file names for the assets package.
func (c Config) AssetFiles() assets.Files {
	return assets.Files{
		Actor:    c.Assets.Actor,
		Obstacle: c.Assets.Obstacle,
		Music:    c.Assets.Music,
		GameOver: c.Assets.GameOver,
	}
}

// LogLevel parses the log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// FrameInterval is the target time per loop iteration.
func (c Config) FrameInterval() time.Duration {
	if c.Game.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Game.FPS)
}

// EventsInterval is the minimum time between spectator snapshots.
func (c Config) EventsInterval() time.Duration {
	if c.Server.EventsPerSecond <= 0 {
		return 100 * time.Millisecond
	}
	return time.Second / time.Duration(c.Server.EventsPerSecond)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

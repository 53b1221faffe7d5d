package config

import (
	_ "embed"
)

//go:embed defaults/poseplay.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Width:        800,
			Height:       300,
			GroundY:      250,
			Gravity:      1.2,
			JumpVelocity: -18,
			FPS:          60,
			Actor: ActorConfig{
				X:      100,
				Width:  40,
				Height: 40,
			},
			Obstacle: ObstacleConfig{
				Width:    20,
				Height:   40,
				Speed:    9,
				SpawnGap: 300,
			},
		},
		Detector: DetectorConfig{
			MaxHands:               1,
			MinDetectionConfidence: 0.7,
			MinTrackingConfidence:  0.5,
		},
		Camera: CameraConfig{
			Device: 0,
			Width:  640,
			Height: 480,
			Mirror: true,
		},
		Assets: AssetsConfig{
			Dir:      "assets",
			Actor:    "girl.png",
			Obstacle: "RedFlag.png",
			Music:    "gameplay.mp3",
			GameOver: "gameover.mp3",
		},
		Storage: StorageConfig{
			Path: "~/.poseplay/poseplay.db",
		},
		Server: ServerConfig{
			EventsPerSecond: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

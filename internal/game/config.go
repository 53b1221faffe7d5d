package game

import "time"

// Config holds the screen geometry and physics constants of a session.
type Config struct {
	Width   int     // Screen width in pixels
	Height  int     // Screen height in pixels
	GroundY float64 // Y of the ground line

	Gravity      float64 // Added to vertical velocity every frame
	JumpVelocity float64 // Initial vertical velocity of a jump (negative = up)

	ActorX      float64
	ActorWidth  float64
	ActorHeight float64

	ObstacleWidth  float64
	ObstacleHeight float64
	ObstacleSpeed  float64 // Pixels per frame, leftward
	SpawnGap       float64 // Distance the newest obstacle travels before the next spawns
}

// DefaultConfig returns the classic 800x300 runner layout.
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         300,
		GroundY:        250,
		Gravity:        1.2,
		JumpVelocity:   -18,
		ActorX:         100,
		ActorWidth:     40,
		ActorHeight:    40,
		ObstacleWidth:  20,
		ObstacleHeight: 40,
		ObstacleSpeed:  9,
		SpawnGap:       300,
	}
}

// Result summarises one finished session.
type Result struct {
	SessionID string        `json:"session_id"`
	Score     int           `json:"score"`
	Jumps     int           `json:"jumps"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Duration  time.Duration `json:"duration"`
}

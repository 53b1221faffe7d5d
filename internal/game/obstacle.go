package game

// Obstacle is a ground hazard scrolling toward the actor.
type Obstacle struct {
	X, Y  float64
	W, H  float64
	Speed float64
}

// NewObstacle spawns an obstacle at the right edge of the screen, resting on the ground.
func NewObstacle(cfg Config) Obstacle {
	return Obstacle{
		X:     float64(cfg.Width),
		Y:     cfg.GroundY - cfg.ObstacleHeight,
		W:     cfg.ObstacleWidth,
		H:     cfg.ObstacleHeight,
		Speed: cfg.ObstacleSpeed,
	}
}

// Update moves the obstacle one frame to the left.
func (o *Obstacle) Update() {
	o.X -= o.Speed
}

// OffScreen reports whether the obstacle has fully left the screen.
func (o Obstacle) OffScreen() bool {
	return o.X+o.W < 0
}

// Rect returns the collision box.
func (o Obstacle) Rect() Rect {
	return Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// Collides reports whether the obstacle overlaps the actor.
func (o Obstacle) Collides(a *Actor) bool {
	return o.Rect().Intersects(a.Rect())
}

// Draw blits the obstacle sprite.
func (o Obstacle) Draw(c Canvas, assets *Assets) {
	c.Blit(assets.Obstacle, o.Rect().Min())
}

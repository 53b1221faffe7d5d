package game

// Actor is the player-controlled runner.
type Actor struct {
	X, Y    float64
	VY      float64 // Vertical velocity, positive is down
	W, H    float64
	Jumping bool
}

// NewActor places a fresh actor standing on the ground.
func NewActor(cfg Config) *Actor {
	return &Actor{
		X: cfg.ActorX,
		Y: cfg.GroundY - cfg.ActorHeight,
		W: cfg.ActorWidth,
		H: cfg.ActorHeight,
	}
}

// Jump starts a jump with the given initial velocity. It is ignored while
// the actor is airborne.
func (a *Actor) Jump(velocity float64) bool {
	if a.Jumping {
		return false
	}
	a.VY = velocity
	a.Jumping = true
	return true
}

// Update integrates one frame of gravity and clamps the actor to the ground.
func (a *Actor) Update(gravity, groundY float64) {
	a.Y += a.VY
	a.VY += gravity

	if floor := groundY - a.H; a.Y >= floor {
		a.Y = floor
		a.VY = 0
		a.Jumping = false
	}
}

// Rect returns the collision box.
func (a *Actor) Rect() Rect {
	return Rect{X: a.X, Y: a.Y, W: a.W, H: a.H}
}

// Draw blits the actor sprite.
func (a *Actor) Draw(c Canvas, assets *Assets) {
	c.Blit(assets.Actor, a.Rect().Min())
}

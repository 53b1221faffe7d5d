// Package game implements the gesture-driven endless runner: entities,
// the session state machine and screen composition.
package game

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// State is the session phase.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateOver    State = "over"
)

// Screen text.
const (
	TitleText       = "PosePlay | T-Rex Game"
	StartHintText   = "Make a Fist or Press Space to Start"
	GameOverText    = "GAME OVER"
	RestartHintText = "Make a Fist or Press 'R' to Restart"
)

const (
	cardWidth       = 400
	cardHeight      = 120
	cardRadius      = 10
	shadowOffset    = 5
	shadowAlpha     = 150.0 / 255.0
	groundThickness = 2
)

// Input is the per-frame control signal.
type Input struct {
	Fist    bool // Fist gesture held this frame
	Start   bool // Start key pressed
	Restart bool // Restart key pressed
}

// Game is the session controller.
type Game struct {
	cfg    Config
	canvas Canvas
	mixer  Mixer
	assets *Assets
	clock  quartz.Clock
	logger *log.Logger
	onOver func(Result)

	state     State
	actor     *Actor
	obstacles []Obstacle
	score     int
	jumps     int
	frame     uint64
	session   uuid.UUID
	startedAt time.Time
}

// Option configures a Game.
type Option func(*Game)

// WithClock sets the clock used to timestamp sessions.
func WithClock(c quartz.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// OnOver registers fn to receive the Result of every finished session.
func OnOver(fn func(Result)) Option {
	return func(g *Game) { g.onOver = fn }
}

// New creates a game in the Idle state.
func New(cfg Config, canvas Canvas, mixer Mixer, assets *Assets, opts ...Option) *Game {
	if mixer == nil {
		mixer = NopMixer{}
	}
	g := &Game{
		cfg:    cfg,
		canvas: canvas,
		mixer:  mixer,
		assets: assets,
		clock:  quartz.NewReal(),
		logger: log.Default(),
		state:  StateIdle,
		actor:  NewActor(cfg),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns the current session phase.
func (g *Game) State() State { return g.state }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Actor returns the live actor.
func (g *Game) Actor() *Actor { return g.actor }

// Obstacles returns a copy of the obstacles in spawn order.
func (g *Game) Obstacles() []Obstacle {
	return append([]Obstacle(nil), g.obstacles...)
}

// Start begins a fresh session from Idle or Over.
func (g *Game) Start() {
	if g.state == StateRunning {
		return
	}

	g.actor = NewActor(g.cfg)
	g.obstacles = g.obstacles[:0]
	g.score = 0
	g.jumps = 0
	g.frame = 0
	g.session = uuid.New()
	g.startedAt = g.clock.Now()
	g.state = StateRunning

	g.mixer.Loop(g.assets.Music)
	g.logger.Info("session started", "id", g.session)
}

// Jump makes the actor jump unless it is already airborne.
func (g *Game) Jump() {
	if g.actor.Jump(g.cfg.JumpVelocity) {
		g.jumps++
	}
}

// Update advances a running session by one frame and renders it.
func (g *Game) Update() {
	if g.state != StateRunning {
		return
	}
	g.frame++

	g.actor.Update(g.cfg.Gravity, g.cfg.GroundY)

	if n := len(g.obstacles); n == 0 || g.obstacles[n-1].X < float64(g.cfg.Width)-g.cfg.SpawnGap {
		g.obstacles = append(g.obstacles, NewObstacle(g.cfg))
	}

	for i := range g.obstacles {
		g.obstacles[i].Update()
	}

	// Retain on-screen obstacles in place
	valid := g.obstacles[:0]
	for _, o := range g.obstacles {
		if o.OffScreen() {
			g.score++
			continue
		}
		valid = append(valid, o)
	}
	g.obstacles = valid

	hit := false
	for _, o := range g.obstacles {
		if o.Collides(g.actor) {
			hit = true
			break
		}
	}

	g.drawScene()
	if hit {
		g.GameOver()
		return
	}
	g.present()
}

// GameOver ends a running session. It does nothing in Idle or Over.
func (g *Game) GameOver() {
	if g.state != StateRunning {
		return
	}
	g.state = StateOver

	g.mixer.Stop()
	g.mixer.Play(g.assets.GameOver)

	g.drawGameOverCard()
	g.present()

	result := Result{
		SessionID: g.session.String(),
		Score:     g.score,
		Jumps:     g.jumps,
		StartedAt: g.startedAt,
		EndedAt:   g.clock.Now(),
	}
	result.Duration = result.EndedAt.Sub(result.StartedAt)

	g.logger.Info("session over", "id", result.SessionID, "score", result.Score, "jumps", result.Jumps)
	if g.onOver != nil {
		g.onOver(result)
	}
}

// ShowStartScreen renders the title screen.
func (g *Game) ShowStartScreen() {
	g.canvas.Clear(White)

	midY := g.cfg.Height / 2
	g.centerText(TitleText, midY-50, Black)
	g.centerText(StartHintText, midY, Black)

	g.present()
}

// Tick routes one frame of input according to the session state.
func (g *Game) Tick(in Input) {
	switch g.state {
	case StateIdle:
		if in.Start || in.Fist {
			g.Start()
			if in.Fist {
				g.Jump()
			}
		}
	case StateRunning:
		g.Update()
		if g.state == StateRunning && in.Fist {
			g.Jump()
		}
	case StateOver:
		if in.Restart || in.Fist {
			g.Start()
			if in.Fist {
				g.Jump()
			}
		}
	}
}

func (g *Game) drawScene() {
	g.canvas.Clear(White)

	g.actor.Draw(g.canvas, g.assets)
	for _, o := range g.obstacles {
		o.Draw(g.canvas, g.assets)
	}

	groundY := int(g.cfg.GroundY)
	g.canvas.Line(image.Pt(0, groundY), image.Pt(g.cfg.Width, groundY), Black, groundThickness)
	g.canvas.Text(fmt.Sprintf("Score: %d", g.score), image.Pt(10, 10), Black)
}

func (g *Game) drawGameOverCard() {
	x := g.cfg.Width/2 - cardWidth/2
	y := g.cfg.Height/2 - cardHeight/2
	card := image.Rect(x, y, x+cardWidth, y+cardHeight)

	g.canvas.Shadow(card.Add(image.Pt(shadowOffset, shadowOffset)), cardRadius, shadowAlpha)
	g.canvas.FillRoundedRect(card, cardRadius, White)

	g.centerText(GameOverText, y+30, Red)
	g.centerText(RestartHintText, y+65, Black)
}

func (g *Game) centerText(s string, y int, c color.RGBA) {
	x := g.cfg.Width/2 - g.canvas.TextWidth(s)/2
	g.canvas.Text(s, image.Pt(x, y), c)
}

func (g *Game) present() {
	if err := g.canvas.Present(); err != nil {
		g.logger.Warn("present frame", "err", err)
	}
}

package game

import "github.com/google/uuid"

// Snapshot is a read-only view of a session, safe to hand to other goroutines.
type Snapshot struct {
	Frame     uint64 `json:"frame"`
	State     State  `json:"state"`
	SessionID string `json:"session_id,omitempty"`
	Score     int    `json:"score"`
	Jumps     int    `json:"jumps"`
	Actor     Rect   `json:"actor"`
	Jumping   bool   `json:"jumping"`
	Obstacles []Rect `json:"obstacles"`
}

// Snapshot copies the current session state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:     g.frame,
		State:     g.state,
		Score:     g.score,
		Jumps:     g.jumps,
		Actor:     g.actor.Rect(),
		Jumping:   g.actor.Jumping,
		Obstacles: make([]Rect, len(g.obstacles)),
	}
	if g.session != (uuid.UUID{}) {
		snap.SessionID = g.session.String()
	}
	for i, o := range g.obstacles {
		snap.Obstacles[i] = o.Rect()
	}
	return snap
}

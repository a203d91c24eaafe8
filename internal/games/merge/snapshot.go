package merge

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// BallSnapshot is the observable state of one ball.
type BallSnapshot struct {
	ID      EntityID
	Value   int
	X, Y    float64
	Radius  float64
	Texture string
}

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Score    int
	Next     int
	Merges   int
	MaxValue int
	Drops    int
	Balls    []BallSnapshot // Ascending entity id
	State    GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	balls := g.session.Balls().Balls()
	out := make([]BallSnapshot, 0, len(balls))
	for _, b := range balls {
		body, ok := g.world.Body(b.Body)
		if !ok {
			continue
		}
		out = append(out, BallSnapshot{
			ID:      b.ID,
			Value:   b.Value,
			X:       body.Position.X,
			Y:       body.Position.Y,
			Radius:  body.Radius,
			Texture: body.Visual.Texture,
		})
	}

	return Snapshot{
		Tick:     g.tick,
		Score:    g.session.Score(),
		Next:     g.session.NextValue(),
		Merges:   g.session.Merges(),
		MaxValue: g.session.MaxValue(),
		Drops:    len(g.drops),
		Balls:    out,
		State:    state,
	}
}

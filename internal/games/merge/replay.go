package merge

import "github.com/vovakirdan/tui-mergeball/internal/core"

// Drop is one recorded drop: the tick it happened on and the field x.
type Drop struct {
	Tick uint64
	X    float64
}

// Journal is everything needed to replay a session: the seed and the drops.
type Journal struct {
	GameID string
	Seed   int64
	Ticks  uint64 // Simulated ticks when the journal was taken
	Drops  []Drop
}

// Journal returns the drop journal of the current session.
func (g *Game) Journal() Journal {
	drops := make([]Drop, len(g.drops))
	copy(drops, g.drops)
	return Journal{
		GameID: GameID,
		Seed:   g.runtime.Seed,
		Ticks:  g.tick,
		Drops:  drops,
	}
}

// ReplayGame re-runs a recorded session headlessly and then simulates
// settleTicks more ticks without input. The result can be rendered.
// The same journal and config always give the same game.
func ReplayGame(run Journal, settleTicks int) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{
		ScreenW:  core.DefaultConfig().ScreenW,
		ScreenH:  core.DefaultConfig().ScreenH,
		TickRate: core.DefaultConfig().TickRate,
		Seed:     run.Seed,
	})

	next := 0
	for g.tick < run.Ticks {
		for next < len(run.Drops) && run.Drops[next].Tick <= g.tick {
			g.DropAt(run.Drops[next].X)
			next++
		}
		g.advance()
	}
	// Drops recorded after the last simulated tick
	for ; next < len(run.Drops); next++ {
		g.DropAt(run.Drops[next].X)
	}

	for range settleTicks {
		g.advance()
	}
	return g
}

// Replay re-runs a recorded session and returns its final snapshot.
func Replay(run Journal, settleTicks int) Snapshot {
	return ReplayGame(run, settleTicks).Snapshot()
}

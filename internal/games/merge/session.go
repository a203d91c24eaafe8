package merge

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mergeball/internal/config"
)

// Session is the state of one game: the engine it drives, the live balls,
// the spawner and the score. All methods must be called from one goroutine.
type Session struct {
	engine  Engine
	balls   *BallRegistry
	spawner *Spawner
	score   Score
	logger  *log.Logger

	merges   int
	maxValue int
}

// NewSession creates a session on top of an engine. The engine should already
// contain the walls and floor.
func NewSession(engine Engine, cfg config.MergeConfig, rng *rand.Rand, logger *log.Logger) *Session {
	balls := NewBallRegistry()
	return &Session{
		engine:  engine,
		balls:   balls,
		spawner: NewSpawner(engine, balls, cfg, rng, logger),
		logger:  logger,
	}
}

// Spawn drops the next ball at (x, y).
func (s *Session) Spawn(x, y float64) *Ball {
	b := s.spawner.Spawn(x, y)
	s.maxValue = max(s.maxValue, b.Value)
	return b
}

// Balls returns the ball registry.
func (s *Session) Balls() *BallRegistry { return s.balls }

// Spawner returns the session's spawner.
func (s *Session) Spawner() *Spawner { return s.spawner }

// Score returns the current score.
func (s *Session) Score() int { return s.score.Total() }

// NextValue returns the value of the ball that will be dropped next.
func (s *Session) NextValue() int { return s.spawner.NextValue() }

// Merges returns how many merges have happened.
func (s *Session) Merges() int { return s.merges }

// MaxValue returns the largest ball value seen in this session.
func (s *Session) MaxValue() int { return s.maxValue }

package merge

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mergeball/internal/config"
	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/physics"
)

// Spawner decides the value of the next ball, sizes balls by value and
// creates new balls in the engine and the registry.
type Spawner struct {
	engine Engine
	balls  *BallRegistry
	rng    *rand.Rand
	logger *log.Logger

	values         []int
	radiusBase     float64
	radiusStep     float64
	imageSize      float64
	texturePattern string
	restitution    float64
	friction       float64

	next   int
	lastID EntityID
}

// NewSpawner creates a spawner and draws the first next-ball value.
func NewSpawner(engine Engine, balls *BallRegistry, cfg config.MergeConfig, rng *rand.Rand, logger *log.Logger) *Spawner {
	s := &Spawner{
		engine:         engine,
		balls:          balls,
		rng:            rng,
		logger:         logger,
		values:         append([]int(nil), cfg.Balls.Values...),
		radiusBase:     cfg.Balls.RadiusBase,
		radiusStep:     cfg.Balls.RadiusStep,
		imageSize:      cfg.Balls.ImageSize,
		texturePattern: cfg.Balls.TexturePattern,
		restitution:    cfg.Physics.Restitution,
		friction:       cfg.Physics.Friction,
	}
	s.draw()
	return s
}

// NextValue returns the value the next spawned ball will have.
func (s *Spawner) NextValue() int {
	return s.next
}

// draw picks the next value uniformly from the configured set.
func (s *Spawner) draw() int {
	s.next = s.values[s.rng.Intn(len(s.values))]
	return s.next
}

// RadiusFor returns the ball radius for a value: base plus one step per doubling above 2.
func (s *Spawner) RadiusFor(value int) float64 {
	return s.radiusBase + s.radiusStep*math.Log2(float64(value)/2)
}

// TextureFor returns the sprite name for a value, "num<value>.png" by default.
func (s *Spawner) TextureFor(value int) string {
	if s.texturePattern == "" {
		return fmt.Sprintf("num%d.png", value)
	}
	return fmt.Sprintf(s.texturePattern, value)
}

// BodyOptions returns the material and sprite settings for a ball of the given value.
func (s *Spawner) BodyOptions(value int) physics.BodyOptions {
	return physics.BodyOptions{
		Restitution: s.restitution,
		Friction:    s.friction,
		Visual: physics.Visual{
			Texture: s.TextureFor(value),
			Scale:   s.RadiusFor(value) / (s.imageSize / 2),
		},
	}
}

// Spawn creates a ball with the next value at (x, y), registers it and draws
// a new next value. x is not validated; callers keep it inside the walls.
func (s *Spawner) Spawn(x, y float64) *Ball {
	value := s.next
	radius := s.RadiusFor(value)

	body := s.engine.CreateCircleBody(x, y, radius, s.BodyOptions(value))
	s.engine.AddBody(body)

	s.lastID++
	ball := NewBall(s.lastID, core.V(x, y), value, body)
	s.balls.Insert(ball)

	s.draw()

	s.logger.Debug("spawned ball", "id", ball.ID, "value", value, "x", x, "y", y, "next", s.next)
	return ball
}

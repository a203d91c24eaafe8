package merge

import (
	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/physics"
)

// ResolveCollision merges the balls behind two body handles when they carry
// equal values. It reports whether a merge happened.
//
// Pairs involving walls, the floor or handles that no longer belong to a ball
// are ignored, which makes repeated notifications for an already merged pair
// harmless. The ball behind a survives and takes the new body; the ball
// behind b is gone afterwards.
func (s *Session) ResolveCollision(a, b physics.BodyID) bool {
	if a == b {
		return false
	}

	ka, okA := s.engine.BodyKind(a)
	kb, okB := s.engine.BodyKind(b)
	if !okA || !okB || ka != physics.KindBall || kb != physics.KindBall {
		return false
	}

	ballA, okA := s.balls.FindByBody(a)
	ballB, okB := s.balls.FindByBody(b)
	if !okA || !okB {
		return false
	}

	if ballA.Value != ballB.Value {
		return false
	}

	mid := core.Midpoint(s.positionOf(ballA), s.positionOf(ballB))

	s.engine.RemoveBody(a)
	s.engine.RemoveBody(b)

	value := ballA.Value * 2
	body := s.engine.CreateCircleBody(mid.X, mid.Y, s.spawner.RadiusFor(value), s.spawner.BodyOptions(value))
	s.engine.AddBody(body)

	ballA.Value = value
	ballA.Position = mid
	s.balls.Rebind(ballA, body)
	s.balls.Remove(ballB)

	s.score.Add(value)
	s.merges++
	s.maxValue = max(s.maxValue, value)

	s.logger.Debug("merged balls",
		"survivor", ballA.ID,
		"absorbed", ballB.ID,
		"value", value,
		"x", mid.X,
		"y", mid.Y,
		"score", s.score.Total(),
	)
	return true
}

// HandleCollisions resolves collision-start pairs in the order given.
// Each merge completes before the next pair is looked at. It returns the
// number of merges.
func (s *Session) HandleCollisions(pairs []physics.Pair) int {
	merged := 0
	for _, p := range pairs {
		if s.ResolveCollision(p.A, p.B) {
			merged++
		}
	}
	return merged
}

// positionOf returns the live position of a ball's body, falling back to the
// cached position when the engine no longer knows the body.
func (s *Session) positionOf(b *Ball) core.Vec2 {
	if pos, ok := s.engine.BodyPosition(b.Body); ok {
		return pos
	}
	return b.Position
}

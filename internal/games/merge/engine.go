package merge

import (
	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/physics"
)

// Engine is the part of the physics world the game logic talks to.
// *physics.World implements it.
type Engine interface {
	CreateCircleBody(x, y, radius float64, opts physics.BodyOptions) physics.BodyID
	AddBody(id physics.BodyID)
	RemoveBody(id physics.BodyID)
	BodyPosition(id physics.BodyID) (core.Vec2, bool)
	BodyKind(id physics.BodyID) (physics.Kind, bool)
}

var _ Engine = (*physics.World)(nil)

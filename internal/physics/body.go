// Package physics is a small rigid-circle world used as the game's physics
// engine: gravity, circle bodies, static wall/floor boxes, contact resolution
// with restitution and friction, and collision-start notifications.
//
// Bodies are referred to by BodyID handles. Handles are allocated from a
// counter and never reused, so a handle that was removed stays invalid forever.
package physics

import "github.com/vovakirdan/tui-mergeball/internal/core"

// BodyID is an opaque handle to a body in a World. The zero value is NoBody.
type BodyID uint64

// NoBody is the handle that never refers to a body.
const NoBody BodyID = 0

// Kind classifies a body at creation time.
type Kind int

const (
	KindBall Kind = iota
	KindWall
	KindFloor
)

// String returns the kind name, also used as the broad-phase tag.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindWall:
		return "wall"
	case KindFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// Visual describes how a body is drawn: a sprite texture and its scale.
type Visual struct {
	Texture string
	Scale   float64
}

// BodyOptions are the material and visual settings of a circle body.
type BodyOptions struct {
	Restitution float64
	Friction    float64
	Visual      Visual
}

type shape int

const (
	shapeCircle shape = iota
	shapeBox
)

// Body is the state of a single rigid body.
// Circles are dynamic; boxes are static and never move.
type Body struct {
	ID          BodyID
	Kind        Kind
	Position    core.Vec2 // Center
	Velocity    core.Vec2
	Radius      float64 // Circles only
	HalfW       float64 // Boxes only
	HalfH       float64 // Boxes only
	Restitution float64
	Friction    float64
	Static      bool
	Visual      Visual

	shape shape
	added bool
}

// IsCircle reports whether the body is a circle.
func (b *Body) IsCircle() bool {
	return b.shape == shapeCircle
}

// halfExtents returns the half width and height of the body's bounding box.
func (b *Body) halfExtents() (float64, float64) {
	if b.shape == shapeCircle {
		return b.Radius, b.Radius
	}
	return b.HalfW, b.HalfH
}

// invMass returns the inverse mass; static bodies have zero inverse mass.
// Circle mass is proportional to area.
func (b *Body) invMass() float64 {
	if b.Static || b.Radius <= 0 {
		return 0
	}
	return 1 / (b.Radius * b.Radius)
}

// Pair is two bodies that started touching during a step.
// In a ball/ball pair A is the ball added to the world first;
// in a ball/wall or ball/floor pair A is the ball.
type Pair struct {
	A, B BodyID
}

// Other returns the member of the pair that is not id.
func (p Pair) Other(id BodyID) BodyID {
	if p.A == id {
		return p.B
	}
	return p.A
}

type pairKey struct {
	lo, hi BodyID
}

func keyOf(a, b BodyID) pairKey {
	if a < b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

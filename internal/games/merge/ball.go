// Package merge implements the merge ball game: numbered balls dropped into a
// walled container, where two balls of equal value that touch combine into one
// ball of double value.
package merge

import (
	"fmt"

	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/physics"
)

// EntityID identifies a ball for its whole life, across merges.
type EntityID uint64

// Ball pairs a physics body with a game value.
// Position is cached at spawn and merge time and is not kept in sync with the
// simulation between merges.
type Ball struct {
	ID       EntityID
	Value    int
	Position core.Vec2
	Body     physics.BodyID
}

// NewBall creates a ball entity. It panics if value is not positive.
func NewBall(id EntityID, position core.Vec2, value int, body physics.BodyID) *Ball {
	if value <= 0 {
		panic(fmt.Sprintf("merge: ball value must be positive, got %d", value))
	}
	return &Ball{
		ID:       id,
		Value:    value,
		Position: position,
		Body:     body,
	}
}

package merge

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-mergeball/internal/physics"
)

// BallRegistry is the set of live balls, indexed by entity id and by body handle.
// Removal goes by entity identity so a survivor whose handle changed during a
// merge is never confused with the ball it absorbed.
type BallRegistry struct {
	byID   map[EntityID]*Ball
	byBody map[physics.BodyID]*Ball
}

// NewBallRegistry creates an empty registry.
func NewBallRegistry() *BallRegistry {
	return &BallRegistry{
		byID:   make(map[EntityID]*Ball),
		byBody: make(map[physics.BodyID]*Ball),
	}
}

// Insert adds a ball. Panics if its id or body handle is already registered.
func (r *BallRegistry) Insert(b *Ball) {
	if _, exists := r.byID[b.ID]; exists {
		panic(fmt.Sprintf("merge: ball %d already registered", b.ID))
	}
	if _, exists := r.byBody[b.Body]; exists {
		panic(fmt.Sprintf("merge: body %d already owned by a ball", b.Body))
	}
	r.byID[b.ID] = b
	r.byBody[b.Body] = b
}

// FindByBody returns the ball that owns a body handle.
// Walls, the floor and stale handles are simply not found.
func (r *BallRegistry) FindByBody(body physics.BodyID) (*Ball, bool) {
	b, ok := r.byBody[body]
	return b, ok
}

// Find returns the ball with the given entity id.
func (r *BallRegistry) Find(id EntityID) (*Ball, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// Remove deletes a ball by identity. It reports whether b was registered.
func (r *BallRegistry) Remove(b *Ball) bool {
	if r.byID[b.ID] != b {
		return false
	}
	delete(r.byID, b.ID)
	if r.byBody[b.Body] == b {
		delete(r.byBody, b.Body)
	}
	return true
}

// Rebind moves a registered ball onto a new body handle.
// Panics if the new handle already belongs to a ball.
func (r *BallRegistry) Rebind(b *Ball, body physics.BodyID) {
	if owner, exists := r.byBody[body]; exists && owner != b {
		panic(fmt.Sprintf("merge: body %d already owned by ball %d", body, owner.ID))
	}
	if r.byBody[b.Body] == b {
		delete(r.byBody, b.Body)
	}
	b.Body = body
	if r.byID[b.ID] == b {
		r.byBody[body] = b
	}
}

// Len returns the number of live balls.
func (r *BallRegistry) Len() int {
	return len(r.byID)
}

// Balls returns the live balls ordered by entity id.
func (r *BallRegistry) Balls() []*Ball {
	out := make([]*Ball, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

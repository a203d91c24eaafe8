package merge

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mergeball/internal/config"
	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/physics"
)

// fakeBody is a body in fakeEngine. Bodies never move on their own.
type fakeBody struct {
	kind   physics.Kind
	pos    core.Vec2
	radius float64
	opts   physics.BodyOptions
	added  bool
}

// fakeEngine records calls and keeps bodies where they were created.
type fakeEngine struct {
	next    physics.BodyID
	bodies  map[physics.BodyID]*fakeBody
	removed []physics.BodyID
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{bodies: make(map[physics.BodyID]*fakeBody)}
}

func (e *fakeEngine) CreateCircleBody(x, y, radius float64, opts physics.BodyOptions) physics.BodyID {
	e.next++
	e.bodies[e.next] = &fakeBody{kind: physics.KindBall, pos: core.V(x, y), radius: radius, opts: opts}
	return e.next
}

func (e *fakeEngine) AddBody(id physics.BodyID) {
	if b, ok := e.bodies[id]; ok {
		b.added = true
	}
}

func (e *fakeEngine) RemoveBody(id physics.BodyID) {
	if _, ok := e.bodies[id]; ok {
		delete(e.bodies, id)
		e.removed = append(e.removed, id)
	}
}

func (e *fakeEngine) BodyPosition(id physics.BodyID) (core.Vec2, bool) {
	b, ok := e.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return b.pos, true
}

func (e *fakeEngine) BodyKind(id physics.BodyID) (physics.Kind, bool) {
	b, ok := e.bodies[id]
	if !ok {
		return 0, false
	}
	return b.kind, true
}

// addStatic adds a wall or floor body.
func (e *fakeEngine) addStatic(kind physics.Kind, x, y float64) physics.BodyID {
	e.next++
	e.bodies[e.next] = &fakeBody{kind: kind, pos: core.V(x, y), added: true}
	return e.next
}

func newTestSession(t *testing.T) (*Session, *fakeEngine) {
	t.Helper()
	engine := newFakeEngine()
	cfg := config.DefaultMergeConfig()
	s := NewSession(engine, cfg, rand.New(rand.NewSource(1)), log.New(io.Discard))
	return s, engine
}

// spawnValue spawns a ball with a chosen value instead of the drawn one.
func spawnValue(s *Session, x, y float64, value int) *Ball {
	s.spawner.next = value
	return s.Spawn(x, y)
}

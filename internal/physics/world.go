package physics

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-mergeball/internal/core"
)

const (
	// spaceMargin extends the broad-phase grid past the field on every side,
	// since the grid has no cells at negative coordinates.
	spaceMargin = 200
	cellSize    = 32

	// Contacts closer than touchMargin count as touching for collision-start
	// purposes even when they do not overlap this step.
	touchMargin = 0.5
	// Broad-phase boxes are padded so bodies resting on a cell edge still
	// share a cell with what they touch.
	broadPad = touchMargin + 1.5
	// Penetration allowed before positional correction kicks in.
	penetrationSlop = 0.5
	correctionRate  = 0.8
	// Approach speeds below bounceThreshold do not bounce.
	bounceThreshold = 40.0
)

// Config describes the world.
type Config struct {
	Width      float64 // Extent of the simulated area, used to size the broad-phase grid
	Height     float64
	Gravity    float64 // Downward acceleration in units per second squared
	Iterations int     // Velocity solver passes per step
}

// World holds bodies and advances the simulation.
// It is not safe for concurrent use; the game drives it from one goroutine.
type World struct {
	cfg       Config
	bodies    map[BodyID]*Body
	order     []*Body // Simulated bodies in insertion order
	objects   map[BodyID]*resolv.Object
	space     *resolv.Space
	nextID    BodyID
	touching  map[pairKey]bool
	listeners []func(pairs []Pair)
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 6
	}
	w := int(cfg.Width) + 2*spaceMargin
	h := int(cfg.Height) + 2*spaceMargin
	return &World{
		cfg:      cfg,
		bodies:   make(map[BodyID]*Body),
		objects:  make(map[BodyID]*resolv.Object),
		space:    resolv.NewSpace(w, h, cellSize, cellSize),
		touching: make(map[pairKey]bool),
	}
}

// CreateCircleBody creates a dynamic circle centered at (x, y).
// The body is not simulated until it is passed to AddBody.
func (w *World) CreateCircleBody(x, y, radius float64, opts BodyOptions) BodyID {
	w.nextID++
	b := &Body{
		ID:          w.nextID,
		Kind:        KindBall,
		Position:    core.V(x, y),
		Radius:      radius,
		Restitution: opts.Restitution,
		Friction:    opts.Friction,
		Visual:      opts.Visual,
		shape:       shapeCircle,
	}
	w.bodies[b.ID] = b
	return b.ID
}

// CreateRectBody creates a static box centered at (x, y).
// The body is not simulated until it is passed to AddBody.
func (w *World) CreateRectBody(x, y, width, height float64, kind Kind) BodyID {
	w.nextID++
	b := &Body{
		ID:       w.nextID,
		Kind:     kind,
		Position: core.V(x, y),
		HalfW:    width / 2,
		HalfH:    height / 2,
		Friction: 0.1,
		Static:   true,
		shape:    shapeBox,
	}
	w.bodies[b.ID] = b
	return b.ID
}

// AddBody starts simulating a created body.
// Unknown handles and bodies already in the world are ignored.
func (w *World) AddBody(id BodyID) {
	b, ok := w.bodies[id]
	if !ok || b.added {
		return
	}

	hw, hh := b.halfExtents()
	obj := resolv.NewObject(0, 0, 2*(hw+broadPad), 2*(hh+broadPad), b.Kind.String())
	obj.Data = b
	w.objects[id] = obj
	w.space.Add(obj)
	w.syncObject(b)

	b.added = true
	w.order = append(w.order, b)
}

// AddBodies adds several bodies in order.
func (w *World) AddBodies(ids ...BodyID) {
	for _, id := range ids {
		w.AddBody(id)
	}
}

// RemoveBody removes a body from the world and forgets its handle.
// Removing an unknown or already removed handle is a no-op.
func (w *World) RemoveBody(id BodyID) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	delete(w.bodies, id)

	if !b.added {
		return
	}
	if obj, ok := w.objects[id]; ok {
		w.space.Remove(obj)
		delete(w.objects, id)
	}
	for i, ob := range w.order {
		if ob == b {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	for k := range w.touching {
		if k.lo == id || k.hi == id {
			delete(w.touching, k)
		}
	}
	b.added = false
}

// Body returns a copy of the body state.
func (w *World) Body(id BodyID) (Body, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return Body{}, false
	}
	return *b, true
}

// BodyPosition returns the current center of a body.
func (w *World) BodyPosition(id BodyID) (core.Vec2, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return b.Position, true
}

// BodyKind returns the classification a body was created with.
func (w *World) BodyKind(id BodyID) (Kind, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return 0, false
	}
	return b.Kind, true
}

// SetVelocity overrides the velocity of a dynamic body.
func (w *World) SetVelocity(id BodyID, v core.Vec2) {
	if b, ok := w.bodies[id]; ok && !b.Static {
		b.Velocity = v
	}
}

// Bodies returns copies of all simulated bodies in insertion order.
func (w *World) Bodies() []Body {
	out := make([]Body, 0, len(w.order))
	for _, b := range w.order {
		out = append(out, *b)
	}
	return out
}

// Len returns the number of simulated bodies.
func (w *World) Len() int {
	return len(w.order)
}

// OnCollisionStart registers a callback that receives the pairs that started
// touching during a step. Callbacks run at the end of Step, after the world
// is consistent, and may add or remove bodies.
func (w *World) OnCollisionStart(fn func(pairs []Pair)) {
	w.listeners = append(w.listeners, fn)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	for _, b := range w.order {
		if b.Static {
			continue
		}
		b.Velocity.Y += w.cfg.Gravity * dt
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		w.syncObject(b)
	}

	contacts := w.detect()

	for range w.cfg.Iterations {
		for i := range contacts {
			contacts[i].solveVelocity()
		}
	}
	for i := range contacts {
		contacts[i].correctPosition()
	}
	for _, b := range w.order {
		if !b.Static {
			w.syncObject(b)
		}
	}

	started := w.updateTouching(contacts)
	if len(started) == 0 {
		return
	}
	for _, fn := range w.listeners {
		fn(started)
	}
}

// detect runs the broad phase through the resolv grid and the exact
// circle tests on the candidates. Pairs come out in insertion order of A.
func (w *World) detect() []contact {
	var contacts []contact
	seen := make(map[pairKey]bool)
	rank := make(map[BodyID]int, len(w.order))
	for i, b := range w.order {
		rank[b.ID] = i
	}

	for _, a := range w.order {
		if a.Static {
			continue
		}
		obj := w.objects[a.ID]
		coll := obj.Check(0, 0)
		if coll == nil {
			continue
		}

		candidates := make([]*Body, 0, len(coll.Objects))
		for _, o := range coll.Objects {
			if b, ok := o.Data.(*Body); ok && b.added && b != a {
				candidates = append(candidates, b)
			}
		}
		sort.Slice(candidates, func(i, j int) bool {
			return rank[candidates[i].ID] < rank[candidates[j].ID]
		})

		for _, b := range candidates {
			key := keyOf(a.ID, b.ID)
			if seen[key] {
				continue
			}
			first, second := a, b
			if !b.Static && rank[b.ID] < rank[a.ID] {
				first, second = b, a
			}
			c, ok := collide(first, second)
			if !ok {
				continue
			}
			seen[key] = true
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// updateTouching swaps in the current touching set and returns the pairs
// that were not touching in the previous step.
func (w *World) updateTouching(contacts []contact) []Pair {
	current := make(map[pairKey]bool, len(contacts))
	var started []Pair
	for _, c := range contacts {
		key := keyOf(c.a.ID, c.b.ID)
		current[key] = true
		if !w.touching[key] {
			started = append(started, Pair{A: c.a.ID, B: c.b.ID})
		}
	}
	w.touching = current
	return started
}

// syncObject moves the broad-phase object to match the body.
func (w *World) syncObject(b *Body) {
	obj, ok := w.objects[b.ID]
	if !ok {
		return
	}
	hw, hh := b.halfExtents()
	obj.Position.X = b.Position.X - hw - broadPad + spaceMargin
	obj.Position.Y = b.Position.Y - hh - broadPad + spaceMargin
	obj.Update()
}

// contact is one touching pair with its solver state.
// normal points from a to b.
type contact struct {
	a, b     *Body
	normal   core.Vec2
	depth    float64
	bias     float64 // Target separating speed from restitution
	friction float64
	jn, jt   float64 // Accumulated impulses
}

// collide tests a against b. a is always a circle.
func collide(a, b *Body) (contact, bool) {
	var (
		normal core.Vec2
		depth  float64
	)

	if b.IsCircle() {
		d := b.Position.Sub(a.Position)
		dist := d.Len()
		depth = a.Radius + b.Radius - dist
		if dist == 0 {
			normal = core.V(0, 1)
		} else {
			normal = d.Scale(1 / dist)
		}
	} else {
		normal, depth = circleBox(a, b)
	}

	if depth <= -touchMargin {
		return contact{}, false
	}

	c := contact{
		a:        a,
		b:        b,
		normal:   normal,
		depth:    depth,
		friction: math.Min(a.Friction, b.Friction),
	}
	vn := b.Velocity.Sub(a.Velocity).Dot(normal)
	if vn < -bounceThreshold {
		c.bias = -math.Max(a.Restitution, b.Restitution) * vn
	}
	return c, true
}

// circleBox returns the normal from circle a toward box b and the overlap depth.
func circleBox(a, b *Body) (core.Vec2, float64) {
	minX, maxX := b.Position.X-b.HalfW, b.Position.X+b.HalfW
	minY, maxY := b.Position.Y-b.HalfH, b.Position.Y+b.HalfH
	p := a.Position

	closest := core.V(core.ClampF(p.X, minX, maxX), core.ClampF(p.Y, minY, maxY))
	d := closest.Sub(p)
	if dist := d.Len(); dist > 0 {
		return d.Scale(1 / dist), a.Radius - dist
	}

	// Center inside the box: push out through the nearest face.
	faces := []struct {
		dist   float64
		normal core.Vec2
	}{
		{p.X - minX, core.V(1, 0)},
		{maxX - p.X, core.V(-1, 0)},
		{p.Y - minY, core.V(0, 1)},
		{maxY - p.Y, core.V(0, -1)},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.dist < best.dist {
			best = f
		}
	}
	return best.normal, a.Radius + best.dist
}

// solveVelocity applies one pass of the normal and friction impulses.
func (c *contact) solveVelocity() {
	if c.depth <= 0 {
		return
	}
	invA, invB := c.a.invMass(), c.b.invMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	vn := c.b.Velocity.Sub(c.a.Velocity).Dot(c.normal)
	dj := (c.bias - vn) / invSum
	jn := math.Max(c.jn+dj, 0)
	dj = jn - c.jn
	c.jn = jn
	c.apply(c.normal.Scale(dj), invA, invB)

	tangent := c.normal.Perp()
	vt := c.b.Velocity.Sub(c.a.Velocity).Dot(tangent)
	maxF := c.friction * c.jn
	jt := core.ClampF(c.jt-vt/invSum, -maxF, maxF)
	djt := jt - c.jt
	c.jt = jt
	c.apply(tangent.Scale(djt), invA, invB)
}

// correctPosition pushes overlapping bodies apart.
func (c *contact) correctPosition() {
	invA, invB := c.a.invMass(), c.b.invMass()
	invSum := invA + invB
	if invSum == 0 || c.depth <= penetrationSlop {
		return
	}
	push := c.normal.Scale((c.depth - penetrationSlop) / invSum * correctionRate)
	c.a.Position = c.a.Position.Sub(push.Scale(invA))
	c.b.Position = c.b.Position.Add(push.Scale(invB))
}

func (c *contact) apply(impulse core.Vec2, invA, invB float64) {
	c.a.Velocity = c.a.Velocity.Sub(impulse.Scale(invA))
	c.b.Velocity = c.b.Velocity.Add(impulse.Scale(invB))
}

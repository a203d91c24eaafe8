package merge

import (
	"testing"

	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/physics"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestRegistryInsertAndFind(t *testing.T) {
	r := NewBallRegistry()
	b := NewBall(1, core.V(0, 0), 2, physics.BodyID(10))
	r.Insert(b)

	if got, ok := r.FindByBody(10); !ok || got != b {
		t.Error("FindByBody did not return the inserted ball")
	}
	if got, ok := r.Find(1); !ok || got != b {
		t.Error("Find did not return the inserted ball")
	}
	if _, ok := r.FindByBody(11); ok {
		t.Error("unknown handle should not be found")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewBallRegistry()
	r.Insert(NewBall(1, core.V(0, 0), 2, 10))

	mustPanic(t, "duplicate body", func() {
		r.Insert(NewBall(2, core.V(0, 0), 2, 10))
	})
	mustPanic(t, "duplicate id", func() {
		r.Insert(NewBall(1, core.V(0, 0), 2, 11))
	})
}

func TestRegistryRemoveByIdentity(t *testing.T) {
	r := NewBallRegistry()
	a := NewBall(1, core.V(0, 0), 2, 10)
	b := NewBall(2, core.V(0, 0), 2, 11)
	r.Insert(a)
	r.Insert(b)

	lookalike := NewBall(1, core.V(0, 0), 2, 10)
	if r.Remove(lookalike) {
		t.Error("removed a ball that was never inserted")
	}
	if !r.Remove(b) {
		t.Error("Remove(b) = false")
	}
	if r.Remove(b) {
		t.Error("second Remove(b) should report false")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if _, ok := r.FindByBody(11); ok {
		t.Error("removed ball still found by body")
	}
}

func TestRegistryRebind(t *testing.T) {
	r := NewBallRegistry()
	a := NewBall(1, core.V(0, 0), 2, 10)
	b := NewBall(2, core.V(0, 0), 2, 11)
	r.Insert(a)
	r.Insert(b)

	r.Rebind(a, 20)
	if a.Body != 20 {
		t.Errorf("a.Body = %d, want 20", a.Body)
	}
	if _, ok := r.FindByBody(10); ok {
		t.Error("old handle still resolves")
	}
	if got, _ := r.FindByBody(20); got != a {
		t.Error("new handle does not resolve to a")
	}

	mustPanic(t, "rebind onto owned body", func() {
		r.Rebind(a, 11)
	})
}

func TestRegistryBallsOrdered(t *testing.T) {
	r := NewBallRegistry()
	for _, id := range []EntityID{5, 1, 3} {
		r.Insert(NewBall(id, core.V(0, 0), 2, physics.BodyID(100+id)))
	}
	balls := r.Balls()
	for i, want := range []EntityID{1, 3, 5} {
		if balls[i].ID != want {
			t.Errorf("Balls()[%d].ID = %d, want %d", i, balls[i].ID, want)
		}
	}
}

func TestNewBallRejectsNonPositiveValue(t *testing.T) {
	mustPanic(t, "zero", func() { NewBall(1, core.V(0, 0), 0, 1) })
	mustPanic(t, "negative", func() { NewBall(1, core.V(0, 0), -2, 1) })
}

func TestScore(t *testing.T) {
	var s Score
	s.Add(4)
	s.Add(0)
	s.Add(8)
	if s.Total() != 12 {
		t.Errorf("Total() = %d, want 12", s.Total())
	}
	mustPanic(t, "negative delta", func() { s.Add(-1) })
	if s.Total() != 12 {
		t.Errorf("rejected delta changed the total to %d", s.Total())
	}
}

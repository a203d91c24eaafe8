package merge

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/physics"
	"github.com/vovakirdan/tui-mergeball/internal/registry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func idle(g *Game, ticks int) {
	in := core.NewInputFrame()
	for range ticks {
		g.Step(in)
	}
}

func (g *Game) bodyCount(kind physics.Kind) int {
	n := 0
	for _, b := range g.world.Bodies() {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("merge game is not registered")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Merge Balls" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestResetBuildsContainer(t *testing.T) {
	g := newTestGame(t, 1)
	if n := g.bodyCount(physics.KindWall); n != 3 {
		t.Errorf("walls = %d, want 3 (left, right, top)", n)
	}
	if n := g.bodyCount(physics.KindFloor); n != 1 {
		t.Errorf("floors = %d, want 1", n)
	}
	if g.bodyCount(physics.KindBall) != 0 || g.State().Score != 0 {
		t.Error("new session should be empty")
	}
}

func TestDroppedBallsMerge(t *testing.T) {
	g := newTestGame(t, 7)

	g.session.spawner.next = 2
	first := g.DropAt(250)
	idle(g, 120)

	g.session.spawner.next = 2
	g.DropAt(250)
	idle(g, 360)

	snap := g.Snapshot()
	if snap.Score != 4 {
		t.Fatalf("score = %d, want 4", snap.Score)
	}
	if len(snap.Balls) != 1 {
		t.Fatalf("balls = %d, want 1", len(snap.Balls))
	}
	ball := snap.Balls[0]
	if ball.ID != first.ID || ball.Value != 4 {
		t.Errorf("remaining ball = %+v, want the first ball with value 4", ball)
	}
	if ball.Radius != 40 || ball.Texture != "num4.png" {
		t.Errorf("merged ball radius %v texture %q", ball.Radius, ball.Texture)
	}
	if ball.Y < 500 || ball.Y > 570 {
		t.Errorf("merged ball at y=%.1f, should have settled near the floor", ball.Y)
	}
	if g.bodyCount(physics.KindBall) != 1 {
		t.Errorf("world has %d ball bodies, want 1", g.bodyCount(physics.KindBall))
	}
}

func TestDropClampedInsideWalls(t *testing.T) {
	g := newTestGame(t, 3)
	g.session.spawner.next = 2

	b := g.DropAt(-1000)
	pos, _ := g.world.BodyPosition(b.Body)
	if pos.X != 40 {
		t.Errorf("left clamp x = %v, want 40 (inner wall 10 + radius 30)", pos.X)
	}

	g.session.spawner.next = 8
	b = g.DropAt(1000)
	pos, _ = g.world.BodyPosition(b.Body)
	if pos.X != 440 {
		t.Errorf("right clamp x = %v, want 440 (inner wall 490 - radius 50)", pos.X)
	}
	if pos.Y != 80 {
		t.Errorf("spawn y = %v, want 80", pos.Y)
	}
}

func TestDropCooldown(t *testing.T) {
	g := newTestGame(t, 5)
	in := core.NewInputFrame()
	in.Set(core.ActionDrop)

	g.Step(in)
	g.Step(in)
	if n := g.session.Balls().Len(); n != 1 {
		t.Fatalf("balls after two quick drops = %d, want 1", n)
	}

	idle(g, g.cfg.Spawn.CooldownTicks)
	g.Step(in)
	if len(g.Journal().Drops) != 2 {
		t.Errorf("drops after cooldown = %d, want 2", len(g.Journal().Drops))
	}
}

func TestAimMovesAndClamps(t *testing.T) {
	g := newTestGame(t, 5)
	start := g.aimX

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	g.Step(in)
	if g.aimX != start+g.cfg.Spawn.CursorStep {
		t.Errorf("aim = %v, want %v", g.aimX, start+g.cfg.Spawn.CursorStep)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionLeft)
	for range 100 {
		g.Step(in)
	}
	if g.aimX != g.clampDrop(-1000) {
		t.Errorf("aim = %v, want it pinned at the left limit %v", g.aimX, g.clampDrop(-1000))
	}
}

func TestPointerDrop(t *testing.T) {
	g := newTestGame(t, 9)
	col, _ := g.layout.cellOf(core.V(250, 0))

	in := core.NewInputFrame()
	in.SetPointer(col)
	g.Step(in)

	drops := g.Journal().Drops
	if len(drops) != 1 {
		t.Fatalf("drops = %d, want 1", len(drops))
	}
	if d := drops[0].X - 250; d < -g.layout.unitsPerCol || d > g.layout.unitsPerCol {
		t.Errorf("click drop x = %.1f, want within one column of 250", drops[0].X)
	}
	if g.aimX != drops[0].X {
		t.Errorf("aim = %v, want it moved to the click %v", g.aimX, drops[0].X)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newTestGame(t, 11)
	g.DropAt(250)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game did not pause")
	}

	before := g.Snapshot()
	drop := core.NewInputFrame()
	drop.Set(core.ActionDrop)
	for range 30 {
		g.Step(drop)
	}
	after := g.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Error("paused game changed state")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("game did not resume")
	}
}

func TestRestartStartsNewSession(t *testing.T) {
	g := newTestGame(t, 13)
	g.session.spawner.next = 2
	a := g.DropAt(250)
	g.session.spawner.next = 2
	b := g.DropAt(250)
	g.session.ResolveCollision(a.Body, b.Body)
	if g.State().Score == 0 {
		t.Fatal("setup merge failed")
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)

	snap := g.Snapshot()
	if snap.Score != 0 || len(snap.Balls) != 0 || snap.Tick != 0 || snap.Drops != 0 {
		t.Errorf("restart left state behind: %+v", snap)
	}
	if g.bodyCount(physics.KindBall) != 0 {
		t.Error("restart left ball bodies in the world")
	}
}

func playScript(g *Game, ticks int) {
	for i := range ticks {
		in := core.NewInputFrame()
		switch {
		case i%45 == 0:
			in.Set(core.ActionDrop)
		case i%45 < 8 && (i/45)%2 == 0:
			in.Set(core.ActionLeft)
		case i%45 < 8:
			in.Set(core.ActionRight)
		}
		if i%150 == 75 {
			in.SetPointer(30)
		}
		g.Step(in)
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	playScript(g1, 900)
	playScript(g2, 900)

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Drops == 0 {
		t.Error("script dropped nothing")
	}
}

func TestReplayMatchesLiveGame(t *testing.T) {
	g := newTestGame(t, 99)
	playScript(g, 900)
	live := g.Snapshot()

	run := g.Journal()
	if run.GameID != GameID || run.Seed != 99 || run.Ticks != live.Tick {
		t.Fatalf("journal header = %+v", run)
	}

	replayed := Replay(run, 0)
	if !reflect.DeepEqual(live, replayed) {
		t.Errorf("replay differs from live game:\nlive   %+v\nreplay %+v", live, replayed)
	}

	settled := Replay(run, 120)
	if settled.Tick != live.Tick+120 {
		t.Errorf("settled tick = %d, want %d", settled.Tick, live.Tick+120)
	}
}

func TestRenderHUDAndBalls(t *testing.T) {
	g := newTestGame(t, 21)
	g.session.spawner.next = 4
	g.DropAt(250)
	idle(g, 90)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(hudRow)
	if !strings.Contains(hud, "Score: 0") {
		t.Errorf("HUD %q has no score", hud)
	}
	if !strings.Contains(hud, "Next: ") {
		t.Errorf("HUD %q has no next-ball preview", hud)
	}
	if !strings.ContainsRune(screen.Row(aimRow), AimGlyph) {
		t.Error("aim marker not drawn")
	}

	out := screen.String()
	if !strings.ContainsRune(out, BallGlyph) {
		t.Error("no ball cells drawn")
	}
	if !strings.Contains(out, "4") {
		t.Error("ball value label not drawn")
	}
	l := g.layout
	if screen.Get(l.originX-1, l.originY-1) != '┌' || screen.Get(l.originX+l.cols, l.originY+l.rows) != '┘' {
		t.Error("container border missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 6, Seed: 1})

	screen := core.NewScreen(10, 6)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Errorf("expected a too-small message, got:\n%s", screen.String())
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Error("too-small state not reported")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Error("resize did not leave the too-small state")
	}
}

func TestLayoutFitsScreen(t *testing.T) {
	g := newTestGame(t, 1)
	for _, size := range [][2]int{{80, 24}, {200, 60}, {40, 40}, {20, 12}} {
		g.Resize(size[0], size[1])
		l := g.layout
		if l.originX-1 < 0 || l.originX+l.cols >= size[0] {
			t.Errorf("%v: box columns %d..%d outside screen", size, l.originX-1, l.originX+l.cols)
		}
		if l.originY+l.rows >= size[1] {
			t.Errorf("%v: box bottom row %d outside screen", size, l.originY+l.rows)
		}
		col, row := l.cellOf(core.V(499, 599))
		if col >= l.originX+l.cols || row >= l.originY+l.rows {
			t.Errorf("%v: field corner maps to (%d,%d) outside the box", size, col, row)
		}
	}
}

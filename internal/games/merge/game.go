package merge

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mergeball/internal/config"
	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/physics"
	"github.com/vovakirdan/tui-mergeball/internal/registry"
)

const (
	// GameID is the registry id of the game.
	GameID = "merge"

	// tickSeconds is the game time covered by one Step, independent of the
	// platform frame rate so recorded runs replay the same at any --fps.
	tickSeconds = 1.0 / 60.0

	minScreenW = 20
	minScreenH = 12
)

// configPath stores the custom config path set via CLI
var configPath string

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used by new sessions. Nil silences logging.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the merge ball game on top of a physics world.
type Game struct {
	cfg     config.MergeConfig
	runtime core.RuntimeConfig
	reseed  *rand.Rand

	world   *physics.World
	session *Session

	tick       uint64
	aimX       float64
	cooldown   int
	paused     bool
	tickMerges int
	drops      []Drop

	layout   layout
	tooSmall bool
}

// New creates a merge game. Call Reset before stepping it.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Merge Balls"
}

// Reset starts a new session: fresh world, walls, registry, score and spawner.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadMerge(configPath)
	if err != nil {
		logger.Warn("using default merge config", "err", err)
		cfg = config.DefaultMergeConfig()
	}
	g.cfg = cfg
	g.runtime = runtime
	g.reseed = rand.New(rand.NewSource(runtime.Seed))

	g.world = physics.NewWorld(physics.Config{
		Width:      cfg.Field.Width,
		Height:     cfg.Field.Height,
		Gravity:    cfg.Physics.Gravity,
		Iterations: cfg.Physics.Iterations,
	})
	g.buildWalls()

	rng := rand.New(rand.NewSource(runtime.Seed))
	g.session = NewSession(g.world, cfg, rng, logger)
	g.world.OnCollisionStart(func(pairs []physics.Pair) {
		g.tickMerges += g.session.HandleCollisions(pairs)
	})

	g.tick = 0
	g.aimX = cfg.Field.Width / 2
	g.cooldown = 0
	g.paused = false
	g.tickMerges = 0
	g.drops = nil

	g.Resize(runtime.ScreenW, runtime.ScreenH)

	logger.Info("session started", "game", GameID, "seed", runtime.Seed, "next", g.session.NextValue())
}

// buildWalls adds the floor, both side walls and the top frame.
func (g *Game) buildWalls() {
	f := g.cfg.Field
	floor := g.world.CreateRectBody(f.Width/2, f.Height+10, f.Width, 20, physics.KindFloor)
	left := g.world.CreateRectBody(0, f.Height/2, f.WallThickness, f.Height, physics.KindWall)
	right := g.world.CreateRectBody(f.Width, f.Height/2, f.WallThickness, f.Height, physics.KindWall)
	top := g.world.CreateRectBody(f.Width/2, 0, f.Width, f.TopHeight, physics.KindWall)
	g.world.AddBodies(floor, left, right, top)
}

// Resize adapts the layout to a new terminal size without touching the session.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	g.tooSmall = screenW < minScreenW || screenH < minScreenH
	g.layout = newLayout(g.cfg.Field, screenW, screenH)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		runtime := g.runtime
		runtime.Seed = g.reseed.Int63()
		g.Reset(runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.updateAim(in)

	dropX, wantDrop := g.aimX, in.Has(core.ActionDrop)
	if col, ok := in.Pointer(); ok {
		dropX = g.layout.colToField(col)
		g.aimX = g.clampDrop(dropX)
		wantDrop = true
	}
	if wantDrop && g.cooldown == 0 {
		g.DropAt(dropX)
		g.cooldown = g.cfg.Spawn.CooldownTicks
	}

	merges := g.advance()
	if g.cooldown > 0 {
		g.cooldown--
	}

	return core.StepResult{State: g.State(), Merges: merges}
}

// updateAim moves the drop cursor one step per Left/Right action.
func (g *Game) updateAim(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.aimX -= g.cfg.Spawn.CursorStep
	}
	if in.Has(core.ActionRight) {
		g.aimX += g.cfg.Spawn.CursorStep
	}
	g.aimX = g.clampDrop(g.aimX)
}

// advance runs one tick of physics and returns the merges it produced.
func (g *Game) advance() int {
	substeps := max(1, g.cfg.Physics.Substeps)
	dt := tickSeconds / float64(substeps)

	g.tickMerges = 0
	for range substeps {
		g.world.Step(dt)
	}
	g.tick++
	return g.tickMerges
}

// clampDrop keeps a ball of the next value inside the side walls.
func (g *Game) clampDrop(x float64) float64 {
	r := g.session.Spawner().RadiusFor(g.session.NextValue())
	lo := g.cfg.InnerLeft() + r
	hi := g.cfg.InnerRight() - r
	if lo > hi {
		return g.cfg.Field.Width / 2
	}
	return core.ClampF(x, lo, hi)
}

// DropAt drops the next ball at field coordinate x on the spawn line and
// records the drop in the journal. x is clamped so the ball fits between the walls.
func (g *Game) DropAt(x float64) *Ball {
	x = g.clampDrop(x)
	g.drops = append(g.drops, Drop{Tick: g.tick, X: x})
	return g.session.Spawn(x, g.cfg.Spawn.Y)
}

// Session returns the game's session.
func (g *Game) Session() *Session {
	return g.session
}

// State returns the current game state. The game has no losing condition.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: false,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

package merge

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-mergeball/internal/config"
	"github.com/vovakirdan/tui-mergeball/internal/core"
)

// Visual characters for rendering
const (
	BallGlyph  = '█'
	FrameGlyph = '░'
	AimGlyph   = '▼'
)

const (
	hudRow = 0
	aimRow = 1
	boxTop = 2
)

// layout maps field coordinates to screen cells. A cell is twice as tall as
// it is wide, so one row covers twice the field units of one column.
type layout struct {
	originX, originY int // Screen cell of field (0, 0)
	cols, rows       int // Interior size in cells
	unitsPerCol      float64
}

func newLayout(field config.FieldConfig, screenW, screenH int) layout {
	availW := screenW - 2
	availH := screenH - boxTop - 2
	if availW <= 0 || availH <= 0 || field.Width <= 0 || field.Height <= 0 {
		return layout{unitsPerCol: 1}
	}

	upc := math.Max(field.Width/float64(availW), field.Height/(2*float64(availH)))
	cols := min(availW, int(math.Ceil(field.Width/upc)))
	rows := min(availH, int(math.Ceil(field.Height/(2*upc))))

	return layout{
		originX:     (screenW - cols) / 2,
		originY:     boxTop + 1,
		cols:        cols,
		rows:        rows,
		unitsPerCol: upc,
	}
}

func (l layout) unitsPerRow() float64 {
	return 2 * l.unitsPerCol
}

// cellOf returns the screen cell containing a field point.
func (l layout) cellOf(p core.Vec2) (int, int) {
	return l.originX + int(math.Floor(p.X/l.unitsPerCol)),
		l.originY + int(math.Floor(p.Y/l.unitsPerRow()))
}

// cellCenter returns the field point at the center of a screen cell.
func (l layout) cellCenter(col, row int) core.Vec2 {
	return core.V(
		(float64(col-l.originX)+0.5)*l.unitsPerCol,
		(float64(row-l.originY)+0.5)*l.unitsPerRow(),
	)
}

// colToField maps a clicked screen column to a field x coordinate.
func (l layout) colToField(col int) float64 {
	return l.cellCenter(col, l.originY).X
}

// valueColor picks the ball color for a value: 2 is level 0, 4 level 1 and so on.
func valueColor(value int) core.Color {
	level := 0
	for v := value; v > 2; v /= 2 {
		level++
	}
	return core.ColorForLevel(level)
}

// Render draws the field, the balls and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.session == nil {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderField(dst)
	g.renderBalls(dst)
	g.renderAim(dst)
	g.renderHUD(dst)

	if g.paused {
		g.renderPause(dst)
	}
}

// renderField draws the container walls and the shaded top frame.
func (g *Game) renderField(dst *core.Screen) {
	l := g.layout
	dst.DrawBox(core.NewRect(l.originX-1, l.originY-1, l.cols+2, l.rows+2), core.ColorGray)

	frameRows := int(g.cfg.Field.TopHeight / 2 / l.unitsPerRow())
	for y := range min(frameRows, l.rows) {
		for x := range l.cols {
			dst.SetCell(l.originX+x, l.originY+y, FrameGlyph, core.ColorGray)
		}
	}
}

// renderBalls fills every cell whose center lies inside a ball and writes the
// ball's value over its center.
func (g *Game) renderBalls(dst *core.Screen) {
	l := g.layout
	for _, ball := range g.session.Balls().Balls() {
		body, ok := g.world.Body(ball.Body)
		if !ok {
			continue
		}
		color := valueColor(ball.Value)

		minCol, minRow := l.cellOf(body.Position.Sub(core.V(body.Radius, body.Radius)))
		maxCol, maxRow := l.cellOf(body.Position.Add(core.V(body.Radius, body.Radius)))
		minCol, maxCol = max(minCol, l.originX), min(maxCol, l.originX+l.cols-1)
		minRow, maxRow = max(minRow, l.originY), min(maxRow, l.originY+l.rows-1)

		r2 := body.Radius * body.Radius
		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				if l.cellCenter(col, row).Sub(body.Position).LenSq() <= r2 {
					dst.SetCell(col, row, BallGlyph, color)
				}
			}
		}

		label := strconv.Itoa(ball.Value)
		cx, cy := l.cellOf(body.Position)
		dst.DrawTextColor(cx-len(label)/2, cy, label, core.ColorBrightWhite)
	}
}

// renderAim marks the drop column above the container.
func (g *Game) renderAim(dst *core.Screen) {
	col, _ := g.layout.cellOf(core.V(g.aimX, 0))
	dst.SetCell(col, aimRow, AimGlyph, valueColor(g.session.NextValue()))
}

// renderHUD draws the score and the next-ball preview.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, hudRow, fmt.Sprintf("Score: %d", g.session.Score()))

	next := g.session.NextValue()
	nextText := fmt.Sprintf("Next: %d", next)
	x := dst.Width() - len(nextText) - 1
	dst.DrawText(x, hudRow, "Next: ")
	dst.DrawTextColor(x+len("Next: "), hudRow, strconv.Itoa(next), valueColor(next))
}

// renderPause draws a centered pause box over the field.
func (g *Game) renderPause(dst *core.Screen) {
	title := "PAUSED"
	subtitle := "Press P to resume"
	boxW := len(subtitle) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorDefault)
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

package tui

import (
	"fmt"
	"math"

	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/engine"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// traceSteps 弹道线的采样点数
const traceSteps = 8

type glyph struct {
	r     rune
	style tcell.Style
}

var glyphs = map[types.Variant]glyph{
	types.VariantBalloon:       {'O', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	types.VariantGoldenBalloon: {'@', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)},
	types.VariantBird:          {'v', tcell.StyleDefault.Foreground(tcell.ColorLightGray)},
	types.VariantDragon:        {'W', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)},
	types.VariantMouse:         {'m', tcell.StyleDefault.Foreground(tcell.ColorGray)},
	types.VariantHedgehog:      {'*', tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 100, 50))},
	types.VariantGopher:        {'g', tcell.StyleDefault.Foreground(tcell.NewRGBColor(170, 120, 70))},
	types.VariantGodzilla:      {'G', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	types.VariantHydra:         {'H', tcell.StyleDefault.Foreground(tcell.ColorAqua)},
	types.VariantPterodactyl:   {'P', tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 130, 80))},
	types.VariantBomb:          {'B', tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)},
	types.VariantGoldenClock:   {'C', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	types.VariantAmmoDrop:      {'A', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)},
	types.VariantMagazineDrop:  {'M', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	types.VariantShotgunDrop:   {'S', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)},
	types.VariantBirthdayCap:   {'^', tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)},
}

var toneColors = map[components.Tone]tcell.Color{
	components.ToneNeutral: tcell.ColorWhite,
	components.ToneGain:    tcell.ColorGreen,
	components.TonePenalty: tcell.ColorRed,
	components.ToneGold:    tcell.ColorYellow,
	components.ToneTime:    tcell.ColorAqua,
	components.ToneShells:  tcell.NewRGBColor(255, 140, 0),
	components.ToneParty:   tcell.ColorFuchsia,
	components.ToneBlast:   tcell.NewRGBColor(255, 60, 0),
}

var (
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	aimStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// draw 绘制整帧
func (d *Driver) draw() {
	d.screen.Clear()
	eng := d.session.Engine

	for _, hint := range eng.RenderHints() {
		switch {
		case hint.Variant == types.VariantBulletTrace:
			d.drawTrace(hint)
		case hint.Variant == types.VariantFloatingText:
			col, row := d.toCell(hint.X, hint.Y)
			d.putString(col-len(hint.Text)/2, row, hint.Text, tcell.StyleDefault.Foreground(toneColors[hint.Tone]).Bold(hint.Opacity > 0.5))
		case types.IsBossClass(hint.Variant):
			d.drawBoss(hint)
		default:
			d.drawGlyph(hint)
		}
	}

	if eng.Phase() == game.PhaseRunning {
		col, row := d.toCell(d.aimX, d.aimY)
		r, _, _, _ := d.screen.GetContent(col, row)
		if r == 0 || r == ' ' {
			r = '+'
		}
		d.setCell(col, row, r, aimStyle)
	}

	d.drawStatus(eng.Telemetry())
	if msg := d.banner.message(eng.Phase()); msg != "" {
		d.putString((d.cols-len(msg))/2, statusRows+d.playRows()/2, msg, bannerStyle)
	}
	d.screen.Show()
}

func (d *Driver) drawGlyph(hint engine.RenderHint) {
	g, ok := glyphs[hint.Variant]
	if !ok {
		return
	}
	col, row := d.toCell(hint.X, hint.Y)
	d.setCell(col, row, g.r, g.style)
	if hint.Variant == types.VariantBomb {
		d.putString(col+1, row, fmt.Sprintf("%.0f", math.Ceil(hint.FuseRemaining)), g.style)
	}
}

// drawBoss 矩形命中框以底边中点定位，上方一行显示血量
func (d *Driver) drawBoss(hint engine.RenderHint) {
	g := glyphs[hint.Variant]
	left, top := d.toCell(hint.X-hint.Width/2, hint.Y-hint.Height)
	right, bottom := d.toCell(hint.X+hint.Width/2, hint.Y)
	for row := top; row < max(bottom, top+1); row++ {
		for col := left; col < max(right, left+1); col++ {
			d.setCell(col, row, g.r, g.style)
		}
	}
	if hint.MaxHP > 0 {
		d.putString(left, top-1, fmt.Sprintf("%d/%d", hint.HP, hint.MaxHP), tcell.StyleDefault.Foreground(tcell.ColorRed))
	}
}

// drawTrace 沿弹道取样绘制，越靠近终点越亮
func (d *Driver) drawTrace(hint engine.RenderHint) {
	for i := 1; i <= traceSteps; i++ {
		progress := float64(i) / traceSteps
		x := hint.TraceFromX + (hint.X-hint.TraceFromX)*progress
		y := hint.TraceFromY + (hint.Y-hint.TraceFromY)*progress
		level := int32(80 + 175*progress*hint.Opacity)
		col, row := d.toCell(x, y)
		d.setCell(col, row, '.', tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, level, level/2)))
	}
}

func (d *Driver) drawStatus(t game.Telemetry) {
	for col := range d.cols {
		d.screen.SetContent(col, 0, ' ', nil, statusStyle)
	}
	d.putString(0, 0, t.String(), statusStyle)
}

// setCell 只绘制游戏区域内的单元格
func (d *Driver) setCell(col, row int, r rune, style tcell.Style) {
	if col < 0 || col >= d.cols || row < statusRows || row >= d.rows {
		return
	}
	d.screen.SetContent(col, row, r, nil, style)
}

func (d *Driver) putString(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if row == 0 {
			if c := col + i; c >= 0 && c < d.cols {
				d.screen.SetContent(c, row, r, nil, style)
			}
			continue
		}
		d.setCell(col+i, row, r, style)
	}
}

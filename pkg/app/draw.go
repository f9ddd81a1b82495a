package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/engine"
	"github.com/decker502/skyshot/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	skyColor    = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	groundColor = color.RGBA{R: 96, G: 160, B: 72, A: 255}
	hpBackColor = color.RGBA{R: 60, G: 0, B: 0, A: 200}
	hpColor     = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

// groundLine 地面的 y 坐标（与地面生物的出生高度一致）
const groundLine = 560

// variantColors 每种实体的填充色
var variantColors = map[types.Variant]color.RGBA{
	types.VariantBalloon:       {R: 230, G: 60, B: 60, A: 255},
	types.VariantGoldenBalloon: {R: 255, G: 200, B: 0, A: 255},
	types.VariantBird:          {R: 70, G: 70, B: 90, A: 255},
	types.VariantDragon:        {R: 150, G: 40, B: 160, A: 255},
	types.VariantMouse:         {R: 150, G: 150, B: 150, A: 255},
	types.VariantHedgehog:      {R: 120, G: 80, B: 40, A: 255},
	types.VariantGopher:        {R: 170, G: 120, B: 70, A: 255},
	types.VariantGodzilla:      {R: 40, G: 110, B: 60, A: 255},
	types.VariantHydra:         {R: 30, G: 90, B: 120, A: 255},
	types.VariantPterodactyl:   {R: 140, G: 100, B: 60, A: 255},
	types.VariantBomb:          {R: 20, G: 20, B: 20, A: 255},
	types.VariantGoldenClock:   {R: 255, G: 215, B: 0, A: 255},
	types.VariantAmmoDrop:      {R: 110, G: 120, B: 50, A: 255},
	types.VariantMagazineDrop:  {R: 200, G: 160, B: 60, A: 255},
	types.VariantShotgunDrop:   {R: 200, G: 80, B: 40, A: 255},
	types.VariantBirthdayCap:   {R: 255, G: 100, B: 200, A: 255},
}

// toneColors 飘字色调
var toneColors = map[components.Tone]color.RGBA{
	components.ToneNeutral: {R: 255, G: 255, B: 255, A: 255},
	components.ToneGain:    {R: 80, G: 255, B: 80, A: 255},
	components.TonePenalty: {R: 255, G: 70, B: 70, A: 255},
	components.ToneGold:    {R: 255, G: 215, B: 0, A: 255},
	components.ToneTime:    {R: 120, G: 200, B: 255, A: 255},
	components.ToneShells:  {R: 255, G: 140, B: 0, A: 255},
	components.ToneParty:   {R: 255, G: 100, B: 200, A: 255},
	components.ToneBlast:   {R: 255, G: 60, B: 0, A: 255},
}

// fade 按不透明度缩放颜色（预乘 alpha）
func fade(c color.RGBA, opacity float64) color.RGBA {
	a := math.Max(0, math.Min(1, opacity))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// drawScene 按生成顺序绘制所有实体，后生成的在上层
func drawScene(screen *ebiten.Image, hints []engine.RenderHint) {
	screen.Fill(skyColor)
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, groundLine, w, h-groundLine, groundColor, false)

	for _, hint := range hints {
		switch {
		case hint.Variant == types.VariantBulletTrace:
			drawTrace(screen, hint)
		case hint.Variant == types.VariantFloatingText:
			drawText(screen, hint)
		case types.IsBossClass(hint.Variant):
			drawBoss(screen, hint)
		default:
			drawCircle(screen, hint)
		}
	}
}

func drawCircle(screen *ebiten.Image, hint engine.RenderHint) {
	clr, ok := variantColors[hint.Variant]
	if !ok {
		return
	}
	r := float32(hint.Radius * hint.Scale)
	vector.DrawFilledCircle(screen, float32(hint.X), float32(hint.Y), r, clr, true)

	switch hint.Variant {
	case types.VariantBalloon, types.VariantGoldenBalloon:
		// 气球绳
		vector.StrokeLine(screen, float32(hint.X), float32(hint.Y)+r, float32(hint.X), float32(hint.Y)+r*2, 1, color.White, false)
	case types.VariantBomb:
		label := fmt.Sprintf("%.0f", math.Ceil(hint.FuseRemaining))
		ebitenutil.DebugPrintAt(screen, label, int(hint.X)-len(label)*3, int(hint.Y)-8)
	}
}

// drawBoss 矩形命中框以底边中点定位，上方显示血条
func drawBoss(screen *ebiten.Image, hint engine.RenderHint) {
	left := float32(hint.X - hint.Width/2)
	top := float32(hint.Y - hint.Height)
	w, h := float32(hint.Width), float32(hint.Height)
	vector.DrawFilledRect(screen, left, top, w, h, variantColors[hint.Variant], false)

	if hint.MaxHP <= 0 {
		return
	}
	ratio := float32(hint.HP) / float32(hint.MaxHP)
	vector.DrawFilledRect(screen, left, top-10, w, 6, hpBackColor, false)
	vector.DrawFilledRect(screen, left, top-10, w*ratio, 6, hpColor, false)
}

func drawTrace(screen *ebiten.Image, hint engine.RenderHint) {
	clr := fade(color.RGBA{R: 255, G: 255, B: 180, A: 255}, hint.Opacity)
	vector.StrokeLine(screen, float32(hint.TraceFromX), float32(hint.TraceFromY), float32(hint.X), float32(hint.Y), 2, clr, true)
}

// drawText 调试字体不支持着色，用色块标记色调
func drawText(screen *ebiten.Image, hint engine.RenderHint) {
	x, y := int(hint.X)-len(hint.Text)*3, int(hint.Y)
	vector.DrawFilledRect(screen, float32(x-6), float32(y+4), 4, 8, fade(toneColors[hint.Tone], hint.Opacity), false)
	ebitenutil.DebugPrintAt(screen, hint.Text, x, y)
}

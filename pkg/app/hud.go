package app

import (
	"fmt"

	"github.com/decker502/skyshot/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// bannerDuration 横幅提示显示时长（秒）
const bannerDuration = 2.0

// hud 状态栏与横幅提示，作为 Observer 接收引擎事件
type hud struct {
	game.BaseObserver

	banner      string
	bannerTimer float64
	lastOutcome string
}

func newHUD() *hud {
	return &hud{}
}

func (h *hud) show(msg string) {
	h.banner = msg
	h.bannerTimer = bannerDuration
}

func (h *hud) update(dt float64) {
	if h.bannerTimer <= 0 {
		return
	}
	h.bannerTimer -= dt
	if h.bannerTimer <= 0 {
		h.banner = ""
	}
}

func (h *hud) OnNotice(n game.Notice) {
	if msg := n.Headline(); msg != "" {
		h.show(msg)
	}
}

func (h *hud) OnRoundWon(score, round int) {
	h.lastOutcome = fmt.Sprintf("ROUND %d CLEARED! SCORE %d - CLICK FOR NEXT ROUND", round, score)
}

func (h *hud) OnRoundLost(score int) {
	h.lastOutcome = fmt.Sprintf("TIME UP! SCORE %d - CLICK TO RETRY", score)
}

func (h *hud) draw(screen *ebiten.Image, t game.Telemetry, phase game.Phase) {
	ebitenutil.DebugPrintAt(screen, t.String(), 8, 8)

	w, hgt := screen.Bounds().Dx(), screen.Bounds().Dy()
	if h.banner != "" {
		ebitenutil.DebugPrintAt(screen, h.banner, w/2-len(h.banner)*3, hgt/3)
	}

	var prompt string
	switch phase {
	case game.PhaseWon, game.PhaseLost:
		prompt = h.lastOutcome
	case game.PhaseIdle:
		prompt = "PRESS R TO START"
	}
	if prompt != "" {
		ebitenutil.DebugPrintAt(screen, prompt, w/2-len(prompt)*3, hgt/2)
	}
}

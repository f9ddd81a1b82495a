package tui

import (
	"fmt"

	"github.com/decker502/skyshot/pkg/game"
)

// bannerSeconds 横幅提示显示时长
const bannerSeconds = 2.0

// Banner 游戏区域中央的提示文字，作为 Observer 接收引擎事件
type Banner struct {
	game.BaseObserver

	text    string
	timer   float64
	outcome string
}

// NewBanner 创建提示横幅
func NewBanner() *Banner {
	return &Banner{}
}

func (b *Banner) OnNotice(n game.Notice) {
	if msg := n.Headline(); msg != "" {
		b.text, b.timer = msg, bannerSeconds
	}
}

func (b *Banner) OnRoundWon(score, round int) {
	b.outcome = fmt.Sprintf("ROUND %d CLEARED! SCORE %d - SPACE FOR NEXT ROUND", round, score)
}

func (b *Banner) OnRoundLost(score int) {
	b.outcome = fmt.Sprintf("TIME UP! SCORE %d - SPACE TO RETRY", score)
}

func (b *Banner) update(dt float64) {
	if b.timer <= 0 {
		return
	}
	b.timer -= dt
	if b.timer <= 0 {
		b.text = ""
	}
}

// message 当前应显示的文字，回合结束时优先显示结果
func (b *Banner) message(phase game.Phase) string {
	switch phase {
	case game.PhaseWon, game.PhaseLost:
		return b.outcome
	case game.PhaseIdle:
		return "PRESS R TO START"
	}
	return b.text
}

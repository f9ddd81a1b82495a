package game

import "github.com/decker502/skyshot/pkg/config"

// UnlimitedAmmo 全自动模式下遥测中子弹数量的占位值
const UnlimitedAmmo = -1

// timeEpsilon 倒计时判零的容差，避免浮点累减误差导致多走一帧
const timeEpsilon = 1e-9

// Ledger 弹药账本
//
// 主武器（单发）与副武器（范围）各有一个计数器，计数器永远不会为负。
// 全自动模式期间按固定节奏自动射击，且不消耗主武器弹药。
type Ledger struct {
	Bullets int
	Shells  int

	FullAutoActive    bool
	FullAutoRemaining float64 // 剩余时间（秒）
	FireAccumulator   float64 // 射击节奏累加器（毫秒）

	// 最近一次已知的瞄准点，全自动射击使用
	AimX, AimY float64
	HasAim     bool
}

// Reset 回合开始时将弹药恢复为初始值并关闭全自动模式
func (l *Ledger) Reset(t config.LedgerTuning) {
	l.Bullets = t.StartingBullets
	l.Shells = t.StartingShells
	l.FullAutoActive = false
	l.FullAutoRemaining = 0
	l.FireAccumulator = 0
}

// SpendBullet 消耗一发主武器弹药，弹药不足时返回 false
func (l *Ledger) SpendBullet() bool {
	if l.Bullets <= 0 {
		return false
	}
	l.Bullets--
	return true
}

// SpendShell 消耗一发副武器弹药，弹药不足时返回 false
func (l *Ledger) SpendShell() bool {
	if l.Shells <= 0 {
		return false
	}
	l.Shells--
	return true
}

// AddBullets 补充主武器弹药
func (l *Ledger) AddBullets(n int) {
	if n > 0 {
		l.Bullets += n
	}
}

// AddShells 补充副武器弹药
func (l *Ledger) AddShells(n int) {
	if n > 0 {
		l.Shells += n
	}
}

// SetAim 更新瞄准点
func (l *Ledger) SetAim(x, y float64) {
	l.AimX, l.AimY = x, y
	l.HasAim = true
}

// GrantFullAuto 开启（或刷新）全自动模式
// 累加器预置为一个射击周期，下一帧立即开火
func (l *Ledger) GrantFullAuto(seconds, cadenceMillis float64) {
	l.FullAutoActive = true
	l.FullAutoRemaining = seconds
	l.FireAccumulator = cadenceMillis
}

// TickFullAuto 推进全自动模式
//
// 返回本帧应自动射击的次数，以及全自动模式是否在本帧结束。
// 结束的那一帧不再射击。
func (l *Ledger) TickFullAuto(dtMillis, cadenceMillis float64) (shots int, expired bool) {
	if !l.FullAutoActive {
		return 0, false
	}

	l.FullAutoRemaining -= dtMillis / 1000
	if l.FullAutoRemaining <= timeEpsilon {
		l.FullAutoActive = false
		l.FullAutoRemaining = 0
		l.FireAccumulator = 0
		return 0, true
	}

	l.FireAccumulator += dtMillis
	for l.FireAccumulator >= cadenceMillis {
		l.FireAccumulator -= cadenceMillis
		shots++
	}
	return shots, false
}

// BulletsForDisplay 遥测使用的子弹数量，全自动模式下为 UnlimitedAmmo
func (l *Ledger) BulletsForDisplay() int {
	if l.FullAutoActive {
		return UnlimitedAmmo
	}
	return l.Bullets
}

// Package sim 无界面地驱动引擎，用于批量验证回合平衡与生成策略
//
// Bot 模拟一个只打有利目标的玩家；Play 以固定帧长推进一个完整回合并汇总结果。
package sim

import (
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/engine"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/types"
)

// shootPriority 数值越大越优先，未列出的种类（小动物、炸弹、反馈）不打
var shootPriority = map[types.Variant]int{
	types.VariantBalloon:       1,
	types.VariantGoldenBalloon: 3,
	types.VariantGodzilla:      2,
	types.VariantHydra:         2,
	types.VariantPterodactyl:   2,
	types.VariantGoldenClock:   4,
	types.VariantAmmoDrop:      5,
	types.VariantMagazineDrop:  4,
	types.VariantShotgunDrop:   3,
	types.VariantBirthdayCap:   5,
}

// Bot 自动瞄准射击
type Bot struct {
	// ReactionMillis 两次射击之间的最短间隔
	ReactionMillis float64
	// AreaThreshold 一次范围攻击至少覆盖的有利目标数
	AreaThreshold int

	sinceShot float64
}

// NewBot 创建机器人玩家
func NewBot(reactionMillis float64) *Bot {
	return &Bot{ReactionMillis: reactionMillis, AreaThreshold: 3}
}

// Act 每帧调用一次，必要时开火，返回是否命中
func (b *Bot) Act(e *engine.Engine, dtMillis float64) bool {
	b.sinceShot += dtMillis
	if b.sinceShot < b.ReactionMillis || e.Phase() != game.PhaseRunning {
		return false
	}

	hints := e.RenderHints()
	target, ok := pickTarget(hints)
	if !ok {
		return false
	}
	b.sinceShot = 0

	x, y := aimPoint(target)
	if e.Telemetry().Shells > 0 && countNear(hints, x, y, areaRadius) >= b.AreaThreshold {
		return e.ResolveArea(x, y).Affected > 0
	}
	return e.ResolvePrimary(x, y).Resolved
}

// areaRadius 机器人估算范围攻击覆盖面时使用的半径
const areaRadius = 60

// pickTarget 优先级最高的目标，同优先级取最新生成的（绘制在最上层）
func pickTarget(hints []engine.RenderHint) (engine.RenderHint, bool) {
	var best engine.RenderHint
	bestPriority := 0
	for _, h := range hints {
		if p := shootPriority[h.Variant]; p >= bestPriority && p > 0 {
			best, bestPriority = h, p
		}
	}
	return best, bestPriority > 0
}

// aimPoint Boss 以底边中点定位，瞄准矩形中心
func aimPoint(h engine.RenderHint) (float64, float64) {
	if types.IsBossClass(h.Variant) {
		return h.X, h.Y - h.Height/2
	}
	return h.X, h.Y
}

func countNear(hints []engine.RenderHint, x, y, radius float64) int {
	n := 0
	for _, h := range hints {
		if shootPriority[h.Variant] == 0 || types.IsPickup(h.Variant) {
			continue
		}
		dx, dy := h.X-x, h.Y-y
		if dx*dx+dy*dy <= radius*radius {
			n++
		}
	}
	return n
}

// RoundReport 一个回合的汇总
type RoundReport struct {
	Round      int
	Phase      game.Phase
	Score      int
	RoundScore int
	Target     int
	Hits       int
	Spawned    map[types.Variant]int
}

// Play 以 frameMillis 为帧长推进当前回合直到结束
func Play(e *engine.Engine, bot *Bot, frameMillis float64) (RoundReport, error) {
	report := RoundReport{Round: e.Round(), Spawned: make(map[types.Variant]int)}
	seen := make(map[ecs.EntityID]struct{})

	for e.Phase() == game.PhaseRunning {
		if err := e.Tick(frameMillis); err != nil {
			return report, err
		}
		for _, h := range e.RenderHints() {
			if types.IsFeedback(h.Variant) {
				continue
			}
			if _, ok := seen[h.ID]; !ok {
				seen[h.ID] = struct{}{}
				report.Spawned[h.Variant]++
			}
		}
		if bot != nil && bot.Act(e, frameMillis) {
			report.Hits++
		}
	}

	t := e.Telemetry()
	report.Phase = e.Phase()
	report.Score = t.Score
	report.RoundScore = t.RoundScore
	report.Target = t.Target
	return report, nil
}

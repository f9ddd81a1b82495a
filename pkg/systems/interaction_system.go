package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/entities"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/types"
	"github.com/decker502/skyshot/pkg/utils"
)

// InteractionSystem 实体之间的交互规则
//
// 职责：
//   - 地面 Boss 踩扁靠近的地面小动物
//   - 翼龙吃掉靠近的飞鸟
//   - 推进炸弹引信，燃尽时引爆
//   - 把 Boss 的吼叫请求转换为通知
//
// 邻近判定使用绝对距离构成的矩形区域，而不是精确的几何相交。
type InteractionSystem struct {
	env      entities.Env
	combat   *CombatSystem
	observer game.Observer
}

// NewInteractionSystem 创建交互系统
func NewInteractionSystem(env entities.Env, combat *CombatSystem, observer game.Observer) *InteractionSystem {
	return &InteractionSystem{env: env, combat: combat, observer: observer}
}

// Update 执行一帧交互，dt 单位为秒
func (s *InteractionSystem) Update(rs *game.RoundState, dt float64) {
	var (
		groundBosses, predators []ecs.EntityID
		creatures, nuisances    []ecs.EntityID
		hazards, roaring        []ecs.EntityID
	)

	for _, id := range ecs.GetEntitiesWith2[*components.VariantComponent, *components.PositionComponent](s.env.EM) {
		if s.env.EM.IsMarked(id) {
			continue
		}
		vc, _ := ecs.GetComponent[*components.VariantComponent](s.env.EM, id)
		v := vc.Variant
		switch {
		case types.IsGroundBoss(v):
			groundBosses = append(groundBosses, id)
		case types.IsFlyingPredator(v):
			predators = append(predators, id)
		case types.IsGroundCreature(v):
			creatures = append(creatures, id)
		case types.IsAirNuisance(v):
			nuisances = append(nuisances, id)
		case types.IsHazard(v):
			hazards = append(hazards, id)
		}
		if types.IsBossClass(v) {
			roaring = append(roaring, id)
		}
	}

	tuning := s.env.Tuning.Interaction
	for _, boss := range groundBosses {
		s.devour(rs, boss, creatures, tuning.TrampleRangeX, tuning.TrampleRangeY, false)
	}
	for _, boss := range predators {
		s.devour(rs, boss, nuisances, tuning.PredatorRangeX, tuning.PredatorRangeY, true)
	}

	for _, id := range hazards {
		s.tickFuse(rs, id, dt)
	}
	for _, id := range roaring {
		s.emitRoar(id)
	}
}

// devour 移除 Boss 附近的猎物并扣分
// 地面 Boss 以底边中点为参照，飞行 Boss 以命中框中心为参照
func (s *InteractionSystem) devour(rs *game.RoundState, boss ecs.EntityID, prey []ecs.EntityID, rangeX, rangeY float64, fromCenter bool) {
	if !s.env.EM.IsAlive(boss) {
		return
	}
	bpos, _ := ecs.GetComponent[*components.PositionComponent](s.env.EM, boss)
	bx, by := bpos.X, bpos.Y
	if fromCenter {
		if hitbox, ok := ecs.GetComponent[*components.HitboxComponent](s.env.EM, boss); ok && hitbox.IsRect() {
			by -= hitbox.Height / 2
		}
	}
	if !utils.IsFinite(bx, by) {
		return
	}

	bvc, _ := ecs.GetComponent[*components.VariantComponent](s.env.EM, boss)
	for _, id := range prey {
		if !s.env.EM.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.env.EM, id)
		if math.Abs(pos.X-bx) >= rangeX || math.Abs(pos.Y-by) >= rangeY {
			continue
		}

		s.env.EM.DestroyEntity(id)
		tuning := s.env.Tuning.Interaction
		penalty := rs.ApplyPenalty(utils.RandRange(s.env.Rand, tuning.PenaltyMin, tuning.PenaltyMax))
		entities.NewFloatingTextEntity(s.env, pos.X, pos.Y-20, fmt.Sprintf("-%d", penalty), components.TonePenalty)
		s.observer.OnNotice(game.Notice{Kind: game.NoticeTrample, X: pos.X, Y: pos.Y, Variant: bvc.Variant})
		if penalty > 0 {
			s.observer.OnScoreChanged(rs.Score, rs.Round)
		}
		log.Printf("[InteractionSystem] %s caught entity %d, penalty %d", bvc.Variant, id, penalty)
	}
}

// tickFuse 每帧推进一次引信，燃尽时引爆
func (s *InteractionSystem) tickFuse(rs *game.RoundState, id ecs.EntityID, dt float64) {
	fuse, ok := ecs.GetComponent[*components.TimerComponent](s.env.EM, id)
	if !ok {
		return
	}
	fuse.CurrentTime += dt
	if fuse.CurrentTime >= fuse.TargetTime-timerEpsilon {
		fuse.CurrentTime = fuse.TargetTime
		fuse.IsReady = true
		s.combat.Detonate(rs, id)
	}
}

// timerEpsilon 引信判零的容差
const timerEpsilon = 1e-9

// emitRoar 把 Boss 的吼叫请求转换为通知
func (s *InteractionSystem) emitRoar(id ecs.EntityID) {
	roar, ok := ecs.GetComponent[*components.RoarComponent](s.env.EM, id)
	if !ok || !roar.WantsToRoar {
		return
	}
	roar.WantsToRoar = false

	notice := game.Notice{Kind: game.NoticeBossRoar}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.env.EM, id); ok {
		notice.X, notice.Y = pos.X, pos.Y
	}
	if vc, ok := ecs.GetComponent[*components.VariantComponent](s.env.EM, id); ok {
		notice.Variant = vc.Variant
	}
	s.observer.OnNotice(notice)
}

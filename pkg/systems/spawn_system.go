package systems

import (
	"log"

	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/entities"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/types"
)

// SpawnDecision 生成策略的一次决策结果
type SpawnDecision struct {
	Variant   types.Variant
	SpeedMult float64
	Counted   bool // 是否计入本回合的种类计数
}

// SpawnSystem 生成策略系统
//
// 职责：
//   - 按生成间隔累加时间，到点时执行一次决策
//   - 按顺序尝试各条规则，第一条命中即短路
//   - 维护本回合各种类的生成计数（上限检查）
//
// 决策顺序：
//  1. 派对模式：固定生成高速气球，不触碰任何计数
//  2. 规则表：依次检查最低回合、本回合上限、同种类独占、概率抽取
//  3. 兜底分布：一次抽取按累积概率区间划分为稀有、地面生物、空中干扰、默认目标
type SpawnSystem struct {
	env      entities.Env
	rules    *config.SpawnRulesConfig
	observer game.Observer
}

// NewSpawnSystem 创建生成策略系统
func NewSpawnSystem(env entities.Env, rules *config.SpawnRulesConfig, observer game.Observer) *SpawnSystem {
	return &SpawnSystem{env: env, rules: rules, observer: observer}
}

// Update 推进生成累加器，到达间隔时至多生成一个实体
func (s *SpawnSystem) Update(rs *game.RoundState, dtMillis float64) (ecs.EntityID, bool) {
	interval := rs.Config.SpawnIntervalMillis
	if rs.PartyActive {
		interval = s.rules.Party.IntervalMillis
	}

	rs.SpawnAccumulator += dtMillis
	if rs.SpawnAccumulator <= interval {
		return 0, false
	}
	rs.SpawnAccumulator = 0

	return s.Spawn(rs, s.Decide(rs))
}

// Decide 执行一次生成决策，不创建实体
func (s *SpawnSystem) Decide(rs *game.RoundState) SpawnDecision {
	speed := rs.Config.SpeedMultiplier
	if rs.PartyActive {
		return SpawnDecision{Variant: s.rules.Party.Variant, SpeedMult: speed * s.rules.Party.SpeedFactor}
	}

	// 兜底分布使用的抽取值在规则表之前取出
	r := s.env.Rand.Float64()

	for _, rule := range s.rules.Rules {
		if rs.Round < rule.MinRound {
			continue
		}
		if rule.Cap > 0 && rs.SpawnCount(rule.Variant) >= rule.Cap {
			continue
		}
		if rule.Exclusive && s.liveCount(rule.Variant) > 0 {
			continue
		}
		if s.env.Rand.Float64() < rule.Chance {
			return SpawnDecision{Variant: rule.Variant, SpeedMult: speed, Counted: true}
		}
	}

	return SpawnDecision{Variant: s.fallback(rs, r), SpeedMult: speed}
}

// fallback 兜底分布
func (s *SpawnSystem) fallback(rs *game.RoundState, r float64) types.Variant {
	fb := s.rules.Fallback
	if r < fb.RareBand {
		return fb.RareVariant
	}
	if len(fb.GroundVariants) > 0 && rs.Round >= fb.GroundMinRound &&
		s.env.Rand.Float64() < fb.GroundChance && r < fb.GroundBand {
		return fb.GroundVariants[s.env.Rand.Intn(len(fb.GroundVariants))]
	}
	if r > fb.AirBand {
		return fb.AirVariant
	}
	return fb.DefaultVariant
}

// Spawn 按决策创建实体并更新计数
func (s *SpawnSystem) Spawn(rs *game.RoundState, d SpawnDecision) (ecs.EntityID, bool) {
	id, ok := entities.Spawn(s.env, d.Variant, d.SpeedMult)
	if !ok {
		log.Printf("[SpawnSystem] Variant %s cannot be spawned", d.Variant)
		return 0, false
	}
	if d.Counted {
		rs.RecordSpawn(d.Variant)
	}

	if types.IsBossClass(d.Variant) {
		notice := game.Notice{Kind: game.NoticeBossSpawned, Variant: d.Variant}
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.env.EM, id); ok {
			notice.X, notice.Y = pos.X, pos.Y
		}
		s.observer.OnNotice(notice)
		log.Printf("[SpawnSystem] Boss %s spawned (round %d, count %d)", d.Variant, rs.Round, rs.SpawnCount(d.Variant))
	}
	return id, true
}

// liveCount 当前存活（未标记删除）的某种类实体数量
func (s *SpawnSystem) liveCount(v types.Variant) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.VariantComponent](s.env.EM) {
		if s.env.EM.IsMarked(id) {
			continue
		}
		if vc, ok := ecs.GetComponent[*components.VariantComponent](s.env.EM, id); ok && vc.Variant == v {
			n++
		}
	}
	return n
}

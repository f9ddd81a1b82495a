package systems

import (
	"fmt"
	"log"
	"slices"

	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/entities"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/types"
	"github.com/decker502/skyshot/pkg/utils"
)

// HitResult 单发攻击的结算结果
type HitResult struct {
	Resolved   bool          // 是否命中了某个实体
	Entity     ecs.EntityID  // 被命中的实体
	Variant    types.Variant // 被命中实体的种类
	ScoreDelta int           // 本次命中带来的分数变化
	Killed     bool          // Boss 是否因本次命中死亡
	Detonated  bool          // 是否引爆了炸弹
}

// AreaResult 范围攻击或爆炸的汇总结果
type AreaResult struct {
	Affected   int // 受影响的实体数量（含受伤的 Boss）
	Eliminated int // 被消灭的实体数量
	ScoreDelta int // 汇总分数变化
}

// CombatSystem 攻击结算
//
// 所有结算只设置删除标记，实体在帧末统一清理，
// 因此遍历过程中实体集合不会改变。
type CombatSystem struct {
	env      entities.Env
	observer game.Observer
}

// NewCombatSystem 创建攻击结算系统
func NewCombatSystem(env entities.Env, observer game.Observer) *CombatSystem {
	return &CombatSystem{env: env, observer: observer}
}

// ResolvePrimary 结算一次单发攻击
//
// 从最新生成的实体开始向前扫描，只结算第一个命中的实体。
// 弹药检查由调用方负责。
func (s *CombatSystem) ResolvePrimary(rs *game.RoundState, x, y float64) HitResult {
	if !utils.IsFinite(x, y) {
		return HitResult{}
	}

	ids := s.env.EM.Entities()
	for _, id := range slices.Backward(ids) {
		v, ok := s.hitTestable(id)
		if !ok || !s.containsPoint(id, x, y) {
			continue
		}
		return s.resolveHit(rs, id, v, x, y)
	}
	return HitResult{}
}

// hitTestable 返回实体种类，飘字、弹道和已标记删除的实体不参与命中判定
func (s *CombatSystem) hitTestable(id ecs.EntityID) (types.Variant, bool) {
	if s.env.EM.IsMarked(id) {
		return types.VariantUnknown, false
	}
	vc, ok := ecs.GetComponent[*components.VariantComponent](s.env.EM, id)
	if !ok || types.IsFeedback(vc.Variant) {
		return types.VariantUnknown, false
	}
	return vc.Variant, true
}

// containsPoint 命中判定：矩形命中框以底边中点定位，其余为圆形
func (s *CombatSystem) containsPoint(id ecs.EntityID, x, y float64) bool {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.env.EM, id)
	if !ok || !utils.IsFinite(pos.X, pos.Y) {
		return false
	}
	hitbox, ok := ecs.GetComponent[*components.HitboxComponent](s.env.EM, id)
	if !ok {
		return false
	}
	if hitbox.IsRect() {
		return utils.PointInBottomAnchoredRect(x, y, pos.X, pos.Y, hitbox.Width, hitbox.Height)
	}
	return utils.Distance(x, y, pos.X, pos.Y) < hitbox.Radius
}

func (s *CombatSystem) resolveHit(rs *game.RoundState, id ecs.EntityID, v types.Variant, x, y float64) HitResult {
	result := HitResult{Resolved: true, Entity: id, Variant: v}

	switch {
	case types.IsBossClass(v):
		result.ScoreDelta, result.Killed = s.hitBoss(rs, id, x, y)
	case types.IsHazard(v):
		area := s.Detonate(rs, id)
		result.Detonated = true
		result.ScoreDelta = area.ScoreDelta
	case types.IsPickup(v):
		s.collectPickup(rs, id, x, y)
	default:
		result.ScoreDelta = s.eliminateTarget(rs, id, v, x, y)
	}
	return result
}

// hitBoss Boss 被单发命中：扣 1 点血并获得随机奖励，血量归零时发放击杀奖励
func (s *CombatSystem) hitBoss(rs *game.RoundState, id ecs.EntityID, x, y float64) (int, bool) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.env.EM, id)
	if !ok {
		return 0, false
	}

	combat := s.env.Tuning.Combat
	bonus := utils.RandRange(s.env.Rand, combat.BossHitBonusMin, combat.BossHitBonusMax)
	delta := bonus
	health.CurrentHealth = max(0, health.CurrentHealth-1)
	entities.NewFloatingTextEntity(s.env, x, y-20, fmt.Sprintf("+%d", bonus), components.ToneGain)

	killed := s.killBossIfDead(id, health)
	if killed {
		delta += health.KillPoints
		entities.NewFloatingTextEntity(s.env, x, y-50, fmt.Sprintf("KILLED! +%d", health.KillPoints), components.ToneGold)
	}

	s.applyScore(rs, delta)
	return delta, killed
}

// killBossIfDead 血量归零时删除 Boss，击杀奖励只会发放一次
func (s *CombatSystem) killBossIfDead(id ecs.EntityID, health *components.HealthComponent) bool {
	if health.CurrentHealth > 0 || health.Killed {
		return false
	}
	health.Killed = true
	s.env.EM.DestroyEntity(id)

	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.env.EM, id); ok {
		v := types.VariantUnknown
		if vc, ok := ecs.GetComponent[*components.VariantComponent](s.env.EM, id); ok {
			v = vc.Variant
		}
		s.observer.OnNotice(game.Notice{Kind: game.NoticeCelebration, X: pos.X, Y: pos.Y, Variant: v})
	}
	log.Printf("[CombatSystem] Boss %d killed, +%d", id, health.KillPoints)
	return true
}

// eliminateTarget 普通目标被单发命中：直接消灭并计分
// 金气球额外触发庆祝提示
func (s *CombatSystem) eliminateTarget(rs *game.RoundState, id ecs.EntityID, v types.Variant, x, y float64) int {
	points := s.pointsOf(id)
	s.env.EM.DestroyEntity(id)
	entities.NewFloatingTextEntity(s.env, x, y, signed(points), toneFor(points))
	s.applyScore(rs, points)
	if v == types.VariantGoldenBalloon {
		s.observer.OnNotice(game.Notice{Kind: game.NoticeCelebration, X: x, Y: y, Variant: v})
	}
	return points
}

// collectPickup 拾取物生效后删除，不改变分数
func (s *CombatSystem) collectPickup(rs *game.RoundState, id ecs.EntityID, x, y float64) {
	s.env.EM.DestroyEntity(id)

	bonus, ok := ecs.GetComponent[*components.BonusComponent](s.env.EM, id)
	if !ok {
		return
	}

	ledger := s.env.Tuning.Ledger
	switch bonus.Type {
	case types.BonusTime:
		rs.AddTime(ledger.ClockBonusSeconds)
		entities.NewFloatingTextEntity(s.env, x, y, fmt.Sprintf("+%gs", ledger.ClockBonusSeconds), components.ToneTime)
	case types.BonusFullAuto:
		rs.Ledger.GrantFullAuto(ledger.FullAutoSeconds, ledger.FullAutoCadenceMillis)
		entities.NewFloatingTextEntity(s.env, x, y, "FULL AUTO!", components.ToneGold)
		s.observer.OnNotice(game.Notice{Kind: game.NoticeFullAutoStarted, X: x, Y: y, Variant: types.VariantAmmoDrop})
	case types.BonusBullets:
		rs.Ledger.AddBullets(ledger.MagazineBullets)
		entities.NewFloatingTextEntity(s.env, x, y, fmt.Sprintf("+%d BULLETS", ledger.MagazineBullets), components.ToneGold)
	case types.BonusShells:
		rs.Ledger.AddShells(ledger.ShellBonus)
		entities.NewFloatingTextEntity(s.env, x, y, fmt.Sprintf("+%d SHELLS", ledger.ShellBonus), components.ToneShells)
	case types.BonusParty:
		if rs.StartParty(ledger.PartySeconds) {
			entities.NewFloatingTextEntity(s.env, x, y, "PARTY TIME!", components.ToneParty)
			s.observer.OnNotice(game.Notice{Kind: game.NoticePartyStarted, X: x, Y: y, Variant: types.VariantBirthdayCap})
		}
	}
	log.Printf("[CombatSystem] Pickup %s collected", bonus.Type)
}

// ResolveArea 结算一次范围攻击
//
// 拾取物免疫；炸弹只有在攻击点足够近时才会被引爆；
// Boss 按矩形最近点距离判定并扣除固定血量；其余目标按圆心距离判定直接消灭。
// 所有消灭汇总为一个分数变化和一条飘字。弹药检查由调用方负责。
func (s *CombatSystem) ResolveArea(rs *game.RoundState, x, y float64) AreaResult {
	var result AreaResult
	if !utils.IsFinite(x, y) {
		return result
	}

	combat := s.env.Tuning.Combat
	for _, id := range s.env.EM.Entities() {
		v, ok := s.hitTestable(id)
		if !ok || types.IsPickup(v) {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.env.EM, id)
		if !ok || !utils.IsFinite(pos.X, pos.Y) {
			continue
		}
		hitbox, ok := ecs.GetComponent[*components.HitboxComponent](s.env.EM, id)
		if !ok {
			continue
		}

		switch {
		case types.IsHazard(v):
			if utils.Distance(x, y, pos.X, pos.Y) < combat.HazardDirectRadius {
				s.Detonate(rs, id)
			}
		case types.IsBossClass(v):
			if s.bossDistance(x, y, pos, hitbox) <= combat.AreaBlastRadius {
				result.Affected++
				if killed, points := s.damageBoss(id, combat.AreaBossDamage); killed {
					result.Eliminated++
					result.ScoreDelta += points
				}
			}
		default:
			if utils.Distance(x, y, pos.X, pos.Y) < hitbox.Radius+combat.AreaBlastRadius {
				result.Affected++
				result.Eliminated++
				result.ScoreDelta += s.pointsOf(id)
				s.env.EM.DestroyEntity(id)
			}
		}
	}

	if result.Affected > 0 {
		s.applyScore(rs, result.ScoreDelta)
		text := signed(result.ScoreDelta)
		if result.Eliminated == 0 {
			text = fmt.Sprintf("-%d HP", combat.AreaBossDamage)
		}
		entities.NewFloatingTextEntity(s.env, x, y, text, toneFor(result.ScoreDelta))
		log.Printf("[CombatSystem] Area attack at (%.0f, %.0f): %d affected, delta %d", x, y, result.Affected, result.ScoreDelta)
	}
	return result
}

// Detonate 引爆炸弹
//
// 幂等：炸弹已被标记删除时直接返回零结果。
// 爆炸范围内除拾取物和其他炸弹外的实体都会受到影响：
// Boss 扣除大量血量（仅在血量归零时计入击杀奖励），其余实体直接消灭。
func (s *CombatSystem) Detonate(rs *game.RoundState, hazard ecs.EntityID) AreaResult {
	var result AreaResult
	if !s.env.EM.IsAlive(hazard) {
		return result
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.env.EM, hazard)
	if !ok {
		return result
	}
	s.env.EM.DestroyEntity(hazard)
	bx, by := pos.X, pos.Y

	combat := s.env.Tuning.Combat
	for _, id := range s.env.EM.Entities() {
		v, ok := s.hitTestable(id)
		if !ok || types.IsPickup(v) || types.IsHazard(v) {
			continue
		}
		p, ok := ecs.GetComponent[*components.PositionComponent](s.env.EM, id)
		if !ok || !utils.IsFinite(p.X, p.Y) {
			continue
		}
		hitbox, ok := ecs.GetComponent[*components.HitboxComponent](s.env.EM, id)
		if !ok {
			continue
		}

		if types.IsBossClass(v) {
			if s.bossDistance(bx, by, p, hitbox) < combat.DetonationRadius {
				result.Affected++
				if killed, points := s.damageBoss(id, combat.DetonationBossDamage); killed {
					result.Eliminated++
					result.ScoreDelta += points
				}
			}
			continue
		}
		if utils.Distance(bx, by, p.X, p.Y) < combat.DetonationRadius {
			result.Affected++
			result.Eliminated++
			result.ScoreDelta += s.pointsOf(id)
			s.env.EM.DestroyEntity(id)
		}
	}

	entities.NewFloatingTextEntity(s.env, bx, by-30, "KA-BOOM!", components.ToneBlast)
	if result.Affected > 0 {
		s.applyScore(rs, result.ScoreDelta)
		entities.NewFloatingTextEntity(s.env, bx, by, signed(result.ScoreDelta), toneFor(result.ScoreDelta))
	}
	s.observer.OnNotice(game.Notice{Kind: game.NoticeDetonation, X: bx, Y: by, Variant: types.VariantBomb})
	log.Printf("[CombatSystem] Bomb %d detonated: %d affected, delta %d", hazard, result.Affected, result.ScoreDelta)
	return result
}

// damageBoss 扣除 Boss 血量，返回是否因此死亡以及应计入的击杀奖励
func (s *CombatSystem) damageBoss(id ecs.EntityID, damage int) (bool, int) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.env.EM, id)
	if !ok {
		return false, 0
	}
	health.CurrentHealth = max(0, health.CurrentHealth-damage)
	if s.killBossIfDead(id, health) {
		return true, health.KillPoints
	}
	return false, 0
}

// bossDistance 攻击点到 Boss 命中框的最近距离
func (s *CombatSystem) bossDistance(x, y float64, pos *components.PositionComponent, hitbox *components.HitboxComponent) float64 {
	if hitbox.IsRect() {
		return utils.DistanceToBottomAnchoredRect(x, y, pos.X, pos.Y, hitbox.Width, hitbox.Height)
	}
	return utils.Distance(x, y, pos.X, pos.Y)
}

func (s *CombatSystem) pointsOf(id ecs.EntityID) int {
	if score, ok := ecs.GetComponent[*components.ScoreComponent](s.env.EM, id); ok {
		return score.Points
	}
	return 0
}

// applyScore 累加分数并通知外部
func (s *CombatSystem) applyScore(rs *game.RoundState, delta int) {
	if delta == 0 {
		return
	}
	rs.AddScore(delta)
	s.observer.OnScoreChanged(rs.Score, rs.Round)
}

// signed 带符号的分数文本
func signed(points int) string {
	if points >= 0 {
		return fmt.Sprintf("+%d", points)
	}
	return fmt.Sprintf("%d", points)
}

func toneFor(points int) components.Tone {
	if points < 0 {
		return components.TonePenalty
	}
	return components.ToneGain
}

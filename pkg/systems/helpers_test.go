package systems

import (
	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/entities"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/types"
	"github.com/decker502/skyshot/pkg/utils"
)

// newTestEnv 创建使用确定性随机源和默认数值的工厂依赖
func newTestEnv(values ...float64) entities.Env {
	return entities.Env{
		EM:     ecs.NewEntityManager(),
		Rand:   utils.NewSequenceRandom(values...),
		Tuning: config.DefaultTuning(),
	}
}

// newTestRound 创建已进入第 n 回合的回合上下文
func newTestRound(n int) *game.RoundState {
	cfg, err := config.DefaultRoundTable().ForRound(n)
	if err != nil {
		panic(err)
	}
	rs := game.NewRoundState()
	rs.Reset(n, cfg, config.DefaultTuning().Ledger)
	return rs
}

// placeEntity 在指定位置创建一个简单目标，绕过工厂的随机位置
func placeEntity(em *ecs.EntityManager, v types.Variant, x, y, radius float64, points int) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.VariantComponent{Variant: v})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.HitboxComponent{Radius: radius})
	em.AddComponent(id, &components.MotionComponent{})
	if types.IsPlainTarget(v) {
		em.AddComponent(id, &components.ScoreComponent{Points: points})
	}
	if bonus := types.BonusFor(v); bonus != types.BonusNone {
		em.AddComponent(id, &components.BonusComponent{Type: bonus})
	}
	return id
}

// placeBoss 在指定位置创建矩形命中框的 Boss
func placeBoss(em *ecs.EntityManager, v types.Variant, x, y, width, height float64, hp, killPoints int) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.VariantComponent{Variant: v})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.HitboxComponent{Radius: width / 2, Width: width, Height: height})
	em.AddComponent(id, &components.MotionComponent{})
	em.AddComponent(id, &components.HealthComponent{CurrentHealth: hp, MaxHealth: hp, KillPoints: killPoints, SizeClass: 1})
	em.AddComponent(id, &components.RoarComponent{})
	return id
}

// recordingObserver 记录引擎上报的事件
type recordingObserver struct {
	game.BaseObserver
	notices      []game.Notice
	scoreChanges []int
}

func (o *recordingObserver) OnNotice(n game.Notice) {
	o.notices = append(o.notices, n)
}

func (o *recordingObserver) OnScoreChanged(score, _ int) {
	o.scoreChanges = append(o.scoreChanges, score)
}

func (o *recordingObserver) count(kind game.NoticeKind) int {
	n := 0
	for _, notice := range o.notices {
		if notice.Kind == kind {
			n++
		}
	}
	return n
}

// floatingTexts 收集所有未删除的飘字内容
func floatingTexts(em *ecs.EntityManager) []string {
	var texts []string
	for _, id := range ecs.GetEntitiesWith1[*components.FloatingTextComponent](em) {
		if em.IsMarked(id) {
			continue
		}
		ft, _ := ecs.GetComponent[*components.FloatingTextComponent](em, id)
		texts = append(texts, ft.Text)
	}
	return texts
}

package entities

import (
	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/types"
)

// newDropEntity 创建从画面顶部落下的拾取物
func newDropEntity(env Env, v types.Variant, radius, speed, margin float64) ecs.EntityID {
	x := env.Rand.Float64()*(env.width()-margin*2) + margin
	id := newBaseEntity(env, v, x, -50,
		components.HitboxComponent{Radius: radius},
		components.MotionComponent{Speed: speed, DirY: 1})
	if bonus := types.BonusFor(v); bonus != types.BonusNone {
		env.EM.AddComponent(id, &components.BonusComponent{Type: bonus})
	}
	return id
}

// NewAmmoDropEntity 弹药箱：全自动模式，下落时轻微摇摆
func NewAmmoDropEntity(env Env) ecs.EntityID {
	return newDropEntity(env, types.VariantAmmoDrop, 25, 80, 30)
}

// NewMagazineDropEntity 弹匣：补充主武器弹药
func NewMagazineDropEntity(env Env) ecs.EntityID {
	return newDropEntity(env, types.VariantMagazineDrop, 15, 90, 30)
}

// NewShotgunDropEntity 霰弹：补充副武器弹药
func NewShotgunDropEntity(env Env) ecs.EntityID {
	return newDropEntity(env, types.VariantShotgunDrop, 20, 90, 30)
}

// NewBirthdayCapEntity 生日帽：触发派对模式，下落时左右摇摆
func NewBirthdayCapEntity(env Env) ecs.EntityID {
	return newDropEntity(env, types.VariantBirthdayCap, 25, 100, 25)
}

// NewBombEntity 炸弹：缓慢落下并停在地面，引信燃尽或被直接命中时爆炸
func NewBombEntity(env Env) ecs.EntityID {
	id := newDropEntity(env, types.VariantBomb, 25, 60, 25)
	env.EM.AddComponent(id, &components.TimerComponent{
		Name:       "fuse",
		TargetTime: env.Tuning.Interaction.HazardFuseSecs,
	})
	return id
}

// NewGoldenClockEntity 金钟：从左侧高速飞过，命中加时
func NewGoldenClockEntity(env Env) ecs.EntityID {
	y := env.Rand.Float64() * (env.height() / 2)
	id := newBaseEntity(env, types.VariantGoldenClock, -50, y,
		components.HitboxComponent{Radius: 25},
		components.MotionComponent{Speed: 300, DirX: 1})
	env.EM.AddComponent(id, &components.BonusComponent{Type: types.BonusTime})
	return id
}

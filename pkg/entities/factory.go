package entities

import (
	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/types"
	"github.com/decker502/skyshot/pkg/utils"
)

// Env 工厂函数共享的依赖
//
// 实体只在构造时读取画布尺寸和数值配置，之后不再访问回合状态。
type Env struct {
	EM     *ecs.EntityManager
	Rand   utils.RandomSource
	Tuning *config.TuningConfig
}

func (env Env) width() float64  { return env.Tuning.Canvas.Width }
func (env Env) height() float64 { return env.Tuning.Canvas.Height }

// newBaseEntity 创建带有种类、位置、命中框和运动组件的实体
func newBaseEntity(env Env, v types.Variant, x, y float64, hitbox components.HitboxComponent, motion components.MotionComponent) ecs.EntityID {
	id := env.EM.CreateEntity()
	env.EM.AddComponent(id, &components.VariantComponent{Variant: v})
	env.EM.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	env.EM.AddComponent(id, &hitbox)
	env.EM.AddComponent(id, &motion)
	return id
}

// sideDirection 随机选择从左侧或右侧进入
func sideDirection(rng utils.RandomSource) float64 {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}

// constructor 种类对应的工厂函数
type constructor func(env Env, speedMult float64) ecs.EntityID

// constructors 以种类为键的分派表
var constructors = map[types.Variant]constructor{
	types.VariantBalloon:       NewBalloonEntity,
	types.VariantGoldenBalloon: func(env Env, _ float64) ecs.EntityID { return NewGoldenBalloonEntity(env) },
	types.VariantBird:          NewBirdEntity,
	types.VariantDragon:        func(env Env, _ float64) ecs.EntityID { return NewDragonEntity(env) },
	types.VariantMouse:         func(env Env, _ float64) ecs.EntityID { return NewMouseEntity(env) },
	types.VariantHedgehog:      func(env Env, _ float64) ecs.EntityID { return NewHedgehogEntity(env) },
	types.VariantGopher:        func(env Env, _ float64) ecs.EntityID { return NewGopherEntity(env) },
	types.VariantGodzilla:      func(env Env, _ float64) ecs.EntityID { return NewGodzillaEntity(env) },
	types.VariantHydra:         func(env Env, _ float64) ecs.EntityID { return NewHydraEntity(env) },
	types.VariantPterodactyl:   func(env Env, _ float64) ecs.EntityID { return NewPterodactylEntity(env) },
	types.VariantBomb:          func(env Env, _ float64) ecs.EntityID { return NewBombEntity(env) },
	types.VariantGoldenClock:   func(env Env, _ float64) ecs.EntityID { return NewGoldenClockEntity(env) },
	types.VariantAmmoDrop:      func(env Env, _ float64) ecs.EntityID { return NewAmmoDropEntity(env) },
	types.VariantMagazineDrop:  func(env Env, _ float64) ecs.EntityID { return NewMagazineDropEntity(env) },
	types.VariantShotgunDrop:   func(env Env, _ float64) ecs.EntityID { return NewShotgunDropEntity(env) },
	types.VariantBirthdayCap:   func(env Env, _ float64) ecs.EntityID { return NewBirthdayCapEntity(env) },
}

// Spawn 根据种类创建实体
// 返回 false 表示该种类不能由生成策略创建（如飘字、弹道）
func Spawn(env Env, v types.Variant, speedMult float64) (ecs.EntityID, bool) {
	ctor, ok := constructors[v]
	if !ok {
		return 0, false
	}
	return ctor(env, speedMult), true
}

// CanSpawn 检查种类是否有对应的工厂函数
func CanSpawn(v types.Variant) bool {
	_, ok := constructors[v]
	return ok
}

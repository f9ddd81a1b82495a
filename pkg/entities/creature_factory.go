package entities

import (
	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/types"
)

// NewMouseEntity 创建从左向右跑过地面的老鼠
func NewMouseEntity(env Env) ecs.EntityID {
	id := newBaseEntity(env, types.VariantMouse, -30, env.height()-20,
		components.HitboxComponent{Radius: 15},
		components.MotionComponent{Speed: 150, DirX: 1})
	env.EM.AddComponent(id, &components.ScoreComponent{Points: -20})
	return id
}

// NewHedgehogEntity 创建从右向左缓慢爬行的刺猬
func NewHedgehogEntity(env Env) ecs.EntityID {
	id := newBaseEntity(env, types.VariantHedgehog, env.width()+30, env.height()-15,
		components.HitboxComponent{Radius: 15},
		components.MotionComponent{Speed: 80, DirX: -1})
	env.EM.AddComponent(id, &components.ScoreComponent{Points: -30})
	return id
}

// NewGopherEntity 创建从地面钻出的地鼠
// 生命周期：升起 -> 等待 -> 缩回地下后删除
func NewGopherEntity(env Env) ecs.EntityID {
	x := env.Rand.Float64()*(env.width()-100) + 50
	floor := env.height()

	id := newBaseEntity(env, types.VariantGopher, x, floor,
		components.HitboxComponent{Radius: 20},
		components.MotionComponent{Speed: 50})
	env.EM.AddComponent(id, &components.ScoreComponent{Points: -25})
	env.EM.AddComponent(id, &components.GopherComponent{
		State:   components.GopherRising,
		TargetY: floor - env.Tuning.Interaction.GopherRiseDepth,
		FloorY:  floor,
	})
	return id
}

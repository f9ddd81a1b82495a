package entities

import (
	"math"

	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/types"
)

const (
	balloonRadius       = 30.0
	goldenBalloonRadius = 25.0
	goldenBalloonSpeed  = 2.0 // 金气球使用固定的速度倍率
	goldenBalloonPoints = 100
	birdBaseRadius      = 25.0
	dragonRadius        = 50.0
	dragonSpeed         = 250.0
	dragonPoints        = -100
)

// balloonSpeed 气球上升速度（像素/秒）
func balloonSpeed(env Env, speedMult float64) float64 {
	return (env.Rand.Float64()*200 + 100) * speedMult
}

// NewBalloonEntity 创建从画面底部升起的气球
// 速度越快分数越高：points = 10 + floor(speed / 50)
func NewBalloonEntity(env Env, speedMult float64) ecs.EntityID {
	x := env.Rand.Float64()*(env.width()-balloonRadius*2) + balloonRadius
	y := env.height() + balloonRadius
	speed := balloonSpeed(env, speedMult)

	id := newBaseEntity(env, types.VariantBalloon, x, y,
		components.HitboxComponent{Radius: balloonRadius},
		components.MotionComponent{Speed: speed, DirY: -1})
	env.EM.AddComponent(id, &components.ScoreComponent{Points: 10 + int(math.Floor(speed/50))})
	return id
}

// NewGoldenBalloonEntity 创建金气球：更小、更快、左右摇摆，固定 100 分
func NewGoldenBalloonEntity(env Env) ecs.EntityID {
	x := env.Rand.Float64()*(env.width()-balloonRadius*2) + balloonRadius
	y := env.height() + balloonRadius
	speed := balloonSpeed(env, goldenBalloonSpeed)
	phase := env.Rand.Float64() * math.Pi * 2

	id := newBaseEntity(env, types.VariantGoldenBalloon, x, y,
		components.HitboxComponent{Radius: goldenBalloonRadius},
		components.MotionComponent{Speed: speed, DirY: -1, Phase: phase})
	env.EM.AddComponent(id, &components.ScoreComponent{Points: goldenBalloonPoints})
	return id
}

// NewBirdEntity 创建横穿画面上半部分的飞鸟
// 体型越大越容易误击，扣分也越多：points = -floor(30 * scale)
func NewBirdEntity(env Env, speedMult float64) ecs.EntityID {
	scale := env.Rand.Float64()*0.8 + 0.5
	radius := birdBaseRadius * scale
	dir := sideDirection(env.Rand)
	x := env.width() + radius
	if dir > 0 {
		x = -radius
	}
	y := env.Rand.Float64() * (env.height() / 2)
	speed := (env.Rand.Float64()*150 + 100) * speedMult

	id := newBaseEntity(env, types.VariantBird, x, y,
		components.HitboxComponent{Radius: radius},
		components.MotionComponent{Speed: speed, DirX: dir, Scale: scale})
	env.EM.AddComponent(id, &components.ScoreComponent{Points: -int(math.Floor(20 * scale * 1.5))})
	return id
}

// NewDragonEntity 创建高速飞过画面上三分之一的飞龙
func NewDragonEntity(env Env) ecs.EntityID {
	y := env.Rand.Float64() * (env.height() / 3)
	dir := sideDirection(env.Rand)
	x := env.width() + dragonRadius*2
	if dir > 0 {
		x = -dragonRadius * 2
	}

	id := newBaseEntity(env, types.VariantDragon, x, y,
		components.HitboxComponent{Radius: dragonRadius},
		components.MotionComponent{Speed: dragonSpeed, DirX: dir})
	env.EM.AddComponent(id, &components.ScoreComponent{Points: dragonPoints})
	return id
}

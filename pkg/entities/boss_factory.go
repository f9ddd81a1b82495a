package entities

import (
	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/types"
)

// bossProfile 某一体型等级的 Boss 参数
type bossProfile struct {
	heightRatio float64 // 高度占画布高度的比例
	aspect      float64 // 宽高比
	hp          int
	killPoints  int
	speed       float64
}

// 体型等级 1~3 依次对应下标 0~2
var (
	godzillaProfiles = [3]bossProfile{
		{heightRatio: 0.3, aspect: 0.6, hp: 10, killPoints: 25, speed: 55},
		{heightRatio: 0.4, aspect: 0.6, hp: 18, killPoints: 50, speed: 50},
		{heightRatio: 0.5, aspect: 0.6, hp: 25, killPoints: 75, speed: 45},
	}
	hydraProfiles = [3]bossProfile{
		{heightRatio: 0.25, aspect: 1.1, hp: 14, killPoints: 35, speed: 40},
		{heightRatio: 0.32, aspect: 1.1, hp: 22, killPoints: 60, speed: 35},
		{heightRatio: 0.4, aspect: 1.1, hp: 30, killPoints: 90, speed: 30},
	}
	pterodactylProfiles = [3]bossProfile{
		{heightRatio: 0.1, aspect: 2.2, hp: 6, killPoints: 20, speed: 140},
		{heightRatio: 0.13, aspect: 2.2, hp: 9, killPoints: 35, speed: 120},
		{heightRatio: 0.16, aspect: 2.2, hp: 12, killPoints: 50, speed: 100},
	}
)

// newBossEntity 创建矩形命中框的 Boss，位置为矩形底边中点
func newBossEntity(env Env, v types.Variant, profiles [3]bossProfile, groundY func(height float64) float64) ecs.EntityID {
	size := env.Rand.Intn(3) + 1
	p := profiles[size-1]

	height := env.height() * p.heightRatio
	width := height * p.aspect
	dir := sideDirection(env.Rand)
	x := env.width() + width
	if dir > 0 {
		x = -width
	}

	id := newBaseEntity(env, v, x, groundY(height),
		components.HitboxComponent{Radius: width / 2, Width: width, Height: height},
		components.MotionComponent{Speed: p.speed, DirX: dir})
	env.EM.AddComponent(id, &components.HealthComponent{
		CurrentHealth: p.hp,
		MaxHealth:     p.hp,
		KillPoints:    p.killPoints,
		SizeClass:     size,
	})
	env.EM.AddComponent(id, &components.RoarComponent{})
	return id
}

// NewGodzillaEntity 创建沿地面行走的哥斯拉，会踩扁路过的小动物
func NewGodzillaEntity(env Env) ecs.EntityID {
	return newBossEntity(env, types.VariantGodzilla, godzillaProfiles, func(float64) float64 {
		return env.height()
	})
}

// NewHydraEntity 创建九头蛇：比哥斯拉更宽、更慢、更耐打
func NewHydraEntity(env Env) ecs.EntityID {
	return newBossEntity(env, types.VariantHydra, hydraProfiles, func(float64) float64 {
		return env.height()
	})
}

// NewPterodactylEntity 创建在画面上方盘旋的翼龙，会吃掉靠近的飞鸟
func NewPterodactylEntity(env Env) ecs.EntityID {
	return newBossEntity(env, types.VariantPterodactyl, pterodactylProfiles, func(height float64) float64 {
		return height + env.Rand.Float64()*(env.height()/3)
	})
}

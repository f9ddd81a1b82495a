package entities

import (
	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/types"
)

// NewFloatingTextEntity 创建向上飘动并逐渐消失的文字
//
// 参数:
//   - env: 工厂依赖（使用其中的反馈配置）
//   - x, y: 文字起始位置
//   - text: 显示内容
//   - tone: 色调
//
// 返回:
//   - ecs.EntityID: 创建的实体ID
func NewFloatingTextEntity(env Env, x, y float64, text string, tone components.Tone) ecs.EntityID {
	fb := env.Tuning.Feedback
	id := newBaseEntity(env, types.VariantFloatingText, x, y,
		components.HitboxComponent{},
		components.MotionComponent{Speed: fb.TextRiseSpeed, DirY: -1})
	env.EM.AddComponent(id, &components.FloatingTextComponent{Text: text, Tone: tone})
	env.EM.AddComponent(id, components.NewLifetime(fb.TextLifetimeSecs))
	return id
}

// NewBulletTraceEntity 创建全自动射击的弹道线，短暂显示后消失
func NewBulletTraceEntity(env Env, fromX, fromY, toX, toY float64) ecs.EntityID {
	id := newBaseEntity(env, types.VariantBulletTrace, toX, toY,
		components.HitboxComponent{},
		components.MotionComponent{})
	env.EM.AddComponent(id, &components.BulletTraceComponent{FromX: fromX, FromY: fromY, ToX: toX, ToY: toY})
	env.EM.AddComponent(id, components.NewLifetime(env.Tuning.Feedback.TraceLifetimeSecs))
	return id
}

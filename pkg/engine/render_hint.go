package engine

import (
	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/types"
	"github.com/decker502/skyshot/pkg/utils"
)

// RenderHint 表现层绘制一个实体所需的信息
//
// 坐标为逻辑画布像素。矩形命中框的实体（Boss）以底边中点定位。
type RenderHint struct {
	ID      ecs.EntityID
	Variant types.Variant
	X, Y    float64

	Radius        float64
	Width, Height float64
	Facing        float64 // 水平朝向：-1 向左，1 向右，0 无
	Phase         float64 // 摆动相位
	Age           float64 // 出场时间（秒）
	Scale         float64

	HP, MaxHP     int
	FuseRemaining float64 // 炸弹剩余引信（秒），不小于 0

	Text    string
	Tone    components.Tone
	Opacity float64 // 1 -> 0，短暂实体随生命周期淡出

	TraceFromX, TraceFromY float64
}

// RenderHints 返回所有存活实体的绘制信息，按生成顺序排列（后生成的在上层）
// 位置不是有限值的实体会被跳过
func (e *Engine) RenderHints() []RenderHint {
	em := e.entityManager
	ids := ecs.GetEntitiesWith2[*components.VariantComponent, *components.PositionComponent](em)
	hints := make([]RenderHint, 0, len(ids))

	for _, id := range ids {
		if em.IsMarked(id) {
			continue
		}
		vc, _ := ecs.GetComponent[*components.VariantComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if !utils.IsFinite(pos.X, pos.Y) {
			continue
		}

		hint := RenderHint{ID: id, Variant: vc.Variant, X: pos.X, Y: pos.Y, Age: vc.Age, Scale: 1, Opacity: 1}
		if hb, ok := ecs.GetComponent[*components.HitboxComponent](em, id); ok {
			hint.Radius, hint.Width, hint.Height = hb.Radius, hb.Width, hb.Height
		}
		if m, ok := ecs.GetComponent[*components.MotionComponent](em, id); ok {
			hint.Facing, hint.Phase = m.DirX, m.Phase
			if m.Scale > 0 {
				hint.Scale = m.Scale
			}
		}
		if h, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok {
			hint.HP, hint.MaxHP = h.CurrentHealth, h.MaxHealth
		}
		if fuse, ok := ecs.GetComponent[*components.TimerComponent](em, id); ok {
			hint.FuseRemaining = fuse.Remaining()
		}
		if ft, ok := ecs.GetComponent[*components.FloatingTextComponent](em, id); ok {
			hint.Text, hint.Tone = ft.Text, ft.Tone
		}
		if tr, ok := ecs.GetComponent[*components.BulletTraceComponent](em, id); ok {
			hint.TraceFromX, hint.TraceFromY = tr.FromX, tr.FromY
		}
		if life, ok := ecs.GetComponent[*components.LifetimeComponent](em, id); ok {
			hint.Opacity = life.Opacity
		}
		hints = append(hints, hint)
	}
	return hints
}

package systems

import (
	"math"

	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/entities"
	"github.com/decker502/skyshot/pkg/types"
)

// framesPerSecond 摆动幅度以 60 帧/秒为基准换算
const framesPerSecond = 60.0

// motionFunc 某一种类的每帧运动逻辑
type motionFunc func(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64)

// MotionSystem 推进所有实体的运动与状态计时
//
// 各种类的行为通过以种类为键的分派表选择，
// 离开画面的实体在这里标记删除。
type MotionSystem struct {
	env      entities.Env
	handlers map[types.Variant]motionFunc
}

// NewMotionSystem 创建运动系统
func NewMotionSystem(env entities.Env) *MotionSystem {
	s := &MotionSystem{env: env}
	s.handlers = map[types.Variant]motionFunc{
		types.VariantBalloon:       moveBalloon,
		types.VariantGoldenBalloon: moveGoldenBalloon,
		types.VariantBird:          moveBird,
		types.VariantDragon:        moveDragon,
		types.VariantMouse:         moveGroundRunner,
		types.VariantHedgehog:      moveGroundRunner,
		types.VariantGopher:        moveGopher,
		types.VariantGodzilla:      moveBoss,
		types.VariantHydra:         moveBoss,
		types.VariantPterodactyl:   movePterodactyl,
		types.VariantBomb:          moveBomb,
		types.VariantGoldenClock:   moveGoldenClock,
		types.VariantAmmoDrop:      moveSwayingDrop(2, 0.5),
		types.VariantBirthdayCap:   moveSwayingDrop(3, 1.5),
		types.VariantMagazineDrop:  moveDrop,
		types.VariantShotgunDrop:   moveDrop,
		types.VariantFloatingText:  moveLinear,
	}
	return s
}

// Update 推进一帧，dt 单位为秒
func (s *MotionSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith3[*components.VariantComponent, *components.PositionComponent, *components.MotionComponent](s.env.EM)
	for _, id := range ids {
		if s.env.EM.IsMarked(id) {
			continue
		}
		vc, _ := ecs.GetComponent[*components.VariantComponent](s.env.EM, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.env.EM, id)
		motion, _ := ecs.GetComponent[*components.MotionComponent](s.env.EM, id)

		vc.Age += dt
		if handler, ok := s.handlers[vc.Variant]; ok {
			handler(s, id, pos, motion, dt)
		}
	}
}

func (s *MotionSystem) width() float64  { return s.env.Tuning.Canvas.Width }
func (s *MotionSystem) height() float64 { return s.env.Tuning.Canvas.Height }

func moveLinear(_ *MotionSystem, _ ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	pos.X += m.Speed * m.DirX * dt
	pos.Y += m.Speed * m.DirY * dt
}

func moveBalloon(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	moveLinear(s, id, pos, m, dt)
	if pos.Y < -balloonMargin {
		s.env.EM.DestroyEntity(id)
	}
}

// balloonMargin 气球完全离开画面顶部的距离
const balloonMargin = 30.0

func moveGoldenBalloon(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	m.Phase += dt * 5
	pos.X += math.Sin(m.Phase) * 2 * dt * framesPerSecond
	moveBalloon(s, id, pos, m, dt)
}

func moveBird(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	moveLinear(s, id, pos, m, dt)
	pos.Y += math.Sin(pos.X/50) * 2 * dt * framesPerSecond
	s.destroyOffSide(id, pos, m, 50)
}

func moveDragon(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	m.Phase += dt
	moveLinear(s, id, pos, m, dt)
	pos.Y += math.Sin(m.Phase*5) * 2 * dt * framesPerSecond
	s.destroyOffSide(id, pos, m, 100)
}

func moveGroundRunner(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	moveLinear(s, id, pos, m, dt)
	s.destroyOffSide(id, pos, m, 50)
}

// moveGopher 地鼠：升起 -> 等待 -> 缩回地下后删除
func moveGopher(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	gopher, ok := ecs.GetComponent[*components.GopherComponent](s.env.EM, id)
	if !ok {
		return
	}

	switch gopher.State {
	case components.GopherRising:
		pos.Y -= m.Speed * dt
		if pos.Y <= gopher.TargetY {
			pos.Y = gopher.TargetY
			gopher.State = components.GopherWaiting
			gopher.WaitTimer = s.env.Tuning.Interaction.GopherWaitSecs
		}
	case components.GopherWaiting:
		gopher.WaitTimer -= dt
		if gopher.WaitTimer <= 0 {
			gopher.WaitTimer = 0
			gopher.State = components.GopherHiding
		}
	case components.GopherHiding:
		pos.Y += m.Speed * dt
		if pos.Y >= gopher.FloorY {
			s.env.EM.DestroyEntity(id)
		}
	}
}

// moveBoss 地面 Boss 横穿画面，偶尔吼叫
func moveBoss(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	moveLinear(s, id, pos, m, dt)
	s.tickRoar(id, dt)

	margin := 0.0
	if hitbox, ok := ecs.GetComponent[*components.HitboxComponent](s.env.EM, id); ok {
		margin = hitbox.Width
	}
	s.destroyOffSide(id, pos, m, margin)
}

func movePterodactyl(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	m.Phase += dt
	pos.Y += math.Sin(m.Phase*3) * dt * framesPerSecond
	moveBoss(s, id, pos, m, dt)
}

// tickRoar 出场一段时间后每帧有小概率请求吼叫
func (s *MotionSystem) tickRoar(id ecs.EntityID, dt float64) {
	roar, ok := ecs.GetComponent[*components.RoarComponent](s.env.EM, id)
	if !ok {
		return
	}
	boss := s.env.Tuning.Boss
	roar.SinceLastRoar += dt
	if roar.SinceLastRoar > boss.RoarMinGapSecs && s.env.Rand.Float64() < boss.RoarChance {
		roar.WantsToRoar = true
		roar.SinceLastRoar = 0
	}
}

// moveBomb 炸弹落到地面后停住，引信由交互系统推进
func moveBomb(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	radius := 0.0
	if hitbox, ok := ecs.GetComponent[*components.HitboxComponent](s.env.EM, id); ok {
		radius = hitbox.Radius
	}
	rest := s.height() - radius
	if pos.Y >= rest {
		pos.Y = rest
		return
	}
	moveLinear(s, id, pos, m, dt)
	pos.Y = math.Min(pos.Y, rest)
}

func moveGoldenClock(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	moveLinear(s, id, pos, m, dt)
	s.destroyOffSide(id, pos, m, 50)
}

func moveDrop(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	moveLinear(s, id, pos, m, dt)
	if pos.Y > s.height()+50 {
		s.env.EM.DestroyEntity(id)
	}
}

// moveSwayingDrop 下落时按相位左右摇摆
func moveSwayingDrop(freq, amplitude float64) motionFunc {
	return func(s *MotionSystem, id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
		m.Phase += dt
		pos.X += math.Sin(m.Phase*freq) * amplitude * dt * framesPerSecond
		moveDrop(s, id, pos, m, dt)
	}
}

// destroyOffSide 沿运动方向离开画面 margin 距离后删除
func (s *MotionSystem) destroyOffSide(id ecs.EntityID, pos *components.PositionComponent, m *components.MotionComponent, margin float64) {
	if (m.DirX > 0 && pos.X > s.width()+margin) || (m.DirX < 0 && pos.X < -margin) {
		s.env.EM.DestroyEntity(id)
	}
}

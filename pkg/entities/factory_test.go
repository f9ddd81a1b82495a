package entities

import (
	"testing"

	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/types"
	"github.com/decker502/skyshot/pkg/utils"
)

func newTestEnv(values ...float64) Env {
	return Env{
		EM:     ecs.NewEntityManager(),
		Rand:   utils.NewSequenceRandom(values...),
		Tuning: config.DefaultTuning(),
	}
}

func TestSpawnCoversEverySpawnableVariant(t *testing.T) {
	spawnable := []types.Variant{
		types.VariantBalloon, types.VariantGoldenBalloon, types.VariantBird, types.VariantDragon,
		types.VariantMouse, types.VariantHedgehog, types.VariantGopher,
		types.VariantGodzilla, types.VariantHydra, types.VariantPterodactyl,
		types.VariantBomb,
		types.VariantGoldenClock, types.VariantAmmoDrop, types.VariantMagazineDrop, types.VariantShotgunDrop, types.VariantBirthdayCap,
	}

	for _, v := range spawnable {
		t.Run(v.String(), func(t *testing.T) {
			env := newTestEnv()
			id, ok := Spawn(env, v, 1.0)
			if !ok {
				t.Fatalf("Spawn(%s) returned false", v)
			}

			variant, ok := ecs.GetComponent[*components.VariantComponent](env.EM, id)
			if !ok || variant.Variant != v {
				t.Fatalf("VariantComponent mismatch for %s", v)
			}
			if _, ok := ecs.GetComponent[*components.PositionComponent](env.EM, id); !ok {
				t.Error("missing PositionComponent")
			}
			hitbox, ok := ecs.GetComponent[*components.HitboxComponent](env.EM, id)
			if !ok || (hitbox.Radius <= 0 && !hitbox.IsRect()) {
				t.Error("spawnable entity needs a usable hitbox")
			}

			// 每个种类只属于一种语义
			_, hasScore := ecs.GetComponent[*components.ScoreComponent](env.EM, id)
			_, hasHealth := ecs.GetComponent[*components.HealthComponent](env.EM, id)
			_, hasBonus := ecs.GetComponent[*components.BonusComponent](env.EM, id)
			_, hasFuse := ecs.GetComponent[*components.TimerComponent](env.EM, id)
			if hasScore != types.IsPlainTarget(v) {
				t.Errorf("ScoreComponent presence = %v, want %v", hasScore, types.IsPlainTarget(v))
			}
			if hasHealth != types.IsBossClass(v) {
				t.Errorf("HealthComponent presence = %v, want %v", hasHealth, types.IsBossClass(v))
			}
			if hasBonus != types.IsPickup(v) {
				t.Errorf("BonusComponent presence = %v, want %v", hasBonus, types.IsPickup(v))
			}
			if hasFuse != types.IsHazard(v) {
				t.Errorf("fuse presence = %v, want %v", hasFuse, types.IsHazard(v))
			}
		})
	}
}

func TestSpawnRejectsFeedback(t *testing.T) {
	env := newTestEnv()
	if _, ok := Spawn(env, types.VariantFloatingText, 1); ok {
		t.Error("floating text must not be spawnable")
	}
	if CanSpawn(types.VariantBulletTrace) {
		t.Error("bullet trace must not be spawnable")
	}
}

func TestBalloonPointsFollowSpeed(t *testing.T) {
	// x 抽取 0.5，速度抽取 1.0 -> speed = 300 * 1.2 = 360，points = 10 + 7
	env := newTestEnv(0.5, 1.0)
	id := NewBalloonEntity(env, 1.2)

	motion, _ := ecs.GetComponent[*components.MotionComponent](env.EM, id)
	if motion.Speed != 360 || motion.DirY != -1 {
		t.Errorf("motion = %+v, want speed 360 upward", motion)
	}
	score, _ := ecs.GetComponent[*components.ScoreComponent](env.EM, id)
	if score.Points != 17 {
		t.Errorf("Points = %d, want 17", score.Points)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](env.EM, id)
	if pos.Y != 630 {
		t.Errorf("balloon should start below the canvas, got y=%v", pos.Y)
	}
}

func TestBirdPenaltyScalesWithSize(t *testing.T) {
	// scale 抽取 0.5 -> 0.9；方向抽取 0.9 -> 从左侧进入；y 抽取 0.2；速度抽取 0
	env := newTestEnv(0.5, 0.9, 0.2, 0)
	id := NewBirdEntity(env, 1.0)

	score, _ := ecs.GetComponent[*components.ScoreComponent](env.EM, id)
	if score.Points != -27 {
		t.Errorf("Points = %d, want -27", score.Points)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](env.EM, id)
	if pos.X != -22.5 || pos.Y != 60 {
		t.Errorf("position = (%v, %v), want (-22.5, 60)", pos.X, pos.Y)
	}
	motion, _ := ecs.GetComponent[*components.MotionComponent](env.EM, id)
	if motion.DirX != 1 || motion.Speed != 100 {
		t.Errorf("motion = %+v, want rightward at 100", motion)
	}
}

func TestGodzillaSizeProfiles(t *testing.T) {
	tests := []struct {
		name       string
		sizeDraw   float64
		wantSize   int
		wantHP     int
		wantKill   int
		wantHeight float64
	}{
		{"small", 0.0, 1, 10, 25, 180},
		{"medium", 0.5, 2, 18, 50, 240},
		{"large", 0.9, 3, 25, 75, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(tt.sizeDraw, 0.1)
			id := NewGodzillaEntity(env)

			health, _ := ecs.GetComponent[*components.HealthComponent](env.EM, id)
			if health.SizeClass != tt.wantSize || health.CurrentHealth != tt.wantHP || health.MaxHealth != tt.wantHP {
				t.Errorf("health = %+v, want size %d hp %d", health, tt.wantSize, tt.wantHP)
			}
			if health.KillPoints != tt.wantKill {
				t.Errorf("KillPoints = %d, want %d", health.KillPoints, tt.wantKill)
			}
			hitbox, _ := ecs.GetComponent[*components.HitboxComponent](env.EM, id)
			if !hitbox.IsRect() || hitbox.Height != tt.wantHeight {
				t.Errorf("hitbox = %+v, want rect of height %v", hitbox, tt.wantHeight)
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](env.EM, id)
			if pos.Y != 600 {
				t.Errorf("ground boss should stand on the floor, y=%v", pos.Y)
			}
			// 方向抽取 0.1 -> 从右侧进入
			if pos.X != 800+hitbox.Width {
				t.Errorf("x = %v, want %v", pos.X, 800+hitbox.Width)
			}
		})
	}
}

func TestBombFuse(t *testing.T) {
	env := newTestEnv()
	id := NewBombEntity(env)

	fuse, ok := ecs.GetComponent[*components.TimerComponent](env.EM, id)
	if !ok {
		t.Fatal("bomb should carry a fuse")
	}
	if fuse.TargetTime != 15 || fuse.Remaining() != 15 {
		t.Errorf("fuse = %+v, want 15s", fuse)
	}
}

func TestFeedbackEntities(t *testing.T) {
	env := newTestEnv()

	text := NewFloatingTextEntity(env, 10, 20, "+5", components.ToneGain)
	life, ok := ecs.GetComponent[*components.LifetimeComponent](env.EM, text)
	if !ok || life.Duration != 1 {
		t.Errorf("floating text lifetime = %+v, want 1s", life)
	}

	trace := NewBulletTraceEntity(env, 400, 600, 100, 100)
	tc, ok := ecs.GetComponent[*components.BulletTraceComponent](env.EM, trace)
	if !ok || tc.FromX != 400 || tc.ToY != 100 {
		t.Errorf("bullet trace = %+v", tc)
	}
	life, _ = ecs.GetComponent[*components.LifetimeComponent](env.EM, trace)
	if life.Duration != 0.2 {
		t.Errorf("trace lifetime = %v, want 0.2", life.Duration)
	}
}

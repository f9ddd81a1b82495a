package systems

import (
	"math"
	"testing"

	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/entities"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/types"
)

func newTestCombat(env entities.Env) (*CombatSystem, *recordingObserver) {
	obs := &recordingObserver{}
	return NewCombatSystem(env, obs), obs
}

func TestResolvePrimaryPlainTarget(t *testing.T) {
	tests := []struct {
		name      string
		variant   types.Variant
		points    int
		x, y      float64
		wantHit   bool
		wantScore int
		wantCheer int
	}{
		{"balloon center", types.VariantBalloon, 12, 100, 100, true, 12, 0},
		{"balloon edge inside", types.VariantBalloon, 12, 129, 100, true, 12, 0},
		{"balloon just outside", types.VariantBalloon, 12, 130, 100, false, 0, 0},
		{"bird penalty", types.VariantBird, -27, 95, 105, true, -27, 0},
		{"golden balloon celebrates", types.VariantGoldenBalloon, 150, 100, 100, true, 150, 1},
		{"golden balloon missed", types.VariantGoldenBalloon, 150, 500, 500, false, 0, 0},
		{"empty space", types.VariantBalloon, 12, 500, 500, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			combat, obs := newTestCombat(env)
			rs := newTestRound(1)
			id := placeEntity(env.EM, tt.variant, 100, 100, 30, tt.points)

			result := combat.ResolvePrimary(rs, tt.x, tt.y)
			if result.Resolved != tt.wantHit {
				t.Fatalf("Resolved = %v, want %v", result.Resolved, tt.wantHit)
			}
			if rs.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", rs.Score, tt.wantScore)
			}
			if env.EM.IsMarked(id) != tt.wantHit {
				t.Errorf("marked = %v, want %v", env.EM.IsMarked(id), tt.wantHit)
			}
			if tt.wantHit && len(obs.scoreChanges) != 1 {
				t.Errorf("expected one score notification, got %v", obs.scoreChanges)
			}
			if got := obs.count(game.NoticeCelebration); got != tt.wantCheer {
				t.Errorf("celebration notices = %d, want %d", got, tt.wantCheer)
			}
		})
	}
}

func TestResolvePrimaryTopmostOnly(t *testing.T) {
	env := newTestEnv()
	combat, _ := newTestCombat(env)
	rs := newTestRound(1)

	older := placeEntity(env.EM, types.VariantBalloon, 100, 100, 30, 10)
	newer := placeEntity(env.EM, types.VariantBalloon, 110, 100, 30, 15)

	result := combat.ResolvePrimary(rs, 105, 100)
	if result.Entity != newer {
		t.Errorf("resolved entity %d, want newest %d", result.Entity, newer)
	}
	if env.EM.IsMarked(older) {
		t.Error("primary attack must affect at most one entity")
	}
	if rs.Score != 15 {
		t.Errorf("Score = %d, want 15", rs.Score)
	}

	// 已标记的实体不再参与判定，下一发命中较早的气球
	combat.ResolvePrimary(rs, 105, 100)
	if !env.EM.IsMarked(older) || rs.Score != 25 {
		t.Errorf("second shot should resolve the older balloon, score=%d", rs.Score)
	}
}

func TestResolvePrimarySkipsFeedbackAndNonFinite(t *testing.T) {
	env := newTestEnv()
	combat, _ := newTestCombat(env)
	rs := newTestRound(1)

	entities.NewFloatingTextEntity(env, 100, 100, "+5", components.ToneGain)
	broken := placeEntity(env.EM, types.VariantBalloon, math.NaN(), 100, 30, 10)

	if result := combat.ResolvePrimary(rs, 100, 100); result.Resolved {
		t.Errorf("feedback and non-finite entities must not be hit, got %+v", result)
	}
	if result := combat.ResolvePrimary(rs, math.Inf(1), 100); result.Resolved {
		t.Error("non-finite attack point must be ignored")
	}
	if env.EM.IsMarked(broken) {
		t.Error("non-finite entity should be left alone")
	}
}

// 场景 C：10 点血的 Boss 连续被命中 10 次，第 10 次删除，击杀奖励只发放一次
func TestBossKilledAfterTenHits(t *testing.T) {
	env := newTestEnv() // 随机奖励固定抽到上限 5
	combat, obs := newTestCombat(env)
	rs := newTestRound(4)
	boss := placeBoss(env.EM, types.VariantGodzilla, 400, 600, 100, 200, 10, 25)
	health, _ := ecs.GetComponent[*components.HealthComponent](env.EM, boss)

	prevHP := health.CurrentHealth
	for i := 1; i <= 10; i++ {
		result := combat.ResolvePrimary(rs, 400, 500)
		if !result.Resolved || result.Entity != boss {
			t.Fatalf("hit %d did not resolve the boss", i)
		}
		if health.CurrentHealth >= prevHP {
			t.Fatalf("hit %d: hp %d did not decrease from %d", i, health.CurrentHealth, prevHP)
		}
		prevHP = health.CurrentHealth
		if i < 10 && env.EM.IsMarked(boss) {
			t.Fatalf("boss deleted early after hit %d", i)
		}
		if i == 10 && !result.Killed {
			t.Error("10th hit should kill the boss")
		}
	}

	if !env.EM.IsMarked(boss) {
		t.Fatal("boss should be marked after 10 hits")
	}
	if want := 10*5 + 25; rs.Score != want {
		t.Errorf("Score = %d, want %d", rs.Score, want)
	}

	// 第 11 发不再命中，击杀奖励不会重复发放
	if result := combat.ResolvePrimary(rs, 400, 500); result.Resolved {
		t.Error("dead boss must not be hit again")
	}
	if obs.count(game.NoticeCelebration) != 1 {
		t.Errorf("expected exactly one kill celebration, got %d", obs.count(game.NoticeCelebration))
	}
}

func TestResolvePrimaryPickups(t *testing.T) {
	tests := []struct {
		name    string
		variant types.Variant
		check   func(t *testing.T, rs *game.RoundState)
	}{
		{"golden clock adds time", types.VariantGoldenClock, func(t *testing.T, rs *game.RoundState) {
			if rs.TimeLeft != 40 {
				t.Errorf("TimeLeft = %v, want 40", rs.TimeLeft)
			}
		}},
		{"ammo drop grants full auto", types.VariantAmmoDrop, func(t *testing.T, rs *game.RoundState) {
			if !rs.Ledger.FullAutoActive || rs.Ledger.FullAutoRemaining != 5 {
				t.Errorf("ledger = %+v, want full auto for 5s", rs.Ledger)
			}
		}},
		{"magazine adds bullets", types.VariantMagazineDrop, func(t *testing.T, rs *game.RoundState) {
			if rs.Ledger.Bullets != 60 {
				t.Errorf("Bullets = %d, want 60", rs.Ledger.Bullets)
			}
		}},
		{"shotgun adds shells", types.VariantShotgunDrop, func(t *testing.T, rs *game.RoundState) {
			if rs.Ledger.Shells != 10 {
				t.Errorf("Shells = %d, want 10", rs.Ledger.Shells)
			}
		}},
		{"birthday cap starts party", types.VariantBirthdayCap, func(t *testing.T, rs *game.RoundState) {
			if !rs.PartyActive || rs.PartyRemaining != 5 {
				t.Errorf("party = %v/%v, want active for 5s", rs.PartyActive, rs.PartyRemaining)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			combat, _ := newTestCombat(env)
			rs := newTestRound(1)
			id := placeEntity(env.EM, tt.variant, 200, 200, 25, 0)

			result := combat.ResolvePrimary(rs, 200, 200)
			if !result.Resolved || !env.EM.IsMarked(id) {
				t.Fatal("pickup should be collected and deleted")
			}
			if rs.Score != 0 {
				t.Errorf("pickup changed score to %d", rs.Score)
			}
			tt.check(t, rs)
		})
	}
}

func TestSecondPartyPickupIgnored(t *testing.T) {
	env := newTestEnv()
	combat, obs := newTestCombat(env)
	rs := newTestRound(4)

	placeEntity(env.EM, types.VariantBirthdayCap, 100, 100, 25, 0)
	combat.ResolvePrimary(rs, 100, 100)
	rs.TickParty(2)

	placeEntity(env.EM, types.VariantBirthdayCap, 300, 100, 25, 0)
	combat.ResolvePrimary(rs, 300, 100)

	if rs.PartyRemaining != 3 {
		t.Errorf("PartyRemaining = %v, second cap should not refresh the timer", rs.PartyRemaining)
	}
	if obs.count(game.NoticePartyStarted) != 1 {
		t.Errorf("party started %d times, want 1", obs.count(game.NoticePartyStarted))
	}
}

// 场景 B：距离半径 30 的目标 50px 处发动范围攻击，50 < 30 + 120，目标被消灭
func TestResolveAreaEliminatesWithinBlast(t *testing.T) {
	env := newTestEnv()
	combat, _ := newTestCombat(env)
	rs := newTestRound(1)
	target := placeEntity(env.EM, types.VariantBalloon, 100, 100, 30, 10)
	far := placeEntity(env.EM, types.VariantBalloon, 300, 100, 30, 10)

	result := combat.ResolveArea(rs, 150, 100)
	if !env.EM.IsMarked(target) {
		t.Error("target within radius+blast should be eliminated")
	}
	if env.EM.IsMarked(far) {
		t.Error("target 150px away (>= 30+120) should survive")
	}
	if result.Eliminated != 1 || rs.Score != 10 {
		t.Errorf("result = %+v, score %d", result, rs.Score)
	}
}

func TestResolveAreaAggregatesDelta(t *testing.T) {
	env := newTestEnv()
	combat, obs := newTestCombat(env)
	rs := newTestRound(3)
	rs.Score = 50

	placeEntity(env.EM, types.VariantBalloon, 100, 100, 30, 15)
	placeEntity(env.EM, types.VariantBird, 140, 120, 20, -27)
	placeEntity(env.EM, types.VariantBalloon, 60, 80, 30, 11)

	result := combat.ResolveArea(rs, 100, 100)
	if result.Eliminated != 3 || result.ScoreDelta != -1 {
		t.Errorf("result = %+v, want 3 eliminated, delta -1", result)
	}
	if rs.Score != 49 {
		t.Errorf("Score = %d, want 49", rs.Score)
	}
	if texts := floatingTexts(env.EM); len(texts) != 1 || texts[0] != "-1" {
		t.Errorf("feedback = %v, want a single aggregate text", texts)
	}
	if len(obs.scoreChanges) != 1 {
		t.Errorf("score notifications = %v, want exactly one", obs.scoreChanges)
	}
}

func TestResolveAreaPickupsAndHazards(t *testing.T) {
	env := newTestEnv()
	combat, obs := newTestCombat(env)
	rs := newTestRound(5)

	pickup := placeEntity(env.EM, types.VariantMagazineDrop, 100, 100, 15, 0)
	grazed := placeEntity(env.EM, types.VariantBomb, 160, 100, 25, 0)

	combat.ResolveArea(rs, 100, 100)
	if env.EM.IsMarked(pickup) {
		t.Error("pickups are immune to area attacks")
	}
	if env.EM.IsMarked(grazed) || obs.count(game.NoticeDetonation) != 0 {
		t.Error("a bomb merely grazed by the blast must not detonate")
	}

	combat.ResolveArea(rs, 170, 110)
	if !env.EM.IsMarked(grazed) || obs.count(game.NoticeDetonation) != 1 {
		t.Error("a bomb close to the attack point should detonate")
	}
}

func TestResolveAreaDamagesBossByRectDistance(t *testing.T) {
	env := newTestEnv()
	combat, _ := newTestCombat(env)
	rs := newTestRound(4)
	// 矩形范围 x: 350..450, y: 400..600
	boss := placeBoss(env.EM, types.VariantGodzilla, 400, 600, 100, 200, 10, 25)
	health, _ := ecs.GetComponent[*components.HealthComponent](env.EM, boss)

	// 距矩形顶边 100px，距底边中点 300px
	result := combat.ResolveArea(rs, 400, 300)
	if health.CurrentHealth != 5 || result.Affected != 1 {
		t.Errorf("hp = %d, affected = %d; want 5 and 1", health.CurrentHealth, result.Affected)
	}
	if env.EM.IsMarked(boss) || rs.Score != 0 {
		t.Error("a damaged boss is not eliminated and scores nothing")
	}

	combat.ResolveArea(rs, 400, 300)
	if !env.EM.IsMarked(boss) || rs.Score != 25 {
		t.Errorf("second blast should kill the boss for 25, score=%d", rs.Score)
	}

	// 再次攻击不会重复发放击杀奖励
	combat.ResolveArea(rs, 400, 300)
	if rs.Score != 25 {
		t.Errorf("kill points awarded twice, score=%d", rs.Score)
	}
}

func TestDetonateIdempotent(t *testing.T) {
	env := newTestEnv()
	combat, obs := newTestCombat(env)
	rs := newTestRound(5)

	bomb := placeEntity(env.EM, types.VariantBomb, 400, 575, 25, 0)
	balloon := placeEntity(env.EM, types.VariantBalloon, 400, 400, 30, 12)
	mouse := placeEntity(env.EM, types.VariantMouse, 200, 580, 15, -20)
	pickup := placeEntity(env.EM, types.VariantShotgunDrop, 420, 500, 20, 0)
	other := placeEntity(env.EM, types.VariantBomb, 500, 575, 25, 0)
	distant := placeEntity(env.EM, types.VariantBalloon, 20, 20, 30, 99)

	first := combat.Detonate(rs, bomb)
	second := combat.Detonate(rs, bomb)

	if first.Eliminated != 2 || first.ScoreDelta != -8 {
		t.Errorf("first detonation = %+v, want 2 eliminated, delta -8", first)
	}
	if second != (AreaResult{}) {
		t.Errorf("second detonation = %+v, want no-op", second)
	}
	if rs.Score != -8 {
		t.Errorf("Score = %d, want -8", rs.Score)
	}
	if obs.count(game.NoticeDetonation) != 1 {
		t.Errorf("detonation notices = %d, want 1", obs.count(game.NoticeDetonation))
	}
	for _, id := range []ecs.EntityID{bomb, balloon, mouse} {
		if !env.EM.IsMarked(id) {
			t.Errorf("entity %d should be eliminated", id)
		}
	}
	for _, id := range []ecs.EntityID{pickup, other, distant} {
		if env.EM.IsMarked(id) {
			t.Errorf("entity %d should survive the blast", id)
		}
	}
}

func TestDirectHitDetonatesOnce(t *testing.T) {
	env := newTestEnv()
	combat, obs := newTestCombat(env)
	rs := newTestRound(5)

	bomb := placeEntity(env.EM, types.VariantBomb, 400, 300, 25, 0)
	placeBoss(env.EM, types.VariantGodzilla, 450, 600, 100, 200, 10, 25)

	result := combat.ResolvePrimary(rs, 400, 300)
	if !result.Detonated || result.ScoreDelta != 25 {
		t.Errorf("result = %+v, want detonation killing the boss for 25", result)
	}

	// 引信恰好在同一帧燃尽
	if again := combat.Detonate(rs, bomb); again != (AreaResult{}) {
		t.Errorf("fuse after direct hit = %+v, want no-op", again)
	}
	if rs.Score != 25 || obs.count(game.NoticeDetonation) != 1 {
		t.Errorf("score %d, notices %d; detonation must apply once", rs.Score, obs.count(game.NoticeDetonation))
	}
}

// Package engine 提供驱动层使用的模拟引擎入口
//
// 引擎在单个 goroutine 中运行：外部时钟调用 Tick 推进整帧模拟
// （生成 -> 运动 -> 交互 -> 清理），玩家输入在两帧之间同步结算。
// 引擎不做任何渲染、音效或网络操作，结果通过 game.Observer 上报。
package engine

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/entities"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/systems"
	"github.com/decker502/skyshot/pkg/types"
	"github.com/decker502/skyshot/pkg/utils"
)

// 调用顺序错误（程序错误）。正常游戏中的边界情况不会返回错误。
var (
	ErrRoundNotStarted = errors.New("round not started")
	ErrRoundNotWon     = errors.New("round not won")
	ErrInvalidRound    = errors.New("invalid round number")
)

// LogOutputFrameInterval 日志输出间隔（每N帧输出一次）
const LogOutputFrameInterval = 300

// Engine 模拟引擎
type Engine struct {
	entityManager *ecs.EntityManager
	env           entities.Env
	state         *game.RoundState
	observer      game.Observer

	roundSystem       *systems.RoundSystem
	spawnSystem       *systems.SpawnSystem
	motionSystem      *systems.MotionSystem
	combatSystem      *systems.CombatSystem
	interactionSystem *systems.InteractionSystem
	lifetimeSystem    *systems.LifetimeSystem

	logFrameCounter int
}

// New 创建引擎
//
// 参数：
//
//	bundle - 回合表、生成规则与数值配置
//	rng - 随机数来源（测试中传入确定性来源）
//	observer - 外部协作者，可以为 nil
func New(bundle *config.Bundle, rng utils.RandomSource, observer game.Observer) *Engine {
	if observer == nil {
		observer = game.BaseObserver{}
	}

	em := ecs.NewEntityManager()
	env := entities.Env{EM: em, Rand: rng, Tuning: bundle.Tuning}
	combat := systems.NewCombatSystem(env, observer)

	return &Engine{
		entityManager:     em,
		env:               env,
		state:             game.NewRoundState(),
		observer:          observer,
		roundSystem:       systems.NewRoundSystem(em, bundle.Rounds, bundle.Tuning.Ledger, observer),
		spawnSystem:       systems.NewSpawnSystem(env, bundle.Spawn, observer),
		motionSystem:      systems.NewMotionSystem(env),
		combatSystem:      combat,
		interactionSystem: systems.NewInteractionSystem(env, combat, observer),
		lifetimeSystem:    systems.NewLifetimeSystem(em),
	}
}

// StartRound 开始第 n 回合
func (e *Engine) StartRound(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRound, n)
	}
	return e.roundSystem.Begin(e.state, n)
}

// RetryRound 重玩当前回合，分数回滚到回合起始检查点
func (e *Engine) RetryRound() error {
	if e.state.Round == 0 {
		return ErrRoundNotStarted
	}
	return e.roundSystem.Begin(e.state, e.state.Round)
}

// NextRound 进入下一回合，仅在本回合获胜后可用
func (e *Engine) NextRound() error {
	if e.state.Phase != game.PhaseWon {
		return fmt.Errorf("%w: round %d is %s", ErrRoundNotWon, e.state.Round, e.state.Phase)
	}
	return e.roundSystem.Begin(e.state, e.state.Round+1)
}

// AbandonRound 放弃当前回合，回到空闲状态
func (e *Engine) AbandonRound() {
	e.roundSystem.Abandon(e.state)
}

// Tick 推进一帧
//
// 回合未开始时返回 ErrRoundNotStarted；回合已结束时不做任何事。
func (e *Engine) Tick(dtMillis float64) error {
	if e.state.Phase == game.PhaseIdle {
		return ErrRoundNotStarted
	}
	if e.state.IsEnded() || !utils.IsFinite(dtMillis) || dtMillis <= 0 {
		return nil
	}
	dt := dtMillis / 1000
	rs := e.state

	if e.roundSystem.Update(rs, dt) {
		e.entityManager.RemoveMarkedEntities()
		e.observer.OnTick(e.Telemetry())
		return nil
	}

	if rs.TickParty(dt) {
		e.observer.OnNotice(game.Notice{Kind: game.NoticePartyEnded, Variant: types.VariantBirthdayCap})
	}
	e.tickFullAuto(dtMillis)

	e.spawnSystem.Update(rs, dtMillis)
	e.motionSystem.Update(dt)
	e.interactionSystem.Update(rs, dt)
	e.lifetimeSystem.Update(dt)
	e.entityManager.RemoveMarkedEntities()

	e.logFrameCounter++
	if e.logFrameCounter%LogOutputFrameInterval == 1 {
		log.Printf("[Engine] Round %d: %d entities, score %d (%d/%d), %.1fs left",
			rs.Round, e.entityManager.Count(), rs.Score, rs.RoundScore(), rs.Config.MinPointsToAdvance, rs.TimeLeft)
	}

	e.observer.OnTick(e.Telemetry())
	return nil
}

// tickFullAuto 按固定节奏自动射击，节奏由帧时间累加驱动
func (e *Engine) tickFullAuto(dtMillis float64) {
	ledgerTuning := e.env.Tuning.Ledger
	shots, expired := e.state.Ledger.TickFullAuto(dtMillis, ledgerTuning.FullAutoCadenceMillis)
	if expired {
		e.observer.OnNotice(game.Notice{Kind: game.NoticeFullAutoExpired, Variant: types.VariantAmmoDrop})
		log.Printf("[Engine] Full auto expired")
		return
	}
	for range shots {
		e.autoFire()
	}
}

// autoFire 以最近的瞄准点加随机散布发射一发，不消耗弹药
func (e *Engine) autoFire() {
	rs := e.state
	if !rs.IsRunning() || !rs.Ledger.FullAutoActive || !rs.Ledger.HasAim {
		return
	}

	spread := e.env.Tuning.Ledger.FullAutoSpread
	rng := e.env.Rand
	x := rs.Ledger.AimX + (rng.Float64()-0.5)*spread
	y := rs.Ledger.AimY + (rng.Float64()-0.5)*spread

	canvas := e.env.Tuning.Canvas
	fromX := canvas.Width/2 + (rng.Float64()-0.5)*100
	entities.NewBulletTraceEntity(e.env, fromX, canvas.Height, x, y)

	e.combatSystem.ResolvePrimary(rs, x, y)
}

// ResolvePrimary 单发攻击
//
// 回合未进行或弹药耗尽时不做任何事。
// 全自动模式期间只更新瞄准点，射击由自动开火负责。
func (e *Engine) ResolvePrimary(x, y float64) systems.HitResult {
	rs := e.state
	if !rs.IsRunning() || !utils.IsFinite(x, y) {
		return systems.HitResult{}
	}
	if rs.Ledger.FullAutoActive {
		rs.Ledger.SetAim(x, y)
		return systems.HitResult{}
	}
	if !rs.Ledger.SpendBullet() {
		return systems.HitResult{}
	}
	rs.Ledger.SetAim(x, y)
	return e.combatSystem.ResolvePrimary(rs, x, y)
}

// ResolveArea 范围攻击，回合未进行或霰弹耗尽时不做任何事
func (e *Engine) ResolveArea(x, y float64) systems.AreaResult {
	rs := e.state
	if !rs.IsRunning() || !utils.IsFinite(x, y) {
		return systems.AreaResult{}
	}
	if !rs.Ledger.SpendShell() {
		return systems.AreaResult{}
	}
	return e.combatSystem.ResolveArea(rs, x, y)
}

// SetAim 更新瞄准点（鼠标移动）
func (e *Engine) SetAim(x, y float64) {
	if utils.IsFinite(x, y) {
		e.state.Ledger.SetAim(x, y)
	}
}

// Telemetry 当前状态快照
func (e *Engine) Telemetry() game.Telemetry {
	rs := e.state
	return game.Telemetry{
		Score:          rs.Score,
		RoundScore:     rs.RoundScore(),
		Bullets:        rs.Ledger.BulletsForDisplay(),
		Shells:         rs.Ledger.Shells,
		Round:          rs.Round,
		TimeLeft:       rs.TimeLeftCeil(),
		Target:         rs.Config.MinPointsToAdvance,
		FullAutoActive: rs.Ledger.FullAutoActive,
		PartyActive:    rs.PartyActive,
	}
}

// Phase 回合状态
func (e *Engine) Phase() game.Phase { return e.state.Phase }

// Round 当前回合编号
func (e *Engine) Round() int { return e.state.Round }

// Score 累计分数
func (e *Engine) Score() int { return e.state.Score }

// Canvas 逻辑画布尺寸
func (e *Engine) Canvas() config.CanvasConfig { return e.env.Tuning.Canvas }

// EntityCount 当前实体数量（含飘字、弹道）
func (e *Engine) EntityCount() int { return e.entityManager.Count() }

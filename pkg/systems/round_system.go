package systems

import (
	"fmt"
	"log"

	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/ecs"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/types"
)

// RoundSystem 回合流程管理
//
// 职责：
//   - 计算回合配置（表内查表，表外按公式外推）
//   - 维护回合起始分数检查点
//   - 推进回合时钟并在时间耗尽时判定胜负
type RoundSystem struct {
	entityManager *ecs.EntityManager
	table         *config.RoundTable
	ledger        config.LedgerTuning
	observer      game.Observer
}

// NewRoundSystem 创建回合流程系统
func NewRoundSystem(em *ecs.EntityManager, table *config.RoundTable, ledger config.LedgerTuning, observer game.Observer) *RoundSystem {
	return &RoundSystem{
		entityManager: em,
		table:         table,
		ledger:        ledger,
		observer:      observer,
	}
}

// Begin 进入第 n 回合
//
// 进入更高的回合时以当前分数作为新的检查点；
// 重玩同一回合（或更低回合）时分数回滚到检查点。
// 上一回合遗留的实体全部清除。
func (s *RoundSystem) Begin(rs *game.RoundState, n int) error {
	cfg, err := s.table.ForRound(n)
	if err != nil {
		return fmt.Errorf("failed to configure round %d: %w", n, err)
	}

	if n > rs.Round {
		rs.ScoreAtRoundStart = rs.Score
	} else {
		rs.Score = rs.ScoreAtRoundStart
	}

	s.entityManager.Clear()
	rs.Reset(n, cfg, s.ledger)

	log.Printf("[RoundSystem] Round %d started: target %d, %.0fs, interval %.0fms, speed x%.2f, checkpoint %d",
		n, cfg.MinPointsToAdvance, cfg.DurationSeconds, cfg.SpawnIntervalMillis, cfg.SpeedMultiplier, rs.ScoreAtRoundStart)
	return nil
}

// Abandon 放弃当前回合，回到空闲状态，不触发胜负回调
func (s *RoundSystem) Abandon(rs *game.RoundState) {
	if rs.Phase == game.PhaseIdle {
		return
	}
	rs.Phase = game.PhaseIdle
	rs.Score = rs.ScoreAtRoundStart
	s.entityManager.Clear()
	log.Printf("[RoundSystem] Round %d abandoned", rs.Round)
}

// Update 推进回合时钟，dt 单位为秒
// 返回本次是否结束了回合
func (s *RoundSystem) Update(rs *game.RoundState, dt float64) bool {
	if !rs.IsRunning() || !rs.TickClock(dt) {
		return false
	}

	// 回合结束时关闭临时模式，遗留的自动射击不会再触发
	if rs.Ledger.FullAutoActive {
		rs.Ledger.FullAutoActive = false
		s.observer.OnNotice(game.Notice{Kind: game.NoticeFullAutoExpired, Variant: types.VariantAmmoDrop})
	}
	if rs.PartyActive {
		rs.PartyActive = false
		s.observer.OnNotice(game.Notice{Kind: game.NoticePartyEnded, Variant: types.VariantBirthdayCap})
	}

	if rs.TargetReached() {
		rs.Phase = game.PhaseWon
		log.Printf("[RoundSystem] Round %d won: round score %d / %d", rs.Round, rs.RoundScore(), rs.Config.MinPointsToAdvance)
		s.observer.OnNotice(game.Notice{Kind: game.NoticeCelebration})
		s.observer.OnRoundWon(rs.Score, rs.Round)
	} else {
		rs.Phase = game.PhaseLost
		log.Printf("[RoundSystem] Round %d lost: round score %d / %d", rs.Round, rs.RoundScore(), rs.Config.MinPointsToAdvance)
		s.observer.OnRoundLost(rs.Score)
	}

	return true
}

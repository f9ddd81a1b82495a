package game

import (
	"math"

	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/types"
)

// Phase 回合状态机的状态
type Phase int

const (
	PhaseIdle    Phase = iota // 尚未开始或已放弃
	PhaseRunning              // 进行中
	PhaseWon                  // 已结束：达成目标
	PhaseLost                 // 已结束：未达成目标
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	}
	return "unknown"
}

// RoundState 单局游戏的回合上下文
//
// 由引擎持有并显式传递给各系统，不存在全局单例。
// 跨回合保留的只有累计分数和回合起始分数检查点，其余字段在 Reset 时全部重置。
type RoundState struct {
	Round  int
	Config config.RoundConfig
	Phase  Phase

	Score             int // 累计分数
	ScoreAtRoundStart int // 回合起始检查点
	TimeLeft          float64

	// 本回合各种类已生成数量（仅统计设有上限的种类）
	SpawnCounts      map[types.Variant]int
	SpawnAccumulator float64 // 生成计时累加器（毫秒）

	PartyActive    bool
	PartyRemaining float64 // 派对模式剩余时间（秒）

	Ledger Ledger
}

// NewRoundState 创建空闲状态的回合上下文
func NewRoundState() *RoundState {
	return &RoundState{
		Phase:       PhaseIdle,
		SpawnCounts: make(map[types.Variant]int),
	}
}

// Reset 进入第 n 回合：重置计数器、生成累加器、派对模式和弹药
// 分数与检查点由调用方决定如何处理
func (rs *RoundState) Reset(n int, cfg config.RoundConfig, ledger config.LedgerTuning) {
	rs.Round = n
	rs.Config = cfg
	rs.Phase = PhaseRunning
	rs.TimeLeft = cfg.DurationSeconds
	clear(rs.SpawnCounts)
	rs.SpawnAccumulator = 0
	rs.PartyActive = false
	rs.PartyRemaining = 0
	rs.Ledger.Reset(ledger)
}

// IsRunning 回合是否进行中
func (rs *RoundState) IsRunning() bool {
	return rs.Phase == PhaseRunning
}

// IsEnded 回合是否已结束（胜或负）
func (rs *RoundState) IsEnded() bool {
	return rs.Phase == PhaseWon || rs.Phase == PhaseLost
}

// RoundScore 本回合获得的分数（可为负）
func (rs *RoundState) RoundScore() int {
	return rs.Score - rs.ScoreAtRoundStart
}

// TargetReached 本回合分数是否达到目标
func (rs *RoundState) TargetReached() bool {
	return rs.RoundScore() >= rs.Config.MinPointsToAdvance
}

// TickClock 推进回合时钟，返回时间是否已耗尽
func (rs *RoundState) TickClock(dtSeconds float64) bool {
	rs.TimeLeft -= dtSeconds
	if rs.TimeLeft <= timeEpsilon {
		rs.TimeLeft = 0
		return true
	}
	return false
}

// AddTime 延长回合时间
func (rs *RoundState) AddTime(seconds float64) {
	rs.TimeLeft += seconds
}

// TimeLeftCeil 剩余时间向上取整（秒），不小于 0
func (rs *RoundState) TimeLeftCeil() int {
	if rs.TimeLeft <= 0 {
		return 0
	}
	return int(math.Ceil(rs.TimeLeft))
}

// AddScore 累加带符号的分数
func (rs *RoundState) AddScore(delta int) {
	rs.Score += delta
}

// ApplyPenalty 扣分，分数最低为 0
// 返回实际扣除的分数
func (rs *RoundState) ApplyPenalty(p int) int {
	before := rs.Score
	rs.Score = max(0, rs.Score-p)
	return before - rs.Score
}

// SpawnCount 本回合某种类的已生成数量
func (rs *RoundState) SpawnCount(v types.Variant) int {
	return rs.SpawnCounts[v]
}

// RecordSpawn 记录一次生成
func (rs *RoundState) RecordSpawn(v types.Variant) {
	rs.SpawnCounts[v]++
}

// StartParty 开启派对模式，已在派对中时忽略
func (rs *RoundState) StartParty(seconds float64) bool {
	if rs.PartyActive {
		return false
	}
	rs.PartyActive = true
	rs.PartyRemaining = seconds
	return true
}

// TickParty 推进派对模式计时，返回本次是否结束
func (rs *RoundState) TickParty(dtSeconds float64) bool {
	if !rs.PartyActive {
		return false
	}
	rs.PartyRemaining -= dtSeconds
	if rs.PartyRemaining <= timeEpsilon {
		rs.PartyActive = false
		rs.PartyRemaining = 0
		return true
	}
	return false
}

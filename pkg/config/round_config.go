package config

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// RoundConfig 单个回合的难度参数
type RoundConfig struct {
	Round               int     `yaml:"round"`
	MinPointsToAdvance  int     `yaml:"minPointsToAdvance"`  // 本回合需要获得的分数
	DurationSeconds     float64 `yaml:"durationSeconds"`     // 回合时长（秒）
	SpawnIntervalMillis float64 `yaml:"spawnIntervalMillis"` // 生成间隔（毫秒）
	SpeedMultiplier     float64 `yaml:"speedMultiplier"`     // 目标速度倍率
}

// ExtrapolationConfig 超出回合表之后的推算参数
//
// 第 K+k 回合（K 为表中最后一个回合）：
//
//	目标分数 = round(last.MinPointsToAdvance * TargetGrowth^k)
//	生成间隔 = max(IntervalFloorMillis, last.SpawnIntervalMillis * IntervalDecay^k)
//	速度倍率 = last.SpeedMultiplier + SpeedStep * k
type ExtrapolationConfig struct {
	TargetGrowth        float64 `yaml:"targetGrowth"`
	IntervalDecay       float64 `yaml:"intervalDecay"`
	IntervalFloorMillis float64 `yaml:"intervalFloorMillis"`
	SpeedStep           float64 `yaml:"speedStep"`
	DurationSeconds     float64 `yaml:"durationSeconds"`
}

// RoundTable 回合表
type RoundTable struct {
	Rounds        []RoundConfig       `yaml:"rounds"`
	Extrapolation ExtrapolationConfig `yaml:"extrapolation"`
}

// LoadRoundTable 从 YAML 文件加载回合表
func LoadRoundTable(path string) (*RoundTable, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	table, err := ParseRoundTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid round table in %s: %w", path, err)
	}
	return table, nil
}

// ParseRoundTable 解析并验证回合表
func ParseRoundTable(data []byte) (*RoundTable, error) {
	var table RoundTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse round table YAML: %w", err)
	}

	applyRoundDefaults(&table)

	if err := validateRoundTable(&table); err != nil {
		return nil, err
	}
	return &table, nil
}

// applyRoundDefaults 未填写回合号时按顺序编号，推算参数缺省时使用内置值
func applyRoundDefaults(table *RoundTable) {
	for i := range table.Rounds {
		if table.Rounds[i].Round == 0 {
			table.Rounds[i].Round = i + 1
		}
	}

	def := DefaultRoundTable().Extrapolation
	ext := &table.Extrapolation
	if ext.TargetGrowth == 0 {
		ext.TargetGrowth = def.TargetGrowth
	}
	if ext.IntervalDecay == 0 {
		ext.IntervalDecay = def.IntervalDecay
	}
	if ext.IntervalFloorMillis == 0 {
		ext.IntervalFloorMillis = def.IntervalFloorMillis
	}
	if ext.SpeedStep == 0 {
		ext.SpeedStep = def.SpeedStep
	}
	if ext.DurationSeconds == 0 && len(table.Rounds) > 0 {
		ext.DurationSeconds = table.Rounds[len(table.Rounds)-1].DurationSeconds
	}
}

func validateRoundTable(table *RoundTable) error {
	if len(table.Rounds) == 0 {
		return fmt.Errorf("rounds cannot be empty")
	}

	for i, r := range table.Rounds {
		if r.Round != i+1 {
			return fmt.Errorf("rounds[%d]: round must be %d, got %d", i, i+1, r.Round)
		}
		if r.MinPointsToAdvance <= 0 {
			return fmt.Errorf("round %d: minPointsToAdvance must be > 0, got %d", r.Round, r.MinPointsToAdvance)
		}
		if r.DurationSeconds <= 0 {
			return fmt.Errorf("round %d: durationSeconds must be > 0, got %v", r.Round, r.DurationSeconds)
		}
		if r.SpawnIntervalMillis <= 0 {
			return fmt.Errorf("round %d: spawnIntervalMillis must be > 0, got %v", r.Round, r.SpawnIntervalMillis)
		}
		if r.SpeedMultiplier <= 0 {
			return fmt.Errorf("round %d: speedMultiplier must be > 0, got %v", r.Round, r.SpeedMultiplier)
		}
	}

	ext := table.Extrapolation
	if ext.TargetGrowth <= 1 {
		return fmt.Errorf("extrapolation.targetGrowth must be > 1, got %v", ext.TargetGrowth)
	}
	if ext.IntervalDecay <= 0 || ext.IntervalDecay > 1 {
		return fmt.Errorf("extrapolation.intervalDecay must be in (0, 1], got %v", ext.IntervalDecay)
	}
	if ext.IntervalFloorMillis <= 0 {
		return fmt.Errorf("extrapolation.intervalFloorMillis must be > 0, got %v", ext.IntervalFloorMillis)
	}
	if ext.SpeedStep < 0 {
		return fmt.Errorf("extrapolation.speedStep must be >= 0, got %v", ext.SpeedStep)
	}
	if ext.DurationSeconds <= 0 {
		return fmt.Errorf("extrapolation.durationSeconds must be > 0, got %v", ext.DurationSeconds)
	}
	return nil
}

// MaxRoundTarget 推算回合目标分数的上限
const MaxRoundTarget = math.MaxInt32

// ForRound 返回第 n 回合的配置，n 超出回合表时按推算公式计算
func (t *RoundTable) ForRound(n int) (RoundConfig, error) {
	if n < 1 {
		return RoundConfig{}, fmt.Errorf("round must be >= 1, got %d", n)
	}
	if n <= len(t.Rounds) {
		return t.Rounds[n-1], nil
	}

	last := t.Rounds[len(t.Rounds)-1]
	ext := t.Extrapolation
	k := float64(n - len(t.Rounds))

	// 指数增长很快超出 int 范围，超过上限后目标保持不变
	target := int(math.Min(math.Round(float64(last.MinPointsToAdvance)*math.Pow(ext.TargetGrowth, k)), MaxRoundTarget))
	interval := math.Max(ext.IntervalFloorMillis, last.SpawnIntervalMillis*math.Pow(ext.IntervalDecay, k))

	return RoundConfig{
		Round:               n,
		MinPointsToAdvance:  target,
		DurationSeconds:     ext.DurationSeconds,
		SpawnIntervalMillis: interval,
		SpeedMultiplier:     last.SpeedMultiplier + ext.SpeedStep*k,
	}, nil
}

// DefaultRoundTable 内置回合表
func DefaultRoundTable() *RoundTable {
	return &RoundTable{
		Rounds: []RoundConfig{
			{Round: 1, MinPointsToAdvance: 35, DurationSeconds: 30, SpawnIntervalMillis: 1100, SpeedMultiplier: 1.0},
			{Round: 2, MinPointsToAdvance: 90, DurationSeconds: 30, SpawnIntervalMillis: 950, SpeedMultiplier: 1.2},
			{Round: 3, MinPointsToAdvance: 175, DurationSeconds: 30, SpawnIntervalMillis: 850, SpeedMultiplier: 1.5},
			{Round: 4, MinPointsToAdvance: 290, DurationSeconds: 25, SpawnIntervalMillis: 750, SpeedMultiplier: 1.8},
			{Round: 5, MinPointsToAdvance: 460, DurationSeconds: 25, SpawnIntervalMillis: 650, SpeedMultiplier: 2.2},
		},
		Extrapolation: ExtrapolationConfig{
			TargetGrowth:        1.3,
			IntervalDecay:       0.92,
			IntervalFloorMillis: 350,
			SpeedStep:           0.3,
			DurationSeconds:     25,
		},
	}
}

package config

import (
	"fmt"

	"github.com/decker502/skyshot/pkg/types"
	"gopkg.in/yaml.v3"
)

// SpawnRulesConfig 实体生成规则配置
//
// 生成判定是一个按顺序执行、命中即停止的级联：
//  1. 派对模式：只生成派对目标，不触碰任何计数器
//  2. Rules 中的规则依次判定（最低回合、每回合上限、同屏互斥、概率）
//  3. 全部未命中时进入 Fallback 分段分布
type SpawnRulesConfig struct {
	Party    PartyConfig    `yaml:"party"`
	Rules    []SpawnRule    `yaml:"rules"`
	Fallback FallbackConfig `yaml:"fallback"`
}

// PartyConfig 派对模式下的生成参数
type PartyConfig struct {
	Variant        types.Variant `yaml:"variant"`
	IntervalMillis float64       `yaml:"intervalMillis"` // 派对模式生成间隔（毫秒）
	SpeedFactor    float64       `yaml:"speedFactor"`    // 在回合速度倍率上再乘的系数
}

// SpawnRule 单条级联规则
type SpawnRule struct {
	Variant   types.Variant `yaml:"variant"`
	MinRound  int           `yaml:"minRound"`  // 最低回合
	Cap       int           `yaml:"cap"`       // 每回合生成上限，0 表示不限
	Exclusive bool          `yaml:"exclusive"` // 同屏已有同类实体时跳过
	Chance    float64       `yaml:"chance"`    // 每次判定的独立概率
}

// FallbackConfig 兜底分布
//
// 先抽取一个随机数 r（在级联开始前抽取）：
//
//	r < RareBand                                              -> RareVariant
//	round >= GroundMinRound && 独立抽取 < GroundChance && r < GroundBand -> GroundVariants 等概率
//	r > AirBand                                               -> AirVariant
//	否则                                                      -> DefaultVariant
type FallbackConfig struct {
	RareVariant    types.Variant   `yaml:"rareVariant"`
	RareBand       float64         `yaml:"rareBand"`
	GroundVariants []types.Variant `yaml:"groundVariants"`
	GroundMinRound int             `yaml:"groundMinRound"`
	GroundChance   float64         `yaml:"groundChance"`
	GroundBand     float64         `yaml:"groundBand"`
	AirVariant     types.Variant   `yaml:"airVariant"`
	AirBand        float64         `yaml:"airBand"`
	DefaultVariant types.Variant   `yaml:"defaultVariant"`
}

// LoadSpawnRules 从 YAML 文件加载生成规则配置
func LoadSpawnRules(path string) (*SpawnRulesConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseSpawnRules(data)
	if err != nil {
		return nil, fmt.Errorf("invalid spawn rules config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseSpawnRules 解析并验证生成规则
func ParseSpawnRules(data []byte) (*SpawnRulesConfig, error) {
	var cfg SpawnRulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse spawn rules YAML: %w", err)
	}

	applySpawnDefaults(&cfg)

	if err := validateSpawnRules(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applySpawnDefaults(cfg *SpawnRulesConfig) {
	if cfg.Party.Variant == types.VariantUnknown {
		cfg.Party.Variant = types.VariantBalloon
	}
	if cfg.Party.IntervalMillis == 0 {
		cfg.Party.IntervalMillis = 40
	}
	if cfg.Party.SpeedFactor == 0 {
		cfg.Party.SpeedFactor = 1.5
	}
	for i := range cfg.Rules {
		if cfg.Rules[i].MinRound == 0 {
			cfg.Rules[i].MinRound = 1
		}
	}
	if cfg.Fallback.DefaultVariant == types.VariantUnknown {
		cfg.Fallback.DefaultVariant = types.VariantBalloon
	}
}

// validateSpawnRules 验证配置的有效性
func validateSpawnRules(cfg *SpawnRulesConfig) error {
	if cfg.Party.IntervalMillis <= 0 {
		return fmt.Errorf("party.intervalMillis must be > 0, got %v", cfg.Party.IntervalMillis)
	}
	if cfg.Party.SpeedFactor <= 0 {
		return fmt.Errorf("party.speedFactor must be > 0, got %v", cfg.Party.SpeedFactor)
	}
	if types.IsFeedback(cfg.Party.Variant) {
		return fmt.Errorf("party.variant cannot be a feedback item")
	}

	for i, rule := range cfg.Rules {
		if rule.Variant == types.VariantUnknown || types.IsFeedback(rule.Variant) {
			return fmt.Errorf("rules[%d]: variant %s cannot be spawned", i, rule.Variant)
		}
		if rule.Cap < 0 {
			return fmt.Errorf("rules[%d] (%s): cap must be >= 0, got %d", i, rule.Variant, rule.Cap)
		}
		if rule.Chance < 0 || rule.Chance > 1 {
			return fmt.Errorf("rules[%d] (%s): chance must be in [0, 1], got %v", i, rule.Variant, rule.Chance)
		}
	}

	fb := cfg.Fallback
	for _, band := range []struct {
		name  string
		value float64
	}{
		{"rareBand", fb.RareBand},
		{"groundChance", fb.GroundChance},
		{"groundBand", fb.GroundBand},
		{"airBand", fb.AirBand},
	} {
		if band.value < 0 || band.value > 1 {
			return fmt.Errorf("fallback.%s must be in [0, 1], got %v", band.name, band.value)
		}
	}
	if fb.RareBand > 0 && fb.RareVariant == types.VariantUnknown {
		return fmt.Errorf("fallback.rareVariant is required when rareBand > 0")
	}
	if fb.GroundBand > 0 && len(fb.GroundVariants) == 0 {
		return fmt.Errorf("fallback.groundVariants is required when groundBand > 0")
	}
	if fb.AirBand < 1 && fb.AirVariant == types.VariantUnknown {
		return fmt.Errorf("fallback.airVariant is required when airBand < 1")
	}
	return nil
}

// CappedVariants 返回所有设有每回合上限的种类及其上限
func (c *SpawnRulesConfig) CappedVariants() map[types.Variant]int {
	caps := make(map[types.Variant]int)
	for _, rule := range c.Rules {
		if rule.Cap > 0 {
			caps[rule.Variant] = rule.Cap
		}
	}
	return caps
}

// DefaultSpawnRules 内置生成规则
func DefaultSpawnRules() *SpawnRulesConfig {
	return &SpawnRulesConfig{
		Party: PartyConfig{
			Variant:        types.VariantBalloon,
			IntervalMillis: 40,
			SpeedFactor:    1.5,
		},
		Rules: []SpawnRule{
			{Variant: types.VariantBirthdayCap, MinRound: 4, Cap: 1, Chance: 0.02},
			{Variant: types.VariantBomb, MinRound: 5, Chance: 0.015},
			{Variant: types.VariantGoldenBalloon, MinRound: 3, Cap: 1, Chance: 0.03},
			{Variant: types.VariantGodzilla, MinRound: 4, Cap: 2, Exclusive: true, Chance: 0.010},
			{Variant: types.VariantPterodactyl, MinRound: 5, Cap: 2, Exclusive: true, Chance: 0.010},
			{Variant: types.VariantHydra, MinRound: 6, Cap: 1, Exclusive: true, Chance: 0.008},
			{Variant: types.VariantGoldenClock, MinRound: 2, Cap: 2, Chance: 0.015},
			{Variant: types.VariantAmmoDrop, MinRound: 1, Cap: 4, Chance: 0.015},
			{Variant: types.VariantMagazineDrop, MinRound: 1, Chance: 0.03},
			{Variant: types.VariantShotgunDrop, MinRound: 1, Chance: 0.02},
		},
		Fallback: FallbackConfig{
			RareVariant:    types.VariantDragon,
			RareBand:       0.05,
			GroundVariants: []types.Variant{types.VariantMouse, types.VariantHedgehog, types.VariantGopher},
			GroundMinRound: 3,
			GroundChance:   0.35,
			GroundBand:     0.25,
			AirVariant:     types.VariantBird,
			AirBand:        0.75,
			DefaultVariant: types.VariantBalloon,
		},
	}
}

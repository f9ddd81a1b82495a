package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TuningConfig 战斗、交互与资源相关的数值
//
// 配置文件位置: data/tuning.yaml
type TuningConfig struct {
	Canvas      CanvasConfig      `yaml:"canvas"`
	Combat      CombatTuning      `yaml:"combat"`
	Interaction InteractionTuning `yaml:"interaction"`
	Ledger      LedgerTuning      `yaml:"ledger"`
	Boss        BossTuning        `yaml:"boss"`
	Feedback    FeedbackTuning    `yaml:"feedback"`
}

// CanvasConfig 逻辑画布尺寸（像素）
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CombatTuning 攻击判定参数
type CombatTuning struct {
	AreaBlastRadius      float64 `yaml:"areaBlastRadius"`      // 范围攻击半径
	HazardDirectRadius   float64 `yaml:"hazardDirectRadius"`   // 范围攻击引爆炸弹所需的中心距离
	AreaBossDamage       int     `yaml:"areaBossDamage"`       // 范围攻击对 Boss 的伤害
	DetonationRadius     float64 `yaml:"detonationRadius"`     // 炸弹爆炸半径
	DetonationBossDamage int     `yaml:"detonationBossDamage"` // 爆炸对 Boss 的伤害
	BossHitBonusMin      int     `yaml:"bossHitBonusMin"`      // 单发命中 Boss 的随机奖励下限
	BossHitBonusMax      int     `yaml:"bossHitBonusMax"`      // 单发命中 Boss 的随机奖励上限
}

// InteractionTuning Boss 与小动物之间的交互判定
type InteractionTuning struct {
	TrampleRangeX   float64 `yaml:"trampleRangeX"` // 踩踏判定的水平距离
	TrampleRangeY   float64 `yaml:"trampleRangeY"` // 踩踏判定的垂直距离
	PredatorRangeX  float64 `yaml:"predatorRangeX"`
	PredatorRangeY  float64 `yaml:"predatorRangeY"`
	PenaltyMin      int     `yaml:"penaltyMin"` // 被踩/被吃时的扣分下限
	PenaltyMax      int     `yaml:"penaltyMax"` // 被踩/被吃时的扣分上限
	HazardFuseSecs  float64 `yaml:"hazardFuseSeconds"`
	GopherWaitSecs  float64 `yaml:"gopherWaitSeconds"`
	GopherRiseDepth float64 `yaml:"gopherRiseDepth"` // 地鼠升起的高度
}

// LedgerTuning 弹药与增益
type LedgerTuning struct {
	StartingBullets       int     `yaml:"startingBullets"`
	StartingShells        int     `yaml:"startingShells"`
	FullAutoSeconds       float64 `yaml:"fullAutoSeconds"`
	FullAutoCadenceMillis float64 `yaml:"fullAutoCadenceMillis"`
	FullAutoSpread        float64 `yaml:"fullAutoSpread"` // 全自动射击的散布范围（总宽度）
	ClockBonusSeconds     float64 `yaml:"clockBonusSeconds"`
	MagazineBullets       int     `yaml:"magazineBullets"`
	ShellBonus            int     `yaml:"shellBonus"`
	PartySeconds          float64 `yaml:"partySeconds"`
}

// BossTuning Boss 的环境行为
type BossTuning struct {
	RoarChance     float64 `yaml:"roarChance"` // 每帧吼叫概率
	RoarMinGapSecs float64 `yaml:"roarMinGapSeconds"`
}

// FeedbackTuning 反馈效果
type FeedbackTuning struct {
	TextLifetimeSecs  float64 `yaml:"textLifetimeSeconds"`
	TextRiseSpeed     float64 `yaml:"textRiseSpeed"`
	TraceLifetimeSecs float64 `yaml:"traceLifetimeSeconds"`
}

// LoadTuning 从 YAML 文件加载数值配置
func LoadTuning(path string) (*TuningConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("invalid tuning config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseTuning 在默认值之上解析 YAML，未写出的字段保留默认值
func ParseTuning(data []byte) (*TuningConfig, error) {
	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查数值的合法性
func (c *TuningConfig) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	}

	positives := []struct {
		name  string
		value float64
	}{
		{"combat.areaBlastRadius", c.Combat.AreaBlastRadius},
		{"combat.hazardDirectRadius", c.Combat.HazardDirectRadius},
		{"combat.detonationRadius", c.Combat.DetonationRadius},
		{"interaction.hazardFuseSeconds", c.Interaction.HazardFuseSecs},
		{"ledger.fullAutoSeconds", c.Ledger.FullAutoSeconds},
		{"ledger.fullAutoCadenceMillis", c.Ledger.FullAutoCadenceMillis},
		{"ledger.partySeconds", c.Ledger.PartySeconds},
		{"feedback.textLifetimeSeconds", c.Feedback.TextLifetimeSecs},
		{"feedback.traceLifetimeSeconds", c.Feedback.TraceLifetimeSecs},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%s must be > 0, got %v", p.name, p.value)
		}
	}

	if c.Combat.AreaBossDamage < 1 || c.Combat.DetonationBossDamage < 1 {
		return fmt.Errorf("boss damage values must be >= 1")
	}
	if c.Combat.BossHitBonusMin < 0 || c.Combat.BossHitBonusMax < c.Combat.BossHitBonusMin {
		return fmt.Errorf("combat.bossHitBonus range invalid: [%d, %d]", c.Combat.BossHitBonusMin, c.Combat.BossHitBonusMax)
	}
	if c.Interaction.PenaltyMin < 0 || c.Interaction.PenaltyMax < c.Interaction.PenaltyMin {
		return fmt.Errorf("interaction.penalty range invalid: [%d, %d]", c.Interaction.PenaltyMin, c.Interaction.PenaltyMax)
	}
	if c.Ledger.StartingBullets < 0 || c.Ledger.StartingShells < 0 {
		return fmt.Errorf("starting ammunition cannot be negative")
	}
	if c.Ledger.FullAutoSpread < 0 {
		return fmt.Errorf("ledger.fullAutoSpread cannot be negative, got %v", c.Ledger.FullAutoSpread)
	}
	if c.Boss.RoarChance < 0 || c.Boss.RoarChance > 1 {
		return fmt.Errorf("boss.roarChance must be in [0, 1], got %v", c.Boss.RoarChance)
	}
	return nil
}

// DefaultTuning 内置数值
func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Combat: CombatTuning{
			AreaBlastRadius:      120,
			HazardDirectRadius:   40,
			AreaBossDamage:       5,
			DetonationRadius:     360,
			DetonationBossDamage: 10,
			BossHitBonusMin:      1,
			BossHitBonusMax:      5,
		},
		Interaction: InteractionTuning{
			TrampleRangeX:   50,
			TrampleRangeY:   60,
			PredatorRangeX:  60,
			PredatorRangeY:  50,
			PenaltyMin:      1,
			PenaltyMax:      3,
			HazardFuseSecs:  15,
			GopherWaitSecs:  1.5,
			GopherRiseDepth: 40,
		},
		Ledger: LedgerTuning{
			StartingBullets:       50,
			StartingShells:        5,
			FullAutoSeconds:       5,
			FullAutoCadenceMillis: 80,
			FullAutoSpread:        40,
			ClockBonusSeconds:     10,
			MagazineBullets:       10,
			ShellBonus:            5,
			PartySeconds:          5,
		},
		Boss: BossTuning{
			RoarChance:     0.005,
			RoarMinGapSecs: 2,
		},
		Feedback: FeedbackTuning{
			TextLifetimeSecs:  1,
			TextRiseSpeed:     50,
			TraceLifetimeSecs: 0.2,
		},
	}
}

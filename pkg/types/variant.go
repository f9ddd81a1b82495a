// Package types 定义共享的基础类型
package types

import "fmt"

// Variant 定义实体的种类
type Variant int

const (
	// VariantUnknown 未知类型
	VariantUnknown Variant = iota

	// 计分目标（一击即毁）
	VariantBalloon       // 气球
	VariantGoldenBalloon // 金气球（每轮最多一个）
	VariantBird          // 飞鸟（负分）
	VariantDragon        // 飞龙（高额负分）

	// 地面小动物（负分，会被地面 Boss 踩扁）
	VariantMouse    // 老鼠
	VariantHedgehog // 刺猬
	VariantGopher   // 地鼠（升起 -> 等待 -> 缩回）

	// Boss（多段血量，击杀奖励）
	VariantGodzilla    // 哥斯拉（地面）
	VariantHydra       // 九头蛇（地面）
	VariantPterodactyl // 翼龙（空中，会吃掉飞鸟）

	// 危险物
	VariantBomb // 炸弹（倒计时爆炸）

	// 拾取物
	VariantGoldenClock  // 金钟：加时间
	VariantAmmoDrop     // 弹药箱：全自动模式
	VariantMagazineDrop // 弹匣：加子弹
	VariantShotgunDrop  // 霰弹：加霰弹
	VariantBirthdayCap  // 生日帽：派对模式

	// 反馈（不可交互）
	VariantFloatingText // 飘字
	VariantBulletTrace  // 弹道
)

var variantNames = map[Variant]string{
	VariantBalloon:       "balloon",
	VariantGoldenBalloon: "golden_balloon",
	VariantBird:          "bird",
	VariantDragon:        "dragon",
	VariantMouse:         "mouse",
	VariantHedgehog:      "hedgehog",
	VariantGopher:        "gopher",
	VariantGodzilla:      "godzilla",
	VariantHydra:         "hydra",
	VariantPterodactyl:   "pterodactyl",
	VariantBomb:          "bomb",
	VariantGoldenClock:   "golden_clock",
	VariantAmmoDrop:      "ammo_drop",
	VariantMagazineDrop:  "magazine_drop",
	VariantShotgunDrop:   "shotgun_drop",
	VariantBirthdayCap:   "birthday_cap",
	VariantFloatingText:  "floating_text",
	VariantBulletTrace:   "bullet_trace",
}

// String 返回配置文件中使用的名称
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return "unknown"
}

// ParseVariant 将配置文件中的名称转换为 Variant
func ParseVariant(name string) (Variant, error) {
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return VariantUnknown, fmt.Errorf("unknown variant %q", name)
}

// UnmarshalText 让 Variant 可以直接出现在 YAML 配置中
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText 与 UnmarshalText 对应
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// IsBossClass 多段血量、带击杀奖励的实体
func IsBossClass(v Variant) bool {
	switch v {
	case VariantGodzilla, VariantHydra, VariantPterodactyl:
		return true
	}
	return false
}

// IsGroundBoss 会踩扁地面小动物的 Boss
func IsGroundBoss(v Variant) bool {
	return v == VariantGodzilla || v == VariantHydra
}

// IsFlyingPredator 会吃掉空中小动物的 Boss
func IsFlyingPredator(v Variant) bool {
	return v == VariantPterodactyl
}

// IsGroundCreature 地面小动物
func IsGroundCreature(v Variant) bool {
	switch v {
	case VariantMouse, VariantHedgehog, VariantGopher:
		return true
	}
	return false
}

// IsAirNuisance 会被飞行捕食者吃掉的空中小动物
func IsAirNuisance(v Variant) bool {
	return v == VariantBird
}

// IsHazard 危险物
func IsHazard(v Variant) bool {
	return v == VariantBomb
}

// IsPickup 拾取物，命中后触发效果而非计分
func IsPickup(v Variant) bool {
	switch v {
	case VariantGoldenClock, VariantAmmoDrop, VariantMagazineDrop, VariantShotgunDrop, VariantBirthdayCap:
		return true
	}
	return false
}

// IsFeedback 纯视觉反馈，不参与命中检测
func IsFeedback(v Variant) bool {
	return v == VariantFloatingText || v == VariantBulletTrace
}

// IsPlainTarget 普通计分目标（包括负分的小动物）
func IsPlainTarget(v Variant) bool {
	return v != VariantUnknown && !IsBossClass(v) && !IsHazard(v) && !IsPickup(v) && !IsFeedback(v)
}

// BonusType 拾取物的效果类型
type BonusType int

const (
	BonusNone     BonusType = iota
	BonusTime               // 回合时间增加
	BonusFullAuto           // 全自动模式
	BonusBullets            // 主武器弹药
	BonusShells             // 副武器弹药
	BonusParty              // 派对模式
)

var bonusNames = [...]string{"none", "time", "full_auto", "bullets", "shells", "party"}

func (b BonusType) String() string {
	if b >= 0 && int(b) < len(bonusNames) {
		return bonusNames[b]
	}
	return "unknown"
}

// BonusFor 返回拾取物对应的效果
func BonusFor(v Variant) BonusType {
	switch v {
	case VariantGoldenClock:
		return BonusTime
	case VariantAmmoDrop:
		return BonusFullAuto
	case VariantMagazineDrop:
		return BonusBullets
	case VariantShotgunDrop:
		return BonusShells
	case VariantBirthdayCap:
		return BonusParty
	}
	return BonusNone
}

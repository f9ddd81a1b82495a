package components

import "github.com/decker502/skyshot/pkg/types"

// VariantComponent 标识实体的种类
// MotionSystem、CombatSystem 等系统根据 Variant 分派行为
type VariantComponent struct {
	Variant types.Variant
	Age     float64 // 已存在时间（秒）
}

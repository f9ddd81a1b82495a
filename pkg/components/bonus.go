package components

import "github.com/decker502/skyshot/pkg/types"

// BonusComponent 拾取物被命中时触发的效果
type BonusComponent struct {
	Type types.BonusType
}

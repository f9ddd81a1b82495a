package components

// HitboxComponent 定义实体的命中区域
//
// Width 与 Height 均大于 0 时使用矩形命中框，PositionComponent 为矩形底边中点；
// 否则使用以 PositionComponent 为圆心、Radius 为半径的圆形命中框。
type HitboxComponent struct {
	Radius float64 // 圆形半径（像素）
	Width  float64 // 矩形宽度（像素）
	Height float64 // 矩形高度（像素）
}

// IsRect 是否使用矩形命中框
func (h *HitboxComponent) IsRect() bool {
	return h.Width > 0 && h.Height > 0
}

package components

// PositionComponent 实体在画布上的位置（像素）
// 圆形命中框以此为圆心；矩形命中框以此为底边中点
type PositionComponent struct {
	X float64
	Y float64
}

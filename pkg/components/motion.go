package components

// MotionComponent 简化的匀速运动参数
//
// 每帧位移 = Speed * (DirX, DirY) * dt，
// 各种类特有的摆动由 MotionSystem 根据 Phase 叠加。
type MotionComponent struct {
	Speed float64 // 速度（像素/秒）
	DirX  float64 // 水平方向：-1 向左，1 向右
	DirY  float64 // 垂直方向：-1 向上，1 向下
	Phase float64 // 摆动相位
	Scale float64 // 体型缩放（飞鸟使用），0 表示 1
}

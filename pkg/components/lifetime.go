package components

// LifetimeComponent 反馈实体（飘字、弹道）的存活时间
type LifetimeComponent struct {
	Duration float64 // 总存活时间（秒）
	Elapsed  float64 // 已存活时间（秒）
	Opacity  float64 // 1 -> 0，由 LifetimeSystem 每帧更新
}

// NewLifetime 创建完全不透明的生命周期组件
func NewLifetime(seconds float64) *LifetimeComponent {
	return &LifetimeComponent{Duration: seconds, Opacity: 1}
}

// Remaining 剩余生命比例（1 -> 0）
func (l *LifetimeComponent) Remaining() float64 {
	if l.Duration <= 0 {
		return 0
	}
	return max(1-l.Elapsed/l.Duration, 0)
}

package components

// TimerComponent 通用倒计时组件
// 炸弹引信使用 Name = "fuse"
type TimerComponent struct {
	Name        string  // 计时器名称
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
}

// Remaining 返回剩余时间，不会小于 0
func (t *TimerComponent) Remaining() float64 {
	if rem := t.TargetTime - t.CurrentTime; rem > 0 {
		return rem
	}
	return 0
}

package components

// GopherState 地鼠的三段生命周期
type GopherState int

const (
	GopherRising  GopherState = iota // 从地面升起
	GopherWaiting                    // 停留等待
	GopherHiding                     // 缩回地下
)

// GopherComponent 地鼠状态
type GopherComponent struct {
	State     GopherState
	WaitTimer float64 // 剩余等待时间（秒）
	TargetY   float64 // 升起的最高位置
	FloorY    float64 // 地面位置，缩回到此处后删除
}

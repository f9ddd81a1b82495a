package components

// HealthComponent 存储 Boss 的血量与击杀奖励
type HealthComponent struct {
	CurrentHealth int  // 当前生命值，不低于 0
	MaxHealth     int  // 最大生命值
	KillPoints    int  // 击杀奖励分数
	SizeClass     int  // 体型等级 1~3
	Killed        bool // 击杀奖励是否已发放（保证只发放一次）
}

// RoarComponent Boss 的环境音效请求
// MotionSystem 设置 WantsToRoar，由引擎转换为通知后清除
type RoarComponent struct {
	WantsToRoar   bool
	SinceLastRoar float64 // 距上次吼叫的时间（秒）
}

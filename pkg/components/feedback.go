package components

// Tone 飘字的色调，由表现层映射为具体颜色
type Tone int

const (
	ToneNeutral Tone = iota // 白色提示
	ToneGain                // 得分
	TonePenalty             // 扣分
	ToneGold                // 拾取物
	ToneTime                // 加时
	ToneShells              // 霰弹
	ToneParty               // 派对
	ToneBlast               // 爆炸
)

// FloatingTextComponent 向上飘动的文字反馈
type FloatingTextComponent struct {
	Text string
	Tone Tone
}

// BulletTraceComponent 全自动模式下的弹道线
type BulletTraceComponent struct {
	FromX, FromY float64
	ToX, ToY     float64
}

package components

// ScoreComponent 击毁实体时获得的分数（可为负）
type ScoreComponent struct {
	Points int
}

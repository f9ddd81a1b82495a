package systems

import (
	"github.com/decker502/skyshot/pkg/components"
	"github.com/decker502/skyshot/pkg/ecs"
)

// LifetimeSystem 反馈实体的淡出与过期
//
// 每帧把剩余生命比例写入 Opacity，存活时间用完的实体标记删除。
// 已被其他系统标记删除的实体不再处理。
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{entityManager: em}
}

// Update dt 单位为秒，返回本帧过期的实体数
func (s *LifetimeSystem) Update(dt float64) int {
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		if s.entityManager.IsMarked(id) {
			continue
		}
		life, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		life.Elapsed += dt
		life.Opacity = life.Remaining()
		if life.Elapsed >= life.Duration {
			s.entityManager.DestroyEntity(id)
			expired++
		}
	}
	return expired
}

package systems

import (
	"time"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
	"go.uber.org/zap"
)

// LifetimeSystem 管理实体的寿命衰减
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	logger        *zap.Logger
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager, logger *zap.Logger) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		logger:        logger.Named("LifetimeSystem"),
	}
}

// Decay 所有实体扣减 step 的寿命，删除寿命耗尽的实体
// 整个过程在一次调用内完成，返回被删除的实体数
func (s *LifetimeSystem) Decay(step time.Duration) int {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.RemainingLifetime -= step

		// 寿命耗尽，标记实体待删除
		if lifetime.Expired() {
			s.entityManager.DestroyEntity(id)
		}
	}

	removed := s.entityManager.RemoveMarkedEntities()
	if removed > 0 {
		s.logger.Debug("实体过期", zap.Int("removed", removed))
	}
	return removed
}

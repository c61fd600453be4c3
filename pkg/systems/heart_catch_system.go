package systems

import (
	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
	"go.uber.org/zap"
)

// HeartCatchSystem 处理爱心被点中
type HeartCatchSystem struct {
	entityManager *ecs.EntityManager
	logger        *zap.Logger
}

// NewHeartCatchSystem 创建爱心点击系统
func NewHeartCatchSystem(em *ecs.EntityManager, logger *zap.Logger) *HeartCatchSystem {
	return &HeartCatchSystem{
		entityManager: em,
		logger:        logger.Named("HeartCatchSystem"),
	}
}

// Catch 移除被点中的爱心
// 实体不存在、不是爱心或不可点击时返回 false
func (s *HeartCatchSystem) Catch(id ecs.EntityID) bool {
	if !ecs.HasComponent[*components.HeartComponent](s.entityManager, id) {
		return false
	}
	clickable, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
	if !ok || !clickable.IsEnabled {
		return false
	}

	clickable.IsEnabled = false
	s.entityManager.DestroyEntity(id)
	s.entityManager.RemoveMarkedEntities()

	s.logger.Debug("接住爱心", zap.Uint64("id", uint64(id)))
	return true
}

// ClearAll 删除所有爱心，返回删除数量
func (s *HeartCatchSystem) ClearAll() int {
	for _, id := range ecs.GetEntitiesWith1[*components.HeartComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	return s.entityManager.RemoveMarkedEntities()
}

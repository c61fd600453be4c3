package systems

import (
	"time"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
)

// HeartAnimationSystem 每帧推进爱心的动画时间
// 寿命按固定间隔离散衰减，动画需要逐帧平滑，所以单独计时
type HeartAnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewHeartAnimationSystem 创建爱心动画系统
func NewHeartAnimationSystem(em *ecs.EntityManager) *HeartAnimationSystem {
	return &HeartAnimationSystem{entityManager: em}
}

// Update 推进所有爱心的 Age
func (s *HeartAnimationSystem) Update(deltaTime time.Duration) {
	for _, id := range ecs.GetEntitiesWith1[*components.HeartComponent](s.entityManager) {
		if heart, ok := ecs.GetComponent[*components.HeartComponent](s.entityManager, id); ok {
			heart.Age += deltaTime
		}
	}
}

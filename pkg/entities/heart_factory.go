package entities

import (
	"time"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
)

// NewHeartEntity 创建一个爱心实体
// 参数:
//   - manager: EntityManager 实例
//   - x, y: 位置（屏幕百分比）
//   - size: 爱心尺寸（逻辑像素）
//   - life: 初始寿命
//
// 返回: 创建的实体ID
func NewHeartEntity(manager *ecs.EntityManager, x, y, size float64, life time.Duration) ecs.EntityID {
	id := manager.CreateEntity()

	ecs.AddComponent(manager, id, &components.PositionComponent{X: x, Y: y})

	ecs.AddComponent(manager, id, &components.HeartComponent{Size: size})

	ecs.AddComponent(manager, id, &components.LifetimeComponent{
		MaxLifetime:       life,
		RemainingLifetime: life,
	})

	// 点击区域是爱心的外接圆
	ecs.AddComponent(manager, id, &components.ClickableComponent{
		Radius:    size / 2,
		IsEnabled: true,
	})

	return id
}

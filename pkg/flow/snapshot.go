package flow

import (
	"time"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/google/uuid"
)

// HeartState 爱心的只读快照
type HeartState struct {
	ID        ecs.EntityID
	X, Y      float64 // 屏幕百分比
	Size      float64
	Remaining time.Duration
	Age       time.Duration
}

// Snapshot 渲染所需的全部状态
// 渲染层只读快照，不持有控制器
type Snapshot struct {
	Stage       Stage
	Score       int
	Goal        int
	Hearts      []HeartState // 按 ID 升序
	ReasonIndex int
	NoIndex     int

	// StageElapsed 进入当前阶段后经过的时间
	StageElapsed time.Duration
	// ReasonElapsed 当前这条理由展示了多久（用于切换动画）
	ReasonElapsed time.Duration

	Session uuid.UUID
}

// GoalReached 是否已接满
func (s Snapshot) GoalReached() bool {
	return s.Score >= s.Goal
}

// Snapshot 生成当前状态快照
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Stage:         c.stage,
		Score:         c.score,
		Goal:          c.gameplay.Goal,
		Hearts:        c.Hearts(),
		ReasonIndex:   c.reasonIndex,
		NoIndex:       c.noIndex,
		StageElapsed:  c.stageElapsed,
		ReasonElapsed: c.reasonElapsed,
		Session:       c.session,
	}
}

// Hearts 返回当前所有爱心
func (c *Controller) Hearts() []HeartState {
	ids := ecs.GetEntitiesWith3[*components.HeartComponent, *components.PositionComponent, *components.LifetimeComponent](c.entityManager)
	hearts := make([]HeartState, 0, len(ids))
	for _, id := range ids {
		heart, _ := ecs.GetComponent[*components.HeartComponent](c.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](c.entityManager, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](c.entityManager, id)
		hearts = append(hearts, HeartState{
			ID:        id,
			X:         pos.X,
			Y:         pos.Y,
			Size:      heart.Size,
			Remaining: lifetime.RemainingLifetime,
			Age:       heart.Age,
		})
	}
	return hearts
}

package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/ecs"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// newTestLogger 返回输出到 t.Log 的日志器
func newTestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t)
}

// newTestSpawner 创建使用固定随机种子的生成系统
func newTestSpawner(t *testing.T, em *ecs.EntityManager, seed int64) *HeartSpawnSystem {
	t.Helper()
	return NewHeartSpawnSystem(em, rand.New(rand.NewSource(seed)), config.DefaultGameplay(), newTestLogger(t))
}

// heartCount 返回当前爱心数量
func heartCount(em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith1[*components.HeartComponent](em))
}

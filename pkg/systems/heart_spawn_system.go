package systems

import (
	"math/rand"
	"time"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/decker502/valentine/pkg/entities"
	"go.uber.org/zap"
)

// HeartSpawnSystem 管理爱心的生成
// 与阳光不同，生成节奏由调度器驱动，这里只负责"生成一个"
type HeartSpawnSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	cfg           config.Gameplay
	logger        *zap.Logger
}

// NewHeartSpawnSystem 创建爱心生成系统
// 参数:
//   - em: EntityManager 实例
//   - rng: 随机源（测试中可传入固定种子）
//   - cfg: 生成区间和数量上限
func NewHeartSpawnSystem(em *ecs.EntityManager, rng *rand.Rand, cfg config.Gameplay, logger *zap.Logger) *HeartSpawnSystem {
	return &HeartSpawnSystem{
		entityManager: em,
		rng:           rng,
		cfg:           cfg,
		logger:        logger.Named("HeartSpawnSystem"),
	}
}

// Count 返回当前爱心数量
func (s *HeartSpawnSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.HeartComponent](s.entityManager))
}

// Spawn 生成一个爱心
// 数量达到上限时不生成，返回 false
func (s *HeartSpawnSystem) Spawn() (ecs.EntityID, bool) {
	count := s.Count()
	if count >= s.cfg.SpawnCap {
		s.logger.Debug("跳过生成，数量已达上限", zap.Int("count", count))
		return 0, false
	}

	x := s.cfg.X.Sample(s.rng)
	y := s.cfg.Y.Sample(s.rng)
	size := s.cfg.Size.Sample(s.rng)
	life := time.Duration(s.cfg.LifeMs.Sample(s.rng) * float64(time.Millisecond))

	id := entities.NewHeartEntity(s.entityManager, x, y, size, life)
	s.logger.Debug("生成爱心",
		zap.Uint64("id", uint64(id)),
		zap.Float64("x", x),
		zap.Float64("y", y),
		zap.Float64("size", size),
		zap.Duration("life", life))
	return id, true
}

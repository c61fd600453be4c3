package systems

import (
	"testing"
	"time"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/ecs"
)

// TestHeartSpawnBounds 生成的爱心属性都在配置区间内
func TestHeartSpawnBounds(t *testing.T) {
	cfg := config.DefaultGameplay()

	for seed := int64(1); seed <= 50; seed++ {
		em := ecs.NewEntityManager()
		spawner := newTestSpawner(t, em, seed)

		id, ok := spawner.Spawn()
		if !ok {
			t.Fatalf("seed %d: Spawn() on empty field returned false", seed)
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		heart, _ := ecs.GetComponent[*components.HeartComponent](em, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)

		if !cfg.X.Contains(pos.X) {
			t.Errorf("seed %d: X=%v outside [8,92)", seed, pos.X)
		}
		if !cfg.Y.Contains(pos.Y) {
			t.Errorf("seed %d: Y=%v outside [10,82)", seed, pos.Y)
		}
		if !cfg.Size.Contains(heart.Size) {
			t.Errorf("seed %d: Size=%v outside [26,46)", seed, heart.Size)
		}
		if lifetime.MaxLifetime < 1700*time.Millisecond || lifetime.MaxLifetime >= 2900*time.Millisecond {
			t.Errorf("seed %d: life=%v outside [1.7s,2.9s)", seed, lifetime.MaxLifetime)
		}
	}
}

// TestHeartSpawnCap 数量达到 9 个后不再生成
func TestHeartSpawnCap(t *testing.T) {
	em := ecs.NewEntityManager()
	spawner := newTestSpawner(t, em, 1)

	for i := 0; i < 9; i++ {
		if _, ok := spawner.Spawn(); !ok {
			t.Fatalf("Spawn #%d should succeed", i+1)
		}
	}

	if _, ok := spawner.Spawn(); ok {
		t.Error("Spawn should refuse when 9 hearts are alive")
	}
	if spawner.Count() != 9 {
		t.Errorf("Expected 9 hearts, got %d", spawner.Count())
	}
}

// TestHeartSpawnUniqueIDs 爱心ID唯一
func TestHeartSpawnUniqueIDs(t *testing.T) {
	em := ecs.NewEntityManager()
	spawner := newTestSpawner(t, em, 3)
	catcher := NewHeartCatchSystem(em, newTestLogger(t))

	seen := make(map[ecs.EntityID]bool)
	for i := 0; i < 30; i++ {
		id, ok := spawner.Spawn()
		if !ok {
			t.Fatal("Spawn should succeed after catching")
		}
		if seen[id] {
			t.Fatalf("Duplicate heart id %d", id)
		}
		seen[id] = true
		catcher.Catch(id)
	}
}

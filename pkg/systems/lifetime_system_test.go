package systems

import (
	"testing"
	"time"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/decker502/valentine/pkg/entities"
)

func TestLifetimeDecay(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em, newTestLogger(t))

	id := entities.NewHeartEntity(em, 50, 50, 30, 1700*time.Millisecond)

	// 衰减一次
	if removed := system.Decay(120 * time.Millisecond); removed != 0 {
		t.Errorf("Expected nothing removed, got %d", removed)
	}

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.RemainingLifetime != 1580*time.Millisecond {
		t.Errorf("Expected RemainingLifetime=1580ms, got %v", lifetime.RemainingLifetime)
	}
}

// TestLifetimeExpiration 寿命 ≤ 0 时立即删除
func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em, newTestLogger(t))

	// 恰好在某次衰减时归零
	exact := entities.NewHeartEntity(em, 50, 50, 30, 240*time.Millisecond)
	longer := entities.NewHeartEntity(em, 20, 20, 30, 241*time.Millisecond)

	system.Decay(120 * time.Millisecond)
	if removed := system.Decay(120 * time.Millisecond); removed != 1 {
		t.Errorf("Expected 1 removed, got %d", removed)
	}
	if em.Exists(exact) {
		t.Error("Heart with remaining life 0 should be removed")
	}
	if !em.Exists(longer) {
		t.Error("Heart with remaining life 1ms should survive")
	}

	system.Decay(120 * time.Millisecond)
	if em.Exists(longer) {
		t.Error("Heart should be removed once life is negative")
	}
}

// TestLifetimeBound 每个爱心在寿命窗口内被删除
func TestLifetimeBound(t *testing.T) {
	em := ecs.NewEntityManager()
	spawner := newTestSpawner(t, em, 11)
	system := NewLifetimeSystem(em, newTestLogger(t))

	for i := 0; i < 9; i++ {
		spawner.Spawn()
	}

	// 最长寿命 2900ms，120ms 一次，最多 25 次
	for i := 0; i < 25; i++ {
		system.Decay(120 * time.Millisecond)
	}
	if n := heartCount(em); n != 0 {
		t.Errorf("Expected all hearts expired, %d left", n)
	}
}

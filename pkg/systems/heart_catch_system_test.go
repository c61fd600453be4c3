package systems

import (
	"testing"
	"time"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/decker502/valentine/pkg/entities"
)

func TestHeartCatch(t *testing.T) {
	em := ecs.NewEntityManager()
	catcher := NewHeartCatchSystem(em, newTestLogger(t))

	id := entities.NewHeartEntity(em, 50, 50, 30, 2*time.Second)

	if !catcher.Catch(id) {
		t.Fatal("Catch should succeed for a live heart")
	}
	if em.Exists(id) {
		t.Error("Caught heart should be removed immediately")
	}

	// 重复点击同一个爱心
	if catcher.Catch(id) {
		t.Error("Catching the same heart twice should fail")
	}
}

func TestHeartCatch_NotAHeart(t *testing.T) {
	em := ecs.NewEntityManager()
	catcher := NewHeartCatchSystem(em, newTestLogger(t))

	id := em.CreateEntity()
	em.AddComponent(id, &components.ClickableComponent{IsEnabled: true})

	if catcher.Catch(id) {
		t.Error("Catch should ignore non-heart entities")
	}
	if catcher.Catch(ecs.EntityID(999)) {
		t.Error("Catch should ignore unknown ids")
	}
}

func TestHeartCatch_Disabled(t *testing.T) {
	em := ecs.NewEntityManager()
	catcher := NewHeartCatchSystem(em, newTestLogger(t))

	id := entities.NewHeartEntity(em, 50, 50, 30, 2*time.Second)
	clickable, _ := ecs.GetComponent[*components.ClickableComponent](em, id)
	clickable.IsEnabled = false

	if catcher.Catch(id) {
		t.Error("Disabled heart should not be catchable")
	}
}

func TestHeartClearAll(t *testing.T) {
	em := ecs.NewEntityManager()
	spawner := newTestSpawner(t, em, 5)
	catcher := NewHeartCatchSystem(em, newTestLogger(t))

	for i := 0; i < 6; i++ {
		spawner.Spawn()
	}

	if removed := catcher.ClearAll(); removed != 6 {
		t.Errorf("Expected 6 removed, got %d", removed)
	}
	if heartCount(em) != 0 {
		t.Error("Field should be empty after ClearAll")
	}
}

func TestHeartAnimationAge(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewHeartAnimationSystem(em)

	id := entities.NewHeartEntity(em, 50, 50, 30, 2*time.Second)
	system.Update(16 * time.Millisecond)
	system.Update(16 * time.Millisecond)

	heart, _ := ecs.GetComponent[*components.HeartComponent](em, id)
	if heart.Age != 32*time.Millisecond {
		t.Errorf("Expected Age=32ms, got %v", heart.Age)
	}
}

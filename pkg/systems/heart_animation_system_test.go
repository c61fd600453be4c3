package systems

import (
	"testing"
	"time"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
)

func TestHeartAnimationSystem_Update(t *testing.T) {
	em := ecs.NewEntityManager()
	spawner := newTestSpawner(t, em, 1)
	first, _ := spawner.Spawn()

	anim := NewHeartAnimationSystem(em)
	anim.Update(100 * time.Millisecond)
	second, _ := spawner.Spawn()
	anim.Update(50 * time.Millisecond)

	tests := []struct {
		id   ecs.EntityID
		want time.Duration
	}{
		{first, 150 * time.Millisecond},
		{second, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		heart, ok := ecs.GetComponent[*components.HeartComponent](em, tt.id)
		if !ok {
			t.Fatalf("heart %d missing", tt.id)
		}
		if heart.Age != tt.want {
			t.Errorf("heart %d Age = %v, want %v", tt.id, heart.Age, tt.want)
		}
	}
}

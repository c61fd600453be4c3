package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const frame = time.Second / 60

func TestEvery_FiresOnInterval(t *testing.T) {
	s := New()
	count := 0
	s.Every("tick", 120*time.Millisecond, func() { count++ })

	s.Advance(100 * time.Millisecond)
	assert.Equal(t, 0, count, "must not fire before the first interval")

	s.Advance(20 * time.Millisecond)
	assert.Equal(t, 1, count)

	s.Advance(240 * time.Millisecond)
	assert.Equal(t, 3, count, "large delta catches up")
}

func TestEvery_FrameDriven(t *testing.T) {
	s := New()
	count := 0
	s.Every("spawn", 520*time.Millisecond, func() { count++ })

	for i := 0; i < 60; i++ {
		s.Advance(frame)
	}
	// 1s / 520ms
	assert.Equal(t, 1, count)
	assert.Equal(t, time.Duration(60)*frame, s.Now())
}

func TestAfter_FiresOnce(t *testing.T) {
	s := New()
	count := 0
	task := s.After("settle", 500*time.Millisecond, func() { count++ })

	s.Advance(499 * time.Millisecond)
	assert.Equal(t, 0, count)
	assert.True(t, task.Active())

	s.Advance(time.Millisecond)
	assert.Equal(t, 1, count)
	assert.False(t, task.Active())

	s.Advance(time.Second)
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, s.Pending())
}

func TestCancel_StopsTask(t *testing.T) {
	s := New()
	count := 0
	task := s.Every("tick", 10*time.Millisecond, func() { count++ })

	s.Advance(10 * time.Millisecond)
	task.Cancel()
	s.Advance(100 * time.Millisecond)

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, s.Pending())
}

func TestCancel_FromCallbackStopsCatchUp(t *testing.T) {
	s := New()
	count := 0
	var task *Task
	task = s.Every("tick", 10*time.Millisecond, func() {
		count++
		task.Cancel()
	})

	s.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, count)
}

func TestScope_CloseCancelsAll(t *testing.T) {
	s := New()
	scope := s.NewScope("game")
	spawned, decayed, settled := 0, 0, 0

	scope.Every("spawn", 520*time.Millisecond, func() { spawned++ })
	scope.Every("decay", 120*time.Millisecond, func() { decayed++ })
	scope.After("settle", 500*time.Millisecond, func() { settled++ })
	assert.Equal(t, 3, s.Pending())

	s.Advance(130 * time.Millisecond)
	assert.Equal(t, 1, decayed)

	scope.Close()
	assert.True(t, scope.Closed())
	assert.Equal(t, 0, s.Pending())

	s.Advance(10 * time.Second)
	assert.Equal(t, 0, spawned)
	assert.Equal(t, 1, decayed)
	assert.Equal(t, 0, settled)

	// 关闭后注册的任务不会执行
	late := scope.After("late", time.Millisecond, func() { settled++ })
	assert.False(t, late.Active())
	s.Advance(time.Second)
	assert.Equal(t, 0, settled)
}

func TestScope_ClosedFromSiblingCallback(t *testing.T) {
	s := New()
	scope := s.NewScope("game")
	decayed := 0

	// 同一帧里 settle 先到期并关闭作用域，decay 不应再执行
	scope.After("settle", 100*time.Millisecond, func() { scope.Close() })
	scope.Every("decay", 100*time.Millisecond, func() { decayed++ })

	s.Advance(100 * time.Millisecond)
	assert.Equal(t, 0, decayed)
}

func TestAdvance_TaskAddedInCallbackStartsNextFrame(t *testing.T) {
	s := New()
	inner := 0
	s.After("outer", 10*time.Millisecond, func() {
		s.After("inner", 10*time.Millisecond, func() { inner++ })
	})

	s.Advance(50 * time.Millisecond)
	assert.Equal(t, 0, inner)

	s.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, inner)
}

func TestCancelAll(t *testing.T) {
	s := New()
	count := 0
	s.Every("a", time.Millisecond, func() { count++ })
	s.After("b", time.Millisecond, func() { count++ })

	s.CancelAll()
	s.Advance(time.Second)

	assert.Equal(t, 0, count)
	assert.Equal(t, 0, s.Pending())
}

func TestAdd_InvalidInterval(t *testing.T) {
	s := New()
	assert.Panics(t, func() { s.Every("bad", 0, func() {}) })
}

func TestNilTaskCancel(t *testing.T) {
	var task *Task
	assert.NotPanics(t, func() { task.Cancel() })
	assert.False(t, task.Active())

	var scope *Scope
	assert.NotPanics(t, func() { scope.Close() })
	assert.True(t, scope.Closed())
}

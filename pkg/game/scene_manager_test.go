package game

import (
	"testing"
	"time"

	"github.com/decker502/valentine/pkg/flow"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap/zaptest"
)

const frame = time.Second / 60

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	stage        flow.Stage
	updateCalled bool
	drawCalled   bool
	closed       bool
	deltaTime    time.Duration
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime time.Duration) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// Close records that the scene was replaced.
func (m *MockScene) Close() {
	m.closed = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager(zaptest.NewLogger(t))
	if sm.CurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager(nil)
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Update(frame)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != frame {
		t.Errorf("Expected deltaTime %v, got %v", frame, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that Update and Draw handle nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager(nil)
	sm.Update(frame)
	sm.Draw(nil)
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager(nil)
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerSwitchClosesPrevious verifies the replaced scene is closed.
func TestSceneManagerSwitchClosesPrevious(t *testing.T) {
	sm := NewSceneManager(nil)
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.SwitchTo(scene1)
	if scene1.closed {
		t.Error("Switching to the same scene must not close it")
	}

	sm.SwitchTo(scene2)
	sm.Update(frame)

	if !scene1.closed {
		t.Error("Scene1 should be closed after switching away")
	}
	if scene1.updateCalled {
		t.Error("Scene1's Update should not be called after switching")
	}
	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
}

// TestSceneManagerLoadStage verifies the factory is used per stage.
func TestSceneManagerLoadStage(t *testing.T) {
	sm := NewSceneManager(zaptest.NewLogger(t))

	if sm.LoadStage(flow.StageGame) {
		t.Error("LoadStage without factory should fail")
	}

	var created []flow.Stage
	sm.SetSceneFactory(func(stage flow.Stage) Scene {
		created = append(created, stage)
		if stage == flow.StageFinal {
			return nil
		}
		return &MockScene{stage: stage}
	})

	if !sm.LoadStage(flow.StageGame) {
		t.Fatal("LoadStage(game) failed")
	}
	if got := sm.CurrentScene().(*MockScene).stage; got != flow.StageGame {
		t.Errorf("current scene stage: got %v, want game", got)
	}
	if sm.CurrentStage() != flow.StageGame {
		t.Errorf("CurrentStage(): got %v, want game", sm.CurrentStage())
	}

	// 工厂返回 nil 时保持原场景
	if sm.LoadStage(flow.StageFinal) {
		t.Error("LoadStage should fail when the factory returns nil")
	}
	if sm.CurrentStage() != flow.StageGame {
		t.Errorf("CurrentStage() after failed load: got %v, want game", sm.CurrentStage())
	}

	if len(created) != 2 {
		t.Errorf("factory calls: got %d, want 2", len(created))
	}
}

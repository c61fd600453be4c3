package game

import (
	"time"

	"github.com/decker502/valentine/pkg/flow"
	"github.com/decker502/valentine/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SceneFactory 场景工厂函数类型
// 为指定阶段创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(stage flow.Stage) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentStage flow.Stage
	sceneFactory SceneFactory
	logger       *zap.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadStage to set one.
func NewSceneManager(logger *zap.Logger) *SceneManager {
	return &SceneManager{
		logger: logging.OrNop(logger).Named("SceneManager"),
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is closed if it implements Closer.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if closer, ok := sm.currentScene.(Closer); ok && sm.currentScene != scene {
		closer.Close()
	}
	sm.currentScene = scene
}

// CurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) CurrentScene() Scene {
	return sm.currentScene
}

// CurrentStage 返回当前场景对应的阶段
func (sm *SceneManager) CurrentStage() flow.Stage {
	return sm.currentStage
}

// LoadStage 为指定阶段创建并切换场景
// 返回是否切换成功
func (sm *SceneManager) LoadStage(stage flow.Stage) bool {
	if sm.sceneFactory == nil {
		sm.logger.Error("SceneFactory 未设置", zap.Stringer("stage", stage))
		return false
	}

	scene := sm.sceneFactory(stage)
	if scene == nil {
		sm.logger.Error("无法创建场景", zap.Stringer("stage", stage))
		return false
	}

	sm.SwitchTo(scene)
	sm.currentStage = stage
	sm.logger.Debug("切换场景", zap.Stringer("stage", stage))
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime time.Duration) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

package scenes

import (
	"time"

	"github.com/decker502/valentine/pkg/flow"
	"github.com/decker502/valentine/pkg/logging"
	"github.com/decker502/valentine/pkg/utils"
	"github.com/decker502/valentine/pkg/view"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// PointerSource 指针与键盘输入
// 生产环境使用 EbitenInput，测试中替换为脚本输入
type PointerSource interface {
	// JustPressed 本帧是否按下，以及按下位置（逻辑坐标）
	JustPressed() (bool, float64, float64)
	// Position 当前指针位置，无法悬停时返回负数
	Position() (float64, float64)
	// ConfirmPressed Enter/空格
	ConfirmPressed() bool
}

// EbitenInput 读取 ebiten 的鼠标、触摸和键盘状态
type EbitenInput struct{}

// JustPressed implements PointerSource
func (EbitenInput) JustPressed() (bool, float64, float64) {
	pressed, x, y := utils.IsPointerJustPressed()
	return pressed, float64(x), float64(y)
}

// Position implements PointerSource
func (EbitenInput) Position() (float64, float64) {
	if utils.IsMobile() || utils.IsTouchDevice() {
		return -1, -1
	}
	x, y := utils.GetPointerPosition()
	return float64(x), float64(y)
}

// ConfirmPressed implements PointerSource
func (EbitenInput) ConfirmPressed() bool {
	return utils.IsConfirmJustPressed()
}

// StageScene 一个流程阶段对应的场景
//
// 每帧从控制器快照重建视图树；点击通过 Tree.HitTest 转成动作交给控制器。
// 场景本身不保存流程状态，阶段切换时由 SceneManager 换成新的 StageScene。
type StageScene struct {
	stage      flow.Stage
	controller *flow.Controller
	renderer   *Renderer
	layout     view.Layout
	input      PointerSource
	logger     *zap.Logger

	tree view.Tree
}

// NewStageScene 创建阶段场景
// renderer 为 nil 时只更新不绘制（无窗口测试）
func NewStageScene(stage flow.Stage, controller *flow.Controller, renderer *Renderer, layout view.Layout, input PointerSource, logger *zap.Logger) *StageScene {
	if input == nil {
		input = EbitenInput{}
	}
	s := &StageScene{
		stage:      stage,
		controller: controller,
		renderer:   renderer,
		layout:     layout,
		input:      input,
		logger:     logging.OrNop(logger).Named("StageScene").With(zap.Stringer("stage", stage)),
	}
	s.rebuild()
	return s
}

// Stage 返回场景对应的阶段
func (s *StageScene) Stage() flow.Stage {
	return s.stage
}

// Tree 返回最近一次构建的视图树
func (s *StageScene) Tree() view.Tree {
	return s.tree
}

// Update 处理输入并重建视图树
// 时间由 App 推进控制器，这里只消费输入
func (s *StageScene) Update(deltaTime time.Duration) {
	s.rebuild()

	if pressed, x, y := s.input.JustPressed(); pressed {
		if action, ok := s.tree.HitTest(x, y); ok {
			accepted := action.Apply(s.controller)
			s.logger.Debug("点击",
				zap.Float64("x", x),
				zap.Float64("y", y),
				zap.Bool("accepted", accepted))
		}
	} else if s.stage != flow.StageGame && s.input.ConfirmPressed() {
		if action, ok := s.tree.PrimaryAction(); ok {
			action.Apply(s.controller)
		}
	}

	// 动作可能已经修改了控制器，立即反映到本帧
	s.rebuild()
}

// Draw 绘制视图树
func (s *StageScene) Draw(screen *ebiten.Image) {
	if s.renderer == nil || screen == nil {
		return
	}
	x, y := s.input.Position()
	s.renderer.Draw(screen, s.tree, x, y)
}

func (s *StageScene) rebuild() {
	s.tree = view.Build(s.controller.Snapshot(), s.controller.Content(), s.layout)
}

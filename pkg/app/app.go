// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/decker502/valentine/internal/chime"
	"github.com/decker502/valentine/internal/watch"
	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/flow"
	"github.com/decker502/valentine/pkg/game"
	"github.com/decker502/valentine/pkg/logging"
	"github.com/decker502/valentine/pkg/scenes"
	"github.com/decker502/valentine/pkg/utils"
	"github.com/decker502/valentine/pkg/view"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// frameDelta 每个 tick 推进的时间（ebiten 固定 60 TPS）
const frameDelta = time.Second / 60

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用 Debug 日志
	Verbose bool
	// ContentPath 外部文案文件，为空使用内置文案
	ContentPath string
	// Watch 文案文件变化时自动重新加载（需要 ContentPath）
	Watch bool
	// Fullscreen 启动时全屏（同时写入设置）
	Fullscreen bool
	// Mute 禁用提示音
	Mute bool
	// Seed 爱心随机种子，0 表示使用当前时间
	Seed int64
	// Logger 为 nil 时按 Verbose 创建
	Logger *zap.Logger
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	controller   *flow.Controller
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	player       chime.Player
	watcher      *watch.ContentWatcher
	cancel       context.CancelFunc
	logger       *zap.Logger

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// Components 供窗口和终端前端共用的核心组件
type Components struct {
	Controller *flow.Controller
	Settings   *game.SettingsManager
	Player     chime.Player
	Watcher    *watch.ContentWatcher // 未开启 Watch 时为 nil
	Layout     view.Layout
	Logger     *zap.Logger
}

// Updates 返回文案热加载通道，未开启时返回 nil
func (c *Components) Updates() <-chan *config.Content {
	if c.Watcher == nil {
		return nil
	}
	return c.Watcher.Updates()
}

// Close 释放组件
func (c *Components) Close() {
	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	c.Controller.Close()
	c.Player.Close()
}

// NewComponents 加载文案和设置，创建控制器、提示音与文案监听器
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewComponents(ctx context.Context, cfg Config) (*Components, error) {
	logger := cfg.Logger
	if logger == nil {
		var err error
		if logger, err = logging.New(cfg.Verbose); err != nil {
			return nil, err
		}
	}

	content, err := config.ResolveContent(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("文案加载失败: %w", err)
	}
	logger.Info("文案已加载",
		zap.String("path", cfg.ContentPath),
		zap.Int("reasons", content.ReasonCount()),
		zap.Int("declineLabels", len(content.Question.DeclineLabels)))

	storage, err := game.OpenStorage()
	if err != nil {
		logger.Warn("设置存储不可用，使用内存设置", zap.Error(err))
		storage = nil
	}
	settings := game.NewSettingsManager(storage, logger)
	if cfg.Fullscreen {
		settings.SetFullscreen(true)
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	gameplay := config.DefaultGameplay()
	controller := flow.NewController(content, gameplay, rng, logger)

	var player chime.Player = chime.NopPlayer{}
	if !cfg.Mute {
		player = chime.Open(logger)
	}
	chime.Attach(controller, player, settings)

	c := &Components{
		Controller: controller,
		Settings:   settings,
		Player:     player,
		Layout:     view.DefaultLayout(gameplay),
		Logger:     logger,
	}

	if cfg.Watch && cfg.ContentPath != "" {
		w, err := watch.New(cfg.ContentPath, logger)
		if err == nil {
			err = w.Start(ctx)
		}
		if err != nil {
			logger.Warn("无法监听文案文件", zap.Error(err))
		} else {
			c.Watcher = w
		}
	}
	return c, nil
}

// NewApp 创建并初始化窗口应用
func NewApp(cfg Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	comps, err := NewComponents(ctx, cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	fonts, err := scenes.LoadFonts()
	if err != nil {
		cancel()
		comps.Close()
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}
	renderer := scenes.NewRenderer(fonts)

	a := &App{
		controller: comps.Controller,
		settings:   comps.Settings,
		player:     comps.Player,
		watcher:    comps.Watcher,
		cancel:     cancel,
		logger:     comps.Logger.Named("App"),
	}
	a.sceneManager = newSceneManager(comps, renderer, scenes.EbitenInput{})

	if comps.Settings.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// newSceneManager 创建场景管理器，并让它跟随控制器的阶段切换
func newSceneManager(comps *Components, renderer *scenes.Renderer, input scenes.PointerSource) *game.SceneManager {
	sm := game.NewSceneManager(comps.Logger)
	sm.SetSceneFactory(func(stage flow.Stage) game.Scene {
		return scenes.NewStageScene(stage, comps.Controller, renderer, comps.Layout, input, comps.Logger)
	})
	comps.Controller.OnStageChange(func(from, to flow.Stage) {
		sm.LoadStage(to)
	})
	sm.LoadStage(comps.Controller.CurrentStage())
	return sm
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.logger.Debug("延迟设置窗口大小",
				zap.Int("width", config.GameWindowWidth),
				zap.Int("height", config.GameWindowHeight))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if !utils.IsMobile() && utils.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// M 切换提示音
	if utils.IsKeyJustPressed(ebiten.KeyM) {
		enabled := a.settings.ToggleSound()
		a.saveSettings()
		a.logger.Info("提示音", zap.Bool("enabled", enabled))
	}

	a.drainContentUpdates()

	a.controller.Update(frameDelta)
	a.sceneManager.Update(frameDelta)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		a.logger.Debug("退出全屏，3 帧后重设窗口大小")
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		a.logger.Warn("保存设置失败", zap.Error(err))
	}
}

// drainContentUpdates 取走监听器发来的新文案
func (a *App) drainContentUpdates() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case content := <-a.watcher.Updates():
			a.controller.SetContent(content)
		default:
			return
		}
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 全屏时左右两边填充背景色
	screen.Fill(config.ColorBackground)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Controller 返回流程控制器
func (a *App) Controller() *flow.Controller {
	return a.controller
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *game.SceneManager {
	return a.sceneManager
}

// Close 保存设置并释放资源
func (a *App) Close() {
	a.saveSettings()
	a.cancel()
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.controller.Close()
	a.player.Close()
	a.logger.Info("已退出")
}

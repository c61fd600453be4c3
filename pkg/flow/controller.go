// Package flow 管理整个流程的阶段切换
//
// Controller 是唯一的状态容器：当前阶段、得分、爱心集合、理由游标、拒绝次数。
// 所有修改都通过 Transition / Catch / Update 在游戏循环的 goroutine 中完成。
//
// 流程：
//
//	welcome --StartGame--> game
//	game --(score>=goal, 延迟 500ms)--> reasons
//	reasons --NextReason(i<last)--> reasons(i+1)
//	reasons --NextReason(i==last) / FinishReasons--> question
//	question --AcceptProposal--> yes
//	question --DeclineProposal--> question (noIndex+1)
//	yes --ContinueToDetails--> final
//	final --Restart--> welcome
package flow

import (
	"math/rand"
	"time"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/decker502/valentine/pkg/logging"
	"github.com/decker502/valentine/pkg/schedule"
	"github.com/decker502/valentine/pkg/systems"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StageListener 阶段切换回调
type StageListener func(from, to Stage)

// CatchListener 接住爱心回调
type CatchListener func(score, goal int)

// Controller 流程控制器
type Controller struct {
	content  *config.Content
	gameplay config.Gameplay
	logger   *zap.Logger

	stage       Stage
	score       int
	reasonIndex int
	noIndex     int
	session     uuid.UUID

	stageElapsed  time.Duration
	reasonElapsed time.Duration

	entityManager *ecs.EntityManager
	spawnSystem   *systems.HeartSpawnSystem
	decaySystem   *systems.LifetimeSystem
	catchSystem   *systems.HeartCatchSystem
	animSystem    *systems.HeartAnimationSystem

	scheduler *schedule.Scheduler
	gameScope *schedule.Scope // 仅在 game 阶段存在
	settle    *schedule.Task  // 达成目标后的延迟切换

	stageListeners []StageListener
	catchListeners []CatchListener

	closed bool
}

// NewController 创建流程控制器，初始阶段为 welcome
// 参数：
//   - content: 文案（理由条数决定最后一条的索引）
//   - gameplay: 小游戏参数
//   - rng: 爱心属性的随机源，测试中传入固定种子
//   - logger: 可为 nil
func NewController(content *config.Content, gameplay config.Gameplay, rng *rand.Rand, logger *zap.Logger) *Controller {
	logger = logging.OrNop(logger)
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	em := ecs.NewEntityManager()
	c := &Controller{
		content:       content,
		gameplay:      gameplay,
		logger:        logger.Named("FlowController"),
		stage:         StageWelcome,
		entityManager: em,
		spawnSystem:   systems.NewHeartSpawnSystem(em, rng, gameplay, logger),
		decaySystem:   systems.NewLifetimeSystem(em, logger),
		catchSystem:   systems.NewHeartCatchSystem(em, logger),
		animSystem:    systems.NewHeartAnimationSystem(em),
		scheduler:     schedule.New(),
	}
	return c
}

// CurrentStage 返回当前阶段
func (c *Controller) CurrentStage() Stage {
	return c.stage
}

// Score 返回当前得分
func (c *Controller) Score() int {
	return c.score
}

// Goal 返回目标得分
func (c *Controller) Goal() int {
	return c.gameplay.Goal
}

// ReasonIndex 返回当前理由索引
func (c *Controller) ReasonIndex() int {
	return c.reasonIndex
}

// NoIndex 返回拒绝次数
func (c *Controller) NoIndex() int {
	return c.noIndex
}

// DeclineLabel 返回当前拒绝按钮的文字
func (c *Controller) DeclineLabel() string {
	return c.content.DeclineLabel(c.noIndex)
}

// Content 返回当前文案
func (c *Controller) Content() *config.Content {
	return c.content
}

// Session 返回当前这局小游戏的 ID（开始游戏前为 uuid.Nil）
func (c *Controller) Session() uuid.UUID {
	return c.session
}

// PendingTasks 返回调度器中仍有效的任务数（离开 game 阶段后应为 0）
func (c *Controller) PendingTasks() int {
	return c.scheduler.Pending()
}

// OnStageChange 注册阶段切换回调
func (c *Controller) OnStageChange(fn StageListener) {
	c.stageListeners = append(c.stageListeners, fn)
}

// OnCatch 注册接住爱心回调
func (c *Controller) OnCatch(fn CatchListener) {
	c.catchListeners = append(c.catchListeners, fn)
}

// Transition 处理事件
// 当前阶段不接受的事件被忽略，返回 false，状态不变
func (c *Controller) Transition(event Event) bool {
	if c.closed {
		return false
	}

	handled := false
	switch c.stage {
	case StageWelcome:
		if event == EventStartGame {
			c.enterGame()
			handled = true
		}

	case StageGame:
		if event == EventGameComplete && c.score >= c.gameplay.Goal {
			c.completeGame()
			handled = true
		}

	case StageReasons:
		last := c.content.LastReasonIndex()
		switch {
		case event == EventNextReason && c.reasonIndex < last:
			c.reasonIndex++
			c.reasonElapsed = 0
			c.logger.Debug("下一条理由", zap.Int("reasonIndex", c.reasonIndex))
			handled = true
		case event == EventNextReason && c.reasonIndex >= last,
			event == EventFinishReasons && c.reasonIndex >= last:
			c.setStage(StageQuestion)
			handled = true
		}

	case StageQuestion:
		switch event {
		case EventAcceptProposal:
			c.setStage(StageYes)
			handled = true
		case EventDeclineProposal:
			c.noIndex++
			c.logger.Info("拒绝", zap.Int("noIndex", c.noIndex), zap.String("label", c.DeclineLabel()))
			handled = true
		}

	case StageYes:
		if event == EventContinueToDetails {
			c.setStage(StageFinal)
			handled = true
		}

	case StageFinal:
		if event == EventRestart {
			c.Reset()
			handled = true
		}
	}

	if !handled {
		c.logger.Debug("忽略事件", zap.Stringer("stage", c.stage), zap.Stringer("event", event))
	}
	return handled
}

// Catch 接住一个爱心
// 仅在 game 阶段、得分未满且爱心存在时生效
func (c *Controller) Catch(id ecs.EntityID) bool {
	if c.closed || c.stage != StageGame || c.score >= c.gameplay.Goal {
		return false
	}
	if !c.catchSystem.Catch(id) {
		return false
	}

	c.score = min(c.gameplay.Goal, c.score+1)
	c.logger.Info("接住爱心",
		zap.Int("score", c.score),
		zap.Int("goal", c.gameplay.Goal),
		zap.Stringer("session", c.session))

	for _, fn := range c.catchListeners {
		fn(c.score, c.gameplay.Goal)
	}

	if c.score >= c.gameplay.Goal && !c.settle.Active() {
		c.settle = c.gameScope.After("settle", c.gameplay.SettleDelay, c.onSettle)
	}
	return true
}

// Update 推进 deltaTime：动画计时、生成/衰减/延迟任务
func (c *Controller) Update(deltaTime time.Duration) {
	if c.closed || deltaTime <= 0 {
		return
	}
	c.stageElapsed += deltaTime
	c.reasonElapsed += deltaTime
	c.animSystem.Update(deltaTime)
	c.scheduler.Advance(deltaTime)
}

// Reset 回到初始状态：welcome、得分 0、无爱心、游标归零
func (c *Controller) Reset() {
	from := c.stage
	c.stopGame()
	c.score = 0
	c.reasonIndex = 0
	c.noIndex = 0
	c.stage = StageWelcome
	c.stageElapsed = 0
	c.reasonElapsed = 0
	c.logger.Info("重置", zap.Stringer("from", from))
	if from != StageWelcome {
		c.notifyStage(from, StageWelcome)
	}
}

// SetContent 替换文案（热加载）
// 理由条数变少时把游标收回到最后一条
func (c *Controller) SetContent(content *config.Content) {
	if content == nil {
		return
	}
	c.content = content
	if last := content.LastReasonIndex(); c.reasonIndex > last {
		c.reasonIndex = last
	}
	c.logger.Info("文案已更新", zap.Int("reasons", content.ReasonCount()))
}

// Close 释放所有定时任务，之后控制器不再响应
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.stopGame()
	c.scheduler.CancelAll()
	c.closed = true
	c.logger.Debug("控制器已关闭")
}

// enterGame 进入小游戏：清空爱心、得分和游标，启动生成与衰减
func (c *Controller) enterGame() {
	c.stopGame()
	c.score = 0
	c.reasonIndex = 0
	c.noIndex = 0
	c.session = uuid.New()

	c.gameScope = c.scheduler.NewScope("game")
	c.gameScope.Every("spawn", c.gameplay.SpawnInterval, func() {
		c.spawnSystem.Spawn()
	})
	c.gameScope.Every("decay", c.gameplay.DecayInterval, func() {
		c.decaySystem.Decay(c.gameplay.DecayInterval)
	})

	c.setStage(StageGame)
}

// onSettle 延迟任务到期：再次确认阶段和得分后才切换
func (c *Controller) onSettle() {
	c.settle = nil
	if c.stage != StageGame || c.score < c.gameplay.Goal {
		c.logger.Debug("延迟切换已失效", zap.Stringer("stage", c.stage))
		return
	}
	c.Transition(EventGameComplete)
}

// completeGame 小游戏结束，进入理由页
func (c *Controller) completeGame() {
	c.reasonIndex = 0
	c.setStage(StageReasons)
}

// stopGame 取消小游戏的所有任务并清空爱心
func (c *Controller) stopGame() {
	if c.gameScope != nil {
		c.gameScope.Close()
		c.gameScope = nil
	}
	c.settle.Cancel()
	c.settle = nil
	c.catchSystem.ClearAll()
}

// setStage 切换阶段，离开 game 时停止所有相关任务
func (c *Controller) setStage(to Stage) {
	from := c.stage
	if from == StageGame && to != StageGame {
		c.stopGame()
	}
	c.stage = to
	c.stageElapsed = 0
	c.reasonElapsed = 0

	c.logger.Info("切换阶段",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("session", c.session))
	c.notifyStage(from, to)
}

func (c *Controller) notifyStage(from, to Stage) {
	for _, fn := range c.stageListeners {
		fn(from, to)
	}
}

// Package view 把控制器快照转换为与渲染后端无关的视图树
//
// Build 是纯函数：同样的快照、文案和布局总是得到同样的树。
// 树里的每个可点击节点都带有 Action，渲染后端（Ebitengine 窗口或终端）
// 只负责画出节点，并把指针位置交给 Tree.HitTest 解析成事件。
//
// 坐标系统：所有 Rect 都使用 800x600 的逻辑坐标。
package view

import (
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/decker502/valentine/pkg/flow"
)

// Kind 节点类型
type Kind int

const (
	KindBackdrop Kind = iota // 整屏背景
	KindCard                 // 白色圆角卡片
	KindPanel                // 卡片内的面板 / 计数器底板
	KindText                 // 文本
	KindButton               // 按钮
	KindHeart                // 可点击的爱心
	KindOverlay              // 半透明遮罩
	KindGlyph                // 装饰用的漂浮符号
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindBackdrop:
		return "backdrop"
	case KindCard:
		return "card"
	case KindPanel:
		return "panel"
	case KindText:
		return "text"
	case KindButton:
		return "button"
	case KindHeart:
		return "heart"
	case KindOverlay:
		return "overlay"
	case KindGlyph:
		return "glyph"
	default:
		return "unknown"
	}
}

// Style 文本和按钮的样式
type Style int

const (
	StyleNone Style = iota
	StyleTitle
	StyleHeading
	StyleBody
	StyleEmphasis
	StyleCounter
	StyleOverlay
	StylePrimary   // 主按钮（玫红底白字）
	StyleSecondary // 次按钮（浅粉底深色字）
)

// Align 文本对齐方式
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
)

// Glyph 装饰符号
type Glyph int

const (
	GlyphNone Glyph = iota
	GlyphHeart
	GlyphSparkle
)

// ActionKind 点击节点后产生的动作类型
type ActionKind int

const (
	ActionNone  ActionKind = iota
	ActionEvent            // 发送流程事件
	ActionCatch            // 接住爱心
)

// Action 点击动作
type Action struct {
	Kind  ActionKind
	Event flow.Event   // Kind == ActionEvent
	Heart ecs.EntityID // Kind == ActionCatch
}

// EventAction 构造流程事件动作
func EventAction(e flow.Event) Action {
	return Action{Kind: ActionEvent, Event: e}
}

// CatchAction 构造接住爱心动作
func CatchAction(id ecs.EntityID) Action {
	return Action{Kind: ActionCatch, Heart: id}
}

// Apply 把动作交给控制器，返回控制器是否接受
func (a Action) Apply(c *flow.Controller) bool {
	switch a.Kind {
	case ActionEvent:
		return c.Transition(a.Event)
	case ActionCatch:
		return c.Catch(a.Heart)
	default:
		return false
	}
}

// Rect 逻辑坐标下的矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内（左闭右开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Node 视图树中的一个节点
//
// Scale、Alpha、OffsetY 描述动画的当前帧：
// 渲染时以 Rect 中心缩放 Scale 倍，整体下移 OffsetY，透明度乘以 Alpha。
type Node struct {
	Kind  Kind
	Rect  Rect
	Text  string
	Style Style
	Align Align
	Glyph Glyph

	Scale   float64
	Alpha   float64
	OffsetY float64

	Action Action
	// Blocks 为 true 时会挡住下层节点的点击（遮罩、计数器底板）
	Blocks bool
}

// Bounds 返回应用动画后的实际矩形
func (n Node) Bounds() Rect {
	cx, cy := n.Rect.Center()
	w, h := n.Rect.W*n.Scale, n.Rect.H*n.Scale
	return Rect{X: cx - w/2, Y: cy - h/2 + n.OffsetY, W: w, H: h}
}

// Hit 点是否落在节点上
// 爱心按圆形检测，其余按矩形检测
func (n Node) Hit(x, y float64) bool {
	b := n.Bounds()
	if n.Kind == KindHeart {
		cx, cy := b.Center()
		r := b.W / 2
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r*r
	}
	return b.Contains(x, y)
}

// Tree 一帧的完整视图
// Nodes 按绘制顺序排列，后面的节点在上层
type Tree struct {
	Stage flow.Stage
	Nodes []Node
}

// HitTest 从最上层开始查找被点中的节点
// 点中带动作的节点返回其动作；先碰到 Blocks 节点则返回 false
func (t Tree) HitTest(x, y float64) (Action, bool) {
	for i := len(t.Nodes) - 1; i >= 0; i-- {
		n := t.Nodes[i]
		if n.Action.Kind == ActionNone && !n.Blocks {
			continue
		}
		if !n.Hit(x, y) {
			continue
		}
		if n.Action.Kind != ActionNone {
			return n.Action, true
		}
		return Action{}, false
	}
	return Action{}, false
}

// Buttons 按绘制顺序返回所有按钮
func (t Tree) Buttons() []Node {
	var buttons []Node
	for _, n := range t.Nodes {
		if n.Kind == KindButton {
			buttons = append(buttons, n)
		}
	}
	return buttons
}

// PrimaryAction 返回主按钮的动作（键盘 Enter 使用）
func (t Tree) PrimaryAction() (Action, bool) {
	for _, n := range t.Nodes {
		if n.Kind == KindButton && n.Style == StylePrimary {
			return n.Action, true
		}
	}
	return Action{}, false
}

// SecondaryAction 返回次按钮的动作
func (t Tree) SecondaryAction() (Action, bool) {
	for _, n := range t.Nodes {
		if n.Kind == KindButton && n.Style == StyleSecondary {
			return n.Action, true
		}
	}
	return Action{}, false
}

// Filter 返回指定类型的节点
func (t Tree) Filter(kind Kind) []Node {
	var nodes []Node
	for _, n := range t.Nodes {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Texts 按顺序返回所有文字（测试和终端调试使用）
func (t Tree) Texts() []string {
	var texts []string
	for _, n := range t.Nodes {
		if n.Text != "" {
			texts = append(texts, n.Text)
		}
	}
	return texts
}

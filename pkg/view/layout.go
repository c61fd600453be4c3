package view

import (
	"time"
	"unicode/utf8"

	"github.com/decker502/valentine/pkg/config"
)

// Layout 布局与动画参数
type Layout struct {
	Width, Height float64 // 逻辑画布

	CardWidth    float64
	CardPadding  float64
	LineHeight   float64
	ButtonHeight float64
	ButtonGap    float64

	CounterWidth  float64
	CounterHeight float64

	// 爱心动画
	PopIn      time.Duration // 出现：缩放 0.4→1、透明度 0→1
	FloatCycle time.Duration // 上下漂浮一个周期
	FloatRange float64       // 漂浮幅度（像素）

	// 理由卡片切换动画
	ReasonIn   time.Duration
	ReasonRise float64
}

// DefaultLayout 返回 800x600 画布的默认布局
func DefaultLayout(gameplay config.Gameplay) Layout {
	return Layout{
		Width:         config.GameWindowWidth,
		Height:        config.GameWindowHeight,
		CardWidth:     560,
		CardPadding:   32,
		LineHeight:    30,
		ButtonHeight:  46,
		ButtonGap:     16,
		CounterWidth:  260,
		CounterHeight: 40,
		PopIn:         gameplay.PopIn,
		FloatCycle:    gameplay.FloatCyc,
		FloatRange:    9,
		ReasonIn:      450 * time.Millisecond,
		ReasonRise:    16,
	}
}

// buttonWidth 按文字长度估算按钮宽度
func buttonWidth(label string) float64 {
	return max(140, float64(utf8.RuneCountInString(label))*11+56)
}

// cardRect 返回水平居中、垂直居中的卡片
func (l Layout) cardRect(height float64) Rect {
	return Rect{
		X: (l.Width - l.CardWidth) / 2,
		Y: (l.Height - height) / 2,
		W: l.CardWidth,
		H: height,
	}
}

// textRow 卡片内的一行文字
func (l Layout) textRow(card Rect, y, height float64) Rect {
	return Rect{X: card.X + l.CardPadding, Y: y, W: card.W - 2*l.CardPadding, H: height}
}

// centeredButton 在 cx 处居中放置按钮
func (l Layout) centeredButton(cx, y float64, label string) Rect {
	w := buttonWidth(label)
	return Rect{X: cx - w/2, Y: y, W: w, H: l.ButtonHeight}
}

// buttonRow 并排居中放置多个按钮
func (l Layout) buttonRow(cx, y float64, labels ...string) []Rect {
	total := 0.0
	for i, label := range labels {
		if i > 0 {
			total += l.ButtonGap
		}
		total += buttonWidth(label)
	}
	rects := make([]Rect, 0, len(labels))
	x := cx - total/2
	for _, label := range labels {
		w := buttonWidth(label)
		rects = append(rects, Rect{X: x, Y: y, W: w, H: l.ButtonHeight})
		x += w + l.ButtonGap
	}
	return rects
}

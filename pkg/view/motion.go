package view

import (
	"time"

	"github.com/decker502/valentine/pkg/utils"
)

// HeartPose 爱心当前帧的动画状态
type HeartPose struct {
	Scale   float64
	Alpha   float64
	OffsetY float64 // 负数表示向上
}

// heartPose 计算爱心在 age 时的姿态
// 出现阶段缓出放大并淡入，之后持续上下漂浮
func (l Layout) heartPose(age time.Duration) HeartPose {
	e := utils.EaseOutCubic(utils.Progress(age, l.PopIn))

	// 0 → 最高点 → 0，每半段各自缓入缓出
	phase := utils.Cycle(age, l.FloatCycle)
	var lift float64
	if phase < 0.5 {
		lift = utils.EaseInOutSine(phase * 2)
	} else {
		lift = utils.EaseInOutSine((1 - phase) * 2)
	}

	return HeartPose{
		Scale:   utils.Lerp(0.4, 1, e),
		Alpha:   e,
		OffsetY: -l.FloatRange * lift,
	}
}

// reasonPose 理由卡片滑入：淡入并从下方 ReasonRise 像素升到原位
func (l Layout) reasonPose(elapsed time.Duration) (alpha, offsetY float64) {
	e := utils.EaseOutCubic(utils.Progress(elapsed, l.ReasonIn))
	return e, l.ReasonRise * (1 - e)
}

// Particle 装饰粒子的当前帧
type Particle struct {
	Glyph Glyph
	X, Y  float64 // 中心点（逻辑坐标）
	Scale float64
	Alpha float64
}

const (
	celebrationCount = 20
	closingCount     = 10
	closingDuration  = 6 * time.Second
	closingOpacity   = 0.4
)

// celebration 庆祝页的上升粒子
// 第 i 个位于 (i*13 mod 100)% 处，延迟 (i mod 6)*0.4s，周期 3+(i mod 4) 秒，
// 心形和星光交替，缩放 0.8→1.2，前 15% 淡入后逐渐消失。
func (l Layout) celebration(elapsed time.Duration) []Particle {
	particles := make([]Particle, 0, celebrationCount)
	for i := 0; i < celebrationCount; i++ {
		delay := time.Duration(i%6) * 400 * time.Millisecond
		period := time.Duration(3+i%4) * time.Second
		local := elapsed - delay
		if local < 0 {
			continue
		}

		p := utils.Cycle(local, period)
		alpha := 0.0
		if p < 0.15 {
			alpha = p / 0.15
		} else {
			alpha = 1 - (p-0.15)/0.85
		}

		glyph := GlyphHeart
		if i%2 == 1 {
			glyph = GlyphSparkle
		}
		particles = append(particles, Particle{
			Glyph: glyph,
			X:     float64((i*13)%100) / 100 * l.Width,
			Y:     l.Height - p*1.2*l.Height,
			Scale: utils.Lerp(0.8, 1.2, p),
			Alpha: alpha,
		})
	}
	return particles
}

// closing 结束页的背景爱心
// 第 i 个位于 (i*10+5)% 处，延迟 i*0.5s，6 秒升起，20% 时达到 0.6 的峰值，
// 整层再乘以 0.4 的透明度。
func (l Layout) closing(elapsed time.Duration) []Particle {
	particles := make([]Particle, 0, closingCount)
	for i := 0; i < closingCount; i++ {
		local := elapsed - time.Duration(i)*500*time.Millisecond
		if local < 0 {
			continue
		}

		p := utils.Cycle(local, closingDuration)
		alpha := 0.0
		if p < 0.2 {
			alpha = 0.6 * p / 0.2
		} else {
			alpha = 0.6 * (1 - (p-0.2)/0.8)
		}

		particles = append(particles, Particle{
			Glyph: GlyphHeart,
			X:     float64(i*10+5) / 100 * l.Width,
			Y:     1.05*l.Height - p*1.2*l.Height,
			Scale: 1,
			Alpha: alpha * closingOpacity,
		})
	}
	return particles
}

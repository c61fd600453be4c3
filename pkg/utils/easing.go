package utils

import (
	"math"
	"time"
)

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（爱心弹出、理由卡片滑入）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutSine 正弦缓入缓出
// 特点：两端慢、中间快，用于往返的漂浮动画
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Progress 返回 elapsed 占 duration 的比例，限制在 [0, 1]
// duration <= 0 时视为已完成
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return Clamp01(float64(elapsed) / float64(duration))
}

// Cycle 返回 elapsed 在周期内的相位 ∈ [0, 1)
func Cycle(elapsed, period time.Duration) float64 {
	if period <= 0 || elapsed < 0 {
		return 0
	}
	return float64(elapsed%period) / float64(period)
}

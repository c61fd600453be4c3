package config

import (
	"math/rand"
	"time"
)

// Range 左闭右开的随机取值区间 [Min, Max)
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Sample 在区间内均匀取值
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains 检查 v 是否落在 [Min, Max) 内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

// Gameplay 小游戏参数
// 位置用屏幕百分比表示，尺寸为逻辑像素
type Gameplay struct {
	Goal int // 需要接住的爱心数

	SpawnInterval time.Duration // 生成间隔
	DecayInterval time.Duration // 衰减间隔，每次扣减同样的寿命
	SettleDelay   time.Duration // 达成目标后切换前的停顿

	// SpawnCap 同时存在的爱心上限
	// 生成时检查 count < SpawnCap，即数量 ≤ SpawnCap-1 时才会新增一个
	SpawnCap int

	X        Range // 横向位置 (%)
	Y        Range // 纵向位置 (%)
	Size     Range // 爱心尺寸
	LifeMs   Range // 初始寿命 (毫秒)
	PopIn    time.Duration
	FloatCyc time.Duration // 漂浮动画周期
}

// DefaultGameplay 返回默认的小游戏参数
func DefaultGameplay() Gameplay {
	return Gameplay{
		Goal:          5,
		SpawnInterval: 520 * time.Millisecond,
		DecayInterval: 120 * time.Millisecond,
		SettleDelay:   500 * time.Millisecond,
		SpawnCap:      9,
		X:             Range{Min: 8, Max: 92},
		Y:             Range{Min: 10, Max: 82},
		Size:          Range{Min: 26, Max: 46},
		LifeMs:        Range{Min: 1700, Max: 2900},
		PopIn:         1200 * time.Millisecond,
		FloatCyc:      2200 * time.Millisecond,
	}
}

// MaxLifetime 爱心的最长存活时间
// 衰减按 DecayInterval 离散进行，最坏情况下多存活一个间隔
func (g Gameplay) MaxLifetime() time.Duration {
	return time.Duration(g.LifeMs.Max)*time.Millisecond + g.DecayInterval
}

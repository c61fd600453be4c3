package components

import "time"

// LifetimeComponent 管理实体的剩余寿命
// 用于自动清理存在时间超过上限的实体(如爱心)
type LifetimeComponent struct {
	MaxLifetime       time.Duration // 初始寿命
	RemainingLifetime time.Duration // 剩余寿命，≤ 0 时实体被删除
}

// Expired 是否已过期
func (l *LifetimeComponent) Expired() bool {
	return l.RemainingLifetime <= 0
}

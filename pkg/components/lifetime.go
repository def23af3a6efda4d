package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理存在时间超过上限的实体（如方块破碎效果）
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期（秒）
	CurrentLifetime float64 // 当前已存在时间（秒）
	IsExpired       bool    // 是否已过期
}

// Remaining 返回剩余比例 [0, 1]
func (l *LifetimeComponent) Remaining() float64 {
	if l.MaxLifetime <= 0 {
		return 0
	}
	return max(1-l.CurrentLifetime/l.MaxLifetime, 0)
}

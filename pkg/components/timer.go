package components

// TimerComponent 通用计时器组件
// 用于处理需要时间延迟的行为（如挖掘动作、挖掘冷却、胜负通知延迟）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "dig"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
	Running     bool    // 是否正在计时
}

// Start 以目标时间重新开始计时
func (t *TimerComponent) Start(target float64) {
	t.TargetTime = target
	t.CurrentTime = 0
	t.IsReady = false
	t.Running = true
}

// Stop 停止计时并清除完成标记
func (t *TimerComponent) Stop() {
	t.CurrentTime = 0
	t.IsReady = false
	t.Running = false
}

// Advance 推进计时
//
// 返回：
//   - bool: 本次推进是否刚好完成（每次计时只返回一次 true）
func (t *TimerComponent) Advance(dt float64) bool {
	if !t.Running {
		return false
	}
	t.CurrentTime += dt
	if t.CurrentTime >= t.TargetTime {
		t.Running = false
		t.IsReady = true
		return true
	}
	return false
}

// Progress 返回完成比例 [0, 1]
func (t *TimerComponent) Progress() float64 {
	if t.IsReady || t.TargetTime <= 0 {
		return 1
	}
	return min(t.CurrentTime/t.TargetTime, 1)
}

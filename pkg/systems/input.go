package systems

import "math"

// moveDeadzone 小于该幅度的移动输入视为静止
const moveDeadzone = 0.1

// InputFrame 一帧的输入
// 宿主每帧构造一次；Jump 和 Dig 是边沿触发（按下的那一帧为 true）
type InputFrame struct {
	MoveX float64 // 平面移动向量 X（列方向）
	MoveY float64 // 平面移动向量 Y（行方向）
	Jump  bool
	Dig   bool
}

// Direction 返回归一化后的移动方向和幅度
// 幅度超过 1 时截断为 1；低于死区时返回 (0, 0, 0)
func (in InputFrame) Direction() (dx, dy, magnitude float64) {
	magnitude = math.Hypot(in.MoveX, in.MoveY)
	if magnitude <= moveDeadzone {
		return 0, 0, 0
	}
	dx, dy = in.MoveX/magnitude, in.MoveY/magnitude
	return dx, dy, min(magnitude, 1)
}

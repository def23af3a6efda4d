package components

import (
	"math"

	"github.com/decker502/brickdigger/pkg/types"
)

// PlayerComponent 玩家运动状态
//
// 平面坐标以格为单位，格子中心位于整数坐标；高度沿竖直轴。
type PlayerComponent struct {
	X, Y      float64 // 平面位置
	Height    float64 // 脚底高度
	VelocityY float64 // 竖直速度
	Grounded  bool    // 是否着地
	FacingX   float64 // 朝向（最近一次移动方向）
	FacingY   float64
	Digging   bool // 挖掘动作中（禁止移动）
	Character int  // 外观编号
}

// Cell 返回玩家所在格子（四舍五入）
func (p *PlayerComponent) Cell() types.CellCoord {
	return types.C(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// PlaceAt 将玩家放到格子中心，高度为 height，清空速度
func (p *PlayerComponent) PlaceAt(cell types.CellCoord, height float64) {
	p.X = float64(cell.X)
	p.Y = float64(cell.Y)
	p.Height = height
	p.VelocityY = 0
	p.Grounded = true
	p.Digging = false
}

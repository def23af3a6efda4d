// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置，优先检测触摸
func IsPointerJustPressed() (bool, int, int) {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// GetPointerState 获取指针的完整状态
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	x, y = ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y
}

// ============================================================================
// 拖拽状态管理器 - 用于移动端虚拟摇杆
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// TouchID 当前跟踪的触摸ID（-1 表示鼠标）
	TouchID ebiten.TouchID
	// IsTouchInput 是否为触摸输入
	IsTouchInput bool
}

// DragManager 拖拽管理器
// 跟踪在指定区域内开始的一次触摸/鼠标拖拽
type DragManager struct {
	info DragInfo
	zone func(x, y int) bool
}

// NewDragManager 创建拖拽管理器
//
// 参数：
//   - zone: 判断按下位置是否可以开始拖拽（为 nil 时全屏有效）
func NewDragManager(zone func(x, y int) bool) *DragManager {
	return &DragManager{
		info: DragInfo{State: DragStateNone, TouchID: -1},
		zone: zone,
	}
}

// Update 更新拖拽状态（每帧调用一次）
func (dm *DragManager) Update() {
	touchIDs := ebiten.AppendTouchIDs(nil)

	switch dm.info.State {
	case DragStateNone:
		dm.checkDragStart()
	case DragStateStarted:
		dm.info.State = DragStateDragging
		dm.updateCurrentPosition(touchIDs)
	case DragStateDragging:
		if dm.checkDragEnd(touchIDs) {
			dm.info.State = DragStateEnded
		} else {
			dm.updateCurrentPosition(touchIDs)
		}
	case DragStateEnded:
		// 结束状态只持续一帧
		dm.Reset()
	}
}

// checkDragStart 检测拖拽开始，优先检测触摸
func (dm *DragManager) checkDragStart() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		if dm.inZone(x, y) {
			dm.begin(x, y, id, true)
			return
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if dm.inZone(x, y) {
			dm.begin(x, y, -1, false)
		}
	}
}

func (dm *DragManager) inZone(x, y int) bool {
	return dm.zone == nil || dm.zone(x, y)
}

func (dm *DragManager) begin(x, y int, id ebiten.TouchID, touch bool) {
	dm.info = DragInfo{
		State:        DragStateStarted,
		StartX:       x,
		StartY:       y,
		CurrentX:     x,
		CurrentY:     y,
		TouchID:      id,
		IsTouchInput: touch,
	}
}

// checkDragEnd 检测拖拽结束
func (dm *DragManager) checkDragEnd(touchIDs []ebiten.TouchID) bool {
	if dm.info.IsTouchInput {
		for _, id := range touchIDs {
			if id == dm.info.TouchID {
				return false
			}
		}
		return true
	}
	return !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// updateCurrentPosition 更新当前位置
func (dm *DragManager) updateCurrentPosition(touchIDs []ebiten.TouchID) {
	if !dm.info.IsTouchInput {
		dm.info.CurrentX, dm.info.CurrentY = ebiten.CursorPosition()
		return
	}
	for _, id := range touchIDs {
		if id == dm.info.TouchID {
			dm.info.CurrentX, dm.info.CurrentY = ebiten.TouchPosition(id)
			return
		}
	}
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{State: DragStateNone, TouchID: -1}
}

// IsActive 是否处于按下状态（刚开始或拖拽中）
func (dm *DragManager) IsActive() bool {
	return dm.info.State == DragStateStarted || dm.info.State == DragStateDragging
}

// GetDragDistance 获取拖拽距离（从起点到当前位置）
func (dm *DragManager) GetDragDistance() (dx, dy int) {
	return dm.info.CurrentX - dm.info.StartX, dm.info.CurrentY - dm.info.StartY
}

// ============================================================================
// 虚拟摇杆
// ============================================================================

// Joystick 浮动虚拟摇杆：按下位置为中心，拖拽偏移换算为移动向量
type Joystick struct {
	Radius float64 // 偏移达到该半径时向量长度为 1
	drag   *DragManager
}

// NewJoystick 创建虚拟摇杆
//
// 参数：
//   - radius: 摇杆半径（像素）
//   - zone: 可以按下摇杆的屏幕区域
func NewJoystick(radius float64, zone func(x, y int) bool) *Joystick {
	return &Joystick{Radius: radius, drag: NewDragManager(zone)}
}

// Update 更新摇杆状态（每帧调用一次）
func (j *Joystick) Update() {
	j.drag.Update()
}

// Active 摇杆是否被按住
func (j *Joystick) Active() bool {
	return j.drag.IsActive()
}

// Center 返回摇杆中心（按下位置）
func (j *Joystick) Center() (x, y int) {
	return j.drag.info.StartX, j.drag.info.StartY
}

// Vector 返回当前移动向量，长度不超过 1；未按住时为 (0, 0)
func (j *Joystick) Vector() (x, y float64) {
	if !j.Active() {
		return 0, 0
	}
	dx, dy := j.drag.GetDragDistance()
	return JoystickVector(dx, dy, j.Radius)
}

// JoystickVector 将拖拽偏移换算为长度不超过 1 的向量
func JoystickVector(dx, dy int, radius float64) (x, y float64) {
	if radius <= 0 {
		return 0, 0
	}
	x, y = float64(dx)/radius, float64(dy)/radius
	if length := math.Hypot(x, y); length > 1 {
		x, y = x/length, y/length
	}
	return x, y
}

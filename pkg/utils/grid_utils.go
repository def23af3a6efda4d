package utils

import (
	"math"

	"github.com/decker502/brickdigger/pkg/types"
)

// BoardLayout 关卡网格在屏幕上的布局
// 网格 (0,0) 在左上角，x 向右、y 向下，每格为正方形
type BoardLayout struct {
	OriginX  float64 // 网格左上角屏幕X坐标
	OriginY  float64 // 网格左上角屏幕Y坐标
	CellSize float64 // 每格边长（像素）
	Columns  int     // 网格列数（关卡宽度）
	Rows     int     // 网格行数（关卡高度）
}

// FitBoard 计算把 columns x rows 的网格放进指定区域并居中的布局
//
// 参数：
//   - areaX, areaY: 可用区域左上角
//   - areaW, areaH: 可用区域宽高
//   - columns, rows: 网格尺寸
//
// 返回：
//   - BoardLayout: 布局（网格为空时 CellSize 为 0）
func FitBoard(areaX, areaY, areaW, areaH float64, columns, rows int) BoardLayout {
	layout := BoardLayout{Columns: columns, Rows: rows}
	if columns <= 0 || rows <= 0 || areaW <= 0 || areaH <= 0 {
		layout.OriginX, layout.OriginY = areaX, areaY
		return layout
	}

	layout.CellSize = math.Floor(min(areaW/float64(columns), areaH/float64(rows)))
	layout.OriginX = areaX + (areaW-layout.CellSize*float64(columns))/2
	layout.OriginY = areaY + (areaH-layout.CellSize*float64(rows))/2
	return layout
}

// ScreenToCell 将屏幕坐标转换为网格坐标
//
// 返回：
//   - types.CellCoord: 网格坐标
//   - bool: 是否在网格范围内
func (b BoardLayout) ScreenToCell(screenX, screenY int) (types.CellCoord, bool) {
	if b.CellSize <= 0 {
		return types.CellCoord{}, false
	}
	x := float64(screenX) - b.OriginX
	y := float64(screenY) - b.OriginY
	if x < 0 || y < 0 {
		return types.CellCoord{}, false
	}

	col := int(x / b.CellSize)
	row := int(y / b.CellSize)
	if col >= b.Columns || row >= b.Rows {
		return types.CellCoord{}, false
	}
	return types.C(col, row), true
}

// CellToScreen 将网格坐标转换为格子中心的屏幕坐标
func (b BoardLayout) CellToScreen(cell types.CellCoord) (centerX, centerY float64) {
	return b.PositionToScreen(float64(cell.X), float64(cell.Y))
}

// PositionToScreen 将连续网格位置（格子中心为整数）转换为屏幕坐标
// 用于绘制在格子之间移动的角色
func (b BoardLayout) PositionToScreen(x, y float64) (screenX, screenY float64) {
	screenX = b.OriginX + (x+0.5)*b.CellSize
	screenY = b.OriginY + (y+0.5)*b.CellSize
	return screenX, screenY
}

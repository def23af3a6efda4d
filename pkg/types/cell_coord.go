package types

import "fmt"

// CellCoord 网格坐标
// X 为列，Y 为行，均从 0 开始
type CellCoord struct {
	X int
	Y int
}

// C 是 CellCoord 的便捷构造函数
func C(x, y int) CellCoord {
	return CellCoord{X: x, Y: y}
}

// Add 返回两个坐标之和
func (c CellCoord) Add(other CellCoord) CellCoord {
	return CellCoord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Equal 判断两个坐标是否相同
func (c CellCoord) Equal(other CellCoord) bool {
	return c.X == other.X && c.Y == other.Y
}

// String 返回 "(x, y)" 形式的坐标字符串
func (c CellCoord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

package level

import "github.com/decker502/brickdigger/pkg/types"

// Rotate 将形状顺时针旋转 90 度并归一化
// 每个偏移 (x, y) 映射为 (y, -x)，随后平移使最小 x、最小 y 均为 0
//
// 返回新切片，不修改输入
func Rotate(shape []types.CellCoord) []types.CellCoord {
	rotated := make([]types.CellCoord, len(shape))
	for i, c := range shape {
		rotated[i] = types.C(c.Y, -c.X)
	}
	return Normalize(rotated)
}

// RotateN 连续旋转 n 次（n 取模 4）
func RotateN(shape []types.CellCoord, n int) []types.CellCoord {
	n = ((n % 4) + 4) % 4
	out := make([]types.CellCoord, len(shape))
	copy(out, shape)
	for i := 0; i < n; i++ {
		out = Rotate(out)
	}
	return out
}

// Normalize 平移形状使最小 x、最小 y 为 0（原地修改并返回）
func Normalize(shape []types.CellCoord) []types.CellCoord {
	if len(shape) == 0 {
		return shape
	}
	minX, minY := shape[0].X, shape[0].Y
	for _, c := range shape[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}
	for i := range shape {
		shape[i] = types.C(shape[i].X-minX, shape[i].Y-minY)
	}
	return shape
}

// Extent 返回形状的最大 x 与最大 y（空形状返回 0, 0）
func Extent(shape []types.CellCoord) (maxX, maxY int) {
	for _, c := range shape {
		maxX = max(maxX, c.X)
		maxY = max(maxY, c.Y)
	}
	return maxX, maxY
}

// SameCells 判断两个形状是否包含相同的格子集合（忽略顺序）
func SameCells(a, b []types.CellCoord) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[types.CellCoord]int, len(a))
	for _, c := range a {
		set[c]++
	}
	for _, c := range b {
		if set[c] == 0 {
			return false
		}
		set[c]--
	}
	return true
}

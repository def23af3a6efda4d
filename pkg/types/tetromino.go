package types

// TetrominoShape 定义七种标准四格骨牌形状
type TetrominoShape int

const (
	ShapeI TetrominoShape = iota
	ShapeO
	ShapeT
	ShapeL
	ShapeJ
	ShapeS
	ShapeZ
)

// AllShapes 所有标准形状，按 I, O, T, L, J, S, Z 顺序
var AllShapes = []TetrominoShape{ShapeI, ShapeO, ShapeT, ShapeL, ShapeJ, ShapeS, ShapeZ}

// tetrominoOffsets 每种形状的四个格子偏移（未旋转）
var tetrominoOffsets = map[TetrominoShape][]CellCoord{
	ShapeI: {C(0, 0), C(0, 1), C(0, 2), C(0, 3)},
	ShapeO: {C(0, 0), C(0, 1), C(1, 0), C(1, 1)},
	ShapeT: {C(1, 0), C(0, 1), C(1, 1), C(2, 1)},
	ShapeL: {C(0, 0), C(0, 1), C(0, 2), C(1, 2)},
	ShapeJ: {C(1, 0), C(1, 1), C(1, 2), C(0, 2)},
	ShapeS: {C(1, 0), C(2, 0), C(0, 1), C(1, 1)},
	ShapeZ: {C(0, 0), C(1, 0), C(1, 1), C(2, 1)},
}

var shapeNames = map[TetrominoShape]string{
	ShapeI: "I",
	ShapeO: "O",
	ShapeT: "T",
	ShapeL: "L",
	ShapeJ: "J",
	ShapeS: "S",
	ShapeZ: "Z",
}

// Offsets 返回形状偏移的副本（修改副本不影响形状表）
func (s TetrominoShape) Offsets() []CellCoord {
	src := tetrominoOffsets[s]
	offsets := make([]CellCoord, len(src))
	copy(offsets, src)
	return offsets
}

// String 返回形状字母，未知形状返回 "?"
func (s TetrominoShape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "?"
}

// ParseShape 将形状字母解析为 TetrominoShape
//
// 返回：
//   - TetrominoShape: 解析结果
//   - bool: 字母是否有效
func ParseShape(name string) (TetrominoShape, bool) {
	for shape, n := range shapeNames {
		if n == name {
			return shape, true
		}
	}
	return ShapeI, false
}

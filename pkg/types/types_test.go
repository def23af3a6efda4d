package types

import "testing"

// TestCellCoordAdd 测试坐标相加和相等判断
func TestCellCoordAdd(t *testing.T) {
	got := C(2, 3).Add(C(-1, 4))
	if !got.Equal(C(1, 7)) {
		t.Errorf("Add: got %v, want (1, 7)", got)
	}
	if got.String() != "(1, 7)" {
		t.Errorf("String: got %q, want %q", got.String(), "(1, 7)")
	}
}

// TestTetrominoOffsets 测试七种形状均为四格且偏移副本独立
func TestTetrominoOffsets(t *testing.T) {
	if len(AllShapes) != 7 {
		t.Fatalf("AllShapes: got %d shapes, want 7", len(AllShapes))
	}
	for _, shape := range AllShapes {
		offsets := shape.Offsets()
		if len(offsets) != 4 {
			t.Errorf("%s: got %d offsets, want 4", shape, len(offsets))
		}
		offsets[0] = C(99, 99)
		if shape.Offsets()[0].Equal(C(99, 99)) {
			t.Errorf("%s: Offsets() must return a copy", shape)
		}
	}
}

// TestParseShape 测试形状字母解析
func TestParseShape(t *testing.T) {
	for _, shape := range AllShapes {
		parsed, ok := ParseShape(shape.String())
		if !ok || parsed != shape {
			t.Errorf("ParseShape(%q): got (%v, %v), want (%v, true)", shape.String(), parsed, ok, shape)
		}
	}
	if _, ok := ParseShape("X"); ok {
		t.Error("ParseShape(\"X\"): expected failure")
	}
}

// TestBlockTypeString 测试方块类型字符串和顶层可站立判断
func TestBlockTypeString(t *testing.T) {
	if BlockCoin.String() != "coin" {
		t.Errorf("BlockCoin: got %q, want %q", BlockCoin.String(), "coin")
	}
	if BlockType(42).String() != "unknown" {
		t.Errorf("BlockType(42): got %q, want %q", BlockType(42).String(), "unknown")
	}
	if !BlockDirt.IsSolidTop() || !BlockCoin.IsSolidTop() || BlockAir.IsSolidTop() {
		t.Error("IsSolidTop: only dirt and coin blocks are solid tops")
	}
}

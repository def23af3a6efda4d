package types

// BlockType 定义格子中某一层的方块类型
type BlockType int

const (
	BlockAir       BlockType = iota // 空气（已挖开）
	BlockDirt                       // 泥土
	BlockBedrock                    // 基岩
	BlockCoin                       // 金币方块
	BlockLegoPiece                  // 积木碎片
)

// blockTypeStringMap 方块类型到配置字符串的映射
var blockTypeStringMap = map[BlockType]string{
	BlockAir:       "air",
	BlockDirt:      "dirt",
	BlockBedrock:   "bedrock",
	BlockCoin:      "coin",
	BlockLegoPiece: "lego_piece",
}

// String 返回方块类型的配置字符串，未知类型返回 "unknown"
func (b BlockType) String() string {
	if s, ok := blockTypeStringMap[b]; ok {
		return s
	}
	return "unknown"
}

// IsSolidTop 判断顶层方块是否可以站立在其上（泥土或金币方块）
func (b BlockType) IsSolidTop() bool {
	return b == BlockDirt || b == BlockCoin
}

// Layer 定义格子的层
// 底层为基岩或积木碎片，顶层为泥土、金币方块或空气
type Layer int

const (
	LayerBottom Layer = iota // 第 0 层
	LayerTop                 // 第 1 层
)

// String 返回层名称
func (l Layer) String() string {
	if l == LayerTop {
		return "top"
	}
	return "bottom"
}

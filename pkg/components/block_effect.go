package components

import "github.com/decker502/brickdigger/pkg/types"

// BlockEffectComponent 被挖掉的顶层方块的破碎效果
// 与 LifetimeComponent、ScaleComponent 一起使用
type BlockEffectComponent struct {
	Coord types.CellCoord
	Block types.BlockType
}

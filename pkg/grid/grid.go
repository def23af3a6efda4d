// Package grid 实现两层网格模拟
//
// 每个格子有底层（基岩或积木碎片）和顶层（泥土、金币方块或已挖开的空气）。
// 网格只通过关卡生成和 Dig 修改；顶层从泥土/金币单向变为空气，不会回填。
//
// 越界查询返回安全默认值（顶层空气、底层基岩），不报错。
package grid

import (
	"math/rand/v2"

	"github.com/kamstrup/intmap"
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/level"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/types"
)

// NoPiece 表示格子下没有积木碎片
const NoPiece = -1

// LevelPiece 每关唯一积木的ID
const LevelPiece = 0

// coinStream 金币随机流的 PCG 第二参数（与积木随机流区分）
const coinStream = 0xc0ffee

// GridCell 网格格子
type GridCell struct {
	Top     types.BlockType // 顶层：泥土、金币方块或空气
	Bottom  types.BlockType // 底层：基岩或积木碎片
	PieceID int             // 积木ID，非积木格为 NoPiece
}

// newCell 返回初始格子（泥土覆盖基岩）
func newCell() GridCell {
	return GridCell{Top: types.BlockDirt, Bottom: types.BlockBedrock, PieceID: NoPiece}
}

// DigResult 一次挖掘的结果
type DigResult struct {
	Coord      types.CellCoord
	Success    bool // 是否挖掉了顶层
	FoundCoin  bool // 顶层是金币方块
	FoundPiece bool // 底层是积木碎片
	PieceID    int  // 挖出的积木ID，未挖出为 NoPiece
}

// BlockView 渲染层消费的方块描述
type BlockView struct {
	Coord types.CellCoord
	Type  types.BlockType
	Layer types.Layer
}

// PieceStats 单个积木的格子数与已露出格子数
type PieceStats struct {
	Cells    int
	Revealed int
}

// Grid 网格模拟
// 由关卡会话独占，单线程访问
type Grid struct {
	width  int
	height int
	cells  []GridCell // 按 y*width+x 存储

	pieces *intmap.Map[int, PieceStats] // 积木ID -> 统计

	topHeight     float64 // 站在泥土/金币方块上的高度
	bedrockHeight float64 // 站在基岩上的高度

	log logrus.FieldLogger
}

// New 创建网格并按默认关卡尺寸初始化
//
// 参数：
//   - rules: 游戏规则（为 nil 时使用默认规则）
//   - log: 日志器（可为 nil）
func New(rules *config.GameRules, log logrus.FieldLogger) *Grid {
	if rules == nil {
		rules = config.DefaultGameRules()
	}
	g := &Grid{
		topHeight:     rules.Layers.LayerHeight + 0.5,
		bedrockHeight: 0.5,
		log:           logger.Component(log, "Grid"),
	}
	g.Initialize(rules.Level.BaseWidth, rules.Level.Height)
	return g
}

// Initialize 重新分配网格，所有格子为泥土覆盖基岩
// 宽或高小于 0 时按 0 处理
func (g *Grid) Initialize(width, height int) {
	g.width = max(width, 0)
	g.height = max(height, 0)
	g.cells = make([]GridCell, g.width*g.height)
	for i := range g.cells {
		g.cells[i] = newCell()
	}
	g.pieces = intmap.New[int, PieceStats](1)
}

// Width 返回网格宽度
func (g *Grid) Width() int { return g.width }

// Height 返回网格高度
func (g *Grid) Height() int { return g.height }

// GenerateLevel 按关卡配置生成网格
//
// 步骤：
//  1. 按配置尺寸重新分配，底层全部为基岩
//  2. 在 PiecePosition+offset 处放置积木碎片，越界偏移直接丢弃
//  3. 顶层全部填充泥土
//  4. 不放回抽样 CoinsCount 个格子设为金币方块，超过格子总数时全部设为金币
//
// 金币位置由 config.Seed 决定，同一配置生成同一网格。
func (g *Grid) GenerateLevel(cfg level.LevelConfig) {
	g.Initialize(cfg.Width, cfg.Height)

	g.placePiece(LevelPiece, cfg.PieceCells())
	placed := g.placeCoins(cfg.CoinsCount, cfg.Seed)

	g.log.WithFields(logrus.Fields{
		"level":  cfg.LevelNumber,
		"size":   [2]int{g.width, g.height},
		"pieces": g.CountPieces(),
		"coins":  placed,
	}).Debug("grid generated")
}

// placePiece 将积木格子写入底层
func (g *Grid) placePiece(id int, cells []types.CellCoord) {
	stats := PieceStats{}
	for _, c := range cells {
		if !g.IsValidCoord(c) {
			g.log.WithFields(logrus.Fields{"piece": id, "coord": c.String()}).Debug("piece cell out of bounds, dropped")
			continue
		}
		cell := g.cell(c)
		if cell.Bottom == types.BlockLegoPiece {
			continue
		}
		cell.Bottom = types.BlockLegoPiece
		cell.PieceID = id
		stats.Cells++
	}
	if stats.Cells > 0 {
		g.pieces.Put(id, stats)
	}
}

// placeCoins 随机选取不重复格子放置金币，返回实际放置数量
func (g *Grid) placeCoins(count int, seed uint64) int {
	available := make([]int, len(g.cells))
	for i := range available {
		available[i] = i
	}

	rng := rand.New(rand.NewPCG(seed, coinStream))
	placed := 0
	for placed < count && len(available) > 0 {
		idx := rng.IntN(len(available))
		g.cells[available[idx]].Top = types.BlockCoin

		last := len(available) - 1
		available[idx] = available[last]
		available = available[:last]
		placed++
	}
	return placed
}

// Dig 挖掉指定格子的顶层
//
// 越界或顶层已是空气时返回 Success=false，不修改任何状态。
// 成功时报告是否挖到金币、是否露出积木，并将顶层设为空气。
func (g *Grid) Dig(coord types.CellCoord) DigResult {
	result := DigResult{Coord: coord, PieceID: NoPiece}

	if !g.IsValidCoord(coord) {
		g.log.WithField("coord", coord.String()).Debug("dig rejected: out of bounds")
		return result
	}

	cell := g.cell(coord)
	if cell.Top == types.BlockAir {
		g.log.WithField("coord", coord.String()).Debug("dig rejected: already cleared")
		return result
	}

	result.Success = true
	result.FoundCoin = cell.Top == types.BlockCoin
	result.FoundPiece = cell.Bottom == types.BlockLegoPiece
	cell.Top = types.BlockAir

	if result.FoundPiece {
		result.PieceID = cell.PieceID
		if stats, ok := g.pieces.Get(cell.PieceID); ok {
			stats.Revealed++
			g.pieces.Put(cell.PieceID, stats)
		}
	}
	return result
}

// CountPieces 统计底层为积木碎片的格子数
func (g *Grid) CountPieces() int {
	count := 0
	for _, cell := range g.cells {
		if cell.Bottom == types.BlockLegoPiece {
			count++
		}
	}
	return count
}

// CountRevealedPieces 统计已露出（顶层为空气）的积木碎片格子数
func (g *Grid) CountRevealedPieces() int {
	count := 0
	for _, cell := range g.cells {
		if cell.Bottom == types.BlockLegoPiece && cell.Top == types.BlockAir {
			count++
		}
	}
	return count
}

// PieceProgress 返回指定积木的已露出格子数与总格子数
// 积木不存在时返回 0, 0
func (g *Grid) PieceProgress(id int) (revealed, total int) {
	stats, ok := g.pieces.Get(id)
	if !ok {
		return 0, 0
	}
	return stats.Revealed, stats.Cells
}

// PieceCount 返回网格中不同积木的数量
func (g *Grid) PieceCount() int {
	return g.pieces.Len()
}

// StandingHeight 返回站立高度：泥土/金币方块上为顶层高度，否则为基岩高度
// 越界坐标视为顶层空气，返回基岩高度
func (g *Grid) StandingHeight(coord types.CellCoord) float64 {
	if g.TopAt(coord).IsSolidTop() {
		return g.topHeight
	}
	return g.bedrockHeight
}

// TopHeight 返回站在顶层方块上的高度
func (g *Grid) TopHeight() float64 { return g.topHeight }

// BedrockHeight 返回站在基岩上的高度
func (g *Grid) BedrockHeight() float64 { return g.bedrockHeight }

// IsValidCoord 边界检查：0 <= x < width 且 0 <= y < height
func (g *Grid) IsValidCoord(coord types.CellCoord) bool {
	return coord.X >= 0 && coord.X < g.width && coord.Y >= 0 && coord.Y < g.height
}

// TopAt 返回顶层方块，越界返回空气
func (g *Grid) TopAt(coord types.CellCoord) types.BlockType {
	if !g.IsValidCoord(coord) {
		return types.BlockAir
	}
	return g.cell(coord).Top
}

// BottomAt 返回底层方块，越界返回基岩
func (g *Grid) BottomAt(coord types.CellCoord) types.BlockType {
	if !g.IsValidCoord(coord) {
		return types.BlockBedrock
	}
	return g.cell(coord).Bottom
}

// CellAt 返回格子副本
//
// 返回：
//   - GridCell: 格子数据，越界时为 {空气, 基岩, NoPiece}
//   - bool: 坐标是否有效
func (g *Grid) CellAt(coord types.CellCoord) (GridCell, bool) {
	if !g.IsValidCoord(coord) {
		return GridCell{Top: types.BlockAir, Bottom: types.BlockBedrock, PieceID: NoPiece}, false
	}
	return *g.cell(coord), true
}

// Blocks 返回当前所有可见方块，底层在前、顶层在后
// 顶层为空气的格子不产生顶层方块
func (g *Grid) Blocks() []BlockView {
	views := make([]BlockView, 0, len(g.cells)*2)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := types.C(x, y)
			views = append(views, BlockView{Coord: c, Type: g.cell(c).Bottom, Layer: types.LayerBottom})
		}
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := types.C(x, y)
			if top := g.cell(c).Top; top != types.BlockAir {
				views = append(views, BlockView{Coord: c, Type: top, Layer: types.LayerTop})
			}
		}
	}
	return views
}

// cell 返回格子指针，调用方保证坐标有效
func (g *Grid) cell(coord types.CellCoord) *GridCell {
	return &g.cells[coord.Y*g.width+coord.X]
}

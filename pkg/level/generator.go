// Package level 生成关卡配置
//
// 关卡配置是一个不可变的值：尺寸、斧头预算、金币数量，以及一个随机选取、
// 随机旋转的四格骨牌积木和它的放置原点。相同的 (关卡号, 种子) 总是生成
// 相同的配置。
package level

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/types"
)

// pieceStream 形状/旋转/位置随机流的 PCG 第二参数
const pieceStream = 0x9e3779b97f4a7c15

// LevelConfig 关卡配置
// 由 Generator 每关生成一次，之后不再修改
type LevelConfig struct {
	LevelNumber   int                  // 关卡号，从 1 开始
	Width         int                  // 网格宽度
	Height        int                  // 网格高度
	CoinsCount    int                  // 金币方块数量
	AxesStart     int                  // 初始斧头数
	Shape         types.TetrominoShape // 积木形状
	Rotations     int                  // 旋转次数 (0-3)
	PieceShape    []types.CellCoord    // 旋转并归一化后的偏移
	PiecePosition types.CellCoord      // 放置原点
	Seed          uint64               // 生成种子，网格生成金币时复用
}

// PieceCells 返回积木在网格中的绝对坐标（可能越界，由网格负责裁剪）
func (c LevelConfig) PieceCells() []types.CellCoord {
	cells := make([]types.CellCoord, len(c.PieceShape))
	for i, offset := range c.PieceShape {
		cells[i] = c.PiecePosition.Add(offset)
	}
	return cells
}

// Generator 关卡生成器
type Generator struct {
	rules config.LevelRules
	rng   *rand.Rand
	log   logrus.FieldLogger
}

// NewGenerator 创建关卡生成器
//
// 参数：
//   - rules: 游戏规则（为 nil 时使用默认规则）
//   - seed: 种子来源，Generate 从中抽取每关种子
//   - log: 日志器（可为 nil）
//
// 返回：
//   - *Generator: 生成器实例
func NewGenerator(rules *config.GameRules, seed uint64, log logrus.FieldLogger) *Generator {
	if rules == nil {
		rules = config.DefaultGameRules()
	}
	return &Generator{
		rules: rules.Level,
		rng:   rand.New(rand.NewPCG(seed, seed^pieceStream)),
		log:   logger.Component(log, "LevelGenerator"),
	}
}

// NextSeed 从生成器的随机源抽取一个新的关卡种子
func (g *Generator) NextSeed() uint64 {
	return g.rng.Uint64()
}

// Generate 使用新种子生成关卡配置
func (g *Generator) Generate(levelNumber int) LevelConfig {
	return g.GenerateSeeded(levelNumber, g.NextSeed())
}

// GenerateSeeded 使用指定种子生成关卡配置
//
// 相同的 levelNumber 与 seed 总是得到相同的结果。
// levelNumber 小于 1 时按 1 处理。
func (g *Generator) GenerateSeeded(levelNumber int, seed uint64) LevelConfig {
	if levelNumber < 1 {
		levelNumber = 1
	}
	rng := rand.New(rand.NewPCG(seed, pieceStream))

	width := g.Width(levelNumber)
	height := g.rules.Height

	shape := types.AllShapes[rng.IntN(len(types.AllShapes))]
	rotations := rng.IntN(4)
	offsets := RotateN(shape.Offsets(), rotations)

	// 原点范围 [1, max(2, size-extent-1))，保证高侧留出 1 格边距
	maxX, maxY := Extent(offsets)
	upperX := max(2, width-maxX-1)
	upperY := max(2, height-maxY-1)
	position := types.C(1+rng.IntN(upperX-1), 1+rng.IntN(upperY-1))

	cfg := LevelConfig{
		LevelNumber:   levelNumber,
		Width:         width,
		Height:        height,
		CoinsCount:    g.Coins(levelNumber),
		AxesStart:     g.Axes(width, height),
		Shape:         shape,
		Rotations:     rotations,
		PieceShape:    offsets,
		PiecePosition: position,
		Seed:          seed,
	}

	g.log.WithFields(logrus.Fields{
		"level":    levelNumber,
		"size":     [2]int{width, height},
		"shape":    shape.String(),
		"rotation": rotations,
		"position": position.String(),
		"coins":    cfg.CoinsCount,
		"axes":     cfg.AxesStart,
	}).Debug("level generated")

	return cfg
}

// Width 返回关卡宽度：第 1 关为基础宽度，之后每 WidenEvery 关 +1
func (g *Generator) Width(levelNumber int) int {
	return g.rules.BaseWidth + (max(levelNumber, 1)-1)/g.rules.WidenEvery
}

// Axes 返回斧头预算：max(MinAxes, 格子数/AxeCellDivisor)
func (g *Generator) Axes(width, height int) int {
	return max(g.rules.MinAxes, width*height/g.rules.AxeCellDivisor)
}

// Coins 返回金币数量：BaseCoins + levelNumber/CoinsPerLevels
func (g *Generator) Coins(levelNumber int) int {
	return g.rules.BaseCoins + levelNumber/g.rules.CoinsPerLevels
}

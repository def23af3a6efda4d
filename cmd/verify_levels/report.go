package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/grid"
	"github.com/decker502/brickdigger/pkg/level"
	"github.com/decker502/brickdigger/pkg/types"
)

// pieceCells 四格骨牌的格子数
const pieceCells = 4

// levelReport 单个关卡的生成结果与检查问题
type levelReport struct {
	Config   level.LevelConfig
	Coins    int // 网格中实际的金币方块数
	Pieces   int // 网格中实际的积木格子数
	Problems []string
}

// verifyLevel 生成关卡并检查配置与网格是否一致
func verifyLevel(rules *config.GameRules, gen *level.Generator, g *grid.Grid, n int) levelReport {
	cfg := gen.Generate(n)
	g.GenerateLevel(cfg)

	r := levelReport{Config: cfg, Pieces: g.CountPieces()}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.TopAt(types.C(x, y)) == types.BlockCoin {
				r.Coins++
			}
		}
	}

	if cfg.Width != g.Width() || cfg.Height != g.Height() {
		r.problem("grid size %dx%d does not match config %dx%d", g.Width(), g.Height(), cfg.Width, cfg.Height)
	}
	if r.Pieces != pieceCells {
		r.problem("piece has %d cells in grid, want %d", r.Pieces, pieceCells)
	}
	if n := g.PieceCount(); n != 1 {
		r.problem("grid tracks %d pieces, want 1", n)
	}
	if _, tracked := g.PieceProgress(grid.LevelPiece); tracked != r.Pieces {
		r.problem("piece stats record %d cells, scan found %d", tracked, r.Pieces)
	}
	if want := min(cfg.CoinsCount, cfg.Width*cfg.Height); r.Coins != want {
		r.problem("grid has %d coins, want %d", r.Coins, want)
	}
	if cfg.AxesStart < rules.Level.MinAxes {
		r.problem("axes %d below minimum %d", cfg.AxesStart, rules.Level.MinAxes)
	}
	if cfg.AxesStart < r.Pieces {
		r.problem("axes %d cannot uncover %d piece cells", cfg.AxesStart, r.Pieces)
	}
	for _, c := range cfg.PieceCells() {
		if c.X < 1 || c.Y < 1 || c.X > cfg.Width-2 || c.Y > cfg.Height-2 {
			r.problem("piece cell %s touches the border", c)
		}
	}
	return r
}

func (r *levelReport) problem(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// write 输出关卡摘要；showGrid 时附带网格图
// 图例：# 泥土  $ 金币  P 泥土下的积木  . 基岩
func (r levelReport) write(w io.Writer, g *grid.Grid, showGrid bool) {
	cfg := r.Config
	status := "OK"
	if len(r.Problems) > 0 {
		status = "FAIL"
	}
	fmt.Fprintf(w, "level %3d  %s  %dx%d  shape=%s rot=%d at %s  coins=%d/%d  axes=%d  seed=%d\n",
		cfg.LevelNumber, status, cfg.Width, cfg.Height, cfg.Shape, cfg.Rotations, cfg.PiecePosition,
		r.Coins, cfg.CoinsCount, cfg.AxesStart, cfg.Seed)
	for _, p := range r.Problems {
		fmt.Fprintf(w, "    - %s\n", p)
	}
	if showGrid {
		fmt.Fprint(w, renderGrid(g))
	}
}

// renderGrid 以 ASCII 输出网格
func renderGrid(g *grid.Grid) string {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		sb.WriteString("    ")
		for x := 0; x < g.Width(); x++ {
			c := types.C(x, y)
			switch {
			case g.TopAt(c) == types.BlockCoin:
				sb.WriteByte('$')
			case g.BottomAt(c) == types.BlockLegoPiece:
				sb.WriteByte('P')
			case g.TopAt(c) == types.BlockDirt:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/brickdigger/pkg/grid"
	"github.com/decker502/brickdigger/pkg/scenes"
	"github.com/decker502/brickdigger/pkg/types"
)

// 网格在终端中的位置，每格占两列
const (
	boardLeft = 2
	boardTop  = 2
	cellWidth = 2
)

var (
	styleDefault = tcell.StyleDefault
	styleDirt    = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown).Background(tcell.ColorBlack)
	styleCoin    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorSaddleBrown)
	styleBedrock = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	stylePiece   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleWon     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleLost    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
	stylePaused  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// cellGlyph 返回格子的显示字符和样式（顶层优先）
func cellGlyph(cell grid.GridCell) (string, tcell.Style) {
	switch cell.Top {
	case types.BlockDirt:
		return "▓▓", styleDirt
	case types.BlockCoin:
		return "$$", styleCoin
	}
	if cell.Bottom == types.BlockLegoPiece {
		return "██", stylePiece
	}
	return "··", styleBedrock
}

// draw 绘制整帧
func (s *session) draw(screen tcell.Screen, now time.Time) {
	screen.Clear()
	gs := s.state
	g := gs.Grid()

	hud := fmt.Sprintf("LEVEL %d  AXES %d  COINS %d (+%d)  PIECE %d/%d",
		gs.CurrentLevel(), gs.AxesRemaining(), gs.Coins(), gs.LevelCoins(),
		gs.RevealedPieces(), gs.TotalPieces())
	drawText(screen, boardLeft, 0, styleHUD, hud)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cell, _ := g.CellAt(types.C(x, y))
			glyph, style := cellGlyph(cell)
			drawText(screen, boardLeft+x*cellWidth, boardTop+y, style, glyph)
		}
	}

	if p := s.world.Player(); p != nil {
		c := p.Cell()
		glyph := "@@"
		switch {
		case p.Digging:
			glyph = "<>"
		case !p.Grounded:
			glyph = "^^"
		}
		drawText(screen, boardLeft+c.X*cellWidth, boardTop+c.Y, stylePlayer, glyph)
	}

	row := boardTop + g.Height() + 1
	switch {
	case s.paused:
		drawText(screen, boardLeft, row, stylePaused, " PAUSED  [p] resume  [q] quit ")
	case s.outcome.Panel() == scenes.PanelWon:
		drawText(screen, boardLeft, row, styleWon, fmt.Sprintf(" LEVEL %d CLEAR  [n] next level ", s.outcome.Level()))
	case s.outcome.Panel() == scenes.PanelLost:
		drawText(screen, boardLeft, row, styleLost, " OUT OF AXES  [r] retry  [b] buy axes ")
	}
	if msg := s.Message(now); msg != "" {
		drawText(screen, boardLeft, row+1, styleHUD, msg)
	}
	drawText(screen, boardLeft, row+3, styleDefault, "move: wasd/arrows  jump: space  dig: e/enter")
	drawText(screen, boardLeft, row+4, styleDefault, "buy axes: b  sound: m  pause: p  quit: q/esc")

	screen.Show()
}

// drawText 从 (x, y) 开始逐个字符写入
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

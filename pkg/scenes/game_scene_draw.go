package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/brickdigger/pkg/types"
	"github.com/decker502/brickdigger/pkg/utils"
)

var (
	gameBackground = color.RGBA{R: 30, G: 36, B: 48, A: 255}
	hudBackground  = color.RGBA{R: 20, G: 20, B: 28, A: 255}
	panelOverlay   = color.RGBA{A: 170}
	shadowColor    = color.RGBA{A: 90}
	digBarBack     = color.RGBA{R: 40, G: 40, B: 40, A: 200}
	digBarFill     = color.RGBA{R: 250, G: 220, B: 80, A: 255}
	joystickRing   = color.RGBA{R: 255, G: 255, B: 255, A: 80}
	joystickKnob   = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	hoverOutline   = color.RGBA{R: 255, G: 255, B: 255, A: 120}
)

// blockColors 方块颜色
var blockColors = map[types.BlockType]color.RGBA{
	types.BlockDirt:      {R: 139, G: 94, B: 60, A: 255},
	types.BlockCoin:      {R: 139, G: 94, B: 60, A: 255},
	types.BlockBedrock:   {R: 70, G: 70, B: 82, A: 255},
	types.BlockLegoPiece: {R: 220, G: 60, B: 50, A: 255},
}

var coinColor = color.RGBA{R: 250, G: 205, B: 50, A: 255}

// boardLayout 返回当前关卡网格在屏幕上的布局
func (g *GameScene) boardLayout() utils.BoardLayout {
	gr := g.services.State.Grid()
	areaH := float64(ScreenHeight - hudHeight - controlsHeight)
	return utils.FitBoard(8, hudHeight+4, ScreenWidth-16, areaH-8, gr.Width(), gr.Height())
}

// Draw 绘制网格、效果、角色、信息栏、触摸控制和面板
func (g *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(gameBackground)

	layout := g.boardLayout()
	g.drawBlocks(screen, layout)
	if !g.touch {
		g.drawHover(screen, layout)
	}
	g.drawEffects(screen, layout)
	g.drawPlayer(screen, layout)
	g.drawHUD(screen)
	if g.touch {
		g.drawControls(screen)
	}

	switch {
	case g.shownPanel != PanelNone:
		g.drawPanel(screen)
	case g.paused:
		g.drawPause(screen)
	}
	if msg := g.Message(); msg != "" {
		drawCentered(screen, msg, hudHeight+8)
	}
}

func (g *GameScene) drawBlocks(screen *ebiten.Image, layout utils.BoardLayout) {
	size := float32(layout.CellSize)
	for _, b := range g.services.State.Grid().Blocks() {
		x, y := cellOrigin(layout, b.Coord)
		if b.Layer == types.LayerTop {
			drawBlock(screen, x+1, y+1, size-2, b.Type)
			continue
		}
		drawBlock(screen, x, y, size, b.Type)
	}
}

// drawBlock 绘制一个方块，金币方块在泥土上叠加金币
func drawBlock(screen *ebiten.Image, x, y, size float32, block types.BlockType) {
	clr, ok := blockColors[block]
	if !ok || size <= 0 {
		return
	}
	vector.DrawFilledRect(screen, x, y, size, size, clr, false)
	if block == types.BlockCoin {
		vector.DrawFilledCircle(screen, x+size/2, y+size/2, size/4, coinColor, true)
	}
}

// drawHover 描出鼠标所在的格子
func (g *GameScene) drawHover(screen *ebiten.Image, layout utils.BoardLayout) {
	_, x, y := utils.GetPointerState()
	cell, ok := layout.ScreenToCell(x, y)
	if !ok {
		return
	}
	cx, cy := cellOrigin(layout, cell)
	size := float32(layout.CellSize)
	vector.StrokeRect(screen, cx, cy, size, size, 2, hoverOutline, false)
}

func (g *GameScene) drawEffects(screen *ebiten.Image, layout utils.BoardLayout) {
	for _, e := range g.services.World.Effects.Effects() {
		size := float32(layout.CellSize * utils.EaseInQuad(e.Scale))
		cx, cy := layout.CellToScreen(e.Coord)
		drawBlock(screen, float32(cx)-size/2, float32(cy)-size/2, size, e.Block)
	}
}

func (g *GameScene) drawPlayer(screen *ebiten.Image, layout utils.BoardLayout) {
	p := g.services.World.Player()
	if p == nil || layout.CellSize <= 0 {
		return
	}
	cell := float32(layout.CellSize)
	sx, sy := layout.PositionToScreen(p.X, p.Y)
	x, y := float32(sx), float32(sy)

	// 高于底层的部分向上偏移，影子留在格子上
	lift := float32(p.Height-g.services.State.Grid().BedrockHeight()) * cell * 0.35
	vector.DrawFilledCircle(screen, x, y+cell*0.2, cell*0.3, shadowColor, true)
	vector.DrawFilledCircle(screen, x, y-lift, cell*0.32, characterColor(p.Character), true)

	// 朝向标记
	fx := x + float32(p.FacingX)*cell*0.22
	fy := y - lift + float32(p.FacingY)*cell*0.22
	vector.DrawFilledCircle(screen, fx, fy, cell*0.07, color.Black, true)

	if g.services.World.Dig.IsDigging() {
		w := cell
		top := y - lift - cell*0.6
		vector.DrawFilledRect(screen, x-w/2, top, w, 5, digBarBack, false)
		vector.DrawFilledRect(screen, x-w/2, top, w*float32(g.services.World.Dig.Progress()), 5, digBarFill, false)
	}
}

func (g *GameScene) drawHUD(screen *ebiten.Image) {
	gs := g.services.State
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, hudHeight, hudBackground, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LEVEL %d", gs.CurrentLevel()), 10, 6)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("AXES %d", gs.AxesRemaining()), 10, 24)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("COINS %d", gs.Coins()), 110, 6)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("PIECES %d/%d", gs.RevealedPieces(), gs.TotalPieces()), 110, 24)
	g.pauseButton.Draw(screen)
}

func (g *GameScene) drawControls(screen *ebiten.Image) {
	g.digButton.Draw(screen)
	g.jumpButton.Draw(screen)

	if g.joystick.Active() {
		cx, cy := g.joystick.Center()
		vx, vy := g.joystick.Vector()
		r := float32(g.joystick.Radius)
		vector.StrokeCircle(screen, float32(cx), float32(cy), r, 2, joystickRing, true)
		vector.DrawFilledCircle(screen, float32(cx)+float32(vx)*r, float32(cy)+float32(vy)*r, r/3, joystickKnob, true)
		return
	}
	top := ScreenHeight - controlsHeight
	ebitenutil.DebugPrintAt(screen, "DRAG HERE TO MOVE", 16, top+controlsHeight/2-8)
}

func (g *GameScene) drawPanel(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, panelOverlay, false)

	level := g.services.Outcome.Level()
	switch g.shownPanel {
	case PanelWon:
		drawCentered(screen, fmt.Sprintf("LEVEL %d COMPLETE!", level), ScreenHeight/2-90)
		drawCentered(screen, fmt.Sprintf("+%d COINS", g.services.Rules.Economy.WinBonus+g.services.State.LevelCoins()), ScreenHeight/2-60)
	case PanelLost:
		drawCentered(screen, "OUT OF AXES", ScreenHeight/2-90)
		drawCentered(screen, fmt.Sprintf("COINS %d", g.services.State.Coins()), ScreenHeight/2-60)
	}
	for _, b := range g.panelButtons {
		b.Draw(screen)
	}
}

func (g *GameScene) drawPause(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, panelOverlay, false)
	drawCentered(screen, "PAUSED", ScreenHeight/2-60)
	for _, b := range g.pauseButtons {
		b.Draw(screen)
	}
}

// cellOrigin 返回格子左上角的屏幕坐标
func cellOrigin(layout utils.BoardLayout, c types.CellCoord) (float32, float32) {
	x := layout.OriginX + float64(c.X)*layout.CellSize
	y := layout.OriginY + float64(c.Y)*layout.CellSize
	return float32(x), float32(y)
}

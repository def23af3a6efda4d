package scenes

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/systems"
	"github.com/decker502/brickdigger/pkg/utils"
)

// 关卡场景布局（逻辑像素）
const (
	hudHeight      = 56  // 顶部信息栏高度
	controlsHeight = 150 // 底部触摸控制区高度
	joystickRadius = 50  // 虚拟摇杆半径
	messageTime    = 1.5 // 提示文字显示时长（秒）
)

// GameScene 关卡场景
//
// 每帧把键盘、虚拟摇杆和触摸按钮合成为一个 InputFrame 交给 World；
// 收到胜负通知后显示面板，面板上可以进入下一关、重试、购买斧头或返回主页。
// 暂停时 World 不再推进，面板上可以继续或返回主页。
//
// 键盘：WASD/方向键移动，空格跳跃，E/J 挖掘，Esc 暂停/继续；
// 面板中 Enter 下一关或重试，B 购买斧头。
// 点击角色所在的格子等同于挖掘。
type GameScene struct {
	services *Services
	joystick *utils.Joystick
	touch    bool // 是否显示虚拟摇杆和触摸按钮

	digButton   *Button
	jumpButton  *Button
	pauseButton *Button

	shownPanel   Panel
	panelButtons []*Button

	paused       bool
	pauseButtons []*Button

	message      string
	messageTimer float64

	log logrus.FieldLogger
}

// NewGameScene 创建关卡场景
// 关卡需要已经由调用方开始（GameState 处于进行中或结束状态）
func NewGameScene(s *Services) *GameScene {
	controlsTop := ScreenHeight - controlsHeight
	g := &GameScene{
		services: s,
		joystick: utils.NewJoystick(joystickRadius, func(x, y int) bool {
			return x < ScreenWidth/2 && y >= controlsTop
		}),
		touch:       utils.IsMobile(),
		digButton:   &Button{Rect: image.Rect(ScreenWidth-100, controlsTop+20, ScreenWidth-20, controlsTop+80), Label: "DIG"},
		jumpButton:  &Button{Rect: image.Rect(ScreenWidth-180, controlsTop+70, ScreenWidth-110, controlsTop+130), Label: "JUMP"},
		pauseButton: &Button{Rect: image.Rect(ScreenWidth-70, 10, ScreenWidth-10, 40), Label: "PAUSE"},
		log:         logger.Component(s.Log, "GameScene"),
	}
	g.pauseButton.OnClick = g.Pause
	return g
}

// Update 读取输入并推进模拟
func (g *GameScene) Update(deltaTime float64) {
	if g.messageTimer > 0 {
		g.messageTimer -= deltaTime
	}

	g.syncPanel()
	if g.shownPanel != PanelNone {
		g.updatePanel()
		g.step(deltaTime, systems.InputFrame{})
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.TogglePause()
		return
	}
	if g.paused {
		if pressed, x, y := utils.IsPointerJustPressed(); pressed {
			clickButtons(g.pauseButtons, x, y)
		}
		return
	}
	g.step(deltaTime, g.readInput())
}

// step 推进模拟；暂停时时间静止
func (g *GameScene) step(deltaTime float64, in systems.InputFrame) {
	if g.paused {
		return
	}
	g.services.World.Update(deltaTime, in)
}

// Pause 暂停关卡并显示继续/主页面板
// 胜负面板显示时不能暂停
func (g *GameScene) Pause() {
	if g.paused || g.shownPanel != PanelNone {
		return
	}
	g.paused = true

	cx := ScreenWidth / 2
	top := ScreenHeight / 2
	g.pauseButtons = []*Button{
		{Rect: image.Rect(cx-90, top, cx+90, top+40), Label: "RESUME", OnClick: g.Resume},
		{Rect: image.Rect(cx-90, top+50, cx+90, top+90), Label: "HOME", OnClick: g.Home},
	}
	g.services.playSound(game.SoundClick)
	g.log.WithField("level", g.services.State.CurrentLevel()).Debug("paused")
}

// Resume 关闭暂停面板，继续推进模拟
func (g *GameScene) Resume() {
	if !g.paused {
		return
	}
	g.paused = false
	g.pauseButtons = nil
	g.services.playSound(game.SoundClick)
	g.log.WithField("level", g.services.State.CurrentLevel()).Debug("resumed")
}

// TogglePause 在暂停与继续之间切换
func (g *GameScene) TogglePause() {
	if g.paused {
		g.Resume()
		return
	}
	g.Pause()
}

// Paused 是否处于暂停
func (g *GameScene) Paused() bool {
	return g.paused
}

// readInput 合成本帧输入
func (g *GameScene) readInput() systems.InputFrame {
	var in systems.InputFrame
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY++
	}
	in.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.Dig = inpututil.IsKeyJustPressed(ebiten.KeyE) || inpututil.IsKeyJustPressed(ebiten.KeyJ)

	if g.touch {
		g.joystick.Update()
		if g.joystick.Active() {
			in.MoveX, in.MoveY = g.joystick.Vector()
		}
	}

	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		switch {
		case g.touch && g.digButton.Contains(x, y):
			in.Dig = true
		case g.touch && g.jumpButton.Contains(x, y):
			in.Jump = true
		case g.pauseButton.Contains(x, y):
			g.Pause()
		case g.tapsPlayerCell(x, y):
			in.Dig = true
		}
	}
	return in
}

// tapsPlayerCell 屏幕坐标是否落在角色所在的格子上
func (g *GameScene) tapsPlayerCell(x, y int) bool {
	p := g.services.World.Player()
	if p == nil {
		return false
	}
	cell, ok := g.boardLayout().ScreenToCell(x, y)
	return ok && cell == p.Cell()
}

// syncPanel 面板变化时重建面板按钮
func (g *GameScene) syncPanel() {
	panel := g.services.Outcome.Panel()
	if panel == g.shownPanel {
		return
	}
	g.shownPanel = panel

	cx := ScreenWidth / 2
	row := func(i int) image.Rectangle {
		top := ScreenHeight/2 + i*50
		return image.Rect(cx-90, top, cx+90, top+40)
	}

	switch panel {
	case PanelWon:
		g.panelButtons = []*Button{
			{Rect: row(0), Label: "NEXT LEVEL", OnClick: g.Next},
			{Rect: row(1), Label: "HOME", OnClick: g.Home},
		}
	case PanelLost:
		g.panelButtons = []*Button{
			{Rect: row(0), Label: "RETRY", OnClick: g.Retry},
			{Rect: row(1), OnClick: func() { g.BuyAxes() }},
			{Rect: row(2), Label: "HOME", OnClick: g.Home},
		}
		g.refreshBuyButton()
	default:
		g.panelButtons = nil
	}
}

// refreshBuyButton 更新失败面板上购买按钮的文字和可用状态
func (g *GameScene) refreshBuyButton() {
	if g.shownPanel != PanelLost || len(g.panelButtons) < 2 {
		return
	}
	eco := g.services.Rules.Economy
	buy := g.panelButtons[1]
	buy.Label = fmt.Sprintf("+%d AXES (%d COINS)", eco.AxePack, eco.AxePrice)
	buy.Disabled = !g.services.State.CanAffordAxes()
}

// updatePanel 处理面板输入
func (g *GameScene) updatePanel() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if g.shownPanel == PanelWon {
			g.Next()
		} else {
			g.Retry()
		}
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyB) && g.shownPanel == PanelLost:
		g.BuyAxes()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.Home()
		return
	}

	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		clickButtons(g.panelButtons, x, y)
	}
}

// Next 进入下一关
func (g *GameScene) Next() {
	g.services.playSound(game.SoundClick)
	g.services.State.NextLevel()
	g.syncPanel()
}

// Retry 以相同布局重试当前关卡
func (g *GameScene) Retry() {
	g.services.playSound(game.SoundClick)
	g.services.State.RestartLevel()
	g.syncPanel()
}

// BuyAxes 购买一包斧头
// 关卡进行中直接加到剩余斧头，失败后计入下一次重试
func (g *GameScene) BuyAxes() bool {
	s := g.services
	if !s.State.BuyAxes() {
		g.showMessage("NOT ENOUGH COINS")
		return false
	}
	s.playSound(game.SoundBuy)
	if s.State.State() == game.StateActive {
		g.showMessage(fmt.Sprintf("+%d AXES", s.Rules.Economy.AxePack))
	} else {
		g.showMessage(fmt.Sprintf("+%d AXES NEXT TRY", s.State.PendingAxes()))
	}
	g.refreshBuyButton()
	return true
}

// Home 保存进度并返回主页
func (g *GameScene) Home() {
	g.SaveOnExit()
	g.services.playSound(game.SoundClick)
	g.services.Scenes.Load(game.SceneHome)
}

// SaveOnExit 实现 game.Saveable
func (g *GameScene) SaveOnExit() bool {
	if err := g.services.State.Flush(); err != nil {
		g.log.WithError(err).Warn("failed to save progress on exit")
		return false
	}
	g.log.WithFields(logrus.Fields{
		"level": g.services.State.CurrentLevel(),
		"coins": g.services.State.Coins(),
	}).Debug("progress saved on exit")
	return true
}

func (g *GameScene) showMessage(msg string) {
	g.message = msg
	g.messageTimer = messageTime
}

// Message 返回当前提示文字（已过期时为空）
func (g *GameScene) Message() string {
	if g.messageTimer <= 0 {
		return ""
	}
	return g.message
}

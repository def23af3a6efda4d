package scenes

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/utils"
)

var homeBackground = color.RGBA{R: 60, G: 100, B: 150, A: 255}

// characterColors 角色预览颜色，按编号循环使用
var characterColors = []color.RGBA{
	{R: 240, G: 200, B: 60, A: 255},
	{R: 230, G: 90, B: 80, A: 255},
	{R: 90, G: 170, B: 240, A: 255},
	{R: 120, G: 210, B: 110, A: 255},
	{R: 200, G: 120, B: 220, A: 255},
	{R: 250, G: 150, B: 60, A: 255},
	{R: 240, G: 240, B: 240, A: 255},
	{R: 60, G: 60, B: 60, A: 255},
}

// characterColor 返回角色编号（从 1 开始）对应的颜色
func characterColor(idx int) color.RGBA {
	if idx < 1 {
		idx = 1
	}
	return characterColors[(idx-1)%len(characterColors)]
}

// HomeScene 主页：开始游戏、角色商店、设置开关
//
// 键盘：Enter 开始，←/→ 浏览角色，B 购买/装备，S/M/H 切换音效/音乐/震动
type HomeScene struct {
	services *Services

	play    *Button
	prev    *Button
	next    *Button
	shop    *Button
	sound   *Button
	music   *Button
	haptics *Button
	buttons []*Button
	message string
}

// NewHomeScene 创建主页场景
func NewHomeScene(s *Services) *HomeScene {
	h := &HomeScene{services: s}

	cx := ScreenWidth / 2
	h.play = &Button{Rect: image.Rect(cx-80, 150, cx+80, 200), OnClick: h.Play}
	h.prev = &Button{Rect: image.Rect(cx-130, 290, cx-90, 330), Label: "<", OnClick: h.PrevCharacter}
	h.next = &Button{Rect: image.Rect(cx+90, 290, cx+130, 330), Label: ">", OnClick: h.NextCharacter}
	h.shop = &Button{Rect: image.Rect(cx-70, 370, cx+70, 405), OnClick: h.ActivateShop}
	h.sound = &Button{Rect: image.Rect(cx-150, 470, cx-55, 505), OnClick: h.ToggleSound}
	h.music = &Button{Rect: image.Rect(cx-47, 470, cx+48, 505), OnClick: h.ToggleMusic}
	h.haptics = &Button{Rect: image.Rect(cx+56, 470, cx+151, 505), OnClick: h.ToggleHaptics}
	h.buttons = []*Button{h.play, h.prev, h.next, h.shop, h.sound, h.music, h.haptics}

	h.refresh()
	return h
}

// Update 处理键盘和指针输入
func (h *HomeScene) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		h.Play()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		h.PrevCharacter()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		h.NextCharacter()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		h.ActivateShop()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		h.ToggleSound()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		h.ToggleMusic()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		h.ToggleHaptics()
	}

	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		clickButtons(h.buttons, x, y)
	}
}

// Play 开始或继续关卡并切换到关卡场景
//
// 进行中的关卡直接继续；已胜利则进入下一关；其他情况按存档继续当前关卡。
func (h *HomeScene) Play() {
	s := h.services
	switch s.State.State() {
	case game.StateActive:
	case game.StateWon:
		s.State.NextLevel()
	default:
		s.State.ResumeLevel()
	}
	s.World.SetCharacter(s.Shop.Selected())
	s.playSound(game.SoundClick)
	s.Scenes.Load(game.SceneGame)
}

// PrevCharacter 浏览上一个角色
func (h *HomeScene) PrevCharacter() {
	h.services.Shop.Prev()
	h.message = ""
	h.refresh()
}

// NextCharacter 浏览下一个角色
func (h *HomeScene) NextCharacter() {
	h.services.Shop.Next()
	h.message = ""
	h.refresh()
}

// ActivateShop 购买或装备当前浏览的角色
func (h *HomeScene) ActivateShop() {
	s := h.services
	before := s.Shop.Action()
	_, ok := s.Shop.Activate()
	switch {
	case ok && before == game.ActionBuy:
		h.message = "UNLOCKED " + game.CharacterName(s.Shop.Current())
		s.playSound(game.SoundBuy)
	case ok:
		h.message = "EQUIPPED " + game.CharacterName(s.Shop.Current())
		s.World.SetCharacter(s.Shop.Selected())
		s.playSound(game.SoundClick)
	case before == game.ActionBuy:
		h.message = "NOT ENOUGH COINS"
	}
	h.refresh()
}

// ToggleSound 切换音效
func (h *HomeScene) ToggleSound() {
	h.services.Settings.ToggleSound()
	h.refresh()
}

// ToggleMusic 切换音乐
func (h *HomeScene) ToggleMusic() {
	h.services.Settings.ToggleMusic()
	h.refresh()
}

// ToggleHaptics 切换震动
func (h *HomeScene) ToggleHaptics() {
	h.services.Settings.ToggleHaptics()
	h.refresh()
}

// refresh 根据当前状态更新按钮文字
func (h *HomeScene) refresh() {
	s := h.services
	h.play.Label = fmt.Sprintf("PLAY LEVEL %d", h.playLevel())

	switch s.Shop.Action() {
	case game.ActionBuy:
		h.shop.Label = fmt.Sprintf("BUY (%d)", s.Shop.Price())
		h.shop.Disabled = !s.Shop.CanAfford()
	case game.ActionEquip:
		h.shop.Label = "EQUIP"
		h.shop.Disabled = false
	default:
		h.shop.Label = "SELECTED"
		h.shop.Disabled = true
	}

	settings := s.Settings.GetSettings()
	h.sound.Label = "SOUND " + onOff(settings.SoundEnabled)
	h.music.Label = "MUSIC " + onOff(settings.MusicEnabled)
	h.haptics.Label = "VIBE " + onOff(settings.HapticsEnabled)
}

// playLevel 返回点击开始后将进入的关卡
func (h *HomeScene) playLevel() int {
	gs := h.services.State
	if gs.State() == game.StateWon {
		return gs.CurrentLevel() + 1
	}
	return gs.CurrentLevel()
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// Draw 绘制主页
func (h *HomeScene) Draw(screen *ebiten.Image) {
	s := h.services
	screen.Fill(homeBackground)

	drawCentered(screen, "BRICK DIGGER", 60)
	drawCentered(screen, fmt.Sprintf("COINS %d   BEST LEVEL %d", s.State.Coins(), s.State.HighestLevel()), 100)

	current := s.Shop.Current()
	clr := characterColor(current)
	if !s.Shop.IsUnlocked(current) {
		clr.A = 90
	}
	vector.DrawFilledCircle(screen, ScreenWidth/2, 310, 30, clr, true)
	drawCentered(screen, fmt.Sprintf("%s (%d/%d)", game.CharacterName(current), current, s.Shop.Count()), 345)

	drawCentered(screen, "SETTINGS", 445)
	for _, b := range h.buttons {
		b.Draw(screen)
	}

	if h.message != "" {
		drawCentered(screen, h.message, 420)
	}
	ebitenutil.DebugPrintAt(screen, "ENTER play  <-/-> browse  B buy", 8, ScreenHeight-40)
	ebitenutil.DebugPrintAt(screen, "S/M/H toggle sound/music/vibe", 8, ScreenHeight-22)
}

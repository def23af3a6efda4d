package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/utils"
)

var (
	loadingBackground = color.RGBA{R: 40, G: 30, B: 20, A: 255}
	loadingBarBack    = color.RGBA{R: 90, G: 60, B: 40, A: 255}
	loadingBarFill    = color.RGBA{R: 110, G: 190, B: 70, A: 255}
)

// LoadingScene 启动加载界面
// 进度条在 LoadingDuration 内填满，停留 LoadingHold 后进入主页
type LoadingScene struct {
	services *Services
	elapsed  float64
	duration float64
	hold     float64
	done     bool
}

// NewLoadingScene 创建加载场景
func NewLoadingScene(s *Services) *LoadingScene {
	return &LoadingScene{
		services: s,
		duration: s.Rules.Timing.LoadingDuration,
		hold:     s.Rules.Timing.LoadingHold,
	}
}

// Update 推进加载计时，结束后切换到主页
func (l *LoadingScene) Update(deltaTime float64) {
	if l.done {
		return
	}
	l.elapsed += deltaTime
	if l.elapsed >= l.duration+l.hold {
		l.done = true
		l.services.Scenes.Load(game.SceneHome)
	}
}

// Progress 返回进度条填充比例 [0, 1]（缓出）
func (l *LoadingScene) Progress() float64 {
	if l.duration <= 0 {
		return 1
	}
	return utils.EaseOutCubic(utils.Clamp01(l.elapsed / l.duration))
}

// Draw 绘制标题和进度条
func (l *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(loadingBackground)
	drawCentered(screen, "BRICK DIGGER", ScreenHeight/3)

	const barW, barH = 240, 18
	x := float32(ScreenWidth-barW) / 2
	y := float32(ScreenHeight * 2 / 3)
	vector.DrawFilledRect(screen, x, y, barW, barH, loadingBarBack, false)
	vector.DrawFilledRect(screen, x, y, barW*float32(l.Progress()), barH, loadingBarFill, false)

	if l.elapsed >= l.duration {
		drawCentered(screen, "READY", int(y)+barH+12)
	} else {
		drawCentered(screen, "LOADING...", int(y)+barH+12)
	}
}

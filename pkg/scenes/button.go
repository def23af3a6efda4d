package scenes

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugGlyphWidth ebitenutil 调试字体的字符宽度
const debugGlyphWidth = 6

var (
	buttonFill    = color.RGBA{R: 70, G: 110, B: 60, A: 255}
	buttonBorder  = color.RGBA{R: 230, G: 220, B: 170, A: 255}
	buttonDimFill = color.RGBA{R: 80, G: 80, B: 80, A: 255}
)

// Button 矩形按钮
type Button struct {
	Rect     image.Rectangle
	Label    string
	Disabled bool
	OnClick  func()
}

// Contains 判断点是否在按钮内
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Draw 绘制按钮
func (b *Button) Draw(screen *ebiten.Image) {
	fill := buttonFill
	if b.Disabled {
		fill = buttonDimFill
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, fill, false)
	vector.StrokeRect(screen, x, y, w, h, 2, buttonBorder, false)

	tx := b.Rect.Min.X + (b.Rect.Dx()-len(b.Label)*debugGlyphWidth)/2
	ty := b.Rect.Min.Y + (b.Rect.Dy()-16)/2
	ebitenutil.DebugPrintAt(screen, b.Label, tx, ty)
}

// clickButtons 将一次点击分发给命中的第一个可用按钮
//
// 返回：
//   - bool: 是否有按钮响应
func clickButtons(buttons []*Button, x, y int) bool {
	for _, b := range buttons {
		if b.Disabled || !b.Contains(x, y) {
			continue
		}
		if b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}

// drawCentered 在屏幕水平居中位置打印文本
func drawCentered(screen *ebiten.Image, msg string, y int) {
	ebitenutil.DebugPrintAt(screen, msg, (ScreenWidth-len(msg)*debugGlyphWidth)/2, y)
}

package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/brickdigger/pkg/systems"
)

// holdDuration 终端只上报按下和自动重复，方向键在最后一次事件后保持的时间
const holdDuration = 180 * time.Millisecond

// Command 非移动类按键
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandNext
	CommandRetry
	CommandBuyAxes
	CommandToggleSound
	CommandPause
)

// keyInput 把 tcell 按键事件合成为每帧的 InputFrame
type keyInput struct {
	moveX, moveY float64
	moveUntil    time.Time
	jump         bool
	dig          bool
}

// HandleKey 处理一个按键事件，返回其中的非移动命令
func (k *keyInput) HandleKey(key tcell.Key, r rune, now time.Time) Command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CommandQuit
	case tcell.KeyLeft:
		k.move(-1, 0, now)
	case tcell.KeyRight:
		k.move(1, 0, now)
	case tcell.KeyUp:
		k.move(0, -1, now)
	case tcell.KeyDown:
		k.move(0, 1, now)
	case tcell.KeyEnter:
		k.dig = true
	case tcell.KeyRune:
		return k.handleRune(r, now)
	}
	return CommandNone
}

func (k *keyInput) handleRune(r rune, now time.Time) Command {
	switch r {
	case 'a', 'h':
		k.move(-1, 0, now)
	case 'd', 'l':
		k.move(1, 0, now)
	case 'w', 'k':
		k.move(0, -1, now)
	case 's', 'j':
		k.move(0, 1, now)
	case ' ':
		k.jump = true
	case 'e', 'x':
		k.dig = true
	case 'q':
		return CommandQuit
	case 'n':
		return CommandNext
	case 'r':
		return CommandRetry
	case 'b':
		return CommandBuyAxes
	case 'm':
		return CommandToggleSound
	case 'p':
		return CommandPause
	}
	return CommandNone
}

func (k *keyInput) move(dx, dy float64, now time.Time) {
	k.moveX, k.moveY = dx, dy
	k.moveUntil = now.Add(holdDuration)
}

// Frame 返回本帧输入并清除边沿触发的按键
func (k *keyInput) Frame(now time.Time) systems.InputFrame {
	in := systems.InputFrame{Jump: k.jump, Dig: k.dig}
	if now.Before(k.moveUntil) {
		in.MoveX, in.MoveY = k.moveX, k.moveY
	}
	k.jump, k.dig = false, false
	return in
}

// Reset 清除所有按键状态
func (k *keyInput) Reset() {
	*k = keyInput{}
}

package game

import "github.com/decker502/brickdigger/pkg/types"

// Listener 接收进度状态机的单向通知
//
// 状态机只调用监听者，不读取其返回值；监听者不得在回调中修改状态机。
// 实现者可嵌入 NopListener 只覆盖关心的事件。
type Listener interface {
	// OnLevelStarted 关卡开始（含重试）
	OnLevelStarted(level, axes, totalPieces int)
	// OnAxesChanged 斧头数量变化
	OnAxesChanged(axes int)
	// OnCoinsChanged 累计金币变化
	OnCoinsChanged(totalCoins int)
	// OnCoinCollected 挖到金币方块
	OnCoinCollected(levelCoins int)
	// OnPieceRevealed 露出一格积木
	OnPieceRevealed(revealed, total int)
	// OnBlockRemoved 顶层方块被挖掉
	OnBlockRemoved(coord types.CellCoord, block types.BlockType)
	// OnWon 关卡胜利（延迟通知）
	OnWon(level int)
	// OnLost 关卡失败（延迟通知）
	OnLost(level int)
}

// NopListener 空实现
type NopListener struct{}

func (NopListener) OnLevelStarted(int, int, int)                    {}
func (NopListener) OnAxesChanged(int)                               {}
func (NopListener) OnCoinsChanged(int)                              {}
func (NopListener) OnCoinCollected(int)                             {}
func (NopListener) OnPieceRevealed(int, int)                        {}
func (NopListener) OnBlockRemoved(types.CellCoord, types.BlockType) {}
func (NopListener) OnWon(int)                                       {}
func (NopListener) OnLost(int)                                      {}

// Listeners 按注册顺序转发事件给多个监听者
type Listeners []Listener

func (ls Listeners) OnLevelStarted(level, axes, totalPieces int) {
	for _, l := range ls {
		l.OnLevelStarted(level, axes, totalPieces)
	}
}

func (ls Listeners) OnAxesChanged(axes int) {
	for _, l := range ls {
		l.OnAxesChanged(axes)
	}
}

func (ls Listeners) OnCoinsChanged(totalCoins int) {
	for _, l := range ls {
		l.OnCoinsChanged(totalCoins)
	}
}

func (ls Listeners) OnCoinCollected(levelCoins int) {
	for _, l := range ls {
		l.OnCoinCollected(levelCoins)
	}
}

func (ls Listeners) OnPieceRevealed(revealed, total int) {
	for _, l := range ls {
		l.OnPieceRevealed(revealed, total)
	}
}

func (ls Listeners) OnBlockRemoved(coord types.CellCoord, block types.BlockType) {
	for _, l := range ls {
		l.OnBlockRemoved(coord, block)
	}
}

func (ls Listeners) OnWon(level int) {
	for _, l := range ls {
		l.OnWon(level)
	}
}

func (ls Listeners) OnLost(level int) {
	for _, l := range ls {
		l.OnLost(level)
	}
}

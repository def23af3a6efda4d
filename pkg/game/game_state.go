package game

import (
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/grid"
	"github.com/decker502/brickdigger/pkg/level"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/types"
)

// LevelState 关卡状态
type LevelState int

const (
	StateIdle   LevelState = iota // 尚未开始任何关卡
	StateActive                   // 进行中
	StateWon                      // 胜利（终止）
	StateLost                     // 失败（终止）
)

var levelStateNames = map[LevelState]string{
	StateIdle:   "idle",
	StateActive: "active",
	StateWon:    "won",
	StateLost:   "lost",
}

func (s LevelState) String() string {
	if name, ok := levelStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal 是否为终止状态（胜利或失败）
func (s LevelState) IsTerminal() bool {
	return s == StateWon || s == StateLost
}

// Wallet 金币账户
// 进度状态机和角色商店共享同一份累计金币
type Wallet interface {
	Coins() int
	SpendCoins(amount int) bool
}

// GameState 关卡进度状态机
//
// 状态流转：Idle -> Active -> {Won, Lost}，终止状态只能通过
// StartLevel / RestartLevel / NextLevel 重新进入 Active。
//
// 职责：
//   - 持有斧头、金币、积木进度计数器
//   - 判定胜负，胜利时发放奖励并解锁下一关
//   - 通过 SaveManager 持久化当前关卡、累计金币、最高关卡和关卡种子
//
// 胜负状态立即生效，但监听者的 OnWon/OnLost 由 AnnounceOutcome 延迟触发。
// 单线程访问，不加锁。
type GameState struct {
	rules     *config.GameRules
	generator *level.Generator
	grid      *grid.Grid
	save      *SaveManager
	listeners Listeners
	log       logrus.FieldLogger

	config       level.LevelConfig
	state        LevelState
	announced    bool
	currentLevel int
	totalCoins   int
	levelCoins   int
	axes         int
	pendingAxes  int // 非进行中购买的斧头，计入下一次开局
	totalPieces  int
	revealed     int
}

// NewGameState 创建进度状态机，从存档读取当前关卡、累计金币和待到账的斧头
//
// 参数：
//   - rules: 游戏规则（为 nil 时使用默认规则）
//   - generator: 关卡生成器
//   - g: 关卡网格
//   - save: 存档管理器
//   - log: 日志器（可为 nil）
func NewGameState(rules *config.GameRules, generator *level.Generator, g *grid.Grid, save *SaveManager, log logrus.FieldLogger) *GameState {
	if rules == nil {
		rules = config.DefaultGameRules()
	}
	return &GameState{
		rules:        rules,
		generator:    generator,
		grid:         g,
		save:         save,
		log:          logger.Component(log, "GameState"),
		state:        StateIdle,
		currentLevel: save.CurrentLevel(),
		totalCoins:   save.TotalCoins(),
		pendingAxes:  save.PendingAxes(),
	}
}

// AddListener 注册事件监听者
func (gs *GameState) AddListener(l Listener) {
	gs.listeners = append(gs.listeners, l)
}

// StartLevel 以新种子开始第 n 关（n < 1 按 1 处理）
func (gs *GameState) StartLevel(n int) {
	gs.startSeeded(n, gs.generator.NextSeed())
}

// ResumeLevel 继续存档中的当前关卡
// 若存档记录了该关的种子则复用，布局与上次一致
func (gs *GameState) ResumeLevel() {
	n := gs.save.CurrentLevel()
	if seed, ok := gs.save.LevelSeed(n); ok {
		gs.startSeeded(n, seed)
		return
	}
	gs.StartLevel(n)
}

// RestartLevel 以相同种子重新开始当前关卡
func (gs *GameState) RestartLevel() {
	if gs.state == StateIdle {
		gs.ResumeLevel()
		return
	}
	gs.startSeeded(gs.currentLevel, gs.config.Seed)
}

// NextLevel 进入下一关并保存进度
func (gs *GameState) NextLevel() {
	gs.currentLevel++
	gs.persist()
	gs.StartLevel(gs.currentLevel)
}

// startSeeded 生成配置和网格并重置计数器
func (gs *GameState) startSeeded(n int, seed uint64) {
	n = max(n, 1)
	gs.config = gs.generator.GenerateSeeded(n, seed)
	gs.grid.GenerateLevel(gs.config)

	gs.currentLevel = n
	gs.axes = gs.config.AxesStart + gs.pendingAxes
	gs.pendingAxes = 0
	gs.levelCoins = 0
	gs.revealed = 0
	gs.totalPieces = gs.grid.CountPieces()
	gs.checkPieceProgress()
	gs.state = StateActive
	gs.announced = false

	gs.save.SetLevelSeed(n, seed)
	gs.persist()

	gs.log.WithFields(logrus.Fields{
		"level":  n,
		"seed":   seed,
		"axes":   gs.axes,
		"pieces": gs.totalPieces,
	}).Info("level started")

	gs.listeners.OnLevelStarted(n, gs.axes, gs.totalPieces)
	gs.listeners.OnAxesChanged(gs.axes)
	gs.listeners.OnCoinsChanged(gs.totalCoins)

	// 积木全部落在网格外时没有可挖的目标，直接判胜而不是卡在进行中
	if gs.checkWin() {
		gs.log.WithField("level", n).Warn("level has no piece cells, won on start")
	}
}

// CanDig 进行中且仍有斧头
func (gs *GameState) CanDig() bool {
	return gs.state == StateActive && gs.axes > 0
}

// UseAxe 消耗一把斧头
// 斧头用完且积木未全部露出时判负
//
// 返回：
//   - bool: 是否成功消耗（非进行中或无斧头时为 false）
func (gs *GameState) UseAxe() bool {
	if !gs.spendAxe() {
		return false
	}
	gs.checkLose()
	return true
}

// CollectCoin 关卡金币和累计金币各加 1
func (gs *GameState) CollectCoin() {
	gs.levelCoins++
	gs.totalCoins++
	gs.listeners.OnCoinCollected(gs.levelCoins)
	gs.listeners.OnCoinsChanged(gs.totalCoins)
}

// RevealPiece 已露出积木格子数加 1，全部露出时判胜
// 非进行中时忽略
func (gs *GameState) RevealPiece() {
	if !gs.revealOne() {
		return
	}
	gs.checkWin()
}

// RecordDig 将一次成功的挖掘作为一步结算
//
// 顺序：消耗斧头、收集金币、露出积木，最后先判胜再判负，
// 因此用最后一把斧头挖出最后一格积木算作胜利。
//
// 返回：
//   - bool: 是否结算（失败的挖掘或非进行中时为 false）
func (gs *GameState) RecordDig(result grid.DigResult) bool {
	if !result.Success || !gs.spendAxe() {
		return false
	}
	if result.FoundCoin {
		gs.CollectCoin()
	}
	if result.FoundPiece {
		gs.revealOne()
		gs.checkPieceProgress()
	}
	if !gs.checkWin() {
		gs.checkLose()
	}
	return true
}

// BuyAxes 花费金币购买斧头，任何状态下可用
//
// 进行中时直接增加剩余斧头；其他状态下计入下一次开局（例如失败后重试）。
// 金币不足时不做任何修改。
//
// 返回：
//   - bool: 是否购买成功
func (gs *GameState) BuyAxes() bool {
	eco := gs.rules.Economy
	if !gs.CanAffordAxes() {
		gs.log.WithFields(logrus.Fields{"coins": gs.totalCoins, "price": eco.AxePrice}).Debug("cannot afford axes")
		return false
	}

	gs.totalCoins -= eco.AxePrice
	if gs.state == StateActive {
		gs.axes += eco.AxePack
		gs.listeners.OnAxesChanged(gs.axes)
	} else {
		gs.pendingAxes += eco.AxePack
	}
	gs.listeners.OnCoinsChanged(gs.totalCoins)
	gs.persist()

	gs.log.WithFields(logrus.Fields{"axes": gs.axes, "pending": gs.pendingAxes, "coins": gs.totalCoins}).Info("axes purchased")
	return true
}

// CanAffordAxes 累计金币是否足够购买一包斧头
func (gs *GameState) CanAffordAxes() bool {
	return gs.totalCoins >= gs.rules.Economy.AxePrice
}

// Coins 返回累计金币
func (gs *GameState) Coins() int {
	return gs.totalCoins
}

// SpendCoins 扣除金币，不足时返回 false 且不修改
func (gs *GameState) SpendCoins(amount int) bool {
	if amount < 0 || gs.totalCoins < amount {
		return false
	}
	gs.totalCoins -= amount
	gs.listeners.OnCoinsChanged(gs.totalCoins)
	gs.persist()
	return true
}

// AnnounceOutcome 向监听者通知胜负，每局最多一次
//
// 返回：
//   - bool: 本次是否发出了通知
func (gs *GameState) AnnounceOutcome() bool {
	if !gs.state.IsTerminal() || gs.announced {
		return false
	}
	gs.announced = true
	if gs.state == StateWon {
		gs.listeners.OnWon(gs.currentLevel)
	} else {
		gs.listeners.OnLost(gs.currentLevel)
	}
	return true
}

// DigAt 挖掘网格并结算
// 只有 CanDig 为真时才修改网格；成功时通知方块移除
//
// 返回：
//   - grid.DigResult: 网格挖掘结果（未挖掘时 Success 为 false）
func (gs *GameState) DigAt(coord types.CellCoord) grid.DigResult {
	if !gs.CanDig() {
		return grid.DigResult{Coord: coord, PieceID: grid.NoPiece}
	}
	result := gs.grid.Dig(coord)
	if !result.Success {
		return result
	}

	removed := types.BlockDirt
	if result.FoundCoin {
		removed = types.BlockCoin
	}
	gs.listeners.OnBlockRemoved(coord, removed)
	gs.RecordDig(result)
	return result
}

// spendAxe 扣一把斧头并通知，不做胜负判定
func (gs *GameState) spendAxe() bool {
	if !gs.CanDig() {
		return false
	}
	gs.axes--
	gs.listeners.OnAxesChanged(gs.axes)
	return true
}

// revealOne 露出计数加 1 并通知，不做胜负判定
func (gs *GameState) revealOne() bool {
	if gs.state != StateActive {
		return false
	}
	gs.revealed++
	gs.listeners.OnPieceRevealed(gs.revealed, gs.totalPieces)
	return true
}

// checkPieceProgress 用网格的积木统计核对露出计数和总数
// 网格按积木ID维护统计，计数器由逐次挖掘累加；两者不一致说明结算漏算或重算
//
// 返回：
//   - bool: 是否一致（不一致时记录警告，以计数器为准）
func (gs *GameState) checkPieceProgress() bool {
	revealed, total := gs.grid.PieceProgress(grid.LevelPiece)
	if revealed == gs.revealed && total == gs.totalPieces {
		return true
	}
	gs.log.WithFields(logrus.Fields{
		"level":        gs.currentLevel,
		"revealed":     gs.revealed,
		"gridRevealed": revealed,
		"total":        gs.totalPieces,
		"gridTotal":    total,
	}).Warn("piece counters diverged from grid")
	return false
}

// checkWin 全部积木露出时判胜，发放奖励并解锁下一关
func (gs *GameState) checkWin() bool {
	if gs.state != StateActive || gs.revealed < gs.totalPieces {
		return false
	}
	gs.state = StateWon
	gs.totalCoins += gs.rules.Economy.WinBonus
	gs.save.UnlockLevel(gs.currentLevel + 1)
	gs.persist()

	gs.log.WithFields(logrus.Fields{
		"level":      gs.currentLevel,
		"levelCoins": gs.levelCoins,
		"axesLeft":   gs.axes,
		"bonus":      gs.rules.Economy.WinBonus,
	}).Info("level won")
	gs.listeners.OnCoinsChanged(gs.totalCoins)
	return true
}

// checkLose 斧头用完且积木未全部露出时判负
func (gs *GameState) checkLose() bool {
	if gs.state != StateActive || gs.axes > 0 || gs.revealed >= gs.totalPieces {
		return false
	}
	gs.state = StateLost
	gs.persist()

	gs.log.WithFields(logrus.Fields{
		"level":    gs.currentLevel,
		"revealed": gs.revealed,
		"total":    gs.totalPieces,
	}).Info("level lost")
	return true
}

// Flush 立即保存进度（宿主退出或进入后台时调用）
// 待到账的斧头与扣款在同一次写入中保存
func (gs *GameState) Flush() error {
	gs.save.SetPendingAxes(gs.pendingAxes)
	return gs.save.SaveProgress(gs.currentLevel, gs.totalCoins)
}

// persist 保存进度，失败只记录警告
func (gs *GameState) persist() {
	if err := gs.Flush(); err != nil {
		gs.log.WithError(err).Warn("failed to save progress")
	}
}

// State 返回当前关卡状态
func (gs *GameState) State() LevelState { return gs.state }

// CurrentLevel 返回当前关卡号
func (gs *GameState) CurrentLevel() int { return gs.currentLevel }

// HighestLevel 返回最高解锁关卡
func (gs *GameState) HighestLevel() int { return gs.save.HighestLevel() }

// LevelCoins 返回本关收集的金币
func (gs *GameState) LevelCoins() int { return gs.levelCoins }

// AxesRemaining 返回剩余斧头
func (gs *GameState) AxesRemaining() int { return gs.axes }

// PendingAxes 返回计入下一次开局的已购斧头
func (gs *GameState) PendingAxes() int { return gs.pendingAxes }

// TotalPieces 返回本关积木格子总数
func (gs *GameState) TotalPieces() int { return gs.totalPieces }

// RevealedPieces 返回本关已露出的积木格子数
func (gs *GameState) RevealedPieces() int { return gs.revealed }

// Config 返回当前关卡配置
func (gs *GameState) Config() level.LevelConfig { return gs.config }

// Grid 返回关卡网格
func (gs *GameState) Grid() *grid.Grid { return gs.grid }

// Rules 返回游戏规则
func (gs *GameState) Rules() *config.GameRules { return gs.rules }

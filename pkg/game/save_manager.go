package game

import (
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/logger"
)

// 进度存档键
const (
	KeyCurrentLevel = "CurrentLevel"
	KeyTotalCoins   = "TotalCoins"
	KeyHighestLevel = "HighestLevel"
	KeyLevelSeed    = "LevelSeed"
	KeyLevelSeedFor = "LevelSeedLevel"
	KeyPendingAxes  = "PendingAxes"
)

// SaveManager 进度存档管理器
//
// 职责：
//   - 读写当前关卡、累计金币、最高解锁关卡
//   - 记录当前关卡的生成种子，重启后重试同一关得到同一布局
//   - 记录关卡结束后购买的斧头，重启后重试时仍能到账
//
// 架构说明：
//   - 以 Prefs 为后端，每个值一个键
//   - 由 GameState 持有并调用，不直接与宿主交互
type SaveManager struct {
	prefs *Prefs
	log   logrus.FieldLogger
}

// NewSaveManager 创建存档管理器
//
// 参数：
//   - prefs: 偏好存储
//   - log: 日志器（可为 nil）
func NewSaveManager(prefs *Prefs, log logrus.FieldLogger) *SaveManager {
	return &SaveManager{
		prefs: prefs,
		log:   logger.Component(log, "SaveManager"),
	}
}

// CurrentLevel 返回当前关卡，默认 1
func (sm *SaveManager) CurrentLevel() int {
	return max(sm.prefs.GetInt(KeyCurrentLevel, 1), 1)
}

// TotalCoins 返回累计金币，默认 0
func (sm *SaveManager) TotalCoins() int {
	return max(sm.prefs.GetInt(KeyTotalCoins, 0), 0)
}

// HighestLevel 返回最高解锁关卡，默认 1
func (sm *SaveManager) HighestLevel() int {
	return max(sm.prefs.GetInt(KeyHighestLevel, 1), 1)
}

// UnlockLevel 将最高解锁关卡提升到 level（只升不降）
func (sm *SaveManager) UnlockLevel(level int) {
	if level > sm.HighestLevel() {
		sm.prefs.SetInt(KeyHighestLevel, level)
	}
}

// LevelSeed 返回为指定关卡记录的生成种子
//
// 返回：
//   - uint64: 种子
//   - bool: 是否存在该关卡的种子记录
func (sm *SaveManager) LevelSeed(level int) (uint64, bool) {
	if sm.prefs.GetInt(KeyLevelSeedFor, 0) != level {
		return 0, false
	}
	return sm.prefs.GetUint64(KeyLevelSeed)
}

// SetLevelSeed 记录关卡的生成种子
func (sm *SaveManager) SetLevelSeed(level int, seed uint64) {
	sm.prefs.SetInt(KeyLevelSeedFor, level)
	sm.prefs.SetUint64(KeyLevelSeed, seed)
}

// PendingAxes 返回已付款但尚未计入关卡的斧头数，默认 0
func (sm *SaveManager) PendingAxes() int {
	return max(sm.prefs.GetInt(KeyPendingAxes, 0), 0)
}

// SetPendingAxes 记录已付款但尚未计入关卡的斧头数
func (sm *SaveManager) SetPendingAxes(n int) {
	sm.prefs.SetInt(KeyPendingAxes, max(n, 0))
}

// SaveProgress 保存当前关卡与累计金币，并确保最高关卡不低于当前关卡
//
// 返回：
//   - error: 写入存储失败时返回错误
func (sm *SaveManager) SaveProgress(currentLevel, totalCoins int) error {
	sm.prefs.SetInt(KeyCurrentLevel, currentLevel)
	sm.prefs.SetInt(KeyTotalCoins, totalCoins)
	sm.UnlockLevel(currentLevel)

	if err := sm.prefs.Save(); err != nil {
		return err
	}
	sm.log.WithFields(logrus.Fields{
		"level":   currentLevel,
		"coins":   totalCoins,
		"highest": sm.HighestLevel(),
	}).Debug("progress saved")
	return nil
}

// Flush 将未保存的修改写入存储
func (sm *SaveManager) Flush() error {
	return sm.prefs.Save()
}

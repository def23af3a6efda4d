// Package scenes 提供 ebiten 宿主的场景：加载、主页和关卡
package scenes

import (
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/systems"
)

const (
	// ScreenWidth 逻辑屏幕宽度（竖屏）
	ScreenWidth = 360
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 640
)

// Services 场景共享的游戏服务
// 由 app 包创建一次，所有场景持有同一实例
type Services struct {
	Rules    *config.GameRules
	State    *game.GameState
	World    *systems.World
	Shop     *game.CharacterShop
	Settings *game.SettingsManager
	Audio    *game.AudioManager // 可为 nil（无音频设备）
	Scenes   *game.SceneManager
	Outcome  *OutcomeTracker
	Log      logrus.FieldLogger
}

// playSound 播放音效（无音频管理器时忽略）
func (s *Services) playSound(id game.SoundID) {
	if s.Audio != nil {
		s.Audio.PlaySound(id)
	}
}

// NewFactory 返回按场景ID创建场景的工厂
func NewFactory(s *Services) game.SceneFactory {
	return func(id game.SceneID) game.Scene {
		switch id {
		case game.SceneLoading:
			return NewLoadingScene(s)
		case game.SceneHome:
			return NewHomeScene(s)
		case game.SceneGame:
			return NewGameScene(s)
		default:
			return nil
		}
	}
}

// Panel 关卡结束后显示的面板
type Panel int

const (
	PanelNone Panel = iota // 无面板
	PanelWon               // 胜利面板
	PanelLost              // 失败面板
)

// OutcomeTracker 记录最近一次胜负通知，供关卡场景决定显示哪个面板
// 关卡开始（含重试）时清除
type OutcomeTracker struct {
	game.NopListener

	panel Panel
	level int
	log   logrus.FieldLogger
}

// NewOutcomeTracker 创建胜负面板状态
func NewOutcomeTracker(log logrus.FieldLogger) *OutcomeTracker {
	return &OutcomeTracker{log: logger.Component(log, "OutcomeTracker")}
}

func (o *OutcomeTracker) OnLevelStarted(int, int, int) { o.panel = PanelNone }

func (o *OutcomeTracker) OnWon(level int) {
	o.panel, o.level = PanelWon, level
	o.log.WithField("level", level).Debug("show win panel")
}

func (o *OutcomeTracker) OnLost(level int) {
	o.panel, o.level = PanelLost, level
	o.log.WithField("level", level).Debug("show lose panel")
}

// Panel 返回当前面板
func (o *OutcomeTracker) Panel() Panel { return o.panel }

// Level 返回面板对应的关卡
func (o *OutcomeTracker) Level() int { return o.level }

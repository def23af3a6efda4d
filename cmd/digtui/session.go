package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/scenes"
	"github.com/decker502/brickdigger/pkg/systems"
)

// messageDuration 提示信息显示时长
const messageDuration = 1500 * time.Millisecond

// session 终端宿主的一局游戏
// 与屏幕无关，渲染和按键读取由 main 负责
type session struct {
	state    *game.GameState
	world    *systems.World
	settings *game.SettingsManager
	outcome  *scenes.OutcomeTracker
	keys     keyInput
	paused   bool

	message      string
	messageUntil time.Time

	log logrus.FieldLogger
}

func newSession(gs *game.GameState, world *systems.World, settings *game.SettingsManager, outcome *scenes.OutcomeTracker, log logrus.FieldLogger) *session {
	return &session{
		state:    gs,
		world:    world,
		settings: settings,
		outcome:  outcome,
		log:      logger.Component(log, "Session"),
	}
}

// Tick 推进一帧；暂停时模拟时间静止，有结算面板时移动输入被忽略
func (s *session) Tick(dt float64, now time.Time) {
	in := s.keys.Frame(now)
	if s.paused {
		return
	}
	if s.outcome.Panel() != scenes.PanelNone {
		in = systems.InputFrame{}
	}
	s.world.Update(dt, in)
}

// Apply 执行非移动命令，返回 false 表示退出
func (s *session) Apply(cmd Command, now time.Time) bool {
	switch cmd {
	case CommandQuit:
		return false
	case CommandNext:
		if s.outcome.Panel() == scenes.PanelWon {
			s.keys.Reset()
			s.state.NextLevel()
		}
	case CommandRetry:
		if s.outcome.Panel() == scenes.PanelLost {
			s.keys.Reset()
			s.state.RestartLevel()
		}
	case CommandBuyAxes:
		s.buyAxes(now)
	case CommandPause:
		s.togglePause()
	case CommandToggleSound:
		if s.settings.ToggleSound() {
			s.show("SOUND ON", now)
		} else {
			s.show("SOUND OFF", now)
		}
	}
	return true
}

// togglePause 切换暂停；结算面板显示时不能暂停
func (s *session) togglePause() {
	if !s.paused && s.outcome.Panel() != scenes.PanelNone {
		return
	}
	s.paused = !s.paused
	s.keys.Reset()
	s.log.WithFields(logrus.Fields{
		"paused": s.paused,
		"level":  s.state.CurrentLevel(),
	}).Debug("pause toggled")
}

// Paused 是否处于暂停
func (s *session) Paused() bool {
	return s.paused
}

func (s *session) buyAxes(now time.Time) {
	if !s.state.BuyAxes() {
		s.show("NOT ENOUGH COINS", now)
		return
	}
	amount := s.state.Rules().Economy.AxePack
	if s.state.State() == game.StateActive {
		s.show(fmt.Sprintf("+%d AXES", amount), now)
	} else {
		s.show(fmt.Sprintf("+%d AXES NEXT TRY", s.state.PendingAxes()), now)
	}
	s.log.WithField("coins", s.state.Coins()).Debug("axes bought")
}

func (s *session) show(msg string, now time.Time) {
	s.message = msg
	s.messageUntil = now.Add(messageDuration)
}

// Message 返回仍在显示期内的提示信息
func (s *session) Message(now time.Time) string {
	if now.Before(s.messageUntil) {
		return s.message
	}
	return ""
}

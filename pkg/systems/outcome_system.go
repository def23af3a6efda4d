package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/components"
	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/logger"
)

// OutcomeSystem 胜负通知延迟
// 状态机在判定时立即进入 Won/Lost，本系统在延迟结束后才通知监听者
type OutcomeSystem struct {
	gameState *game.GameState
	delay     float64
	timer     components.TimerComponent
	log       logrus.FieldLogger
}

// NewOutcomeSystem 创建胜负通知系统
func NewOutcomeSystem(gs *game.GameState, delay float64, log logrus.FieldLogger) *OutcomeSystem {
	return &OutcomeSystem{
		gameState: gs,
		delay:     delay,
		timer:     components.TimerComponent{Name: "outcome"},
		log:       logger.Component(log, "OutcomeSystem"),
	}
}

// Update 关卡进入终止状态后开始计时，到时通知一次
func (s *OutcomeSystem) Update(deltaTime float64) {
	state := s.gameState.State()
	if !state.IsTerminal() {
		s.timer.Stop()
		return
	}
	if !s.timer.Running && !s.timer.IsReady {
		s.timer.Start(s.delay)
		return
	}
	if s.timer.Advance(deltaTime) && s.gameState.AnnounceOutcome() {
		s.log.WithField("state", state.String()).Debug("outcome announced")
	}
}

// Pending 终止状态已确定但尚未通知
func (s *OutcomeSystem) Pending() bool {
	return s.timer.Running
}

// Reset 停止计时
func (s *OutcomeSystem) Reset() {
	s.timer.Stop()
}

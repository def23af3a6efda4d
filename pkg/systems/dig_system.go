package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/components"
	"github.com/decker502/brickdigger/pkg/ecs"
	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/types"
)

// DigSystem 挖掘动作
//
// 流程：请求 -> 挖掘动作（DigDuration）-> 结算 -> 冷却（DigCooldown）-> 就绪。
// 请求会被保留，直到玩家着地且不在动作或冷却中才被消耗；
// 消耗时若状态机不允许挖掘则直接丢弃。挖掘目标是开始动作时玩家所在的格子。
type DigSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	player        ecs.EntityID

	digDuration float64
	cooldown    float64
	digTimer    components.TimerComponent
	coolTimer   components.TimerComponent

	requested bool
	target    types.CellCoord
	log       logrus.FieldLogger
}

// NewDigSystem 创建挖掘系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 进度状态机
//   - digDuration: 挖掘动作时长（秒）
//   - cooldown: 挖掘后的冷却（秒）
//   - log: 日志器（可为 nil）
func NewDigSystem(em *ecs.EntityManager, gs *game.GameState, digDuration, cooldown float64, log logrus.FieldLogger) *DigSystem {
	return &DigSystem{
		entityManager: em,
		gameState:     gs,
		digDuration:   digDuration,
		cooldown:      cooldown,
		digTimer:      components.TimerComponent{Name: "dig"},
		coolTimer:     components.TimerComponent{Name: "dig_cooldown"},
		log:           logger.Component(log, "DigSystem"),
	}
}

// SetPlayer 设置执行挖掘的玩家实体
func (s *DigSystem) SetPlayer(id ecs.EntityID) {
	s.player = id
}

// Update 推进挖掘流程
func (s *DigSystem) Update(deltaTime float64, in InputFrame) {
	if in.Dig {
		s.requested = true
	}

	player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	if !ok {
		return
	}

	if s.digTimer.Running {
		if s.digTimer.Advance(deltaTime) {
			s.finish(player)
		}
		return
	}
	if s.coolTimer.Running && !s.coolTimer.Advance(deltaTime) {
		return
	}

	if !s.requested || !player.Grounded {
		return
	}
	s.requested = false

	if !s.gameState.CanDig() {
		s.log.WithField("axes", s.gameState.AxesRemaining()).Debug("dig request dropped")
		return
	}

	s.target = player.Cell()
	player.Digging = true
	s.digTimer.Start(s.digDuration)
}

// finish 动作结束：挖掘目标格子并进入冷却
func (s *DigSystem) finish(player *components.PlayerComponent) {
	result := s.gameState.DigAt(s.target)
	player.Digging = false
	s.coolTimer.Start(s.cooldown)

	s.log.WithFields(logrus.Fields{
		"coord":   s.target.String(),
		"success": result.Success,
		"coin":    result.FoundCoin,
		"piece":   result.FoundPiece,
	}).Debug("dig finished")
}

// IsDigging 是否在挖掘动作中
func (s *DigSystem) IsDigging() bool {
	return s.digTimer.Running
}

// Ready 是否可以开始新的挖掘（不在动作或冷却中）
func (s *DigSystem) Ready() bool {
	return !s.digTimer.Running && !s.coolTimer.Running
}

// Progress 当前挖掘动作的完成比例
func (s *DigSystem) Progress() float64 {
	if !s.digTimer.Running {
		return 0
	}
	return s.digTimer.Progress()
}

// Reset 中断挖掘流程（关卡开始时调用）
func (s *DigSystem) Reset() {
	s.digTimer.Stop()
	s.coolTimer.Stop()
	s.requested = false
	if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player); ok {
		player.Digging = false
	}
}

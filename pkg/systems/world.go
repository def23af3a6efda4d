package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/components"
	"github.com/decker502/brickdigger/pkg/ecs"
	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/logger"
)

// World 单关卡的模拟世界
//
// 持有实体管理器和全部系统，宿主每帧调用一次 Update。
// 世界作为监听者注册到 GameState：每次关卡开始（含重试、下一关）时
// 清理效果实体、重置挖掘与胜负计时并把玩家放回出生点。
type World struct {
	game.NopListener

	entityManager *ecs.EntityManager
	gameState     *game.GameState
	player        ecs.EntityID

	Movement *MovementSystem
	Dig      *DigSystem
	Outcome  *OutcomeSystem
	Effects  *BlockEffectSystem
	Lifetime *LifetimeSystem

	log logrus.FieldLogger
}

// NewWorld 创建模拟世界并注册到进度状态机
//
// 参数：
//   - gs: 进度状态机
//   - log: 日志器（可为 nil）
func NewWorld(gs *game.GameState, log logrus.FieldLogger) *World {
	em := ecs.NewEntityManager()
	timing := gs.Rules().Timing

	w := &World{
		entityManager: em,
		gameState:     gs,
		Movement:      NewMovementSystem(em, gs.Grid(), gs.Rules(), log),
		Dig:           NewDigSystem(em, gs, timing.DigDuration, timing.DigCooldown, log),
		Outcome:       NewOutcomeSystem(gs, timing.OutcomeDelay, log),
		Effects:       NewBlockEffectSystem(em, timing.BreakDuration),
		Lifetime:      NewLifetimeSystem(em),
		log:           logger.Component(log, "World"),
	}
	w.spawnPlayer()
	w.Movement.Spawn(w.Player())

	gs.AddListener(w.Effects)
	gs.AddListener(w)
	return w
}

// spawnPlayer 创建玩家实体
func (w *World) spawnPlayer() {
	w.player = w.entityManager.CreateEntity()
	w.entityManager.AddComponent(w.player, &components.PlayerComponent{Character: 1})
	w.Dig.SetPlayer(w.player)
}

// OnLevelStarted 关卡开始时重置世界
func (w *World) OnLevelStarted(level, axes, totalPieces int) {
	character := 1
	if p := w.Player(); p != nil {
		character = p.Character
	}

	w.entityManager.Clear()
	w.spawnPlayer()
	w.Player().Character = character
	w.Movement.Spawn(w.Player())
	w.Dig.Reset()
	w.Outcome.Reset()

	w.log.WithFields(logrus.Fields{
		"level": level,
		"spawn": w.Player().Cell().String(),
	}).Debug("world reset")
}

// Update 推进一帧
// 顺序：移动、挖掘、胜负通知、效果寿命、效果缩放、清理实体
func (w *World) Update(deltaTime float64, in InputFrame) {
	if w.gameState.State() == game.StateIdle {
		return
	}
	w.Movement.Update(deltaTime, in)
	w.Dig.Update(deltaTime, in)
	w.Outcome.Update(deltaTime)
	w.Lifetime.Update(deltaTime)
	w.Effects.Update(deltaTime)
	w.entityManager.RemoveMarkedEntities()
}

// Player 返回玩家组件
func (w *World) Player() *components.PlayerComponent {
	player, ok := ecs.GetComponent[*components.PlayerComponent](w.entityManager, w.player)
	if !ok {
		return nil
	}
	return player
}

// SetCharacter 设置玩家外观
func (w *World) SetCharacter(idx int) {
	if p := w.Player(); p != nil {
		p.Character = idx
	}
}

// GameState 返回进度状态机
func (w *World) GameState() *game.GameState {
	return w.gameState
}

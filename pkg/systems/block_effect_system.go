package systems

import (
	"github.com/decker502/brickdigger/pkg/components"
	"github.com/decker502/brickdigger/pkg/ecs"
	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/types"
)

// BlockEffect 渲染层消费的破碎效果快照
type BlockEffect struct {
	Coord types.CellCoord
	Block types.BlockType
	Scale float64 // 从 1 线性缩小到 0
}

// BlockEffectSystem 方块破碎效果
// 监听方块移除事件创建效果实体，每帧按剩余寿命更新缩放；
// 过期清理由 LifetimeSystem 负责
type BlockEffectSystem struct {
	game.NopListener

	entityManager *ecs.EntityManager
	duration      float64
}

// NewBlockEffectSystem 创建破碎效果系统
//
// 参数：
//   - em: 实体管理器
//   - duration: 效果时长（秒）
func NewBlockEffectSystem(em *ecs.EntityManager, duration float64) *BlockEffectSystem {
	return &BlockEffectSystem{
		entityManager: em,
		duration:      duration,
	}
}

// OnBlockRemoved 为被挖掉的方块创建破碎效果实体
func (s *BlockEffectSystem) OnBlockRemoved(coord types.CellCoord, block types.BlockType) {
	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.BlockEffectComponent{Coord: coord, Block: block})
	s.entityManager.AddComponent(id, &components.LifetimeComponent{MaxLifetime: s.duration})
	s.entityManager.AddComponent(id, &components.ScaleComponent{ScaleX: 1, ScaleY: 1})
}

// Update 按剩余寿命更新缩放
func (s *BlockEffectSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.BlockEffectComponent, *components.LifetimeComponent](s.entityManager) {
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id)
		if !ok {
			continue
		}
		remaining := lifetime.Remaining()
		scale.ScaleX, scale.ScaleY = remaining, remaining
	}
}

// Effects 返回当前所有未过期的破碎效果
func (s *BlockEffectSystem) Effects() []BlockEffect {
	ids := ecs.GetEntitiesWith2[*components.BlockEffectComponent, *components.ScaleComponent](s.entityManager)
	effects := make([]BlockEffect, 0, len(ids))
	for _, id := range ids {
		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok && lifetime.IsExpired {
			continue
		}
		effect, _ := ecs.GetComponent[*components.BlockEffectComponent](s.entityManager, id)
		scale, _ := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id)
		effects = append(effects, BlockEffect{Coord: effect.Coord, Block: effect.Block, Scale: scale.ScaleX})
	}
	return effects
}

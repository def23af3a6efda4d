package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/components"
	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/ecs"
	"github.com/decker502/brickdigger/pkg/grid"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/types"
)

const (
	// groundedVelocity 着地时保持的向下速度，让角色贴住地面
	groundedVelocity = -2.0
	// lookAhead 自动跳跃检测的前探距离（格）
	lookAhead = 0.6
	// heightEpsilon 高度比较容差
	heightEpsilon = 1e-6
)

// MovementSystem 玩家运动学
//
// 不使用物理引擎：
//   - 平面移动按 MoveSpeed 推进，位置限制在网格内
//   - 进入比脚底更高的格子（从基岩走向泥土）会被阻挡，除非已跳到其顶面之上
//   - 站在基岩上并朝泥土/金币方块移动时自动起跳
//   - 竖直方向受重力作用，落到 StandingHeight 时着地
//   - 挖掘动作中不移动
type MovementSystem struct {
	entityManager *ecs.EntityManager
	grid          *grid.Grid
	rules         config.MovementRules
	jumpVelocity  float64
	jumpRequested bool
	log           logrus.FieldLogger
}

// NewMovementSystem 创建运动系统
//
// 参数：
//   - em: 实体管理器
//   - g: 关卡网格
//   - rules: 游戏规则（为 nil 时使用默认规则）
//   - log: 日志器（可为 nil）
func NewMovementSystem(em *ecs.EntityManager, g *grid.Grid, rules *config.GameRules, log logrus.FieldLogger) *MovementSystem {
	if rules == nil {
		rules = config.DefaultGameRules()
	}
	mv := rules.Movement
	return &MovementSystem{
		entityManager: em,
		grid:          g,
		rules:         mv,
		jumpVelocity:  math.Sqrt(mv.JumpForce * -2 * mv.Gravity),
		log:           logger.Component(log, "MovementSystem"),
	}
}

// JumpVelocity 返回起跳初速度 sqrt(JumpForce * -2 * Gravity)
func (s *MovementSystem) JumpVelocity() float64 {
	return s.jumpVelocity
}

// Spawn 将玩家放到网格中心 (width/2, height/2) 并站在该格表面
func (s *MovementSystem) Spawn(player *components.PlayerComponent) {
	cell := types.C(s.grid.Width()/2, s.grid.Height()/2)
	player.PlaceAt(cell, s.grid.StandingHeight(cell))
	s.jumpRequested = false
}

// Update 推进所有玩家实体
func (s *MovementSystem) Update(deltaTime float64, in InputFrame) {
	if in.Jump {
		s.jumpRequested = true
	}
	for _, id := range ecs.GetEntitiesWith1[*components.PlayerComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		s.updatePlayer(player, deltaTime, in)
	}
}

func (s *MovementSystem) updatePlayer(p *components.PlayerComponent, dt float64, in InputFrame) {
	if p.Digging || s.grid.Width() == 0 || s.grid.Height() == 0 {
		return
	}

	if dx, dy, magnitude := in.Direction(); magnitude > 0 {
		p.FacingX, p.FacingY = dx, dy
		s.autoJump(p, dx, dy)

		step := s.rules.MoveSpeed * magnitude * dt
		s.moveAxis(p, dx*step, 0)
		s.moveAxis(p, 0, dy*step)
	}

	if s.jumpRequested && p.Grounded {
		s.jump(p)
		s.jumpRequested = false
	}

	if p.Grounded && p.VelocityY < 0 {
		p.VelocityY = groundedVelocity
	} else {
		p.VelocityY += s.rules.Gravity * dt
	}
	p.Height += p.VelocityY * dt

	ground := s.grid.StandingHeight(p.Cell())
	if p.Height <= ground {
		p.Height = ground
		p.Grounded = true
		if p.VelocityY < 0 {
			p.VelocityY = groundedVelocity
		}
	} else {
		p.Grounded = false
	}
}

// autoJump 站在基岩上且前方是实心顶层方块时起跳
func (s *MovementSystem) autoJump(p *components.PlayerComponent, dx, dy float64) {
	if !p.Grounded {
		return
	}
	cell := p.Cell()
	if s.grid.TopAt(cell) != types.BlockAir {
		return
	}
	ahead := types.C(int(math.Round(p.X+dx*lookAhead)), int(math.Round(p.Y+dy*lookAhead)))
	if ahead.Equal(cell) || !s.grid.TopAt(ahead).IsSolidTop() {
		return
	}
	s.log.WithFields(logrus.Fields{"from": cell.String(), "to": ahead.String()}).Debug("auto jump")
	s.jump(p)
}

func (s *MovementSystem) jump(p *components.PlayerComponent) {
	p.VelocityY = s.jumpVelocity
	p.Grounded = false
}

// moveAxis 沿单一轴移动，目标格子高于脚底时不移动
func (s *MovementSystem) moveAxis(p *components.PlayerComponent, dx, dy float64) {
	nx := clamp(p.X+dx, 0, float64(s.grid.Width()-1))
	ny := clamp(p.Y+dy, 0, float64(s.grid.Height()-1))
	target := types.C(int(math.Round(nx)), int(math.Round(ny)))

	if !target.Equal(p.Cell()) && s.grid.StandingHeight(target) > p.Height+heightEpsilon {
		return
	}
	p.X, p.Y = nx, ny
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

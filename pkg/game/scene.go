package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneID 场景标识
type SceneID int

const (
	SceneLoading SceneID = iota // 加载
	SceneHome                   // 主页（开始、商店、设置）
	SceneGame                   // 关卡
)

func (id SceneID) String() string {
	switch id {
	case SceneLoading:
		return "loading"
	case SceneHome:
		return "home"
	case SceneGame:
		return "game"
	default:
		return "unknown"
	}
}

// Scene represents a game scene (loading, home, gameplay).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 移动端进入后台
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}

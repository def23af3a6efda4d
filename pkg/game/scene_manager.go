package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/logger"
)

// SceneFactory 场景工厂函数类型
// 用于按ID创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(id SceneID) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentID    SceneID
	sceneFactory SceneFactory
	log          logrus.FieldLogger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Load to set the initial scene.
func NewSceneManager(log logrus.FieldLogger) *SceneManager {
	return &SceneManager{
		log: logger.Component(log, "SceneManager"),
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(id SceneID, scene Scene) {
	sm.currentID = id
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentID 返回当前场景ID
func (sm *SceneManager) CurrentID() SceneID {
	return sm.currentID
}

// Load 通过工厂创建并切换到指定场景
//
// 返回：
//   - bool: 是否切换成功（工厂未设置或返回 nil 时为 false）
func (sm *SceneManager) Load(id SceneID) bool {
	if sm.sceneFactory == nil {
		sm.log.WithField("scene", id.String()).Error("scene factory not set")
		return false
	}

	scene := sm.sceneFactory(id)
	if scene == nil {
		sm.log.WithField("scene", id.String()).Error("factory returned no scene")
		return false
	}
	sm.SwitchTo(id, scene)
	sm.log.WithField("scene", id.String()).Debug("scene switched")
	return true
}

// SaveCurrent 若当前场景实现 Saveable 则保存
func (sm *SceneManager) SaveCurrent() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

package game

import (
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/logger"
)

// 设置存档键（以 1/0 整数存储）
const (
	KeySettingsSound   = "Settings_Sound"
	KeySettingsMusic   = "Settings_Music"
	KeySettingsHaptics = "Settings_Haptics"
)

// GameSettings 全局游戏设置
// 注意：这些设置是全局的，不绑定到存档进度
type GameSettings struct {
	SoundEnabled   bool // 音效开关
	MusicEnabled   bool // 音乐开关
	HapticsEnabled bool // 震动开关
}

// DefaultSettings 返回默认设置（全部开启）
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundEnabled:   true,
		MusicEnabled:   true,
		HapticsEnabled: true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和变更通知
type SettingsManager struct {
	prefs    *Prefs
	settings *GameSettings
	onChange []func(*GameSettings)
	log      logrus.FieldLogger
}

// NewSettingsManager 创建设置管理器并从 Prefs 加载设置
//
// 参数：
//   - prefs: 偏好存储
//   - log: 日志器（可为 nil）
func NewSettingsManager(prefs *Prefs, log logrus.FieldLogger) *SettingsManager {
	sm := &SettingsManager{
		prefs:    prefs,
		settings: DefaultSettings(),
		log:      logger.Component(log, "SettingsManager"),
	}
	sm.Load()
	return sm
}

// Load 从 Prefs 读取设置，缺失的键视为开启
func (sm *SettingsManager) Load() {
	sm.settings = &GameSettings{
		SoundEnabled:   sm.prefs.GetBool(KeySettingsSound, true),
		MusicEnabled:   sm.prefs.GetBool(KeySettingsMusic, true),
		HapticsEnabled: sm.prefs.GetBool(KeySettingsHaptics, true),
	}
}

// Save 将设置写入 Prefs 并持久化
//
// 返回：
//   - error: 持久化失败时返回错误
func (sm *SettingsManager) Save() error {
	sm.prefs.SetBool(KeySettingsSound, sm.settings.SoundEnabled)
	sm.prefs.SetBool(KeySettingsMusic, sm.settings.MusicEnabled)
	sm.prefs.SetBool(KeySettingsHaptics, sm.settings.HapticsEnabled)
	return sm.prefs.Save()
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// OnChange 注册设置变更回调（切换开关后调用）
func (sm *SettingsManager) OnChange(fn func(*GameSettings)) {
	sm.onChange = append(sm.onChange, fn)
}

// ToggleSound 切换音效开关并保存
func (sm *SettingsManager) ToggleSound() bool {
	sm.settings.SoundEnabled = !sm.settings.SoundEnabled
	sm.commit("sound", sm.settings.SoundEnabled)
	return sm.settings.SoundEnabled
}

// ToggleMusic 切换音乐开关并保存
func (sm *SettingsManager) ToggleMusic() bool {
	sm.settings.MusicEnabled = !sm.settings.MusicEnabled
	sm.commit("music", sm.settings.MusicEnabled)
	return sm.settings.MusicEnabled
}

// ToggleHaptics 切换震动开关并保存
func (sm *SettingsManager) ToggleHaptics() bool {
	sm.settings.HapticsEnabled = !sm.settings.HapticsEnabled
	sm.commit("haptics", sm.settings.HapticsEnabled)
	return sm.settings.HapticsEnabled
}

// commit 保存设置并通知监听者，保存失败只记录警告
func (sm *SettingsManager) commit(name string, enabled bool) {
	if err := sm.Save(); err != nil {
		sm.log.WithError(err).Warn("failed to save settings")
	}
	sm.log.WithFields(logrus.Fields{"setting": name, "enabled": enabled}).Debug("setting toggled")
	for _, fn := range sm.onChange {
		fn(sm.settings)
	}
}

package game

import "testing"

// TestDefaultSettings 测试 DefaultSettings() 全部开启
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if !settings.MusicEnabled {
		t.Error("MusicEnabled: got false, want true")
	}
	if !settings.HapticsEnabled {
		t.Error("HapticsEnabled: got false, want true")
	}
}

// TestSettingsManager_MissingKeysDefaultOn 测试空存储时设置为开启
func TestSettingsManager_MissingKeysDefaultOn(t *testing.T) {
	sm := NewSettingsManager(NewPrefs(nil, nil), nil)

	s := sm.GetSettings()
	if !s.SoundEnabled || !s.MusicEnabled || !s.HapticsEnabled {
		t.Errorf("settings: got %+v, want all enabled", *s)
	}
}

// TestSettingsManager_Toggle 测试切换开关会写入 1/0 并通知监听者
func TestSettingsManager_Toggle(t *testing.T) {
	prefs := NewPrefs(nil, nil)
	sm := NewSettingsManager(prefs, nil)

	notified := 0
	sm.OnChange(func(*GameSettings) { notified++ })

	if sm.ToggleSound() {
		t.Error("ToggleSound: got true, want false")
	}
	if got := prefs.GetInt(KeySettingsSound, -1); got != 0 {
		t.Errorf("%s: got %d, want 0", KeySettingsSound, got)
	}
	if sm.ToggleMusic() {
		t.Error("ToggleMusic: got true, want false")
	}
	if sm.ToggleHaptics() {
		t.Error("ToggleHaptics: got true, want false")
	}
	if !sm.ToggleHaptics() {
		t.Error("second ToggleHaptics: got false, want true")
	}
	if got := prefs.GetInt(KeySettingsHaptics, -1); got != 1 {
		t.Errorf("%s: got %d, want 1", KeySettingsHaptics, got)
	}
	if notified != 4 {
		t.Errorf("notifications: got %d, want 4", notified)
	}
}

// TestSettingsManager_Persist 测试设置跨重启保留
func TestSettingsManager_Persist(t *testing.T) {
	open := openTestGdata(t)

	sm := NewSettingsManager(NewPrefs(open(), nil), nil)
	sm.ToggleMusic()

	restarted := NewSettingsManager(NewPrefs(open(), nil), nil)
	s := restarted.GetSettings()
	if s.MusicEnabled {
		t.Error("MusicEnabled: got true, want false after restart")
	}
	if !s.SoundEnabled {
		t.Error("SoundEnabled: got false, want true after restart")
	}
}

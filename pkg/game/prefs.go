package game

import (
	"fmt"
	"strconv"

	"github.com/quasilyte/gdata/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/decker502/brickdigger/pkg/logger"
)

// 存储路径常量
const (
	prefsObject   = "prefs"
	prefsProperty = "values"
)

// Prefs 键值偏好存储
//
// 所有键值保存在内存中，Save() 时作为一个 YAML 文档写入 gdata。
// 后写覆盖先写，无版本。
//
// gdataManager 为 nil 时进入降级模式：仅内存存储，Save() 不报错。
type Prefs struct {
	gdataManager *gdata.Manager
	values       map[string]string
	dirty        bool
	log          logrus.FieldLogger
}

// NewPrefs 创建偏好存储并尝试加载已保存的数据
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//   - log: 日志器（可为 nil）
//
// 返回：
//   - *Prefs: 偏好存储实例（加载失败时为空存储，不返回错误）
func NewPrefs(gdataManager *gdata.Manager, log logrus.FieldLogger) *Prefs {
	p := &Prefs{
		gdataManager: gdataManager,
		values:       make(map[string]string),
		log:          logger.Component(log, "Prefs"),
	}
	if err := p.Load(); err != nil {
		// 加载失败不是致命错误，使用空存储
		p.log.WithError(err).Warn("failed to load prefs, using empty store")
	}
	return p
}

// Load 从 gdata 重新加载所有键值，丢弃未保存的修改
func (p *Prefs) Load() error {
	p.values = make(map[string]string)
	p.dirty = false

	if p.gdataManager == nil {
		return nil
	}
	if !p.gdataManager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	data, err := p.gdataManager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load prefs: %w", err)
	}

	var loaded map[string]string
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal prefs: %w", err)
	}
	if loaded != nil {
		p.values = loaded
	}
	p.log.WithField("keys", len(p.values)).Debug("prefs loaded")
	return nil
}

// Save 将所有键值写入 gdata
// 降级模式或无修改时直接返回 nil
func (p *Prefs) Save() error {
	if p.gdataManager == nil || !p.dirty {
		return nil
	}

	data, err := yaml.Marshal(p.values)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := p.gdataManager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}

	p.dirty = false
	p.log.WithField("keys", len(p.values)).Debug("prefs saved")
	return nil
}

// HasKey 判断键是否存在
func (p *Prefs) HasKey(key string) bool {
	_, ok := p.values[key]
	return ok
}

// DeleteKey 删除键（不存在时无操作）
func (p *Prefs) DeleteKey(key string) {
	if _, ok := p.values[key]; ok {
		delete(p.values, key)
		p.dirty = true
	}
}

// GetInt 读取整数，键不存在或无法解析时返回 def
func (p *Prefs) GetInt(key string, def int) int {
	s, ok := p.values[key]
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.log.WithFields(logrus.Fields{"key": key, "value": s}).Warn("pref is not an integer")
		return def
	}
	return v
}

// SetInt 写入整数
func (p *Prefs) SetInt(key string, value int) {
	p.SetString(key, strconv.Itoa(value))
}

// GetUint64 读取无符号 64 位整数，键不存在或无法解析时返回 (0, false)
func (p *Prefs) GetUint64(key string) (uint64, bool) {
	s, ok := p.values[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		p.log.WithFields(logrus.Fields{"key": key, "value": s}).Warn("pref is not an unsigned integer")
		return 0, false
	}
	return v, true
}

// SetUint64 写入无符号 64 位整数
func (p *Prefs) SetUint64(key string, value uint64) {
	p.SetString(key, strconv.FormatUint(value, 10))
}

// GetBool 读取以 1/0 存储的布尔值，键不存在时返回 def
func (p *Prefs) GetBool(key string, def bool) bool {
	defInt := 0
	if def {
		defInt = 1
	}
	return p.GetInt(key, defInt) == 1
}

// SetBool 以 1/0 写入布尔值
func (p *Prefs) SetBool(key string, value bool) {
	if value {
		p.SetInt(key, 1)
	} else {
		p.SetInt(key, 0)
	}
}

// GetString 读取字符串，键不存在时返回 def
func (p *Prefs) GetString(key, def string) string {
	if s, ok := p.values[key]; ok {
		return s
	}
	return def
}

// SetString 写入字符串
func (p *Prefs) SetString(key, value string) {
	if old, ok := p.values[key]; ok && old == value {
		return
	}
	p.values[key] = value
	p.dirty = true
}

// Package logger 构建游戏使用的结构化日志器
//
// 核心组件不使用全局日志器，而是通过构造函数注入 logrus.FieldLogger，
// 并用 "component" 字段标记日志来源。
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// 滚动日志文件参数
const (
	rotateMaxSizeMB  = 5
	rotateMaxBackups = 3
	rotateMaxAgeDays = 7
)

// New 创建日志器
//
// 参数：
//   - verbose: true 输出 Debug 级别，false 仅输出 Warn 及以上
//
// 返回：
//   - *logrus.Logger: 写入 stderr 的文本日志器
func New(verbose bool) *logrus.Logger {
	return NewWithOutput(os.Stderr, verbose)
}

// NewWithOutput 创建写入指定输出的日志器
func NewWithOutput(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	level := logrus.WarnLevel
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	return log
}

// NewRotatingFile 创建只写入滚动日志文件的日志器（终端宿主使用，避免破坏画面）
//
// 参数：
//   - path: 日志文件路径，超过大小上限后滚动
//   - verbose: true 输出 Debug 级别，false 仅输出 Warn 及以上
//
// 返回：
//   - *logrus.Logger: 日志器
//   - error: 创建文件钩子失败时返回错误
func NewRotatingFile(path string, verbose bool) (*logrus.Logger, error) {
	log := NewWithOutput(io.Discard, verbose)
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    rotateMaxSizeMB,
		MaxBackups: rotateMaxBackups,
		MaxAge:     rotateMaxAgeDays,
		Level:      log.GetLevel(),
		Formatter:  log.Formatter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create log file hook: %w", err)
	}
	log.AddHook(hook)
	return log, nil
}

// Discard 返回丢弃所有输出的日志器，用于测试和未注入日志器的场景
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Component 返回带 component 字段的日志入口
// logger 为 nil 时使用 Discard()
func Component(logger logrus.FieldLogger, name string) logrus.FieldLogger {
	if logger == nil {
		logger = Discard()
	}
	return logger.WithField("component", name)
}

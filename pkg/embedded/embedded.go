// Package embedded 提供嵌入数据文件的统一访问接口
//
// embed.FS 声明在 data 包中（与数据文件同目录），本包只保存其引用，
// 让其他包用 "data/..." 形式的路径读取，与磁盘上的相对路径一致。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// dataPrefix 数据文件路径前缀
const dataPrefix = "data/"

// ErrNotInitialized 未调用 Init() 时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置嵌入的数据文件系统
// 必须在 main() 开始时、任何数据加载之前调用
//
// 参数：
//   - data: 以 data/ 目录为根的文件系统（通常为 data.FS）
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// resolve 把 "data/..." 路径转换为 dataFS 内的路径
func resolve(name string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}

	// 标准化路径分隔符并移除 "./" 前缀
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")

	rel, ok := strings.CutPrefix(name, dataPrefix)
	if !ok {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with %q)", name, dataPrefix)
	}
	if rel == "" {
		rel = "."
	}
	return rel, nil
}

// Open 打开嵌入文件
func Open(name string) (fs.File, error) {
	rel, err := resolve(name)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(rel)
}

// ReadFile 读取嵌入文件内容
func ReadFile(name string) ([]byte, error) {
	rel, err := resolve(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, rel)
}

// Exists 检查文件是否存在
func Exists(name string) bool {
	rel, err := resolve(name)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, rel)
	return err == nil
}

// Glob 匹配嵌入文件，返回带 "data/" 前缀的路径
func Glob(pattern string) ([]string, error) {
	rel, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	matches, err := fs.Glob(dataFS, rel)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = path.Join(dataPrefix, m)
	}
	return matches, nil
}

// ReadDir 读取目录内容
func ReadDir(name string) ([]fs.DirEntry, error) {
	rel, err := resolve(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, rel)
}

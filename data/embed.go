// Package data 嵌入游戏数据文件
//
// //go:embed 只能嵌入当前包目录及其子目录的文件，
// 因此 embed.FS 声明在数据文件所在的目录中，桌面端、移动端和终端版共用。
package data

import "embed"

// FS 嵌入的数据文件，路径相对于 data/ 目录
//
//go:embed game_rules.yaml
var FS embed.FS

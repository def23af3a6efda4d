//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.brickdigger -o build/android/brickdigger.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/BrickDigger.xcframework -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/brickdigger/data"
	"github.com/decker502/brickdigger/pkg/app"
	"github.com/decker502/brickdigger/pkg/embedded"
	"github.com/decker502/brickdigger/pkg/logger"
)

var (
	gameApp *app.App
	log     = logger.New(true)
)

func init() {
	embedded.Init(data.FS)

	var err error
	gameApp, err = app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.WithError(err).Fatal("游戏初始化失败")
	}

	mobile.SetGame(gameApp)
}

// Suspend 在应用进入后台时由宿主调用，保存进度
func Suspend() {
	if gameApp == nil {
		return
	}
	if err := gameApp.Save(); err != nil {
		log.WithError(err).Warn("保存失败")
	}
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}

package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/brickdigger/data"
	"github.com/decker502/brickdigger/pkg/app"
	"github.com/decker502/brickdigger/pkg/embedded"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/scenes"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	levelFlag   = flag.Int("level", 0, "直接开始指定关卡（跳过加载和主页）")
	seedFlag    = flag.Uint64("seed", 0, "关卡生成种子（0 表示使用当前时间）")
	rulesFlag   = flag.String("rules", "", "规则文件路径（默认使用内置 data/game_rules.yaml）")
	skipLoading = flag.Bool("skip-loading", false, "跳过加载场景和主页，继续存档中的关卡")
)

func main() {
	flag.Parse()
	log := logger.New(*verbose)

	embedded.Init(data.FS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:          *verbose,
		Level:            *levelFlag,
		Seed:             *seedFlag,
		RulesPath:        *rulesFlag,
		SkipLoadingScene: *skipLoading,
	})
	if err != nil {
		log.WithError(err).Fatal("游戏初始化失败")
	}

	ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
	ebiten.SetWindowTitle("Brick Digger")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.WithError(err).Fatal("游戏异常退出")
	}
}

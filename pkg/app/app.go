// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/embedded"
	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/grid"
	"github.com/decker502/brickdigger/pkg/level"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/scenes"
	"github.com/decker502/brickdigger/pkg/systems"
	"github.com/decker502/brickdigger/pkg/utils"
)

// AppName gdata 存档使用的应用名
const AppName = "brickdigger"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 直接开始指定关卡（>0 时跳过加载和主页）
	Level int
	// Seed 关卡生成种子，0 表示使用当前时间
	Seed uint64
	// RulesPath 规则文件路径，为空时使用内置 data/game_rules.yaml
	RulesPath string
	// SkipLoadingScene 跳过加载场景和主页，直接继续存档中的关卡
	SkipLoadingScene bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	services     *scenes.Services
	sceneManager *game.SceneManager
	verbose      bool
	log          logrus.FieldLogger

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据（否则使用默认规则）。
func NewApp(cfg Config) (*App, error) {
	log := logger.New(cfg.Verbose)

	rules, err := LoadRules(cfg.RulesPath, log)
	if err != nil {
		return nil, err
	}

	prefs := game.NewPrefs(OpenStorage(log), log)
	save := game.NewSaveManager(prefs, log)
	settings := game.NewSettingsManager(prefs, log)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gs := game.NewGameState(rules, level.NewGenerator(rules, seed, log), grid.New(rules, log), save, log)

	audioManager := game.NewAudioManager(audioContext(), settings, log)
	gs.AddListener(audioManager)

	outcome := scenes.NewOutcomeTracker(log)
	gs.AddListener(outcome)

	shop := game.NewCharacterShop(rules, prefs, gs, log)
	world := systems.NewWorld(gs, log)
	world.SetCharacter(shop.Selected())

	sceneManager := game.NewSceneManager(log)
	services := &scenes.Services{
		Rules:    rules,
		State:    gs,
		World:    world,
		Shop:     shop,
		Settings: settings,
		Audio:    audioManager,
		Scenes:   sceneManager,
		Outcome:  outcome,
		Log:      log,
	}
	sceneManager.SetSceneFactory(scenes.NewFactory(services))

	a := &App{
		services:     services,
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
		log:          logger.Component(log, "App"),
	}
	a.start(cfg)
	audioManager.PlayMusic()
	return a, nil
}

// start 根据配置决定启动场景
func (a *App) start(cfg Config) {
	gs := a.services.State
	switch {
	case cfg.Level > 0:
		a.log.WithField("level", cfg.Level).Info("starting requested level")
		gs.StartLevel(cfg.Level)
		a.sceneManager.Load(game.SceneGame)
	case cfg.SkipLoadingScene:
		a.log.WithField("level", gs.CurrentLevel()).Info("skipping loading scene, resuming saved level")
		gs.ResumeLevel()
		a.sceneManager.Load(game.SceneGame)
	default:
		a.sceneManager.Load(game.SceneLoading)
	}
}

// LoadRules 加载游戏规则
//
// path 不为空时从磁盘读取（读取或校验失败返回错误）；
// 否则读取内置规则，内置规则不可用时使用默认值并记录警告。
func LoadRules(path string, log logrus.FieldLogger) (*config.GameRules, error) {
	if path != "" {
		rules, err := config.LoadGameRules(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load rules: %w", err)
		}
		return rules, nil
	}

	log = logger.Component(log, "Rules")
	data, err := embedded.ReadFile(config.DefaultRulesPath)
	if err != nil {
		if !errors.Is(err, embedded.ErrNotInitialized) {
			log.WithError(err).Warn("embedded rules unavailable, using defaults")
		}
		return config.DefaultGameRules(), nil
	}
	rules, err := config.ParseGameRules(data)
	if err != nil {
		log.WithError(err).Warn("embedded rules invalid, using defaults")
		return config.DefaultGameRules(), nil
	}
	return rules, nil
}

// OpenStorage 打开 gdata 存档（终端宿主共用），失败时返回 nil（仅内存存储）
func OpenStorage(log logrus.FieldLogger) *gdata.Manager {
	log = logger.Component(log, "Storage")
	if err := utils.EnsureStorageDir(); err != nil {
		log.WithError(err).Warn("failed to prepare storage directory")
	}
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.WithError(err).Warn("save storage unavailable, progress will not persist")
		return nil
	}
	return m
}

// audioContext 返回 ebiten 音频上下文（每个进程只能创建一次）
func audioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(game.SampleRate)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭前保存进度（main 中启用了 SetWindowClosingHandled）
	if ebiten.IsWindowBeingClosed() {
		if err := a.Save(); err != nil {
			a.log.WithError(err).Warn("failed to save on close")
		}
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.ScreenWidth, scenes.ScreenHeight
}

// Save 保存当前场景和进度（窗口关闭或移动端进入后台时调用）
func (a *App) Save() error {
	a.sceneManager.SaveCurrent()
	if err := a.services.State.Flush(); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

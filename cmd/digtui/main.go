// digtui 在终端中运行挖砖游戏
//
// 与图形版共用进度状态机、网格和模拟世界，只替换渲染、输入和音效后端。
// 日志写入文件，避免破坏终端画面。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/brickdigger/data"
	"github.com/decker502/brickdigger/pkg/app"
	"github.com/decker502/brickdigger/pkg/embedded"
	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/grid"
	"github.com/decker502/brickdigger/pkg/level"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/scenes"
	"github.com/decker502/brickdigger/pkg/systems"
)

// frameTime 固定模拟步长
const frameTime = time.Second / 60

var (
	verbose   = flag.Bool("verbose", false, "Enable debug logging")
	levelFlag = flag.Int("level", 0, "Start at this level instead of the saved one")
	seedFlag  = flag.Uint64("seed", 0, "Level generation seed (0 = time based)")
	rulesPath = flag.String("rules", "", "Load game rules from this YAML file")
	logPath   = flag.String("log", "digtui.log", "Log file path")
	mute      = flag.Bool("mute", false, "Disable the speaker")
)

func main() {
	flag.Parse()

	log, err := logger.NewRotatingFile(*logPath, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}

	if err := run(log); err != nil {
		log.WithError(err).Error("digtui exited with error")
		fmt.Fprintf(os.Stderr, "digtui: %v\n", err)
		os.Exit(1)
	}
}

func run(log *logrus.Logger) error {
	embedded.Init(data.FS)
	rules, err := app.LoadRules(*rulesPath, log)
	if err != nil {
		return err
	}

	prefs := game.NewPrefs(app.OpenStorage(log), log)
	save := game.NewSaveManager(prefs, log)
	settings := game.NewSettingsManager(prefs, log)

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gs := game.NewGameState(rules, level.NewGenerator(rules, seed, log), grid.New(rules, log), save, log)

	sound := NewBeepListener(settings, log)
	if !*mute {
		if err := sound.Initialize(); err != nil {
			log.WithError(err).Warn("speaker unavailable, running silent")
		}
	}
	defer sound.Close()
	gs.AddListener(sound)

	outcome := scenes.NewOutcomeTracker(log)
	gs.AddListener(outcome)
	world := systems.NewWorld(gs, log)

	if *levelFlag > 0 {
		gs.StartLevel(*levelFlag)
	} else {
		gs.ResumeLevel()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSession(gs, world, settings, outcome, log)
	events := make(chan tcell.Event, 64)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Fini 之后 PollEvent 返回 nil
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gCtx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		defer stop()
		defer screen.Fini()
		s.loop(gCtx, screen, events)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := gs.Flush(); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	log.WithField("level", gs.CurrentLevel()).Info("progress saved on exit")
	return nil
}

// loop 按固定帧率推进模拟并绘制，收到退出命令或 ctx 结束时返回
func (s *session) loop(ctx context.Context, screen tcell.Screen, events <-chan tcell.Event) {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				now := time.Now()
				if !s.Apply(s.keys.HandleKey(ev.Key(), ev.Rune(), now), now) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			s.Tick(frameTime.Seconds(), now)
			s.draw(screen, now)
		}
	}
}

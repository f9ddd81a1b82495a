// skyshot-tui 在终端中运行游戏
//
// 用法:
//
//	go run ./cmd/skyshot-tui [--round N] [--seed S] [--feed :8090] [--sound] [--log skyshot.log]
//
// 鼠标左键射击，右键（或 x）范围攻击，f 在准星处射击，空格进入下一回合或重玩，q 退出。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/session"
	"github.com/decker502/skyshot/pkg/tui"
	"github.com/gdamore/tcell/v2"
)

var (
	logPath  = flag.String("log", "", "写入调试日志的文件（终端被游戏占用，日志不能输出到屏幕）")
	round    = flag.Int("round", 0, "起始回合（0 表示从进度档案续玩）")
	seed     = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	feedAddr = flag.String("feed", "", "旁观者 websocket 广播地址，如 :8090")
	sound    = flag.Bool("sound", false, "播放提示音")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "skyshot-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	banner := tui.NewBanner()
	observers := []game.Observer{banner}
	if *sound {
		cues := tui.NewCuePlayer()
		if err := cues.Initialize(); err != nil {
			// 没有音频设备也能玩
			log.Printf("[TUI] Sound disabled: %v", err)
		} else {
			defer cues.Close()
			observers = append(observers, cues)
		}
	}

	s, err := session.Open(ctx, session.Config{
		Round:    *round,
		Seed:     *seed,
		FeedAddr: *feedAddr,
		Bundle:   loadBundle(),
	}, observers...)
	if err != nil {
		return err
	}
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	return tui.New(screen, s, banner).Run(ctx)
}

// loadBundle 从工作目录的 data/ 加载配置，找不到时使用内置默认值
func loadBundle() *config.Bundle {
	bundle, err := config.LoadBundle()
	if err != nil {
		log.Printf("[TUI] Using built-in configuration: %v", err)
		return config.DefaultBundle()
	}
	return bundle
}

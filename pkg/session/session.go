// Package session 组装一局游戏所需的全部协作者
//
// 桌面端（ebiten）、终端（tcell）和无界面模拟器共用同一套初始化流程：
// 加载配置 -> 打开进度存储 -> 创建旁观者广播 -> 创建引擎 -> 开始回合。
package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/engine"
	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/telemetry"
	"github.com/decker502/skyshot/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName gdata 存储使用的应用名
const DefaultAppName = "skyshot"

// Config 会话启动配置
type Config struct {
	// Round 起始回合，0 表示从进度档案续玩
	Round int
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// FeedAddr 旁观者广播监听地址（如 ":8090"），为空则不启动
	FeedAddr string
	// AppName 进度存储的应用名，为空使用 DefaultAppName
	AppName string
	// NoStorage 不打开持久化存储，进度只保存在内存中
	NoStorage bool
	// Bundle 配置，为 nil 时从 data/ 加载
	Bundle *config.Bundle
}

// Session 一局游戏
type Session struct {
	Engine   *engine.Engine
	Progress *game.ProgressManager
	Feed     *telemetry.Feed

	cancel context.CancelFunc
	done   chan struct{}
}

// Open 创建会话并开始第一个回合
//
// extra 是驱动层自己的观察者（HUD、音效等），与进度管理器和广播一起接收事件。
func Open(ctx context.Context, cfg Config, extra ...game.Observer) (*Session, error) {
	bundle := cfg.Bundle
	if bundle == nil {
		loaded, err := config.LoadBundle()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		bundle = loaded
	}

	var store *gdata.Manager
	if !cfg.NoStorage {
		store = openStorage(cfg.AppName)
	}
	progress := game.NewProgressManager(store)

	observers := game.MultiObserver{progress}
	observers = append(observers, extra...)

	s := &Session{Progress: progress}
	if cfg.FeedAddr != "" {
		feedCtx, cancel := context.WithCancel(ctx)
		s.Feed = telemetry.NewFeed(0)
		s.cancel = cancel
		s.done = make(chan struct{})
		observers = append(observers, s.Feed)
		go func() {
			defer close(s.done)
			if err := s.Feed.ListenAndServe(feedCtx, cfg.FeedAddr); err != nil {
				log.Printf("[Session] Spectator feed stopped: %v", err)
			}
		}()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.Engine = engine.New(bundle, utils.NewRandomSource(seed), observers)

	round := cfg.Round
	if round <= 0 {
		round = progress.ResumeRound()
	}
	if err := s.Engine.StartRound(round); err != nil {
		s.Close()
		return nil, err
	}
	log.Printf("[Session] Started round %d (seed %d)", round, seed)
	return s, nil
}

// openStorage 打开 gdata 存储，失败时降级为仅内存记录
func openStorage(appName string) *gdata.Manager {
	if appName == "" {
		appName = DefaultAppName
	}
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Session] Warning: %v (progress will not be saved)", err)
		return nil
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Session] Warning: failed to open storage: %v (progress will not be saved)", err)
		return nil
	}
	return m
}

// Advance 回合结束后的默认流程：胜利进入下一回合，失败重玩
// 回合仍在进行时不做任何事
func (s *Session) Advance() error {
	switch s.Engine.Phase() {
	case game.PhaseWon:
		return s.Engine.NextRound()
	case game.PhaseLost:
		return s.Engine.RetryRound()
	}
	return nil
}

// Close 放弃当前回合、保存进度并停止广播
func (s *Session) Close() {
	if s.Engine != nil && s.Engine.Phase() == game.PhaseRunning {
		s.Engine.AbandonRound()
	}
	if err := s.Progress.Save(); err != nil {
		log.Printf("[Session] Warning: %v", err)
	}
	if s.cancel != nil {
		s.cancel()
		<-s.done
		s.cancel = nil
	}
}

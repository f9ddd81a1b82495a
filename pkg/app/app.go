// Package app 提供桌面端与移动端共用的 ebiten 应用包装器
//
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Round 起始回合，0 表示从进度档案续玩
	Round int
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// FeedAddr 旁观者广播地址，为空则不启动
	FeedAddr string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	session *session.Session
	hud     *hud
	pointer pointerReader
	width   int
	height  int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入配置。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	h := newHUD()
	s, err := session.Open(context.Background(), session.Config{
		Round:    cfg.Round,
		Seed:     cfg.Seed,
		FeedAddr: cfg.FeedAddr,
	}, h)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	canvas := s.Engine.Canvas()
	log.Printf("[App] Canvas %vx%v, round %d", canvas.Width, canvas.Height, s.Engine.Round())

	return &App{
		session: s,
		hud:     h,
		width:   int(canvas.Width),
		height:  int(canvas.Height),
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleWindow()

	eng := a.session.Engine
	pointer := a.pointer.read()
	x, y := float64(pointer.x), float64(pointer.y)

	switch eng.Phase() {
	case game.PhaseRunning:
		switch pointer.action {
		case pointerPrimary:
			eng.ResolvePrimary(x, y)
		case pointerSecondary:
			eng.ResolveArea(x, y)
		default:
			eng.SetAim(x, y)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			eng.AbandonRound()
			a.hud.show("ROUND ABANDONED - PRESS R")
		}
	case game.PhaseWon, game.PhaseLost:
		if pointer.action != pointerNone || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := a.session.Advance(); err != nil {
				return err
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) && eng.Phase() != game.PhaseRunning {
		if err := eng.RetryRound(); err != nil {
			log.Printf("[App] Retry failed: %v", err)
		}
	}

	if eng.Phase() == game.PhaseRunning {
		if err := eng.Tick(1000 / float64(ebiten.TPS())); err != nil {
			return err
		}
	}
	a.hud.update(1 / float64(ebiten.TPS()))
	return nil
}

// handleWindow F11 切换全屏
func (a *App) handleWindow() {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.width, a.height)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	eng := a.session.Engine
	drawScene(screen, eng.RenderHints())
	a.hud.draw(screen, eng.Telemetry(), eng.Phase())
}

// DrawFinalScreen 全屏时以黑色填充 letterbox，并使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑画布尺寸，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// WindowSize 逻辑画布尺寸，用于设置初始窗口大小
func (a *App) WindowSize() (int, int) {
	return a.width, a.height
}

// Close 保存进度并停止广播，在窗口关闭后调用
func (a *App) Close() {
	a.session.Close()
}

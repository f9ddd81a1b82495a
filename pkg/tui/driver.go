// Package tui 在终端中运行游戏：tcell 负责绘制与鼠标输入
//
// 逻辑画布按比例映射到终端单元格。第 0 行是状态栏，其余行是游戏区域。
// 输入事件与帧推进都在 Run 的 select 循环中串行处理，引擎只被一个 goroutine 访问。
package tui

import (
	"context"
	"log"
	"time"

	"github.com/decker502/skyshot/pkg/game"
	"github.com/decker502/skyshot/pkg/session"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval  = 16 * time.Millisecond // ~60 FPS
	maxFrameMillis = 100.0                 // 终端卡顿时限制单帧步长
	statusRows     = 1
)

// Driver 终端驱动
type Driver struct {
	screen  tcell.Screen
	session *session.Session
	banner  *Banner

	cols, rows int
	aimX, aimY float64
	buttons    tcell.ButtonMask // 上一次鼠标事件的按键状态，用于识别按下沿
}

// New 创建终端驱动
// banner 必须已经作为观察者注册到 session 上
func New(screen tcell.Screen, s *session.Session, banner *Banner) *Driver {
	d := &Driver{screen: screen, session: s, banner: banner}
	d.cols, d.rows = screen.Size()
	canvas := s.Engine.Canvas()
	d.aimX, d.aimY = canvas.Width/2, canvas.Height/2
	return d
}

// Run 运行事件循环，直到按下退出键或 ctx 取消
func (d *Driver) Run(ctx context.Context) error {
	d.screen.EnableMouse(tcell.MouseMotionEvents)
	defer d.screen.DisableMouse()
	d.screen.HideCursor()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				// 屏幕已关闭
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !d.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			if err := d.step(now.Sub(last)); err != nil {
				return err
			}
			last = now
			d.draw()
		}
	}
}

// step 推进一帧
func (d *Driver) step(elapsed time.Duration) error {
	ms := min(float64(elapsed)/float64(time.Millisecond), maxFrameMillis)
	if ms <= 0 {
		return nil
	}
	if d.session.Engine.Phase() == game.PhaseRunning {
		if err := d.session.Engine.Tick(ms); err != nil {
			return err
		}
	}
	d.banner.update(ms / 1000)
	return nil
}

// handleEvent 处理一个输入事件，返回 false 表示退出
func (d *Driver) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	case *tcell.EventResize:
		d.cols, d.rows = d.screen.Size()
		d.screen.Sync()
	}
	return true
}

func (d *Driver) handleKey(ev *tcell.EventKey) bool {
	eng := d.session.Engine
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		d.advance()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		d.advance()
	case 'r':
		if eng.Phase() != game.PhaseRunning {
			if err := eng.RetryRound(); err != nil {
				log.Printf("[TUI] Retry failed: %v", err)
			}
		}
	case 'f':
		// 没有鼠标的终端可以用键盘在准星位置射击
		if eng.Phase() == game.PhaseRunning {
			eng.ResolvePrimary(d.aimX, d.aimY)
		}
	case 'x':
		if eng.Phase() == game.PhaseRunning {
			eng.ResolveArea(d.aimX, d.aimY)
		}
	}
	return true
}

func (d *Driver) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	d.aimX, d.aimY = d.toCanvas(col, row)

	buttons := ev.Buttons()
	pressed := buttons &^ d.buttons
	d.buttons = buttons

	eng := d.session.Engine
	if eng.Phase() != game.PhaseRunning {
		if pressed&(tcell.Button1|tcell.Button2) != 0 {
			d.advance()
		}
		return
	}

	switch {
	case pressed&tcell.Button1 != 0:
		eng.ResolvePrimary(d.aimX, d.aimY)
	case pressed&tcell.Button2 != 0:
		eng.ResolveArea(d.aimX, d.aimY)
	default:
		eng.SetAim(d.aimX, d.aimY)
	}
}

func (d *Driver) advance() {
	if err := d.session.Advance(); err != nil {
		log.Printf("[TUI] Advance failed: %v", err)
	}
}

func (d *Driver) playRows() int {
	return max(d.rows-statusRows, 1)
}

// toCanvas 单元格中心对应的画布坐标
func (d *Driver) toCanvas(col, row int) (float64, float64) {
	canvas := d.session.Engine.Canvas()
	x := (float64(col) + 0.5) / float64(max(d.cols, 1)) * canvas.Width
	y := (float64(row-statusRows) + 0.5) / float64(d.playRows()) * canvas.Height
	return x, y
}

// toCell 画布坐标所在的单元格
func (d *Driver) toCell(x, y float64) (int, int) {
	canvas := d.session.Engine.Canvas()
	col := int(x / canvas.Width * float64(d.cols))
	row := statusRows + int(y/canvas.Height*float64(d.playRows()))
	return col, row
}

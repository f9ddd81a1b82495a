package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerAction 一帧内的指针动作
type pointerAction int

const (
	pointerNone      pointerAction = iota
	pointerPrimary                 // 左键或单指点击
	pointerSecondary               // 右键或双指同时按下
)

// pointerInput 当前帧的指针输入
type pointerInput struct {
	action pointerAction
	x, y   int
}

// pointerReader 同时支持鼠标和触摸，优先检测触摸
// 触摸结束后仍保留最后的触摸位置用于瞄准
type pointerReader struct {
	lastTouchX, lastTouchY int
}

// touchAction 本帧新落下的手指数与当前按住的手指数对应的动作
// 第二根手指落下视为范围攻击
func touchAction(justPressed, active int) pointerAction {
	switch {
	case justPressed == 0:
		return pointerNone
	case active >= 2:
		return pointerSecondary
	default:
		return pointerPrimary
	}
}

// read 读取当前帧的指针输入
func (r *pointerReader) read() pointerInput {
	justTouched := inpututil.AppendJustPressedTouchIDs(nil)
	allTouches := ebiten.AppendTouchIDs(nil)

	if len(allTouches) > 0 {
		// 范围攻击的位置取第一根手指
		r.lastTouchX, r.lastTouchY = ebiten.TouchPosition(allTouches[0])
		if len(justTouched) > 0 && len(allTouches) == 1 {
			r.lastTouchX, r.lastTouchY = ebiten.TouchPosition(justTouched[0])
		}
		return pointerInput{
			action: touchAction(len(justTouched), len(allTouches)),
			x:      r.lastTouchX,
			y:      r.lastTouchY,
		}
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		return pointerInput{action: pointerPrimary, x: x, y: y}
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		return pointerInput{action: pointerSecondary, x: x, y: y}
	}
	return pointerInput{x: x, y: y}
}

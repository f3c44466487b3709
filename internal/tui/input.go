package tui

import (
	"github.com/gdamore/tcell/v2"

	"centre/internal/centre"
)

var promotionKeys = map[rune]centre.PieceType{
	'q': centre.Queen,
	'r': centre.Rook,
	'b': centre.Bishop,
	'n': centre.Knight,
}

func (u *UI) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		u.quit = true
		return
	}
	if u.sess.Status().Over() {
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyEnter || ev.Rune() == 'q' {
			u.quit = true
		}
		return
	}
	if u.promo != nil {
		if ev.Key() == tcell.KeyEscape {
			u.clearSelection()
			return
		}
		if pt, ok := promotionKeys[ev.Rune()]; ok {
			u.choosePromotion(pt)
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyUp:
		u.moveCursor(0, 1)
	case tcell.KeyDown:
		u.moveCursor(0, -1)
	case tcell.KeyLeft:
		u.moveCursor(-1, 0)
	case tcell.KeyRight:
		u.moveCursor(1, 0)
	case tcell.KeyEnter:
		u.activate(u.cursor)
	case tcell.KeyEscape:
		u.clearSelection()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			u.moveCursor(0, 1)
		case 'j':
			u.moveCursor(0, -1)
		case 'h':
			u.moveCursor(-1, 0)
		case 'l':
			u.moveCursor(1, 0)
		case ' ':
			u.activate(u.cursor)
		case 'q':
			u.quit = true
		}
	}
}

// 方向按屏幕方向，翻转棋盘时反过来
func (u *UI) moveCursor(df, dr int) {
	if u.flipped {
		df, dr = -df, -dr
	}
	f := min(max(u.cursor.File()+df, 0), centre.Files-1)
	r := min(max(u.cursor.Rank()+dr, 0), centre.Ranks-1)
	u.cursor = centre.SquareAt(f, r)
}

func (u *UI) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	if u.sess.Status().Over() {
		u.quit = true
		return
	}
	x, y := ev.Position()
	if u.promo != nil {
		if pt, ok := promotionAt(x, y); ok {
			u.choosePromotion(pt)
		}
		return
	}
	sq, ok := u.squareAt(x, y)
	if !ok {
		return
	}
	u.cursor = sq
	u.activate(sq)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"centre/internal/centre"
	"centre/internal/game"
)

// 棋盘左上角与每格宽度（字符）
const (
	boardX = 3
	boardY = 1
	cellW  = 3
	panelX = boardX + centre.Files*cellW + 3
)

var (
	lightSquare  = tcell.NewRGBColor(240, 217, 181)
	darkSquare   = tcell.NewRGBColor(181, 136, 99)
	selectedBg   = tcell.NewRGBColor(246, 246, 105)
	targetBg     = tcell.NewRGBColor(130, 151, 105)
	lastMoveBg   = tcell.NewRGBColor(205, 210, 106)
	checkBg      = tcell.NewRGBColor(220, 60, 60)
	cursorBg     = tcell.NewRGBColor(100, 149, 237)
	whitePieceFg = tcell.ColorWhite
	blackPieceFg = tcell.ColorBlack

	textStyle  = tcell.StyleDefault
	boldStyle  = tcell.StyleDefault.Bold(true)
	alertStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var pieceGlyphs = map[centre.PieceType][2]rune{
	centre.King:   {'♔', '♚'},
	centre.Queen:  {'♕', '♛'},
	centre.Rook:   {'♖', '♜'},
	centre.Bishop: {'♗', '♝'},
	centre.Knight: {'♘', '♞'},
	centre.Pawn:   {'♙', '♟'},
}

// 升变选择在面板里的位置
var promotionChoices = []struct {
	pt    centre.PieceType
	label string
}{
	{centre.Queen, "[q]ueen"},
	{centre.Rook, "[r]ook"},
	{centre.Bishop, "[b]ishop"},
	{centre.Knight, "k[n]ight"},
}

const promotionRow = boardY + 9

func glyph(pc centre.Piece) rune {
	g, ok := pieceGlyphs[pc.Type()]
	if !ok {
		return '?'
	}
	if pc.Color() == centre.White {
		return g[0]
	}
	return g[1]
}

// 格子在屏幕上的左上角
func (u *UI) squareOrigin(sq centre.Square) (int, int) {
	col, row := sq.File(), centre.Ranks-1-sq.Rank()
	if u.flipped {
		col, row = centre.Files-1-sq.File(), sq.Rank()
	}
	return boardX + col*cellW, boardY + row
}

func (u *UI) squareAt(x, y int) (centre.Square, bool) {
	if x < boardX || y < boardY {
		return centre.NoSquare, false
	}
	col, row := (x-boardX)/cellW, y-boardY
	if col >= centre.Files || row >= centre.Ranks {
		return centre.NoSquare, false
	}
	if u.flipped {
		return centre.SquareAt(centre.Files-1-col, row), true
	}
	return centre.SquareAt(col, centre.Ranks-1-row), true
}

func promotionAt(x, y int) (centre.PieceType, bool) {
	if y != promotionRow {
		return centre.NoPieceType, false
	}
	cx := panelX
	for _, c := range promotionChoices {
		if x >= cx && x < cx+len(c.label) {
			return c.pt, true
		}
		cx += len(c.label) + 1
	}
	return centre.NoPieceType, false
}

func (u *UI) draw() {
	u.screen.Clear()
	snap := u.sess.Snapshot()
	pos, err := centre.DecodePosition(snap.FEN)
	if err != nil {
		drawText(u.screen, 0, 0, alertStyle, err.Error())
		u.screen.Show()
		return
	}
	u.drawBoard(pos, snap)
	u.drawPanel(snap)
	u.screen.Show()
}

func (u *UI) drawBoard(pos *centre.Position, snap game.Snapshot) {
	targets := make(map[centre.Square]bool, len(u.targets))
	for _, m := range u.targets {
		targets[m.To] = true
	}
	checked := centre.NoSquare
	if snap.InCheck {
		checked, _ = pos.King(pos.SideToMove)
	}

	for sq := centre.Square(0); sq < centre.NumSquares; sq++ {
		bg := lightSquare
		if (sq.File()+sq.Rank())%2 == 0 {
			bg = darkSquare
		}
		switch {
		case sq == u.cursor && !snap.Status.Over():
			bg = cursorBg
		case sq == u.selected:
			bg = selectedBg
		case targets[sq]:
			bg = targetBg
		case sq == checked:
			bg = checkBg
		case !snap.LastMove.IsNull() && (sq == snap.LastMove.From || sq == snap.LastMove.To):
			bg = lastMoveBg
		}

		ch := ' '
		style := tcell.StyleDefault.Background(bg)
		if pc := pos.PieceAt(sq); pc != centre.NoPiece {
			ch = glyph(pc)
			if pc.Color() == centre.White {
				style = style.Foreground(whitePieceFg).Bold(true)
			} else {
				style = style.Foreground(blackPieceFg)
			}
		} else if targets[sq] {
			ch = '·'
		}
		x, y := u.squareOrigin(sq)
		u.screen.SetContent(x, y, ' ', nil, style)
		u.screen.SetContent(x+1, y, ch, nil, style)
		u.screen.SetContent(x+2, y, ' ', nil, style)
	}

	// 坐标
	for i := 0; i < centre.Files; i++ {
		f, r := i, i
		if u.flipped {
			f, r = centre.Files-1-i, centre.Ranks-1-i
		}
		u.screen.SetContent(boardX+i*cellW+1, boardY+centre.Ranks, rune('a'+f), nil, textStyle)
		u.screen.SetContent(boardX-2, boardY+centre.Ranks-1-i, rune('1'+r), nil, textStyle)
	}
}

func (u *UI) drawPanel(snap game.Snapshot) {
	top, bottom := centre.Black, centre.White
	if u.flipped {
		top, bottom = centre.White, centre.Black
	}
	drawText(u.screen, panelX, boardY, u.clockStyle(snap, top), clockLine(snap, top))
	drawText(u.screen, panelX, boardY+centre.Ranks-1, u.clockStyle(snap, bottom), clockLine(snap, bottom))

	row := boardY + 2
	switch {
	case snap.Status.Over():
	case u.thinking || snap.Thinking:
		drawText(u.screen, panelX, row, boldStyle, "AI is thinking...")
	default:
		drawText(u.screen, panelX, row, boldStyle, playerName(snap, snap.ToMove)+"'s Turn")
	}
	if snap.InCheck && !snap.Status.Over() {
		drawText(u.screen, panelX, row+1, alertStyle, "Check!")
	}
	if u.notice != "" {
		drawText(u.screen, panelX, row+3, alertStyle, u.notice)
	}

	if u.promo != nil {
		drawText(u.screen, panelX, promotionRow-1, boldStyle, "Promote to:")
		cx := panelX
		for _, c := range promotionChoices {
			drawText(u.screen, cx, promotionRow, textStyle.Reverse(true), c.label)
			cx += len(c.label) + 1
		}
	}

	if snap.Status.Over() {
		u.drawGameOver(snap.Status)
		return
	}
	drawText(u.screen, boardX-2, boardY+centre.Ranks+2, textStyle.Dim(true), "arrows/hjkl move  enter/space select  esc cancel  q quit")
}

func (u *UI) drawGameOver(st game.Status) {
	y := boardY + centre.Ranks + 2
	for i, line := range strings.SplitAfter(st.Message, "! ") {
		drawText(u.screen, boardX, y+i, alertStyle, strings.TrimSpace(line))
	}
	drawText(u.screen, boardX, y+3, textStyle, "Press Esc or click to quit")
}

func (u *UI) clockStyle(snap game.Snapshot, c centre.Color) tcell.Style {
	left := snap.WhiteLeft
	if c == centre.Black {
		left = snap.BlackLeft
	}
	if left < 10*time.Second {
		return alertStyle
	}
	if snap.ToMove == c && !snap.Status.Over() {
		return boldStyle
	}
	return textStyle
}

func clockLine(snap game.Snapshot, c centre.Color) string {
	left := snap.WhiteLeft
	if c == centre.Black {
		left = snap.BlackLeft
	}
	return fmt.Sprintf("%s: %s", playerName(snap, c), formatClock(left))
}

func playerName(snap game.Snapshot, c centre.Color) string {
	if c == centre.White {
		return snap.WhiteName
	}
	return snap.BlackName
}

// m:ss
func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

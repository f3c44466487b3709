package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"centre/internal/centre"
	"centre/internal/engine"
	"centre/internal/game"
)

const tickInterval = 250 * time.Millisecond

// 投递到事件循环里的自定义事件
type (
	tickEvent struct{}
	aiDone    struct {
		res game.AIResult
		err error
	}
)

// UI 一块 tcell 屏幕上的一局棋。屏幕的 Init/Fini 由调用方负责。
type UI struct {
	screen tcell.Screen
	sess   *game.Session

	cursor   centre.Square
	selected centre.Square
	targets  []centre.Move
	promo    []centre.Move // 等待选择升变子的候选着法
	flipped  bool          // 黑方在下
	thinking bool
	notice   string
	quit     bool

	ctx context.Context
}

func New(screen tcell.Screen, sess *game.Session) *UI {
	u := &UI{
		screen:   screen,
		sess:     sess,
		cursor:   centre.SquareAt(4, 1),
		selected: centre.NoSquare,
		ctx:      context.Background(),
	}
	// 人机对局人执黑时翻转棋盘
	if sess.Opts.Mode == game.ModeAI && sess.Opts.HumanColor == centre.Black {
		u.flipped = true
		u.cursor = centre.SquareAt(4, 6)
	}
	return u
}

// Run 事件循环，直到用户退出或 ctx 结束
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	u.ctx = ctx

	go func() {
		t := time.NewTicker(tickInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				_ = u.screen.PostEvent(tcell.NewEventInterrupt(tickEvent{}))
			}
		}
	}()

	for !u.quit {
		u.maybeStartAI()
		u.draw()
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		u.handleEvent(ev)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		u.handleKey(ev)
	case *tcell.EventMouse:
		u.handleMouse(ev)
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case tickEvent:
			u.sess.Tick()
		case aiDone:
			u.thinking = false
			if data.err != nil {
				u.notice = fmt.Sprintf("AI error: %v", data.err)
			} else if data.res.Fallback {
				u.notice = fmt.Sprintf("AI fell back to %v", data.res.Move)
			}
		}
	}
}

// 轮到电脑时在后台搜索，搜完投递 aiDone
func (u *UI) maybeStartAI() {
	if u.thinking || !u.sess.AITurn() {
		return
	}
	u.startAI()
}

func (u *UI) startAI() {
	u.thinking = true
	ctx := u.ctx
	go func() {
		res, err := u.sess.AIMove(ctx, engine.NewEngine())
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(aiDone{res: res, err: err}))
	}()
}

func (u *UI) clearSelection() {
	u.selected = centre.NoSquare
	u.targets = nil
	u.promo = nil
}

// 选子 / 落子：点到高亮的目标格就走，点到己方棋子就选中
func (u *UI) activate(sq centre.Square) {
	if u.sess.Status().Over() || u.thinking || u.promo != nil {
		return
	}
	if u.selected != centre.NoSquare {
		var cands []centre.Move
		for _, m := range u.targets {
			if m.To == sq {
				cands = append(cands, m)
			}
		}
		switch {
		case len(cands) == 1:
			u.play(cands[0])
			return
		case len(cands) > 1:
			u.promo = cands
			return
		}
	}

	pos := u.sess.Position()
	pc := pos.PieceAt(sq)
	if pc == centre.NoPiece || pc.Color() != pos.SideToMove || pos.SideToMove == u.sess.Opts.AIColor() {
		u.clearSelection()
		return
	}
	u.selected = sq
	u.targets = u.sess.LegalFrom(sq)
	u.notice = ""
}

func (u *UI) choosePromotion(pt centre.PieceType) {
	for _, m := range u.promo {
		if m.Promotion == pt {
			u.play(m)
			return
		}
	}
}

func (u *UI) play(m centre.Move) {
	u.clearSelection()
	if err := u.sess.Play(m); err != nil {
		u.notice = err.Error()
		return
	}
	u.notice = ""
}

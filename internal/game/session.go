package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"centre/internal/centre"
	"centre/internal/engine"
)

type State string

const (
	StatePlaying State = "playing"
	StateOver    State = "over"
)

// 除标准终局名（centre.Termination.String()）外的两种结束原因
const (
	ReasonCentre = "king_reached_center"
	ReasonTimeUp = "time_up"
)

var reasonTitles = map[string]string{
	ReasonCentre:                         "King Reached Center",
	ReasonTimeUp:                         "Time Up",
	centre.Checkmate.String():            "Checkmate",
	centre.Stalemate.String():            "Stalemate",
	centre.InsufficientMaterial.String(): "Insufficient Material",
	centre.SeventyFiveMoves.String():     "Seventy Five Moves",
	centre.FivefoldRepetition.String():   "Fivefold Repetition",
	centre.FiftyMoves.String():           "Fifty Moves",
	centre.ThreefoldRepetition.String():  "Threefold Repetition",
}

type Status struct {
	State   State        `json:"state"`
	Winner  centre.Color `json:"-"`
	Reason  string       `json:"reason,omitempty"`
	Message string       `json:"message,omitempty"`
}

func (s Status) Over() bool { return s.State == StateOver }

// Session 一局棋：局面、双方时钟、着法记录与结果。所有方法并发安全。
type Session struct {
	ID        string
	Opts      Options
	CreatedAt time.Time

	mu        sync.Mutex
	pos       *centre.Position
	clocks    [2]*Clock
	moves     []centre.Move
	status    Status
	thinking  bool
	updatedAt time.Time
	now       func() time.Time
}

// AIResult 电脑实际走的着法与搜索信息。Fallback 表示搜索给出的着法
// 在当前局面不合法，改走了第一个合法着法。
type AIResult struct {
	Move     centre.Move
	Search   engine.SearchResult
	Fallback bool
}

func NewSession(id string, opts Options) (*Session, error) {
	return newSession(id, opts, time.Now)
}

func newSession(id string, opts Options, now func() time.Time) (*Session, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	pos := centre.NewInitialPosition()
	if opts.FEN != "" {
		if pos, err = centre.DecodePosition(opts.FEN); err != nil {
			return nil, err
		}
	}
	s := &Session{
		ID:     id,
		Opts:   opts,
		pos:    pos,
		status: Status{State: StatePlaying},
		now:    now,
	}
	s.clocks[centre.White] = NewClock(opts.TimeControl)
	s.clocks[centre.Black] = NewClock(opts.TimeControl)
	s.CreatedAt = s.now()
	s.updatedAt = s.CreatedAt
	s.startClock(s.pos.SideToMove, s.CreatedAt)
	// 开局即可能已经结束（自定义局面）
	s.resolve()
	return s, nil
}

// 电脑一方的钟不走
func (s *Session) startClock(c centre.Color, now time.Time) {
	if c == s.Opts.AIColor() {
		return
	}
	s.clocks[c].Start(now)
}

// Play 人走一步。着法必须在本变体的合法着法里；兵到底线必须给出升变子。
func (s *Session) Play(m centre.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.tick(now)
	if s.status.Over() {
		return ErrGameOver
	}
	if s.thinking {
		return ErrAIThinking
	}
	if s.pos.SideToMove == s.Opts.AIColor() {
		return ErrAITurn
	}

	legal, ok := centre.FindLegal(s.pos, m)
	if !ok {
		if m.Promotion == centre.NoPieceType {
			promo := m
			promo.Promotion = centre.Queen
			if _, ok := centre.FindLegal(s.pos, promo); ok {
				return ErrPromotionRequired
			}
		}
		return fmt.Errorf("%w: %v", centre.ErrIllegalMove, m)
	}
	return s.apply(legal, now)
}

func (s *Session) apply(m centre.Move, now time.Time) error {
	mover := s.pos.SideToMove
	if _, err := s.pos.MakeMove(m); err != nil {
		return err
	}
	s.clocks[mover].Stop(now)
	s.moves = append(s.moves, m)
	s.updatedAt = now
	s.resolve()
	if !s.status.Over() {
		s.startClock(s.pos.SideToMove, now)
	}
	return nil
}

// AIMove 让引擎替当前一方走一步。搜索在克隆的棋盘上进行，不持有锁；
// 搜索期间当前一方的钟暂停，其他人走子会得到 ErrAIThinking。
func (s *Session) AIMove(ctx context.Context, eng *engine.Engine) (AIResult, error) {
	s.mu.Lock()
	now := s.now()
	s.tick(now)
	if s.status.Over() {
		s.mu.Unlock()
		return AIResult{Move: centre.NoMove}, ErrGameOver
	}
	if s.thinking {
		s.mu.Unlock()
		return AIResult{Move: centre.NoMove}, ErrAIThinking
	}
	side := s.pos.SideToMove
	s.clocks[side].Stop(now)
	s.thinking = true
	snapshot := s.pos.Clone()
	cfg := engine.SearchConfig{Depth: s.Opts.Depth, Parallel: s.Opts.Parallel}
	s.mu.Unlock()

	res, err := eng.Search(ctx, snapshot, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.thinking = false
	now = s.now()
	out := AIResult{Move: centre.NoMove, Search: res}
	if err != nil {
		s.startClock(side, now)
		return out, fmt.Errorf("ai search: %w", err)
	}

	legal := centre.LegalMoves(s.pos)
	if len(legal) == 0 {
		s.resolve()
		return out, nil
	}
	mv, ok := centre.FindLegal(s.pos, res.BestMove)
	if !ok {
		log.Printf("[game] %s: engine move %v not legal here, falling back to %v", s.ID, res.BestMove, legal[0])
		mv = legal[0]
		out.Fallback = true
	}
	if err := s.apply(mv, now); err != nil {
		return out, err
	}
	out.Move = mv
	return out, nil
}

// Tick 检查超时，超时的一方判负。
func (s *Session) Tick() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick(s.now())
	return s.status
}

func (s *Session) tick(now time.Time) {
	if s.status.Over() || s.thinking {
		return
	}
	side := s.pos.SideToMove
	if s.clocks[side].Remaining(now) <= 0 {
		s.clocks[side].Stop(now)
		s.finish(side.Other(), ReasonTimeUp)
	}
}

// 先看标准终局，再看刚走完的一方是否王占中心
func (s *Session) resolve() {
	if o := s.pos.Outcome(true); o.Over() {
		s.finish(o.Winner, o.Termination.String())
		return
	}
	if w := s.pos.CentreWinner(); w != centre.NoColor {
		s.finish(w, ReasonCentre)
	}
}

func (s *Session) finish(winner centre.Color, reason string) {
	for _, c := range s.clocks {
		c.Stop(s.now())
	}
	s.status = Status{
		State:   StateOver,
		Winner:  winner,
		Reason:  reason,
		Message: s.message(winner, reason),
	}
	log.Printf("[game] %s over: %s", s.ID, s.status.Message)
}

func (s *Session) message(winner centre.Color, reason string) string {
	title, ok := reasonTitles[reason]
	if !ok {
		title = reason
	}
	switch winner {
	case centre.White:
		return fmt.Sprintf("%s! %s (White) Wins!", title, s.Opts.name(winner))
	case centre.Black:
		return fmt.Sprintf("%s! %s (Black) Wins!", title, s.Opts.name(winner))
	}
	return fmt.Sprintf("%s! It's a Draw!", title)
}

// Snapshot 某一时刻的完整状态，供 HTTP / 终端界面展示
type Snapshot struct {
	ID         string
	FEN        string
	ToMove     centre.Color
	InCheck    bool
	LegalMoves []centre.Move
	Moves      []centre.Move
	LastMove   centre.Move
	WhiteName  string
	BlackName  string
	WhiteLeft  time.Duration
	BlackLeft  time.Duration
	Thinking   bool
	AIColor    centre.Color
	Status     Status
	UpdatedAt  time.Time
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.tick(now)
	snap := Snapshot{
		ID:        s.ID,
		FEN:       s.pos.Encode(),
		ToMove:    s.pos.SideToMove,
		InCheck:   s.pos.InCheck(),
		Moves:     append([]centre.Move(nil), s.moves...),
		LastMove:  centre.NoMove,
		WhiteName: s.Opts.WhiteName,
		BlackName: s.Opts.BlackName,
		WhiteLeft: s.clocks[centre.White].Remaining(now),
		BlackLeft: s.clocks[centre.Black].Remaining(now),
		Thinking:  s.thinking,
		AIColor:   s.Opts.AIColor(),
		Status:    s.status,
		UpdatedAt: s.updatedAt,
	}
	if n := len(s.moves); n > 0 {
		snap.LastMove = s.moves[n-1]
	}
	if !s.status.Over() {
		snap.LegalMoves = centre.LegalMoves(s.pos)
	}
	return snap
}

// LegalFrom 某格棋子的合法着法（界面高亮用）；棋局结束后为空
func (s *Session) LegalFrom(from centre.Square) []centre.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Over() {
		return nil
	}
	return centre.LegalMovesFrom(s.pos, from)
}

// Position 当前局面的副本
func (s *Session) Position() *centre.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos.Clone()
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// AITurn 人机模式下是否轮到电脑（且对局未结束、未在思考）
func (s *Session) AITurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.status.Over() && !s.thinking && s.pos.SideToMove == s.Opts.AIColor()
}

package httpserver

import (
	"fmt"
	"strings"
	"time"

	"centre/internal/centre"
	"centre/internal/game"
)

// 前端用的招法结构：格子用 "e2" 这样的坐标，升变用 q/r/b/n
type MoveDTO struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func dtoToMove(m MoveDTO) (centre.Move, error) {
	from, err := centre.ParseSquare(m.From)
	if err != nil {
		return centre.NoMove, err
	}
	to, err := centre.ParseSquare(m.To)
	if err != nil {
		return centre.NoMove, err
	}
	mv := centre.Move{From: from, To: to}
	if m.Promotion != "" {
		// 复用 UCI 解析来校验升变字母
		mv, err = centre.ParseMove(m.From + m.To + strings.ToLower(m.Promotion))
		if err != nil {
			return centre.NoMove, err
		}
	}
	return mv, nil
}

func moveToDTO(m centre.Move) MoveDTO {
	return MoveDTO{From: m.From.String(), To: m.To.String(), Promotion: m.Promotion.String()}
}

func movesToDTO(ms []centre.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// 没有着法时为 nil（JSON null）
func optionalMove(m centre.Move) *MoveDTO {
	if m.IsNull() {
		return nil
	}
	dto := moveToDTO(m)
	return &dto
}

// 0=白, 1=黑
func sideToInt(c centre.Color) int {
	switch c {
	case centre.White:
		return 0
	case centre.Black:
		return 1
	default:
		return -1
	}
}

func parseColor(s string) (centre.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "white", "w":
		return centre.White, nil
	case "black", "b":
		return centre.Black, nil
	}
	return centre.NoColor, fmt.Errorf("%w: %q", game.ErrBadColor, s)
}

type StatusDTO struct {
	State   string `json:"state"`            // "playing" / "over"
	Winner  string `json:"winner,omitempty"` // "white" / "black"，和棋为空
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func statusToDTO(st game.Status) StatusDTO {
	dto := StatusDTO{State: string(st.State), Reason: st.Reason, Message: st.Message}
	if st.Over() && st.Winner != centre.NoColor {
		dto.Winner = st.Winner.String()
	}
	return dto
}

type NewGameRequest struct {
	WhiteName  string `json:"white_name"`
	BlackName  string `json:"black_name"`
	Mode       string `json:"mode"`        // "human" / "ai"
	HumanColor string `json:"human_color"` // 人机模式下人执哪方
	Minutes    int    `json:"minutes"`     // 1 / 3 / 5 / 10
	Depth      int    `json:"depth"`
	FEN        string `json:"fen"` // 可选：从自定义局面开始
}

func (r NewGameRequest) options() (game.Options, error) {
	opts := game.Options{
		WhiteName: r.WhiteName,
		BlackName: r.BlackName,
		Mode:      game.Mode(strings.ToLower(r.Mode)),
		Depth:     r.Depth,
		FEN:       r.FEN,
	}
	if r.Minutes != 0 {
		opts.TimeControl = time.Duration(r.Minutes) * time.Minute
	}
	if opts.Mode == game.ModeAI {
		c, err := parseColor(r.HumanColor)
		if err != nil {
			return opts, err
		}
		opts.HumanColor = c
	}
	return opts, nil
}

// State 返回；new_game / play / state 共用
type StateResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"` // FEN
	ToMove     int       `json:"to_move"`  // 0=白, 1=黑
	InCheck    bool      `json:"in_check"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	LastMove   *MoveDTO  `json:"last_move"`
	Moves      []string  `json:"moves"` // UCI
	WhiteName  string    `json:"white_name"`
	BlackName  string    `json:"black_name"`
	WhiteMs    int64     `json:"white_ms"`
	BlackMs    int64     `json:"black_ms"`
	AIColor    int       `json:"ai_color"` // -1 表示双人对局
	Thinking   bool      `json:"thinking"`
	Status     StatusDTO `json:"status"`
}

func snapshotToDTO(snap game.Snapshot) StateResponse {
	moves := make([]string, len(snap.Moves))
	for i, m := range snap.Moves {
		moves[i] = m.String()
	}
	return StateResponse{
		GameID:     snap.ID,
		Position:   snap.FEN,
		ToMove:     sideToInt(snap.ToMove),
		InCheck:    snap.InCheck,
		LegalMoves: movesToDTO(snap.LegalMoves),
		LastMove:   optionalMove(snap.LastMove),
		Moves:      moves,
		WhiteName:  snap.WhiteName,
		BlackName:  snap.BlackName,
		WhiteMs:    snap.WhiteLeft.Milliseconds(),
		BlackMs:    snap.BlackLeft.Milliseconds(),
		AIColor:    sideToInt(snap.AIColor),
		Thinking:   snap.Thinking,
		Status:     statusToDTO(snap.Status),
	}
}

// State 请求：前端刷新时用 game_id 来要当前盘面
type StateRequest struct {
	GameID string `json:"game_id"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

// AiMoveRequest 带 game_id 时替该局当前一方走一步；
// 否则只分析 position 给出的局面，不落子
type AiMoveRequest struct {
	GameID   string `json:"game_id"`
	Position string `json:"position"`
	MaxDepth int    `json:"max_depth"`
	TimeMs   int64  `json:"time_ms"`
}

type AiMoveResponse struct {
	BestMove *MoveDTO `json:"best_move"` // 没有着法时为 null
	Score    int      `json:"score"`
	Depth    int      `json:"depth"`
	Nodes    int64    `json:"nodes"`
	TimeMs   int64    `json:"time_ms"`
	Fallback bool     `json:"fallback,omitempty"`

	// 对局模式：走完后的状态
	State *StateResponse `json:"state,omitempty"`
	// 分析模式：原局面，不落子
	Position string `json:"position,omitempty"`
	ToMove   int    `json:"to_move"`
}

type LegalResponse struct {
	GameID string    `json:"game_id"`
	From   string    `json:"from,omitempty"`
	Moves  []MoveDTO `json:"moves"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

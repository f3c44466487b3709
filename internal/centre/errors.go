package centre

import "errors"

var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidMove   = errors.New("invalid move notation")

	// 以下是 MakeMove/UnmakeMove 拒绝执行时的错误（调用方视为“该候选着法不合法”）
	ErrOffBoard    = errors.New("square off board")
	ErrNoPiece     = errors.New("no piece on origin square")
	ErrWrongSide   = errors.New("piece does not belong to side to move")
	ErrOwnCapture  = errors.New("destination holds a friendly piece")
	ErrBadPromote  = errors.New("bad promotion")
	ErrStaleUndo   = errors.New("undo does not match the last applied move")
	ErrIllegalMove = errors.New("illegal move")
)

package centre

const (
	Files      = 8
	Ranks      = 8
	NumSquares = Files * Ranks
)

// Square a1=0, b1=1 ... h8=63
type Square int8

const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = 56 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	D4 Square = 3*Files + 3
	E4 Square = 3*Files + 4
	D5 Square = 4*Files + 3
	E5 Square = 4*Files + 4
)

func SquareAt(file, rank int) Square { return Square(rank*Files + file) }

func (s Square) File() int { return int(s) % Files }
func (s Square) Rank() int { return int(s) / Files }

func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, ErrInvalidSquare
	}
	f, r := int(s[0]-'a'), int(s[1]-'1')
	if !onBoard(f, r) {
		return NoSquare, ErrInvalidSquare
	}
	return SquareAt(f, r), nil
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < Files && rank >= 0 && rank < Ranks
}

// 兵的前进方向：白向上(+1)，黑向下(-1)
func pawnDir(c Color) int {
	if c == White {
		return +1
	}
	if c == Black {
		return -1
	}
	return 0
}

func promotionRank(c Color) int {
	if c == White {
		return Ranks - 1
	}
	return 0
}

func (p *Position) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return p.Squares[sq]
}

func (p *Position) Turn() Color { return p.SideToMove }

const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func NewInitialPosition() *Position {
	pos, err := DecodePosition(InitialFEN)
	if err != nil {
		panic("initial FEN: " + err.Error())
	}
	return pos
}

// Clone 深拷贝，并行搜索时每个 worker 各用一份
func (p *Position) Clone() *Position {
	np := *p
	np.history = append([]uint64(nil), p.history...)
	return &np
}

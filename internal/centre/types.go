package centre

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop // 本变体：横竖任意格（标准象 <-> 车 互换）
	Rook   // 本变体：斜走任意格
	Queen
	King
)

var pieceTypeLetters = [...]byte{'.', 'p', 'n', 'b', 'r', 'q', 'k'}

func (pt PieceType) String() string {
	if pt <= NoPieceType || pt > King {
		return ""
	}
	return string(pieceTypeLetters[pt])
}

func pieceTypeFromLetter(ch byte) PieceType {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	for i, l := range pieceTypeLetters {
		if i > 0 && l == ch {
			return PieceType(i)
		}
	}
	return NoPieceType
}

// Piece 0=空；>0 白；<0 黑；abs=PieceType
type Piece int8

const NoPiece Piece = 0

func MakePiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType || c == NoColor {
		return NoPiece
	}
	if c == White {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Color() Color {
	if p == 0 {
		return NoColor
	}
	if p > 0 {
		return White
	}
	return Black
}

// 白方大写，黑方小写（FEN 约定）
func (p Piece) Letter() byte {
	if p == 0 {
		return '.'
	}
	pt := p.Type()
	if pt > King {
		return '?'
	}
	l := pieceTypeLetters[pt]
	if p.Color() == White {
		return l - ('a' - 'A')
	}
	return l
}

type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// NoMove 表示“没有着法”（终局或被取消的搜索）
var NoMove = Move{From: NoSquare, To: NoSquare}

func (m Move) IsNull() bool {
	return m.From == NoSquare || m.To == NoSquare
}

// UCI 记法：e2e4 / e7e8q
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	return m.From.String() + m.To.String() + m.Promotion.String()
}

func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, ErrInvalidMove
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, ErrInvalidMove
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, ErrInvalidMove
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		m.Promotion = pieceTypeFromLetter(s[4])
		switch m.Promotion {
		case Knight, Bishop, Rook, Queen:
		default:
			return NoMove, ErrInvalidMove
		}
	}
	return m, nil
}

// 易位权利位
type CastleRights uint8

const (
	WhiteKingside CastleRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
)

// Position = 棋盘 + 轮到谁走 + 易位/过路兵/计数 + 哈希历史
type Position struct {
	Squares    [NumSquares]Piece
	SideToMove Color
	Castling   CastleRights
	EnPassant  Square // 过路兵目标格，没有则 NoSquare
	Halfmove   int    // 五十回合计数（半步）
	Fullmove   int
	Hash       uint64

	// 之前所有局面的哈希（不含当前），用于重复局面判定；MakeMove/UnmakeMove 维护
	history []uint64
}

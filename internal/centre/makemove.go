package centre

// Undo 由 MakeMove 发出，必须且只能交还给同一个 Position 的 UnmakeMove 一次，
// 并且要按后进先出的顺序（同一局面被兄弟分支复用之前先撤销）。
type Undo struct {
	pos      *Position
	ply      int // 走之前 history 的长度
	used     bool
	move     Move
	moved    Piece
	captured Piece
	capSq    Square
	castle   *castleSpec

	castling  CastleRights
	enPassant Square
	halfmove  int
	fullmove  int
	hash      uint64
}

func (u *Undo) Move() Move { return u.move }

// 任何一个角落格 / 王的原位被碰到，就去掉对应的易位权
var castleMask = map[Square]CastleRights{
	E1: WhiteKingside | WhiteQueenside,
	H1: WhiteKingside,
	A1: WhiteQueenside,
	E8: BlackKingside | BlackQueenside,
	H8: BlackKingside,
	A8: BlackQueenside,
}

// MakeMove 原地走一步。只做基本一致性检查（有子、轮到它、不吃己方、升变合理），
// 不检查王的安全，合法性由 LegalMoves 负责。
func (p *Position) MakeMove(m Move) (*Undo, error) {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return nil, ErrOffBoard
	}
	pc := p.Squares[m.From]
	if pc == NoPiece {
		return nil, ErrNoPiece
	}
	side := p.SideToMove
	if pc.Color() != side {
		return nil, ErrWrongSide
	}
	target := p.Squares[m.To]
	if target != NoPiece && target.Color() == side {
		return nil, ErrOwnCapture
	}
	lastRank := pc.Type() == Pawn && m.To.Rank() == promotionRank(side)
	switch {
	case lastRank && (m.Promotion < Knight || m.Promotion > Queen):
		return nil, ErrBadPromote
	case !lastRank && m.Promotion != NoPieceType:
		return nil, ErrBadPromote
	}

	captured, capSq := target, m.To
	// 吃过路兵：目标格为空，被吃的兵在目标格“后面”
	if pc.Type() == Pawn && m.To == p.EnPassant && target == NoPiece && m.From.File() != m.To.File() {
		capSq = m.To - Square(Files*pawnDir(side))
		captured = p.Squares[capSq]
		if captured != MakePiece(side.Other(), Pawn) {
			return nil, ErrOwnCapture
		}
	}

	initZobrist()
	h := p.Hash
	if h == 0 {
		h = p.CalculateHash()
	}

	u := &Undo{
		pos:       p,
		ply:       len(p.history),
		move:      m,
		moved:     pc,
		captured:  captured,
		capSq:     capSq,
		castling:  p.Castling,
		enPassant: p.EnPassant,
		halfmove:  p.Halfmove,
		fullmove:  p.Fullmove,
		hash:      h,
	}
	p.history = append(p.history, h)

	h ^= p.epHashKey()
	h ^= zobristCastling[p.Castling&0xF]

	if u.captured != NoPiece {
		h ^= pieceHashKey(u.captured, u.capSq)
		p.Squares[u.capSq] = NoPiece
	}

	placed := pc
	if m.Promotion != NoPieceType {
		placed = MakePiece(side, m.Promotion)
	}
	h ^= pieceHashKey(pc, m.From)
	h ^= pieceHashKey(placed, m.To)
	p.Squares[m.From] = NoPiece
	p.Squares[m.To] = placed

	if cs := castleFor(m, pc); cs != nil {
		rook := p.Squares[cs.rook]
		h ^= pieceHashKey(rook, cs.rook)
		h ^= pieceHashKey(rook, cs.rookTo)
		p.Squares[cs.rook] = NoPiece
		p.Squares[cs.rookTo] = rook
		u.castle = cs
	}

	p.Castling &^= castleMask[m.From] | castleMask[m.To]

	p.EnPassant = NoSquare
	if pc.Type() == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.EnPassant = SquareAt(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	if pc.Type() == Pawn || u.captured != NoPiece {
		p.Halfmove = 0
	} else {
		p.Halfmove++
	}
	if side == Black {
		p.Fullmove++
	}
	p.SideToMove = side.Other()

	h ^= zobristSide
	h ^= zobristCastling[p.Castling&0xF]
	h ^= p.epHashKey()
	p.Hash = h
	return u, nil
}

// UnmakeMove 精确还原 MakeMove 之前的局面。
func (p *Position) UnmakeMove(u *Undo) error {
	if u == nil || u.used || u.pos != p || u.ply != len(p.history)-1 {
		return ErrStaleUndo
	}
	m := u.move
	if u.castle != nil {
		p.Squares[u.castle.rook] = p.Squares[u.castle.rookTo]
		p.Squares[u.castle.rookTo] = NoPiece
	}
	p.Squares[m.To] = NoPiece
	p.Squares[m.From] = u.moved
	if u.captured != NoPiece {
		p.Squares[u.capSq] = u.captured
	}

	p.SideToMove = u.moved.Color()
	p.Castling = u.castling
	p.EnPassant = u.enPassant
	p.Halfmove = u.halfmove
	p.Fullmove = u.fullmove
	p.Hash = u.hash
	p.history = p.history[:u.ply]
	u.used = true
	return nil
}

// WithMove 走一步、执行 fn、无论如何都撤销。
func (p *Position) WithMove(m Move, fn func() error) (err error) {
	u, err := p.MakeMove(m)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := p.UnmakeMove(u); uerr != nil && err == nil {
			err = uerr
		}
	}()
	return fn()
}

// Play 走一步已知合法的着法并保留（主机侧用；搜索里用 MakeMove/UnmakeMove）
func (p *Position) Play(m Move) error {
	legal, ok := FindLegal(p, m)
	if !ok {
		return ErrIllegalMove
	}
	_, err := p.MakeMove(legal)
	return err
}

package centre

// PseudoLegalMoves 走子方标准子力（兵、马、王、后）的伪合法走法，含易位。
// 车、象的走法被本变体重新定义，不在这里生成，见 LegalMoves。
func (p *Position) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 48)
	side := p.SideToMove
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := p.Squares[sq]
		if pc == NoPiece || pc.Color() != side {
			continue
		}
		switch pc.Type() {
		case Pawn:
			genPawnMoves(p, sq, &moves)
		case Knight:
			genKnightMoves(p, sq, &moves)
		case King:
			genKingMoves(p, sq, &moves)
			genCastlingMoves(p, sq, &moves)
		case Queen:
			genQueenMoves(p, sq, &moves)
		}
	}
	return moves
}

type castleSpec struct {
	right    CastleRights
	king     Square
	kingTo   Square
	rook     Square
	rookTo   Square
	empty    []Square // 王车之间必须为空
	safePath []Square // 王经过（含起点终点）不能被攻击
}

var castleSpecs = [4]castleSpec{
	{WhiteKingside, E1, G1, H1, F1, []Square{F1, G1}, []Square{E1, F1, G1}},
	{WhiteQueenside, E1, C1, A1, D1, []Square{D1, C1, B1}, []Square{E1, D1, C1}},
	{BlackKingside, E8, G8, H8, F8, []Square{F8, G8}, []Square{E8, F8, G8}},
	{BlackQueenside, E8, C8, A8, D8, []Square{D8, C8, B8}, []Square{E8, D8, C8}},
}

// 易位只看棋子身份（王和“车”在原位），不看车在本变体里怎么走
func genCastlingMoves(p *Position, from Square, moves *[]Move) {
	side := p.Squares[from].Color()
	for i := range castleSpecs {
		cs := &castleSpecs[i]
		if p.Castling&cs.right == 0 || from != cs.king {
			continue
		}
		if (cs.king == E1) != (side == White) {
			continue
		}
		if p.Squares[cs.rook] != MakePiece(side, Rook) {
			continue
		}
		blocked := false
		for _, sq := range cs.empty {
			if p.Squares[sq] != NoPiece {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		attacked := false
		for _, sq := range cs.safePath {
			if p.IsAttacked(sq, side.Other()) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		*moves = append(*moves, Move{From: cs.king, To: cs.kingTo})
	}
}

func castleFor(m Move, moved Piece) *castleSpec {
	if moved.Type() != King {
		return nil
	}
	for i := range castleSpecs {
		if castleSpecs[i].king == m.From && castleSpecs[i].kingTo == m.To {
			return &castleSpecs[i]
		}
	}
	return nil
}

// IsLegal 对一个伪合法走法做走后自检：走完后己方王不被攻击。
// 没有王的局面视为合法。
func (p *Position) IsLegal(m Move) bool {
	side := p.SideToMove
	u, err := p.MakeMove(m)
	if err != nil {
		return false
	}
	legal := !p.IsInCheck(side)
	if err := p.UnmakeMove(u); err != nil {
		return false
	}
	return legal
}

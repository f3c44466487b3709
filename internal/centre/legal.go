package centre

import "sort"

// LegalMoves 本变体下走子方的全部合法走法，去重并按 (From, To, Promotion) 升序。
//
// 两部分取并集：
//  1. 兵、马、王、后：用标准伪合法走法，再做走后自检（IsLegal）；
//  2. 车、象：走法互换（车走斜线，象走直线），自己沿射线生成，再手动做一次
//     “走完后己方王是否被攻击”的检查。
//
// 任何一个候选在试走时出错，都只当作这一步不合法，不影响其他候选。
func LegalMoves(p *Position) []Move {
	side := p.SideToMove
	seen := make(map[Move]struct{}, 64)
	out := make([]Move, 0, 64)
	add := func(m Move) {
		if _, dup := seen[m]; dup {
			return
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}

	for _, m := range p.PseudoLegalMoves() {
		pc := p.PieceAt(m.From)
		if pc == NoPiece || pc.Color() != side {
			continue
		}
		switch pc.Type() {
		case Pawn:
			// 同一横排、不同列的兵步：正常生成的兵步不可能满足，保留为空过滤
			if m.To.Rank() == m.From.Rank() && m.To.File() != m.From.File() {
				continue
			}
		case Knight, King, Queen:
		default:
			continue
		}
		if p.IsLegal(m) {
			add(m)
		}
	}

	var candidates []Move
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := p.Squares[sq]
		if pc == NoPiece || pc.Color() != side {
			continue
		}
		if pt := pc.Type(); pt == Rook || pt == Bishop {
			candidates = candidates[:0]
			genSlideMoves(p, sq, slideDirs(pt), &candidates)
			for _, m := range candidates {
				if p.kingSafeAfter(m) {
					add(m)
				}
			}
		}
	}

	sortMoves(out)
	return out
}

// kingSafeAfter 试走 m，看走子方自己的王是否被对方攻击，然后撤销。
// 棋盘上没有己方王时（摆题局面）不存在被将军的问题。
func (p *Position) kingSafeAfter(m Move) bool {
	side := p.SideToMove
	safe := false
	err := p.WithMove(m, func() error {
		ksq, ok := p.King(side)
		safe = !ok || !p.IsAttacked(ksq, side.Other())
		return nil
	})
	return err == nil && safe
}

func sortMoves(ms []Move) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].From != ms[j].From {
			return ms[i].From < ms[j].From
		}
		if ms[i].To != ms[j].To {
			return ms[i].To < ms[j].To
		}
		return ms[i].Promotion < ms[j].Promotion
	})
}

// LegalMovesFrom 只要从 from 出发的合法走法（界面高亮用）
func LegalMovesFrom(p *Position, from Square) []Move {
	var out []Move
	for _, m := range LegalMoves(p) {
		if m.From == from {
			out = append(out, m)
		}
	}
	return out
}

// FindLegal 在当前合法走法里找 m（三个字段都要一致）
func FindLegal(p *Position, m Move) (Move, bool) {
	for _, lm := range LegalMoves(p) {
		if lm == m {
			return lm, true
		}
	}
	return NoMove, false
}

// HasLegalMove 至少有一步合法走法
func HasLegalMove(p *Position) bool {
	return len(LegalMoves(p)) > 0
}

package centre

// IsAttacked 判断 sq 是否被 by 一方攻击。
// 滑子按本变体的走法算：车沿斜线、象沿直线、后两者皆可。
func (p *Position) IsAttacked(sq Square, by Color) bool {
	if !sq.Valid() || by == NoColor {
		return false
	}
	f0, r0 := sq.File(), sq.Rank()

	// 兵：站在 sq 的“后斜方”（相对 by 的前进方向）
	pawn := MakePiece(by, Pawn)
	pr := r0 - pawnDir(by)
	for _, df := range [2]int{-1, +1} {
		if onBoard(f0+df, pr) && p.Squares[SquareAt(f0+df, pr)] == pawn {
			return true
		}
	}

	knight := MakePiece(by, Knight)
	for _, j := range knightJumps {
		f, r := f0+j[0], r0+j[1]
		if onBoard(f, r) && p.Squares[SquareAt(f, r)] == knight {
			return true
		}
	}

	king := MakePiece(by, King)
	for _, d := range kingSteps {
		f, r := f0+d[0], r0+d[1]
		if onBoard(f, r) && p.Squares[SquareAt(f, r)] == king {
			return true
		}
	}

	queen := MakePiece(by, Queen)
	if p.rayHits(f0, r0, diagonalDirs, MakePiece(by, Rook), queen) {
		return true
	}
	return p.rayHits(f0, r0, orthogonalDirs, MakePiece(by, Bishop), queen)
}

// 从 (f0,r0) 沿 dirs 看出去，第一个碰到的子是否是 a 或 b
func (p *Position) rayHits(f0, r0 int, dirs [][2]int, a, b Piece) bool {
	for _, d := range dirs {
		f, r := f0+d[0], r0+d[1]
		for onBoard(f, r) {
			pc := p.Squares[SquareAt(f, r)]
			if pc != NoPiece {
				if pc == a || pc == b {
					return true
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return false
}

// InCheck 轮到走的一方是否被将军
func (p *Position) InCheck() bool {
	return p.IsInCheck(p.SideToMove)
}

func (p *Position) IsInCheck(c Color) bool {
	ksq, ok := p.King(c)
	if !ok {
		return false
	}
	return p.IsAttacked(ksq, c.Other())
}

package centre

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

func genPawnMoves(p *Position, from Square, moves *[]Move) {
	pc := p.Squares[from]
	if pc == NoPiece {
		return
	}
	side := pc.Color()
	dir := pawnDir(side)
	f, r := from.File(), from.Rank()

	// 前进一格 / 起始位置两格
	if onBoard(f, r+dir) {
		one := SquareAt(f, r+dir)
		if p.Squares[one] == NoPiece {
			addPawnMove(side, from, one, moves)
			startRank := 1
			if side == Black {
				startRank = Ranks - 2
			}
			if r == startRank {
				two := SquareAt(f, r+2*dir)
				if p.Squares[two] == NoPiece {
					*moves = append(*moves, Move{From: from, To: two})
				}
			}
		}
	}

	// 斜吃（含吃过路兵）
	for _, df := range [2]int{-1, +1} {
		tf, tr := f+df, r+dir
		if !onBoard(tf, tr) {
			continue
		}
		to := SquareAt(tf, tr)
		dst := p.Squares[to]
		if dst != NoPiece && dst.Color() != side {
			addPawnMove(side, from, to, moves)
			continue
		}
		if dst == NoPiece && to == p.EnPassant {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

// 到底线时展开成四种升变
func addPawnMove(side Color, from, to Square, moves *[]Move) {
	if to.Rank() != promotionRank(side) {
		*moves = append(*moves, Move{From: from, To: to})
		return
	}
	for _, pt := range promotionPieces {
		*moves = append(*moves, Move{From: from, To: to, Promotion: pt})
	}
}

package centre

// 方向都是 {dFile, dRank}
var (
	orthogonalDirs = [][2]int{{0, +1}, {0, -1}, {+1, 0}, {-1, 0}}
	diagonalDirs   = [][2]int{{+1, +1}, {+1, -1}, {-1, +1}, {-1, -1}}
	queenDirs      = append(append([][2]int{}, orthogonalDirs...), diagonalDirs...)
	kingSteps      = queenDirs
)

// slideDirs 本变体的滑子方向：车走斜线，象走直线，后两者都有
func slideDirs(pt PieceType) [][2]int {
	switch pt {
	case Rook:
		return diagonalDirs
	case Bishop:
		return orthogonalDirs
	case Queen:
		return queenDirs
	}
	return nil
}

// 沿射线一步步走：出界停；遇己方子停（不加）；遇对方子吃掉后停；空格加上并继续
func genSlideMoves(p *Position, from Square, dirs [][2]int, moves *[]Move) {
	side := p.Squares[from].Color()
	f0, r0 := from.File(), from.Rank()
	for _, d := range dirs {
		f, r := f0+d[0], r0+d[1]
		for onBoard(f, r) {
			to := SquareAt(f, r)
			pc := p.Squares[to]
			if pc == NoPiece {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Color() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
}

func genQueenMoves(p *Position, from Square, moves *[]Move) {
	genSlideMoves(p, from, queenDirs, moves)
}

// 王：八个方向一格；易位在 generate.go
func genKingMoves(p *Position, from Square, moves *[]Move) {
	side := p.Squares[from].Color()
	for _, d := range kingSteps {
		f, r := from.File()+d[0], from.Rank()+d[1]
		if !onBoard(f, r) {
			continue
		}
		to := SquareAt(f, r)
		dst := p.Squares[to]
		if dst == NoPiece || dst.Color() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

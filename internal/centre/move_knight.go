package centre

var knightJumps = [8][2]int{
	{+1, +2}, {+2, +1}, {+2, -1}, {+1, -2},
	{-1, -2}, {-2, -1}, {-2, +1}, {-1, +2},
}

func genKnightMoves(p *Position, from Square, moves *[]Move) {
	side := p.Squares[from].Color()
	for _, j := range knightJumps {
		f, r := from.File()+j[0], from.Rank()+j[1]
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

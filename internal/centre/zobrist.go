package centre

import "sync"

const zobristPieceTypes = 7 // PieceType 范围 [1..6]，0 保留空位不用

var (
	zobristOnce sync.Once

	zobristPieces   [2][zobristPieceTypes][NumSquares]uint64
	zobristSide     uint64
	zobristCastling [16]uint64
	zobristEPFile   [Files]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for pt := 1; pt < zobristPieceTypes; pt++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][pt][sq] = next()
				}
			}
		}
		zobristSide = next()
		for i := range zobristCastling {
			zobristCastling[i] = next()
		}
		for i := range zobristEPFile {
			zobristEPFile[i] = next()
		}
	})
}

func pieceHashKey(pc Piece, sq Square) uint64 {
	if pc == NoPiece || !sq.Valid() {
		return 0
	}
	pt := int(pc.Type())
	if pt <= 0 || pt >= zobristPieceTypes {
		return 0
	}
	return zobristPieces[pc.Color()][pt][sq]
}

// 过路兵只有在走子方确实有兵能吃时才计入哈希，否则重复局面会被误判成不同
func (p *Position) epHashKey() uint64 {
	if !p.EnPassant.Valid() {
		return 0
	}
	pawn := MakePiece(p.SideToMove, Pawn)
	f, r := p.EnPassant.File(), p.EnPassant.Rank()-pawnDir(p.SideToMove)
	for _, df := range [2]int{-1, +1} {
		if onBoard(f+df, r) && p.Squares[SquareAt(f+df, r)] == pawn {
			return zobristEPFile[f]
		}
	}
	return 0
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希。
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := p.Squares[sq]
		if pc == NoPiece {
			continue
		}
		h ^= pieceHashKey(pc, sq)
	}
	if p.SideToMove == Black {
		h ^= zobristSide
	}
	h ^= zobristCastling[p.Castling&0xF]
	h ^= p.epHashKey()
	return h
}

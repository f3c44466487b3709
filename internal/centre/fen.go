package centre

import (
	"strconv"
	"strings"
)

// Encode 标准六段 FEN
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := Ranks - 1; r >= 0; r-- {
		empty := 0
		for f := 0; f < Files; f++ {
			pc := p.Squares[SquareAt(f, r)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(encodeCastling(p.Castling))
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Fullmove))
	return sb.String()
}

func encodeCastling(c CastleRights) string {
	if c == 0 {
		return "-"
	}
	var sb strings.Builder
	for _, x := range []struct {
		r  CastleRights
		ch byte
	}{{WhiteKingside, 'K'}, {WhiteQueenside, 'Q'}, {BlackKingside, 'k'}, {BlackQueenside, 'q'}} {
		if c&x.r != 0 {
			sb.WriteByte(x.ch)
		}
	}
	return sb.String()
}

// DecodePosition 解析 FEN；后两段（半步计数、回合数）可省略，默认 0 1
func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Ranks {
		return nil, ErrInvalidFEN
	}
	p := &Position{EnPassant: NoSquare, Fullmove: 1}
	for i, row := range rows {
		r := Ranks - 1 - i
		f := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if f >= Files {
				return nil, ErrInvalidFEN
			}
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				continue
			}
			pt := pieceTypeFromLetter(ch)
			if pt == NoPieceType {
				return nil, ErrInvalidFEN
			}
			side := Black
			if ch >= 'A' && ch <= 'Z' {
				side = White
			}
			p.Squares[SquareAt(f, r)] = MakePiece(side, pt)
			f++
		}
		if f != Files {
			return nil, ErrInvalidFEN
		}
	}

	switch parts[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, ErrInvalidFEN
	}

	if len(parts) > 2 && parts[2] != "-" {
		for _, ch := range parts[2] {
			switch ch {
			case 'K':
				p.Castling |= WhiteKingside
			case 'Q':
				p.Castling |= WhiteQueenside
			case 'k':
				p.Castling |= BlackKingside
			case 'q':
				p.Castling |= BlackQueenside
			default:
				return nil, ErrInvalidFEN
			}
		}
	}
	if len(parts) > 3 && parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil || !p.validEnPassant(sq) {
			return nil, ErrInvalidFEN
		}
		p.EnPassant = sq
	}
	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, ErrInvalidFEN
		}
		p.Halfmove = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, ErrInvalidFEN
		}
		p.Fullmove = n
	}
	p.Hash = p.CalculateHash()
	return p, nil
}

// 过路兵格：对方刚走过双步，格子为空，后面站着对方的兵
func (p *Position) validEnPassant(sq Square) bool {
	side := p.SideToMove
	if sq.Rank() != promotionRank(side)-pawnDir(side)*2 {
		return false
	}
	behind := sq - Square(Files*pawnDir(side))
	return p.Squares[sq] == NoPiece && p.Squares[behind] == MakePiece(side.Other(), Pawn)
}

// SameState 比较两个局面的全部状态（含重复局面历史），用于校验走子/撤销的可逆性
func (p *Position) SameState(q *Position) bool {
	if p.Squares != q.Squares || p.SideToMove != q.SideToMove || p.Castling != q.Castling ||
		p.EnPassant != q.EnPassant || p.Halfmove != q.Halfmove || p.Fullmove != q.Fullmove ||
		p.Hash != q.Hash || len(p.history) != len(q.history) {
		return false
	}
	for i := range p.history {
		if p.history[i] != q.history[i] {
			return false
		}
	}
	return true
}

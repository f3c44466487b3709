package centre

type Termination int8

const (
	NoTermination Termination = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	SeventyFiveMoves
	FivefoldRepetition
	FiftyMoves          // 需要 claimDraw
	ThreefoldRepetition // 需要 claimDraw
)

var terminationNames = [...]string{
	NoTermination:        "",
	Checkmate:            "checkmate",
	Stalemate:            "stalemate",
	InsufficientMaterial: "insufficient_material",
	SeventyFiveMoves:     "seventyfive_moves",
	FivefoldRepetition:   "fivefold_repetition",
	FiftyMoves:           "fifty_moves",
	ThreefoldRepetition:  "threefold_repetition",
}

func (t Termination) String() string {
	if t < 0 || int(t) >= len(terminationNames) {
		return "unknown"
	}
	return terminationNames[t]
}

// Outcome 标准终局：Winner 为 NoColor 表示和棋（或未结束，看 Termination）
type Outcome struct {
	Winner      Color
	Termination Termination
}

func (o Outcome) Over() bool { return o.Termination != NoTermination }

// Outcome 标准终局判定，顺序：将死、子力不足、逼和、75 回合、五次重复，
// claimDraw 时再看 50 回合、三次重复。“无合法着法”按本变体的 LegalMoves 判断。
func (p *Position) Outcome(claimDraw bool) Outcome {
	hasMove := HasLegalMove(p)
	if !hasMove && p.InCheck() {
		return Outcome{Winner: p.SideToMove.Other(), Termination: Checkmate}
	}
	if p.InsufficientMaterial() {
		return Outcome{Winner: NoColor, Termination: InsufficientMaterial}
	}
	if !hasMove {
		return Outcome{Winner: NoColor, Termination: Stalemate}
	}
	if p.Halfmove >= 150 {
		return Outcome{Winner: NoColor, Termination: SeventyFiveMoves}
	}
	reps := p.Repetitions()
	if reps >= 5 {
		return Outcome{Winner: NoColor, Termination: FivefoldRepetition}
	}
	if claimDraw {
		if p.Halfmove >= 100 {
			return Outcome{Winner: NoColor, Termination: FiftyMoves}
		}
		if reps >= 3 {
			return Outcome{Winner: NoColor, Termination: ThreefoldRepetition}
		}
	}
	return Outcome{Winner: NoColor}
}

// Repetitions 当前局面（含本次）出现过几次
func (p *Position) Repetitions() int {
	n := 1
	for _, h := range p.history {
		if h == p.Hash {
			n++
		}
	}
	return n
}

// InsufficientMaterial 按互换后的子力判断：
// 兵、后、（走直线的）象还在就够；否则最多一个轻子（马或走斜线的车），
// 或者只剩走斜线的车且都在同色格上，才算不够。
func (p *Position) InsufficientMaterial() bool {
	minors, knights, diagonals := 0, 0, 0
	light, dark := false, false
	for sq, pc := range p.Squares {
		switch pc.Type() {
		case Pawn, Queen, Bishop:
			return false
		case Knight:
			minors++
			knights++
		case Rook:
			minors++
			diagonals++
			s := Square(sq)
			if (s.File()+s.Rank())%2 == 0 {
				dark = true
			} else {
				light = true
			}
		}
	}
	if minors <= 1 {
		return true
	}
	return knights == 0 && diagonals > 0 && !(light && dark)
}

package centre

import "golang.org/x/exp/constraints"

// Centre 中心四格，王站上去且不被攻击即胜
var Centre = [4]Square{D4, E4, D5, E5}

func IsCentre(sq Square) bool {
	for _, c := range Centre {
		if c == sq {
			return true
		}
	}
	return false
}

// CentreDistance 到最近中心格的曼哈顿距离
func CentreDistance(sq Square) int {
	best := -1
	for _, c := range Centre {
		d := abs(sq.File()-c.File()) + abs(sq.Rank()-c.Rank())
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// King 返回 c 方王的位置；没有王（只在测试/残缺局面里出现）时 ok=false
func (p *Position) King(c Color) (Square, bool) {
	want := MakePiece(c, King)
	for sq, pc := range p.Squares {
		if pc == want {
			return Square(sq), true
		}
	}
	return NoSquare, false
}

func (p *Position) KingExists(c Color) bool {
	_, ok := p.King(c)
	return ok
}

// CentreWinner 变体胜负：刚走完的一方（不是轮到走的那方）王在中心，
// 且当前走子方攻击不到它，则该方已经获胜。没有则返回 NoColor。
func (p *Position) CentreWinner() Color {
	mover := p.SideToMove.Other()
	if mover == NoColor {
		return NoColor
	}
	ksq, ok := p.King(mover)
	if !ok || !IsCentre(ksq) {
		return NoColor
	}
	if p.IsAttacked(ksq, p.SideToMove) {
		return NoColor
	}
	return mover
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

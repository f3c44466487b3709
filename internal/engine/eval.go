package engine

import (
	"errors"
	"fmt"
	"log"

	"centre/internal/centre"
)

const (
	// 决定性胜负分（将死 / 王占中心）
	WinScore = 99999
	// 被将军的一方扣分（加给没被将军的一方）
	checkBonus = 20
	// 王离中心越近越好：max(0, 6-距离)*5
	kingCentreReach  = 6
	kingCentreWeight = 5
)

// 基础子力估值：车、象按互换后的走法定价
// （车只能斜走，比标准车弱；象能直走全盘，比标准象强）
var pieceValue = map[centre.PieceType]int{
	centre.Pawn:   100,
	centre.Knight: 320,
	centre.Rook:   330,
	centre.Bishop: 500,
	centre.Queen:  900,
	centre.King:   0,
}

var errUnknownPiece = errors.New("unknown piece on board")

// Terminal 标准终局（将死/逼和/规则和棋）与“王占中心”两种胜负，
// 从白方视角给分：白胜 +WinScore，黑胜 -WinScore，和棋 0。
func Terminal(pos *centre.Position) (int, bool) {
	if o := pos.Outcome(true); o.Over() {
		return winnerScore(o.Winner), true
	}
	if w := pos.CentreWinner(); w != centre.NoColor {
		return winnerScore(w), true
	}
	return 0, false
}

func winnerScore(c centre.Color) int {
	switch c {
	case centre.White:
		return WinScore
	case centre.Black:
		return -WinScore
	}
	return 0
}

// Evaluate 从白方视角的评价：正数白方好，负数黑方好。
// 内部出错不向外传，记日志后按 0 分处理，搜索照常进行。
func Evaluate(pos *centre.Position) int {
	if score, over := Terminal(pos); over {
		return score
	}
	return staticScore(pos)
}

// staticScore 只给没有结束的局面打分，调用方已经做过 Terminal
func staticScore(pos *centre.Position) int {
	score, err := evaluate(pos)
	if err != nil {
		log.Printf("[engine] evaluate %s: %v", pos.Encode(), err)
		return 0
	}
	return score
}

func evaluate(pos *centre.Position) (int, error) {
	score, err := evaluateMaterialPositional(pos)
	if err != nil {
		return 0, err
	}
	if pos.InCheck() {
		if pos.SideToMove == centre.Black {
			score += checkBonus
		} else {
			score -= checkBonus
		}
	}
	return score, nil
}

// 材料 + 王的中心化
func evaluateMaterialPositional(pos *centre.Position) (int, error) {
	score := 0
	for sq := centre.Square(0); sq < centre.NumSquares; sq++ {
		pc := pos.Squares[sq]
		if pc == centre.NoPiece {
			continue
		}
		val, ok := pieceValue[pc.Type()]
		if !ok {
			return 0, fmt.Errorf("%w: %d at %s", errUnknownPiece, pc, sq)
		}
		if pc.Type() == centre.King {
			val += kingCentreBonus(sq)
		}
		if pc.Color() == centre.White {
			score += val
		} else {
			score -= val
		}
	}
	return score, nil
}

func kingCentreBonus(sq centre.Square) int {
	return max(0, kingCentreReach-centre.CentreDistance(sq)) * kingCentreWeight
}

package centre

import "testing"

func TestOutcome(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		winner Color
		term   Termination
	}{
		{"BackRankMateByOrthogonalBishop", "B5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", White, Checkmate},
		{"DiagonalRookBlockedByPawn", "7k/6pp/8/8/8/8/8/R5QK b - - 0 1", NoColor, NoTermination},
		{"Stalemate", "k7/8/1Q6/8/8/8/8/7K b - - 0 1", NoColor, Stalemate},
		{"LoneDiagonalRookIsInsufficient", "k7/8/8/8/8/8/8/R6K w - - 0 1", NoColor, InsufficientMaterial},
		{"SameColourDiagonalRooks", "k7/8/8/8/8/8/1R6/R6K w - - 0 1", NoColor, InsufficientMaterial},
		{"OrthogonalBishopIsEnough", "1k6/8/8/8/8/8/8/B6K w - - 0 1", NoColor, NoTermination},
		{"SeventyFiveMoves", "1k6/8/8/8/8/8/8/B6K w - - 150 90", NoColor, SeventyFiveMoves},
		{"Ongoing", InitialFEN, NoColor, NoTermination},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := mustFEN(t, tt.fen).Outcome(false)
			if got.Winner != tt.winner || got.Termination != tt.term {
				t.Fatalf("outcome: got=%+v want={%v %v}", got, tt.winner, tt.term)
			}
		})
	}
}

func TestInsufficientMaterialSquareColours(t *testing.T) {
	// a1 与 b2 同为深色格：两个斜走的车永远走不出另一种颜色
	if !mustFEN(t, "k7/8/8/8/8/8/1R6/R6K w - - 0 1").InsufficientMaterial() {
		t.Fatalf("two diagonal rooks on the same colour should be insufficient")
	}
	if mustFEN(t, "k7/8/8/8/8/8/R7/R6K w - - 0 1").InsufficientMaterial() {
		t.Fatalf("diagonal rooks on both colours should be sufficient")
	}
	if mustFEN(t, "k7/8/8/8/8/8/8/RN5K w - - 0 1").InsufficientMaterial() {
		t.Fatalf("rook plus knight should be sufficient")
	}
}

func TestRepetitionNeedsClaim(t *testing.T) {
	pos := NewInitialPosition()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for round := 0; round < 2; round++ {
		for _, s := range shuffle {
			m, err := ParseMove(s)
			if err != nil {
				t.Fatalf("parse %s: %v", s, err)
			}
			if err := pos.Play(m); err != nil {
				t.Fatalf("play %s: %v", s, err)
			}
		}
	}
	if got := pos.Repetitions(); got != 3 {
		t.Fatalf("repetitions: got=%d want=3", got)
	}
	if o := pos.Outcome(false); o.Over() {
		t.Fatalf("threefold repetition must be claimed, got %+v", o)
	}
	if o := pos.Outcome(true); o.Termination != ThreefoldRepetition {
		t.Fatalf("claimed outcome: got=%v want=%v", o.Termination, ThreefoldRepetition)
	}
}

func TestCentreWinner(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Color
	}{
		// 白王 e4，轮到黑走，黑方没有子能打到 e4
		{"WhiteKingSafeOnCentre", "4k3/q7/8/8/4K3/8/8/8 b - - 0 1", White},
		// 黑后 a4 沿横线打到 e4
		{"WhiteKingAttackedOnCentre", "4k3/8/8/8/q3K3/8/8/8 b - - 0 1", NoColor},
		// 黑车 h7 斜线打到 e4
		{"AttackedByDiagonalRook", "4k3/7r/8/8/4K3/8/8/8 b - - 0 1", NoColor},
		// 黑象 h4 走直线，同样打到 e4
		{"AttackedByOrthogonalBishop", "4k3/8/8/8/4K2b/8/8/8 b - - 0 1", NoColor},
		// 王在中心，但轮到自己走：不是刚走到的一方
		{"OnlyTheMoverWins", "4k3/8/8/8/4K3/8/8/8 w - - 0 1", NoColor},
		{"BlackKingOnD5", "8/8/8/3k4/8/8/8/R3K3 w - - 0 1", Black},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mustFEN(t, tt.fen).CentreWinner(); got != tt.want {
				t.Fatalf("centre winner: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestCentreDistance(t *testing.T) {
	tests := []struct {
		sq   string
		want int
	}{
		{"e4", 0}, {"d5", 0}, {"e1", 3}, {"a1", 6}, {"h8", 6}, {"c3", 2}, {"f6", 2}, {"a4", 3},
	}
	for _, tt := range tests {
		sq, err := ParseSquare(tt.sq)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.sq, err)
		}
		if got := CentreDistance(sq); got != tt.want {
			t.Fatalf("distance %s: got=%d want=%d", tt.sq, got, tt.want)
		}
	}
}

package engine

import (
	"testing"

	"centre/internal/centre"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		// 象 500，两王离中心都是 3 步
		{"OrthogonalBishopMaterial", "4k3/8/8/8/8/8/8/B3K3 w - - 0 1", 500},
		// 500 + 白王 15 - 黑王 10 + 黑方被将军 20
		{"CheckBonusForWhite", "5k2/8/8/8/8/8/8/4KB2 b - - 0 1", 525},
		// 白方少子，但白王已在 e4 且不受攻击
		{"WhiteKingOnCentre", "n3k2n/q7/8/8/4K3/8/8/8 b - - 0 1", WinScore},
		{"BlackKingOnCentre", "8/8/8/3k4/8/8/8/QN2K3 w - - 0 1", -WinScore},
		{"Checkmate", "B5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", WinScore},
		{"Stalemate", "k7/8/1Q6/8/8/8/8/7K b - - 0 1", 0},
		{"BareKings", "8/8/8/3k4/8/8/8/4K3 w - - 0 1", 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(mustFEN(t, tt.fen)); got != tt.want {
				t.Fatalf("evaluate: got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestEvaluateIsColourSymmetric(t *testing.T) {
	if got := Evaluate(centre.NewInitialPosition()); got != 0 {
		t.Fatalf("initial position: got=%d want=0", got)
	}
	white := Evaluate(mustFEN(t, "4k3/8/8/8/8/8/8/RN2K3 w - - 0 1"))
	black := Evaluate(mustFEN(t, "rn2k3/8/8/8/8/8/8/4K3 w - - 0 1"))
	if white != -black {
		t.Fatalf("mirrored material: white=%d black=%d", white, black)
	}
}

func TestKingCentreBonus(t *testing.T) {
	tests := []struct {
		sq   centre.Square
		want int
	}{
		{centre.E4, 30},
		{centre.D5, 30},
		{centre.E1, 15},
		{centre.A1, 0},
		{centre.H8, 0},
		{centre.SquareAt(2, 2), 20},
	}
	for _, tt := range tests {
		if got := kingCentreBonus(tt.sq); got != tt.want {
			t.Fatalf("bonus %s: got=%d want=%d", tt.sq, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	if _, over := Terminal(centre.NewInitialPosition()); over {
		t.Fatalf("initial position is not terminal")
	}
	// 王在中心但被攻击：不算胜
	pos := mustFEN(t, "4k3/p7/8/8/4K3/8/8/1r6 b - - 0 1")
	if _, over := Terminal(pos); over {
		t.Fatalf("attacked centre king must not win: %s", pos.Encode())
	}
}

func TestStaticScoreSkipsTerminalCheck(t *testing.T) {
	for _, fen := range []string{
		centre.InitialFEN,
		"5k2/8/8/8/8/8/8/4KB2 b - - 0 1",
		"4k3/p7/8/8/4K3/8/8/1r6 b - - 0 1",
	} {
		pos := mustFEN(t, fen)
		if _, over := Terminal(pos); over {
			t.Fatalf("%s: unexpected terminal position", fen)
		}
		if got, want := staticScore(pos), Evaluate(pos); got != want {
			t.Fatalf("%s: got=%d want=%d", fen, got, want)
		}
	}

	// 王占中心：Evaluate 给胜负分，staticScore 只看子力和位置
	won := mustFEN(t, "n3k2n/q7/8/8/4K3/8/8/8 b - - 0 1")
	if got := Evaluate(won); got != WinScore {
		t.Fatalf("evaluate centre win: got=%d want=%d", got, WinScore)
	}
	if got := staticScore(won); got == WinScore {
		t.Fatalf("static score must not report the win: got=%d", got)
	}
}

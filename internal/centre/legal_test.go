package centre

import (
	"errors"
	"sort"
	"testing"

	"github.com/notnil/chess"
)

func mustFEN(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return pos
}

func movesToStrings(ms []Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func destinations(ms []Move) map[Square]bool {
	out := make(map[Square]bool, len(ms))
	for _, m := range ms {
		out[m.To] = true
	}
	return out
}

// 用 notnil/chess 当标准规则参照
func referenceMoves(t *testing.T, fen string, from chess.Square, filter bool) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("reference FEN %q: %v", fen, err)
	}
	game := chess.NewGame(opt)
	var out []string
	for _, m := range game.ValidMoves() {
		if filter && m.S1() != from {
			continue
		}
		s := m.S1().String() + m.S2().String()
		switch m.Promo() {
		case chess.Queen:
			s += "q"
		case chess.Rook:
			s += "r"
		case chess.Bishop:
			s += "b"
		case chess.Knight:
			s += "n"
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSwappedSlidersMatchStandardGeometry(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		refFEN  string
		wantLen int
	}{
		{"RookMovesLikeBishop", "k7/8/8/8/3R4/8/8/7K w - - 0 1", "k7/8/8/8/3B4/8/8/7K w - - 0 1", 13},
		{"BishopMovesLikeRook", "k7/8/8/8/3B4/8/8/7K w - - 0 1", "k7/8/8/8/3R4/8/8/7K w - - 0 1", 14},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pos := mustFEN(t, tt.fen)
			got := movesToStrings(LegalMovesFrom(pos, D4))
			want := referenceMoves(t, tt.refFEN, chess.D4, true)
			if !sameStrings(got, want) {
				t.Fatalf("destinations mismatch:\n got=%v\nwant=%v", got, want)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("destination count: got=%d want=%d", len(got), tt.wantLen)
			}
		})
	}
}

func TestSwappedSlidersOnEmptyBoard(t *testing.T) {
	rook := mustFEN(t, "8/8/8/8/3R4/8/8/8 w - - 0 1")
	got := destinations(LegalMoves(rook))
	for _, sq := range []string{"a1", "b2", "c3", "e5", "h8", "a7", "b6", "c5", "e3", "f2", "g1"} {
		s, _ := ParseSquare(sq)
		if !got[s] {
			t.Fatalf("rook on d4 should reach %s", sq)
		}
	}
	if len(got) != 13 {
		t.Fatalf("rook destinations: got=%d want=13", len(got))
	}

	bishop := mustFEN(t, "8/8/8/8/3B4/8/8/8 w - - 0 1")
	got = destinations(LegalMoves(bishop))
	for _, sq := range []string{"d1", "d8", "a4", "h4"} {
		s, _ := ParseSquare(sq)
		if !got[s] {
			t.Fatalf("bishop on d4 should reach %s", sq)
		}
	}
	if len(got) != 14 {
		t.Fatalf("bishop destinations: got=%d want=14", len(got))
	}
}

func TestStandardPiecesMatchReference(t *testing.T) {
	// 没有车和象的局面里，本变体和标准国际象棋完全一致
	fens := []string{
		"4k3/pppppppp/8/8/8/8/PPPPPPPP/4K3 w - - 0 1",
		"4k3/8/8/3q4/8/8/3N4/4K3 w - - 0 1",
		"4k3/4q3/8/8/8/8/4N3/4K3 w - - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
		"4k3/1P6/8/8/8/8/8/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/5p2/K7 b - - 0 1",
		"n3k3/1P6/8/8/2Q5/8/8/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			got := movesToStrings(LegalMoves(mustFEN(t, fen)))
			want := referenceMoves(t, fen, 0, false)
			if !sameStrings(got, want) {
				t.Fatalf("legal moves mismatch:\n got=%v\nwant=%v", got, want)
			}
		})
	}
}

func TestPinnedSwappedRookHasNoMoves(t *testing.T) {
	// 白车 e2 挡在王和黑象（走直线）之间，只能斜走 → 全部离开 e 线 → 不合法
	pos := mustFEN(t, "4b2k/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if got := LegalMovesFrom(pos, SquareAt(4, 1)); len(got) != 0 {
		t.Fatalf("pinned rook should have no moves, got %v", movesToStrings(got))
	}
	// 同样的局面换成白象（走直线），可以沿 e 线移动甚至吃掉钉住它的子
	pos = mustFEN(t, "4b2k/8/8/8/8/8/4B3/4K3 w - - 0 1")
	got := movesToStrings(LegalMovesFrom(pos, SquareAt(4, 1)))
	want := []string{"e2e3", "e2e4", "e2e5", "e2e6", "e2e7", "e2e8"}
	if !sameStrings(got, want) {
		t.Fatalf("pinned bishop moves: got=%v want=%v", got, want)
	}
}

func TestSwappedSliderChecksAreDetected(t *testing.T) {
	// 黑车 a5 斜线将军 e1
	pos := mustFEN(t, "7k/8/8/r7/8/8/8/4K3 w - - 0 1")
	if !pos.InCheck() {
		t.Fatalf("king on e1 should be attacked diagonally by rook a5")
	}
	for _, m := range LegalMoves(pos) {
		if m.To == SquareAt(3, 1) { // d2 仍在斜线上
			t.Fatalf("king may not stay on the rook's diagonal: %v", m)
		}
	}
	// 黑象 e8 沿 e 线将军
	pos = mustFEN(t, "4b2k/8/8/8/8/8/8/4K3 w - - 0 1")
	if !pos.InCheck() {
		t.Fatalf("king on e1 should be attacked along the file by bishop e8")
	}
}

func TestCastlingUnaffectedBySwap(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	legal := movesToStrings(LegalMoves(pos))
	for _, want := range []string{"e1g1", "e1c1"} {
		found := false
		for _, s := range legal {
			if s == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("castling %s should be legal, got %v", want, legal)
		}
	}

	m, _ := ParseMove("e1g1")
	if err := pos.Play(m); err != nil {
		t.Fatalf("play e1g1: %v", err)
	}
	if pos.Squares[F1] != MakePiece(White, Rook) || pos.Squares[G1] != MakePiece(White, King) {
		t.Fatalf("castling did not relocate pieces: %s", pos.Encode())
	}
	if pos.Castling&(WhiteKingside|WhiteQueenside) != 0 {
		t.Fatalf("white castling rights should be cleared: %s", pos.Encode())
	}
}

func TestPawnMovesNeverSameRank(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	for _, m := range LegalMoves(pos) {
		if pos.PieceAt(m.From).Type() == Pawn && m.From.Rank() == m.To.Rank() {
			t.Fatalf("pawn move along a rank: %v", m)
		}
	}
}

func playoutPositions(t *testing.T, plies int) []*Position {
	t.Helper()
	var out []*Position
	for _, fen := range []string{
		InitialFEN,
		"r3k2r/pppq1ppp/2n2n2/3pp3/3PP3/2N2N2/PPPQ1PPP/R3K2R w KQkq - 0 1",
		"4k3/1P4p1/8/3pP3/8/8/6P1/R3K2R w KQ d6 0 1",
	} {
		pos := mustFEN(t, fen)
		for ply := 0; ply < plies; ply++ {
			out = append(out, pos.Clone())
			moves := LegalMoves(pos)
			if len(moves) == 0 {
				break
			}
			if _, err := pos.MakeMove(moves[(ply*7+3)%len(moves)]); err != nil {
				t.Fatalf("make move: %v", err)
			}
		}
	}
	return out
}

func TestLegalMovesProperties(t *testing.T) {
	for _, pos := range playoutPositions(t, 30) {
		before := pos.Clone()
		first := LegalMoves(pos)
		second := LegalMoves(pos)
		if !sameStrings(movesToStrings(first), movesToStrings(second)) {
			t.Fatalf("LegalMoves not deterministic on %s", pos.Encode())
		}
		for i := 1; i < len(first); i++ {
			a, b := first[i-1], first[i]
			if a == b {
				t.Fatalf("duplicate move %v on %s", a, pos.Encode())
			}
			if a.From > b.From || (a.From == b.From && a.To > b.To) {
				t.Fatalf("moves not in square order: %v before %v", a, b)
			}
		}
		side := pos.SideToMove
		for _, m := range first {
			u, err := pos.MakeMove(m)
			if err != nil {
				t.Fatalf("make %v on %s: %v", m, before.Encode(), err)
			}
			if pos.IsInCheck(side) {
				t.Fatalf("move %v leaves own king attacked on %s", m, before.Encode())
			}
			if pos.Hash != pos.CalculateHash() {
				t.Fatalf("incremental hash mismatch after %v: got=%d want=%d", m, pos.Hash, pos.CalculateHash())
			}
			if err := pos.UnmakeMove(u); err != nil {
				t.Fatalf("unmake %v: %v", m, err)
			}
			if !pos.SameState(before) {
				t.Fatalf("make/unmake %v not reversible:\n got=%s\nwant=%s", m, pos.Encode(), before.Encode())
			}
		}
	}
}

func TestUndoTokenMisuse(t *testing.T) {
	pos := NewInitialPosition()
	e4, _ := ParseMove("e2e4")
	e5, _ := ParseMove("e7e5")
	u1, err := pos.MakeMove(e4)
	if err != nil {
		t.Fatalf("make e2e4: %v", err)
	}
	u2, err := pos.MakeMove(e5)
	if err != nil {
		t.Fatalf("make e7e5: %v", err)
	}
	if err := pos.UnmakeMove(u1); !errors.Is(err, ErrStaleUndo) {
		t.Fatalf("out-of-order undo: got=%v want=%v", err, ErrStaleUndo)
	}
	if err := pos.UnmakeMove(u2); err != nil {
		t.Fatalf("undo e7e5: %v", err)
	}
	if err := pos.UnmakeMove(u2); !errors.Is(err, ErrStaleUndo) {
		t.Fatalf("double undo: got=%v want=%v", err, ErrStaleUndo)
	}
	if err := NewInitialPosition().UnmakeMove(u1); !errors.Is(err, ErrStaleUndo) {
		t.Fatalf("undo on another board: got=%v want=%v", err, ErrStaleUndo)
	}
	if err := pos.UnmakeMove(u1); err != nil {
		t.Fatalf("undo e2e4: %v", err)
	}
	if !pos.SameState(NewInitialPosition()) {
		t.Fatalf("position not restored: %s", pos.Encode())
	}
}

func TestMakeMoveRejectsInconsistentMoves(t *testing.T) {
	pos := NewInitialPosition()
	tests := []struct {
		name string
		move Move
		want error
	}{
		{"EmptyOrigin", Move{From: SquareAt(4, 3), To: SquareAt(4, 4)}, ErrNoPiece},
		{"WrongSide", Move{From: SquareAt(4, 6), To: SquareAt(4, 4)}, ErrWrongSide},
		{"OwnCapture", Move{From: A1, To: SquareAt(0, 1)}, ErrOwnCapture},
		{"PromotionOffLastRank", Move{From: SquareAt(4, 1), To: SquareAt(4, 3), Promotion: Queen}, ErrBadPromote},
		{"OffBoard", NoMove, ErrOffBoard},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := pos.MakeMove(tt.move); !errors.Is(err, tt.want) {
				t.Fatalf("got=%v want=%v", err, tt.want)
			}
			if !pos.SameState(NewInitialPosition()) {
				t.Fatalf("rejected move changed the board: %s", pos.Encode())
			}
		})
	}
}

func TestEnPassantNeverTakesOwnPiece(t *testing.T) {
	// 手工摆出一个对不上的过路兵格，后面是自己的马
	pos := mustFEN(t, "4k3/8/8/8/8/8/3PN3/4K3 w - - 0 1")
	pos.EnPassant = SquareAt(4, 2)
	pos.Hash = pos.CalculateHash()
	before := pos.Clone()

	capture := Move{From: SquareAt(3, 1), To: SquareAt(4, 2)}
	if _, err := pos.MakeMove(capture); !errors.Is(err, ErrOwnCapture) {
		t.Fatalf("make d2e3: got=%v want=%v", err, ErrOwnCapture)
	}
	if !pos.SameState(before) {
		t.Fatalf("rejected capture changed the board: %s", pos.Encode())
	}
	for _, m := range LegalMoves(pos) {
		if m == capture {
			t.Fatalf("legal moves contain %v", capture)
		}
	}
	if got := pos.PieceAt(SquareAt(4, 1)); got != MakePiece(White, Knight) {
		t.Fatalf("knight on e2: got=%v", got)
	}
}

func TestRejectedCandidatesAreSkipped(t *testing.T) {
	pos := mustFEN(t, "4k3/p7/8/8/3R4/8/7P/2B1K3 w - - 0 1")
	before := pos.Clone()
	tests := []struct {
		name string
		move Move
	}{
		{"EmptyOrigin", Move{From: SquareAt(4, 3), To: SquareAt(4, 4)}},
		{"WrongSide", Move{From: SquareAt(0, 6), To: SquareAt(0, 5)}},
		{"OwnCapture", Move{From: SquareAt(3, 3), To: SquareAt(7, 1)}},
		{"BadPromotion", Move{From: SquareAt(7, 1), To: SquareAt(7, 2), Promotion: Queen}},
		{"OffBoard", NoMove},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if pos.kingSafeAfter(tt.move) {
				t.Fatalf("kingSafeAfter(%v): got=true want=false", tt.move)
			}
			if pos.IsLegal(tt.move) {
				t.Fatalf("IsLegal(%v): got=true want=false", tt.move)
			}
			if !pos.SameState(before) {
				t.Fatalf("rejected candidate changed the board: %s", pos.Encode())
			}
		})
	}
}

package centre

import (
	"errors"
	"testing"
)

func TestHashInitializedFromInitialAndFEN(t *testing.T) {
	pos := NewInitialPosition()
	if pos.Hash != pos.CalculateHash() {
		t.Fatalf("initial hash mismatch: got=%d want=%d", pos.Hash, pos.CalculateHash())
	}

	decoded, err := DecodePosition(pos.Encode())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Hash != pos.Hash {
		t.Fatalf("decoded hash mismatch: got=%d want=%d", decoded.Hash, pos.Hash)
	}
}

func TestMakeMoveHashIncrementalMatchesFullRecompute(t *testing.T) {
	pos := NewInitialPosition()
	for ply := 0; ply < 60; ply++ {
		moves := LegalMoves(pos)
		if len(moves) == 0 {
			return
		}
		mv := moves[len(moves)/2]
		if _, err := pos.MakeMove(mv); err != nil {
			t.Fatalf("make move failed at ply %d: %v %v", ply, mv, err)
		}
		got := pos.Hash
		want := pos.CalculateHash()
		if got != want {
			t.Fatalf("hash mismatch at ply %d: got=%d want=%d move=%v", ply, got, want, mv)
		}
	}
}

func TestEnPassantHashOnlyWhenCapturable(t *testing.T) {
	// d6 可吃（e5 有白兵）与不可吃时，同一摆法哈希应不同；不可吃时与无过路兵相同
	withEP := mustFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	noEP := mustFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - - 0 1")
	if withEP.Hash == noEP.Hash {
		t.Fatalf("capturable en passant must change the hash")
	}
	idleEP := mustFEN(t, "4k3/8/8/3p4/8/8/4P3/4K3 w - d6 0 1")
	idle := mustFEN(t, "4k3/8/8/3p4/8/8/4P3/4K3 w - - 0 1")
	if idleEP.Hash != idle.Hash {
		t.Fatalf("uncapturable en passant must not change the hash")
	}
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		InitialFEN,
		"r3k2r/pppq1ppp/2n2n2/3pp3/3PP3/2N2N2/PPPQ1PPP/R3K2R b Kq e3 4 17",
		"8/8/8/3k4/8/8/8/R3K3 w - - 99 120",
	} {
		pos, err := DecodePosition(fen)
		if err != nil {
			t.Fatalf("decode %q: %v", fen, err)
		}
		if got := pos.Encode(); got != fen {
			t.Fatalf("round trip: got=%q want=%q", got, fen)
		}
	}

	short, err := DecodePosition("8/8/8/3k4/8/8/8/R3K3 b")
	if err != nil {
		t.Fatalf("decode short FEN: %v", err)
	}
	if got, want := short.Encode(), "8/8/8/3k4/8/8/8/R3K3 b - - 0 1"; got != want {
		t.Fatalf("short FEN defaults: got=%q want=%q", got, want)
	}

	for _, bad := range []string{"", "8/8/8 w", "9/8/8/8/8/8/8/8 w", "8/8/8/8/8/8/8/7x w", "8/8/8/8/8/8/8/8 x"} {
		if _, err := DecodePosition(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDecodeRejectsBadEnPassant(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"OwnPieceBehind", "4k3/8/8/8/8/8/3PN3/4K3 w - e3 0 1"},
		{"WrongRankForSide", "4k3/8/8/8/4P3/8/8/4K3 w - e3 0 1"},
		{"NoPawnBehind", "4k3/8/8/8/8/8/8/4K3 w - e6 0 1"},
		{"KnightBehind", "4k3/8/8/4n3/8/8/8/4K3 w - e6 0 1"},
		{"OwnPawnBehind", "4k3/8/8/4P3/8/8/8/4K3 w - e6 0 1"},
		{"OccupiedSquare", "4k3/8/4n3/4p3/8/8/8/4K3 w - e6 0 1"},
		{"BlackToMoveRank6", "4k3/8/8/3pP3/8/8/8/4K3 b - d6 0 1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePosition(tt.fen); !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("decode %q: got=%v want=%v", tt.fen, err, ErrInvalidFEN)
			}
		})
	}

	for _, fen := range []string{
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
		"4k3/8/8/8/3Pp3/8/8/4K3 b - d3 0 1",
	} {
		if _, err := DecodePosition(fen); err != nil {
			t.Fatalf("decode %q: %v", fen, err)
		}
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e7e8q")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.From != SquareAt(4, 6) || m.To != E8 || m.Promotion != Queen {
		t.Fatalf("parsed move: got=%+v", m)
	}
	if m.String() != "e7e8q" {
		t.Fatalf("string: got=%q", m.String())
	}
	for _, bad := range []string{"e7", "e7e9", "e7e8k", "z1a1"} {
		if _, err := ParseMove(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

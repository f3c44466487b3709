package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"centre/internal/centre"
	"centre/internal/engine"
)

type playerConfig struct {
	Name string
	Cfg  engine.SearchConfig
}

func main() {
	mode := flag.String("mode", "match", "match: engine vs engine; perft: move generator benchmark")
	games := flag.Int("games", 10, "number of games to play")
	depthA := flag.Int("depth-a", 2, "search depth of engine A")
	depthB := flag.Int("depth-b", 3, "search depth of engine B")
	maxPlies := flag.Int("max-plies", 300, "adjudicate a draw after this many plies")
	parallel := flag.Bool("parallel", true, "search root moves in parallel")
	perftDepth := flag.Int("perft-depth", 4, "perft depth")
	fen := flag.String("fen", centre.InitialFEN, "start position")
	flag.Parse()

	start, err := centre.DecodePosition(*fen)
	if err != nil {
		log.Fatalf("bad -fen: %v", err)
	}

	switch *mode {
	case "perft":
		runPerft(start, *perftDepth)
	case "match":
		a := playerConfig{Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *depthA), Cfg: engine.SearchConfig{Depth: *depthA, Parallel: *parallel}}
		b := playerConfig{Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *depthB), Cfg: engine.SearchConfig{Depth: *depthB, Parallel: *parallel}}
		runMatch(start, a, b, *games, *maxPlies)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func runPerft(pos *centre.Position, depth int) {
	for d := 1; d <= depth; d++ {
		t0 := time.Now()
		n := perft(pos, d)
		dur := time.Since(t0)
		fmt.Printf("perft(%d) = %d  %v  %d nps\n", d, n, dur, int64(float64(n)/max(dur.Seconds(), 1e-9)))
	}
}

// perft 叶子节点数，只用本变体的合法着法
func perft(pos *centre.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := centre.LegalMoves(pos)
	if depth == 1 {
		return int64(len(moves))
	}
	var n int64
	for _, mv := range moves {
		_ = pos.WithMove(mv, func() error {
			n += perft(pos, depth-1)
			return nil
		})
	}
	return n
}

func runMatch(start *centre.Position, a, b playerConfig, games, maxPlies int) {
	aWins, bWins, draws := 0, 0, 0
	for g := 0; g < games; g++ {
		white, black := a, b
		if g%2 == 1 {
			white, black = b, a
		}
		fmt.Printf("\n=== Game %d: White [%s] vs Black [%s] ===\n", g+1, white.Name, black.Name)
		winner, reason := playGame(start.Clone(), white, black, maxPlies)

		aColor := centre.White
		if g%2 == 1 {
			aColor = centre.Black
		}
		switch winner {
		case centre.NoColor:
			draws++
			fmt.Printf("Result: Draw (%s)\n", reason)
		case aColor:
			aWins++
			fmt.Printf("Result: A %s Wins! (%s)\n", a.Name, reason)
		default:
			bWins++
			fmt.Printf("Result: B %s Wins! (%s)\n", b.Name, reason)
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("A %s: %d\n", a.Name, aWins)
	fmt.Printf("B %s: %d\n", b.Name, bWins)
	fmt.Printf("Draws: %d\n", draws)
}

// playGame 返回胜方（和棋为 NoColor）和结束原因
func playGame(pos *centre.Position, white, black playerConfig, maxPlies int) (centre.Color, string) {
	e := engine.NewEngine()
	for ply := 0; ply < maxPlies; ply++ {
		cfg := white.Cfg
		if pos.SideToMove == centre.Black {
			cfg = black.Cfg
		}
		res, err := e.Search(context.Background(), pos, cfg)
		if err != nil {
			log.Printf("search failed: %v", err)
			return centre.NoColor, "error"
		}
		if !res.HasMove() {
			o := pos.Outcome(true)
			return o.Winner, o.Termination.String()
		}
		if err := pos.Play(res.BestMove); err != nil {
			log.Printf("engine played illegal move %v: %v", res.BestMove, err)
			return pos.SideToMove.Other(), "illegal_move"
		}
		fmt.Printf("%3d. %v  score=%d nodes=%d time=%v\n", ply+1, res.BestMove, res.Score, res.Nodes, res.TimeUsed)

		if o := pos.Outcome(true); o.Over() {
			return o.Winner, o.Termination.String()
		}
		if w := pos.CentreWinner(); w != centre.NoColor {
			return w, "king_reached_center"
		}
	}
	return centre.NoColor, "max_plies"
}

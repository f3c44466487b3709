package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"centre/internal/centre"
	"centre/internal/engine"
)

func main() {
	fen := flag.String("fen", centre.InitialFEN, "position to inspect")
	depth := flag.Int("depth", engine.DefaultDepth, "search depth, 0 to skip the search")
	flag.Parse()

	pos, err := centre.DecodePosition(*fen)
	if err != nil {
		log.Fatalf("bad -fen: %v", err)
	}
	fmt.Println("FEN:", pos.Encode())
	fmt.Println("Pseudo legal moves:", len(pos.PseudoLegalMoves()))

	moves := centre.LegalMoves(pos)
	fmt.Printf("Legal moves (%d):", len(moves))
	for _, mv := range moves {
		fmt.Print(" ", mv)
	}
	fmt.Println()

	fmt.Println("In check:", pos.InCheck())
	fmt.Println("Evaluate:", engine.Evaluate(pos))
	if o := pos.Outcome(true); o.Over() {
		fmt.Printf("Outcome: %s, winner %v\n", o.Termination, o.Winner)
	}
	if w := pos.CentreWinner(); w != centre.NoColor {
		fmt.Printf("Centre: %v king holds the centre\n", w)
	}

	if *depth <= 0 {
		return
	}
	res, err := engine.NewEngine().Search(context.Background(), pos, engine.SearchConfig{Depth: *depth, Parallel: true})
	if err != nil {
		log.Fatalf("search: %v", err)
	}
	fmt.Printf("Best: %v score=%d depth=%d nodes=%d time=%v\n", res.BestMove, res.Score, res.Depth, res.Nodes, res.TimeUsed)
}

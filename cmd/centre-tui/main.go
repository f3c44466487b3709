package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"centre/internal/centre"
	"centre/internal/game"
	"centre/internal/tui"
)

func main() {
	p1 := flag.String("p1", "", "player 1 name (white in a two-player game)")
	p2 := flag.String("p2", "", "player 2 name (black in a two-player game)")
	mode := flag.String("mode", "ai", "game mode: human or ai")
	colour := flag.String("color", "white", "your colour against the engine: white or black")
	minutes := flag.Int("minutes", 5, "minutes per side: 1, 3, 5 or 10")
	depth := flag.Int("depth", 3, "engine search depth")
	fen := flag.String("fen", "", "start from this position instead of the initial one")
	parallel := flag.Bool("parallel", true, "search root moves in parallel")
	flag.Parse()

	opts := game.Options{
		WhiteName:   *p1,
		BlackName:   *p2,
		Mode:        game.Mode(strings.ToLower(*mode)),
		TimeControl: time.Duration(*minutes) * time.Minute,
		Depth:       *depth,
		Parallel:    *parallel,
		FEN:         *fen,
	}
	if opts.Mode == game.ModeAI {
		switch strings.ToLower(*colour) {
		case "white", "w":
			opts.HumanColor = centre.White
		case "black", "b":
			opts.HumanColor = centre.Black
		default:
			log.Fatalf("unknown colour %q", *colour)
		}
		// 人机对局时 player 1 是人
		if opts.HumanColor == centre.Black {
			opts.BlackName = *p1
		}
	}

	sess, err := game.NewSession("local", opts)
	if err != nil {
		log.Fatalf("new game: %v", err)
	}
	log.Printf("Starting game: %s vs %s, mode=%s, %v per side", sess.Opts.WhiteName, sess.Opts.BlackName, sess.Opts.Mode, sess.Opts.TimeControl)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	screen.EnableMouse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = tui.New(screen, sess).Run(ctx)
	stop()
	screen.Fini()

	if st := sess.Status(); st.Over() {
		fmt.Println(st.Message)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

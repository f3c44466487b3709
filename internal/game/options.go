package game

import (
	"fmt"
	"time"

	"centre/internal/centre"
	"centre/internal/engine"
)

type Mode string

const (
	ModeHuman Mode = "human" // 双人对局
	ModeAI    Mode = "ai"    // 人机对局
)

const (
	DefaultTimeControl = 5 * time.Minute
	MaxDepth           = 6

	defaultPlayer1 = "Player 1"
	defaultPlayer2 = "Player 2"
	aiName         = "AI"
)

// 允许的用时（每方）
var TimeControls = []time.Duration{
	1 * time.Minute,
	3 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// Options 新开一局的设置。零值即“双人、5 分钟、默认深度”。
type Options struct {
	WhiteName   string
	BlackName   string
	Mode        Mode
	HumanColor  centre.Color // 仅人机模式使用
	TimeControl time.Duration
	Depth       int
	Parallel    bool   // 引擎根节点并行
	FEN         string // 空表示标准开局
}

func (o Options) normalize() (Options, error) {
	switch o.Mode {
	case "":
		o.Mode = ModeHuman
	case ModeHuman, ModeAI:
	default:
		return o, fmt.Errorf("%w: %q", ErrBadMode, o.Mode)
	}

	if o.TimeControl == 0 {
		o.TimeControl = DefaultTimeControl
	}
	allowed := false
	for _, tc := range TimeControls {
		if o.TimeControl == tc {
			allowed = true
			break
		}
	}
	if !allowed {
		return o, fmt.Errorf("%w: got %v", ErrBadTimeControl, o.TimeControl)
	}

	if o.Depth == 0 {
		o.Depth = engine.DefaultDepth
	}
	if o.Depth < 1 || o.Depth > MaxDepth {
		return o, fmt.Errorf("%w: %d (1..%d)", ErrBadDepth, o.Depth, MaxDepth)
	}

	if o.Mode == ModeAI {
		if o.HumanColor != centre.White && o.HumanColor != centre.Black {
			return o, ErrBadColor
		}
		// 电脑一方固定叫 AI
		if o.HumanColor == centre.White {
			o.WhiteName = orDefault(o.WhiteName, defaultPlayer1)
			o.BlackName = aiName
		} else {
			o.BlackName = orDefault(o.BlackName, defaultPlayer1)
			o.WhiteName = aiName
		}
		return o, nil
	}

	o.HumanColor = centre.NoColor
	o.WhiteName = orDefault(o.WhiteName, defaultPlayer1)
	o.BlackName = orDefault(o.BlackName, defaultPlayer2)
	return o, nil
}

// AIColor 电脑执哪一方；双人模式返回 NoColor
func (o Options) AIColor() centre.Color {
	if o.Mode != ModeAI {
		return centre.NoColor
	}
	return o.HumanColor.Other()
}

func (o Options) name(c centre.Color) string {
	if c == centre.White {
		return o.WhiteName
	}
	return o.BlackName
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

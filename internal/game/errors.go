package game

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameOver          = errors.New("game is over")
	ErrBadTimeControl    = errors.New("time control must be 1, 3, 5 or 10 minutes")
	ErrBadDepth          = errors.New("search depth out of range")
	ErrBadMode           = errors.New("unknown game mode")
	ErrBadColor          = errors.New("human colour must be white or black")
	ErrPromotionRequired = errors.New("promotion piece required")
	ErrAITurn            = errors.New("it is the engine's turn")
	ErrAIThinking        = errors.New("engine is thinking")
)

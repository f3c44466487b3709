package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"centre/internal/centre"
	"centre/internal/engine"
	"centre/internal/game"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrAITurn),
		errors.Is(err, game.ErrAIThinking):
		return fiber.StatusConflict
	case errors.Is(err, centre.ErrIllegalMove),
		errors.Is(err, centre.ErrInvalidMove),
		errors.Is(err, centre.ErrInvalidSquare),
		errors.Is(err, centre.ErrInvalidFEN),
		errors.Is(err, game.ErrPromotionRequired),
		errors.Is(err, game.ErrBadTimeControl),
		errors.Is(err, game.ErrBadDepth),
		errors.Is(err, game.ErrBadMode),
		errors.Is(err, game.ErrBadColor):
		return fiber.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

func badJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "bad json"})
}

func (s *Server) handleNewGame(c *fiber.Ctx) error {
	var req NewGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c)
		}
	}
	opts, err := req.options()
	if err != nil {
		return writeError(c, err)
	}
	opts.Parallel = s.cfg.Parallel
	sess, err := s.games.NewGame(opts)
	if err != nil {
		return writeError(c, err)
	}
	log.Printf("[http] new game %s: %s vs %s, mode=%s, %v", sess.ID, sess.Opts.WhiteName, sess.Opts.BlackName, sess.Opts.Mode, sess.Opts.TimeControl)
	return c.JSON(snapshotToDTO(sess.Snapshot()))
}

func (s *Server) handleState(c *fiber.Ctx) error {
	var req StateRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	sess, err := s.games.Get(req.GameID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(snapshotToDTO(sess.Snapshot()))
}

func (s *Server) handlePlay(c *fiber.Ctx) error {
	var req PlayRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	sess, err := s.games.Get(req.GameID)
	if err != nil {
		return writeError(c, err)
	}
	mv, err := dtoToMove(req.Move)
	if err != nil {
		return writeError(c, err)
	}
	if err := sess.Play(mv); err != nil {
		return writeError(c, err)
	}
	state := snapshotToDTO(sess.Snapshot())
	s.hub.broadcast(sess.ID, newMessage(msgGameState, state))
	return c.JSON(state)
}

func (s *Server) handleAiMove(c *fiber.Ctx) error {
	var req AiMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	limit := time.Duration(req.TimeMs) * time.Millisecond
	if req.GameID != "" {
		return s.aiMoveInGame(c, req.GameID, limit)
	}
	if req.Position == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "missing game_id or position"})
	}
	return s.analyse(c, req, limit)
}

// 替对局当前一方走一步
func (s *Server) aiMoveInGame(c *fiber.Ctx, id string, limit time.Duration) error {
	sess, err := s.games.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := s.searchContext(limit)
	defer cancel()

	// 每次搜索一个 Engine，节点数互不干扰
	res, err := sess.AIMove(ctx, engine.NewEngine())
	if err != nil {
		return writeError(c, err)
	}
	state := snapshotToDTO(sess.Snapshot())
	s.hub.broadcast(sess.ID, newMessage(msgGameState, state))
	return c.JSON(AiMoveResponse{
		BestMove: optionalMove(res.Move),
		Score:    res.Search.Score,
		Depth:    res.Search.Depth,
		Nodes:    res.Search.Nodes,
		TimeMs:   res.Search.TimeUsed.Milliseconds(),
		Fallback: res.Fallback,
		State:    &state,
		ToMove:   state.ToMove,
	})
}

// 只思考不落子
func (s *Server) analyse(c *fiber.Ctx, req AiMoveRequest, limit time.Duration) error {
	pos, err := centre.DecodePosition(req.Position)
	if err != nil {
		return writeError(c, err)
	}
	depth := req.MaxDepth
	if depth <= 0 {
		depth = engine.DefaultDepth
	}
	if depth > game.MaxDepth {
		return writeError(c, game.ErrBadDepth)
	}
	ctx, cancel := s.searchContext(limit)
	defer cancel()

	res, err := engine.NewEngine().Search(ctx, pos, engine.SearchConfig{Depth: depth, Parallel: s.cfg.Parallel})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(AiMoveResponse{
		BestMove: optionalMove(res.BestMove),
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		TimeMs:   res.TimeUsed.Milliseconds(),
		Position: pos.Encode(),
		ToMove:   sideToInt(pos.SideToMove),
	})
}

// GET /api/legal/:game_id?from=e2，不带 from 时返回全部合法着法
func (s *Server) handleLegal(c *fiber.Ctx) error {
	sess, err := s.games.Get(c.Params("game_id"))
	if err != nil {
		return writeError(c, err)
	}
	from := c.Query("from")
	if from == "" {
		return c.JSON(LegalResponse{GameID: sess.ID, Moves: movesToDTO(sess.Snapshot().LegalMoves)})
	}
	sq, err := centre.ParseSquare(from)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(LegalResponse{GameID: sess.ID, From: from, Moves: movesToDTO(sess.LegalFrom(sq))})
}

package engine

import (
	"context"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"centre/internal/centre"
)

// 搜索配置
type SearchConfig struct {
	Depth    int           // 固定搜索深度（ply），<=0 时用 DefaultDepth
	Parallel bool          // 根节点各着法在克隆的棋盘上并行搜索
	Timeout  time.Duration // 0 表示不限制；超时即取消，不给出着法
}

// 搜索结果
type SearchResult struct {
	BestMove centre.Move   // 最佳着法；无合法着法时为 centre.NoMove
	Score    int           // 评估分（正：白方好，负：黑方好）
	Depth    int           // 搜索深度
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
}

func (r SearchResult) HasMove() bool { return !r.BestMove.IsNull() }

// Search 根节点：白方走为极大层，黑方走为极小层，窗口 (-Inf, +Inf)。
// 局面在返回时与调用前完全一致。
func (e *Engine) Search(ctx context.Context, pos *centre.Position, cfg SearchConfig) (SearchResult, error) {
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	start := time.Now()
	atomic.StoreInt64(&e.nodes, 0)

	maximizing := pos.SideToMove == centre.White
	var (
		score int
		move  centre.Move
		err   error
	)
	if cfg.Parallel {
		score, move, err = e.parallelRoot(ctx, pos, cfg.Depth, maximizing)
	} else {
		score, move, err = e.AlphaBeta(ctx, pos, cfg.Depth, -Inf, Inf, maximizing)
	}
	res := SearchResult{
		BestMove: move,
		Score:    score,
		Depth:    cfg.Depth,
		Nodes:    e.Nodes(),
		TimeUsed: time.Since(start),
	}
	if err != nil {
		res.BestMove = centre.NoMove
		return res, err
	}
	return res, nil
}

// AlphaBeta 固定深度 minimax + alpha-beta 剪枝。
//
// 顺序：先判终局（标准终局或王占中心），再看深度是否用完，再生成着法；
// 最佳着法初始为第一个着法，保证只要有着法就一定返回一个。
// 某一支走子失败只跳过这一支；ctx 被取消时立即返回错误且不给出着法。
func (e *Engine) AlphaBeta(ctx context.Context, pos *centre.Position, depth, alpha, beta int, maximizing bool) (int, centre.Move, error) {
	if err := ctx.Err(); err != nil {
		return 0, centre.NoMove, err
	}
	atomic.AddInt64(&e.nodes, 1)

	if score, over := Terminal(pos); over {
		return score, centre.NoMove, nil
	}
	if depth <= 0 {
		return staticScore(pos), centre.NoMove, nil
	}

	moves := centre.LegalMoves(pos)
	if len(moves) == 0 {
		// 终局判断没有标出来却没有着法：兜底按静态评估
		return staticScore(pos), centre.NoMove, nil
	}

	bestMove := moves[0]
	if maximizing {
		bestScore := -Inf
		for _, mv := range moves {
			score, err := e.child(ctx, pos, mv, depth-1, alpha, beta, false)
			if err != nil {
				if isAbort(err) {
					return 0, centre.NoMove, err
				}
				log.Printf("[engine] skip %v at depth %d: %v", mv, depth, err)
				continue
			}
			if score > bestScore {
				bestScore = score
				bestMove = mv
			}
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return bestScore, bestMove, nil
	}

	bestScore := Inf
	for _, mv := range moves {
		score, err := e.child(ctx, pos, mv, depth-1, alpha, beta, true)
		if err != nil {
			if isAbort(err) {
				return 0, centre.NoMove, err
			}
			log.Printf("[engine] skip %v at depth %d: %v", mv, depth, err)
			continue
		}
		if score < bestScore {
			bestScore = score
			bestMove = mv
		}
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return bestScore, bestMove, nil
}

// 走一步、递归、撤销；撤销由 WithMove 保证
func (e *Engine) child(ctx context.Context, pos *centre.Position, mv centre.Move, depth, alpha, beta int, maximizing bool) (int, error) {
	if e.fault != nil {
		if err := e.fault(mv); err != nil {
			return 0, err
		}
	}
	var score int
	err := pos.WithMove(mv, func() error {
		s, _, err := e.AlphaBeta(ctx, pos, depth, alpha, beta, maximizing)
		score = s
		return err
	})
	return score, err
}

// 根节点并行：每个着法在自己的克隆棋盘上用全窗口搜索，
// 再按生成顺序取第一个最优，结果与串行 alpha-beta 相同。
func (e *Engine) parallelRoot(ctx context.Context, pos *centre.Position, depth int, maximizing bool) (int, centre.Move, error) {
	if err := ctx.Err(); err != nil {
		return 0, centre.NoMove, err
	}
	atomic.AddInt64(&e.nodes, 1)

	if score, over := Terminal(pos); over {
		return score, centre.NoMove, nil
	}
	if depth <= 0 {
		return staticScore(pos), centre.NoMove, nil
	}
	moves := centre.LegalMoves(pos)
	if len(moves) == 0 {
		return staticScore(pos), centre.NoMove, nil
	}

	type rootResult struct {
		score int
		ok    bool
	}
	results := make([]rootResult, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, mv := range moves {
		i, mv := i, mv
		g.Go(func() error {
			// 每个 goroutine 用自己的棋盘，避免并发走子
			local := pos.Clone()
			score, err := e.child(gctx, local, mv, depth-1, -Inf, Inf, !maximizing)
			if err != nil {
				if isAbort(err) {
					return err
				}
				log.Printf("[engine] skip root move %v: %v", mv, err)
				return nil
			}
			results[i] = rootResult{score: score, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, centre.NoMove, err
	}

	bestMove := moves[0]
	bestScore := -Inf
	if !maximizing {
		bestScore = Inf
	}
	for i, r := range results {
		if !r.ok {
			continue
		}
		if (maximizing && r.score > bestScore) || (!maximizing && r.score < bestScore) {
			bestScore = r.score
			bestMove = moves[i]
		}
	}
	return bestScore, bestMove, nil
}

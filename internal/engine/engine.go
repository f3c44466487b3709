package engine

import (
	"context"
	"errors"
	"sync/atomic"

	"centre/internal/centre"
)

const (
	// 一个足够大的值，当成正负无穷
	Inf = 1_000_000_000

	DefaultDepth = 3
)

// Engine 本身不保存局面，只记节点数；同一个 Engine 可以同时给多个棋盘搜索，
// 但同一个棋盘同一时间只能有一条搜索路径在走子/撤销。
type Engine struct {
	nodes int64

	// 测试用：返回非 nil 时这一支按走子失败处理，必须能被并发调用
	fault func(centre.Move) error
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Nodes() int64 {
	return atomic.LoadInt64(&e.nodes)
}

// 取消/超时要一路返回；其他错误（走子失败）只跳过这一支
func isAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

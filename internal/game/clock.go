package game

import (
	"sync"
	"time"
)

// Clock 倒计时钟。时间点由调用方传入，便于在测试里控制。
type Clock struct {
	mu          sync.Mutex
	timeLeft    time.Duration
	lastStarted time.Time
	isRunning   bool
}

func NewClock(initial time.Duration) *Clock {
	return &Clock{timeLeft: initial}
}

func (c *Clock) Start(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = now
		c.isRunning = true
	}
}

func (c *Clock) Stop(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.timeLeft -= now.Sub(c.lastStarted)
		c.isRunning = false
	}
}

// Remaining 剩余时间，不小于 0
func (c *Clock) Remaining(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	left := c.timeLeft
	if c.isRunning {
		left -= now.Sub(c.lastStarted)
	}
	return max(left, 0)
}

func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning
}

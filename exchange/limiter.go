package exchange

import (
	"context"
	"sync"
	"time"
)

// RateLimiter 控制对公共行情接口的请求速率，避免触发交易所限流。
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// PacedLimiter 按最小间隔放行请求，允许一定突发额度。
type PacedLimiter struct {
	interval time.Duration
	burst    int

	mu     sync.Mutex
	credit int
	next   time.Time
}

// NewPacedLimiter rate 为每秒请求数，burst 为可立即放行的突发数。
func NewPacedLimiter(rate float64, burst int) *PacedLimiter {
	if rate <= 0 {
		rate = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &PacedLimiter{
		interval: time.Duration(float64(time.Second) / rate),
		burst:    burst,
		credit:   burst,
	}
}

// Wait 阻塞到下一次放行；ctx 先到期时立即返回其错误，不再占用调用预算。
func (l *PacedLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	if now.Sub(l.next) > time.Duration(l.burst)*l.interval {
		// 长时间空闲后恢复突发额度
		l.credit = l.burst
		l.next = now
	}
	if l.credit > 0 {
		l.credit--
		l.next = now.Add(l.interval)
		l.mu.Unlock()
		return nil
	}
	wait := l.next.Sub(now)
	l.next = l.next.Add(l.interval)
	l.mu.Unlock()
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

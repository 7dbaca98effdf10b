// Package stream maintains live top-of-book caches over exchange websockets.
package stream

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// BinanceFeed 订阅 bookTicker combined stream，缓存每个符号的最新盘口。
// REST 轮询之外的低延迟来源；断线自动重连。
type BinanceFeed struct {
	Endpoint  string            // 默认 wss://stream.binance.com:9443
	Dialer    *websocket.Dialer
	Staleness time.Duration     // 超过该时长的缓存视为失效
	Log       *zap.Logger

	symbols []string

	mu    sync.RWMutex
	books map[string]TopOfBook
}

// TopOfBook 单符号的最新盘口缓存。
type TopOfBook struct {
	Symbol    string
	Bid, Ask  float64
	UpdatedAt time.Time
}

func NewBinanceFeed(symbols []string, log *zap.Logger) *BinanceFeed {
	up := make([]string, 0, len(symbols))
	for _, s := range symbols {
		up = append(up, strings.ToUpper(s))
	}
	return &BinanceFeed{
		Endpoint:  "wss://stream.binance.com:9443",
		Dialer:    websocket.DefaultDialer,
		Staleness: 5 * time.Second,
		Log:       log,
		symbols:   up,
		books:     make(map[string]TopOfBook),
	}
}

// Run 阻塞运行直到 ctx 结束；连接失败按固定退避重连。
func (f *BinanceFeed) Run(ctx context.Context) {
	for ctx.Err() == nil {
		if err := f.connectAndRead(ctx); err != nil && ctx.Err() == nil {
			f.Log.Warn("binance stream disconnected", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (f *BinanceFeed) connectAndRead(ctx context.Context) error {
	streams := make([]string, 0, len(f.symbols))
	for _, s := range f.symbols {
		streams = append(streams, strings.ToLower(s)+"@bookTicker")
	}
	u := url.URL{
		Scheme:   "wss",
		Host:     strings.TrimPrefix(f.Endpoint, "wss://"),
		Path:     "/stream",
		RawQuery: "streams=" + strings.Join(streams, "/"),
	}

	conn, _, err := f.Dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	f.Log.Info("binance stream connected", zap.Strings("symbols", f.symbols))

	// ctx 取消时强制断开，避免下一次扫描开始时连接仍然挂着
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		symbol, bid, ask, err := ParseBookTicker(message)
		if err != nil || symbol == "" {
			continue
		}
		f.mu.Lock()
		f.books[symbol] = TopOfBook{Symbol: symbol, Bid: bid, Ask: ask, UpdatedAt: time.Now()}
		f.mu.Unlock()
	}
}

// Top 返回符号的缓存盘口；无数据或已过期时 ok 为 false。
func (f *BinanceFeed) Top(symbol string) (TopOfBook, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	b, ok := f.books[strings.ToUpper(symbol)]
	if !ok || time.Since(b.UpdatedAt) > f.Staleness {
		return TopOfBook{}, false
	}
	return b, true
}

package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"arb-scanner-go/exchange"
	"arb-scanner-go/metrics"
	"arb-scanner-go/rates"
)

// AggregatorConfig 聚合层的并发与重试参数。
type AggregatorConfig struct {
	CallTimeout  time.Duration // 单次适配器调用的上限，独立于整体 deadline
	MaxAttempts  int           // <=1 不重试；重试是可选项，默认关闭
	RetryBackoff time.Duration // 首次重试前的延迟，之后翻倍
}

// Aggregator 并发执行所有选中的适配器，收集成功子集。
// 部分成功是常态：单个交易所失败绝不让整次扫描失败。
type Aggregator struct {
	cfg AggregatorConfig
	log *zap.Logger
}

func NewAggregator(cfg AggregatorConfig, log *zap.Logger) *Aggregator {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 5 * time.Second
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 200 * time.Millisecond
	}
	return &Aggregator{cfg: cfg, log: log}
}

// Aggregate 对 symbols 中的每个交易所并发发起一次抓取。
// ctx 携带整体 deadline；超过 deadline 的调用通过 context 取消，不会悬挂连接。
// 返回成功的报价集合与失败原因集合，两者键不相交。
func (a *Aggregator) Aggregate(ctx context.Context, adapters map[string]exchange.Adapter, symbols map[string]string, conv rates.Conversion) (map[string]exchange.Quote, map[string]error) {
	quotes := make(map[string]exchange.Quote, len(symbols))
	failures := make(map[string]error)

	// 缺适配器的交易所先记入 failures，再发起并发抓取；
	// goroutine 起跑后 failures 只能在 mu 下写。
	pending := make(map[string]exchange.Adapter, len(symbols))
	for id := range symbols {
		ad, ok := adapters[id]
		if !ok {
			failures[id] = errors.New("no adapter constructed for " + id)
			continue
		}
		pending[id] = ad
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for id, ad := range pending {
		wg.Add(1)
		go func(id, symbol string, ad exchange.Adapter) {
			defer wg.Done()
			q, err := a.fetchOne(ctx, ad, symbol, conv)
			mu.Lock()
			if err != nil {
				failures[id] = err
			} else {
				quotes[id] = q
			}
			mu.Unlock()
		}(id, symbols[id], ad)
	}
	wg.Wait()
	return quotes, failures
}

// fetchOne 带单调用超时与可选退避重试地执行一次抓取。
func (a *Aggregator) fetchOne(ctx context.Context, ad exchange.Adapter, symbol string, conv rates.Conversion) (exchange.Quote, error) {
	var lastErr error
	backoff := a.cfg.RetryBackoff

	for attempt := 1; attempt <= a.cfg.MaxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
		start := time.Now()
		q, err := ad.Fetch(callCtx, symbol, conv)
		cancel()
		metrics.FetchLatency.WithLabelValues(ad.Name()).Observe(time.Since(start).Seconds())

		if err == nil {
			return q, nil
		}
		lastErr = err

		kind := errKind(err)
		metrics.FetchErrors.WithLabelValues(ad.Name(), kind.String()).Inc()
		a.log.Debug("fetch failed",
			zap.String("exchange", ad.Name()),
			zap.String("symbol", symbol),
			zap.Int("attempt", attempt),
			zap.String("kind", kind.String()),
			zap.Error(err))

		// 配置与校验失败重试无意义；deadline 已过也没有预算可用
		if kind == exchange.KindConfig || kind == exchange.KindValidate {
			break
		}
		if attempt == a.cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return exchange.Quote{}, lastErr
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return exchange.Quote{}, lastErr
}

func errKind(err error) exchange.Kind {
	var fe *exchange.FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return exchange.KindNetwork
}

package scan

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"arb-scanner-go/exchange"
	"arb-scanner-go/metrics"
	"arb-scanner-go/rates"
)

// SymbolTable 资产 -> 交易所 id -> 该所的 instrument 符号。静态配置数据。
type SymbolTable map[string]map[string]string

// Scanner 把汇率快照、并发聚合与套利求解串成一次完整扫描。
// 适配器与 HTTP 客户端跨扫描复用，但每次扫描是独立的工作单元，
// 不保留任何跨扫描状态。
type Scanner struct {
	adapters map[string]exchange.Adapter
	provider rates.Provider
	currency string
	agg      *Aggregator
	log      *zap.Logger

	mu      sync.RWMutex
	symbols SymbolTable
}

func NewScanner(adapters map[string]exchange.Adapter, symbols SymbolTable, provider rates.Provider, currency string, aggCfg AggregatorConfig, log *zap.Logger) *Scanner {
	return &Scanner{
		adapters: adapters,
		provider: provider,
		currency: strings.ToUpper(currency),
		agg:      NewAggregator(aggCfg, log),
		symbols:  symbols,
		log:      log,
	}
}

// SetSymbols 原子替换符号表；配置热更新在两次扫描之间调用。
func (s *Scanner) SetSymbols(symbols SymbolTable) {
	s.mu.Lock()
	s.symbols = symbols
	s.mu.Unlock()
}

// Run 执行一次扫描：取一次汇率 -> 并发聚合 -> 求解 -> 组装结果。
// 不做整体重试；调用方按自己的节奏重新触发。
func (s *Scanner) Run(ctx context.Context, req Request) Result {
	start := time.Now()
	if req.Deadline <= 0 {
		req.Deadline = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, req.Deadline)
	defer cancel()

	// 汇率每次扫描只取一次，所有适配器共享同一快照
	conv := rates.Snapshot(ctx, s.provider, "USD", s.currency)

	symbols, failures := s.lookupSymbols(req)
	quotes, aggFailures := s.agg.Aggregate(ctx, s.adapters, symbols, conv)
	for id, err := range aggFailures {
		failures[id] = err
	}

	res := Result{
		Asset:     req.Asset,
		Quotes:    quotes,
		Errors:    failures,
		StartedAt: start,
		Elapsed:   time.Since(start),
	}
	switch {
	case len(quotes) == 0:
		res.Status = StatusNoData
	case len(quotes) == 1:
		res.Status = StatusInsufficientData
	default:
		res.Status = StatusOpportunity
		res.Opportunity = Resolve(quotes, req.Investment, req.MinProfitPct)
	}

	metrics.ScansTotal.WithLabelValues(string(res.Status)).Inc()
	metrics.QuoteCount.Set(float64(len(quotes)))
	if res.Opportunity != nil {
		metrics.NetProfitPct.Set(res.Opportunity.NetProfitPct)
	}

	s.log.Info("scan complete",
		zap.String("asset", req.Asset),
		zap.String("status", string(res.Status)),
		zap.Int("quotes", len(quotes)),
		zap.Int("failures", len(failures)),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// lookupSymbols 去重请求的交易所 id 并查符号表；
// 缺表的交易所等价于单所抓取失败，不中止扫描。
func (s *Scanner) lookupSymbols(req Request) (map[string]string, map[string]error) {
	s.mu.RLock()
	table := s.symbols[strings.ToUpper(req.Asset)]
	s.mu.RUnlock()

	ids := dedupe(req.Exchanges)
	symbols := make(map[string]string, len(ids))
	failures := make(map[string]error)
	for _, id := range ids {
		if table == nil {
			failures[id] = &exchange.FetchError{Exchange: id, Kind: exchange.KindConfig,
				Err: errUnsupportedAsset(req.Asset)}
			continue
		}
		sym, ok := table[id]
		if !ok || sym == "" {
			failures[id] = &exchange.FetchError{Exchange: id, Kind: exchange.KindConfig,
				Err: errNoSymbol(req.Asset, id)}
			continue
		}
		symbols[id] = sym
	}
	return symbols, failures
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

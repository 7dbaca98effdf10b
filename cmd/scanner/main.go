package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"arb-scanner-go/config"
	"arb-scanner-go/exchange"
	"arb-scanner-go/infrastructure/logger"
	"arb-scanner-go/metrics"
	"arb-scanner-go/rates"
	"arb-scanner-go/scan"
	"arb-scanner-go/stream"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	asset := flag.String("asset", "BTC", "要扫描的资产，如 BTC")
	exchangesFlag := flag.String("exchanges", "", "逗号分隔的交易所 id，留空使用全部启用的交易所")
	investment := flag.Float64("investment", 0, "投资额（结算货币），0 用配置默认")
	minProfit := flag.Float64("minProfit", -1, "净利阈值（百分比），负数用配置默认")
	once := flag.Bool("once", false, "只扫描一次并退出")
	useStream := flag.Bool("stream", false, "订阅 binance websocket 行情并顶替其 REST 适配器")
	flag.Parse()

	// .env 仅提供环境变量，缺失不算错误
	_ = godotenv.Load()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		stdlog.Fatalf("加载配置失败: %v", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Warn("signal received, shutting down")
		cancel()
	}()

	metrics.Serve(ctx, cfg.Metrics.ListenAddr, log)

	// 流模式：缓存 binance 盘口，扫描读缓存而不是发 REST 请求
	var feed *stream.BinanceFeed
	if *useStream {
		feed = stream.NewBinanceFeed(binanceSymbols(cfg.Assets), log)
		go feed.Run(ctx)
	}

	scanner := buildScanner(cfg, feed, log)

	// 配置热更新：符号表在两次扫描之间被原子替换
	go func() {
		w := config.Watcher{Path: *cfgPath, Log: log}
		if err := w.Start(ctx, func(newCfg config.AppConfig) {
			scanner.SetSymbols(newCfg.Assets)
			log.Info("registry reloaded", zap.Int("assets", len(newCfg.Assets)))
		}); err != nil && ctx.Err() == nil {
			log.Warn("config watcher stopped", zap.Error(err))
		}
	}()

	req := scan.Request{
		Asset:        strings.ToUpper(*asset),
		Exchanges:    requestedExchanges(*exchangesFlag, cfg),
		Investment:   cfg.Scanner.Investment,
		MinProfitPct: cfg.Scanner.MinProfitPct,
		Deadline:     cfg.Scanner.ScanDeadline(),
	}
	if *investment > 0 {
		req.Investment = *investment
	}
	if *minProfit >= 0 {
		req.MinProfitPct = *minProfit
	}

	log.Info("scanner started",
		zap.String("asset", req.Asset),
		zap.Strings("exchanges", req.Exchanges),
		zap.Float64("investment", req.Investment),
		zap.Float64("min_profit_pct", req.MinProfitPct))
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	runScan(ctx, scanner, req, log)
	if *once {
		return
	}

	t := time.NewTicker(cfg.Scanner.RefreshInterval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			runScan(ctx, scanner, req, log)
		}
	}
}

func runScan(ctx context.Context, scanner *scan.Scanner, req scan.Request, log *zap.Logger) {
	res := scanner.Run(ctx, req)
	for id, err := range res.Errors {
		log.Debug("exchange skipped", zap.String("exchange", id), zap.Error(err))
	}
	switch res.Status {
	case scan.StatusNoData:
		log.Warn("no data from any exchange", zap.String("asset", req.Asset))
	case scan.StatusInsufficientData:
		log.Warn("only one exchange returned data, nothing to compare",
			zap.String("asset", req.Asset))
	case scan.StatusOpportunity:
		opp := res.Opportunity
		fields := []zap.Field{
			zap.String("asset", req.Asset),
			zap.String("buy", opp.BuyExchange),
			zap.Float64("buy_px", opp.BuyPrice),
			zap.String("sell", opp.SellExchange),
			zap.Float64("sell_px", opp.SellPrice),
			zap.Float64("spread", opp.Spread),
			zap.Float64("net_profit_pct", opp.NetProfitPct),
			zap.Float64("net_profit", opp.NetProfit),
		}
		if opp.Profitable {
			log.Info("opportunity", fields...)
		} else {
			log.Info("no profitable opportunity", fields...)
		}
	}
}

// buildScanner 按配置构造全部启用的适配器与汇率来源；
// feed 非空时 binance 走流缓存而不是 REST。
func buildScanner(cfg config.AppConfig, feed *stream.BinanceFeed, log *zap.Logger) *scan.Scanner {
	client := exchange.NewDefaultHTTPClient()
	client.Timeout = cfg.Scanner.CallTimeout()
	limiter := exchange.NewPacedLimiter(cfg.Scanner.RestRate, cfg.Scanner.RestBurst)

	adapters := make(map[string]exchange.Adapter)
	for _, id := range exchange.Supported() {
		ec := cfg.Exchange[id]
		if !ec.IsEnabled() {
			continue
		}
		ad, err := exchange.New(id, exchange.Options{
			BaseURL: ec.BaseURL,
			FeeRate: ec.FeeRate,
			Client:  client,
			Limiter: limiter,
		})
		if err != nil {
			log.Warn("adapter init failed", zap.String("exchange", id), zap.Error(err))
			continue
		}
		adapters[id] = ad
	}
	if feed != nil {
		adapters["binance"] = streamAdapter(cfg, feed)
	}

	provider := &rates.HTTPProvider{
		BaseURL:  cfg.Rates.BaseURL,
		Fallback: cfg.Rates.FallbackRate,
		Log:      log,
	}

	return scan.NewScanner(adapters, cfg.Assets, provider, cfg.Currency, scan.AggregatorConfig{
		CallTimeout:  cfg.Scanner.CallTimeout(),
		MaxAttempts:  cfg.Scanner.MaxAttempts,
		RetryBackoff: cfg.Scanner.RetryBackoff(),
	}, log)
}

// streamAdapter 用流缓存顶替 binance REST 适配器；费率沿用配置或内置默认。
func streamAdapter(cfg config.AppConfig, feed *stream.BinanceFeed) *stream.Adapter {
	fee := cfg.Exchange["binance"].FeeRate
	if fee <= 0 {
		fee = 0.001
	}
	return &stream.Adapter{Feed: feed, ID: "binance", FeeRate: fee}
}

// binanceSymbols 汇总符号表里全部 binance 符号，供流订阅使用。
func binanceSymbols(assets map[string]map[string]string) []string {
	seen := make(map[string]struct{}, len(assets))
	syms := make([]string, 0, len(assets))
	for _, table := range assets {
		sym := strings.ToUpper(table["binance"])
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

func requestedExchanges(flagVal string, cfg config.AppConfig) []string {
	if flagVal != "" {
		return strings.Split(flagVal, ",")
	}
	ids := make([]string, 0)
	for _, id := range exchange.Supported() {
		if cfg.Exchange[id].IsEnabled() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Package metrics provides Prometheus metrics for the arbitrage scanner
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	ScansTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arb_scans_total",
		Help: "Completed scans by result status",
	}, []string{"status"})

	FetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arb_fetch_errors_total",
		Help: "Adapter fetch failures by exchange and error kind",
	}, []string{"exchange", "kind"})

	FetchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arb_fetch_latency_seconds",
		Help:    "Time to obtain one exchange quote",
		Buckets: prometheus.DefBuckets,
	}, []string{"exchange"})

	QuoteCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arb_scan_quotes",
		Help: "Successful quotes in the last scan",
	})

	NetProfitPct = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arb_net_profit_pct",
		Help: "Net profit percent of the last resolved opportunity",
	})
)

func init() {
	prometheus.MustRegister(
		ScansTotal,
		FetchErrors,
		FetchLatency,
		QuoteCount,
		NetProfitPct,
	)
}

// Serve 启动 /metrics 与 /healthz，ctx 结束时优雅关闭。addr 为空则不启动。
func Serve(ctx context.Context, addr string, log *zap.Logger) {
	if addr == "" {
		log.Info("metrics disabled: empty addr")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("metrics server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics server shutdown error", zap.Error(err))
		}
	}()
}

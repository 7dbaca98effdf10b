package main

import (
	"reflect"
	"testing"

	"go.uber.org/zap"

	"arb-scanner-go/config"
	"arb-scanner-go/stream"
)

func TestBinanceSymbols(t *testing.T) {
	assets := map[string]map[string]string{
		"BTC":  {"binance": "btcusdt", "kraken": "XBTUSDT"},
		"WBTC": {"binance": "BTCUSDT"},
		"ETH":  {"binance": "ETHUSDT"},
		"ADA":  {"coinspot": "ADA"},
	}
	got := binanceSymbols(assets)
	want := []string{"BTCUSDT", "ETHUSDT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestStreamAdapterAnswersAsBinance(t *testing.T) {
	feed := stream.NewBinanceFeed([]string{"BTCUSDT"}, zap.NewNop())
	cfg := config.AppConfig{Exchange: map[string]config.ExchangeConfig{}}

	ad := streamAdapter(cfg, feed)
	if ad.Name() != "binance" {
		t.Fatalf("stream adapter must answer as binance, got %s", ad.Name())
	}
	if ad.FeeRate != 0.001 {
		t.Fatalf("default fee expected, got %v", ad.FeeRate)
	}

	cfg.Exchange["binance"] = config.ExchangeConfig{FeeRate: 0.00075}
	if got := streamAdapter(cfg, feed).FeeRate; got != 0.00075 {
		t.Fatalf("configured fee should win, got %v", got)
	}
}

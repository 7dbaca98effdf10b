package exchange

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"arb-scanner-go/rates"
)

// Binance 通过 bookTicker 接口取盘口；USDT 计价，需折算。
type Binance struct {
	BaseURL string
	FeeRate float64
	Client  *http.Client
	Limiter RateLimiter
}

type binanceBookTicker struct {
	Symbol   string `json:"symbol"`
	BidPrice px     `json:"bidPrice"`
	AskPrice px     `json:"askPrice"`
}

func NewBinance(opts Options) *Binance {
	return &Binance{
		BaseURL: nonEmpty(opts.BaseURL, "https://api.binance.com"),
		FeeRate: feeOrDefault(opts.FeeRate, 0.001),
		Client:  opts.Client,
		Limiter: opts.Limiter,
	}
}

func (b *Binance) Name() string { return "binance" }

func (b *Binance) Fetch(ctx context.Context, symbol string, conv rates.Conversion) (Quote, error) {
	var t binanceBookTicker
	u := b.BaseURL + "/api/v3/ticker/bookTicker?symbol=" + url.QueryEscape(symbol)
	if err := getJSON(ctx, b.Name(), b.Client, b.Limiter, u, &t); err != nil {
		return Quote{}, err
	}
	ask, bid := float64(t.AskPrice), float64(t.BidPrice)
	if err := checkPrices(b.Name(), ask, bid); err != nil {
		return Quote{}, err
	}
	return Quote{
		Exchange:  b.Name(),
		Ask:       conv.Apply(ask),
		Bid:       conv.Apply(bid),
		FeeRate:   b.FeeRate,
		Currency:  conv.Quote,
		FetchedAt: time.Now(),
	}, nil
}

package exchange

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"arb-scanner-go/rates"
)

// CoinJar 的 products ticker 与 Coinbase 同形；AUD 对原生计价。
type CoinJar struct {
	BaseURL string
	FeeRate float64
	Client  *http.Client
	Limiter RateLimiter
}

type coinjarTicker struct {
	Ask px `json:"ask"`
	Bid px `json:"bid"`
}

func NewCoinJar(opts Options) *CoinJar {
	return &CoinJar{
		BaseURL: nonEmpty(opts.BaseURL, "https://data.exchange.coinjar.com"),
		FeeRate: feeOrDefault(opts.FeeRate, 0.005),
		Client:  opts.Client,
		Limiter: opts.Limiter,
	}
}

func (c *CoinJar) Name() string { return "coinjar" }

func (c *CoinJar) Fetch(ctx context.Context, symbol string, _ rates.Conversion) (Quote, error) {
	var t coinjarTicker
	u := c.BaseURL + "/products/" + url.PathEscape(symbol) + "/ticker"
	if err := getJSON(ctx, c.Name(), c.Client, c.Limiter, u, &t); err != nil {
		return Quote{}, err
	}
	ask, bid := float64(t.Ask), float64(t.Bid)
	if err := checkPrices(c.Name(), ask, bid); err != nil {
		return Quote{}, err
	}
	return Quote{
		Exchange:  c.Name(),
		Ask:       ask,
		Bid:       bid,
		FeeRate:   c.FeeRate,
		Currency:  "AUD",
		FetchedAt: time.Now(),
	}, nil
}

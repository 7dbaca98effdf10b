package exchange

import (
	"context"
	"net/http"
	"strings"
	"time"

	"arb-scanner-go/rates"
)

// CoinSpot 只有一个全量 latest 接口，按币种小写键取值；AUD 原生计价。
type CoinSpot struct {
	BaseURL string
	FeeRate float64
	Client  *http.Client
	Limiter RateLimiter
}

type coinspotLatest struct {
	Status string `json:"status"`
	Prices map[string]struct {
		Bid px `json:"bid"`
		Ask px `json:"ask"`
	} `json:"prices"`
}

func NewCoinSpot(opts Options) *CoinSpot {
	return &CoinSpot{
		BaseURL: nonEmpty(opts.BaseURL, "https://www.coinspot.com.au"),
		FeeRate: feeOrDefault(opts.FeeRate, 0.01),
		Client:  opts.Client,
		Limiter: opts.Limiter,
	}
}

func (c *CoinSpot) Name() string { return "coinspot" }

func (c *CoinSpot) Fetch(ctx context.Context, symbol string, _ rates.Conversion) (Quote, error) {
	var t coinspotLatest
	u := c.BaseURL + "/pubapi/v2/latest"
	if err := getJSON(ctx, c.Name(), c.Client, c.Limiter, u, &t); err != nil {
		return Quote{}, err
	}
	entry, ok := t.Prices[strings.ToLower(symbol)]
	if !ok {
		return Quote{}, decodeErr(c.Name(), "no price entry for %q", symbol)
	}
	ask, bid := float64(entry.Ask), float64(entry.Bid)
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

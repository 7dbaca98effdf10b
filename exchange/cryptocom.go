package exchange

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"arb-scanner-go/rates"
)

// CryptoCom v2 public get-ticker；USDT 计价，需折算。
type CryptoCom struct {
	BaseURL string
	FeeRate float64
	Client  *http.Client
	Limiter RateLimiter
}

type cryptocomTicker struct {
	Code   int `json:"code"`
	Result struct {
		Data struct {
			Ask px `json:"a"`
			Bid px `json:"b"`
		} `json:"data"`
	} `json:"result"`
}

func NewCryptoCom(opts Options) *CryptoCom {
	return &CryptoCom{
		BaseURL: nonEmpty(opts.BaseURL, "https://api.crypto.com"),
		FeeRate: feeOrDefault(opts.FeeRate, 0.004),
		Client:  opts.Client,
		Limiter: opts.Limiter,
	}
}

func (c *CryptoCom) Name() string { return "cryptocom" }

func (c *CryptoCom) Fetch(ctx context.Context, symbol string, conv rates.Conversion) (Quote, error) {
	var t cryptocomTicker
	u := c.BaseURL + "/v2/public/get-ticker?instrument_name=" + url.QueryEscape(symbol)
	if err := getJSON(ctx, c.Name(), c.Client, c.Limiter, u, &t); err != nil {
		return Quote{}, err
	}
	if t.Code != 0 {
		return Quote{}, decodeErr(c.Name(), "api code %d for %s", t.Code, symbol)
	}
	ask, bid := float64(t.Result.Data.Ask), float64(t.Result.Data.Bid)
	if err := checkPrices(c.Name(), ask, bid); err != nil {
		return Quote{}, err
	}
	return Quote{
		Exchange:  c.Name(),
		Ask:       conv.Apply(ask),
		Bid:       conv.Apply(bid),
		FeeRate:   c.FeeRate,
		Currency:  conv.Quote,
		FetchedAt: time.Now(),
	}, nil
}

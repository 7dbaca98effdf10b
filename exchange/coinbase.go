package exchange

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"arb-scanner-go/rates"
)

// Coinbase 优先走 Exchange 的 products ticker；盘口缺失时回落到
// /v2/prices spot 接口，用 ±0.1% 合成买卖价。USD 计价，需折算。
type Coinbase struct {
	BaseURL     string       // exchange API（ticker）
	SpotBaseURL string       // 零售 API（spot 回落）
	FeeRate     float64
	Client      *http.Client
	Limiter     RateLimiter
}

type coinbaseTicker struct {
	Ask px `json:"ask"`
	Bid px `json:"bid"`
}

type coinbaseSpot struct {
	Data struct {
		Amount px `json:"amount"`
	} `json:"data"`
}

// spotSpread 合成盘口的半边价差
const spotSpread = 0.001

func NewCoinbase(opts Options) *Coinbase {
	return &Coinbase{
		BaseURL:     nonEmpty(opts.BaseURL, "https://api.exchange.coinbase.com"),
		SpotBaseURL: "https://api.coinbase.com",
		FeeRate:     feeOrDefault(opts.FeeRate, 0.006),
		Client:      opts.Client,
		Limiter:     opts.Limiter,
	}
}

func (c *Coinbase) Name() string { return "coinbase" }

func (c *Coinbase) Fetch(ctx context.Context, symbol string, conv rates.Conversion) (Quote, error) {
	var t coinbaseTicker
	u := c.BaseURL + "/products/" + url.PathEscape(symbol) + "/ticker"
	err := getJSON(ctx, c.Name(), c.Client, c.Limiter, u, &t)
	ask, bid := float64(t.Ask), float64(t.Bid)
	if err != nil || ask <= 0 || bid <= 0 {
		ask, bid, err = c.fetchSpot(ctx, symbol)
		if err != nil {
			return Quote{}, err
		}
	}
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

func (c *Coinbase) fetchSpot(ctx context.Context, symbol string) (ask, bid float64, err error) {
	// products 用 "BTC-USD"，spot 接口用同样的 pair 形式
	pair := strings.ToUpper(symbol)
	var s coinbaseSpot
	u := c.SpotBaseURL + "/v2/prices/" + url.PathEscape(pair) + "/spot"
	if err := getJSON(ctx, c.Name(), c.Client, c.Limiter, u, &s); err != nil {
		return 0, 0, err
	}
	mid := float64(s.Data.Amount)
	if mid <= 0 {
		return 0, 0, validateErr(c.Name(), "non-positive spot price %v", mid)
	}
	return mid * (1 + spotSpread), mid * (1 - spotSpread), nil
}

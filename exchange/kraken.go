package exchange

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"arb-scanner-go/rates"
)

// Kraken 的 Ticker 返回以 pair 别名为键的 result 映射，
// 键名与请求的 pair 不一定一致（XBTUSDT -> XXBTZUSD 之类），取第一个值。
type Kraken struct {
	BaseURL string
	FeeRate float64
	Client  *http.Client
	Limiter RateLimiter
}

type krakenTicker struct {
	Error  []string `json:"error"`
	Result map[string]struct {
		Ask []px `json:"a"` // [price, whole lot volume, lot volume]
		Bid []px `json:"b"`
	} `json:"result"`
}

func NewKraken(opts Options) *Kraken {
	return &Kraken{
		BaseURL: nonEmpty(opts.BaseURL, "https://api.kraken.com"),
		FeeRate: feeOrDefault(opts.FeeRate, 0.0026),
		Client:  opts.Client,
		Limiter: opts.Limiter,
	}
}

func (k *Kraken) Name() string { return "kraken" }

func (k *Kraken) Fetch(ctx context.Context, symbol string, conv rates.Conversion) (Quote, error) {
	var t krakenTicker
	u := k.BaseURL + "/0/public/Ticker?pair=" + url.QueryEscape(symbol)
	if err := getJSON(ctx, k.Name(), k.Client, k.Limiter, u, &t); err != nil {
		return Quote{}, err
	}
	if len(t.Error) > 0 {
		return Quote{}, decodeErr(k.Name(), "api error: %s", strings.Join(t.Error, "; "))
	}
	for _, v := range t.Result {
		if len(v.Ask) == 0 || len(v.Bid) == 0 {
			return Quote{}, decodeErr(k.Name(), "ticker for %s missing a/b arrays", symbol)
		}
		ask, bid := float64(v.Ask[0]), float64(v.Bid[0])
		if err := checkPrices(k.Name(), ask, bid); err != nil {
			return Quote{}, err
		}
		return Quote{
			Exchange:  k.Name(),
			Ask:       conv.Apply(ask),
			Bid:       conv.Apply(bid),
			FeeRate:   k.FeeRate,
			Currency:  conv.Quote,
			FetchedAt: time.Now(),
		}, nil
	}
	return Quote{}, decodeErr(k.Name(), "empty result for %s", symbol)
}

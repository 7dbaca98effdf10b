package exchange

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"arb-scanner-go/rates"
)

// IndependentReserve 的 GetMarketSummary 直接给出最优买卖价；AUD 原生计价。
type IndependentReserve struct {
	BaseURL string
	FeeRate float64
	Client  *http.Client
	Limiter RateLimiter
}

type irMarketSummary struct {
	CurrentLowestOfferPrice px `json:"CurrentLowestOfferPrice"`
	CurrentHighestBidPrice  px `json:"CurrentHighestBidPrice"`
}

func NewIndependentReserve(opts Options) *IndependentReserve {
	return &IndependentReserve{
		BaseURL: nonEmpty(opts.BaseURL, "https://api.independentreserve.com"),
		FeeRate: feeOrDefault(opts.FeeRate, 0.005),
		Client:  opts.Client,
		Limiter: opts.Limiter,
	}
}

func (ir *IndependentReserve) Name() string { return "independentreserve" }

func (ir *IndependentReserve) Fetch(ctx context.Context, symbol string, _ rates.Conversion) (Quote, error) {
	var t irMarketSummary
	u := ir.BaseURL + "/Public/GetMarketSummary?primaryCurrencyCode=" +
		url.QueryEscape(symbol) + "&secondaryCurrencyCode=Aud"
	if err := getJSON(ctx, ir.Name(), ir.Client, ir.Limiter, u, &t); err != nil {
		return Quote{}, err
	}
	ask, bid := float64(t.CurrentLowestOfferPrice), float64(t.CurrentHighestBidPrice)
	if err := checkPrices(ir.Name(), ask, bid); err != nil {
		return Quote{}, err
	}
	return Quote{
		Exchange:  ir.Name(),
		Ask:       ask,
		Bid:       bid,
		FeeRate:   ir.FeeRate,
		Currency:  "AUD",
		FetchedAt: time.Now(),
	}, nil
}

package exchange

import (
	"net/http"
	"sort"
)

// Options 适配器共享的构造参数；零值字段使用各交易所默认值。
type Options struct {
	BaseURL string
	FeeRate float64
	Client  *http.Client
	Limiter RateLimiter
}

func nonEmpty(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func feeOrDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

type factory func(Options) Adapter

var factories = map[string]factory{
	"binance":            func(o Options) Adapter { return NewBinance(o) },
	"kraken":             func(o Options) Adapter { return NewKraken(o) },
	"coinbase":           func(o Options) Adapter { return NewCoinbase(o) },
	"coinspot":           func(o Options) Adapter { return NewCoinSpot(o) },
	"independentreserve": func(o Options) Adapter { return NewIndependentReserve(o) },
	"coinjar":            func(o Options) Adapter { return NewCoinJar(o) },
	"cryptocom":          func(o Options) Adapter { return NewCryptoCom(o) },
}

// New 按交易所 id 构造适配器；未知 id 归类为配置错误，仅影响该交易所。
func New(id string, opts Options) (Adapter, error) {
	f, ok := factories[id]
	if !ok {
		return nil, configErr(id, "unknown exchange id %q", id)
	}
	return f(opts), nil
}

// Supported 返回全部受支持的交易所 id，字典序。
func Supported() []string {
	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

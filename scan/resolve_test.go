package scan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"arb-scanner-go/exchange"
)

func q(id string, ask, bid, fee float64) exchange.Quote {
	return exchange.Quote{Exchange: id, Ask: ask, Bid: bid, FeeRate: fee, Currency: "AUD"}
}

func TestResolveCrossExchange(t *testing.T) {
	quotes := map[string]exchange.Quote{
		"binance": q("binance", 100, 99, 0.001),
		"kraken":  q("kraken", 98, 101, 0.0026),
	}
	opp := Resolve(quotes, 1000, 0.5)
	require.NotNil(t, opp)

	// 最低 ask 与最高 bid 都在 kraken：同所也照常选取
	require.Equal(t, "kraken", opp.BuyExchange)
	require.Equal(t, 98.0, opp.BuyPrice)
	require.Equal(t, "kraken", opp.SellExchange)
	require.Equal(t, 101.0, opp.SellPrice)

	require.InDelta(t, 3.0, opp.Spread, 1e-9)
	require.InDelta(t, 3.0612, opp.SpreadPct, 1e-3)
	require.InDelta(t, 98*0.0026, opp.BuyFee, 1e-9)
	require.InDelta(t, 101*0.0026, opp.SellFee, 1e-9)

	wantNetPct := (3 - 98*0.0026 - 101*0.0026) / 98 * 100
	require.InDelta(t, wantNetPct, opp.NetProfitPct, 1e-9)
	require.InDelta(t, 1000*wantNetPct/100, opp.NetProfit, 1e-9)
	require.True(t, opp.Profitable)
}

func TestResolveThresholdNotMet(t *testing.T) {
	quotes := map[string]exchange.Quote{
		"binance": q("binance", 100, 99, 0.001),
		"kraken":  q("kraken", 98, 101, 0.0026),
	}
	opp := Resolve(quotes, 1000, 5.0)
	require.NotNil(t, opp)
	require.False(t, opp.Profitable)
}

func TestResolveInsufficientData(t *testing.T) {
	require.Nil(t, Resolve(nil, 1000, 0))
	require.Nil(t, Resolve(map[string]exchange.Quote{
		"binance": q("binance", 100, 99, 0.001),
	}, 1000, 0))
}

func TestResolveNegativeSpread(t *testing.T) {
	// 价差为负是可上报的“无机会”，不是错误
	quotes := map[string]exchange.Quote{
		"a": q("a", 105, 100, 0.001),
		"b": q("b", 106, 99, 0.001),
	}
	opp := Resolve(quotes, 1000, 0)
	require.NotNil(t, opp)
	require.Less(t, opp.Spread, 0.0)
	require.False(t, opp.Profitable)
}

func TestResolveTieBreakLexicographic(t *testing.T) {
	quotes := map[string]exchange.Quote{
		"x": q("x", 100, 101, 0.001),
		"a": q("a", 100, 101, 0.001),
	}
	for i := 0; i < 50; i++ {
		opp := Resolve(quotes, 1000, 0)
		require.NotNil(t, opp)
		require.Equal(t, "a", opp.BuyExchange)
		require.Equal(t, "a", opp.SellExchange)
	}
}

func TestResolveIdempotent(t *testing.T) {
	quotes := map[string]exchange.Quote{
		"binance":  q("binance", 100.13, 99.71, 0.001),
		"kraken":   q("kraken", 98.02, 101.77, 0.0026),
		"coinspot": q("coinspot", 99.5, 100.4, 0.01),
	}
	first := Resolve(quotes, 1234.56, 0.5)
	for i := 0; i < 10; i++ {
		require.Equal(t, *first, *Resolve(quotes, 1234.56, 0.5))
	}
}

func TestResolveFeeMonotonic(t *testing.T) {
	base := func(buyFee, sellFee float64) float64 {
		opp := Resolve(map[string]exchange.Quote{
			"a": q("a", 100, 90, buyFee),
			"b": q("b", 110, 105, sellFee),
		}, 1000, 0)
		return opp.NetProfitPct
	}
	require.Greater(t, base(0.001, 0.001), base(0.002, 0.001))
	require.Greater(t, base(0.001, 0.001), base(0.001, 0.002))
}

package scan

import (
	"sort"

	"arb-scanner-go/exchange"
)

// Resolve 在报价集合上选出最优买卖对并计算损益。
// 纯函数：同一输入必然得到逐位一致的输出；并列时按交易所 id 字典序取先者。
// 少于 2 个报价返回 nil。
func Resolve(quotes map[string]exchange.Quote, investment, minProfitPct float64) *Opportunity {
	if len(quotes) < 2 {
		return nil
	}

	ids := make([]string, 0, len(quotes))
	for id := range quotes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := quotes[ids[0]]
	buy, sell := best, best
	for _, id := range ids[1:] {
		q := quotes[id]
		if q.Ask < buy.Ask {
			buy = q
		}
		if q.Bid > sell.Bid {
			sell = q
		}
	}

	// 费用按单位价格计（与交易所费率表一致），不按投资额计
	spread := sell.Bid - buy.Ask
	buyFee := buy.Ask * buy.FeeRate
	sellFee := sell.Bid * sell.FeeRate
	spreadPct := spread / buy.Ask * 100
	netPct := (spread - buyFee - sellFee) / buy.Ask * 100

	return &Opportunity{
		BuyExchange:  buy.Exchange,
		BuyPrice:     buy.Ask,
		SellExchange: sell.Exchange,
		SellPrice:    sell.Bid,
		Spread:       spread,
		SpreadPct:    spreadPct,
		BuyFee:       buyFee,
		SellFee:      sellFee,
		NetProfitPct: netPct,
		NetProfit:    investment * netPct / 100,
		Profitable:   netPct >= minProfitPct,
	}
}

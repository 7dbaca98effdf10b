// Package exchange normalizes vendor ticker endpoints into a common quote shape.
package exchange

import (
	"context"
	"time"

	"arb-scanner-go/rates"
)

// Quote 单个交易所对某一资产的最新盘口（已折算为结算货币）。
type Quote struct {
	Exchange  string    // 适配器标识，如 "binance"
	Ask       float64   // 买入价（最低卖单）
	Bid       float64   // 卖出价（最高买单）
	FeeRate   float64   // taker 费率，小数形式
	Currency  string    // 结算货币，如 "AUD"
	FetchedAt time.Time // 仅用于观测，不参与套利计算
}

// Adapter 对应一个交易所的公开行情端点；无状态，symbol 由注册表给出。
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, symbol string, conv rates.Conversion) (Quote, error)
}

// checkPrices 校验盘口为正数；0 或负价视为校验失败而不是静默丢弃。
func checkPrices(name string, ask, bid float64) error {
	if ask <= 0 || bid <= 0 {
		return validateErr(name, "non-positive price: ask=%v bid=%v", ask, bid)
	}
	return nil
}

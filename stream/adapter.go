package stream

import (
	"context"
	"fmt"
	"time"

	"arb-scanner-go/exchange"
	"arb-scanner-go/rates"
)

// Adapter 让一次扫描直接消费流缓存而不发 REST 请求；
// 实现 exchange.Adapter，可在适配器表里顶替同名 REST 适配器。
type Adapter struct {
	Feed    *BinanceFeed
	ID      string       // 适配器标识，通常与被顶替的 REST 适配器一致
	FeeRate float64
}

func (a *Adapter) Name() string { return a.ID }

// Fetch 读缓存；缓存缺失或过期按软失败处理，扫描会继续其他交易所。
func (a *Adapter) Fetch(_ context.Context, symbol string, conv rates.Conversion) (exchange.Quote, error) {
	top, ok := a.Feed.Top(symbol)
	if !ok {
		return exchange.Quote{}, &exchange.FetchError{
			Exchange: a.ID,
			Kind:     exchange.KindValidate,
			Err:      fmt.Errorf("no fresh stream quote for %s", symbol),
		}
	}
	if top.Ask <= 0 || top.Bid <= 0 {
		return exchange.Quote{}, &exchange.FetchError{
			Exchange: a.ID,
			Kind:     exchange.KindValidate,
			Err:      fmt.Errorf("non-positive stream price: ask=%v bid=%v", top.Ask, top.Bid),
		}
	}
	return exchange.Quote{
		Exchange:  a.ID,
		Ask:       conv.Apply(top.Ask),
		Bid:       conv.Apply(top.Bid),
		FeeRate:   a.FeeRate,
		Currency:  conv.Quote,
		FetchedAt: time.Now(),
	}, nil
}

// Package rates supplies the USD->settlement-currency conversion snapshot.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Conversion 一次扫描内所有适配器共享的汇率快照；取到后不可变。
type Conversion struct {
	Base  string  // 固定为报价货币，通常 "USD"
	Quote string  // 结算货币，如 "AUD"
	Rate  float64 // Base -> Quote 乘数
}

// Apply 将 Base 计价的价格折算为结算货币。
func (c Conversion) Apply(px float64) float64 { return px * c.Rate }

// Identity 返回不做折算的快照（结算货币本身即报价货币）。
func Identity(currency string) Conversion {
	return Conversion{Base: currency, Quote: currency, Rate: 1}
}

// Provider 提供当前汇率；失败时由实现自行回落，不允许阻塞扫描。
type Provider interface {
	Rate(ctx context.Context, base, quote string) (float64, error)
}

// Static 恒定汇率，供测试与离线模式使用。
type Static float64

func (s Static) Rate(_ context.Context, _, _ string) (float64, error) {
	return float64(s), nil
}

// HTTPProvider 调用 open.er-api.com 风格的公共汇率接口；
// 任何失败都回落到 Fallback，因此 Rate 永不返回错误。
type HTTPProvider struct {
	BaseURL  string
	Fallback float64
	Client   *http.Client
	Log      *zap.Logger
}

type ratesResp struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func (p *HTTPProvider) Rate(ctx context.Context, base, quote string) (float64, error) {
	rate, err := p.fetch(ctx, base, quote)
	if err != nil {
		if p.Log != nil {
			p.Log.Warn("rate provider failed, using fallback",
				zap.String("base", base),
				zap.String("quote", quote),
				zap.Float64("fallback", p.Fallback),
				zap.Error(err))
		}
		return p.Fallback, nil
	}
	return rate, nil
}

func (p *HTTPProvider) fetch(ctx context.Context, base, quote string) (float64, error) {
	cli := p.Client
	if cli == nil {
		cli = &http.Client{Timeout: 5 * time.Second}
	}
	url := strings.TrimRight(p.BaseURL, "/") + "/v6/latest/" + strings.ToUpper(base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := cli.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rates status %d", resp.StatusCode)
	}
	var rr ratesResp
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return 0, err
	}
	if rr.Result != "" && rr.Result != "success" {
		return 0, fmt.Errorf("rates result %q", rr.Result)
	}
	rate, ok := rr.Rates[strings.ToUpper(quote)]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("rate for %s missing", quote)
	}
	return rate, nil
}

// Snapshot 在一次扫描开始时取一次汇率；base == quote 时直接恒等，不发请求。
func Snapshot(ctx context.Context, p Provider, base, quote string) Conversion {
	if strings.EqualFold(base, quote) {
		return Identity(quote)
	}
	rate, err := p.Rate(ctx, base, quote)
	if err != nil || rate <= 0 {
		// Provider 约定自行回落；到这里只可能是实现缺陷，保底恒等。
		return Identity(quote)
	}
	return Conversion{Base: strings.ToUpper(base), Quote: strings.ToUpper(quote), Rate: rate}
}

package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// NewDefaultHTTPClient 返回带超时的 http.Client；可被多个并发适配器安全复用。
func NewDefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

// getJSON 发起一次 GET 并解码 JSON；所有失败收敛为 FetchError。
func getJSON(ctx context.Context, name string, cli *http.Client, lim RateLimiter, url string, v any) error {
	if cli == nil {
		cli = NewDefaultHTTPClient()
	}
	if lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return wrapErr(name, KindNetwork, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return wrapErr(name, KindNetwork, err)
	}
	resp, err := cli.Do(req)
	if err != nil {
		return wrapErr(name, KindNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		// 带上响应片段方便排查限流/改版
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return wrapErr(name, KindHTTP, fmt.Errorf("status %d: %s", resp.StatusCode, string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return wrapErr(name, KindDecode, err)
	}
	return nil
}

// px 兼容数字与字符串两种价格编码（各家返回不一致）。
type px float64

func (p *px) UnmarshalJSON(b []byte) error {
	if len(b) > 1 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*p = px(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = px(f)
	return nil
}

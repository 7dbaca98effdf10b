package exchange

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind 区分抓取失败的来源；所有种类对一次扫描而言都是软失败，
// 仅用于日志与指标归类。
type Kind int

const (
	KindNetwork  Kind = iota // 传输层错误
	KindTimeout              // 超时或取消
	KindHTTP                 // 非 2xx 状态码
	KindDecode               // JSON 结构不符或缺少字段
	KindValidate             // 解析成功但价格非法
	KindConfig               // 注册表缺少该交易所/资产
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	case KindValidate:
		return "validate"
	case KindConfig:
		return "config"
	}
	return "unknown"
}

// FetchError 是适配器边界上的统一失败类型；解析异常不允许越过该边界。
type FetchError struct {
	Exchange string
	Kind     Kind
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s fetch failed (%s): %v", e.Exchange, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// wrapErr 将任意错误收敛为 FetchError，并按来源归类。
func wrapErr(exchange string, kind Kind, err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kind = KindTimeout
	} else if kind == KindNetwork {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			kind = KindTimeout
		}
	}
	return &FetchError{Exchange: exchange, Kind: kind, Err: err}
}

func decodeErr(exchange string, format string, args ...any) *FetchError {
	return &FetchError{Exchange: exchange, Kind: KindDecode, Err: fmt.Errorf(format, args...)}
}

func validateErr(exchange string, format string, args ...any) *FetchError {
	return &FetchError{Exchange: exchange, Kind: KindValidate, Err: fmt.Errorf(format, args...)}
}

func configErr(exchange string, format string, args ...any) *FetchError {
	return &FetchError{Exchange: exchange, Kind: KindConfig, Err: fmt.Errorf(format, args...)}
}

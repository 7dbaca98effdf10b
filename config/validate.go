package config

import "fmt"

// ErrInvalid 用于参数验证错误。
type ErrInvalid string

func (e ErrInvalid) Error() string { return string(e) }

// Validate ensures required fields are present and consistent.
func Validate(cfg AppConfig) error {
	if cfg.Currency == "" {
		return ErrInvalid("currency is required")
	}
	if cfg.Rates.FallbackRate <= 0 {
		return ErrInvalid("rates.fallbackRate must be > 0")
	}
	if cfg.Scanner.CallTimeoutMs <= 0 {
		return ErrInvalid("scanner.callTimeoutMs must be > 0")
	}
	if cfg.Scanner.ScanDeadlineMs < cfg.Scanner.CallTimeoutMs {
		return ErrInvalid("scanner.scanDeadlineMs must be >= callTimeoutMs")
	}
	if cfg.Scanner.Investment <= 0 {
		return ErrInvalid("scanner.investment must be > 0")
	}
	if cfg.Scanner.MinProfitPct < 0 {
		return ErrInvalid("scanner.minProfitPct must be >= 0")
	}
	for id, ec := range cfg.Exchange {
		if ec.FeeRate < 0 || ec.FeeRate >= 1 {
			return ErrInvalid(fmt.Sprintf("exchanges.%s.feeRate must be in [0,1)", id))
		}
	}
	if len(cfg.Assets) == 0 {
		return ErrInvalid("assets registry is required")
	}
	for asset, table := range cfg.Assets {
		if len(table) == 0 {
			return ErrInvalid(fmt.Sprintf("assets.%s has no exchange symbols", asset))
		}
	}
	return nil
}

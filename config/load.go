// Package config loads the scanner configuration and the exchange registry.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env      string                       `yaml:"env"`
	Currency string                       `yaml:"currency"`  // 结算货币，如 AUD
	Rates    RatesConfig                  `yaml:"rates"`
	Scanner  ScannerConfig                `yaml:"scanner"`
	Metrics  MetricsConfig                `yaml:"metrics"`
	Log      LogConfig                    `yaml:"log"`
	Exchange map[string]ExchangeConfig    `yaml:"exchanges"`
	Assets   map[string]map[string]string `yaml:"assets"`    // asset -> exchange id -> vendor symbol
}

// RatesConfig 汇率来源；失败时回落到 fallbackRate，不阻塞扫描。
type RatesConfig struct {
	BaseURL      string  `yaml:"baseURL"`
	FallbackRate float64 `yaml:"fallbackRate"`
}

type ScannerConfig struct {
	CallTimeoutMs     int     `yaml:"callTimeoutMs"`     // 单次适配器调用超时
	ScanDeadlineMs    int     `yaml:"scanDeadlineMs"`    // 整次扫描预算，>= callTimeoutMs
	MaxAttempts       int     `yaml:"maxAttempts"`       // 每个适配器的尝试上限，1 为不重试
	RetryBackoffMs    int     `yaml:"retryBackoffMs"`    // 重试退避基础延迟
	RefreshIntervalMs int     `yaml:"refreshIntervalMs"` // 周期触发间隔
	Investment        float64 `yaml:"investment"`        // 默认投资额（结算货币）
	MinProfitPct      float64 `yaml:"minProfitPct"`      // 默认净利阈值（百分比）
	RestRate          float64 `yaml:"restRate"`          // 限流：每秒请求数
	RestBurst         int     `yaml:"restBurst"`         // 限流：突发额度
}

type MetricsConfig struct {
	ListenAddr string `yaml:"listenAddr"` // 留空关闭
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json 或 console
}

// ExchangeConfig 单交易所的覆盖项；零值用适配器内置默认。
type ExchangeConfig struct {
	BaseURL string  `yaml:"baseURL"`
	FeeRate float64 `yaml:"feeRate"`
	Enabled *bool   `yaml:"enabled"` // 缺省视为启用
}

func (e ExchangeConfig) IsEnabled() bool { return e.Enabled == nil || *e.Enabled }

// Load reads YAML config from path, applies defaults and validates.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides selected fields from env vars.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("ARB_RATES_BASE_URL"); v != "" {
		cfg.Rates.BaseURL = v
	}
	if v := os.Getenv("ARB_METRICS_ADDR"); v != "" {
		cfg.Metrics.ListenAddr = v
	}
	return cfg, Validate(cfg)
}

func (c *AppConfig) applyDefaults() {
	if c.Currency == "" {
		c.Currency = "AUD"
	}
	if c.Rates.BaseURL == "" {
		c.Rates.BaseURL = "https://open.er-api.com"
	}
	if c.Rates.FallbackRate == 0 {
		c.Rates.FallbackRate = 1.52
	}
	if c.Scanner.CallTimeoutMs == 0 {
		c.Scanner.CallTimeoutMs = 5000
	}
	if c.Scanner.ScanDeadlineMs == 0 {
		c.Scanner.ScanDeadlineMs = 10000
	}
	if c.Scanner.MaxAttempts == 0 {
		c.Scanner.MaxAttempts = 1
	}
	if c.Scanner.RetryBackoffMs == 0 {
		c.Scanner.RetryBackoffMs = 200
	}
	if c.Scanner.RefreshIntervalMs == 0 {
		c.Scanner.RefreshIntervalMs = 30000
	}
	if c.Scanner.Investment == 0 {
		c.Scanner.Investment = 1000
	}
	if c.Scanner.RestRate == 0 {
		c.Scanner.RestRate = 5
	}
	if c.Scanner.RestBurst == 0 {
		c.Scanner.RestBurst = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if len(c.Assets) == 0 {
		c.Assets = DefaultAssets()
	}
}

func (c ScannerConfig) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutMs) * time.Millisecond
}
func (c ScannerConfig) ScanDeadline() time.Duration {
	return time.Duration(c.ScanDeadlineMs) * time.Millisecond
}
func (c ScannerConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMs) * time.Millisecond
}
func (c ScannerConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMs) * time.Millisecond
}

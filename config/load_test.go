package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

const minimalConfig = `
env: dev
currency: AUD
scanner:
  investment: 500
  minProfitPct: 1.5
exchanges:
  binance:
    feeRate: 0.00075
`

func TestLoadDefaults(t *testing.T) {
	path := writeTempConfig(t, minimalConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scanner.Investment != 500 || cfg.Scanner.MinProfitPct != 1.5 {
		t.Fatalf("explicit values lost: %+v", cfg.Scanner)
	}
	// 未给出的字段回落到默认
	if cfg.Scanner.CallTimeoutMs != 5000 || cfg.Scanner.ScanDeadlineMs != 10000 {
		t.Fatalf("defaults not applied: %+v", cfg.Scanner)
	}
	if cfg.Rates.FallbackRate != 1.52 {
		t.Fatalf("fallback rate default missing: %+v", cfg.Rates)
	}
	if len(cfg.Assets) == 0 {
		t.Fatalf("builtin asset table expected when config omits assets")
	}
	if cfg.Assets["BTC"]["kraken"] != "XBTUSDT" {
		t.Fatalf("builtin table wrong: %+v", cfg.Assets["BTC"])
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, minimalConfig)
	t.Setenv("ARB_RATES_BASE_URL", "https://rates.test")
	t.Setenv("ARB_METRICS_ADDR", ":9999")
	cfg, err := LoadWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Rates.BaseURL != "https://rates.test" || cfg.Metrics.ListenAddr != ":9999" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []string{
		"currency: AUD\nscanner:\n  investment: -1\n",
		"currency: AUD\nscanner:\n  minProfitPct: -0.1\n",
		"currency: AUD\nexchanges:\n  binance:\n    feeRate: 1.5\n",
		"currency: AUD\nscanner:\n  callTimeoutMs: 20000\n  scanDeadlineMs: 5000\n",
	}
	for i, c := range cases {
		path := writeTempConfig(t, c)
		if _, err := Load(path); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestExchangeEnabledDefault(t *testing.T) {
	var ec ExchangeConfig
	if !ec.IsEnabled() {
		t.Fatalf("zero-value exchange config must be enabled")
	}
	off := false
	ec.Enabled = &off
	if ec.IsEnabled() {
		t.Fatalf("explicit disable ignored")
	}
}

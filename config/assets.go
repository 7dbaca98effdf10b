package config

// DefaultAssets 内置符号表：资产 -> 交易所 id -> 该所 instrument 符号。
// 各所符号约定互不相同（XBT/BTC、分隔符、大小写），所以必须逐所列出，
// 不能假设一个规范符号。配置文件里的 assets 段会整体覆盖这份表。
func DefaultAssets() map[string]map[string]string {
	return map[string]map[string]string{
		"BTC": {
			"binance":            "BTCUSDT",
			"kraken":             "XBTUSDT",
			"coinspot":           "BTC",
			"independentreserve": "Xbt",
			"coinbase":           "BTC-USD",
			"coinjar":            "BTCAUD",
			"cryptocom":          "BTC_USDT",
		},
		"ETH": {
			"binance":            "ETHUSDT",
			"kraken":             "ETHUSDT",
			"coinspot":           "ETH",
			"independentreserve": "Eth",
			"coinbase":           "ETH-USD",
			"coinjar":            "ETHAUD",
			"cryptocom":          "ETH_USDT",
		},
		"LTC": {
			"binance":            "LTCUSDT",
			"kraken":             "LTCUSDT",
			"coinspot":           "LTC",
			"independentreserve": "Ltc",
			"coinbase":           "LTC-USD",
			"coinjar":            "LTCAUD",
			"cryptocom":          "LTC_USDT",
		},
		"XRP": {
			"binance":            "XRPUSDT",
			"kraken":             "XRPUSDT",
			"coinspot":           "XRP",
			"independentreserve": "Xrp",
			"coinbase":           "XRP-USD",
			"coinjar":            "XRPAUD",
			"cryptocom":          "XRP_USDT",
		},
		"ADA": {
			"binance":            "ADAUSDT",
			"kraken":             "ADAUSDT",
			"coinspot":           "ADA",
			"independentreserve": "Ada",
			"coinbase":           "ADA-USD",
			"coinjar":            "ADAAUD",
			"cryptocom":          "ADA_USDT",
		},
		"DOGE": {
			"binance":            "DOGEUSDT",
			"kraken":             "DOGEUSDT",
			"coinspot":           "DOGE",
			"independentreserve": "Doge",
			"coinbase":           "DOGE-USD",
			"coinjar":            "DOGEAUD",
			"cryptocom":          "DOGE_USDT",
		},
		"SHIB": {
			"binance":            "SHIBUSDT",
			"kraken":             "SHIBUSDT",
			"coinspot":           "SHIB",
			"independentreserve": "Shib",
			"coinbase":           "SHIB-USD",
			"coinjar":            "SHIBAUD",
			"cryptocom":          "SHIB_USDT",
		},
		"MATIC": {
			"binance":            "MATICUSDT",
			"kraken":             "MATICUSDT",
			"coinspot":           "MATIC",
			"independentreserve": "Matic",
			"coinbase":           "MATIC-USD",
			"coinjar":            "MATICAUD",
			"cryptocom":          "MATIC_USDT",
		},
	}
}

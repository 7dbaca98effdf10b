// Package scan runs one aggregation-and-resolution pass over a set of exchanges.
package scan

import (
	"time"

	"arb-scanner-go/exchange"
)

// Status 扫描结果的三种出口。
type Status string

const (
	StatusOpportunity      Status = "opportunity"       // 有 >=2 个报价，机会字段有效
	StatusInsufficientData Status = "insufficient_data" // 只有 1 个报价
	StatusNoData           Status = "no_data"           // 全部失败
)

// Request 一次扫描的全部输入；调用方构造后不再修改。
type Request struct {
	Asset        string        // 规范资产符号，如 "BTC"
	Exchanges    []string      // 交易所 id；重复项会被去掉，顺序不影响结果
	Investment   float64       // 投资额（结算货币），>0
	MinProfitPct float64       // 净利阈值（百分比），>=0
	Deadline     time.Duration // 整次扫描的时间预算
}

// Opportunity 最优买卖对及其损益；Resolve 的纯函数输出，生成后不可变。
type Opportunity struct {
	BuyExchange  string
	BuyPrice     float64 // 最低 ask
	SellExchange string
	SellPrice    float64 // 最高 bid
	Spread       float64 // SellPrice - BuyPrice，可为负
	SpreadPct    float64
	BuyFee       float64 // 按单位价格计的买方费用
	SellFee      float64
	NetProfitPct float64
	NetProfit    float64 // 折算到投资额的净利
	Profitable   bool    // NetProfitPct >= 阈值
}

// Result 一次扫描的最终产物，交给展示层消费。
type Result struct {
	Asset       string
	Status      Status
	Quotes      map[string]exchange.Quote // 仅含成功的交易所
	Opportunity *Opportunity              // Status 为 opportunity 时非空
	Errors      map[string]error          // 失败交易所 -> 原因，供日志/指标
	StartedAt   time.Time
	Elapsed     time.Duration
}

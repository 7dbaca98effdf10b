package stream

import "encoding/json"

// combinedMessage 对应 binance combined stream 包装。
type combinedMessage struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

// bookTickerData 提取 bookTicker 消息的核心字段。
type bookTickerData struct {
	Symbol string      `json:"s"`
	Bid    json.Number `json:"b"`
	Ask    json.Number `json:"a"`
}

// ParseBookTicker 解析 combined stream 的 bookTicker 消息，返回符号与最优 bid/ask。
func ParseBookTicker(raw []byte) (symbol string, bestBid, bestAsk float64, err error) {
	var msg combinedMessage
	if err = json.Unmarshal(raw, &msg); err != nil {
		return
	}
	data := msg.Data
	if len(data) == 0 {
		// 直连单 stream 时没有外层包装
		data = raw
	}
	var bt bookTickerData
	if err = json.Unmarshal(data, &bt); err != nil {
		return
	}
	symbol = bt.Symbol
	if bt.Bid != "" {
		bestBid, _ = bt.Bid.Float64()
	}
	if bt.Ask != "" {
		bestAsk, _ = bt.Ask.Float64()
	}
	return
}

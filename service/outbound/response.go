package outbound

import outboundEntity "wms.GO/model/entity/outbound"

// LineStockSummary reports the stock position for one order line at the time
// the summary was computed.
type LineStockSummary struct {
	ProductID          uint   `json:"productId"`
	ProductName        string `json:"productName"`
	RequestedQuantity  int64  `json:"requestedQuantity"`
	CurrentStock       int64  `json:"currentStock"`
	AfterOutboundStock int64  `json:"afterOutboundStock"`
	SafetyStock        int64  `json:"safetyStock"`
	IsBelowSafetyStock bool   `json:"isBelowSafetyStock"`
}

// StockSummary is the order-level rollup of the line summaries.
type StockSummary struct {
	TotalProductCount    int                `json:"totalProductCount"`
	LowStockProductCount int                `json:"lowStockProductCount"`
	HasInsufficientStock bool               `json:"hasInsufficientStock"`
	Lines                []LineStockSummary `json:"lines"`
}

// Detail is an outbound together with its stock summary.
type Detail struct {
	Outbound     *outboundEntity.Outbound `json:"outbound"`
	StockSummary StockSummary             `json:"stockSummary"`
}

func summarize(lines []LineStockSummary) StockSummary {
	s := StockSummary{TotalProductCount: len(lines), Lines: lines}
	for _, l := range lines {
		if l.IsBelowSafetyStock {
			s.LowStockProductCount++
		}
		if l.AfterOutboundStock < 0 {
			s.HasInsufficientStock = true
		}
	}
	return s
}

package outbound

// Item is one product line of a shipping order. Owned exclusively by its
// Outbound and created atomically with it.
type Item struct {
	ItemID            uint  `gorm:"column:item_id;primaryKey;autoIncrement" json:"itemId"`
	OutboundID        uint  `gorm:"column:outbound_id;not null;index" json:"outboundId"`
	ProductID         uint  `gorm:"column:product_id;not null;index" json:"productId"`
	RequestedQuantity int64 `gorm:"column:requested_quantity;not null" json:"requestedQuantity"`
}

func (Item) TableName() string {
	return "outbound_item"
}

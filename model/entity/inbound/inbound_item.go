package inbound

// Item is one product line of a receiving shipment. Owned exclusively by its
// Inbound and created atomically with it.
type Item struct {
	ItemID    uint  `gorm:"column:item_id;primaryKey;autoIncrement" json:"itemId"`
	InboundID uint  `gorm:"column:inbound_id;not null;index" json:"inboundId"`
	ProductID uint  `gorm:"column:product_id;not null;index" json:"productId"`
	Quantity  int64 `gorm:"column:quantity;not null" json:"quantity"`
}

func (Item) TableName() string {
	return "inbound_item"
}

package entity

import "time"

// Product represents the product master-data table. SupplierID links the
// product to its sourcing supplier for restock notifications.
type Product struct {
	ProductID  uint       `gorm:"column:product_id;primaryKey;autoIncrement" json:"productId"`
	Code       string     `gorm:"column:code;type:varchar(64);not null;uniqueIndex" json:"code"`
	Name       string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	SupplierID uint       `gorm:"column:supplier_id;index" json:"supplierId"`
	UnitPrice  float64    `gorm:"column:unit_price;type:decimal(12,2);not null;default:0" json:"unitPrice"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	ModifiedAt time.Time  `gorm:"column:modified_at;autoUpdateTime" json:"modifiedAt"`
	DeletedAt  *time.Time `gorm:"column:deleted_at;index" json:"-"`
}

func (Product) TableName() string {
	return "product"
}

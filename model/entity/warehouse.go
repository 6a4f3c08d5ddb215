package entity

import "time"

// Warehouse represents the warehouse master-data table.
type Warehouse struct {
	WarehouseID uint       `gorm:"column:warehouse_id;primaryKey;autoIncrement" json:"warehouseId"`
	Code        string     `gorm:"column:code;type:varchar(20);not null;uniqueIndex" json:"code"`
	Name        string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Address     *string    `gorm:"column:address;type:varchar(255)" json:"address,omitempty"`
	ManagerName *string    `gorm:"column:manager_name;type:varchar(100)" json:"managerName,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	ModifiedAt  time.Time  `gorm:"column:modified_at;autoUpdateTime" json:"modifiedAt"`
	DeletedAt   *time.Time `gorm:"column:deleted_at;index" json:"-"`
}

func (Warehouse) TableName() string {
	return "warehouse"
}

package entity

import "time"

// Supplier represents the supplier master-data table. Manager fields are the
// recipient of low-stock notifications for the supplier's products.
type Supplier struct {
	SupplierID   uint       `gorm:"column:supplier_id;primaryKey;autoIncrement" json:"supplierId"`
	Code         string     `gorm:"column:code;type:varchar(20);not null;uniqueIndex" json:"code"`
	Name         string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	ManagerName  string     `gorm:"column:manager_name;type:varchar(100)" json:"managerName"`
	ManagerEmail string     `gorm:"column:manager_email;type:varchar(128)" json:"managerEmail"`
	ManagerPhone string     `gorm:"column:manager_phone;type:varchar(32)" json:"managerPhone"`
	Address      *string    `gorm:"column:address;type:varchar(255)" json:"address,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	ModifiedAt   time.Time  `gorm:"column:modified_at;autoUpdateTime" json:"modifiedAt"`
	DeletedAt    *time.Time `gorm:"column:deleted_at;index" json:"-"`
}

func (Supplier) TableName() string {
	return "supplier"
}

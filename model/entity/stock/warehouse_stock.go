package stock

import (
	"time"

	"wms.GO/core/apperr"
)

// WarehouseStock is the stock ledger row for one (warehouse, product) pair.
// Invariant: 0 <= ReservedQuantity <= Quantity at all times. All mutation
// goes through the guard methods below; callers persist the row inside the
// same transaction that loaded it (row-locked on MySQL).
type WarehouseStock struct {
	StockID          uint      `gorm:"column:stock_id;primaryKey;autoIncrement" json:"stockId"`
	WarehouseID      uint      `gorm:"column:warehouse_id;not null;uniqueIndex:idx_stock_wh_product" json:"warehouseId"`
	ProductID        uint      `gorm:"column:product_id;not null;uniqueIndex:idx_stock_wh_product" json:"productId"`
	Quantity         int64     `gorm:"column:quantity;not null;default:0" json:"quantity"`
	ReservedQuantity int64     `gorm:"column:reserved_quantity;not null;default:0" json:"reservedQuantity"`
	SafetyStock      int64     `gorm:"column:safety_stock;not null;default:0" json:"safetyStock"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	ModifiedAt       time.Time `gorm:"column:modified_at;autoUpdateTime" json:"modifiedAt"`
}

func (WarehouseStock) TableName() string {
	return "warehouse_stock"
}

// AvailableQuantity is the portion of stock not committed to open outbounds.
func (s *WarehouseStock) AvailableQuantity() int64 {
	return s.Quantity - s.ReservedQuantity
}

// HasEnoughAvailableStock reports whether requested units can still be promised.
func (s *WarehouseStock) HasEnoughAvailableStock(requested int64) bool {
	return s.AvailableQuantity() >= requested
}

// IsBelowSafetyStock reports whether available stock fell under the threshold.
func (s *WarehouseStock) IsBelowSafetyStock() bool {
	return s.AvailableQuantity() < s.SafetyStock
}

// Increase adds received units to physical quantity.
func (s *WarehouseStock) Increase(amount int64) error {
	if amount <= 0 {
		return apperr.New(apperr.KindInvalidInput, "stock increase amount must be positive, got %d", amount)
	}
	s.Quantity += amount
	return nil
}

// Decrease removes units from physical quantity outside the reservation flow
// (manual adjustment path).
func (s *WarehouseStock) Decrease(amount int64) error {
	if amount <= 0 {
		return apperr.New(apperr.KindInvalidInput, "stock decrease amount must be positive, got %d", amount)
	}
	if s.Quantity < amount {
		return apperr.New(apperr.KindInsufficientStock, "cannot decrease %d units: only %d on hand", amount, s.Quantity)
	}
	s.Quantity -= amount
	return nil
}

// Reserve places a soft hold for an outbound order.
func (s *WarehouseStock) Reserve(amount int64) error {
	if amount <= 0 {
		return apperr.New(apperr.KindInvalidInput, "reserve amount must be positive, got %d", amount)
	}
	if !s.HasEnoughAvailableStock(amount) {
		return apperr.New(apperr.KindInsufficientStock, "cannot reserve %d units: only %d available", amount, s.AvailableQuantity())
	}
	s.ReservedQuantity += amount
	return nil
}

// ReleaseReservation undoes a hold, e.g. on outbound cancellation.
func (s *WarehouseStock) ReleaseReservation(amount int64) error {
	if amount <= 0 {
		return apperr.New(apperr.KindInvalidInput, "release amount must be positive, got %d", amount)
	}
	if s.ReservedQuantity < amount {
		return apperr.New(apperr.KindInsufficientReservation, "cannot release %d units: only %d reserved", amount, s.ReservedQuantity)
	}
	s.ReservedQuantity -= amount
	return nil
}

// ConfirmShipment converts a reservation into a physical deduction at ship
// time. The only outbound-path operation that reduces Quantity.
func (s *WarehouseStock) ConfirmShipment(amount int64) error {
	if amount <= 0 {
		return apperr.New(apperr.KindInvalidInput, "shipment amount must be positive, got %d", amount)
	}
	if s.ReservedQuantity < amount {
		return apperr.New(apperr.KindInsufficientReservation, "cannot ship %d units: only %d reserved", amount, s.ReservedQuantity)
	}
	if s.Quantity < amount {
		return apperr.New(apperr.KindInsufficientStock, "cannot ship %d units: only %d on hand", amount, s.Quantity)
	}
	s.ReservedQuantity -= amount
	s.Quantity -= amount
	return nil
}

// UpdateSafetyStock sets the low-stock alert threshold.
func (s *WarehouseStock) UpdateSafetyStock(amount int64) error {
	if amount < 0 {
		return apperr.New(apperr.KindInvalidInput, "safety stock must not be negative, got %d", amount)
	}
	s.SafetyStock = amount
	return nil
}

package inbound

import (
	"time"

	"gorm.io/datatypes"

	"wms.GO/core/apperr"
)

// Status of a receiving shipment.
type Status string

const (
	StatusRegistered Status = "REGISTERED"
	StatusInspecting Status = "INSPECTING"
	StatusCompleted  Status = "COMPLETED"
	StatusRejected   Status = "REJECTED"
	StatusCanceled   Status = "CANCELED"
)

// transitions is the full state table. COMPLETED and REJECTED are terminal.
var transitions = map[Status][]Status{
	StatusRegistered: {StatusInspecting, StatusCanceled},
	StatusInspecting: {StatusCompleted, StatusRejected},
	StatusCompleted:  {},
	StatusRejected:   {},
	StatusCanceled:   {},
}

// ParseStatus validates a status string from a request body.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", apperr.New(apperr.KindInvalidInput, "unknown inbound status %q", s)
	}
	return st, nil
}

// CanTransitionTo reports whether the state table allows s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Inbound is a receiving shipment from a supplier to a warehouse.
type Inbound struct {
	InboundID    uint           `gorm:"column:inbound_id;primaryKey;autoIncrement" json:"inboundId"`
	WarehouseID  uint           `gorm:"column:warehouse_id;not null;index" json:"warehouseId"`
	SupplierID   uint           `gorm:"column:supplier_id;not null;index" json:"supplierId"`
	ExpectedDate datatypes.Date `gorm:"column:expected_date" json:"expectedDate"`
	Status       Status         `gorm:"column:status;type:varchar(16);not null;default:'REGISTERED'" json:"status"`
	Items        []Item         `gorm:"foreignKey:InboundID" json:"items"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	ModifiedAt   time.Time      `gorm:"column:modified_at;autoUpdateTime" json:"modifiedAt"`
	DeletedAt    *time.Time     `gorm:"column:deleted_at;index" json:"-"`
}

func (Inbound) TableName() string {
	return "inbound"
}

// TransitionTo moves the inbound to target, or fails naming the refused pair.
func (i *Inbound) TransitionTo(target Status) error {
	if !i.Status.CanTransitionTo(target) {
		return apperr.New(apperr.KindInvalidState, "inbound %d: transition %s -> %s is not allowed", i.InboundID, i.Status, target)
	}
	i.Status = target
	return nil
}

// IsDeletable: completed receipts are immutable and cannot be soft-deleted.
func (i *Inbound) IsDeletable() bool {
	return i.Status != StatusCompleted
}

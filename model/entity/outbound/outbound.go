package outbound

import (
	"time"

	"gorm.io/datatypes"

	"wms.GO/core/apperr"
)

// Status of a shipping order.
type Status string

const (
	StatusOrdered  Status = "ORDERED"
	StatusPicking  Status = "PICKING"
	StatusShipped  Status = "SHIPPED"
	StatusCanceled Status = "CANCELED"
)

// transitions is the full state table. SHIPPED and CANCELED are terminal.
var transitions = map[Status][]Status{
	StatusOrdered:  {StatusPicking, StatusCanceled},
	StatusPicking:  {StatusShipped, StatusCanceled},
	StatusShipped:  {},
	StatusCanceled: {},
}

// ParseStatus validates a status string from a request body.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", apperr.New(apperr.KindInvalidInput, "unknown outbound status %q", s)
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

// Outbound is a shipping order from a warehouse to a recipient.
// ExpectedDate is computed once at creation (cutoff rule) and frozen.
type Outbound struct {
	OutboundID            uint            `gorm:"column:outbound_id;primaryKey;autoIncrement" json:"outboundId"`
	OrderNumber           string          `gorm:"column:order_number;type:varchar(32);uniqueIndex" json:"orderNumber"`
	WarehouseID           uint            `gorm:"column:warehouse_id;not null;index" json:"warehouseId"`
	RecipientName         string          `gorm:"column:recipient_name;type:varchar(100);not null" json:"recipientName"`
	RecipientContact      string          `gorm:"column:recipient_contact;type:varchar(32);not null" json:"recipientContact"`
	DeliveryPostcode      string          `gorm:"column:delivery_postcode;type:varchar(5);not null" json:"deliveryPostcode"`
	DeliveryBaseAddress   string          `gorm:"column:delivery_base_address;type:varchar(255);not null" json:"deliveryBaseAddress"`
	DeliveryDetailAddress string          `gorm:"column:delivery_detail_address;type:varchar(255);not null" json:"deliveryDetailAddress"`
	DeliveryMemo          *string         `gorm:"column:delivery_memo;type:varchar(255)" json:"deliveryMemo,omitempty"`
	RequestedDate         datatypes.Date  `gorm:"column:requested_date;not null" json:"requestedDate"`
	ExpectedDate          datatypes.Date  `gorm:"column:expected_date;not null" json:"expectedDate"`
	ShippedDate           *datatypes.Date `gorm:"column:shipped_date" json:"shippedDate,omitempty"`
	Status                Status          `gorm:"column:status;type:varchar(16);not null;default:'ORDERED'" json:"status"`
	Items                 []Item          `gorm:"foreignKey:OutboundID" json:"items"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	ModifiedAt            time.Time       `gorm:"column:modified_at;autoUpdateTime" json:"modifiedAt"`
	DeletedAt             *time.Time      `gorm:"column:deleted_at;index" json:"-"`
}

func (Outbound) TableName() string {
	return "outbound"
}

// TransitionTo moves the outbound to target, or fails naming the refused pair.
func (o *Outbound) TransitionTo(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return apperr.New(apperr.KindInvalidState, "outbound %d: transition %s -> %s is not allowed", o.OutboundID, o.Status, target)
	}
	o.Status = target
	return nil
}

// CanBeCanceled: cancellation is possible until the order ships.
func (o *Outbound) CanBeCanceled() bool {
	return o.Status == StatusOrdered || o.Status == StatusPicking
}

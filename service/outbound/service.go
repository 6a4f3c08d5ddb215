package outbound

import (
	"log"
	"regexp"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"wms.GO/config"
	"wms.GO/core/apperr"
	entity "wms.GO/model/entity"
	outboundEntity "wms.GO/model/entity/outbound"
	outboundRepo "wms.GO/model/repository/outbound"
	productRepo "wms.GO/model/repository/product"
	supplierRepo "wms.GO/model/repository/supplier"
	warehouseRepo "wms.GO/model/repository/warehouse"
	"wms.GO/service/notify"
	stockService "wms.GO/service/stock"
)

// Service drives the shipping workflow: order registration with reservation,
// the pick/ship/cancel state machine, and the post-shipment low-stock alert.
type Service struct {
	db         *gorm.DB
	outbounds  *outboundRepo.OutboundRepository
	warehouses *warehouseRepo.WarehouseRepository
	products   *productRepo.ProductRepository
	suppliers  *supplierRepo.SupplierRepository
	ledger     *stockService.Service
	gateway    notify.Gateway

	// Now is the clock used for the cutoff calculation and shipped date.
	// Overridable in tests.
	Now func() time.Time
}

func NewService(db *gorm.DB, gateway notify.Gateway) *Service {
	return &Service{
		db:         db,
		outbounds:  outboundRepo.NewOutboundRepository(db),
		warehouses: warehouseRepo.NewWarehouseRepository(db),
		products:   productRepo.NewProductRepository(db),
		suppliers:  supplierRepo.NewSupplierRepository(db),
		ledger:     stockService.NewService(db),
		gateway:    gateway,
		Now:        time.Now,
	}
}

// ItemInput is one requested product line on order registration.
type ItemInput struct {
	ProductID uint  `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// CreateInput is the order registration request.
type CreateInput struct {
	WarehouseID           uint
	RecipientName         string
	RecipientContact      string
	DeliveryPostcode      string
	DeliveryBaseAddress   string
	DeliveryDetailAddress string
	DeliveryMemo          *string
	RequestedDate         time.Time
	Items                 []ItemInput
}

var postcodeRe = regexp.MustCompile(`^\d{5}$`)

func (in *CreateInput) validate() error {
	if len(in.Items) == 0 {
		return apperr.New(apperr.KindInvalidInput, "outbound requires at least one line item")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return apperr.New(apperr.KindInvalidInput, "line item quantity must be positive, got %d for product %d", it.Quantity, it.ProductID)
		}
	}
	if in.RecipientName == "" || in.RecipientContact == "" {
		return apperr.New(apperr.KindValidationFailed, "recipient name and contact are required")
	}
	if !postcodeRe.MatchString(in.DeliveryPostcode) {
		return apperr.New(apperr.KindValidationFailed, "delivery postcode must be 5 digits, got %q", in.DeliveryPostcode)
	}
	if in.DeliveryBaseAddress == "" || in.DeliveryDetailAddress == "" {
		return apperr.New(apperr.KindValidationFailed, "delivery address is required")
	}
	return nil
}

// Create registers a shipping order: validates references and availability,
// persists the order with the frozen expected date, and reserves stock for
// every line — all in one unit of work.
func (s *Service) Create(in CreateInput) (*Detail, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.warehouses.FindByID(in.WarehouseID); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}
	known, err := s.products.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, apperr.New(apperr.KindDataNotFound, "product %d not found", id)
		}
	}

	now := s.Now()
	o := &outboundEntity.Outbound{
		WarehouseID:           in.WarehouseID,
		RecipientName:         in.RecipientName,
		RecipientContact:      in.RecipientContact,
		DeliveryPostcode:      in.DeliveryPostcode,
		DeliveryBaseAddress:   in.DeliveryBaseAddress,
		DeliveryDetailAddress: in.DeliveryDetailAddress,
		DeliveryMemo:          in.DeliveryMemo,
		RequestedDate:         datatypes.Date(in.RequestedDate),
		ExpectedDate:          datatypes.Date(CalculateExpectedDate(in.RequestedDate, now, config.Get().CutoffHour)),
		Status:                outboundEntity.StatusOrdered,
	}
	for _, it := range in.Items {
		o.Items = append(o.Items, outboundEntity.Item{ProductID: it.ProductID, RequestedQuantity: it.Quantity})
	}

	var lines []LineStockSummary
	err = s.db.Transaction(func(tx *gorm.DB) error {
		lines = lines[:0]
		for _, it := range in.Items {
			product := known[it.ProductID]
			before, err := s.ledger.Reserve(tx, in.WarehouseID, it.ProductID, it.Quantity)
			if apperr.IsKind(err, apperr.KindInsufficientStock) {
				return apperr.New(apperr.KindInsufficientStock, "product %q: %s", product.Name, apperr.MessageOf(err))
			}
			if err != nil {
				return err
			}
			current := before.AvailableQuantity()
			after := current - it.Quantity
			lines = append(lines, LineStockSummary{
				ProductID:          it.ProductID,
				ProductName:        product.Name,
				RequestedQuantity:  it.Quantity,
				CurrentStock:       current,
				AfterOutboundStock: after,
				SafetyStock:        before.SafetyStock,
				IsBelowSafetyStock: after < before.SafetyStock,
			})
		}
		return s.outbounds.CreateWithItems(tx, o)
	})
	if err != nil {
		return nil, err
	}
	return &Detail{Outbound: o, StockSummary: summarize(lines)}, nil
}

// StartPicking moves ORDERED -> PICKING. The reservation made at creation
// stays in place; picking is a pure status transition.
func (s *Service) StartPicking(id uint) (*outboundEntity.Outbound, error) {
	return s.transition(id, outboundEntity.StatusPicking, nil)
}

// Complete moves PICKING -> SHIPPED: stamps the shipped date, converts every
// line's reservation into a physical deduction, and — when any line ends
// below its safety threshold — notifies the supplier manager of the first
// shorted product exactly once.
func (s *Service) Complete(id uint) (*outboundEntity.Outbound, error) {
	var low []notify.LowStockProduct
	var firstLowProduct *entity.Product

	out, err := s.transition(id, outboundEntity.StatusShipped, func(tx *gorm.DB, o *outboundEntity.Outbound) error {
		shipped := datatypes.Date(s.Now())
		o.ShippedDate = &shipped
		for _, item := range o.Items {
			row, err := s.ledger.ConfirmShipment(tx, o.WarehouseID, item.ProductID, item.RequestedQuantity)
			if err != nil {
				return err
			}
			if row.IsBelowSafetyStock() {
				product, err := s.products.FindByID(item.ProductID)
				if err != nil {
					return err
				}
				if firstLowProduct == nil {
					firstLowProduct = product
				}
				low = append(low, notify.LowStockProduct{
					ProductName:  product.Name,
					CurrentStock: row.Quantity,
					SafetyStock:  row.SafetyStock,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Alert after commit so a rolled-back shipment never notifies.
	if len(low) > 0 {
		recipient := notify.Recipient{}
		if supplier, err := s.suppliers.FindByID(firstLowProduct.SupplierID); err == nil {
			recipient = notify.Recipient{
				Name:  supplier.ManagerName,
				Email: supplier.ManagerEmail,
				Phone: supplier.ManagerPhone,
			}
		}
		// Delivery failure must not fail the shipment.
		if err := s.gateway.NotifyLowStock(recipient, low); err != nil {
			log.Printf("low stock notification failed: %v", err)
		}
	}
	return out, nil
}

// Cancel releases every line's reservation and moves the order to CANCELED.
// Allowed from ORDERED and PICKING only.
func (s *Service) Cancel(id uint) (*outboundEntity.Outbound, error) {
	var out *outboundEntity.Outbound
	err := s.db.Transaction(func(tx *gorm.DB) error {
		o, err := s.outbounds.FindByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		if !o.CanBeCanceled() {
			return apperr.New(apperr.KindInvalidState, "outbound %d in status %s cannot be canceled", o.OutboundID, o.Status)
		}
		if err := o.TransitionTo(outboundEntity.StatusCanceled); err != nil {
			return err
		}
		if err := s.outbounds.Save(tx, o); err != nil {
			return err
		}
		for _, item := range o.Items {
			if err := s.ledger.Release(tx, o.WarehouseID, item.ProductID, item.RequestedQuantity); err != nil {
				return err
			}
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// transition applies one state-table move plus an optional in-tx side effect.
func (s *Service) transition(id uint, target outboundEntity.Status, sideEffect func(*gorm.DB, *outboundEntity.Outbound) error) (*outboundEntity.Outbound, error) {
	var out *outboundEntity.Outbound
	err := s.db.Transaction(func(tx *gorm.DB) error {
		o, err := s.outbounds.FindByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		if err := o.TransitionTo(target); err != nil {
			return err
		}
		if sideEffect != nil {
			if err := sideEffect(tx, o); err != nil {
				return err
			}
		}
		if err := s.outbounds.Save(tx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one outbound plus a stock summary computed from the current
// ledger position of each line.
func (s *Service) Get(id uint) (*Detail, error) {
	o, err := s.outbounds.FindByID(id)
	if err != nil {
		return nil, err
	}
	lines := make([]LineStockSummary, 0, len(o.Items))
	for _, item := range o.Items {
		line := LineStockSummary{
			ProductID:         item.ProductID,
			RequestedQuantity: item.RequestedQuantity,
		}
		if product, err := s.products.FindByID(item.ProductID); err == nil {
			line.ProductName = product.Name
		}
		if row, err := s.ledger.Get(o.WarehouseID, item.ProductID); err == nil {
			line.CurrentStock = row.AvailableQuantity()
			line.AfterOutboundStock = line.CurrentStock - item.RequestedQuantity
			line.SafetyStock = row.SafetyStock
			line.IsBelowSafetyStock = line.AfterOutboundStock < row.SafetyStock
		}
		lines = append(lines, line)
	}
	return &Detail{Outbound: o, StockSummary: summarize(lines)}, nil
}

// List returns filtered outbounds, newest first.
func (s *Service) List(params outboundRepo.ListParams) ([]outboundEntity.Outbound, int64, error) {
	return s.outbounds.List(params)
}
